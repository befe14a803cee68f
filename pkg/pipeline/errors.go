package pipeline

import "errors"

// Errors returned by Process, optionally wrapped; test with errors.Is.
//   - ErrInvalidState: inference requested without a fitted scaler
//   - ErrMissingColumn: a feature or status column is absent from the table
//   - ErrSchemaMismatch: requested features differ from the scaler's, or include the status column
//   - ErrEmptyTable: no rows left to fit after filtering
var (
	ErrInvalidState   = errors.New("invalid state")
	ErrMissingColumn  = errors.New("missing column")
	ErrSchemaMismatch = errors.New("schema mismatch")
	ErrEmptyTable     = errors.New("empty table")
)
