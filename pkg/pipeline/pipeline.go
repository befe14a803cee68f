package pipeline

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/mat"

	"github.com/alouvre/Eksperimen-SML-Alifia-Mustika-Sari/pkg/data"
	"github.com/alouvre/Eksperimen-SML-Alifia-Mustika-Sari/pkg/dataprep"
	"github.com/alouvre/Eksperimen-SML-Alifia-Mustika-Sari/pkg/stats"
)

// Mode selects between fitting new parameters and reusing fitted ones.
type Mode int

const (
	Training Mode = iota
	Inference
)

func (m Mode) String() string {
	switch m {
	case Training:
		return "training"
	case Inference:
		return "inference"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Options are the per-run settings shared by every Process call. An empty
// Classes fits sorted classes from each training table instead of using a
// fixed mapping.
type Options struct {
	StatusColumn   string
	DropStatuses   []string
	Classes        []string
	Features       []string
	OutputDir      string
	OutputFileName string
}

func DefaultOptions() Options {
	return Options{
		StatusColumn:   "Status",
		DropStatuses:   dataprep.DefaultDropStatuses(),
		Classes:        dataprep.DefaultClasses(),
		Features:       dataprep.DefaultFeatureColumns(),
		OutputDir:      "preprocessing_output",
		OutputFileName: "data_student_preprocessing.csv",
	}
}

// Request is a single Process call. Features overrides Options.Features
// when non-empty. Scaler is required for Inference and ignored for Training.
// OutputDir and Persist only apply to Inference.
type Request struct {
	Mode      Mode
	Features  []string
	Scaler    *stats.StandardScaler
	OutputDir string
	Persist   bool
}

// Report describes what a Process call did.
type Report struct {
	Mode        Mode
	RowsIn      int
	RowsDropped int
	RowsOut     int
	Features    []string
	Classes     []string
	Persisted   bool
	OutputPath  string
	Columns     []stats.Summary
}

// Result holds the scaled features. Labels and Scaler are set only in
// Training mode.
type Result struct {
	Features dataframe.DataFrame
	Labels   []int
	Scaler   *stats.StandardScaler
	Report   Report
}

// WithLabels returns the feature table with the labels appended as column name.
func (r *Result) WithLabels(name string) (dataframe.DataFrame, error) {
	if r.Labels == nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: result has no labels", ErrInvalidState)
	}
	out := r.Features.Mutate(series.New(r.Labels, series.Int, name))
	if out.Err != nil {
		return out, fmt.Errorf("append labels: %w", out.Err)
	}
	return out, nil
}

// Preprocessor turns raw student records into scaled model inputs.
type Preprocessor struct {
	opts    Options
	encoder *dataprep.LabelEncoder
	logger  *slog.Logger
}

// New validates opts and builds a Preprocessor. A nil logger discards output.
func New(opts Options, logger *slog.Logger) (*Preprocessor, error) {
	if opts.StatusColumn == "" {
		return nil, fmt.Errorf("status column is required")
	}
	var enc *dataprep.LabelEncoder
	if len(opts.Classes) > 0 {
		var err error
		if enc, err = dataprep.NewLabelEncoder(opts.Classes); err != nil {
			return nil, fmt.Errorf("label encoder: %w", err)
		}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	opts.DropStatuses = slices.Clone(opts.DropStatuses)
	opts.Features = slices.Clone(opts.Features)
	return &Preprocessor{opts: opts, encoder: enc, logger: logger}, nil
}

// Process filters, encodes, selects and scales raw. raw is not modified.
func (p *Preprocessor) Process(raw dataframe.DataFrame, req Request) (*Result, error) {
	if raw.Err != nil {
		return nil, fmt.Errorf("raw table: %w", raw.Err)
	}
	if req.Mode != Training && req.Mode != Inference {
		return nil, fmt.Errorf("%w: unknown %s", ErrInvalidState, req.Mode)
	}
	if req.Mode == Inference && !req.Scaler.Fitted() {
		return nil, fmt.Errorf("%w: a fitted scaler is required for inference", ErrInvalidState)
	}

	features := req.Features
	if len(features) == 0 {
		features = p.opts.Features
	}
	features = slices.Clone(features)

	schema := Schema{
		FeatureNames:  features,
		StatusColumn:  p.opts.StatusColumn,
		RequireStatus: req.Mode == Training,
	}
	if err := schema.Validate(raw); err != nil {
		return nil, err
	}

	df := raw.Copy()
	rep := Report{Mode: req.Mode, RowsIn: df.Nrow(), Features: features}
	if hasColumn(df, p.opts.StatusColumn) {
		var err error
		df, err = dataprep.DropStatuses(df, p.opts.StatusColumn, p.opts.DropStatuses)
		if err != nil {
			return nil, err
		}
	}
	rep.RowsOut = df.Nrow()
	rep.RowsDropped = rep.RowsIn - rep.RowsOut

	if req.Mode == Training {
		return p.train(df, features, rep)
	}
	return p.infer(df, features, req, rep)
}

func (p *Preprocessor) train(df dataframe.DataFrame, features []string, rep Report) (*Result, error) {
	if df.Nrow() == 0 {
		return nil, fmt.Errorf("%w: no rows left after dropping %v", ErrEmptyTable, p.opts.DropStatuses)
	}
	statuses := df.Col(p.opts.StatusColumn).Records()
	enc, err := p.labelEncoder(statuses)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", p.opts.StatusColumn, err)
	}
	labels, err := enc.Transform(statuses)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", p.opts.StatusColumn, err)
	}
	rep.Classes = enc.Classes
	X, err := dataprep.FeatureSelect(df, features)
	if err != nil {
		return nil, err
	}
	scaler := stats.NewStandardScaler(features)
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		return nil, fmt.Errorf("fit scaler: %w", err)
	}

	rep.Columns = stats.Describe(scaled, features)
	p.logger.Debug("scaler fitted",
		slog.Int("rows", rep.RowsOut),
		slog.Int("dropped", rep.RowsDropped),
		slog.Int("features", len(features)))

	return &Result{
		Features: dataprep.MatrixFrame(scaled, features),
		Labels:   labels,
		Scaler:   scaler,
		Report:   rep,
	}, nil
}

func (p *Preprocessor) infer(df dataframe.DataFrame, features []string, req Request, rep Report) (*Result, error) {
	if err := checkScalerFeatures(req.Scaler, features); err != nil {
		return nil, err
	}
	X, err := dataprep.FeatureSelect(df, features)
	if err != nil {
		return nil, err
	}
	var scaled *mat.Dense
	if X != nil {
		if scaled, err = req.Scaler.Transform(X); err != nil {
			return nil, fmt.Errorf("apply scaler: %w", err)
		}
		rep.Columns = stats.Describe(scaled, features)
	}
	out := dataprep.MatrixFrame(scaled, features)

	if req.Persist {
		dir := req.OutputDir
		if dir == "" {
			dir = p.opts.OutputDir
		}
		path := filepath.Join(dir, p.opts.OutputFileName)
		if err := data.WriteCSVFile(path, out); err != nil {
			return nil, err
		}
		rep.Persisted, rep.OutputPath = true, path
		p.logger.Info("preprocessing result saved", slog.String("path", path), slog.Int("rows", rep.RowsOut))
	} else {
		p.logger.Info("preprocessing result not saved", slog.Int("rows", rep.RowsOut))
	}

	return &Result{Features: out, Report: rep}, nil
}

// labelEncoder returns the fixed encoder, or fits sorted classes from
// statuses when Options.Classes is empty.
func (p *Preprocessor) labelEncoder(statuses []string) (*dataprep.LabelEncoder, error) {
	if p.encoder != nil {
		return p.encoder, nil
	}
	enc, err := dataprep.FitLabelEncoder(statuses)
	if err != nil {
		return nil, err
	}
	if len(enc.Classes) > 2 {
		return nil, fmt.Errorf("%w: expected at most two outcomes, got %v", dataprep.ErrUnknownLabel, enc.Classes)
	}
	return enc, nil
}

func checkScalerFeatures(s *stats.StandardScaler, features []string) error {
	if len(s.Features) > 0 {
		if !slices.Equal(s.Features, features) {
			return fmt.Errorf("%w: scaler fit on %v, got %v", ErrSchemaMismatch, s.Features, features)
		}
		return nil
	}
	if s.NumFeatures() != len(features) {
		return fmt.Errorf("%w: scaler has %d columns, got %d", ErrSchemaMismatch, s.NumFeatures(), len(features))
	}
	return nil
}
