package stats

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Encode writes the scaler in gob format.
func (s *StandardScaler) Encode(w io.Writer) error {
	if !s.Fitted() {
		return ErrNotFitted
	}
	return gob.NewEncoder(w).Encode(s)
}

// DecodeStandardScaler reads a scaler written by Encode.
func DecodeStandardScaler(r io.Reader) (*StandardScaler, error) {
	var s StandardScaler
	if err := gob.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode scaler: %w", err)
	}
	if !s.Fitted() || len(s.Std) != len(s.Mean) {
		return nil, fmt.Errorf("decode scaler: %w", ErrNotFitted)
	}
	return &s, nil
}

// Save writes the scaler to path, creating the parent directory.
// The write is not atomic.
func (s *StandardScaler) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create scaler dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create scaler file: %w", err)
	}
	if err := s.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadStandardScaler reads a scaler saved with Save.
func LoadStandardScaler(path string) (*StandardScaler, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scaler file: %w", err)
	}
	defer f.Close()
	return DecodeStandardScaler(f)
}
