package stats

import (
	"errors"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrNotFitted         = errors.New("scaler not fitted")
	ErrAlreadyFitted     = errors.New("scaler already fitted")
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrEmptyMatrix       = errors.New("empty matrix")
)

// StandardScaler standardizes each column to zero mean and unit variance.
// Std is the population standard deviation; zero deviations are stored as 1
// so constant columns scale to 0.
type StandardScaler struct {
	Features []string
	Mean     []float64
	Std      []float64
	NSamples int
}

// NewStandardScaler returns an unfitted scaler for the named columns.
// features may be nil when column names are not tracked.
func NewStandardScaler(features []string) *StandardScaler {
	return &StandardScaler{Features: slices.Clone(features)}
}

// Fitted reports whether Fit has run (or the scaler was loaded from disk).
func (s *StandardScaler) Fitted() bool { return s != nil && len(s.Mean) > 0 }

// NumFeatures is the column count the scaler expects.
func (s *StandardScaler) NumFeatures() int { return len(s.Mean) }

// Fit learns per-column mean and std. A fitted scaler is never refit.
func (s *StandardScaler) Fit(X mat.Matrix) error {
	if s.Fitted() {
		return ErrAlreadyFitted
	}
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return ErrEmptyMatrix
	}
	if len(s.Features) != 0 && len(s.Features) != c {
		return fmt.Errorf("%w: %d feature names for %d columns", ErrDimensionMismatch, len(s.Features), c)
	}

	mean := make([]float64, c)
	std := make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		mean[j], std[j] = stat.PopMeanStdDev(col, nil)
		if std[j] == 0 {
			std[j] = 1
		}
	}
	s.Mean, s.Std, s.NSamples = mean, std, r
	return nil
}

// Transform applies (x - mean) / std column-wise and returns a new matrix.
func (s *StandardScaler) Transform(X mat.Matrix) (*mat.Dense, error) {
	if !s.Fitted() {
		return nil, ErrNotFitted
	}
	r, c := X.Dims()
	if c != len(s.Mean) {
		return nil, fmt.Errorf("%w: scaler has %d columns, got %d", ErrDimensionMismatch, len(s.Mean), c)
	}
	if r == 0 {
		return nil, ErrEmptyMatrix
	}
	out := mat.NewDense(r, c, nil)
	out.Apply(func(_, j int, v float64) float64 {
		return (v - s.Mean[j]) / s.Std[j]
	}, X)
	return out, nil
}

func (s *StandardScaler) FitTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}
