package stats

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Summary describes one column of a matrix.
type Summary struct {
	Name string
	Mean float64
	Std  float64 // population
	Min  float64
	Max  float64
}

// Describe summarizes every column of X. names may be shorter than the
// column count; missing names stay empty.
func Describe(X mat.Matrix, names []string) []Summary {
	r, c := X.Dims()
	out := make([]Summary, c)
	if r == 0 {
		return out
	}
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		s := Summary{Min: floats.Min(col), Max: floats.Max(col)}
		s.Mean, s.Std = stat.PopMeanStdDev(col, nil)
		if j < len(names) {
			s.Name = names[j]
		}
		out[j] = s
	}
	return out
}
