package dataprep

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/mat"
)

var ErrNonNumeric = errors.New("non-numeric value")

// DefaultFeatureColumns returns a fresh copy of the 14 parental and
// curricular-unit columns used by the dropout model.
func DefaultFeatureColumns() []string {
	return []string{
		"MothersQualification", "FathersQualification",
		"MothersOccupation", "FathersOccupation",
		"CurricularUnits1stSemCredited", "CurricularUnits1stSemEnrolled",
		"CurricularUnits1stSemEvaluations", "CurricularUnits1stSemApproved",
		"CurricularUnits1stSemGrade", "CurricularUnits2ndSemCredited",
		"CurricularUnits2ndSemEnrolled", "CurricularUnits2ndSemEvaluations",
		"CurricularUnits2ndSemApproved", "CurricularUnits2ndSemGrade",
	}
}

// FeatureSelect selects columns by name, in order, as a float matrix.
// Returns nil with no error when df has no rows.
func FeatureSelect(df dataframe.DataFrame, columns []string) (*mat.Dense, error) {
	sel := df.Select(columns)
	if sel.Err != nil {
		return nil, fmt.Errorf("select features: %w", sel.Err)
	}
	rows := sel.Nrow()
	if rows == 0 {
		return nil, nil
	}
	X := mat.NewDense(rows, len(columns), nil)
	for j, name := range columns {
		vals := sel.Col(name).Float()
		for i, v := range vals {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w in column %s at row %d", ErrNonNumeric, name, i)
			}
			X.Set(i, j, v)
		}
	}
	return X, nil
}

// MatrixFrame wraps X as a dataframe of float columns named by names.
// A nil X gives a frame with the named columns and no rows.
func MatrixFrame(X *mat.Dense, names []string) dataframe.DataFrame {
	cols := make([]series.Series, len(names))
	for j, name := range names {
		var vals []float64
		if X != nil {
			vals = mat.Col(nil, j, X)
		}
		cols[j] = series.New(vals, series.Float, name)
	}
	return dataframe.New(cols...)
}
