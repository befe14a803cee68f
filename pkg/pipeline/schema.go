package pipeline

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-gota/gota/dataframe"
)

// Schema describes the columns a raw table must carry.
type Schema struct {
	FeatureNames  []string
	StatusColumn  string
	RequireStatus bool
}

// Missing returns the required columns absent from names, in schema order.
func (s Schema) Missing(names []string) []string {
	have := make(map[string]struct{}, len(names))
	for _, n := range names {
		have[n] = struct{}{}
	}
	var missing []string
	if s.RequireStatus {
		if _, ok := have[s.StatusColumn]; !ok {
			missing = append(missing, s.StatusColumn)
		}
	}
	for _, f := range s.FeatureNames {
		if _, ok := have[f]; !ok {
			missing = append(missing, f)
		}
	}
	return missing
}

// Validate fails with ErrMissingColumn naming every absent column, or
// ErrSchemaMismatch when the status column is requested as a feature.
func (s Schema) Validate(df dataframe.DataFrame) error {
	if len(s.FeatureNames) == 0 {
		return fmt.Errorf("%w: no feature columns requested", ErrMissingColumn)
	}
	if slices.Contains(s.FeatureNames, s.StatusColumn) {
		return fmt.Errorf("%w: status column %q cannot be a feature", ErrSchemaMismatch, s.StatusColumn)
	}
	if m := s.Missing(df.Names()); len(m) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(m, ", "))
	}
	return nil
}

func hasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}
