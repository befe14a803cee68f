package dataprep

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// DefaultDropStatuses are the non-terminal outcomes removed before encoding.
func DefaultDropStatuses() []string { return []string{"Enrolled"} }

// DropStatuses removes every row whose statusCol value is one of drop.
// The returned frame is a new frame with contiguous rows.
func DropStatuses(df dataframe.DataFrame, statusCol string, drop []string) (dataframe.DataFrame, error) {
	if len(drop) == 0 {
		return df.Copy(), nil
	}
	filters := make([]dataframe.F, len(drop))
	for i, d := range drop {
		filters[i] = dataframe.F{Colname: statusCol, Comparator: series.Neq, Comparando: d}
	}
	out := df.FilterAggregation(dataframe.And, filters...)
	if out.Err != nil {
		return out, fmt.Errorf("filter %s: %w", statusCol, out.Err)
	}
	return out, nil
}
