package dataprep

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

var ErrUnknownLabel = errors.New("unknown label")

// DefaultClasses is the binary outcome order: Dropout encodes to 0, Graduate to 1.
func DefaultClasses() []string { return []string{"Dropout", "Graduate"} }

// LabelEncoder maps categories to their index in Classes.
type LabelEncoder struct {
	Classes []string
	index   map[string]int
}

// NewLabelEncoder builds an encoder with a fixed class order.
func NewLabelEncoder(classes []string) (*LabelEncoder, error) {
	if len(classes) == 0 {
		return nil, errors.New("label encoder needs at least one class")
	}
	idx := make(map[string]int, len(classes))
	for i, c := range classes {
		if _, dup := idx[c]; dup {
			return nil, fmt.Errorf("duplicate class %q", c)
		}
		idx[c] = i
	}
	return &LabelEncoder{Classes: slices.Clone(classes), index: idx}, nil
}

// FitLabelEncoder learns the sorted unique values of data as classes.
func FitLabelEncoder(data []string) (*LabelEncoder, error) {
	seen := map[string]struct{}{}
	var classes []string
	for _, v := range data {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			classes = append(classes, v)
		}
	}
	sort.Strings(classes)
	return NewLabelEncoder(classes)
}

// Transform encodes data as class indexes.
func (e *LabelEncoder) Transform(data []string) ([]int, error) {
	out := make([]int, len(data))
	for i, v := range data {
		code, ok := e.index[v]
		if !ok {
			return nil, fmt.Errorf("%w %q at row %d (classes %v)", ErrUnknownLabel, v, i, e.Classes)
		}
		out[i] = code
	}
	return out, nil
}
