package stats

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func sample() *mat.Dense {
	return mat.NewDense(4, 3, []float64{
		1, 10, 5,
		2, 20, 5,
		3, 30, 5,
		4, 40, 5,
	})
}

func TestStandardScalerFit(t *testing.T) {
	s := NewStandardScaler([]string{"a", "b", "c"})
	require.False(t, s.Fitted())
	require.NoError(t, s.Fit(sample()))

	assert.True(t, s.Fitted())
	assert.Equal(t, 4, s.NSamples)
	assert.InDeltaSlice(t, []float64{2.5, 25, 5}, s.Mean, 1e-12)
	// population std of 1..4 is sqrt(1.25)
	assert.InDelta(t, 1.118033988749895, s.Std[0], 1e-12)
	assert.InDelta(t, 11.18033988749895, s.Std[1], 1e-12)
	assert.Equal(t, 1.0, s.Std[2], "constant column keeps unit std")
}

func TestStandardScalerTransform(t *testing.T) {
	s := NewStandardScaler(nil)
	out, err := s.FitTransform(sample())
	require.NoError(t, err)

	sum := Describe(out, nil)
	require.Len(t, sum, 3)
	for j := 0; j < 2; j++ {
		assert.InDelta(t, 0, sum[j].Mean, 1e-12)
		assert.InDelta(t, 1, sum[j].Std, 1e-12)
	}
	assert.Equal(t, 0.0, sum[2].Min)
	assert.Equal(t, 0.0, sum[2].Max)

	again, err := s.Transform(sample())
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(out, again, 1e-12))
}

func TestStandardScalerErrors(t *testing.T) {
	t.Run("transform before fit", func(t *testing.T) {
		_, err := NewStandardScaler(nil).Transform(sample())
		assert.ErrorIs(t, err, ErrNotFitted)
	})
	t.Run("refit", func(t *testing.T) {
		s := NewStandardScaler(nil)
		require.NoError(t, s.Fit(sample()))
		assert.ErrorIs(t, s.Fit(sample()), ErrAlreadyFitted)
	})
	t.Run("name count", func(t *testing.T) {
		err := NewStandardScaler([]string{"a"}).Fit(sample())
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})
	t.Run("column count", func(t *testing.T) {
		s := NewStandardScaler(nil)
		require.NoError(t, s.Fit(sample()))
		_, err := s.Transform(mat.NewDense(1, 2, []float64{1, 2}))
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})
	t.Run("empty", func(t *testing.T) {
		err := NewStandardScaler(nil).Fit(&mat.Dense{})
		assert.ErrorIs(t, err, ErrEmptyMatrix)
	})
}

func TestStandardScalerPersist(t *testing.T) {
	s := NewStandardScaler([]string{"a", "b", "c"})
	require.NoError(t, s.Fit(sample()))

	path := filepath.Join(t.TempDir(), "nested", "scaler.pkl")
	require.NoError(t, s.Save(path))

	loaded, err := LoadStandardScaler(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)

	var buf bytes.Buffer
	assert.ErrorIs(t, NewStandardScaler(nil).Encode(&buf), ErrNotFitted)

	_, err = DecodeStandardScaler(bytes.NewReader([]byte("not gob")))
	assert.Error(t, err)
}
