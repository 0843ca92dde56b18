package preprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luma/pkg/core"
	"luma/pkg/model"
)

var X = [][]float64{
	{1, 10, 5},
	{2, 20, 5},
	{3, 30, 5},
	{4, 40, 5},
}

func assertMatrixInDelta(t *testing.T, want, got [][]float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDeltaSlice(t, want[i], got[i], 1e-9, "row %d", i)
	}
}

func TestStandardScaler(t *testing.T) {
	s := NewStandardScaler()
	out, err := s.FitTransform(X)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{2.5, 25, 5}, s.Mean, 1e-12)
	for i := range out {
		// a constant column stays finite.
		assert.Zero(t, out[i][2])
	}
	col := core.Matrix(out).Col(0)
	assert.InDelta(t, 0, col[0]+col[1]+col[2]+col[3], 1e-9)
	assert.InDelta(t, -1.5/s.Std[0], col[0], 1e-12)

	back, err := s.InverseTransform(out)
	require.NoError(t, err)
	assertMatrixInDelta(t, X, back)
}

func TestMinMaxScaler(t *testing.T) {
	s := NewMinMaxScaler(-1, 1)
	out, err := s.FitTransform(X)
	require.NoError(t, err)

	assertMatrixInDelta(t, [][]float64{
		{-1, -1, -1},
		{-1.0 / 3, -1.0 / 3, -1},
		{1.0 / 3, 1.0 / 3, -1},
		{1, 1, -1},
	}, out)

	back, err := s.InverseTransform(out)
	require.NoError(t, err)
	assertMatrixInDelta(t, X, back)
}

func TestMinMaxScalerBadRange(t *testing.T) {
	err := NewMinMaxScaler(1, 0).Fit(X)
	assert.ErrorIs(t, err, model.ErrInvalidConfig)
}

func TestRobustScaler(t *testing.T) {
	s := NewRobustScaler()
	out, err := s.FitTransform(X)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{2.5, 25, 5}, s.Median, 1e-12)
	assert.InDeltaSlice(t, []float64{1.5, 15, 0}, s.IQR, 1e-12)
	assert.InDelta(t, -1, out[0][0], 1e-12)
	assert.Zero(t, out[0][2])

	back, err := s.InverseTransform(out)
	require.NoError(t, err)
	assertMatrixInDelta(t, X, back)
}

func TestScalersNotFitted(t *testing.T) {
	for _, s := range []model.Transformer{NewStandardScaler(), NewMinMaxScaler(0, 1), NewRobustScaler()} {
		_, err := s.Transform(X)
		assert.ErrorIs(t, err, model.ErrNotFitted)
		_, err = s.InverseTransform(X)
		assert.ErrorIs(t, err, model.ErrNotFitted)
	}
}

func TestScalersDimensionMismatch(t *testing.T) {
	for _, s := range []model.Transformer{NewStandardScaler(), NewMinMaxScaler(0, 1), NewRobustScaler()} {
		require.NoError(t, s.Fit(X))
		_, err := s.Transform([][]float64{{1, 2}})
		assert.ErrorIs(t, err, core.ErrDimensionMismatch)
	}
}
