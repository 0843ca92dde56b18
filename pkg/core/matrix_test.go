package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		err  error
	}{
		{name: "ok", m: Matrix{{1, 2}, {3, 4}}},
		{name: "nil", m: nil, err: ErrEmpty},
		{name: "empty row", m: Matrix{{}}, err: ErrEmpty},
		{name: "ragged", m: Matrix{{1, 2}, {3}}, err: ErrRagged},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.m.Validate()
			if test.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, test.err)
		})
	}
}

func TestCheckCols(t *testing.T) {
	m := Matrix{{1, 2, 3}}
	require.NoError(t, m.CheckCols(3))
	assert.ErrorIs(t, m.CheckCols(2), ErrDimensionMismatch)
}

func TestColGatherClone(t *testing.T) {
	m := Matrix{{1, 2}, {3, 4}, {5, 6}}

	assert.Equal(t, []float64{2, 4, 6}, m.Col(1))

	g := m.Gather([]int{2, 0})
	assert.Equal(t, Matrix{{5, 6}, {1, 2}}, g)

	c := m.Clone()
	c[0][0] = 100
	assert.Equal(t, 1.0, m.At(0, 0))
}

func TestDenseRoundTrip(t *testing.T) {
	m := Matrix{{1, 2}, {3, 4}}
	d := m.Dense()
	r, c := d.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 4.0, d.At(1, 1))
	assert.Equal(t, m, FromDense(d))
}
