package core

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrEmpty             = errors.New("matrix has no rows")
	ErrRagged            = errors.New("matrix rows have different lengths")
	ErrDimensionMismatch = errors.New("feature count mismatch")
)

// Matrix is a row-major view over a dataset (rows are samples, columns are features).
// Converting a [][]float64 to Matrix does not copy anything.
type Matrix [][]float64

// Dims returns the number of rows and columns. Columns are taken from the first row.
func (m Matrix) Dims() (r, c int) {
	if len(m) == 0 {
		return 0, 0
	}
	return len(m), len(m[0])
}

// Validate checks that the matrix is non-empty, has at least one column and is rectangular.
func (m Matrix) Validate() error {
	if len(m) == 0 {
		return ErrEmpty
	}
	c := len(m[0])
	if c == 0 {
		return fmt.Errorf("row 0: %w", ErrEmpty)
	}
	for i := 1; i < len(m); i++ {
		if len(m[i]) != c {
			return fmt.Errorf("row %d has %d columns, want %d: %w", i, len(m[i]), c, ErrRagged)
		}
	}
	return nil
}

// CheckCols validates the matrix and verifies it has exactly c columns.
func (m Matrix) CheckCols(c int) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if _, got := m.Dims(); got != c {
		return fmt.Errorf("got %d features, want %d: %w", got, c, ErrDimensionMismatch)
	}
	return nil
}

// At returns element (i, j)
func (m Matrix) At(i, j int) float64 { return m[i][j] }

// Row returns row i. The slice is shared with the matrix.
func (m Matrix) Row(i int) []float64 { return m[i] }

// Col returns a copy of column j.
func (m Matrix) Col(j int) []float64 {
	col := make([]float64, len(m))
	for i := range m {
		col[i] = m[i][j]
	}
	return col
}

// Gather returns the rows at idx in order. Rows are shared, not copied.
func (m Matrix) Gather(idx []int) Matrix {
	out := make(Matrix, len(idx))
	for i, k := range idx {
		out[i] = m[k]
	}
	return out
}

// Clone deep copies the matrix.
func (m Matrix) Clone() Matrix {
	if m == nil {
		return nil
	}
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// Dense copies the matrix into a gonum dense matrix.
func (m Matrix) Dense() *mat.Dense {
	r, c := m.Dims()
	data := make([]float64, 0, r*c)
	for _, row := range m {
		data = append(data, row...)
	}
	return mat.NewDense(r, c, data)
}

// FromDense copies a gonum matrix into a Matrix.
func FromDense(d mat.Matrix) Matrix {
	r, c := d.Dims()
	out := make(Matrix, r)
	for i := 0; i < r; i++ {
		row := make([]float64, c)
		for j := 0; j < c; j++ {
			row[j] = d.At(i, j)
		}
		out[i] = row
	}
	return out
}
