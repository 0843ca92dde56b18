package preprocess

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"luma/pkg/core"
	"luma/pkg/model"
	"luma/pkg/stats"
)

var ErrDecomposition = errors.New("principal component decomposition failed")

var _ model.Transformer = (*PCA)(nil)

// PCA projects the data onto its top principal components.
type PCA struct {
	Components int
	Mean       []float64
	// Explained holds the variance captured by each kept component, largest first.
	Explained []float64

	vectors *mat.Dense // features x Components, one direction per column
}

func NewPCA(components int) *PCA { return &PCA{Components: components} }

func (p *PCA) Fit(X [][]float64) error {
	if err := core.Matrix(X).Validate(); err != nil {
		return fmt.Errorf("%s: fit: %w", p, err)
	}
	n, d := core.Matrix(X).Dims()
	if p.Components <= 0 || p.Components > min(n, d) {
		return &model.ConfigError{
			Estimator: p.String(),
			Param:     "n_components",
			Value:     p.Components,
			Reason:    fmt.Sprintf("must be in [1, %d]", min(n, d)),
		}
	}

	var pc stat.PC
	if !pc.PrincipalComponents(core.Matrix(X).Dense(), nil) {
		return fmt.Errorf("%s: fit: %w", p, ErrDecomposition)
	}
	var vecs mat.Dense
	pc.VectorsTo(&vecs)

	p.Mean = stats.Columns(X, stats.Mean)
	p.Explained = pc.VarsTo(nil)[:p.Components]
	p.vectors = mat.DenseCopyOf(vecs.Slice(0, d, 0, p.Components))
	return nil
}

func (p *PCA) check(X [][]float64, cols int) error {
	if p.vectors == nil {
		return model.NotFitted(p)
	}
	if err := core.Matrix(X).CheckCols(cols); err != nil {
		return fmt.Errorf("%s: %w", p, err)
	}
	return nil
}

// Transform returns the coordinates of X along the kept components.
func (p *PCA) Transform(X [][]float64) ([][]float64, error) {
	if err := p.check(X, len(p.Mean)); err != nil {
		return nil, err
	}
	centered := make(core.Matrix, len(X))
	for i, x := range X {
		centered[i] = make([]float64, len(x))
		floats.SubTo(centered[i], x, p.Mean)
	}
	var out mat.Dense
	out.Mul(centered.Dense(), p.vectors)
	return core.FromDense(&out), nil
}

func (p *PCA) FitTransform(X [][]float64) ([][]float64, error) {
	if err := p.Fit(X); err != nil {
		return nil, err
	}
	return p.Transform(X)
}

// InverseTransform maps component coordinates back to feature space. The
// result is exact only when every component was kept.
func (p *PCA) InverseTransform(X [][]float64) ([][]float64, error) {
	if err := p.check(X, p.Components); err != nil {
		return nil, err
	}
	var out mat.Dense
	out.Mul(core.Matrix(X).Dense(), p.vectors.T())
	back := core.FromDense(&out)
	for _, row := range back {
		floats.Add(row, p.Mean)
	}
	return back, nil
}

func (p *PCA) String() string { return fmt.Sprintf("PCA(n_components=%d)", p.Components) }
