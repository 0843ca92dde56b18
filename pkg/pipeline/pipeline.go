package pipeline

import (
	"fmt"
	"strings"

	"luma/pkg/model"
)

var _ model.Clusterer = (*Pipeline)(nil)

// Pipeline chains preprocessing steps in front of a clusterer. Fit fits every
// step on the output of the previous one; Predict and Score only transform.
type Pipeline struct {
	steps  []model.Transformer
	final  model.Clusterer
	fitted bool
}

func NewPipeline(final model.Clusterer, steps ...model.Transformer) *Pipeline {
	return &Pipeline{steps: steps, final: final}
}

// Fit fits every step and then the clusterer. Steps are refit in place, so a
// failed Fit leaves the pipeline unfitted rather than mixing new steps with
// the clusterer's previous state.
func (p *Pipeline) Fit(X [][]float64) error {
	p.fitted = false
	for i, step := range p.steps {
		var err error
		if X, err = step.FitTransform(X); err != nil {
			return fmt.Errorf("pipeline: step %d: %w", i, err)
		}
	}
	if err := p.final.Fit(X); err != nil {
		return err
	}
	p.fitted = true
	return nil
}

// Transform runs X through every fitted step.
func (p *Pipeline) Transform(X [][]float64) ([][]float64, error) {
	if !p.fitted {
		return nil, model.NotFitted(p)
	}
	for i, step := range p.steps {
		var err error
		if X, err = step.Transform(X); err != nil {
			return nil, fmt.Errorf("pipeline: step %d: %w", i, err)
		}
	}
	return X, nil
}

func (p *Pipeline) Predict(X [][]float64) ([]int, error) {
	Xt, err := p.Transform(X)
	if err != nil {
		return nil, err
	}
	return p.final.Predict(Xt)
}

func (p *Pipeline) Labels() ([]int, error) {
	if !p.fitted {
		return nil, model.NotFitted(p)
	}
	return p.final.Labels()
}

// Score evaluates the clustering in the transformed feature space.
func (p *Pipeline) Score(X [][]float64, e model.Evaluator) (float64, error) {
	Xt, err := p.Transform(X)
	if err != nil {
		return 0, err
	}
	return p.final.Score(Xt, e)
}

// Final returns the clusterer at the end of the pipeline.
func (p *Pipeline) Final() model.Clusterer { return p.final }

func (p *Pipeline) String() string {
	names := make([]string, 0, len(p.steps)+1)
	for _, step := range p.steps {
		if s, ok := step.(fmt.Stringer); ok {
			names = append(names, s.String())
		} else {
			names = append(names, fmt.Sprintf("%T", step))
		}
	}
	names = append(names, p.final.String())
	return "Pipeline(" + strings.Join(names, " -> ") + ")"
}
