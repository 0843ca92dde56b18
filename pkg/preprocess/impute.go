package preprocess

import (
	"fmt"
	"math"

	"luma/pkg/core"
	"luma/pkg/model"
	"luma/pkg/stats"
)

var _ model.Transformer = (*SimpleImputer)(nil)

type ImputeStrategy string

const (
	ImputeMean     ImputeStrategy = "MEAN"
	ImputeMedian   ImputeStrategy = "MEDIAN"
	ImputeConstant ImputeStrategy = "CONSTANT"
)

// SimpleImputer replaces NaN entries with a per-column statistic learned by Fit.
type SimpleImputer struct {
	Strategy ImputeStrategy
	// Fill is the value used by ImputeConstant, and for columns without any value.
	Fill  float64
	Stats []float64
}

func NewSimpleImputer(strategy ImputeStrategy) *SimpleImputer {
	return &SimpleImputer{Strategy: strategy}
}

func (s *SimpleImputer) Fit(X [][]float64) error {
	if err := core.Matrix(X).Validate(); err != nil {
		return fmt.Errorf("%s: fit: %w", s, err)
	}
	var f func([]float64) float64
	switch s.Strategy {
	case ImputeMean:
		f = stats.Mean
	case ImputeMedian:
		f = stats.MedianInPlace
	case ImputeConstant:
		f = func([]float64) float64 { return s.Fill }
	default:
		return &model.ConfigError{
			Estimator: s.String(),
			Param:     "strategy",
			Value:     s.Strategy,
			Reason:    "must be MEAN, MEDIAN or CONSTANT",
		}
	}

	_, c := core.Matrix(X).Dims()
	s.Stats = make([]float64, c)
	present := make([]float64, 0, len(X))
	for j := 0; j < c; j++ {
		present = present[:0]
		for _, x := range X {
			if !math.IsNaN(x[j]) {
				present = append(present, x[j])
			}
		}
		if len(present) == 0 {
			s.Stats[j] = s.Fill
			continue
		}
		s.Stats[j] = f(present)
	}
	return nil
}

func (s *SimpleImputer) Transform(X [][]float64) ([][]float64, error) {
	if s.Stats == nil {
		return nil, model.NotFitted(s)
	}
	if err := core.Matrix(X).CheckCols(len(s.Stats)); err != nil {
		return nil, fmt.Errorf("%s: %w", s, err)
	}
	out := core.Matrix(X).Clone()
	for _, row := range out {
		for j, v := range row {
			if math.IsNaN(v) {
				row[j] = s.Stats[j]
			}
		}
	}
	return out, nil
}

func (s *SimpleImputer) FitTransform(X [][]float64) ([][]float64, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform returns a copy of X; imputed positions are not remembered.
func (s *SimpleImputer) InverseTransform(X [][]float64) ([][]float64, error) {
	if s.Stats == nil {
		return nil, model.NotFitted(s)
	}
	if err := core.Matrix(X).CheckCols(len(s.Stats)); err != nil {
		return nil, fmt.Errorf("%s: %w", s, err)
	}
	return core.Matrix(X).Clone(), nil
}

func (s *SimpleImputer) String() string { return fmt.Sprintf("SimpleImputer(strategy=%s)", s.Strategy) }
