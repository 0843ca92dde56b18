package preprocess

import (
	"fmt"

	"luma/pkg/core"
	"luma/pkg/model"
	"luma/pkg/stats"
)

var (
	_ model.Transformer = (*StandardScaler)(nil)
	_ model.Transformer = (*MinMaxScaler)(nil)
	_ model.Transformer = (*RobustScaler)(nil)
)

// affine holds a per-column shift and scale: t(x) = (x - shift) / scale.
type affine struct {
	shift []float64
	scale []float64
}

func (a affine) fitted() bool { return a.shift != nil }

func (a affine) forward(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i, x := range X {
		row := make([]float64, len(x))
		for j, v := range x {
			row[j] = (v - a.shift[j]) / a.scale[j]
		}
		out[i] = row
	}
	return out
}

func (a affine) backward(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i, x := range X {
		row := make([]float64, len(x))
		for j, v := range x {
			row[j] = v*a.scale[j] + a.shift[j]
		}
		out[i] = row
	}
	return out
}

// check validates X against a fitted transform of est.
func (a affine) check(est fmt.Stringer, X [][]float64) error {
	if !a.fitted() {
		return model.NotFitted(est)
	}
	if err := core.Matrix(X).CheckCols(len(a.shift)); err != nil {
		return fmt.Errorf("%s: %w", est, err)
	}
	return nil
}

// nonZero replaces zero scales with 1 so constant columns map to a constant.
func nonZero(s []float64) []float64 {
	for j := range s {
		if s[j] == 0 {
			s[j] = 1
		}
	}
	return s
}

// StandardScaler standardizes each column to zero mean and unit (population) variance.
type StandardScaler struct {
	Mean []float64
	Std  []float64
	t    affine
}

func NewStandardScaler() *StandardScaler { return &StandardScaler{} }

func (s *StandardScaler) Fit(X [][]float64) error {
	if err := core.Matrix(X).Validate(); err != nil {
		return fmt.Errorf("%s: fit: %w", s, err)
	}
	_, c := core.Matrix(X).Dims()
	s.Mean = make([]float64, c)
	s.Std = make([]float64, c)
	for j := 0; j < c; j++ {
		s.Mean[j], s.Std[j] = stats.MeanStd(core.Matrix(X).Col(j))
	}
	s.t = affine{shift: s.Mean, scale: nonZero(append([]float64(nil), s.Std...))}
	return nil
}

func (s *StandardScaler) Transform(X [][]float64) ([][]float64, error) {
	if err := s.t.check(s, X); err != nil {
		return nil, err
	}
	return s.t.forward(X), nil
}

func (s *StandardScaler) FitTransform(X [][]float64) ([][]float64, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

func (s *StandardScaler) InverseTransform(X [][]float64) ([][]float64, error) {
	if err := s.t.check(s, X); err != nil {
		return nil, err
	}
	return s.t.backward(X), nil
}

func (s *StandardScaler) String() string { return "StandardScaler" }

// MinMaxScaler rescales each column linearly onto [Low, High].
// Constant columns map to Low.
type MinMaxScaler struct {
	Low, High float64
	Min, Max  []float64
	t         affine
}

// NewMinMaxScaler returns a scaler onto [low, high]. The usual range is [0, 1].
func NewMinMaxScaler(low, high float64) *MinMaxScaler {
	return &MinMaxScaler{Low: low, High: high}
}

func (s *MinMaxScaler) Fit(X [][]float64) error {
	if err := core.Matrix(X).Validate(); err != nil {
		return fmt.Errorf("%s: fit: %w", s, err)
	}
	if s.High <= s.Low {
		return &model.ConfigError{
			Estimator: s.String(),
			Param:     "feature_range",
			Value:     [2]float64{s.Low, s.High},
			Reason:    "high must be greater than low",
		}
	}
	_, c := core.Matrix(X).Dims()
	s.Min = make([]float64, c)
	s.Max = make([]float64, c)
	shift := make([]float64, c)
	scale := make([]float64, c)
	width := s.High - s.Low
	for j := 0; j < c; j++ {
		s.Min[j], s.Max[j] = stats.MinMax(core.Matrix(X).Col(j))
		// x' = (x - min)/(max - min)*width + low, written as (x - shift)/scale.
		scale[j] = (s.Max[j] - s.Min[j]) / width
		shift[j] = s.Min[j] - s.Low*scale[j]
		if scale[j] == 0 {
			scale[j] = 1
			shift[j] = s.Min[j] - s.Low
		}
	}
	s.t = affine{shift: shift, scale: scale}
	return nil
}

func (s *MinMaxScaler) Transform(X [][]float64) ([][]float64, error) {
	if err := s.t.check(s, X); err != nil {
		return nil, err
	}
	return s.t.forward(X), nil
}

func (s *MinMaxScaler) FitTransform(X [][]float64) ([][]float64, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

func (s *MinMaxScaler) InverseTransform(X [][]float64) ([][]float64, error) {
	if err := s.t.check(s, X); err != nil {
		return nil, err
	}
	return s.t.backward(X), nil
}

func (s *MinMaxScaler) String() string {
	return fmt.Sprintf("MinMaxScaler(feature_range=(%g, %g))", s.Low, s.High)
}

// RobustScaler centers each column on its median and scales it by the
// interquartile range, which keeps outliers from dominating the scale.
type RobustScaler struct {
	Median []float64
	IQR    []float64
	t      affine
}

func NewRobustScaler() *RobustScaler { return &RobustScaler{} }

func (s *RobustScaler) Fit(X [][]float64) error {
	if err := core.Matrix(X).Validate(); err != nil {
		return fmt.Errorf("%s: fit: %w", s, err)
	}
	s.Median = stats.Columns(X, stats.Median)
	s.IQR = stats.Columns(X, func(col []float64) float64 {
		return stats.Percentile(col, 75) - stats.Percentile(col, 25)
	})
	s.t = affine{shift: s.Median, scale: nonZero(append([]float64(nil), s.IQR...))}
	return nil
}

func (s *RobustScaler) Transform(X [][]float64) ([][]float64, error) {
	if err := s.t.check(s, X); err != nil {
		return nil, err
	}
	return s.t.forward(X), nil
}

func (s *RobustScaler) FitTransform(X [][]float64) ([][]float64, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

func (s *RobustScaler) InverseTransform(X [][]float64) ([][]float64, error) {
	if err := s.t.check(s, X); err != nil {
		return nil, err
	}
	return s.t.backward(X), nil
}

func (s *RobustScaler) String() string { return "RobustScaler" }
