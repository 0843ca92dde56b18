package model

import "fmt"

// Clusterer is for unsupervised clustering.
type Clusterer interface {
	// Fit learns the reference points from X.
	Fit(X [][]float64) error
	// Predict returns the index of the nearest reference point for every row of X.
	Predict(X [][]float64) ([]int, error)
	// Labels is Predict applied to the training data.
	Labels() ([]int, error)
	// Score evaluates Predict(X) with e.
	Score(X [][]float64, e Evaluator) (float64, error)
	fmt.Stringer
}

// Classifier is a supervised model predicting class labels.
type Classifier interface {
	Fit(X [][]float64, y []float64) error
	Predict(X [][]float64) ([]float64, error)
	// PredictProba returns one row per sample with a probability per class,
	// ordered as Classes.
	PredictProba(X [][]float64) ([][]float64, error)
	// Score is the accuracy of Predict(X) against y.
	Score(X [][]float64, y []float64) (float64, error)
	Classes() []float64
	fmt.Stringer
}

// Transformer is for preprocessing steps (fit on train, transform both).
type Transformer interface {
	Fit(X [][]float64) error
	Transform(X [][]float64) ([][]float64, error)
	FitTransform(X [][]float64) ([][]float64, error)
	InverseTransform(X [][]float64) ([][]float64, error)
}

// Evaluator scores a cluster assignment of X.
type Evaluator interface {
	Compute(X [][]float64, labels []int) (float64, error)
}

// EvaluatorFunc adapts a plain function to Evaluator.
type EvaluatorFunc func(X [][]float64, labels []int) (float64, error)

func (f EvaluatorFunc) Compute(X [][]float64, labels []int) (float64, error) { return f(X, labels) }

// Visualizer renders a clustering result to path.
type Visualizer interface {
	Plot(X [][]float64, labels []int, refs [][]float64, path string) error
}
