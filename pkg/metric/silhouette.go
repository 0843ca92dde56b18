package metric

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"luma/pkg/core"
	"luma/pkg/model"
)

var (
	ErrLengthMismatch = errors.New("number of labels does not match number of samples")
	ErrLabelCount     = errors.New("silhouette needs 2 <= distinct labels <= n_samples-1")
)

var (
	_ model.Evaluator = Silhouette{}
	_ model.Evaluator = Inertia{}
)

// Silhouette is the mean silhouette coefficient over all samples, using the
// Euclidean distance. Values close to 1 mean dense, well separated clusters.
// Samples alone in their cluster score 0.
type Silhouette struct{}

func (Silhouette) Compute(X [][]float64, labels []int) (float64, error) {
	if err := checkLabels(X, labels); err != nil {
		return 0, err
	}
	n := len(X)

	// clusters are indexed densely, whatever the label values are.
	index := make(map[int]int)
	for _, l := range labels {
		if _, ok := index[l]; !ok {
			index[l] = len(index)
		}
	}
	if len(index) < 2 || len(index) > n-1 {
		return 0, fmt.Errorf("%d distinct labels for %d samples: %w", len(index), n, ErrLabelCount)
	}
	sizes := make([]int, len(index))
	for _, l := range labels {
		sizes[index[l]]++
	}

	total := 0.0
	sums := make([]float64, len(index))
	for i := range X {
		for c := range sums {
			sums[c] = 0
		}
		for j := range X {
			if i != j {
				sums[index[labels[j]]] += floats.Distance(X[i], X[j], 2)
			}
		}
		own := index[labels[i]]
		if sizes[own] == 1 {
			continue
		}
		a := sums[own] / float64(sizes[own]-1)
		b := math.Inf(1)
		for c, s := range sums {
			if c != own {
				b = math.Min(b, s/float64(sizes[c]))
			}
		}
		if m := math.Max(a, b); m > 0 {
			total += (b - a) / m
		}
	}
	return total / float64(n), nil
}

// Inertia is the within-cluster sum of squared distances to the cluster means.
// Lower is better.
type Inertia struct{}

func (Inertia) Compute(X [][]float64, labels []int) (float64, error) {
	if err := checkLabels(X, labels); err != nil {
		return 0, err
	}
	p := len(X[0])
	sums := make(map[int][]float64)
	counts := make(map[int]int)
	for i, x := range X {
		s, ok := sums[labels[i]]
		if !ok {
			s = make([]float64, p)
			sums[labels[i]] = s
		}
		floats.Add(s, x)
		counts[labels[i]]++
	}
	for l, s := range sums {
		floats.Scale(1/float64(counts[l]), s)
	}
	total := 0.0
	for i, x := range X {
		d := floats.Distance(x, sums[labels[i]], 2)
		total += d * d
	}
	return total, nil
}

func checkLabels(X [][]float64, labels []int) error {
	if err := core.Matrix(X).Validate(); err != nil {
		return err
	}
	if len(labels) != len(X) {
		return fmt.Errorf("%d labels for %d samples: %w", len(labels), len(X), ErrLengthMismatch)
	}
	return nil
}
