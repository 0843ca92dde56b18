package cluster

import (
	"fmt"
	"math"
	"math/rand"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"luma/pkg/core"
	"luma/pkg/metric"
	"luma/pkg/model"
)

// Estimator is the contract shared by every clustering variant in this package.
type Estimator interface {
	model.Clusterer
	// SetParams changes hyperparameters. The fitted state is kept; call Fit to apply them.
	SetParams(opts ...Option)
	// NIter is the number of iterations the last Fit executed.
	NIter() int
	// Inertia is the dispersion of the training data around the fitted reference points.
	Inertia() float64
	// References returns a copy of the fitted centroids or medians, nil before Fit.
	References() [][]float64
}

var (
	_ Estimator = (*KMeans)(nil)
	_ Estimator = (*KMeansPlus)(nil)
	_ Estimator = (*KMedians)(nil)
	_ Estimator = (*MiniBatchKMeans)(nil)
)

type distanceFunc func(a, b []float64) float64

func euclidean(a, b []float64) float64 { return floats.Distance(a, b, 2) }

func manhattan(a, b []float64) float64 { return floats.Distance(a, b, 1) }

// euclidSquared computes the squared Euclidean distance between two vectors.
func euclidSquared(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// nearest returns the index of the reference point closest to x.
// Ties go to the lowest index.
func nearest(x []float64, refs [][]float64, dist distanceFunc) int {
	best, bestDist := 0, math.Inf(1)
	for k, r := range refs {
		if d := dist(x, r); d < bestDist {
			best, bestDist = k, d
		}
	}
	return best
}

// assign writes the nearest reference index of every row of X into labels.
func assign(X, refs [][]float64, dist distanceFunc, labels []int) []int {
	for i, x := range X {
		labels[i] = nearest(x, refs, dist)
	}
	return labels
}

// meanUpdate returns the per-cluster means of X under labels.
// A cluster without points keeps its previous reference point.
func meanUpdate(X [][]float64, labels []int, prev [][]float64) [][]float64 {
	k, p := len(prev), len(prev[0])
	sums := make([][]float64, k)
	counts := make([]int, k)
	for c := range sums {
		sums[c] = make([]float64, p)
	}
	for i, x := range X {
		c := labels[i]
		floats.Add(sums[c], x)
		counts[c]++
	}
	for c := range sums {
		if counts[c] == 0 {
			copy(sums[c], prev[c])
			continue
		}
		floats.Scale(1/float64(counts[c]), sums[c])
	}
	return sums
}

// sampleIndices draws k distinct indices from [0, n) uniformly.
func sampleIndices(rng *rand.Rand, n, k int) []int {
	return rng.Perm(n)[:k]
}

func copyRows(X [][]float64, idx []int) [][]float64 {
	return core.Matrix(X).Gather(idx).Clone()
}

func cloneRefs(refs [][]float64) [][]float64 {
	return core.Matrix(refs).Clone()
}

func refsEqual(a, b [][]float64) bool {
	for k := range a {
		if !floats.Equal(a[k], b[k]) {
			return false
		}
	}
	return true
}

// deltaNorm is the Frobenius norm of a - b.
func deltaNorm(a, b [][]float64) float64 {
	sum := 0.0
	for k := range a {
		sum += euclidSquared(a[k], b[k])
	}
	return math.Sqrt(sum)
}

// dispersion sums cost(x, nearest reference) over X.
func dispersion(X, refs [][]float64, dist, cost distanceFunc) float64 {
	total := 0.0
	for _, x := range X {
		total += cost(x, refs[nearest(x, refs, dist)])
	}
	return total
}

// validate checks the hyperparameters against X before Fit touches any state.
func validate(est fmt.Stringer, X [][]float64, s settings, batched bool) error {
	if err := core.Matrix(X).Validate(); err != nil {
		return fmt.Errorf("%s: fit: %w", est, err)
	}
	n := len(X)
	cfgErr := func(param string, v int, reason string) error {
		return &model.ConfigError{Estimator: est.String(), Param: param, Value: v, Reason: reason}
	}
	switch {
	case s.k <= 0:
		return cfgErr("n_clusters", s.k, "must be positive")
	case s.k > n:
		return cfgErr("n_clusters", s.k, fmt.Sprintf("exceeds the %d available samples", n))
	case s.maxIter <= 0:
		return cfgErr("max_iter", s.maxIter, "must be positive")
	}
	if batched {
		switch {
		case s.batchSize <= 0:
			return cfgErr("batch_size", s.batchSize, "must be positive")
		case s.batchSize > n:
			return cfgErr("batch_size", s.batchSize, fmt.Sprintf("exceeds the %d available samples", n))
		}
	}
	return nil
}

func predict(X, refs [][]float64, dist distanceFunc) ([]int, error) {
	if err := core.Matrix(X).CheckCols(len(refs[0])); err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}
	return assign(X, refs, dist, make([]int, len(X))), nil
}

// score evaluates c.Predict(X) with e, defaulting to the silhouette coefficient.
func score(c model.Clusterer, X [][]float64, e model.Evaluator) (float64, error) {
	labels, err := c.Predict(X)
	if err != nil {
		return 0, err
	}
	if e == nil {
		e = metric.Silhouette{}
	}
	return e.Compute(X, labels)
}

func logProgress(s settings, est fmt.Stringer, it int, prev, next [][]float64) {
	if !s.verbose || it%logEvery != 0 {
		return
	}
	s.logger.Info("iteration",
		zap.Stringer("estimator", est),
		zap.Int("iteration", it),
		zap.Int("max_iter", s.maxIter),
		zap.Float64("delta_norm", deltaNorm(prev, next)),
	)
}

func logConverged(s settings, est fmt.Stringer, it int) {
	if !s.verbose {
		return
	}
	s.logger.Info("early convergence", zap.Stringer("estimator", est), zap.Int("iteration", it))
}

func describe(name string, s settings) string {
	return fmt.Sprintf("%s(n_clusters=%d, max_iter=%d)", name, s.k, s.maxIter)
}
