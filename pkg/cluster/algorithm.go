package cluster

import "fmt"

// Algorithm names a clustering variant.
type Algorithm string

const (
	AlgKMeans    Algorithm = "KMEANS"
	AlgKMeansPP  Algorithm = "KMEANS_PP"
	AlgKMedians  Algorithm = "KMEDIANS"
	AlgMiniBatch Algorithm = "MINI_BATCH"
)

// Algorithms lists every supported variant.
var Algorithms = []Algorithm{AlgKMeans, AlgKMeansPP, AlgKMedians, AlgMiniBatch}

// New returns the clusterer implementing a with k clusters.
func New(a Algorithm, k int, opts ...Option) (Estimator, error) {
	switch a {
	case AlgKMeans:
		return NewKMeans(k, opts...), nil
	case AlgKMeansPP:
		return NewKMeansPlus(k, opts...), nil
	case AlgKMedians:
		return NewKMedians(k, opts...), nil
	case AlgMiniBatch:
		return NewMiniBatchKMeans(k, opts...), nil
	default:
		return nil, fmt.Errorf("unknown clustering algorithm: %s", a)
	}
}
