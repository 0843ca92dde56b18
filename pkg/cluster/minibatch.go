package cluster

import (
	"fmt"

	"luma/pkg/core"
	"luma/pkg/model"
)

// MiniBatchKMeans updates the centroids from a random subsample of the data
// on every iteration instead of the full set. It has no convergence check
// and always spends the whole iteration budget.
type MiniBatchKMeans struct {
	cfg       settings
	centroids [][]float64
	x         [][]float64
	nIter     int
	inertia   float64
	fitted    bool
}

// NewMiniBatchKMeans creates and returns a new mini-batch model with k clusters.
// The batch size defaults to DefaultBatchSize and is changed with WithBatchSize.
func NewMiniBatchKMeans(k int, opts ...Option) *MiniBatchKMeans {
	return &MiniBatchKMeans{cfg: newSettings(k, opts)}
}

// Fit draws a fresh batch of distinct rows per iteration, assigns it to the
// nearest centroids and replaces every centroid present in the batch with the
// mean of its batch members. Centroids absent from a batch stay where they are.
func (m *MiniBatchKMeans) Fit(X [][]float64) error {
	if err := validate(m, X, m.cfg, true); err != nil {
		return err
	}

	data := core.Matrix(X)
	centroids := copyRows(X, sampleIndices(m.cfg.rng, len(X), m.cfg.k))
	labels := make([]int, m.cfg.batchSize)

	for it := 0; it < m.cfg.maxIter; it++ {
		batch := data.Gather(sampleIndices(m.cfg.rng, len(X), m.cfg.batchSize))
		assign(batch, centroids, euclidean, labels)
		next := meanUpdate(batch, labels, centroids)
		logProgress(m.cfg, m, it, centroids, next)
		centroids = next
	}

	m.centroids = centroids
	m.x = X
	m.nIter = m.cfg.maxIter
	m.inertia = dispersion(X, centroids, euclidean, euclidSquared)
	m.fitted = true
	return nil
}

// Predict assigns each row of X to its nearest centroid.
func (m *MiniBatchKMeans) Predict(X [][]float64) ([]int, error) {
	if !m.fitted {
		return nil, model.NotFitted(m)
	}
	return predict(X, m.centroids, euclidean)
}

// Labels returns the cluster of every training row.
func (m *MiniBatchKMeans) Labels() ([]int, error) {
	if !m.fitted {
		return nil, model.NotFitted(m)
	}
	return m.Predict(m.x)
}

// Score evaluates the clustering of X. A nil evaluator means the silhouette coefficient.
func (m *MiniBatchKMeans) Score(X [][]float64, e model.Evaluator) (float64, error) {
	return score(m, X, e)
}

func (m *MiniBatchKMeans) SetParams(opts ...Option) { m.cfg.apply(opts) }

// Centroids returns a copy of the fitted centroids, or nil before Fit.
func (m *MiniBatchKMeans) Centroids() [][]float64 { return cloneRefs(m.centroids) }

func (m *MiniBatchKMeans) References() [][]float64 { return cloneRefs(m.centroids) }

func (m *MiniBatchKMeans) NIter() int { return m.nIter }

func (m *MiniBatchKMeans) Inertia() float64 { return m.inertia }

func (m *MiniBatchKMeans) String() string {
	return fmt.Sprintf("MiniBatchKMeans(n_clusters=%d, batch_size=%d, max_iter=%d)",
		m.cfg.k, m.cfg.batchSize, m.cfg.maxIter)
}
