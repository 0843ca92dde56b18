package cluster

import (
	"luma/pkg/model"
)

// KMeans partitions data points into K clusters around their means (Lloyd's algorithm).
// Initial centroids are K distinct training rows picked uniformly at random.
type KMeans struct {
	cfg       settings
	centroids [][]float64
	x         [][]float64
	nIter     int
	inertia   float64
	fitted    bool
}

// NewKMeans creates and returns a new KMeans model with k clusters.
func NewKMeans(k int, opts ...Option) *KMeans {
	return &KMeans{cfg: newSettings(k, opts)}
}

// Fit trains the model by alternating assignment and mean update until the
// centroids stop moving or the iteration budget is spent.
func (m *KMeans) Fit(X [][]float64) error {
	if err := validate(m, X, m.cfg, false); err != nil {
		return err
	}

	centroids := copyRows(X, sampleIndices(m.cfg.rng, len(X), m.cfg.k))
	labels := make([]int, len(X))

	it := 0
	for it < m.cfg.maxIter {
		assign(X, centroids, euclidean, labels)
		next := meanUpdate(X, labels, centroids)
		it++
		if refsEqual(next, centroids) {
			logConverged(m.cfg, m, it-1)
			break
		}
		logProgress(m.cfg, m, it-1, centroids, next)
		centroids = next
	}

	m.centroids = centroids
	m.x = X
	m.nIter = it
	m.inertia = dispersion(X, centroids, euclidean, euclidSquared)
	m.fitted = true
	return nil
}

// Predict assigns each row of X to its nearest centroid.
func (m *KMeans) Predict(X [][]float64) ([]int, error) {
	if !m.fitted {
		return nil, model.NotFitted(m)
	}
	return predict(X, m.centroids, euclidean)
}

// Labels returns the cluster of every training row.
func (m *KMeans) Labels() ([]int, error) {
	if !m.fitted {
		return nil, model.NotFitted(m)
	}
	return m.Predict(m.x)
}

// Score evaluates the clustering of X. A nil evaluator means the silhouette coefficient.
func (m *KMeans) Score(X [][]float64, e model.Evaluator) (float64, error) {
	return score(m, X, e)
}

func (m *KMeans) SetParams(opts ...Option) { m.cfg.apply(opts) }

// Centroids returns a copy of the fitted centroids, or nil before Fit.
func (m *KMeans) Centroids() [][]float64 { return cloneRefs(m.centroids) }

func (m *KMeans) References() [][]float64 { return cloneRefs(m.centroids) }

func (m *KMeans) NIter() int { return m.nIter }

// Inertia is the sum of squared distances of training rows to their nearest centroid.
func (m *KMeans) Inertia() float64 { return m.inertia }

func (m *KMeans) String() string { return describe("KMeans", m.cfg) }
