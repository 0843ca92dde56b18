package cluster

import (
	"math/rand"

	"luma/pkg/model"
)

// KMeansPlus is K-Means with k-means++ seeding (Arthur & Vassilvitskii, 2007):
// every further seed is drawn with probability proportional to its squared
// distance from the nearest seed chosen so far.
type KMeansPlus struct {
	cfg       settings
	centroids [][]float64
	x         [][]float64
	nIter     int
	inertia   float64
	fitted    bool
}

// NewKMeansPlus creates and returns a new k-means++ model with k clusters.
func NewKMeansPlus(k int, opts ...Option) *KMeansPlus {
	return &KMeansPlus{cfg: newSettings(k, opts)}
}

// Fit seeds the centroids with k-means++ and runs the K-Means iterations.
func (m *KMeansPlus) Fit(X [][]float64) error {
	if err := validate(m, X, m.cfg, false); err != nil {
		return err
	}

	centroids := copyRows(X, seedPlusPlus(X, m.cfg.k, m.cfg.rng))
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

// seedPlusPlus returns k distinct row indices of X chosen by D² weighting.
// Rows already chosen are never drawn again. When every remaining row
// coincides with a seed the next one is drawn uniformly from the rest.
func seedPlusPlus(X [][]float64, k int, rng *rand.Rand) []int {
	n := len(X)
	chosen := make([]bool, n)
	idxs := make([]int, 0, k)

	first := rng.Intn(n)
	chosen[first] = true
	idxs = append(idxs, first)

	// distSq[i] is the squared distance from X[i] to its nearest seed.
	distSq := make([]float64, n)
	for i, x := range X {
		distSq[i] = euclidSquared(x, X[first])
	}

	for len(idxs) < k {
		total := 0.0
		for i, d2 := range distSq {
			if !chosen[i] {
				total += d2
			}
		}

		next := -1
		if total > 0 {
			r := rng.Float64() * total
			cumulative := 0.0
			for i, d2 := range distSq {
				if chosen[i] || d2 == 0 {
					continue
				}
				cumulative += d2
				next = i
				if cumulative >= r {
					break
				}
			}
		} else {
			rest := make([]int, 0, n-len(idxs))
			for i := range chosen {
				if !chosen[i] {
					rest = append(rest, i)
				}
			}
			next = rest[rng.Intn(len(rest))]
		}

		chosen[next] = true
		idxs = append(idxs, next)
		for i, x := range X {
			if d2 := euclidSquared(x, X[next]); d2 < distSq[i] {
				distSq[i] = d2
			}
		}
	}
	return idxs
}

// Predict assigns each row of X to its nearest centroid.
func (m *KMeansPlus) Predict(X [][]float64) ([]int, error) {
	if !m.fitted {
		return nil, model.NotFitted(m)
	}
	return predict(X, m.centroids, euclidean)
}

// Labels returns the cluster of every training row.
func (m *KMeansPlus) Labels() ([]int, error) {
	if !m.fitted {
		return nil, model.NotFitted(m)
	}
	return m.Predict(m.x)
}

// Score evaluates the clustering of X. A nil evaluator means the silhouette coefficient.
func (m *KMeansPlus) Score(X [][]float64, e model.Evaluator) (float64, error) {
	return score(m, X, e)
}

func (m *KMeansPlus) SetParams(opts ...Option) { m.cfg.apply(opts) }

// Centroids returns a copy of the fitted centroids, or nil before Fit.
func (m *KMeansPlus) Centroids() [][]float64 { return cloneRefs(m.centroids) }

func (m *KMeansPlus) References() [][]float64 { return cloneRefs(m.centroids) }

func (m *KMeansPlus) NIter() int { return m.nIter }

func (m *KMeansPlus) Inertia() float64 { return m.inertia }

func (m *KMeansPlus) String() string { return describe("KMeansPlus", m.cfg) }
