package cluster

import (
	"luma/pkg/model"
	"luma/pkg/stats"
)

// KMedians clusters with the Manhattan distance and represents every cluster
// by its elementwise median, which makes it less sensitive to outliers than KMeans.
type KMedians struct {
	cfg     settings
	medians [][]float64
	x       [][]float64
	nIter   int
	inertia float64
	fitted  bool
}

// NewKMedians creates and returns a new KMedians model with k clusters.
func NewKMedians(k int, opts ...Option) *KMedians {
	return &KMedians{cfg: newSettings(k, opts)}
}

// Fit starts from K distinct random rows and alternates L1 assignment and
// median update until the medians stop moving or the budget is spent.
func (m *KMedians) Fit(X [][]float64) error {
	if err := validate(m, X, m.cfg, false); err != nil {
		return err
	}

	medians := copyRows(X, sampleIndices(m.cfg.rng, len(X), m.cfg.k))
	labels := make([]int, len(X))

	it := 0
	for it < m.cfg.maxIter {
		assign(X, medians, manhattan, labels)
		next := medianUpdate(X, labels, medians)
		it++
		if refsEqual(next, medians) {
			logConverged(m.cfg, m, it-1)
			break
		}
		logProgress(m.cfg, m, it-1, medians, next)
		medians = next
	}

	m.medians = medians
	m.x = X
	m.nIter = it
	m.inertia = dispersion(X, medians, manhattan, manhattan)
	m.fitted = true
	return nil
}

// medianUpdate returns the elementwise median of every cluster.
// A cluster without points keeps its previous median.
func medianUpdate(X [][]float64, labels []int, prev [][]float64) [][]float64 {
	members := make([][][]float64, len(prev))
	for i, x := range X {
		members[labels[i]] = append(members[labels[i]], x)
	}
	next := make([][]float64, len(prev))
	for c, pts := range members {
		if len(pts) == 0 {
			next[c] = append([]float64(nil), prev[c]...)
			continue
		}
		next[c] = stats.Columns(pts, stats.MedianInPlace)
	}
	return next
}

// Predict assigns each row of X to its nearest median under the L1 distance.
func (m *KMedians) Predict(X [][]float64) ([]int, error) {
	if !m.fitted {
		return nil, model.NotFitted(m)
	}
	return predict(X, m.medians, manhattan)
}

// Labels returns the cluster of every training row.
func (m *KMedians) Labels() ([]int, error) {
	if !m.fitted {
		return nil, model.NotFitted(m)
	}
	return m.Predict(m.x)
}

// Score evaluates the clustering of X. A nil evaluator means the silhouette coefficient.
func (m *KMedians) Score(X [][]float64, e model.Evaluator) (float64, error) {
	return score(m, X, e)
}

func (m *KMedians) SetParams(opts ...Option) { m.cfg.apply(opts) }

// Medians returns a copy of the fitted medians, or nil before Fit.
func (m *KMedians) Medians() [][]float64 { return cloneRefs(m.medians) }

func (m *KMedians) References() [][]float64 { return cloneRefs(m.medians) }

func (m *KMedians) NIter() int { return m.nIter }

// Inertia is the sum of L1 distances of training rows to their nearest median.
func (m *KMedians) Inertia() float64 { return m.inertia }

func (m *KMedians) String() string { return describe("KMedians", m.cfg) }
