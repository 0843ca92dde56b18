package cluster

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedPlusPlusDistinct(t *testing.T) {
	X := [][]float64{{1, 1}, {1, 1}, {1, 1}, {2, 2}, {1, 1}}
	for seed := int64(0); seed < 30; seed++ {
		idxs := seedPlusPlus(X, len(X), rand.New(rand.NewSource(seed)))
		require.Len(t, idxs, len(X))

		seen := make(map[int]bool)
		for _, i := range idxs {
			assert.False(t, seen[i], "index %d drawn twice", i)
			seen[i] = true
		}
	}
}

func TestSeedPlusPlusPrefersFarPoints(t *testing.T) {
	X := [][]float64{{0}, {0.001}, {1000}, {1000.001}}
	for seed := int64(0); seed < 200; seed++ {
		idxs := seedPlusPlus(X, 2, rand.New(rand.NewSource(seed)))
		farSide := func(i int) bool { return X[i][0] > 500 }
		assert.NotEqual(t, farSide(idxs[0]), farSide(idxs[1]), "seed %d", seed)
	}
}

func TestKMeansPlusSeparatesDistantPairs(t *testing.T) {
	X := [][]float64{{0, 0}, {0, 1}, {1000, 0}, {1000, 1}}
	est := NewKMeansPlus(2, WithMaxIter(10), seeded(4))
	require.NoError(t, est.Fit(X))

	labels, err := est.Labels()
	require.NoError(t, err)
	assert.Equal(t, labels[0], labels[1])
	assert.Equal(t, labels[2], labels[3])
	assert.NotEqual(t, labels[0], labels[2])

	c := est.Centroids()
	assert.InDeltaSlice(t, []float64{0, 0.5}, c[labels[0]], 1e-9)
	assert.InDeltaSlice(t, []float64{1000, 0.5}, c[labels[2]], 1e-9)
	assert.InDelta(t, 1.0, est.Inertia(), 1e-9)
}
