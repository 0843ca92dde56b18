package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMiniBatchRunsFullBudget(t *testing.T) {
	est := NewMiniBatchKMeans(2, WithBatchSize(4), WithMaxIter(17), seeded(1))
	require.NoError(t, est.Fit(twoPairs))
	assert.Equal(t, 17, est.NIter())
}

func TestMiniBatchInvalidBatchSize(t *testing.T) {
	for _, size := range []int{0, -1, len(twoPairs) + 1} {
		err := NewMiniBatchKMeans(2, WithBatchSize(size)).Fit(twoPairs)
		assert.ErrorContains(t, err, "batch_size")
	}
}

func TestMiniBatchWithFullBatchMatchesKMeans(t *testing.T) {
	full := NewKMeans(3, WithMaxIter(50), seeded(13))
	mini := NewMiniBatchKMeans(3, WithBatchSize(len(threeBlobs)), WithMaxIter(50), seeded(13))
	require.NoError(t, full.Fit(threeBlobs))
	require.NoError(t, mini.Fit(threeBlobs))

	want, got := full.Centroids(), mini.Centroids()
	require.Len(t, got, len(want))
	for k := range want {
		assert.InDeltaSlice(t, want[k], got[k], 1e-9)
	}
	assert.InDelta(t, full.Inertia(), mini.Inertia(), 1e-6)
}

func TestVerboseProgress(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	est := NewMiniBatchKMeans(2,
		WithBatchSize(4),
		WithMaxIter(25),
		WithLogger(zap.New(core)),
		WithVerbose(true),
		seeded(1),
	)
	require.NoError(t, est.Fit(twoPairs))

	entries := logs.FilterMessage("iteration").All()
	require.Len(t, entries, 3)
	for i, e := range entries {
		assert.Equal(t, int64(i*logEvery), e.ContextMap()["iteration"])
	}
}

func TestVerboseConvergence(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	est := NewKMeans(2, WithLogger(zap.New(core)), WithVerbose(true), seeded(1))
	require.NoError(t, est.Fit(twoPairs))

	assert.Equal(t, 1, logs.FilterMessage("iteration").Len())
	assert.Equal(t, 1, logs.FilterMessage("early convergence").Len())
}

func TestQuietByDefault(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	est := NewKMeans(2, WithLogger(zap.New(core)), seeded(1))
	require.NoError(t, est.Fit(twoPairs))
	assert.Zero(t, logs.Len())
}
