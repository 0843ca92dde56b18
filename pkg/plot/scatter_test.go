package plot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	points = [][]float64{{0, 0}, {0, 1}, {10, 0}, {10, 1}}
	labels = []int{0, 0, 1, 1}
	refs   = [][]float64{{0, 0.5}, {10, 0.5}}
)

func TestScatterPlot(t *testing.T) {
	for _, name := range []string{"clusters.png", "clusters.svg"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, NewScatter("KMeans").Plot(points, labels, refs, path))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}
}

func TestScatterPlotWithoutRefs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.png")
	require.NoError(t, NewScatter("").Plot(points, labels, nil, path))
	assert.FileExists(t, path)
}

func TestScatterPlotErrors(t *testing.T) {
	dir := t.TempDir()
	s := NewScatter("bad")

	err := s.Plot(points, labels[:2], refs, filepath.Join(dir, "a.png"))
	assert.ErrorIs(t, err, ErrLabelCount)

	err = s.Plot([][]float64{{1}, {2}}, []int{0, 1}, nil, filepath.Join(dir, "b.png"))
	assert.ErrorIs(t, err, ErrTooFewFeatures)

	err = s.Plot(points, labels, [][]float64{{1}}, filepath.Join(dir, "c.png"))
	assert.ErrorIs(t, err, ErrTooFewFeatures)

	err = s.Plot(points, labels, refs, filepath.Join(dir, "d.unknown"))
	assert.Error(t, err)
}
