package data

import (
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const labelled = `height,weight,class
1.5,50,0
1.8,abc,1
1.7,70,1
1.6,60
`

func TestReadCSVWithLabel(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	ds, err := ReadCSV(strings.NewReader(labelled), Options{
		Header:   true,
		LabelCol: 2,
		Logger:   zap.New(core),
	})
	require.NoError(t, err)

	assert.Equal(t, [][]float64{{1.5, 50}, {1.7, 70}}, ds.X)
	assert.Equal(t, []float64{0, 1}, ds.Y)
	assert.Equal(t, Schema{FeatureNames: []string{"height", "weight"}, Label: "class"}, ds.Schema)
	// the unparsable and the short record
	assert.Equal(t, 2, logs.FilterMessage("skipping record").Len())
}

func TestReadCSVNoHeader(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader("1,2\n3,4\n5,6\n"), Options{LabelCol: NoLabel})
	require.NoError(t, err)

	assert.Equal(t, [][]float64{{1, 2}, {3, 4}, {5, 6}}, ds.X)
	assert.Nil(t, ds.Y)
	assert.Equal(t, []string{"x0", "x1"}, ds.Schema.FeatureNames)
	assert.Empty(t, ds.Schema.Label)
}

func TestReadCSVLabelFirstColumn(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader("7,1,2\n8,3,4\n"), Options{LabelCol: 0})
	require.NoError(t, err)

	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, ds.X)
	assert.Equal(t, []float64{7, 8}, ds.Y)
	assert.Equal(t, "y", ds.Schema.Label)
}

func TestReadCSVNoRecords(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("a,b\nx,y\n"), Options{Header: true, LabelCol: NoLabel})
	assert.ErrorIs(t, err, ErrNoRecords)

	_, err = ReadCSV(strings.NewReader(""), Options{Header: true, LabelCol: NoLabel})
	assert.Error(t, err)
}

func TestStreamCSVStop(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 100; i++ {
		sb.WriteString("1,2\n")
	}
	out := make(chan Sample)
	_, done, errc, err := StreamCSV(strings.NewReader(sb.String()), Options{LabelCol: NoLabel}, out)
	require.NoError(t, err)

	first := <-out
	assert.Equal(t, []float64{1, 2}, first.X)
	close(done)
	for range out {
	}
	assert.NoError(t, <-errc)
}

// failingReader serves data and then fails every read with err.
type failingReader struct {
	data io.Reader
	err  error
}

func (r *failingReader) Read(p []byte) (int, error) {
	n, err := r.data.Read(p)
	if err == io.EOF {
		return n, r.err
	}
	return n, err
}

func TestReadCSVReadError(t *testing.T) {
	errDisk := errors.New("disk gone")
	core, logs := observer.New(zapcore.WarnLevel)
	r := &failingReader{data: strings.NewReader("1,2\n3,4\n"), err: errDisk}

	result := make(chan error, 1)
	go func() {
		_, err := ReadCSV(r, Options{LabelCol: NoLabel, Logger: zap.New(core)})
		result <- err
	}()

	select {
	case err := <-result:
		assert.ErrorIs(t, err, errDisk)
	case <-time.After(2 * time.Second):
		t.Fatal("ReadCSV did not return on a persistent read error")
	}
	assert.Zero(t, logs.Len())
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n0,1\n2,3\n"), 0o600))

	ds, err := LoadCSV(path, Options{Header: true, LabelCol: NoLabel})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 1}, {2, 3}}, ds.X)
	assert.Equal(t, []string{"a", "b"}, ds.Schema.FeatureNames)

	_, err = LoadCSV(filepath.Join(t.TempDir(), "missing.csv"), Options{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadCSVMissingValues(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader("1,NA\n,2\n3, 4\n"), Options{LabelCol: NoLabel})
	require.NoError(t, err)

	require.Len(t, ds.X, 3)
	assert.True(t, math.IsNaN(ds.X[0][1]))
	assert.True(t, math.IsNaN(ds.X[1][0]))
	assert.Equal(t, []float64{3, 4}, ds.X[2])
}
