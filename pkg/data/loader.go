package data

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"luma/pkg/core"
)

// NoLabel marks a dataset without a label column.
const NoLabel = -1

var ErrNoRecords = errors.New("no valid records")

// Sample represents a single data point.
type Sample struct {
	X []float64
	Y float64
}

// Dataset is a fully loaded feature matrix with optional labels.
type Dataset struct {
	X      [][]float64
	Y      []float64 // nil when loaded with NoLabel
	Schema Schema
}

// Options controls CSV parsing.
type Options struct {
	// Header is set when the first record holds column names.
	Header bool
	// LabelCol is the index of the label column, or NoLabel.
	LabelCol int
	Logger   *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// StreamCSV streams CSV rows as Samples through out and closes it at the end.
// The header, if requested, is read before StreamCSV returns.
// Records that cannot be parsed are logged and skipped. Any other read error
// ends the stream and is delivered on errc once out is closed.
// Close the returned done chan to stop early.
func StreamCSV(r io.Reader, opts Options, out chan<- Sample) (header []string, done chan struct{}, errc <-chan error, err error) {
	reader := csv.NewReader(bufio.NewReader(r))
	if opts.Header {
		header, err = reader.Read()
		if err != nil {
			return nil, nil, nil, fmt.Errorf("read header: %w", err)
		}
		header = append([]string(nil), header...)
	}
	reader.ReuseRecord = true
	logger := opts.logger()
	done = make(chan struct{})
	errs := make(chan error, 1)

	go func() {
		defer close(errs)
		defer close(out)
		line := 0
		for {
			line++
			rec, err := reader.Read()
			if err == io.EOF {
				return
			}
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				logger.Warn("skipping record", zap.Int("record", line), zap.Error(err))
				continue
			}
			if err != nil {
				errs <- fmt.Errorf("record %d: %w", line, err)
				return
			}
			if opts.LabelCol >= len(rec) {
				logger.Warn("skipping record: label column out of range",
					zap.Int("record", line), zap.Int("label_col", opts.LabelCol))
				continue
			}

			s, err := parseRecord(rec, opts.LabelCol)
			if err != nil {
				logger.Warn("skipping record", zap.Int("record", line), zap.Error(err))
				continue
			}
			select {
			case out <- s:
			case <-done:
				return
			}
		}
	}()
	return header, done, errs, nil
}

// isMissing reports whether a field marks a missing value. Missing values load as NaN.
func isMissing(f string) bool {
	switch strings.TrimSpace(f) {
	case "", "NA", "NaN", "?":
		return true
	}
	return false
}

func parseRecord(rec []string, labelCol int) (Sample, error) {
	n := len(rec)
	if labelCol != NoLabel {
		n--
	}
	s := Sample{X: make([]float64, 0, n)}
	for i, f := range rec {
		v := math.NaN()
		if !isMissing(f) {
			var err error
			if v, err = strconv.ParseFloat(strings.TrimSpace(f), 64); err != nil {
				return Sample{}, fmt.Errorf("column %d: %w", i, err)
			}
		}
		if i == labelCol {
			s.Y = v
		} else {
			s.X = append(s.X, v)
		}
	}
	return s, nil
}

// ReadCSV loads every valid record of r into a Dataset.
func ReadCSV(r io.Reader, opts Options) (*Dataset, error) {
	samples := make(chan Sample)
	header, _, errc, err := StreamCSV(r, opts, samples)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{}
	for s := range samples {
		ds.X = append(ds.X, s.X)
		if opts.LabelCol != NoLabel {
			ds.Y = append(ds.Y, s.Y)
		}
	}
	if err := <-errc; err != nil {
		return nil, err
	}
	if len(ds.X) == 0 {
		return nil, ErrNoRecords
	}
	if err := core.Matrix(ds.X).Validate(); err != nil {
		return nil, err
	}

	_, cols := core.Matrix(ds.X).Dims()
	switch {
	case header == nil:
		ds.Schema.FeatureNames = defaultNames(cols)
		if opts.LabelCol != NoLabel {
			ds.Schema.Label = "y"
		}
	default:
		for i, name := range header {
			if i == opts.LabelCol {
				ds.Schema.Label = name
			} else {
				ds.Schema.FeatureNames = append(ds.Schema.FeatureNames, name)
			}
		}
	}
	return ds, nil
}

// LoadCSV opens path and reads it with ReadCSV.
func LoadCSV(path string, opts Options) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ds, err := ReadCSV(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}
