package loader

import (
	"errors"
	"fmt"
	"math/rand"
)

var (
	ErrLengthMismatch = errors.New("X and Y have different lengths")
	ErrRatio          = errors.New("test ratio must be in [0, 1)")
)

// TrainTestSplit shuffles X, Y with rng and splits them into train and test
// sets, the test set holding int(len(X)*testRatio) samples. Y may be nil.
func TrainTestSplit(rng *rand.Rand, X [][]float64, Y []float64, testRatio float64) (XTrain, XTest [][]float64, YTrain, YTest []float64, err error) {
	if Y != nil && len(Y) != len(X) {
		return nil, nil, nil, nil, fmt.Errorf("split: %d rows, %d labels: %w", len(X), len(Y), ErrLengthMismatch)
	}
	if testRatio < 0 || testRatio >= 1 {
		return nil, nil, nil, nil, fmt.Errorf("split: ratio %v: %w", testRatio, ErrRatio)
	}

	n := len(X)
	indices := rng.Perm(n)
	nTest := int(float64(n) * testRatio)
	for i, idx := range indices {
		if i < nTest {
			XTest = append(XTest, X[idx])
			if Y != nil {
				YTest = append(YTest, Y[idx])
			}
		} else {
			XTrain = append(XTrain, X[idx])
			if Y != nil {
				YTrain = append(YTrain, Y[idx])
			}
		}
	}
	return XTrain, XTest, YTrain, YTest, nil
}

// ShuffleData shuffles X and Y in unison. Rows are shared, not copied.
func ShuffleData(rng *rand.Rand, X [][]float64, Y []float64) ([][]float64, []float64, error) {
	if len(Y) != len(X) {
		return nil, nil, fmt.Errorf("shuffle: %d rows, %d labels: %w", len(X), len(Y), ErrLengthMismatch)
	}
	n := len(X)
	indices := rng.Perm(n)
	XShuf := make([][]float64, n)
	YShuf := make([]float64, n)
	for i, idx := range indices {
		XShuf[i] = X[idx]
		YShuf[i] = Y[idx]
	}
	return XShuf, YShuf, nil
}
