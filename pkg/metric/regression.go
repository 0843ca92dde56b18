package metric

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Regression metrics take the ground truth first and the predictions second.
// Both slices must have the same, non-zero length.

func MAE(yTrue, yPred []float64) float64 {
	s := 0.0
	for i := range yTrue {
		s += math.Abs(yTrue[i] - yPred[i])
	}
	return s / float64(len(yTrue))
}

func MSE(yTrue, yPred []float64) float64 {
	s := 0.0
	for i := range yTrue {
		d := yTrue[i] - yPred[i]
		s += d * d
	}
	return s / float64(len(yTrue))
}

func RMSE(yTrue, yPred []float64) float64 { return math.Sqrt(MSE(yTrue, yPred)) }

// MAPE is the mean absolute percentage error, in percent.
// A zero in yTrue makes the result infinite.
func MAPE(yTrue, yPred []float64) float64 {
	s := 0.0
	for i := range yTrue {
		s += math.Abs((yTrue[i] - yPred[i]) / yTrue[i])
	}
	return s / float64(len(yTrue)) * 100
}

// R2 is the coefficient of determination. A constant yTrue yields 0.
func R2(yTrue, yPred []float64) float64 {
	m := stat.Mean(yTrue, nil)
	ssTot, ssRes := 0.0, 0.0
	for i := range yTrue {
		d := yTrue[i] - m
		ssTot += d * d
		r := yTrue[i] - yPred[i]
		ssRes += r * r
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}

// Report holds every regression metric for one prediction.
type Report struct {
	MAE  float64
	MSE  float64
	RMSE float64
	MAPE float64
	R2   float64
}

// Complex computes all regression metrics at once.
func Complex(yTrue, yPred []float64) Report {
	return Report{
		MAE:  MAE(yTrue, yPred),
		MSE:  MSE(yTrue, yPred),
		RMSE: RMSE(yTrue, yPred),
		MAPE: MAPE(yTrue, yPred),
		R2:   R2(yTrue, yPred),
	}
}
