package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"luma/pkg/classifier"
	"luma/pkg/loader"
	"luma/pkg/metric"
	"luma/pkg/model"
	"luma/pkg/preprocess"
)

// generateGaussianData creates n samples from k classes, each a Gaussian blob in d dimensions.
func generateGaussianData(rng *rand.Rand, n, k, d int) (X [][]float64, y []float64) {
	centers := make([][]float64, k)
	for c := range centers {
		centers[c] = make([]float64, d)
		for j := range centers[c] {
			centers[c][j] = rng.Float64()*20 - 10
		}
	}
	X = make([][]float64, n)
	y = make([]float64, n)
	for i := 0; i < n; i++ {
		c := rng.Intn(k)
		x := make([]float64, d)
		for j := range x {
			x[j] = centers[c][j] + rng.NormFloat64()*2
		}
		X[i] = x
		y[i] = float64(c)
	}
	return
}

// generateBinaryData creates n samples of d binary features. Class 1 turns
// the first half of the features on more often.
func generateBinaryData(rng *rand.Rand, n, d int) (X [][]float64, y []float64) {
	X = make([][]float64, n)
	y = make([]float64, n)
	for i := 0; i < n; i++ {
		c := rng.Intn(2)
		x := make([]float64, d)
		for j := range x {
			p := 0.2
			if (j < d/2) == (c == 1) {
				p = 0.8
			}
			if rng.Float64() < p {
				x[j] = 1
			}
		}
		X[i] = x
		y[i] = float64(c)
	}
	return
}

func evaluate(m model.Classifier, XTrain, XTest [][]float64, yTrain, yTest []float64) {
	start := time.Now()
	if err := m.Fit(XTrain, yTrain); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s trained in %v\n", m, time.Since(start))

	acc, err := m.Score(XTest, yTest)
	if err != nil {
		log.Fatal(err)
	}
	pred, err := m.Predict(XTest)
	if err != nil {
		log.Fatal(err)
	}
	prec, rec, f1 := metric.PrecisionRecallF1(yTest, pred, m.Classes()[0])
	fmt.Printf("  accuracy: %.4f\n", acc)
	fmt.Printf("  class %v precision: %.4f, recall: %.4f, f1: %.4f\n", m.Classes()[0], prec, rec, f1)

	proba, err := m.PredictProba(XTest[:3])
	if err != nil {
		log.Fatal(err)
	}
	for i, p := range proba {
		fmt.Printf("  sample %d: P=%.3f true=%v\n", i, p, yTest[i])
	}
	fmt.Println()
}

func main() {
	rng := rand.New(rand.NewSource(11))

	fmt.Println("=== Gaussian Naive Bayes ===")
	X, y := generateGaussianData(rng, 2000, 3, 4)
	XTrain, XTest, yTrain, yTest, err := loader.TrainTestSplit(rng, X, y, 0.2)
	if err != nil {
		log.Fatal(err)
	}
	scaler := preprocess.NewStandardScaler()
	if XTrain, err = scaler.FitTransform(XTrain); err != nil {
		log.Fatal(err)
	}
	if XTest, err = scaler.Transform(XTest); err != nil {
		log.Fatal(err)
	}
	evaluate(classifier.NewGaussianNB(), XTrain, XTest, yTrain, yTest)

	fmt.Println("=== Bernoulli Naive Bayes ===")
	Xb, yb := generateBinaryData(rng, 2000, 10)
	XbTrain, XbTest, ybTrain, ybTest, err := loader.TrainTestSplit(rng, Xb, yb, 0.2)
	if err != nil {
		log.Fatal(err)
	}
	evaluate(classifier.NewBernoulliNB(), XbTrain, XbTest, ybTrain, ybTest)

	fmt.Println("=== Regression metrics ===")
	yTrue := make([]float64, 200)
	yPred := make([]float64, 200)
	for i := range yTrue {
		yTrue[i] = 10 + float64(i)*0.5
		yPred[i] = yTrue[i] + rng.NormFloat64()
	}
	r := metric.Complex(yTrue, yPred)
	fmt.Printf("MAE: %.4f, MSE: %.4f, RMSE: %.4f, MAPE: %.2f%%, R2: %.4f\n", r.MAE, r.MSE, r.RMSE, r.MAPE, r.R2)
}
