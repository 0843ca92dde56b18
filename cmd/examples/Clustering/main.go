package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"luma/pkg/cluster"
	"luma/pkg/metric"
	"luma/pkg/model"
	"luma/pkg/pipeline"
	"luma/pkg/plot"
	"luma/pkg/preprocess"
)

// generateClusterData creates n samples in k clusters, each with d features.
func generateClusterData(rng *rand.Rand, n, k, d int, spread float64) (X [][]float64, trueCenters [][]float64) {
	X = make([][]float64, n)
	trueCenters = make([][]float64, k)
	for i := 0; i < k; i++ {
		center := make([]float64, d)
		for j := 0; j < d; j++ {
			center[j] = rng.Float64()*30 - 15
		}
		trueCenters[i] = center
	}
	for i := 0; i < n; i++ {
		c := rng.Intn(k)
		x := make([]float64, d)
		for j := 0; j < d; j++ {
			x[j] = trueCenters[c][j] + rng.NormFloat64()*spread
		}
		X[i] = x
	}
	return
}

// addOutliers replaces a share of the rows with far away points.
func addOutliers(rng *rand.Rand, X [][]float64, share float64) {
	for i := range X {
		if rng.Float64() < share {
			for j := range X[i] {
				X[i][j] += rng.NormFloat64() * 40
			}
		}
	}
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	const seed = 7
	rng := rand.New(rand.NewSource(seed))

	fmt.Println("=== Clustering: comparing the four variants ===")
	n, k, d := 3000, 4, 2
	X, trueCenters := generateClusterData(rng, n, k, d, 1.5)
	addOutliers(rng, X, 0.02)
	fmt.Printf("Generated %d samples in %d clusters with %d features.\n", n, k, d)
	fmt.Println("True centers:")
	for _, c := range trueCenters {
		fmt.Printf("  %.3f\n", c)
	}
	fmt.Println()

	for _, alg := range cluster.Algorithms {
		est, err := cluster.New(alg, k,
			cluster.WithRand(rand.New(rand.NewSource(seed))),
			cluster.WithBatchSize(256),
			cluster.WithLogger(logger),
		)
		if err != nil {
			log.Fatal(err)
		}

		start := time.Now()
		if err := est.Fit(X); err != nil {
			log.Fatal(err)
		}
		elapsed := time.Since(start)

		labels, err := est.Labels()
		if err != nil {
			log.Fatal(err)
		}
		sil, err := est.Score(X, metric.Silhouette{})
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("%s\n", est)
		fmt.Printf("  iterations: %d, time: %v\n", est.NIter(), elapsed)
		fmt.Printf("  inertia: %.2f, silhouette: %.4f\n", est.Inertia(), sil)
		for i, ref := range est.References() {
			fmt.Printf("  reference %d: %.3f\n", i, ref)
		}

		filename := fmt.Sprintf("clusters_%s.png", alg)
		if err := plot.NewScatter(est.String()).Plot(X, labels, est.References(), filename); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("  saved plot to %s\n\n", filename)
	}

	fmt.Println("=== Clustering with preprocessing: RobustScaler -> KMedians ===")
	wide := make([][]float64, len(X))
	for i, x := range X {
		// the second feature dominates Euclidean distances until rescaled.
		wide[i] = []float64{x[0], x[1] * 100}
	}
	var p model.Clusterer = pipeline.NewPipeline(
		cluster.NewKMedians(k, cluster.WithRand(rand.New(rand.NewSource(seed))), cluster.WithVerbose(true), cluster.WithLogger(logger)),
		preprocess.NewRobustScaler(),
	)
	if err := p.Fit(wide); err != nil {
		log.Fatal(err)
	}
	sil, err := p.Score(wide, nil)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s silhouette: %.4f\n", p, sil)

	inertia, err := p.Score(wide, metric.Inertia{})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s inertia in scaled space: %.2f\n", p, inertia)
	fmt.Println()

	fmt.Println("=== High-dimensional data: StandardScaler -> PCA(2) -> KMeansPlus ===")
	Xh, _ := generateClusterData(rng, 2000, k, 8, 2)
	pp := pipeline.NewPipeline(
		cluster.NewKMeansPlus(k, cluster.WithRand(rand.New(rand.NewSource(seed)))),
		preprocess.NewStandardScaler(),
		preprocess.NewPCA(2),
	)
	if err := pp.Fit(Xh); err != nil {
		log.Fatal(err)
	}
	projected, err := pp.Transform(Xh)
	if err != nil {
		log.Fatal(err)
	}
	labels, err := pp.Labels()
	if err != nil {
		log.Fatal(err)
	}
	km := pp.Final().(*cluster.KMeansPlus)
	if err := plot.NewScatter(pp.String()).Plot(projected, labels, km.Centroids(), "clusters_pca.png"); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Saved PCA cluster plot to clusters_pca.png")
}
