// Command cluster fits a clustering algorithm to a CSV file and reports the
// result. It is configured through LUMA_* environment variables.
package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"luma/pkg/data"
	"luma/pkg/metric"
	"luma/pkg/model"
	"luma/pkg/pipeline"
	"luma/pkg/plot"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger, err := cfg.newLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	os.Exit(execute(cfg, logger))
}

// execute runs the command and returns the process exit code. The logger is
// flushed before returning.
func execute(cfg *Config, logger *zap.Logger) int {
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("cluster failed", zap.Error(err))
		return 1
	}
	return 0
}

func run(cfg *Config, logger *zap.Logger) error {
	ds, err := data.LoadCSV(cfg.Input, cfg.loaderOptions(logger))
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	logger.Info("dataset loaded",
		zap.String("path", cfg.Input),
		zap.Int("samples", len(ds.X)),
		zap.Strings("features", ds.Schema.FeatureNames))

	est, err := cfg.newEstimator(logger)
	if err != nil {
		return err
	}
	steps, err := cfg.newSteps()
	if err != nil {
		return err
	}

	var clusterer model.Clusterer = est
	X := ds.X
	if len(steps) > 0 {
		p := pipeline.NewPipeline(est, steps...)
		if err := p.Fit(ds.X); err != nil {
			return err
		}
		if X, err = p.Transform(ds.X); err != nil {
			return err
		}
		clusterer = p
	} else if err := est.Fit(X); err != nil {
		return err
	}

	labels, err := clusterer.Labels()
	if err != nil {
		return err
	}
	fmt.Printf("%s fitted in %d iterations, inertia %.4f\n", clusterer, est.NIter(), est.Inertia())
	for k, ref := range est.References() {
		fmt.Printf("  cluster %d: %v\n", k, ref)
	}

	sil, err := clusterer.Score(ds.X, nil)
	switch {
	case errors.Is(err, metric.ErrLabelCount):
		logger.Warn("silhouette undefined for this assignment", zap.Error(err))
	case err != nil:
		return err
	default:
		fmt.Printf("silhouette: %.4f\n", sil)
	}

	if cfg.PlotPath != "" {
		viz := plot.NewScatter(est.String())
		if err := viz.Plot(X, labels, est.References(), cfg.PlotPath); err != nil {
			return err
		}
		logger.Info("plot saved", zap.String("path", cfg.PlotPath))
	}
	return nil
}
