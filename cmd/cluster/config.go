package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"luma/pkg/cluster"
	"luma/pkg/data"
	"luma/pkg/model"
	"luma/pkg/preprocess"
)

const (
	envPrefix  = "LUMA"
	imputeNone = preprocess.ImputeStrategy("NONE")
)

type ScalerType string

const (
	ScalerNone     ScalerType = "NONE"
	ScalerStandard ScalerType = "STANDARD"
	ScalerMinMax   ScalerType = "MINMAX"
	ScalerRobust   ScalerType = "ROBUST"
)

type Config struct {
	Input     string                    `envconfig:"INPUT" required:"true"`
	Header    bool                      `envconfig:"HEADER" default:"true"`
	LabelCol  int                       `envconfig:"LABEL_COL" default:"-1"`
	Algorithm cluster.Algorithm         `envconfig:"ALGORITHM" default:"KMEANS"`
	Clusters  int                       `envconfig:"CLUSTERS" default:"3"`
	MaxIter   int                       `envconfig:"MAX_ITER" default:"100"`
	BatchSize int                       `envconfig:"BATCH_SIZE" default:"100"`
	Seed      int64                     `envconfig:"SEED"`
	Impute    preprocess.ImputeStrategy `envconfig:"IMPUTE" default:"NONE"`
	Scaler    ScalerType                `envconfig:"SCALER" default:"NONE"`
	PCA       int                       `envconfig:"PCA"`
	PlotPath  string                    `envconfig:"PLOT"`
	Verbose   bool                      `envconfig:"VERBOSE"`
	LogLevel  string                    `envconfig:"LOG_LEVEL" default:"info"`
	LogDev    bool                      `envconfig:"LOG_DEV"`
}

func loadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}
	cfg.normalize()
	return &cfg, nil
}

// normalize upper-cases the enum settings so they match case-insensitively.
func (c *Config) normalize() {
	c.Algorithm = cluster.Algorithm(strings.ToUpper(string(c.Algorithm)))
	c.Scaler = ScalerType(strings.ToUpper(string(c.Scaler)))
	c.Impute = preprocess.ImputeStrategy(strings.ToUpper(string(c.Impute)))
}

func (c *Config) newLogger() (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	zc := zap.NewProductionConfig()
	if c.LogDev {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// newEstimator builds the configured clusterer. A zero seed uses the clock.
func (c *Config) newEstimator(logger *zap.Logger) (cluster.Estimator, error) {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return cluster.New(c.Algorithm, c.Clusters,
		cluster.WithMaxIter(c.MaxIter),
		cluster.WithBatchSize(c.BatchSize),
		cluster.WithRand(rand.New(rand.NewSource(seed))),
		cluster.WithLogger(logger),
		cluster.WithVerbose(c.Verbose),
	)
}

// newScaler returns nil for ScalerNone.
func (c *Config) newScaler() (model.Transformer, error) {
	switch c.Scaler {
	case ScalerNone, "":
		return nil, nil
	case ScalerStandard:
		return preprocess.NewStandardScaler(), nil
	case ScalerMinMax:
		return preprocess.NewMinMaxScaler(0, 1), nil
	case ScalerRobust:
		return preprocess.NewRobustScaler(), nil
	default:
		return nil, fmt.Errorf("unknown scaler: %s", c.Scaler)
	}
}

// newSteps returns the preprocessing steps in order: imputation, scaling, PCA.
func (c *Config) newSteps() ([]model.Transformer, error) {
	var steps []model.Transformer
	switch c.Impute {
	case "", imputeNone:
	case preprocess.ImputeMean, preprocess.ImputeMedian, preprocess.ImputeConstant:
		steps = append(steps, preprocess.NewSimpleImputer(c.Impute))
	default:
		return nil, fmt.Errorf("unknown imputation strategy: %s", c.Impute)
	}
	scaler, err := c.newScaler()
	if err != nil {
		return nil, err
	}
	if scaler != nil {
		steps = append(steps, scaler)
	}
	if c.PCA > 0 {
		steps = append(steps, preprocess.NewPCA(c.PCA))
	}
	return steps, nil
}

func (c *Config) loaderOptions(logger *zap.Logger) data.Options {
	return data.Options{Header: c.Header, LabelCol: c.LabelCol, Logger: logger}
}
