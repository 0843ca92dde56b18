package cluster

import (
	"math/rand"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultMaxIter is the iteration budget used when WithMaxIter is not given.
	DefaultMaxIter = 100
	// DefaultBatchSize is the MiniBatchKMeans sample size used when WithBatchSize is not given.
	DefaultBatchSize = 100

	// progress is logged every logEvery iterations when verbose.
	logEvery = 10
)

type settings struct {
	k         int
	maxIter   int
	batchSize int
	rng       *rand.Rand
	logger    *zap.Logger
	verbose   bool
}

// Option configures a clusterer. Options are accepted both by the constructors
// and by SetParams; parameters that are not mentioned keep their value.
type Option func(*settings)

// WithClusters sets the number of clusters.
func WithClusters(k int) Option {
	return func(s *settings) { s.k = k }
}

// WithMaxIter sets the iteration budget of Fit.
func WithMaxIter(n int) Option {
	return func(s *settings) { s.maxIter = n }
}

// WithBatchSize sets the mini-batch size. Only MiniBatchKMeans uses it.
func WithBatchSize(n int) Option {
	return func(s *settings) { s.batchSize = n }
}

// WithRand sets the random source used for initialization and batch sampling.
// Passing a source seeded with a constant makes Fit reproducible.
func WithRand(r *rand.Rand) Option {
	return func(s *settings) { s.rng = r }
}

// WithLogger sets the logger used for progress reporting.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithVerbose enables progress logging during Fit.
func WithVerbose(v bool) Option {
	return func(s *settings) { s.verbose = v }
}

func newSettings(k int, opts []Option) settings {
	s := settings{
		k:         k,
		maxIter:   DefaultMaxIter,
		batchSize: DefaultBatchSize,
	}
	s.apply(opts)
	return s
}

func (s *settings) apply(opts []Option) {
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
}
