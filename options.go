package tasktree

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rizo/tasktree/metrics"
)

// Option configures an evaluation. Pass options to Run, Stream, Map, or
// ForEach.
type Option func(*Config)

// WithCredit sets the root fan-out credit: the number of extra workers the
// tree may run concurrently. Zero forces fully in-line execution.
func WithCredit(n uint) Option {
	return func(cfg *Config) { cfg.Credit = n }
}

// WithChildBuffer sets the capacity of each branch's child-event inbox
// (default 1024).
func WithChildBuffer(size uint) Option {
	return func(cfg *Config) { cfg.ChildBuffer = size }
}

// WithResultsBuffer sets the capacity of the results channel returned by
// Stream (default 1024).
func WithResultsBuffer(size uint) Option {
	return func(cfg *Config) { cfg.ResultsBuffer = size }
}

// WithErrorsBuffer sets the capacity of the errors channel returned by
// Stream (default 16).
func WithErrorsBuffer(size uint) Option {
	return func(cfg *Config) { cfg.ErrorsBuffer = size }
}

// WithShutdownTimeout bounds the root drain when a pending branch never
// completes (default: wait indefinitely).
func WithShutdownTimeout(d time.Duration) Option {
	return func(cfg *Config) { cfg.ShutdownTimeout = d }
}

// WithLogger directs engine debug logging to l (default: zerolog.Nop()).
func WithLogger(l zerolog.Logger) Option {
	return func(cfg *Config) { cfg.Logger = l }
}

// WithMetrics records engine instruments into p (default: metrics.Nop()).
func WithMetrics(p metrics.Provider) Option {
	return func(cfg *Config) { cfg.Metrics = p }
}

// WithConfig replaces the whole configuration with cfg, for callers that
// assembled one via ConfigFromMap. Options after it still apply on top.
func WithConfig(cfg Config) Option {
	return func(dst *Config) { *dst = cfg }
}

func buildConfig(opts []Option) (Config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			return Config{}, fmt.Errorf("%w: nil option", ErrInvalidConfig)
		}
		opt(&cfg)
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.Nop()
	}
	if err := validateConfig(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
