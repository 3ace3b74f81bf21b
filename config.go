package tasktree

import (
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cast"

	"github.com/rizo/tasktree/metrics"
)

// Config holds engine configuration for one evaluation.
type Config struct {
	// Credit is the size of the root fan-out credit pool: the number of
	// extra workers the tree may run concurrently. Zero forces fully
	// in-line, sequential execution.
	// Default: runtime.NumCPU().
	Credit uint

	// ChildBuffer is the capacity of each branch's child-event inbox.
	// Senders block when it fills; parents always drain before exiting.
	// Default: 1024.
	ChildBuffer uint

	// ResultsBuffer is the capacity of the results channel returned by
	// Stream.
	// Default: 1024.
	ResultsBuffer uint

	// ErrorsBuffer is the capacity of the errors channel returned by
	// Stream.
	// Default: 16.
	ErrorsBuffer uint

	// ShutdownTimeout bounds the root drain: a pending branch that never
	// completes otherwise stalls the root forever. Zero waits
	// indefinitely. Inner branches are not affected.
	// Default: 0.
	ShutdownTimeout time.Duration

	// Logger receives engine debug logging.
	// Default: zerolog.Nop().
	Logger zerolog.Logger

	// Metrics provides the instruments the engine records into.
	// Default: metrics.Nop().
	Metrics metrics.Provider
}

// defaultConfig centralizes default values for Config. These defaults are
// the base both for options assembly and for ConfigFromMap.
func defaultConfig() Config {
	return Config{
		Credit:        uint(runtime.NumCPU()),
		ChildBuffer:   1024,
		ResultsBuffer: 1024,
		ErrorsBuffer:  16,
		Logger:        zerolog.Nop(),
		Metrics:       metrics.Nop(),
	}
}

// validateConfig performs lightweight invariants checks.
// It returns nil for all currently valid states; reserved for future
// validation expansions.
func validateConfig(_ *Config) error {
	// Credit == 0 -> sequential execution; all buffer sizes accept zero
	// (unbuffered channels rendezvous with the always-draining parent).
	return nil
}

// ConfigFromMap builds a Config from a loosely typed map, for hosts that
// carry engine settings inside generic configuration trees. Recognized keys:
// "credit", "child_buffer", "results_buffer", "errors_buffer",
// "shutdown_timeout". Missing or uncoercible values keep their defaults.
func ConfigFromMap(m map[string]any) Config {
	cfg := defaultConfig()
	if m == nil {
		return cfg
	}
	if v, ok := m["credit"]; ok {
		if n, err := cast.ToUintE(v); err == nil {
			cfg.Credit = n
		}
	}
	if v, ok := m["child_buffer"]; ok {
		if n, err := cast.ToUintE(v); err == nil {
			cfg.ChildBuffer = n
		}
	}
	if v, ok := m["results_buffer"]; ok {
		if n, err := cast.ToUintE(v); err == nil {
			cfg.ResultsBuffer = n
		}
	}
	if v, ok := m["errors_buffer"]; ok {
		if n, err := cast.ToUintE(v); err == nil {
			cfg.ErrorsBuffer = n
		}
	}
	if v, ok := m["shutdown_timeout"]; ok {
		if d, err := cast.ToDurationE(v); err == nil {
			cfg.ShutdownTimeout = d
		}
	}
	return cfg
}
