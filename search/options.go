package search

import (
	"fmt"
	"time"

	"github.com/dshills/informed-search/search/emit"
	"github.com/dshills/informed-search/search/store"
)

// Option is a functional option for configuring an Engine.
//
// Options are applied in order by New; a later option overrides an
// earlier one for the same setting. An option that returns an error makes
// New fail with an EngineError of code INVALID_OPTION.
//
// Example:
//
//	engine, err := search.New[Board](policy,
//	    search.WithAlgorithm(search.AStar),
//	    search.WithMaxExpansions(200_000),
//	    search.WithEmitter(emit.NewLogEmitter(os.Stderr, false)),
//	)
type Option func(*engineConfig) error

// engineConfig collects options before they are applied to an Engine.
type engineConfig struct {
	algorithm      Algorithm
	emitter        emit.Emitter
	metrics        *PrometheusMetrics
	maxExpansions  int
	successorLimit int
	timeBudget     time.Duration
	runID          string

	// recorder holds a store.Store[S]; the state type is checked in New.
	recorder any
}

func defaultConfig() engineConfig {
	return engineConfig{
		algorithm: AStar,
		emitter:   emit.NewNullEmitter(),
	}
}

// WithAlgorithm selects the priority key. Default: AStar.
func WithAlgorithm(a Algorithm) Option {
	return func(cfg *engineConfig) error {
		if !a.valid() {
			return fmt.Errorf("unknown algorithm %d", int(a))
		}
		cfg.algorithm = a
		return nil
	}
}

// WithEmitter sets the event sink. A nil emitter restores the default
// NullEmitter.
func WithEmitter(e emit.Emitter) Option {
	return func(cfg *engineConfig) error {
		if e == nil {
			e = emit.NewNullEmitter()
		}
		cfg.emitter = e
		return nil
	}
}

// WithMetrics enables Prometheus metrics collection.
//
// Example:
//
//	registry := prometheus.NewRegistry()
//	metrics := search.NewPrometheusMetrics(registry)
//	engine, _ := search.New(policy, search.WithMetrics(metrics))
//
//	http.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
func WithMetrics(metrics *PrometheusMetrics) Option {
	return func(cfg *engineConfig) error {
		cfg.metrics = metrics
		return nil
	}
}

// WithMaxExpansions caps the number of node expansions per search.
//
// Default: 0 (no limit). When the cap is reached, Step and Find return an
// EngineError with code MAX_EXPANSIONS_EXCEEDED wrapping ErrMaxExpansions.
// The engine stays in PhaseStepping so Stats and Current can be inspected.
func WithMaxExpansions(n int) Option {
	return func(cfg *engineConfig) error {
		if n < 0 {
			return fmt.Errorf("max expansions must be >= 0, got %d", n)
		}
		cfg.maxExpansions = n
		return nil
	}
}

// WithSuccessorLimit bounds the Successors buffer passed to
// Policy.Successors. Default: 0 (unbounded). A push beyond the limit fails
// with ErrCapacity.
func WithSuccessorLimit(n int) Option {
	return func(cfg *engineConfig) error {
		if n < 0 {
			return fmt.Errorf("successor limit must be >= 0, got %d", n)
		}
		cfg.successorLimit = n
		return nil
	}
}

// WithTimeBudget bounds the wall time of Find. Default: 0 (no limit).
// When exceeded, Find returns context.DeadlineExceeded. Step is not
// affected; callers driving Step control their own pacing.
func WithTimeBudget(d time.Duration) Option {
	return func(cfg *engineConfig) error {
		if d < 0 {
			return fmt.Errorf("time budget must be >= 0, got %s", d)
		}
		cfg.timeBudget = d
		return nil
	}
}

// WithRunID fixes the run ID instead of generating a UUID per Init.
func WithRunID(id string) Option {
	return func(cfg *engineConfig) error {
		cfg.runID = id
		return nil
	}
}

// WithRecorder saves a summary of every finished search to r. S must match
// the engine's state type; New rejects a recorder for another type.
//
// Example:
//
//	history := store.NewMemStore[Board]()
//	engine, _ := search.New[Board](policy, search.WithRecorder[Board](history))
func WithRecorder[S any](r store.Store[S]) Option {
	return func(cfg *engineConfig) error {
		cfg.recorder = r
		return nil
	}
}
