package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dshills/informed-search/search/emit"
	"github.com/dshills/informed-search/search/store"
)

func TestOptions_Defaults(t *testing.T) {
	e, err := New[int](intLine(3).policy())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if e.Algorithm() != AStar {
		t.Errorf("default algorithm = %v, want astar", e.Algorithm())
	}
	if _, ok := e.cfg.emitter.(*emit.NullEmitter); !ok {
		t.Errorf("default emitter = %T, want *emit.NullEmitter", e.cfg.emitter)
	}
	if e.cfg.maxExpansions != 0 || e.cfg.successorLimit != 0 || e.cfg.timeBudget != 0 {
		t.Errorf("expected unlimited defaults, got %+v", e.cfg)
	}
}

func TestOptions_Apply(t *testing.T) {
	buf := emit.NewBufferedEmitter()
	metrics := &PrometheusMetrics{}

	e, err := New[int](intLine(3).policy(),
		WithAlgorithm(Dijkstra),
		WithEmitter(buf),
		WithMetrics(metrics),
		WithMaxExpansions(10),
		WithSuccessorLimit(4),
		WithTimeBudget(time.Second),
		WithRunID("fixed"),
		nil, // nil options are ignored
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if e.cfg.algorithm != Dijkstra || e.cfg.emitter != buf || e.cfg.metrics != metrics {
		t.Errorf("options not applied: %+v", e.cfg)
	}
	if e.cfg.maxExpansions != 10 || e.cfg.successorLimit != 4 || e.cfg.timeBudget != time.Second {
		t.Errorf("limits not applied: %+v", e.cfg)
	}
	if e.succ.Limit() != 4 {
		t.Errorf("successor buffer limit = %d, want 4", e.succ.Limit())
	}

	_ = e.Init(0, 2)
	if e.RunID() != "fixed" {
		t.Errorf("RunID = %q, want fixed", e.RunID())
	}
}

func TestOptions_Invalid(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"unknown algorithm", WithAlgorithm(Algorithm(42))},
		{"negative expansions", WithMaxExpansions(-1)},
		{"negative successor limit", WithSuccessorLimit(-1)},
		{"negative time budget", WithTimeBudget(-time.Second)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New[int](intLine(3).policy(), tt.opt)
			var engineErr *EngineError
			if !errors.As(err, &engineErr) || engineErr.Code != "INVALID_OPTION" {
				t.Fatalf("expected INVALID_OPTION, got %v", err)
			}
			if engineErr.Cause == nil {
				t.Error("expected the option error as cause")
			}
		})
	}
}

func TestOptions_NilEmitterRestoresDefault(t *testing.T) {
	e, err := New[int](intLine(3).policy(), WithEmitter(emit.NewBufferedEmitter()), WithEmitter(nil))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if !e.quiet {
		t.Error("expected nil emitter to fall back to NullEmitter")
	}
}

func TestOptions_RecorderTypeMismatch(t *testing.T) {
	_, err := New[int](intLine(3).policy(), WithRecorder[string](store.NewMemStore[string]()))
	var engineErr *EngineError
	if !errors.As(err, &engineErr) || engineErr.Code != "INVALID_OPTION" {
		t.Fatalf("expected INVALID_OPTION, got %v", err)
	}
}

func TestOptions_TimeBudget(t *testing.T) {
	// An endless line: every state has a successor and the goal is never reached.
	p := PolicyFuncs[int]{
		CompareFunc: func(a, b int) int { return a - b },
		HashFunc:    func(s int) uint64 { return uint64(s) },
		SuccessorsFunc: func(s int, out *Successors[int]) error {
			time.Sleep(time.Millisecond)
			return out.Push(s + 1)
		},
	}
	e, err := New[int](p, WithAlgorithm(Dijkstra), WithTimeBudget(20*time.Millisecond))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	found, err := e.Find(context.Background(), 0, -1)
	if found {
		t.Error("expected no path")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}
}
