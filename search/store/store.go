// Package store provides run-history persistence for finished searches.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested run ID does not exist.
var ErrNotFound = errors.New("not found")

// ErrClosed is returned by database-backed stores after Close.
var ErrClosed = errors.New("store is closed")

// Store persists the outcome of completed searches.
//
// Only finished results are recorded: the path, its cost and a few
// counters. Frontier and visited state never leave the process, so a
// search cannot be resumed from a Store.
//
// Implementations:
//   - MemStore: in-process, for tests and one-shot CLI runs
//   - SQLiteStore: single-file database
//   - MySQLStore: shared database for many solver processes
//
// Type parameter S is the search state type (must be JSON-serializable for
// the database-backed stores).
type Store[S any] interface {
	// SaveRun inserts run, or replaces the existing record with the same ID.
	// A zero CreatedAt is set to the current time.
	SaveRun(ctx context.Context, run Run[S]) error

	// LoadRun retrieves a run by ID.
	// Returns ErrNotFound if the ID was never saved.
	LoadRun(ctx context.Context, id string) (Run[S], error)

	// ListRuns returns up to limit runs, most recently inserted first.
	// A limit of zero or less returns every run.
	ListRuns(ctx context.Context, limit int) ([]Run[S], error)

	// DeleteRun removes a run. Returns ErrNotFound if the ID does not exist.
	DeleteRun(ctx context.Context, id string) error
}

// Run is the persisted summary of one finished search.
type Run[S any] struct {
	// ID is the engine run ID.
	ID string `json:"id"`

	// Algorithm is the algorithm name ("astar", "dijkstra", "best-first").
	Algorithm string `json:"algorithm"`

	// Found reports whether the goal was reached.
	Found bool `json:"found"`

	// Start and Goal are the endpoints the search was asked to connect.
	Start S `json:"start"`
	Goal  S `json:"goal"`

	// Path is the solution from start to goal; empty when Found is false.
	Path []S `json:"path,omitempty"`

	// Cost is the accumulated cost of Path.
	Cost float64 `json:"cost"`

	Expanded  int `json:"expanded"`
	Generated int `json:"generated"`
	Reopened  int `json:"reopened"`

	// DurationMS is the wall time from init to the terminal step.
	DurationMS int64 `json:"duration_ms"`

	CreatedAt time.Time `json:"created_at"`
}

// Moves returns the number of edges in the solution path.
func (r Run[S]) Moves() int {
	if len(r.Path) == 0 {
		return 0
	}
	return len(r.Path) - 1
}
