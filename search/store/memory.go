package store

import (
	"context"
	"sync"
	"time"
)

// MemStore is an in-memory implementation of Store[S].
//
// Designed for:
//   - Testing and development
//   - Single-process CLI sessions where history need not survive exit
//
// MemStore is thread-safe and supports concurrent access.
//
// Returned runs share no slices with the store, so callers may modify them.
type MemStore[S any] struct {
	mu    sync.RWMutex
	runs  map[string]Run[S]
	order []string // insertion order of run IDs
}

// NewMemStore creates a new in-memory store.
//
// Example:
//
//	history := store.NewMemStore[puzzle.Board]()
//	engine, _ := search.New(policy, search.WithRecorder(history))
func NewMemStore[S any]() *MemStore[S] {
	return &MemStore[S]{
		runs: make(map[string]Run[S]),
	}
}

// SaveRun stores run. Replacing an existing ID keeps its original position
// in the listing order.
func (m *MemStore[S]) SaveRun(_ context.Context, run Run[S]) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	if _, exists := m.runs[run.ID]; !exists {
		m.order = append(m.order, run.ID)
	}
	m.runs[run.ID] = cloneRun(run)
	return nil
}

// LoadRun retrieves a run by ID.
func (m *MemStore[S]) LoadRun(_ context.Context, id string) (Run[S], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	run, exists := m.runs[id]
	if !exists {
		return Run[S]{}, ErrNotFound
	}
	return cloneRun(run), nil
}

// ListRuns returns runs newest first.
func (m *MemStore[S]) ListRuns(_ context.Context, limit int) ([]Run[S], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := len(m.order)
	if limit > 0 && limit < n {
		n = limit
	}

	runs := make([]Run[S], 0, n)
	for i := len(m.order) - 1; i >= 0 && len(runs) < n; i-- {
		runs = append(runs, cloneRun(m.runs[m.order[i]]))
	}
	return runs, nil
}

// DeleteRun removes a run.
func (m *MemStore[S]) DeleteRun(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.runs[id]; !exists {
		return ErrNotFound
	}
	delete(m.runs, id)
	for i, rid := range m.order {
		if rid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of stored runs.
func (m *MemStore[S]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.runs)
}

func cloneRun[S any](run Run[S]) Run[S] {
	if run.Path != nil {
		path := make([]S, len(run.Path))
		copy(path, run.Path)
		run.Path = path
	}
	return run
}
