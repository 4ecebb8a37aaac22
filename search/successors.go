package search

import (
	"fmt"
	"iter"
)

// maxReserve bounds Resize on an unlimited buffer. Requests beyond it are
// treated as allocation failures instead of being handed to the runtime.
const maxReserve = 1 << 24

// Successors collects the candidate states produced by one expansion.
//
// The engine owns one buffer per search and clears it before each call to
// Policy.Successors, so its storage is reused across expansions. A limit of
// zero means unbounded.
//
// A rejected Push is remembered until Clear, so the engine aborts the
// expansion even when the policy ignores Push's error.
type Successors[S any] struct {
	items []S
	limit int
	err   error
}

// NewSuccessors creates a buffer holding at most limit states (0 = unbounded).
func NewSuccessors[S any](limit int) *Successors[S] {
	if limit < 0 {
		limit = 0
	}
	return &Successors[S]{limit: limit}
}

// Push appends s. It fails with ErrCapacity when the buffer already holds
// limit states.
func (b *Successors[S]) Push(s S) error {
	if b.limit > 0 && len(b.items) >= b.limit {
		err := fmt.Errorf("%w: limit %d", ErrCapacity, b.limit)
		if b.err == nil {
			b.err = err
		}
		return err
	}
	b.items = append(b.items, s)
	return nil
}

// Pop removes and returns the most recently pushed state.
// ok is false when the buffer is empty.
func (b *Successors[S]) Pop() (s S, ok bool) {
	n := len(b.items)
	if n == 0 {
		return s, false
	}
	s = b.items[n-1]
	var zero S
	b.items[n-1] = zero
	b.items = b.items[:n-1]
	return s, true
}

// Resize reserves capacity for n states without changing Len.
//
// It fails with ErrAllocation for a negative n, for n above the configured
// limit, or for n above an internal ceiling on unlimited buffers.
func (b *Successors[S]) Resize(n int) error {
	switch {
	case n < 0:
		return fmt.Errorf("%w: negative size %d", ErrAllocation, n)
	case b.limit > 0 && n > b.limit:
		return fmt.Errorf("%w: size %d exceeds limit %d", ErrAllocation, n, b.limit)
	case b.limit == 0 && n > maxReserve:
		return fmt.Errorf("%w: size %d exceeds %d", ErrAllocation, n, maxReserve)
	}
	if n > cap(b.items) {
		grown := make([]S, len(b.items), n)
		copy(grown, b.items)
		b.items = grown
	}
	return nil
}

// Clear empties the buffer, forgets any rejected Push and keeps its capacity.
func (b *Successors[S]) Clear() {
	clear(b.items)
	b.items = b.items[:0]
	b.err = nil
}

// Err returns the first Push rejected since the last Clear, or nil.
func (b *Successors[S]) Err() error { return b.err }

// Len returns the number of buffered states.
func (b *Successors[S]) Len() int { return len(b.items) }

// Cap returns the reserved capacity.
func (b *Successors[S]) Cap() int { return cap(b.items) }

// Limit returns the configured bound (0 = unbounded).
func (b *Successors[S]) Limit() int { return b.limit }

// At returns the i-th state in push order. It panics if i is out of range.
func (b *Successors[S]) At(i int) S { return b.items[i] }

// All iterates the buffered states in push order.
func (b *Successors[S]) All() iter.Seq[S] {
	return func(yield func(S) bool) {
		for _, s := range b.items {
			if !yield(s) {
				return
			}
		}
	}
}
