package search

import (
	"errors"
	"slices"
	"testing"
)

func TestSuccessors_PushPop(t *testing.T) {
	t.Run("unbounded buffer grows", func(t *testing.T) {
		b := NewSuccessors[int](0)
		for i := 0; i < 100; i++ {
			if err := b.Push(i); err != nil {
				t.Fatalf("Push(%d) failed: %v", i, err)
			}
		}
		if b.Len() != 100 {
			t.Errorf("expected Len 100, got %d", b.Len())
		}
		if b.At(42) != 42 {
			t.Errorf("expected At(42) = 42, got %d", b.At(42))
		}
	})

	t.Run("pop is LIFO and reports empty", func(t *testing.T) {
		b := NewSuccessors[string](0)
		_ = b.Push("a")
		_ = b.Push("b")

		if s, ok := b.Pop(); !ok || s != "b" {
			t.Errorf("expected (b, true), got (%q, %v)", s, ok)
		}
		if s, ok := b.Pop(); !ok || s != "a" {
			t.Errorf("expected (a, true), got (%q, %v)", s, ok)
		}
		if _, ok := b.Pop(); ok {
			t.Error("expected Pop on empty buffer to report false")
		}
	})

	t.Run("limit produces ErrCapacity", func(t *testing.T) {
		b := NewSuccessors[int](2)
		_ = b.Push(1)
		_ = b.Push(2)

		err := b.Push(3)
		if !errors.Is(err, ErrCapacity) {
			t.Fatalf("expected ErrCapacity, got %v", err)
		}
		if b.Len() != 2 {
			t.Errorf("failed push must not change Len, got %d", b.Len())
		}
		if b.Limit() != 2 {
			t.Errorf("expected Limit 2, got %d", b.Limit())
		}
	})

	t.Run("negative limit means unbounded", func(t *testing.T) {
		if NewSuccessors[int](-5).Limit() != 0 {
			t.Error("expected negative limit to normalise to 0")
		}
	})
}

func TestSuccessors_Resize(t *testing.T) {
	tests := []struct {
		name    string
		limit   int
		n       int
		wantErr bool
	}{
		{"reserve within unbounded", 0, 64, false},
		{"reserve up to limit", 8, 8, false},
		{"negative size", 0, -1, true},
		{"beyond limit", 4, 5, true},
		{"beyond ceiling", 0, maxReserve + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewSuccessors[int](tt.limit)
			err := b.Resize(tt.n)
			if tt.wantErr {
				if !errors.Is(err, ErrAllocation) {
					t.Errorf("expected ErrAllocation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resize failed: %v", err)
			}
			if b.Cap() < tt.n {
				t.Errorf("expected Cap >= %d, got %d", tt.n, b.Cap())
			}
			if b.Len() != 0 {
				t.Errorf("Resize must not change Len, got %d", b.Len())
			}
		})
	}

	t.Run("keeps existing contents", func(t *testing.T) {
		b := NewSuccessors[int](0)
		_ = b.Push(7)
		_ = b.Push(9)
		if err := b.Resize(32); err != nil {
			t.Fatalf("Resize failed: %v", err)
		}
		if got := slices.Collect(b.All()); !slices.Equal(got, []int{7, 9}) {
			t.Errorf("expected [7 9], got %v", got)
		}
	})
}

func TestSuccessors_ClearKeepsCapacity(t *testing.T) {
	b := NewSuccessors[int](0)
	_ = b.Resize(16)
	for i := 0; i < 10; i++ {
		_ = b.Push(i)
	}
	capBefore := b.Cap()

	b.Clear()

	if b.Len() != 0 {
		t.Errorf("expected empty buffer, got Len %d", b.Len())
	}
	if b.Cap() != capBefore {
		t.Errorf("expected capacity %d retained, got %d", capBefore, b.Cap())
	}
}

func TestSuccessors_AllStopsEarly(t *testing.T) {
	b := NewSuccessors[int](0)
	for i := 0; i < 5; i++ {
		_ = b.Push(i)
	}

	var seen []int
	for s := range b.All() {
		seen = append(seen, s)
		if s == 2 {
			break
		}
	}
	if !slices.Equal(seen, []int{0, 1, 2}) {
		t.Errorf("expected [0 1 2], got %v", seen)
	}
}

func TestSuccessors_ErrIsStickyUntilClear(t *testing.T) {
	b := NewSuccessors[int](1)
	if b.Err() != nil {
		t.Fatalf("fresh buffer reports %v", b.Err())
	}

	_ = b.Push(1)
	_ = b.Push(2)
	_ = b.Push(3)
	if !errors.Is(b.Err(), ErrCapacity) {
		t.Fatalf("expected ErrCapacity, got %v", b.Err())
	}
	if _, ok := b.Pop(); !ok || b.Err() == nil {
		t.Error("Pop must not forget the rejected Push")
	}

	b.Clear()
	if b.Err() != nil {
		t.Errorf("Clear should reset Err, got %v", b.Err())
	}
	if err := b.Push(4); err != nil || b.Err() != nil {
		t.Errorf("Push after Clear failed: %v / %v", err, b.Err())
	}
}
