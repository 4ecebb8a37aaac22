package search

import (
	"errors"
	"fmt"
	"testing"
)

// TestTypedErrorHandling verifies that all exported errors work with errors.Is.
func TestTypedErrorHandling(t *testing.T) {
	sentinels := []error{
		ErrNoSolution,
		ErrCapacity,
		ErrAllocation,
		ErrInvalidCursor,
		ErrPathEnd,
		ErrNotInitialized,
		ErrMaxExpansions,
	}

	for i, err := range sentinels {
		t.Run(err.Error(), func(t *testing.T) {
			wrapped := fmt.Errorf("context: %w", err)
			if !errors.Is(wrapped, err) {
				t.Errorf("expected wrapped error to match %v", err)
			}
			for j, other := range sentinels {
				if i != j && errors.Is(err, other) {
					t.Errorf("%v must not match %v", err, other)
				}
			}
		})
	}
}

func TestEngineError(t *testing.T) {
	t.Run("message with code", func(t *testing.T) {
		err := &EngineError{Message: "policy is required", Code: "MISSING_POLICY"}
		if err.Error() != "MISSING_POLICY: policy is required" {
			t.Errorf("unexpected message: %q", err.Error())
		}
	})

	t.Run("message without code", func(t *testing.T) {
		err := &EngineError{Message: "plain"}
		if err.Error() != "plain" {
			t.Errorf("unexpected message: %q", err.Error())
		}
	})

	t.Run("cause is unwrapped", func(t *testing.T) {
		err := &EngineError{Message: "successor generation failed", Code: "EXPANSION_FAILED", Cause: ErrCapacity}
		if !errors.Is(err, ErrCapacity) {
			t.Error("expected errors.Is to reach the cause")
		}
		if err.Error() != "EXPANSION_FAILED: successor generation failed: "+ErrCapacity.Error() {
			t.Errorf("unexpected message: %q", err.Error())
		}

		var target *EngineError
		if !errors.As(fmt.Errorf("wrapped: %w", err), &target) || target.Code != "EXPANSION_FAILED" {
			t.Error("expected errors.As to find the EngineError")
		}
	})
}
