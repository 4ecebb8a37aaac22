package search

import (
	"errors"
	"testing"
)

func TestPolicyFuncs_Defaults(t *testing.T) {
	p := PolicyFuncs[int]{}
	if p.Heuristic(3, 9) != 0 {
		t.Error("nil HeuristicFunc should evaluate to 0")
	}
	if p.Cost(3, 4) != 1 {
		t.Error("nil CostFunc should be unit cost")
	}
}

func TestPolicyFuncs_Validate(t *testing.T) {
	full := intLine(10).policy()

	tests := []struct {
		name    string
		mutate  func(p *PolicyFuncs[int])
		alg     Algorithm
		missing string
	}{
		{"complete", func(*PolicyFuncs[int]) {}, AStar, ""},
		{"no compare", func(p *PolicyFuncs[int]) { p.CompareFunc = nil }, Dijkstra, "CompareFunc"},
		{"no hash", func(p *PolicyFuncs[int]) { p.HashFunc = nil }, Dijkstra, "HashFunc"},
		{"no successors", func(p *PolicyFuncs[int]) { p.SuccessorsFunc = nil }, Dijkstra, "SuccessorsFunc"},
		{"no heuristic for astar", func(p *PolicyFuncs[int]) { p.HeuristicFunc = nil }, AStar, "HeuristicFunc"},
		{"no heuristic for best-first", func(p *PolicyFuncs[int]) { p.HeuristicFunc = nil }, BestFirst, "HeuristicFunc"},
		{"no heuristic for dijkstra", func(p *PolicyFuncs[int]) { p.HeuristicFunc = nil }, Dijkstra, ""},
		{"no cost", func(p *PolicyFuncs[int]) { p.CostFunc = nil }, AStar, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := full
			tt.mutate(&p)

			_, err := New[int](p, WithAlgorithm(tt.alg))
			if tt.missing == "" {
				if err != nil {
					t.Fatalf("New failed: %v", err)
				}
				return
			}

			var engineErr *EngineError
			if !errors.As(err, &engineErr) || engineErr.Code != "MISSING_POLICY" {
				t.Fatalf("expected MISSING_POLICY, got %v", err)
			}
			if want := tt.missing + " is required for " + tt.alg.String(); engineErr.Message != want {
				t.Errorf("message = %q, want %q", engineErr.Message, want)
			}
		})
	}
}
