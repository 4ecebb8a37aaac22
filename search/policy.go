package search

// Policy is the capability set a problem supplies to the engine.
//
// The engine never mutates states; it only passes them back to these
// methods. All methods are called synchronously from Find or Step and must
// not call back into the engine.
//
// Contract (not checked by the engine):
//   - Compare is an equivalence: Compare(a, a) == 0, symmetric, transitive.
//   - Hash(a) == Hash(b) whenever Compare(a, b) == 0.
//   - Cost is non-negative for Dijkstra and A*.
//   - Heuristic never overestimates the remaining cost for A* to be optimal.
//
// Type parameter S is the state type.
type Policy[S any] interface {
	// Compare returns 0 when a and b denote the same state. Non-zero values
	// are only used for identity, not for ordering the frontier.
	Compare(a, b S) int

	// Hash buckets states in the visited store. Collisions are resolved
	// with Compare.
	Hash(s S) uint64

	// Heuristic estimates the remaining cost from s to goal.
	Heuristic(s, goal S) float64

	// Cost is the cost of the edge from -> to.
	Cost(from, to S) float64

	// Successors pushes every neighbor of s onto out. Returning an error
	// aborts the current step; nothing pushed during the failed call is used.
	Successors(s S, out *Successors[S]) error
}

// PolicyFuncs adapts plain functions to the Policy interface.
//
// CompareFunc, HashFunc and SuccessorsFunc are required. A nil HeuristicFunc
// is only accepted for Dijkstra and evaluates to 0. A nil CostFunc is unit
// cost, which is how Best-First is usually run.
//
// Example:
//
//	policy := search.PolicyFuncs[int]{
//	    CompareFunc:    func(a, b int) int { return a - b },
//	    HashFunc:       func(s int) uint64 { return uint64(s) },
//	    SuccessorsFunc: func(s int, out *search.Successors[int]) error {
//	        return out.Push(s + 1)
//	    },
//	}
//	engine, err := search.New[int](policy, search.WithAlgorithm(search.Dijkstra))
type PolicyFuncs[S any] struct {
	CompareFunc    func(a, b S) int
	HashFunc       func(s S) uint64
	HeuristicFunc  func(s, goal S) float64
	CostFunc       func(from, to S) float64
	SuccessorsFunc func(s S, out *Successors[S]) error
}

// Compare implements Policy.
func (p PolicyFuncs[S]) Compare(a, b S) int { return p.CompareFunc(a, b) }

// Hash implements Policy.
func (p PolicyFuncs[S]) Hash(s S) uint64 { return p.HashFunc(s) }

// Heuristic implements Policy.
func (p PolicyFuncs[S]) Heuristic(s, goal S) float64 {
	if p.HeuristicFunc == nil {
		return 0
	}
	return p.HeuristicFunc(s, goal)
}

// Cost implements Policy.
func (p PolicyFuncs[S]) Cost(from, to S) float64 {
	if p.CostFunc == nil {
		return 1
	}
	return p.CostFunc(from, to)
}

// Successors implements Policy.
func (p PolicyFuncs[S]) Successors(s S, out *Successors[S]) error {
	return p.SuccessorsFunc(s, out)
}

func (p PolicyFuncs[S]) validate(alg Algorithm) error {
	missing := ""
	switch {
	case p.CompareFunc == nil:
		missing = "CompareFunc"
	case p.HashFunc == nil:
		missing = "HashFunc"
	case p.SuccessorsFunc == nil:
		missing = "SuccessorsFunc"
	case p.HeuristicFunc == nil && alg.usesHeuristic():
		missing = "HeuristicFunc"
	}
	if missing != "" {
		return &EngineError{
			Message: missing + " is required for " + alg.String(),
			Code:    "MISSING_POLICY",
		}
	}
	return nil
}

// policyValidator is implemented by policies that can detect missing
// pieces before a search starts.
type policyValidator interface {
	validate(alg Algorithm) error
}
