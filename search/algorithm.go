package search

import (
	"fmt"
	"strings"
)

// Algorithm selects the priority key used to order the frontier.
//
//	AStar     g + h
//	Dijkstra  g
//	BestFirst h
//
// All three share the same loop; only the key differs.
type Algorithm int

const (
	// AStar orders by accumulated cost plus heuristic. Optimal when the
	// heuristic never overestimates and costs are non-negative.
	AStar Algorithm = iota

	// Dijkstra orders by accumulated cost alone. Optimal for non-negative costs.
	Dijkstra

	// BestFirst orders by heuristic alone. Fast, but the first path found
	// is not necessarily the cheapest.
	BestFirst
)

func (a Algorithm) String() string {
	switch a {
	case AStar:
		return "astar"
	case Dijkstra:
		return "dijkstra"
	case BestFirst:
		return "best-first"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// ParseAlgorithm converts a name such as "astar", "a*", "dijkstra" or
// "best-first" into an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "astar", "a*", "a-star":
		return AStar, nil
	case "dijkstra":
		return Dijkstra, nil
	case "best-first", "bestfirst", "best_first", "greedy":
		return BestFirst, nil
	}
	return 0, &EngineError{
		Message: fmt.Sprintf("unknown algorithm %q", name),
		Code:    "UNKNOWN_ALGORITHM",
	}
}

func (a Algorithm) valid() bool {
	return a >= AStar && a <= BestFirst
}

// usesHeuristic reports whether the priority key reads h.
func (a Algorithm) usesHeuristic() bool {
	return a != Dijkstra
}

func (a Algorithm) priority(g, h float64) float64 {
	switch a {
	case Dijkstra:
		return g
	case BestFirst:
		return h
	default:
		return g + h
	}
}
