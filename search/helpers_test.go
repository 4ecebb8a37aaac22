package search

import (
	"cmp"
)

type edge struct {
	to int
	w  float64
}

// weightedGraph is a small directed test graph over int states.
type weightedGraph struct {
	adj        map[int][]edge
	heuristic  func(s, goal int) float64
	expansions map[int]int // successor calls per state
}

func newGraph() *weightedGraph {
	return &weightedGraph{
		adj:        make(map[int][]edge),
		heuristic:  func(int, int) float64 { return 0 },
		expansions: make(map[int]int),
	}
}

func (g *weightedGraph) add(from, to int, w float64) *weightedGraph {
	g.adj[from] = append(g.adj[from], edge{to: to, w: w})
	return g
}

func (g *weightedGraph) withHeuristic(h map[int]float64) *weightedGraph {
	g.heuristic = func(s, _ int) float64 { return h[s] }
	return g
}

func (g *weightedGraph) cost(from, to int) float64 {
	for _, e := range g.adj[from] {
		if e.to == to {
			return e.w
		}
	}
	panic("cost requested for a missing edge")
}

func (g *weightedGraph) hasEdge(from, to int) bool {
	for _, e := range g.adj[from] {
		if e.to == to {
			return true
		}
	}
	return false
}

func (g *weightedGraph) policy() PolicyFuncs[int] {
	return PolicyFuncs[int]{
		CompareFunc:   func(a, b int) int { return cmp.Compare(a, b) },
		HashFunc:      func(s int) uint64 { return uint64(s) },
		HeuristicFunc: func(s, goal int) float64 { return g.heuristic(s, goal) },
		CostFunc:      g.cost,
		SuccessorsFunc: func(s int, out *Successors[int]) error {
			g.expansions[s]++
			for _, e := range g.adj[s] {
				if err := out.Push(e.to); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// intLine is 0 -> 1 -> ... -> n-1 with unit edges and an exact heuristic.
func intLine(n int) *weightedGraph {
	g := newGraph()
	for i := 0; i+1 < n; i++ {
		g.add(i, i+1, 1)
	}
	g.heuristic = func(s, goal int) float64 {
		if goal >= s {
			return float64(goal - s)
		}
		return 0
	}
	return g
}

// twoRoutes has a cheap 3-edge route (cost 3) and a short 2-edge route
// (cost 5) from 0 to 9.
func twoRoutes() *weightedGraph {
	return newGraph().
		add(0, 5, 1).add(5, 9, 4).
		add(0, 1, 1).add(1, 2, 1).add(2, 9, 1)
}

func pathCost(g *weightedGraph, path []int) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += g.cost(path[i-1], path[i])
	}
	return total
}
