package search

import "math"

// noParent marks the start node.
const noParent int32 = -1

// node binds a state to its accumulated cost and predecessor.
// parent is an index into the same arena, never a pointer.
type node[S any] struct {
	state  S
	parent int32
	g      float64
	f      float64
}

// nodeArena owns every node created during one search. Handles are
// indexes; a parent always has a smaller handle than its children, so
// parent chains cannot cycle.
type nodeArena[S any] struct {
	nodes []node[S]
}

// next returns the handle the following add will use.
func (a *nodeArena[S]) next() int32 { return int32(len(a.nodes)) }

// room reports whether n more nodes fit in the handle space.
func (a *nodeArena[S]) room(n int) bool {
	return len(a.nodes)+n <= math.MaxInt32
}

func (a *nodeArena[S]) add(state S, parent int32, g, f float64) int32 {
	a.nodes = append(a.nodes, node[S]{state: state, parent: parent, g: g, f: f})
	return int32(len(a.nodes) - 1)
}

func (a *nodeArena[S]) get(h int32) *node[S] { return &a.nodes[h] }

func (a *nodeArena[S]) len() int { return len(a.nodes) }

// path walks parent handles back from terminus and returns the states in
// start-to-terminus order.
func (a *nodeArena[S]) path(terminus int32) []S {
	depth := 0
	for h := terminus; h != noParent; h = a.nodes[h].parent {
		depth++
	}

	out := make([]S, depth)
	for h, i := terminus, depth-1; h != noParent; h, i = a.nodes[h].parent, i-1 {
		out[i] = a.nodes[h].state
	}
	return out
}

// reset drops all nodes but keeps the backing array for the next search.
func (a *nodeArena[S]) reset() {
	clear(a.nodes)
	a.nodes = a.nodes[:0]
}

func (a *nodeArena[S]) release() {
	a.nodes = nil
}
