package puzzle

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/dshills/informed-search/search"
)

// Heuristic selects the distance estimate used by Policy.
type Heuristic int

const (
	// Manhattan sums each tile's grid distance to its goal cell. The blank
	// is not counted, which keeps the estimate admissible.
	Manhattan Heuristic = iota
	// Misplaced counts tiles outside their goal cell.
	Misplaced
)

func (h Heuristic) String() string {
	switch h {
	case Manhattan:
		return "manhattan"
	case Misplaced:
		return "misplaced"
	default:
		return fmt.Sprintf("Heuristic(%d)", int(h))
	}
}

// ParseHeuristic maps "manhattan" or "misplaced" to a Heuristic.
func ParseHeuristic(name string) (Heuristic, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "manhattan", "":
		return Manhattan, nil
	case "misplaced", "hamming":
		return Misplaced, nil
	default:
		return 0, fmt.Errorf("unknown heuristic %q", name)
	}
}

// Policy implements search.Policy[Board]. Every move costs 1.
type Policy struct {
	Heuristic Heuristic
}

var _ search.Policy[Board] = Policy{}

// Compare orders boards lexicographically; 0 means identical.
func (Policy) Compare(a, b Board) int {
	return bytes.Compare(a[:], b[:])
}

// Hash returns the xxhash of the cells.
func (Policy) Hash(b Board) uint64 {
	return xxhash.Sum64(b[:])
}

// Heuristic estimates the moves left from b to goal.
func (p Policy) Heuristic(b, goal Board) float64 {
	if p.Heuristic == Misplaced {
		return float64(misplaced(b, goal))
	}
	return float64(manhattan(b, goal))
}

// Cost is 1 for every move.
func (Policy) Cost(_, _ Board) float64 { return 1 }

// Successors pushes the boards reachable by moving the blank left, right,
// up and down, skipping moves off the board.
func (Policy) Successors(b Board, out *search.Successors[Board]) error {
	for _, d := range Directions {
		next, ok := b.Move(d)
		if !ok {
			continue
		}
		if err := out.Push(next); err != nil {
			return err
		}
	}
	return nil
}

func manhattan(b, goal Board) int {
	var pos [Cells]int
	for i, v := range goal {
		pos[v] = i
	}

	sum := 0
	for i, v := range b {
		if v == 0 {
			continue
		}
		j := pos[v]
		sum += abs(i%Width-j%Width) + abs(i/Width-j/Width)
	}
	return sum
}

func misplaced(b, goal Board) int {
	n := 0
	for i, v := range b {
		if v != 0 && v != goal[i] {
			n++
		}
	}
	return n
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
