// Package puzzle is an 8-puzzle client for the search engine.
//
// A Board is a 3x3 grid stored row-major, with 0 standing for the blank.
// Policy adapts boards to search.Policy so any of the engine's algorithms
// can solve them.
package puzzle

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
)

const (
	// Width is the number of columns.
	Width = 3
	// Height is the number of rows.
	Height = 3
	// Cells is the number of tiles including the blank.
	Cells = Width * Height

	// DefaultScrambleMoves is the blank-walk length used when Scramble is
	// asked for zero or fewer moves.
	DefaultScrambleMoves = 14
)

// ErrInvalidBoard is returned by Parse for input that is not a permutation
// of 0..8.
var ErrInvalidBoard = errors.New("invalid board")

// Board is a puzzle position. The zero value is not a valid board.
type Board [Cells]uint8

// Goal returns the solved position.
//
//	1 2 3
//	4 5 6
//	7 8 _
func Goal() Board {
	return Board{1, 2, 3, 4, 5, 6, 7, 8, 0}
}

// Parse reads a board from its digits in row-major order. Spaces, commas,
// slashes, pipes and newlines are ignored, and '_' or '.' mark the blank,
// so "123/456/780", "1 2 3 4 5 6 7 8 0" and "12345678_" are all accepted.
func Parse(s string) (Board, error) {
	var b Board
	var seen [Cells]bool
	n := 0

	for _, r := range s {
		var v uint8
		switch {
		case r == ' ' || r == ',' || r == '/' || r == '|' || r == '\n' || r == '\r' || r == '\t':
			continue
		case r == '_' || r == '.':
			v = 0
		case r >= '0' && r <= '8':
			v = uint8(r - '0')
		default:
			return Board{}, fmt.Errorf("%w: unexpected character %q", ErrInvalidBoard, r)
		}

		if n == Cells {
			return Board{}, fmt.Errorf("%w: more than %d tiles", ErrInvalidBoard, Cells)
		}
		if seen[v] {
			return Board{}, fmt.Errorf("%w: tile %d appears twice", ErrInvalidBoard, v)
		}
		seen[v] = true
		b[n] = v
		n++
	}

	if n != Cells {
		return Board{}, fmt.Errorf("%w: got %d tiles, want %d", ErrInvalidBoard, n, Cells)
	}
	return b, nil
}

// String returns the board as "123/456/780".
func (b Board) String() string {
	var sb strings.Builder
	sb.Grow(Cells + Height - 1)
	for i, v := range b {
		if i > 0 && i%Width == 0 {
			sb.WriteByte('/')
		}
		sb.WriteByte('0' + v)
	}
	return sb.String()
}

// MarshalText implements encoding.TextMarshaler so boards serialise as
// their String form.
func (b Board) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Board) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// Render draws the board with a caption on the middle row: "Initial" for
// step 0 and "Step N" afterwards. A blank line follows the board.
func (b Board) Render(w io.Writer, step int) error {
	for y := 0; y < Height; y++ {
		label, num := "", ""
		if y == Height/2 {
			if step == 0 {
				label = "Initial"
			} else {
				label, num = "Step", fmt.Sprint(step)
			}
		}
		if _, err := fmt.Fprintf(w, " %10s %-3s |%s|%s|%s|\n",
			label, num, b.tile(0, y), b.tile(1, y), b.tile(2, y)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

func (b Board) tile(x, y int) string {
	v := b[Width*y+x]
	if v == 0 {
		return " "
	}
	return string('0' + rune(v))
}

// Blank returns the index of the blank cell, or -1 for a malformed board.
func (b Board) Blank() int {
	for i, v := range b {
		if v == 0 {
			return i
		}
	}
	return -1
}

// Direction is the way the blank moves.
type Direction int

// Directions the blank can slide, in the order Neighbors tries them.
const (
	Left  Direction = iota // blank moves one column left
	Right                  // blank moves one column right
	Up                     // blank moves one row up
	Down                   // blank moves one row down
)

// Directions lists every direction in the order successors are generated.
var Directions = [...]Direction{Left, Right, Up, Down}

var offsets = [...]struct{ dx, dy int }{
	Left:  {-1, 0},
	Right: {1, 0},
	Up:    {0, -1},
	Down:  {0, 1},
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Move slides the blank one cell in direction d. It reports false if the
// blank would leave the board.
func (b Board) Move(d Direction) (Board, bool) {
	blank := b.Blank()
	if blank < 0 || d < Left || d > Down {
		return b, false
	}

	off := offsets[d]
	x, y := blank%Width+off.dx, blank/Width+off.dy
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return b, false
	}

	target := Width*y + x
	b[blank], b[target] = b[target], b[blank]
	return b, true
}

// Neighbors returns every board one move away, in Directions order.
func (b Board) Neighbors() []Board {
	out := make([]Board, 0, len(Directions))
	for _, d := range Directions {
		if next, ok := b.Move(d); ok {
			out = append(out, next)
		}
	}
	return out
}

// Solvable reports whether b can reach Goal. On a 3-wide board that holds
// exactly when the number of inversions among the tiles is even.
func (b Board) Solvable() bool {
	inversions := 0
	for i := 0; i < Cells; i++ {
		if b[i] == 0 {
			continue
		}
		for j := i + 1; j < Cells; j++ {
			if b[j] != 0 && b[j] < b[i] {
				inversions++
			}
		}
	}
	return inversions%2 == 0
}

// Scramble walks the blank moves random steps away from the goal, so the
// result is always solvable. moves <= 0 uses DefaultScrambleMoves.
// Walks may undo earlier moves; the result can be closer than moves steps.
func Scramble(rng *rand.Rand, moves int) Board {
	if moves <= 0 {
		moves = DefaultScrambleMoves
	}

	b := Goal()
	for moves > 0 {
		if next, ok := b.Move(Directions[rng.IntN(len(Directions))]); ok {
			b = next
			moves--
		}
	}
	return b
}

// Adjacent reports whether a and b differ by sliding one tile into the
// blank.
func Adjacent(a, b Board) bool {
	for _, n := range a.Neighbors() {
		if n == b {
			return true
		}
	}
	return false
}
