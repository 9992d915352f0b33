// Package snake models the snake body and its occupancy snapshots.
//
// A Snake is an ordered chain of cells with the head at index 0. Move shifts
// the body one step behind a displaced head and drops the tail; it never
// fails. Whether the result is legal is judged from Occupancy Matrix
// snapshots taken before and after the move (see Legal).
package snake

import (
	"strings"

	"github.com/vovakirdan/snake-paths/internal/core"
)

// Snake length limits, inclusive.
const (
	MinLen = 3
	MaxLen = 7
)

// Snake is an immutable chain of cells, head first.
type Snake struct {
	cells []core.Cell
}

// Key is a comparable copy of a snake's cells, used as a map key.
type Key struct {
	n     uint8
	cells [MaxLen]core.Cell
}

// New validates cells against b. Every violation is collected before the
// error is returned.
func New(cells []core.Cell, b core.Board) (Snake, error) {
	v := core.NewViolations(core.KindSnakeShape)
	validateCells(v, cells, b)
	if err := v.Err(); err != nil {
		return Snake{}, err
	}
	return Snake{cells: append([]core.Cell(nil), cells...)}, nil
}

// FromPairs builds a snake from raw [row, col] pairs.
func FromPairs(pairs [][]int, b core.Board) (Snake, error) {
	v := core.NewViolations(core.KindSnakeShape)
	cells := make([]core.Cell, 0, len(pairs))
	for i, p := range pairs {
		if len(p) != 2 {
			v.Addf("coordinates of snake part %d must be two (row and column), got %d", i, len(p))
			continue
		}
		cells = append(cells, core.C(p[0], p[1]))
	}
	if len(cells) == len(pairs) {
		validateCells(v, cells, b)
	}
	if err := v.Err(); err != nil {
		return Snake{}, err
	}
	return Snake{cells: cells}, nil
}

func validateCells(v *core.Violations, cells []core.Cell, b core.Board) {
	if len(cells) < MinLen || len(cells) > MaxLen {
		v.Addf("snake length must be a number between %d and %d, got %d", MinLen, MaxLen, len(cells))
	}
	for i, c := range cells {
		if !b.Contains(c) {
			v.Addf("snake part %d at %v cannot be fitted into a %dx%d board", i, c, b.Rows(), b.Cols())
		}
		if i == 0 {
			continue
		}
		if d := c.Manhattan(cells[i-1]); d != 1 {
			v.Addf("snake part %d at %v is not adjacent to part %d at %v (distance %d)", i, c, i-1, cells[i-1], d)
		}
	}
}

// Move returns the snake after its head steps in direction d. The body
// follows the head and the tail segment is dropped. The result may leave the
// board or overlap itself.
func (s Snake) Move(d core.Direction) Snake {
	n := len(s.cells)
	next := make([]core.Cell, n)
	if n == 0 {
		return Snake{cells: next}
	}
	next[0] = s.cells[0].Add(d)
	copy(next[1:], s.cells[:n-1])
	return Snake{cells: next}
}

// Head returns the first cell.
func (s Snake) Head() core.Cell {
	if len(s.cells) == 0 {
		return core.Cell{}
	}
	return s.cells[0]
}

// Len returns the number of segments.
func (s Snake) Len() int {
	return len(s.cells)
}

// Cells returns a copy of the segments, head first.
func (s Snake) Cells() []core.Cell {
	return append([]core.Cell(nil), s.cells...)
}

// Key returns a comparable identity for the snake's current cells.
func (s Snake) Key() Key {
	k := Key{n: uint8(len(s.cells))}
	copy(k.cells[:], s.cells)
	return k
}

func (s Snake) String() string {
	parts := make([]string, len(s.cells))
	for i, c := range s.cells {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
