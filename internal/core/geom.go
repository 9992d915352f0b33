// Package core provides the fundamental value types shared by the path
// counter: cells, directions, boards and the constraint errors raised when
// caller input does not fit them. It has no external dependencies so that
// the search code built on top of it stays pure and testable.
package core

import (
	"fmt"
	"strings"
)

// Cell is a (row, column) position on a board.
type Cell struct {
	Row, Col int
}

// C is shorthand for Cell{Row: row, Col: col}.
func C(row, col int) Cell {
	return Cell{Row: row, Col: col}
}

// Add returns the cell displaced by one step in the given direction.
func (c Cell) Add(d Direction) Cell {
	dr, dc := d.Delta()
	return Cell{Row: c.Row + dr, Col: c.Col + dc}
}

// Manhattan returns the taxicab distance between two cells.
func (c Cell) Manhattan(other Cell) int {
	return Abs(c.Row-other.Row) + Abs(c.Col-other.Col)
}

// Negative reports whether either coordinate is below zero.
func (c Cell) Negative() bool {
	return c.Row < 0 || c.Col < 0
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Direction is one of the four unit moves a snake head can make.
type Direction uint8

const (
	Left Direction = iota
	Right
	Down
	Up
)

// Directions lists every direction in enumeration order.
var Directions = [4]Direction{Left, Right, Down, Up}

// Delta returns the (row, col) displacement of the direction.
func (d Direction) Delta() (int, int) {
	switch d {
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	case Down:
		return 1, 0
	case Up:
		return -1, 0
	default:
		return 0, 0
	}
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "L"
	case Right:
		return "R"
	case Down:
		return "D"
	case Up:
		return "U"
	default:
		return "?"
	}
}

// ParseDirection accepts L/R/D/U (or the full word) in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "left":
		return Left, nil
	case "r", "right":
		return Right, nil
	case "d", "down":
		return Down, nil
	case "u", "up":
		return Up, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Rect represents an axis-aligned box on a Screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
