package snake

import (
	"strings"

	"github.com/vovakirdan/snake-paths/internal/core"
)

// Matrix is a rows x cols occupancy snapshot: 1 where any segment sits,
// 0 elsewhere. Several segments on one cell still mark a single 1, so a
// self-overlapping snake has less mass than it has segments.
type Matrix struct {
	rows, cols int
	cells      []uint8
}

// Build snapshots s on a grid sized to b. ok is false if any segment has a
// negative coordinate or lies past the board's upper bound.
func Build(b core.Board, s Snake) (m Matrix, ok bool) {
	m = Matrix{
		rows:  b.Rows(),
		cols:  b.Cols(),
		cells: make([]uint8, b.Area()),
	}
	for _, c := range s.cells {
		if c.Negative() {
			return Matrix{}, false
		}
		if c.Row >= m.rows || c.Col >= m.cols {
			return Matrix{}, false
		}
		m.cells[c.Row*m.cols+c.Col] = 1
	}
	return m, true
}

// At returns the occupancy of (row, col), or 0 outside the grid.
func (m Matrix) At(row, col int) uint8 {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return 0
	}
	return m.cells[row*m.cols+col]
}

// Mass returns the number of occupied cells.
func (m Matrix) Mass() int {
	total := 0
	for _, v := range m.cells {
		total += int(v)
	}
	return total
}

// EqualMass reports whether the elementwise difference a-b sums to zero.
//
// This is deliberately not cell-by-cell equality: a move that shifts the body
// changes which cells are set, but keeps the sum. Only a collapse onto fewer
// distinct cells (the head landing on a body segment that stays put) changes
// the sum. Matrices of different shapes never compare equal.
func EqualMass(a, b Matrix) bool {
	if a.rows != b.rows || a.cols != b.cols || len(a.cells) != len(b.cells) {
		return false
	}
	sum := 0
	for i := range a.cells {
		sum += int(a.cells[i]) - int(b.cells[i])
	}
	return sum == 0
}

// Legal builds the occupancy of next and compares it against before.
// The after matrix is returned so the caller can reuse it as the next
// before snapshot.
func Legal(b core.Board, before Matrix, next Snake) (Matrix, bool) {
	after, ok := Build(b, next)
	if !ok {
		return Matrix{}, false
	}
	if !EqualMass(before, after) {
		return Matrix{}, false
	}
	return after, true
}

// Step moves s in direction d and reports whether the move is legal.
func Step(b core.Board, s Snake, before Matrix, d core.Direction) (Snake, Matrix, bool) {
	next := s.Move(d)
	after, ok := Legal(b, before, next)
	if !ok {
		return Snake{}, Matrix{}, false
	}
	return next, after, true
}

// String renders the grid as rows of 0/1, one line per row.
func (m Matrix) String() string {
	var sb strings.Builder
	sb.Grow(m.rows*(m.cols+1) + 1)
	for r := 0; r < m.rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < m.cols; c++ {
			sb.WriteByte('0' + m.At(r, c))
		}
	}
	return sb.String()
}
