package core

// Board size limits, inclusive.
const (
	MinBoardSide = 1
	MaxBoardSide = 10
)

// Board is an immutable rows x cols grid.
type Board struct {
	rows, cols int
}

// NewBoard validates both sides before returning.
func NewBoard(rows, cols int) (Board, error) {
	v := NewViolations(KindBoardShape)
	if rows < MinBoardSide || rows > MaxBoardSide {
		v.Addf("rows must be an integer between %d and %d, got %d", MinBoardSide, MaxBoardSide, rows)
	}
	if cols < MinBoardSide || cols > MaxBoardSide {
		v.Addf("cols must be an integer between %d and %d, got %d", MinBoardSide, MaxBoardSide, cols)
	}
	if err := v.Err(); err != nil {
		return Board{}, err
	}
	return Board{rows: rows, cols: cols}, nil
}

// ParseBoard builds a Board from a raw [rows, cols] pair.
func ParseBoard(dims []int) (Board, error) {
	if len(dims) != 2 {
		v := NewViolations(KindBoardShape)
		v.Addf("board length must be 2 (rows and columns), got %d", len(dims))
		return Board{}, v.Err()
	}
	return NewBoard(dims[0], dims[1])
}

// Rows returns the number of rows.
func (b Board) Rows() int { return b.rows }

// Cols returns the number of columns.
func (b Board) Cols() int { return b.cols }

// Area returns rows*cols.
func (b Board) Area() int { return b.rows * b.cols }

// Contains reports whether c lies on the board.
func (b Board) Contains(c Cell) bool {
	return c.Row >= 0 && c.Row < b.rows && c.Col >= 0 && c.Col < b.cols
}
