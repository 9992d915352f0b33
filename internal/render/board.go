package render

import (
	"fmt"

	"github.com/vovakirdan/snake-paths/internal/core"
	"github.com/vovakirdan/snake-paths/internal/snake"
)

// Glyphs used on the board.
const (
	GlyphHead  = '@'
	GlyphBody  = 'o'
	GlyphEmpty = '·'
)

// MoveCheck is the legality of one first move.
type MoveCheck struct {
	Dir    core.Direction
	Legal  bool
	Reason string // "off board" or "overlaps body" when illegal
}

// FirstMoves checks every direction from the snake's current position.
func FirstMoves(b core.Board, s snake.Snake) []MoveCheck {
	before, _ := snake.Build(b, s)
	checks := make([]MoveCheck, 0, len(core.Directions))
	for _, d := range core.Directions {
		next := s.Move(d)
		check := MoveCheck{Dir: d}
		if _, ok := snake.Build(b, next); !ok {
			check.Reason = "off board"
		} else if _, ok := snake.Legal(b, before, next); !ok {
			check.Reason = "overlaps body"
		} else {
			check.Legal = true
		}
		checks = append(checks, check)
	}
	return checks
}

// boardSize returns the on-screen size of the framed board.
func boardSize(b core.Board) (w, h int) {
	return b.Cols()*2 + 3, b.Rows() + 2
}

// DrawBoard draws the framed board with the snake at (x, y).
// Each cell takes two columns; row 0 is at the top.
func DrawBoard(scr *core.Screen, x, y int, b core.Board, s snake.Snake) {
	w, h := boardSize(b)
	scr.DrawBox(core.NewRect(x, y, w, h), core.ColorGray)

	for r := 0; r < b.Rows(); r++ {
		for c := 0; c < b.Cols(); c++ {
			scr.Set(x+2+c*2, y+1+r, GlyphEmpty, core.ColorGray)
		}
	}
	// Draw tail first so the head wins if cells coincide.
	cells := s.Cells()
	for i := len(cells) - 1; i >= 0; i-- {
		cell := cells[i]
		if !b.Contains(cell) {
			continue
		}
		glyph, color := GlyphBody, core.ColorGreen
		if i == 0 {
			glyph, color = GlyphHead, core.ColorBrightGreen
		}
		scr.Set(x+2+cell.Col*2, y+1+cell.Row, glyph, color)
	}
}

// Show lays out the board, a summary line and the first-move table.
func Show(b core.Board, s snake.Snake) *core.Screen {
	checks := FirstMoves(b, s)
	summary := fmt.Sprintf("head %s  len %d  board %dx%d", s.Head(), s.Len(), b.Rows(), b.Cols())

	bw, bh := boardSize(b)
	width := max(bw, len([]rune(summary)))
	lines := make([]string, len(checks))
	for i, c := range checks {
		state := "legal"
		if !c.Legal {
			state = c.Reason
		}
		lines[i] = fmt.Sprintf("%s  %s", c.Dir, state)
		width = max(width, len(lines[i]))
	}

	scr := core.NewScreen(width, bh+2+len(checks))
	DrawBoard(scr, 0, 0, b, s)
	scr.DrawText(0, bh, summary, core.ColorDefault)
	for i, c := range checks {
		color := core.ColorRed
		if c.Legal {
			color = core.ColorGreen
		}
		scr.DrawText(0, bh+2+i, lines[i], color)
	}
	return scr
}
