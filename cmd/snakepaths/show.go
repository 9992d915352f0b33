package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-paths/internal/core"
	"github.com/vovakirdan/snake-paths/internal/paths"
	"github.com/vovakirdan/snake-paths/internal/registry"
	"github.com/vovakirdan/snake-paths/internal/render"
	"github.com/vovakirdan/snake-paths/internal/snake"
)

var (
	flagShowBoard string
	flagShowSnake string
	flagShowMoves string
	flagShowDepth int
	flagShowPlain bool
)

var showCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Draw a board with its snake and legal first moves",
	Long: `Draw the board of a scenario, or of --board and --snake, with the
snake's head (@) and body (o), followed by the legality of each first move.

--moves plays a sequence of moves (L, R, D, U) before drawing and stops at
the first illegal one. With a depth (the scenario's, or --depth) the number
of paths from the drawn position is printed too.

Colors are used only when writing to a terminal.

Examples:
  snakepaths show hook-4x3
  snakepaths show --board 3x3 --snake "0,0 0,1 0,2"
  snakepaths show --board 3x3 --snake "0,0 0,1 0,2" --moves "D R" --depth 3`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVar(&flagShowBoard, "board", "", "Board size as ROWSxCOLS")
	showCmd.Flags().StringVar(&flagShowSnake, "snake", "", "Snake cells head first")
	showCmd.Flags().StringVar(&flagShowMoves, "moves", "", `Moves to play first, e.g. "D R U"`)
	showCmd.Flags().IntVar(&flagShowDepth, "depth", 0, "Count paths of this depth (0 = the scenario's depth, none for --board)")
	showCmd.Flags().BoolVar(&flagShowPlain, "plain", false, "Never use colors")
}

func runShow(cmd *cobra.Command, args []string) error {
	var (
		dims  []int
		pairs [][]int
		depth = flagShowDepth
		err   error
	)
	switch {
	case len(args) == 1:
		sc, err := registry.Get(args[0])
		if err != nil {
			return err
		}
		dims, pairs = sc.Input.Board, sc.Input.Snake
		if depth == 0 {
			depth = sc.Input.Depth
		}
	case flagShowBoard != "" && flagShowSnake != "":
		if dims, err = parseBoard(flagShowBoard); err != nil {
			return err
		}
		if pairs, err = parseSnake(flagShowSnake); err != nil {
			return err
		}
	default:
		return errors.New("give a scenario name or both --board and --snake")
	}

	b, err := core.ParseBoard(dims)
	if err != nil {
		return reportConstraint(err)
	}
	s, err := snake.FromPairs(pairs, b)
	if err != nil {
		return reportConstraint(err)
	}
	if s, err = playMoves(b, s, flagShowMoves); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	styled := false
	if f, ok := out.(*os.File); ok && !flagShowPlain {
		styled = render.IsTerminal(f)
	}

	if depth == 0 {
		fmt.Fprintln(out, render.Output(render.Show(b, s), styled))
		return nil
	}

	rc, err := runtimeFor("", 0)
	if err != nil {
		return err
	}
	e, err := paths.New(b, s, depth, paths.WithRuntime(rc), paths.WithLogger(logger))
	if err != nil {
		return reportConstraint(err)
	}

	ctx, cancel := interruptContext()
	defer cancel()
	count, err := e.Compute(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, render.Output(render.Show(e.Board(), e.Snake()), styled))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "paths of depth %d: %d\n", e.Depth(), count)
	return nil
}

// playMoves applies space-separated moves in order, failing on the first
// one that is not legal.
func playMoves(b core.Board, s snake.Snake, moves string) (snake.Snake, error) {
	m, _ := snake.Build(b, s)
	for i, field := range strings.Fields(moves) {
		d, err := core.ParseDirection(field)
		if err != nil {
			return s, fmt.Errorf("move %d: %w", i+1, err)
		}
		next, after, ok := snake.Step(b, s, m, d)
		if !ok {
			return s, fmt.Errorf("move %d (%s) is illegal from %s", i+1, d, s)
		}
		s, m = next, after
	}
	return s, nil
}
