package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-paths/internal/paths"
	"github.com/vovakirdan/snake-paths/internal/storage"
)

var (
	flagBoard    string
	flagSnake    string
	flagDepth    int
	flagStrategy string
	flagWorkers  int
	flagRecord   bool
	flagCache    bool
	flagStats    bool
)

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Count the legal move sequences for one input",
	Long: `Count the move sequences of exactly --depth moves that keep the snake
on the board and off its own body.

The snake is given head first as "row,col" cells. Invalid input prints
every violated constraint and exits with status 1.

Strategies:
  auto        - exhaustive up to the configured depth, memo above it
  exhaustive  - replay every one of the 4^depth sequences
  memo        - depth-first search memoized on the snake state

Examples:
  snakepaths count --board 4x3 --snake "2,2 3,2 3,1 3,0 2,0 1,0 0,0" --depth 3
  snakepaths count --board 10x10 --snake "5,5 5,4 4,4 4,5" --depth 20 --strategy memo
  snakepaths count --board 10x10 --snake "5,5 5,4 4,4 4,5" --depth 12 --record --stats`,
	Args: cobra.NoArgs,
	RunE: runCount,
}

func init() {
	countCmd.Flags().StringVar(&flagBoard, "board", "", "Board size as ROWSxCOLS")
	countCmd.Flags().StringVar(&flagSnake, "snake", "", `Snake cells head first, e.g. "2,2 3,2 3,1"`)
	countCmd.Flags().IntVar(&flagDepth, "depth", 0, "Number of moves")
	countCmd.Flags().StringVar(&flagStrategy, "strategy", "", "Search strategy: auto, exhaustive, memo")
	countCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Parallel workers (0 = from config, one per CPU by default)")
	countCmd.Flags().BoolVar(&flagRecord, "record", false, "Record the run in the history database")
	countCmd.Flags().BoolVar(&flagCache, "cache", false, "Reuse a recorded count for the same input")
	countCmd.Flags().BoolVar(&flagStats, "stats", false, "Print search statistics")
	_ = countCmd.MarkFlagRequired("board")
	_ = countCmd.MarkFlagRequired("snake")
	_ = countCmd.MarkFlagRequired("depth")
}

func runCount(cmd *cobra.Command, _ []string) error {
	board, err := parseBoard(flagBoard)
	if err != nil {
		return err
	}
	pairs, err := parseSnake(flagSnake)
	if err != nil {
		return err
	}
	in := paths.Input{Board: board, Snake: pairs, Depth: flagDepth}

	rc, err := runtimeFor(flagStrategy, flagWorkers)
	if err != nil {
		return err
	}

	e, err := paths.FromInput(in, paths.WithRuntime(rc), paths.WithLogger(logger))
	if err != nil {
		return reportConstraint(err)
	}

	var store *storage.Store
	if flagCache || flagRecord || appCfg.Storage.Record {
		store = openStore()
	}
	if store != nil {
		defer store.Close()
	}

	if flagCache && store != nil {
		count, ok, err := store.LookupCount(board[0], board[1], storage.FormatSnake(pairs), flagDepth)
		if err != nil {
			logger.Warn("cache lookup failed", "error", err)
		} else if ok {
			logger.Debug("cache hit", "board", flagBoard, "depth", flagDepth)
			fmt.Fprintln(cmd.OutOrStdout(), count)
			return nil
		}
	}

	ctx, cancel := interruptContext()
	defer cancel()

	res, err := e.Run(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, res.Count)
	if flagStats {
		st := res.Stats
		fmt.Fprintf(out, "strategy %s  workers %d  space %d  legal %d  replayed %d  states %d  elapsed %s\n",
			st.Strategy, st.Workers, st.Space, st.Legal, st.Replayed, st.States, st.Elapsed)
	}

	if store != nil && (flagRecord || appCfg.Storage.Record) {
		id, err := store.SaveRun(storage.NewRun("", in, res))
		if err != nil {
			logger.Warn("could not record run", "error", err)
		} else {
			logger.Debug("run recorded", "id", id)
		}
	}
	return nil
}
