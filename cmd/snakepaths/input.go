package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/vovakirdan/snake-paths/internal/core"
	"github.com/vovakirdan/snake-paths/internal/storage"
)

// parseBoard accepts "ROWSxCOLS" or "ROWS,COLS".
func parseBoard(s string) ([]int, error) {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == 'x' || r == ',' || r == ' '
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("board %q: expected ROWSxCOLS", s)
	}
	return parseInts(fields, "board")
}

// parseSnake accepts cells as "r,c" separated by spaces or semicolons,
// head first. Shape problems are left to snake validation.
func parseSnake(s string) ([][]int, error) {
	cells := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ';' || r == '\t'
	})
	if len(cells) == 0 {
		return nil, fmt.Errorf("snake %q: expected cells like \"2,2 3,2 3,1\"", s)
	}
	pairs := make([][]int, 0, len(cells))
	for _, cell := range cells {
		nums, err := parseInts(strings.Split(cell, ","), "snake cell "+cell)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, nums)
	}
	return pairs, nil
}

func parseInts(fields []string, what string) ([]int, error) {
	nums := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not an integer", what, f)
		}
		nums = append(nums, n)
	}
	return nums, nil
}

// runtimeFor applies --strategy and --workers on top of the engine config.
func runtimeFor(strategy string, workers int) (core.RuntimeConfig, error) {
	rc, err := appCfg.Engine.Runtime()
	if err != nil {
		return rc, err
	}
	if strategy != "" {
		if rc.Strategy, err = core.ParseStrategy(strategy); err != nil {
			return rc, err
		}
	}
	if workers > 0 {
		rc.Workers = workers
	}
	return rc, nil
}

// interruptContext is cancelled on Ctrl+C.
func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// openStore opens the run history, logging instead of failing when it is
// unavailable.
func openStore() *storage.Store {
	store, err := storage.Open(appCfg.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open run history", "path", appCfg.Storage.DBPath, "error", err)
		return nil
	}
	return store
}

// reportConstraint prints each constraint violation on its own line.
func reportConstraint(err error) error {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintln(os.Stderr, line)
	}
	return errReported
}
