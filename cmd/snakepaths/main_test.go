package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/snake-paths/internal/config"
	"github.com/vovakirdan/snake-paths/internal/storage"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		resetFlags()
	})

	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores flag variables, which cobra keeps between executions.
func resetFlags() {
	flagConfig, flagDBPath, flagLogLevel, flagCPUProfile = "", "", "", ""
	flagBoard, flagSnake, flagDepth, flagStrategy, flagWorkers = "", "", 0, "", 0
	flagRecord, flagCache, flagStats = false, false, false
	flagRunFile, flagRunStrategy, flagRunWorkers, flagRunRecord = "", "", 0, false
	flagShowBoard, flagShowSnake, flagShowMoves, flagShowDepth, flagShowPlain = "", "", "", 0, false
	flagHistScenario, flagHistLimit, flagHistStats, flagHistClear, flagHistID = "", 20, false, false, ""
	flagConfigWrite = ""
}

func TestCountCommand(t *testing.T) {
	out, err := execute(t, "count",
		"--board", "4x3",
		"--snake", "2,2 3,2 3,1 3,0 2,0 1,0 0,0",
		"--depth", "3",
		"--log-level", "error",
	)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if strings.TrimSpace(out) != "7" {
		t.Errorf("count printed %q, want 7", out)
	}
}

func TestCountCommandRecordsAndCaches(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")
	args := []string{"count",
		"--board", "10x10",
		"--snake", "5,5 5,4 4,4 4,5",
		"--depth", "4",
		"--db", db,
		"--log-level", "error",
	}

	out, err := execute(t, append(args, "--record")...)
	if err != nil {
		t.Fatalf("count --record failed: %v", err)
	}
	if strings.TrimSpace(out) != "81" {
		t.Fatalf("count printed %q, want 81", out)
	}
	resetFlags()

	out, err = execute(t, append(args, "--cache")...)
	if err != nil {
		t.Fatalf("count --cache failed: %v", err)
	}
	if strings.TrimSpace(out) != "81" {
		t.Errorf("cached count printed %q, want 81", out)
	}
}

func TestCountCommandInvalidInput(t *testing.T) {
	_, err := execute(t, "count",
		"--board", "1x1",
		"--snake", "0,0 0,1 0,2",
		"--depth", "21",
		"--log-level", "error",
	)
	if err != errReported {
		t.Errorf("expected errReported, got %v", err)
	}
}

func TestRunCommandBuiltins(t *testing.T) {
	out, err := execute(t, "run", "hook-4x3", "single-cell-board", "--log-level", "error")
	if err != nil {
		t.Fatalf("run failed: %v\n%s", err, out)
	}
	for _, want := range []string{"PASS  hook-4x3", "PASS  single-cell-board", "2 passed, 0 failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunCommandUnknownScenario(t *testing.T) {
	_, err := execute(t, "run", "no-such-scenario", "--log-level", "error")
	if err == nil {
		t.Error("expected an error for an unknown scenario")
	}
}

func TestListCommand(t *testing.T) {
	out, err := execute(t, "list", "--log-level", "error")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, want := range []string{"hook-4x3", "loop-10x10", "error: depth-range", "corner-line"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
}

func TestShowCommandScenario(t *testing.T) {
	out, err := execute(t, "show", "hook-4x3", "--log-level", "error")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("output to a buffer must not be styled:\n%q", out)
	}
	for _, want := range []string{"@", "head (2,2)  len 7  board 4x3", "paths of depth 3: 7"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q:\n%s", want, out)
		}
	}
}

func TestShowCommandMoves(t *testing.T) {
	out, err := execute(t, "show",
		"--board", "3x3",
		"--snake", "0,0 0,1 0,2",
		"--moves", "D",
		"--depth", "1",
		"--log-level", "error",
	)
	if err != nil {
		t.Fatalf("show --moves failed: %v", err)
	}
	for _, want := range []string{"│ o o · │", "│ @ · · │", "U  overlaps body", "paths of depth 1: 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q:\n%s", want, out)
		}
	}
}

func TestShowCommandIllegalMove(t *testing.T) {
	_, err := execute(t, "show", "--board", "3x3", "--snake", "0,0 0,1 0,2", "--moves", "L", "--log-level", "error")
	if err == nil || !strings.Contains(err.Error(), "move 1 (L) is illegal") {
		t.Errorf("expected an illegal move error, got %v", err)
	}
}

func TestHistoryCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")
	if _, err := execute(t, "count",
		"--board", "10x10",
		"--snake", "5,5 5,4 4,4 4,5",
		"--depth", "4",
		"--record",
		"--db", db,
		"--log-level", "error",
	); err != nil {
		t.Fatalf("count --record failed: %v", err)
	}
	resetFlags()

	out, err := execute(t, "history", "--db", db, "--log-level", "error")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	for _, want := range []string{"10x10", "81", "exhaustive"} {
		if !strings.Contains(out, want) {
			t.Errorf("history output missing %q:\n%s", want, out)
		}
	}
	resetFlags()

	store, err := storage.Open(db)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	runs, err := store.RecentRuns(1)
	store.Close()
	if err != nil || len(runs) != 1 {
		t.Fatalf("RecentRuns() = %v, %v", runs, err)
	}

	out, err = execute(t, "history", "--db", db, "--id", runs[0].ID, "--log-level", "error")
	if err != nil {
		t.Fatalf("history --id failed: %v", err)
	}
	for _, want := range []string{"ID:        " + runs[0].ID, "Snake:     5,5 5,4 4,4 4,5", "Count:     81"} {
		if !strings.Contains(out, want) {
			t.Errorf("history --id output missing %q:\n%s", want, out)
		}
	}
	resetFlags()

	if _, err := execute(t, "history", "--db", db, "--id", "missing", "--log-level", "error"); err == nil {
		t.Error("expected an error for an unknown run id")
	}
}

func TestConfigCommand(t *testing.T) {
	out, err := execute(t, "config", "--log-level", "error")
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}
	if out != string(config.DefaultYAML()) {
		t.Errorf("config printed something other than the defaults:\n%s", out)
	}
	resetFlags()

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if _, err := execute(t, "config", "--write", path, "--log-level", "error"); err != nil {
		t.Fatalf("config --write failed: %v", err)
	}
	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if string(written) != string(config.DefaultYAML()) {
		t.Error("written config differs from the defaults")
	}
	resetFlags()

	if _, err := execute(t, "config", "--write", path, "--log-level", "error"); err == nil {
		t.Error("config --write must not overwrite an existing file")
	}
}
