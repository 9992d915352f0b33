package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-paths/internal/config"
	"github.com/vovakirdan/snake-paths/internal/paths"
	"github.com/vovakirdan/snake-paths/internal/registry"
	"github.com/vovakirdan/snake-paths/internal/scenarios"
	"github.com/vovakirdan/snake-paths/internal/storage"
)

var (
	flagRunFile     string
	flagRunStrategy string
	flagRunWorkers  int
	flagRunRecord   bool
)

var runCmd = &cobra.Command{
	Use:   "run [name...]",
	Short: "Check scenarios against their expected results",
	Long: `Compute each named scenario, or every registered scenario when no
names are given, and compare the outcome with its expected count or
expected constraint error. Exits with status 1 if any scenario fails.

Scenario files hold a "scenarios:" list in the same format as the
config file.

Examples:
  snakepaths run
  snakepaths run hook-4x3 loop-10x10
  snakepaths run --strategy memo --workers 1
  snakepaths run --file ./my-scenarios.yaml`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagRunFile, "file", "", "Load extra scenarios from a YAML file")
	runCmd.Flags().StringVar(&flagRunStrategy, "strategy", "", "Search strategy: auto, exhaustive, memo")
	runCmd.Flags().IntVar(&flagRunWorkers, "workers", 0, "Parallel workers (0 = from config)")
	runCmd.Flags().BoolVar(&flagRunRecord, "record", false, "Record successful counts in the history database")
}

func runRun(cmd *cobra.Command, args []string) error {
	var fromFile []string
	if flagRunFile != "" {
		list, err := config.LoadScenarioFile(flagRunFile)
		if err != nil {
			return err
		}
		if err := scenarios.AddConfigured(list, flagRunFile); err != nil {
			return err
		}
		for _, sc := range list {
			fromFile = append(fromFile, sc.Name)
		}
	}

	names := args
	if len(names) == 0 && len(fromFile) > 0 {
		names = fromFile
	}
	if len(names) == 0 {
		for _, info := range registry.List() {
			names = append(names, info.Name)
		}
	}

	selected := make([]registry.Scenario, 0, len(names))
	for _, name := range names {
		if !registry.Exists(name) {
			return fmt.Errorf("unknown scenario %q (run 'snakepaths list' to see scenarios)", name)
		}
		s, err := registry.Get(name)
		if err != nil {
			return err
		}
		selected = append(selected, s)
	}

	rc, err := runtimeFor(flagRunStrategy, flagRunWorkers)
	if err != nil {
		return err
	}

	var store *storage.Store
	if flagRunRecord || appCfg.Storage.Record {
		store = openStore()
	}
	if store != nil {
		defer store.Close()
	}

	ctx, cancel := interruptContext()
	defer cancel()

	out := cmd.OutOrStdout()
	nameLen := 0
	for _, s := range selected {
		nameLen = max(nameLen, len(s.Name))
	}

	failed := 0
	for _, s := range selected {
		outcome, err := scenarios.Evaluate(ctx, s, paths.WithRuntime(rc), paths.WithLogger(logger))
		if err != nil {
			return err
		}

		if outcome.Pass {
			fmt.Fprintf(out, "PASS  %-*s  %s", nameLen, s.Name, outcome.Got())
			if outcome.Err == nil {
				fmt.Fprintf(out, "  (%s, %s)", outcome.Result.Stats.Strategy, round(outcome.Result.Stats.Elapsed))
			}
			fmt.Fprintln(out)
		} else {
			failed++
			fmt.Fprintf(out, "FAIL  %-*s  %s\n", nameLen, s.Name, outcome.Reason)
		}

		if store != nil && outcome.Err == nil {
			if _, err := store.SaveRun(storage.NewRun(s.Name, s.Input, outcome.Result)); err != nil {
				logger.Warn("could not record run", "scenario", s.Name, "error", err)
			}
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%d passed, %d failed\n", len(selected)-failed, failed)
	if failed > 0 {
		return errReported
	}
	return nil
}
