package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-paths/internal/storage"
)

var (
	flagHistScenario string
	flagHistLimit    int
	flagHistStats    bool
	flagHistClear    bool
	flagHistID       string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded runs",
	Long: `Display recorded runs from the history database, newest first.
Runs are recorded by 'count --record' and 'run --record', or always
when storage.record is set in the config.

Examples:
  snakepaths history
  snakepaths history --scenario hook-4x3
  snakepaths history --stats
  snakepaths history --id 4f3c1a52-...
  snakepaths history --scenario hook-4x3 --clear`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagHistScenario, "scenario", "", "Only show runs of this scenario")
	historyCmd.Flags().IntVar(&flagHistLimit, "limit", 20, "Maximum number of runs to show")
	historyCmd.Flags().BoolVar(&flagHistStats, "stats", false, "Show per-scenario statistics instead")
	historyCmd.Flags().BoolVar(&flagHistClear, "clear", false, "Delete the runs of --scenario")
	historyCmd.Flags().StringVar(&flagHistID, "id", "", "Show one run in full")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(appCfg.Storage.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagHistID != "" {
		r, err := store.RunByID(flagHistID)
		if err != nil {
			return err
		}
		if r == nil {
			return fmt.Errorf("no run with id %q", flagHistID)
		}
		fmt.Fprintf(out, "ID:        %s\n", r.ID)
		fmt.Fprintf(out, "Date:      %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Scenario:  %s\n", scenarioLabel(r.Scenario))
		fmt.Fprintf(out, "Board:     %dx%d\n", r.Rows, r.Cols)
		fmt.Fprintf(out, "Snake:     %s\n", r.Snake)
		fmt.Fprintf(out, "Depth:     %d\n", r.Depth)
		fmt.Fprintf(out, "Count:     %d\n", r.Count)
		fmt.Fprintf(out, "Strategy:  %s (%d workers)\n", r.Strategy, r.Workers)
		fmt.Fprintf(out, "Elapsed:   %s\n", round(r.Elapsed))
		return nil
	}

	if flagHistClear {
		if flagHistScenario == "" {
			return fmt.Errorf("--clear needs --scenario")
		}
		if err := store.ClearRuns(flagHistScenario); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared runs of %s.\n", flagHistScenario)
		return nil
	}

	if flagHistStats {
		stats, err := store.AllScenarioStats()
		if err != nil {
			return err
		}
		if len(stats) == 0 {
			fmt.Fprintln(out, "No runs recorded yet.")
			return nil
		}
		fmt.Fprintf(out, "  %-20s  %-5s  %-10s  %-10s  %s\n", "Scenario", "Runs", "Avg", "Max", "Last run")
		fmt.Fprintf(out, "  %-20s  %-5s  %-10s  %-10s  %s\n", "--------", "----", "---", "---", "--------")
		for _, st := range stats {
			fmt.Fprintf(out, "  %-20s  %-5d  %-10s  %-10s  %s\n",
				scenarioLabel(st.Scenario), st.Runs, round(st.AvgElapsed), round(st.MaxElapsed), st.LastRun.Format("2006-01-02 15:04"))
		}
		return nil
	}

	var runs []storage.Run
	if flagHistScenario != "" {
		runs, err = store.RunsFor(flagHistScenario, flagHistLimit)
	} else {
		runs, err = store.RecentRuns(flagHistLimit)
	}
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Use 'snakepaths count --record' or 'snakepaths run --record' to record runs.")
		return nil
	}

	fmt.Fprintf(out, "  %-16s  %-20s  %-6s  %-5s  %-12s  %-10s  %s\n", "Date", "Scenario", "Board", "Depth", "Count", "Strategy", "Elapsed")
	fmt.Fprintf(out, "  %-16s  %-20s  %-6s  %-5s  %-12s  %-10s  %s\n", "----", "--------", "-----", "-----", "-----", "--------", "-------")
	for _, r := range runs {
		fmt.Fprintf(out, "  %-16s  %-20s  %-6s  %-5d  %-12d  %-10s  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"),
			scenarioLabel(r.Scenario),
			fmt.Sprintf("%dx%d", r.Rows, r.Cols),
			r.Depth,
			r.Count,
			r.Strategy,
			round(r.Elapsed),
		)
	}
	return nil
}

func scenarioLabel(name string) string {
	if name == "" {
		return "-"
	}
	return name
}

func round(d time.Duration) time.Duration {
	return d.Round(time.Microsecond)
}
