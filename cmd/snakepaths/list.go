package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-paths/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered scenarios",
	Long:  `Shows every built-in and configured scenario with its expected result.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()
	list := registry.List()

	if len(list) == 0 {
		fmt.Fprintln(out, "No scenarios registered.")
		return
	}

	fmt.Fprintln(out, "Scenarios:")
	fmt.Fprintln(out)

	// Calculate column widths
	nameLen, expectLen := len("Name"), len("Expect")
	for _, s := range list {
		nameLen = max(nameLen, len(s.Name))
		expectLen = max(expectLen, len(s.Expect))
	}

	fmt.Fprintf(out, "  %-*s  %-*s  %s\n", nameLen, "Name", expectLen, "Expect", "Description")
	fmt.Fprintf(out, "  %-*s  %-*s  %s\n", nameLen, "----", expectLen, "------", "-----------")

	for _, s := range list {
		desc := s.Description
		if s.Source != "" && s.Source != "builtin" {
			desc = fmt.Sprintf("%s (%s)", desc, s.Source)
		}
		fmt.Fprintf(out, "  %-*s  %-*s  %s\n", nameLen, s.Name, expectLen, s.Expect, desc)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'snakepaths run <name>' to check a scenario.")
}
