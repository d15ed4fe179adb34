package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	cyclesFormat  string
	cyclesNoCache bool
)

var cyclesCmd = &cobra.Command{
	Use:   "cycles",
	Short: "List dependency cycles in the module graph",
	Long: `List the strongly connected components that form dependency cycles.
Modules inside a cycle cannot be refactored independently.

Examples:
  depscope cycles
  depscope cycles --format=human`,
	Run: runCycles,
}

func init() {
	cyclesCmd.Flags().StringVar(&cyclesFormat, "format", "json",
		"Output format (json, yaml, human, markdown)")
	cyclesCmd.Flags().BoolVar(&cyclesNoCache, "no-cache", false,
		"Bypass the result cache")
	rootCmd.AddCommand(cyclesCmd)
}

func runCycles(cmd *cobra.Command, args []string) {
	format := mustParseFormat(cyclesFormat)
	cfg := mustLoadConfig(repoFlag)
	logger := newLogger(cfg)

	result, err := analyzeRepo(newContext(), repoFlag, cyclesNoCache, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running analysis: %v\n", err)
		os.Exit(1)
	}

	cycles := result.SafeOrder.Cycles
	renderSection(map[string]interface{}{"cycles": cycles}, format, func() string {
		if len(cycles) == 0 {
			return "No dependency cycles found\n"
		}
		var b strings.Builder
		fmt.Fprintf(&b, "Dependency cycles (%d):\n", len(cycles))
		for _, cycle := range cycles {
			fmt.Fprintf(&b, "  %s\n", strings.Join(cycle, " -> "))
		}
		return b.String()
	})
}
