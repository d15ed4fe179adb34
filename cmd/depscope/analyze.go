package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"depscope/internal/export"
)

var (
	analyzeFormat  string
	analyzeNoCache bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full dependency analysis pipeline",
	Long: `Run the full pipeline: scan imports, build the module graph, and
report coupling, cycles, centrality, hotspots, and the refactoring plan.

Examples:
  depscope analyze
  depscope analyze --format=markdown
  depscope analyze --no-cache`,
	Run: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "json",
		"Output format (json, yaml, human, markdown)")
	analyzeCmd.Flags().BoolVar(&analyzeNoCache, "no-cache", false,
		"Bypass the result cache")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) {
	format := mustParseFormat(analyzeFormat)
	cfg := mustLoadConfig(repoFlag)
	logger := newLogger(cfg)

	result, err := analyzeRepo(newContext(), repoFlag, analyzeNoCache, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running analysis: %v\n", err)
		os.Exit(1)
	}

	data, err := export.Render(result, format)
	exitOnRenderError(err)
	os.Stdout.Write(data)
}
