package main

import (
	"github.com/spf13/cobra"

	"depscope/internal/version"
)

var (
	// repoFlag is the CLI --repo flag value
	repoFlag string
	// logLevelFlag overrides the configured log level
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "depscope",
	Short: "depscope - module dependency graph analysis",
	Long: `depscope analyzes a repository's module dependency graph: coupling
metrics, dependency cycles, PageRank centrality, hotspot classification,
and a phased refactoring order that respects the graph.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("depscope version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&repoFlag, "repo", ".",
		"Repository root to analyze")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, error (default from config)")
}
