package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"depscope/internal/output"
)

var (
	hotspotsFormat  string
	hotspotsNoCache bool
	hotspotsLimit   int
)

var hotspotsCmd = &cobra.Command{
	Use:   "hotspots",
	Short: "Rank modules by centrality-weighted refactoring risk",
	Long: `Rank modules by PageRank centrality combined with coupling, graded
into critical/high/medium/low risk levels.

Examples:
  depscope hotspots
  depscope hotspots --limit=10
  depscope hotspots --format=human`,
	Run: runHotspots,
}

func init() {
	hotspotsCmd.Flags().StringVar(&hotspotsFormat, "format", "json",
		"Output format (json, yaml, human, markdown)")
	hotspotsCmd.Flags().BoolVar(&hotspotsNoCache, "no-cache", false,
		"Bypass the result cache")
	hotspotsCmd.Flags().IntVar(&hotspotsLimit, "limit", 0,
		"Maximum hotspots to return (0 = all)")
	rootCmd.AddCommand(hotspotsCmd)
}

func runHotspots(cmd *cobra.Command, args []string) {
	format := mustParseFormat(hotspotsFormat)
	cfg := mustLoadConfig(repoFlag)
	logger := newLogger(cfg)

	result, err := analyzeRepo(newContext(), repoFlag, hotspotsNoCache, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running analysis: %v\n", err)
		os.Exit(1)
	}

	spots := result.Hotspots
	if hotspotsLimit > 0 && len(spots) > hotspotsLimit {
		spots = spots[:hotspotsLimit]
	}

	renderSection(map[string]interface{}{"hotspots": spots}, format, func() string {
		var b strings.Builder
		for _, h := range spots {
			fmt.Fprintf(&b, "[%-8s] %s  (rank %s, pct %d, %d dependents) %s\n",
				h.RiskLevel, h.ModuleId,
				output.FormatFloat(output.RoundFloat(h.PageRank)),
				h.Percentile, h.DependentCount, h.Reason)
		}
		return b.String()
	})
}
