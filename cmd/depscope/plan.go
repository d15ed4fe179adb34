package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	planFormat  string
	planNoCache bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute a safe phased refactoring order",
	Long: `Compute a refactoring plan: phases ordered so every module's
dependencies are refactored in an earlier phase, with cycles grouped
into their own high-risk phases.

Examples:
  depscope plan
  depscope plan --format=human`,
	Run: runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planFormat, "format", "json",
		"Output format (json, yaml, human, markdown)")
	planCmd.Flags().BoolVar(&planNoCache, "no-cache", false,
		"Bypass the result cache")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) {
	format := mustParseFormat(planFormat)
	cfg := mustLoadConfig(repoFlag)
	logger := newLogger(cfg)

	result, err := analyzeRepo(newContext(), repoFlag, planNoCache, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running analysis: %v\n", err)
		os.Exit(1)
	}

	order := result.SafeOrder
	renderSection(order, format, func() string {
		var b strings.Builder
		fmt.Fprintf(&b, "Refactoring plan: %d modules, %d phases, estimated risk %s\n",
			order.TotalModules, len(order.Phases), order.EstimatedRisk)
		for _, p := range order.Phases {
			parallel := ""
			if p.CanParallelize {
				parallel = " [parallel]"
			}
			fmt.Fprintf(&b, "  Phase %d (%s)%s: %s\n",
				p.Order, p.RiskLevel, parallel, strings.Join(p.Modules, ", "))
		}
		if len(order.Cycles) > 0 {
			fmt.Fprintf(&b, "Cycles requiring coordinated edits: %d\n", len(order.Cycles))
		}
		return b.String()
	})
}
