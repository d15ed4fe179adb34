package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"depscope/internal/output"
)

var (
	couplingFormat  string
	couplingNoCache bool
)

var couplingCmd = &cobra.Command{
	Use:   "coupling",
	Short: "Report afferent/efferent coupling per module",
	Long: `Report afferent coupling (dependents), efferent coupling
(dependencies), instability, and the combined risk score per module.

Examples:
  depscope coupling
  depscope coupling --format=human`,
	Run: runCoupling,
}

func init() {
	couplingCmd.Flags().StringVar(&couplingFormat, "format", "json",
		"Output format (json, yaml, human, markdown)")
	couplingCmd.Flags().BoolVar(&couplingNoCache, "no-cache", false,
		"Bypass the result cache")
	rootCmd.AddCommand(couplingCmd)
}

func runCoupling(cmd *cobra.Command, args []string) {
	format := mustParseFormat(couplingFormat)
	cfg := mustLoadConfig(repoFlag)
	logger := newLogger(cfg)

	result, err := analyzeRepo(newContext(), repoFlag, couplingNoCache, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running analysis: %v\n", err)
		os.Exit(1)
	}

	metrics := result.Coupling
	renderSection(map[string]interface{}{"coupling": metrics}, format, func() string {
		ids := make([]string, 0, len(metrics))
		for id := range metrics {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		var b strings.Builder
		fmt.Fprintf(&b, "%-40s %6s %6s %12s %10s\n", "module", "ca", "ce", "instability", "risk")
		for _, id := range ids {
			m := metrics[id]
			fmt.Fprintf(&b, "%-40s %6d %6d %12s %10s\n",
				id, m.Afferent, m.Efferent,
				output.FormatFloat(output.RoundFloat(m.Instability)),
				output.FormatFloat(output.RoundFloat(m.RiskScore)))
		}
		return b.String()
	})
}
