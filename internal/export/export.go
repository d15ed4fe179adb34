// Package export renders a RankingAnalysis into the supported output
// formats: machine-readable JSON/YAML and human-oriented text/markdown.
package export

import (
	"fmt"
	"sort"
	"strings"

	"depscope/internal/analysis"
	"depscope/internal/coupling"
	"depscope/internal/errors"
	"depscope/internal/hotspots"
	"depscope/internal/output"
)

// Format names an output rendering.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatHuman    Format = "human"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatYAML, FormatHuman, FormatMarkdown:
		return Format(s), nil
	}
	return "", errors.NewDepscopeError(errors.ConfigInvalid,
		fmt.Sprintf("unknown format %q (want json, yaml, human, or markdown)", s), nil)
}

// Render serializes the analysis in the requested format. Floats are
// rounded before encoding so re-renders of the same analysis are
// byte-identical.
func Render(result *analysis.RankingAnalysis, format Format) ([]byte, error) {
	rounded := roundResult(result)
	switch format {
	case FormatJSON:
		return output.MarshalJSON(rounded)
	case FormatYAML:
		return output.MarshalYAML(rounded)
	case FormatMarkdown:
		return []byte(renderMarkdown(rounded)), nil
	case FormatHuman:
		return []byte(renderHuman(rounded)), nil
	default:
		return nil, errors.NewDepscopeError(errors.InternalError,
			fmt.Sprintf("unhandled format %q", format), nil)
	}
}

// roundResult returns a copy with float fields rounded to 6 decimals.
// The input is not mutated; callers may still cache the raw result.
func roundResult(result *analysis.RankingAnalysis) *analysis.RankingAnalysis {
	out := *result

	out.Hotspots = make([]hotspots.Hotspot, len(result.Hotspots))
	for i, h := range result.Hotspots {
		h.PageRank = output.RoundFloat(h.PageRank)
		out.Hotspots[i] = h
	}

	out.Coupling = make(map[string]coupling.Metrics, len(result.Coupling))
	for id, m := range result.Coupling {
		m.Instability = output.RoundFloat(m.Instability)
		m.RiskScore = output.RoundFloat(m.RiskScore)
		out.Coupling[id] = m
	}

	return &out
}

func renderHuman(r *analysis.RankingAnalysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Dependency analysis: %d modules, %d edges\n",
		r.Stats.NodeCount, r.Stats.EdgeCount)
	if !r.Stats.Converged && r.Stats.NodeCount > 0 {
		fmt.Fprintf(&b, "  (centrality did not converge after %d iterations; scores are best-effort)\n",
			r.Stats.Iterations)
	}
	b.WriteString("\n")

	if len(r.SafeOrder.Cycles) > 0 {
		fmt.Fprintf(&b, "Cycles (%d):\n", len(r.SafeOrder.Cycles))
		for _, cycle := range r.SafeOrder.Cycles {
			fmt.Fprintf(&b, "  %s\n", strings.Join(cycle, " -> "))
		}
	} else {
		b.WriteString("Cycles: none\n")
	}
	b.WriteString("\n")

	b.WriteString("Hotspots:\n")
	for _, h := range r.Hotspots {
		fmt.Fprintf(&b, "  [%-8s] %s  (rank %s, pct %d, %d dependents) %s\n",
			h.RiskLevel, h.ModuleId, output.FormatFloat(h.PageRank),
			h.Percentile, h.DependentCount, h.Reason)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Refactoring plan (%d phases, estimated risk %s):\n",
		len(r.SafeOrder.Phases), r.SafeOrder.EstimatedRisk)
	for _, p := range r.SafeOrder.Phases {
		parallel := ""
		if p.CanParallelize {
			parallel = " [parallel]"
		}
		fmt.Fprintf(&b, "  Phase %d (%s)%s: %s\n",
			p.Order, p.RiskLevel, parallel, strings.Join(p.Modules, ", "))
	}
	if len(r.SafeOrder.LeafNodes) > 0 {
		fmt.Fprintf(&b, "  Leaves: %s\n", strings.Join(r.SafeOrder.LeafNodes, ", "))
	}
	if len(r.SafeOrder.CoreNodes) > 0 {
		fmt.Fprintf(&b, "  Core:   %s\n", strings.Join(r.SafeOrder.CoreNodes, ", "))
	}

	return b.String()
}

func renderMarkdown(r *analysis.RankingAnalysis) string {
	var b strings.Builder

	b.WriteString("# Dependency Analysis\n\n")
	fmt.Fprintf(&b, "- Modules: %d\n- Edges: %d\n- Cycles: %d\n\n",
		r.Stats.NodeCount, r.Stats.EdgeCount, r.Stats.CycleCount)

	b.WriteString("## Hotspots\n\n")
	b.WriteString("| Module | Risk | PageRank | Percentile | Dependents | Reason |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, h := range r.Hotspots {
		fmt.Fprintf(&b, "| %s | %s | %s | %d | %d | %s |\n",
			h.ModuleId, h.RiskLevel, output.FormatFloat(h.PageRank),
			h.Percentile, h.DependentCount, h.Reason)
	}
	b.WriteString("\n")

	b.WriteString("## Coupling\n\n")
	b.WriteString("| Module | Ca | Ce | Instability | Risk score |\n")
	b.WriteString("|---|---|---|---|---|\n")
	ids := make([]string, 0, len(r.Coupling))
	for id := range r.Coupling {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		m := r.Coupling[id]
		fmt.Fprintf(&b, "| %s | %d | %d | %s | %s |\n",
			id, m.Afferent, m.Efferent,
			output.FormatFloat(m.Instability), output.FormatFloat(m.RiskScore))
	}
	b.WriteString("\n")

	if len(r.SafeOrder.Cycles) > 0 {
		b.WriteString("## Cycles\n\n")
		for _, cycle := range r.SafeOrder.Cycles {
			fmt.Fprintf(&b, "- %s\n", strings.Join(cycle, " -> "))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Refactoring Plan (estimated risk: %s)\n\n", r.SafeOrder.EstimatedRisk)
	for _, p := range r.SafeOrder.Phases {
		parallel := ""
		if p.CanParallelize {
			parallel = ", parallelizable"
		}
		fmt.Fprintf(&b, "%d. **Phase %d** (%s%s): %s\n",
			p.Order, p.Order, p.RiskLevel, parallel, strings.Join(p.Modules, ", "))
	}

	return b.String()
}
