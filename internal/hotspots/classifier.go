// Package hotspots grades modules by combining centrality percentile with
// coupling into a risk level and a human-readable justification.
package hotspots

import (
	"fmt"

	"depscope/internal/coupling"
	"depscope/internal/planner"
	"depscope/internal/ranking"
)

// Hotspot is the per-module risk view handed to renderers.
type Hotspot struct {
	ModuleId        string            `json:"moduleId"`
	RiskLevel       planner.RiskLevel `json:"riskLevel"`
	Reason          string            `json:"reason"`
	DependentCount  int               `json:"dependentCount"`
	DependencyCount int               `json:"dependencyCount"`
	PageRank        float64           `json:"pageRank"`
	Percentile      int               `json:"percentile"`
}

// Thresholds holds the percentile cutoffs for each risk level. The values
// are a documented policy, not something inferred per-repo.
type Thresholds struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
}

// DefaultThresholds returns the standard 90/75/50 cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{Critical: 90, High: 75, Medium: 50}
}

// Classify produces one hotspot per module, sorted by PageRank descending.
// No iteration of its own; O(V log V) for the sort.
func Classify(metrics map[string]coupling.Metrics, centrality *ranking.Result, thresholds Thresholds) []Hotspot {
	order := ranking.SortedByScore(centrality.Scores)

	maxCa := coupling.MaxAfferent(metrics)

	hotspots := make([]Hotspot, 0, len(order))
	for _, id := range order {
		score := centrality.Scores[id]
		m := metrics[id]

		hotspots = append(hotspots, Hotspot{
			ModuleId:        id,
			RiskLevel:       riskFor(score.Percentile, thresholds),
			Reason:          reasonFor(m, score, maxCa),
			DependentCount:  m.Afferent,
			DependencyCount: m.Efferent,
			PageRank:        score.PageRank,
			Percentile:      score.Percentile,
		})
	}

	return hotspots
}

func riskFor(percentile int, t Thresholds) planner.RiskLevel {
	switch {
	case percentile >= t.Critical:
		return planner.RiskCritical
	case percentile >= t.High:
		return planner.RiskHigh
	case percentile >= t.Medium:
		return planner.RiskMedium
	default:
		return planner.RiskLow
	}
}

// reasonFor names the dominant factor behind the grade.
func reasonFor(m coupling.Metrics, s ranking.Score, maxCa int) string {
	topDecile := s.Percentile >= 90
	highAfferent := maxCa > 0 && m.Afferent >= maxCa

	switch {
	case highAfferent && topDecile:
		return "high afferent coupling + top-decile centrality"
	case topDecile:
		return fmt.Sprintf("top-decile centrality (percentile %d)", s.Percentile)
	case highAfferent:
		return fmt.Sprintf("high afferent coupling (%d dependents)", m.Afferent)
	case m.Instability >= 0.8 && m.Efferent > 0:
		return fmt.Sprintf("unstable: depends on %d modules with few dependents", m.Efferent)
	case m.Afferent == 0 && m.Efferent == 0:
		return "isolated module, no couplings"
	default:
		return fmt.Sprintf("centrality percentile %d, %d dependents", s.Percentile, m.Afferent)
	}
}
