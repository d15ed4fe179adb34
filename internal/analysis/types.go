package analysis

import (
	"depscope/internal/coupling"
	"depscope/internal/hotspots"
	"depscope/internal/planner"
)

// Stats summarizes one analysis run. AnalysisId and DurationMs vary per
// run and are excluded from determinism comparisons and cache keys.
type Stats struct {
	NodeCount  int  `json:"nodeCount"`
	EdgeCount  int  `json:"edgeCount"`
	CycleCount int  `json:"cycleCount"`
	Iterations int  `json:"iterations"`
	Converged  bool `json:"converged"`

	AnalysisId string `json:"analysisId,omitempty"`
	DurationMs int64  `json:"durationMs,omitempty"`
}

// RankingAnalysis is the top-level result bundle handed to renderers and
// the cache. Plain data, no behavior.
type RankingAnalysis struct {
	Hotspots  []hotspots.Hotspot          `json:"hotspots"`
	Coupling  map[string]coupling.Metrics `json:"coupling"`
	SafeOrder *planner.SafeOrder          `json:"safeOrder"`
	Stats     Stats                       `json:"stats"`
}
