// Package analysis wires the dependency-graph analyzers into a single
// pipeline producing a RankingAnalysis.
package analysis

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"depscope/internal/coupling"
	"depscope/internal/cycles"
	"depscope/internal/depgraph"
	"depscope/internal/hotspots"
	"depscope/internal/logging"
	"depscope/internal/planner"
	"depscope/internal/ranking"
)

// Options configures one analysis run.
type Options struct {
	Ranking    ranking.Options
	Thresholds hotspots.Thresholds
}

// DefaultOptions returns the standard pipeline configuration.
func DefaultOptions() Options {
	return Options{
		Ranking:    ranking.DefaultOptions(),
		Thresholds: hotspots.DefaultThresholds(),
	}
}

// Engine runs the analysis pipeline over module dependency edges.
type Engine struct {
	logger *logging.Logger
	opts   Options
}

// NewEngine creates an analysis engine.
func NewEngine(logger *logging.Logger, opts Options) *Engine {
	return &Engine{logger: logger, opts: opts}
}

// Analyze builds the graph and runs the full pipeline: coupling and cycle
// detection run concurrently over the immutable graph, then centrality
// (with SCCs available), planning, and classification. An empty edge list
// is not an error; all collections come back empty with zeroed stats.
func (e *Engine) Analyze(ctx context.Context, edges []depgraph.Edge) (*RankingAnalysis, error) {
	start := time.Now()

	graph, err := depgraph.Build(edges)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Both are pure reads of the immutable graph; no shared state.
	var (
		wg      sync.WaitGroup
		metrics map[string]coupling.Metrics
		sccs    [][]string
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		metrics = coupling.Analyze(graph)
	}()
	go func() {
		defer wg.Done()
		sccs = cycles.FindModuleSCCs(graph)
	}()
	wg.Wait()

	centrality := ranking.Rank(graph, e.opts.Ranking)
	safeOrder := planner.Plan(graph, sccs, metrics)
	spots := hotspots.Classify(metrics, centrality, e.opts.Thresholds)

	result := &RankingAnalysis{
		Hotspots:  spots,
		Coupling:  metrics,
		SafeOrder: safeOrder,
		Stats: Stats{
			NodeCount:  graph.NodeCount(),
			EdgeCount:  graph.EdgeCount(),
			CycleCount: len(safeOrder.Cycles),
			Iterations: centrality.Iterations,
			Converged:  centrality.Converged,
			AnalysisId: uuid.NewString(),
			DurationMs: time.Since(start).Milliseconds(),
		},
	}

	if !centrality.Converged && graph.NodeCount() > 0 {
		e.logger.Warn("PageRank did not converge; using best-effort scores", map[string]interface{}{
			"iterations": centrality.Iterations,
			"epsilon":    e.opts.Ranking.Epsilon,
		})
	}
	e.logger.Debug("Analysis completed", map[string]interface{}{
		"nodes":      result.Stats.NodeCount,
		"edges":      result.Stats.EdgeCount,
		"cycles":     result.Stats.CycleCount,
		"durationMs": result.Stats.DurationMs,
	})

	return result, nil
}
