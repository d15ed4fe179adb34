// Package ranking computes PageRank centrality over the module dependency
// graph via power iteration.
package ranking

import (
	"math"
	"sort"

	"depscope/internal/depgraph"
)

// Options configures the PageRank computation.
type Options struct {
	// Damping is the probability of following an edge vs teleporting (default: 0.85)
	Damping float64

	// Epsilon is the L1-norm convergence threshold (default: 1e-6)
	Epsilon float64

	// MaxIterations caps the power iteration (default: 100)
	MaxIterations int
}

// DefaultOptions returns sensible defaults for PageRank.
func DefaultOptions() Options {
	return Options{
		Damping:       0.85,
		Epsilon:       1e-6,
		MaxIterations: 100,
	}
}

// Score is the centrality of one module. Percentile is rank-based:
// 100 is the most central module in the graph.
type Score struct {
	PageRank   float64 `json:"pageRank"`
	Percentile int     `json:"percentile"`
}

// Result contains the full centrality computation.
//
// Under the random-surfer normalization used here the scores sum to the
// node count; dangling nodes have their mass redistributed uniformly each
// iteration so nothing leaks out of the system.
type Result struct {
	Scores     map[string]Score `json:"scores"`
	Iterations int              `json:"iterations"`
	Converged  bool             `json:"converged"`
}

// Rank computes PageRank for every node in the graph. Node iteration is in
// sorted id order and each pass reads only the previous iteration's
// snapshot, so results are bit-reproducible across runs.
func Rank(g *depgraph.Graph, opts Options) *Result {
	if opts.Damping <= 0 || opts.Damping >= 1 {
		opts.Damping = 0.85
	}
	if opts.Epsilon <= 0 {
		opts.Epsilon = 1e-6
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = 100
	}

	nodes := g.Nodes()
	n := len(nodes)
	if n == 0 {
		return &Result{Scores: map[string]Score{}, Converged: true}
	}

	scores := make([]float64, n)
	newScores := make([]float64, n)
	for i := range scores {
		scores[i] = 1.0
	}

	idx := make(map[string]int, n)
	for i, id := range nodes {
		idx[id] = i
	}

	var iterations int
	var converged bool

	for iter := 0; iter < opts.MaxIterations; iter++ {
		iterations = iter + 1

		// Dangling nodes would otherwise leak their entire mass; spread
		// it uniformly before the edge-weighted sum.
		danglingMass := 0.0
		for i, id := range nodes {
			if g.OutDegree(id) == 0 {
				danglingMass += scores[i]
			}
		}
		danglingShare := opts.Damping * danglingMass / float64(n)

		for i, id := range nodes {
			sum := 0.0
			for _, p := range g.Incoming(id) {
				pi := idx[p]
				sum += scores[pi] / float64(g.OutDegree(p))
			}
			newScores[i] = (1-opts.Damping) + opts.Damping*sum + danglingShare
		}

		delta := 0.0
		for i := range newScores {
			delta += math.Abs(newScores[i] - scores[i])
		}

		scores, newScores = newScores, scores

		if delta < opts.Epsilon {
			converged = true
			break
		}
	}

	result := &Result{
		Scores:     make(map[string]Score, n),
		Iterations: iterations,
		Converged:  converged,
	}
	for i, id := range nodes {
		result.Scores[id] = Score{PageRank: scores[i]}
	}
	assignPercentiles(result.Scores)

	return result
}

// assignPercentiles stable-sorts final scores descending and maps rank
// position to 100 * (1 - rank/total). Ties on score break by id so the
// mapping is a pure function of the score list.
func assignPercentiles(scores map[string]Score) {
	type ranked struct {
		id    string
		score float64
	}
	order := make([]ranked, 0, len(scores))
	for id, s := range scores {
		order = append(order, ranked{id: id, score: s.PageRank})
	}
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].score != order[j].score {
			return order[i].score > order[j].score
		}
		return order[i].id < order[j].id
	})

	total := len(order)
	for rank, r := range order {
		s := scores[r.id]
		s.Percentile = int(math.Round(100 * (1 - float64(rank)/float64(total))))
		scores[r.id] = s
	}
}

// SortedByScore returns node ids ordered by descending PageRank, ties
// broken by id.
func SortedByScore(scores map[string]Score) []string {
	ids := make([]string, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.SliceStable(ids, func(i, j int) bool {
		si, sj := scores[ids[i]].PageRank, scores[ids[j]].PageRank
		if si != sj {
			return si > sj
		}
		return ids[i] < ids[j]
	})
	return ids
}
