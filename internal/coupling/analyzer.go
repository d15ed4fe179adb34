package coupling

import (
	"depscope/internal/depgraph"
)

// Analyze computes coupling metrics for every module in the graph. Pure
// function of the graph, O(V); the returned map has one entry per node.
func Analyze(g *depgraph.Graph) map[string]Metrics {
	metrics := make(map[string]Metrics, g.NodeCount())

	maxAfferent := 0
	for _, id := range g.Nodes() {
		if ca := g.InDegree(id); ca > maxAfferent {
			maxAfferent = ca
		}
	}

	for _, id := range g.Nodes() {
		ca := g.InDegree(id)
		ce := g.OutDegree(id)

		normalizedAfferent := 0.0
		if maxAfferent > 0 {
			normalizedAfferent = float64(ca) / float64(maxAfferent)
		}

		instability := Instability(ca, ce)
		metrics[id] = Metrics{
			Afferent:    ca,
			Efferent:    ce,
			Instability: instability,
			RiskScore:   instability*0.5 + normalizedAfferent*0.5,
		}
	}

	return metrics
}

// MaxAfferent returns the highest afferent coupling in the metrics set.
func MaxAfferent(metrics map[string]Metrics) int {
	maxCa := 0
	for _, m := range metrics {
		if m.Afferent > maxCa {
			maxCa = m.Afferent
		}
	}
	return maxCa
}
