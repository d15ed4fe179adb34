// Package depgraph holds the immutable module dependency graph that every
// analyzer consumes. The graph is built once per analysis run from a flat
// list of (from, to) edges and is read-only afterwards.
package depgraph

import (
	"sort"
	"strings"

	"depscope/internal/errors"
)

// Edge is a single module dependency as reported by an import scanner or
// any other edge source. Both IDs are canonical module paths.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Graph is a directed module dependency graph with pre-built forward and
// reverse adjacency indices. Incoming edges are a derived view: incoming(B)
// contains A exactly when outgoing(A) contains B.
type Graph struct {
	nodes   []string
	nodeIdx map[string]int

	outgoing map[string][]string
	incoming map[string][]string

	edgeCount int
}

// Build constructs a graph from edges. Targets that only ever appear on the
// right-hand side of an edge become nodes with zero outgoing edges, so
// coupling and ranking still account for them. Self-loops are kept.
// Duplicate edges collapse to one. Blank IDs are rejected.
func Build(edges []Edge) (*Graph, error) {
	return BuildWithNodes(nil, edges)
}

// BuildWithNodes additionally seeds explicit nodes, so modules that appear
// in no edge at all still enter the graph as isolated nodes. Node ids
// already present in the edge list are harmless duplicates.
func BuildWithNodes(nodes []string, edges []Edge) (*Graph, error) {
	g := &Graph{
		nodeIdx:  make(map[string]int),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}

	for _, id := range nodes {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, errors.NewDepscopeError(errors.InvalidEdge,
				"node list contains a blank module id", nil)
		}
		g.addNode(id)
	}

	seen := make(map[string]bool, len(edges))
	for _, e := range edges {
		from := strings.TrimSpace(e.From)
		to := strings.TrimSpace(e.To)
		if from == "" || to == "" {
			return nil, errors.NewDepscopeError(errors.InvalidEdge,
				"edge references a blank module id", nil).
				WithDetails(map[string]string{"from": e.From, "to": e.To})
		}

		g.addNode(from)
		g.addNode(to)

		key := from + "\x00" + to
		if seen[key] {
			continue
		}
		seen[key] = true

		g.outgoing[from] = append(g.outgoing[from], to)
		g.incoming[to] = append(g.incoming[to], from)
		g.edgeCount++
	}

	// Fixed orders so every downstream pass is reproducible.
	sort.Strings(g.nodes)
	for i, id := range g.nodes {
		g.nodeIdx[id] = i
	}
	for _, adj := range []map[string][]string{g.outgoing, g.incoming} {
		for id := range adj {
			sort.Strings(adj[id])
		}
	}

	return g, nil
}

func (g *Graph) addNode(id string) {
	if _, ok := g.nodeIdx[id]; ok {
		return
	}
	g.nodeIdx[id] = len(g.nodes)
	g.nodes = append(g.nodes, id)
}

// Nodes returns all module IDs in sorted order. The returned slice is
// shared; callers must not modify it.
func (g *Graph) Nodes() []string {
	return g.nodes
}

// HasNode reports whether id is in the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodeIdx[id]
	return ok
}

// Outgoing returns the sorted modules id depends on.
func (g *Graph) Outgoing(id string) []string {
	return g.outgoing[id]
}

// Incoming returns the sorted modules that depend on id.
func (g *Graph) Incoming(id string) []string {
	return g.incoming[id]
}

// OutDegree returns the number of distinct modules id depends on.
func (g *Graph) OutDegree(id string) int {
	return len(g.outgoing[id])
}

// InDegree returns the number of distinct modules depending on id.
func (g *Graph) InDegree(id string) int {
	return len(g.incoming[id])
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

// HasSelfLoop reports whether id depends on itself.
func (g *Graph) HasSelfLoop(id string) bool {
	for _, to := range g.outgoing[id] {
		if to == id {
			return true
		}
	}
	return false
}
