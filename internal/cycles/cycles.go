package cycles

import "depscope/internal/depgraph"

// FindModuleSCCs runs SCC detection over a module dependency graph.
func FindModuleSCCs(g *depgraph.Graph) [][]string {
	return FindSCCs(g.Nodes(), g.Outgoing)
}

// DependencyCycles filters SCCs down to the ones worth reporting as
// cycles: any component of size two or more, or a singleton whose sole
// node depends on itself.
func DependencyCycles(g *depgraph.Graph, sccs [][]string) [][]string {
	var out [][]string
	for _, scc := range sccs {
		if len(scc) >= 2 || (len(scc) == 1 && g.HasSelfLoop(scc[0])) {
			out = append(out, scc)
		}
	}
	return out
}
