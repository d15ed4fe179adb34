// Package planner turns the dependency graph and its strongly connected
// components into a phased, risk-annotated refactoring plan.
package planner

import (
	"sort"

	"depscope/internal/coupling"
	"depscope/internal/cycles"
	"depscope/internal/depgraph"
)

// RiskLevel orders refactoring risk from low to critical.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

var riskOrder = map[RiskLevel]int{
	RiskLow:      0,
	RiskMedium:   1,
	RiskHigh:     2,
	RiskCritical: 3,
}

// MaxRisk returns the higher of two risk levels.
func MaxRisk(a, b RiskLevel) RiskLevel {
	if riskOrder[b] > riskOrder[a] {
		return b
	}
	return a
}

// Phase is one step of the plan. Modules inside a phase have no ordering
// dependency on each other.
type Phase struct {
	Order              int       `json:"order"`
	Modules            []string  `json:"modules"`
	RiskLevel          RiskLevel `json:"riskLevel"`
	CanParallelize     bool      `json:"canParallelize"`
	PrerequisitePhases []int     `json:"prerequisitePhases"`
}

// SafeOrder is the full refactoring plan derived from the graph.
type SafeOrder struct {
	Phases        []Phase    `json:"phases"`
	Cycles        [][]string `json:"cycles"`
	LeafNodes     []string   `json:"leafNodes"`
	CoreNodes     []string   `json:"coreNodes"`
	TotalModules  int        `json:"totalModules"`
	EstimatedRisk RiskLevel  `json:"estimatedRisk"`
}

// Plan contracts each SCC into a super-node, topologically sorts the
// condensation graph with Kahn peeling, and annotates each round as a
// phase. A phase containing a multi-module SCC is forced to at least
// high risk: breaking a cycle needs coordinated edits.
func Plan(g *depgraph.Graph, sccs [][]string, metrics map[string]coupling.Metrics) *SafeOrder {
	order := &SafeOrder{
		Phases:        []Phase{},
		Cycles:        cycles.DependencyCycles(g, sccs),
		LeafNodes:     []string{},
		CoreNodes:     []string{},
		TotalModules:  g.NodeCount(),
		EstimatedRisk: RiskLow,
	}
	if order.Cycles == nil {
		order.Cycles = [][]string{}
	}
	if g.NodeCount() == 0 {
		return order
	}

	componentOf := make(map[string]int, g.NodeCount())
	for i, scc := range sccs {
		for _, id := range scc {
			componentOf[id] = i
		}
	}

	// Condensation: intra-SCC edges vanish, inter-SCC edges dedup.
	succ := make(map[int]map[int]bool, len(sccs))
	inDegree := make([]int, len(sccs))
	for _, from := range g.Nodes() {
		fc := componentOf[from]
		for _, to := range g.Outgoing(from) {
			tc := componentOf[to]
			if fc == tc {
				continue
			}
			if succ[fc] == nil {
				succ[fc] = make(map[int]bool)
			}
			if !succ[fc][tc] {
				succ[fc][tc] = true
				inDegree[tc]++
			}
		}
	}

	// Kahn peeling: each round of zero in-degree super-nodes is a phase.
	// The plan orders dependencies before dependents, so peeling runs
	// against the edge direction (a depends-on edge A->B means B first);
	// peel by zero *out*-degree over succ, i.e. zero in-degree over the
	// reversed condensation.
	remaining := make([]int, len(sccs))
	pred := make(map[int][]int, len(sccs))
	for fc, targets := range succ {
		for tc := range targets {
			pred[tc] = append(pred[tc], fc)
		}
	}
	for i := range remaining {
		remaining[i] = len(succ[i])
	}

	done := make([]bool, len(sccs))
	phaseOf := make([]int, len(sccs))
	phaseNum := 0
	processed := 0

	for processed < len(sccs) {
		var avail, safe []int
		for i := range sccs {
			if !done[i] && remaining[i] == 0 {
				avail = append(avail, i)
				if !isCycleComponent(g, sccs[i]) {
					safe = append(safe, i)
				}
			}
		}
		if len(avail) == 0 {
			// Cannot happen: SCC condensation is acyclic.
			break
		}
		// Cycle components wait until no cycle-free work remains at this
		// depth; breaking a cycle is coordinated multi-module surgery.
		round := avail
		if len(safe) > 0 && len(safe) < len(avail) {
			round = safe
		}
		phaseNum++

		var modules []string
		risk := RiskLow
		for _, comp := range round {
			done[comp] = true
			phaseOf[comp] = phaseNum
			processed++
			modules = append(modules, sccs[comp]...)
			if isCycleComponent(g, sccs[comp]) {
				risk = MaxRisk(risk, RiskHigh)
			}
			for _, p := range pred[comp] {
				remaining[p]--
			}
		}
		sort.Strings(modules)

		risk = MaxRisk(risk, phaseCouplingRisk(modules, metrics))

		prereqs := prerequisitePhases(round, succ, phaseOf)

		order.Phases = append(order.Phases, Phase{
			Order:              phaseNum,
			Modules:            modules,
			RiskLevel:          risk,
			CanParallelize:     len(round) > 1,
			PrerequisitePhases: prereqs,
		})
		order.EstimatedRisk = MaxRisk(order.EstimatedRisk, risk)
	}

	order.LeafNodes = leafNodes(g)
	order.CoreNodes = coreNodes(g, metrics)

	return order
}

func isCycleComponent(g *depgraph.Graph, scc []string) bool {
	return len(scc) >= 2 || (len(scc) == 1 && g.HasSelfLoop(scc[0]))
}

// phaseCouplingRisk grades a phase by the widest blast radius among its
// modules: how many dependents a change can ripple to.
func phaseCouplingRisk(modules []string, metrics map[string]coupling.Metrics) RiskLevel {
	maxDependents := 0
	for _, id := range modules {
		if m, ok := metrics[id]; ok && m.Afferent > maxDependents {
			maxDependents = m.Afferent
		}
	}
	switch {
	case maxDependents >= 10:
		return RiskHigh
	case maxDependents >= 4:
		return RiskMedium
	default:
		return RiskLow
	}
}

// prerequisitePhases lists the earlier phases this round's components
// depend on, deduplicated and ascending.
func prerequisitePhases(round []int, succ map[int]map[int]bool, phaseOf []int) []int {
	set := make(map[int]bool)
	for _, comp := range round {
		for dep := range succ[comp] {
			if p := phaseOf[dep]; p > 0 && p != phaseOf[comp] {
				set[p] = true
			}
		}
	}
	prereqs := make([]int, 0, len(set))
	for p := range set {
		prereqs = append(prereqs, p)
	}
	sort.Ints(prereqs)
	return prereqs
}

// leafNodes are modules that depend on nothing; changing them first
// breaks nobody beneath.
func leafNodes(g *depgraph.Graph) []string {
	var leaves []string
	for _, id := range g.Nodes() {
		if g.OutDegree(id) == 0 {
			leaves = append(leaves, id)
		}
	}
	if leaves == nil {
		leaves = []string{}
	}
	return leaves
}

// coreNodes are modules whose afferent coupling sits in the top decile of
// the graph; their changes ripple widest, so they move last.
func coreNodes(g *depgraph.Graph, metrics map[string]coupling.Metrics) []string {
	maxCa := coupling.MaxAfferent(metrics)
	if maxCa == 0 {
		return []string{}
	}
	threshold := float64(maxCa) * 0.9
	var core []string
	for _, id := range g.Nodes() {
		if m, ok := metrics[id]; ok && float64(m.Afferent) >= threshold {
			core = append(core, id)
		}
	}
	if core == nil {
		core = []string{}
	}
	return core
}
