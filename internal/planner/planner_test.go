package planner

import (
	"reflect"
	"testing"

	"depscope/internal/coupling"
	"depscope/internal/cycles"
	"depscope/internal/depgraph"
)

func plan(t *testing.T, edges []depgraph.Edge) *SafeOrder {
	t.Helper()
	g, err := depgraph.Build(edges)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return Plan(g, cycles.FindModuleSCCs(g), coupling.Analyze(g))
}

func TestPlanPhasesWithCycle(t *testing.T) {
	// A -> B -> C -> A cycle, D depends on A, E fully isolated.
	// Cycle-free work at the same depth goes first, so the cycle gets its
	// own later phase.
	g, err := depgraph.BuildWithNodes([]string{"E"}, []depgraph.Edge{
		{From: "A", To: "B"},
		{From: "B", To: "C"},
		{From: "C", To: "A"},
		{From: "D", To: "A"},
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	order := Plan(g, cycles.FindModuleSCCs(g), coupling.Analyze(g))

	wantPhases := [][]string{
		{"E"},
		{"A", "B", "C"},
		{"D"},
	}
	if len(order.Phases) != len(wantPhases) {
		t.Fatalf("got %d phases %v, want %d", len(order.Phases), order.Phases, len(wantPhases))
	}
	for i, want := range wantPhases {
		if !reflect.DeepEqual(order.Phases[i].Modules, want) {
			t.Errorf("phase %d modules = %v, want %v", i+1, order.Phases[i].Modules, want)
		}
		if order.Phases[i].Order != i+1 {
			t.Errorf("phase %d has Order %d", i+1, order.Phases[i].Order)
		}
	}

	// The cycle phase must carry at least high risk.
	if riskOrder[order.Phases[1].RiskLevel] < riskOrder[RiskHigh] {
		t.Errorf("cycle phase risk = %s, want >= high", order.Phases[1].RiskLevel)
	}
	if riskOrder[order.EstimatedRisk] < riskOrder[RiskHigh] {
		t.Errorf("estimated risk = %s, want >= high", order.EstimatedRisk)
	}
}

func TestPlanDependenciesBeforeDependents(t *testing.T) {
	order := plan(t, []depgraph.Edge{
		{From: "app", To: "lib"},
		{From: "lib", To: "util"},
	})

	phaseOf := make(map[string]int)
	for _, p := range order.Phases {
		for _, id := range p.Modules {
			phaseOf[id] = p.Order
		}
	}
	if !(phaseOf["util"] < phaseOf["lib"] && phaseOf["lib"] < phaseOf["app"]) {
		t.Errorf("phase assignment %v violates dependency order", phaseOf)
	}
}

func TestPlanCanParallelize(t *testing.T) {
	// Two independent leaves land in the same phase.
	order := plan(t, []depgraph.Edge{
		{From: "app", To: "libA"},
		{From: "app", To: "libB"},
	})

	if len(order.Phases) != 2 {
		t.Fatalf("got %d phases %v, want 2", len(order.Phases), order.Phases)
	}
	if !order.Phases[0].CanParallelize {
		t.Error("first phase with two modules is not parallelizable")
	}
	if order.Phases[1].CanParallelize {
		t.Error("single-module phase marked parallelizable")
	}
}

func TestPlanPrerequisitePhases(t *testing.T) {
	order := plan(t, []depgraph.Edge{
		{From: "app", To: "lib"},
		{From: "lib", To: "util"},
	})

	if got := order.Phases[0].PrerequisitePhases; len(got) != 0 {
		t.Errorf("first phase has prerequisites %v", got)
	}
	if got := order.Phases[1].PrerequisitePhases; !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("second phase prerequisites = %v, want [1]", got)
	}
	if got := order.Phases[2].PrerequisitePhases; !reflect.DeepEqual(got, []int{2}) {
		t.Errorf("third phase prerequisites = %v, want [2]", got)
	}
}

func TestPlanLeafAndCoreNodes(t *testing.T) {
	order := plan(t, []depgraph.Edge{
		{From: "B", To: "A"},
		{From: "C", To: "A"},
		{From: "D", To: "A"},
		{From: "A", To: "base"},
	})

	// base depends on nothing; it is the only leaf.
	if !reflect.DeepEqual(order.LeafNodes, []string{"base"}) {
		t.Errorf("leaf nodes = %v, want [base]", order.LeafNodes)
	}

	// A has the top afferent coupling; it is the core.
	if !reflect.DeepEqual(order.CoreNodes, []string{"A"}) {
		t.Errorf("core nodes = %v, want [A]", order.CoreNodes)
	}
}

func TestPlanEmptyGraph(t *testing.T) {
	order := plan(t, nil)
	if len(order.Phases) != 0 || len(order.Cycles) != 0 ||
		len(order.LeafNodes) != 0 || len(order.CoreNodes) != 0 {
		t.Errorf("empty graph plan not empty: %+v", order)
	}
	if order.TotalModules != 0 || order.EstimatedRisk != RiskLow {
		t.Errorf("empty graph stats: total=%d risk=%s", order.TotalModules, order.EstimatedRisk)
	}
}

func TestPlanSingleModule(t *testing.T) {
	order := plan(t, []depgraph.Edge{{From: "only", To: "only"}})
	if order.TotalModules != 1 {
		t.Fatalf("TotalModules = %d, want 1", order.TotalModules)
	}
	// A self-loop is a one-module cycle.
	if len(order.Cycles) != 1 {
		t.Errorf("cycles = %v, want the self-loop", order.Cycles)
	}
	if riskOrder[order.EstimatedRisk] < riskOrder[RiskHigh] {
		t.Errorf("self-loop risk = %s, want >= high", order.EstimatedRisk)
	}
}

func TestMaxRisk(t *testing.T) {
	if got := MaxRisk(RiskLow, RiskCritical); got != RiskCritical {
		t.Errorf("MaxRisk(low, critical) = %s", got)
	}
	if got := MaxRisk(RiskHigh, RiskMedium); got != RiskHigh {
		t.Errorf("MaxRisk(high, medium) = %s", got)
	}
}
