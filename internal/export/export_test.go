package export

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"depscope/internal/analysis"
	"depscope/internal/depgraph"
	"depscope/internal/logging"
)

func testResult(t *testing.T) *analysis.RankingAnalysis {
	t.Helper()
	logger := logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.ErrorLevel,
	})
	engine := analysis.NewEngine(logger, analysis.DefaultOptions())
	result, err := engine.Analyze(context.Background(), []depgraph.Edge{
		{From: "a", To: "b"},
		{From: "b", To: "c"},
		{From: "c", To: "a"},
		{From: "d", To: "a"},
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	return result
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"json", "yaml", "human", "markdown"} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q) failed: %v", s, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) succeeded")
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := Render(testResult(t), FormatJSON)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	var decoded analysis.RankingAnalysis
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Hotspots) != 4 {
		t.Errorf("decoded %d hotspots, want 4", len(decoded.Hotspots))
	}
}

func TestRenderYAML(t *testing.T) {
	data, err := Render(testResult(t), FormatYAML)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(string(data), "hotspots:") {
		t.Errorf("yaml output missing hotspots section:\n%s", data)
	}
}

func TestRenderMarkdown(t *testing.T) {
	data, err := Render(testResult(t), FormatMarkdown)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := string(data)
	for _, section := range []string{"# Dependency Analysis", "## Hotspots", "## Coupling", "## Cycles", "## Refactoring Plan"} {
		if !strings.Contains(out, section) {
			t.Errorf("markdown missing %q", section)
		}
	}
}

func TestRenderHuman(t *testing.T) {
	data, err := Render(testResult(t), FormatHuman)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "4 modules") {
		t.Errorf("human output missing module count:\n%s", out)
	}
	if !strings.Contains(out, "a -> b -> c") && !strings.Contains(out, "Cycles (1)") {
		t.Errorf("human output missing cycle report:\n%s", out)
	}
}

func TestRenderDoesNotMutateInput(t *testing.T) {
	result := testResult(t)
	before := result.Hotspots[0].PageRank

	if _, err := Render(result, FormatJSON); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if result.Hotspots[0].PageRank != before {
		t.Error("Render mutated the input result")
	}
}
