package config

import (
	"os"
	"path/filepath"
	"testing"

	"depscope/internal/errors"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Analysis.Damping != 0.85 {
		t.Errorf("damping = %v, want 0.85", cfg.Analysis.Damping)
	}
	if cfg.Analysis.MaxIterations != 100 {
		t.Errorf("maxIterations = %d, want 100", cfg.Analysis.MaxIterations)
	}
	if cfg.Analysis.CriticalPercentile != 90 || cfg.Analysis.HighPercentile != 75 ||
		cfg.Analysis.MediumPercentile != 50 {
		t.Errorf("percentile cutoffs = %d/%d/%d, want 90/75/50",
			cfg.Analysis.CriticalPercentile, cfg.Analysis.HighPercentile,
			cfg.Analysis.MediumPercentile)
	}
	if !cfg.Cache.Enabled {
		t.Error("cache disabled by default")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".depscope"), 0o755); err != nil {
		t.Fatal(err)
	}
	content := `{
  "analysis": {"damping": 0.9, "maxIterations": 50},
  "cache": {"enabled": false}
}`
	if err := os.WriteFile(filepath.Join(dir, ".depscope", "config.json"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Analysis.Damping != 0.9 {
		t.Errorf("damping = %v, want 0.9", cfg.Analysis.Damping)
	}
	if cfg.Analysis.MaxIterations != 50 {
		t.Errorf("maxIterations = %d, want 50", cfg.Analysis.MaxIterations)
	}
	if cfg.Cache.Enabled {
		t.Error("cache.enabled not overridden")
	}
	// Unset keys keep their defaults.
	if cfg.Analysis.Epsilon != 1e-6 {
		t.Errorf("epsilon = %v, want default 1e-6", cfg.Analysis.Epsilon)
	}
}

func TestLoadConfigInvalidValues(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".depscope"), 0o755); err != nil {
		t.Fatal(err)
	}
	content := `{"analysis": {"damping": 1.5}}`
	if err := os.WriteFile(filepath.Join(dir, ".depscope", "config.json"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadConfig(dir)
	if err == nil {
		t.Fatal("damping 1.5 accepted")
	}
	if errors.CodeOf(err) != errors.ConfigInvalid {
		t.Errorf("error code = %s, want %s", errors.CodeOf(err), errors.ConfigInvalid)
	}
}

func TestValidateCutoffOrdering(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Analysis.HighPercentile = 95 // above critical
	if err := cfg.Validate(); err == nil {
		t.Error("unordered cutoffs accepted")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Analysis.Damping = 0.7

	if err := cfg.Save(dir); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Analysis.Damping != 0.7 {
		t.Errorf("damping after round trip = %v, want 0.7", loaded.Analysis.Damping)
	}
}
