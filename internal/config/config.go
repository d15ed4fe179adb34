// Package config loads depscope configuration from .depscope/config.json.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"depscope/internal/errors"
)

// Config represents the complete depscope configuration
type Config struct {
	Version  int    `json:"version" mapstructure:"version"`
	RepoRoot string `json:"repoRoot" mapstructure:"repoRoot"`

	Analysis AnalysisConfig `json:"analysis" mapstructure:"analysis"`
	Scan     ScanConfig     `json:"scan" mapstructure:"scan"`
	Cache    CacheConfig    `json:"cache" mapstructure:"cache"`
	Logging  LoggingConfig  `json:"logging" mapstructure:"logging"`
}

// AnalysisConfig contains the pipeline defaults. Damping, epsilon, and the
// risk cutoffs are configuration, not reverse-engineered constants.
type AnalysisConfig struct {
	Damping            float64 `json:"damping" mapstructure:"damping"`
	Epsilon            float64 `json:"epsilon" mapstructure:"epsilon"`
	MaxIterations      int     `json:"maxIterations" mapstructure:"maxIterations"`
	CriticalPercentile int     `json:"criticalPercentile" mapstructure:"criticalPercentile"`
	HighPercentile     int     `json:"highPercentile" mapstructure:"highPercentile"`
	MediumPercentile   int     `json:"mediumPercentile" mapstructure:"mediumPercentile"`
}

// ScanConfig contains import scanning configuration
type ScanConfig struct {
	MaxFileSizeBytes int      `json:"maxFileSizeBytes" mapstructure:"maxFileSizeBytes"`
	MaxFiles         int      `json:"maxFiles" mapstructure:"maxFiles"`
	Ignore           []string `json:"ignore" mapstructure:"ignore"`
}

// CacheConfig contains result cache configuration
type CacheConfig struct {
	Enabled    bool `json:"enabled" mapstructure:"enabled"`
	TtlSeconds int  `json:"ttlSeconds" mapstructure:"ttlSeconds"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		RepoRoot: ".",
		Analysis: AnalysisConfig{
			Damping:            0.85,
			Epsilon:            1e-6,
			MaxIterations:      100,
			CriticalPercentile: 90,
			HighPercentile:     75,
			MediumPercentile:   50,
		},
		Scan: ScanConfig{
			MaxFileSizeBytes: 1000000,
			MaxFiles:         10000,
			Ignore:           []string{"node_modules", "vendor", "build", "dist", ".git"},
		},
		Cache: CacheConfig{
			Enabled:    true,
			TtlSeconds: 3600,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .depscope/config.json, falling back
// to defaults when no config file exists.
func LoadConfig(repoRoot string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("version", defaults.Version)
	v.SetDefault("repoRoot", defaults.RepoRoot)
	v.SetDefault("analysis", structToMap(defaults.Analysis))
	v.SetDefault("scan", structToMap(defaults.Scan))
	v.SetDefault("cache", structToMap(defaults.Cache))
	v.SetDefault("logging", structToMap(defaults.Logging))

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(repoRoot, ".depscope"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaults, nil
		}
		return nil, errors.NewDepscopeError(errors.ConfigInvalid, "failed to read config", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.NewDepscopeError(errors.ConfigInvalid, "failed to parse config", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// structToMap converts a config section to a map for viper defaults.
func structToMap(section interface{}) map[string]interface{} {
	data, err := json.Marshal(section)
	if err != nil {
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return m
}

// Save writes the configuration to .depscope/config.json
func (c *Config) Save(repoRoot string) error {
	dir := filepath.Join(repoRoot, ".depscope")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0o644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Analysis.Damping <= 0 || c.Analysis.Damping >= 1 {
		return errors.NewDepscopeError(errors.ConfigInvalid,
			"analysis.damping must be in (0, 1)", nil)
	}
	if c.Analysis.Epsilon <= 0 {
		return errors.NewDepscopeError(errors.ConfigInvalid,
			"analysis.epsilon must be positive", nil)
	}
	if c.Analysis.MaxIterations <= 0 {
		return errors.NewDepscopeError(errors.ConfigInvalid,
			"analysis.maxIterations must be positive", nil)
	}
	if c.Analysis.CriticalPercentile < c.Analysis.HighPercentile ||
		c.Analysis.HighPercentile < c.Analysis.MediumPercentile {
		return errors.NewDepscopeError(errors.ConfigInvalid,
			"risk percentile cutoffs must be ordered critical >= high >= medium", nil)
	}
	return nil
}
