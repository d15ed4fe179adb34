package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"depscope/internal/analysis"
	"depscope/internal/config"
	"depscope/internal/hotspots"
	"depscope/internal/logging"
	"depscope/internal/modules"
	"depscope/internal/ranking"
	"depscope/internal/storage"
)

// mustLoadConfig loads the repository config or exits with an error.
func mustLoadConfig(repoRoot string) *config.Config {
	cfg, err := config.LoadConfig(repoRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newLogger builds a logger from config, honoring the --log-level flag.
func newLogger(cfg *config.Config) *logging.Logger {
	level := cfg.Logging.Level
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	return logging.NewLogger(logging.Config{
		Format: logging.Format(cfg.Logging.Format),
		Level:  logging.LogLevel(level),
	})
}

// newContext returns a context cancelled on SIGINT/SIGTERM.
func newContext() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	return ctx
}

// analysisOptions maps config values onto engine options.
func analysisOptions(cfg *config.Config) analysis.Options {
	return analysis.Options{
		Ranking: ranking.Options{
			Damping:       cfg.Analysis.Damping,
			Epsilon:       cfg.Analysis.Epsilon,
			MaxIterations: cfg.Analysis.MaxIterations,
		},
		Thresholds: hotspots.Thresholds{
			Critical: cfg.Analysis.CriticalPercentile,
			High:     cfg.Analysis.HighPercentile,
			Medium:   cfg.Analysis.MediumPercentile,
		},
	}
}

// analyzeRepo runs the full pipeline: discover module roots, scan
// imports, derive module edges, and analyze — consulting the result
// cache unless disabled. Cache failures are logged and never fatal.
func analyzeRepo(ctx context.Context, repoRoot string, noCache bool, cfg *config.Config, logger *logging.Logger) (*analysis.RankingAnalysis, error) {
	roots, err := modules.DiscoverRoots(repoRoot, &cfg.Scan, logger)
	if err != nil {
		return nil, err
	}

	scanner := modules.NewScanner(&cfg.Scan, logger)
	imports, err := scanner.ScanDirectory(repoRoot, repoRoot)
	if err != nil {
		return nil, err
	}

	moduleEdges := modules.DeriveModuleEdges(imports, roots)
	edges := modules.ToGraphEdges(moduleEdges)
	fingerprint := storage.Fingerprint(edges)

	useCache := cfg.Cache.Enabled && !noCache
	var cache *storage.ResultCache
	var db *storage.DB

	if useCache {
		db, err = storage.Open(repoRoot, logger)
		if err != nil {
			logger.Warn("Cache unavailable, running uncached", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer db.Close()
			cache, err = storage.NewResultCache(db)
			if err != nil {
				logger.Warn("Cache unavailable, running uncached", map[string]interface{}{
					"error": err.Error(),
				})
				cache = nil
			}
		}
	}

	if cache != nil {
		payload, found, err := cache.Get(fingerprint)
		if err != nil {
			logger.Warn("Cache lookup failed", map[string]interface{}{
				"error": err.Error(),
			})
		} else if found {
			var result analysis.RankingAnalysis
			if err := json.Unmarshal(payload, &result); err == nil {
				logger.Debug("Cache hit", map[string]interface{}{
					"fingerprint": fingerprint,
				})
				return &result, nil
			}
			logger.Warn("Discarding unreadable cache entry", map[string]interface{}{
				"fingerprint": fingerprint,
			})
		}
	}

	engine := analysis.NewEngine(logger, analysisOptions(cfg))
	result, err := engine.Analyze(ctx, edges)
	if err != nil {
		return nil, err
	}

	if cache != nil {
		payload, err := json.Marshal(result)
		if err == nil {
			if err := cache.Put(fingerprint, payload,
				result.Stats.NodeCount, result.Stats.EdgeCount, cfg.Cache.TtlSeconds); err != nil {
				logger.Warn("Failed to store cache entry", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}

	return result, nil
}
