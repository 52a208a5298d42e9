// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/bookoptimal/internal/config"
	"github.com/tomtom215/bookoptimal/internal/recommend"
)

// buildEngineConfig maps application settings onto the engine's config.
func buildEngineConfig(cfg *config.RecommendConfig) *recommend.Config {
	return &recommend.Config{
		Strategy: recommend.StrategyConfig{
			SimilarCount:     cfg.SimilarCount,
			PercentileBase:   cfg.PercentileBase,
			PercentileStep:   cfg.PercentileStep,
			PercentileProbes: cfg.PercentileProbes,
			RandomDraws:      cfg.RandomDraws,
			RandomWindow:     cfg.RandomWindow,
		},
		Limits: recommend.LimitsConfig{
			MaxResults: cfg.MaxResults,
		},
		Cache: recommend.CacheConfig{
			Enabled:    cfg.CacheEnabled,
			TTL:        cfg.CacheTTL,
			MaxEntries: cfg.CacheMaxEntries,
		},
		Seed: cfg.Seed,
	}
}

// initRecommend builds the engine and points it at the library store.
//
//nolint:gocritic // zerolog.Logger is passed by value throughout
func initRecommend(cfg *config.RecommendConfig, data recommend.DataProvider, logger zerolog.Logger) (*recommend.Engine, error) {
	engineCfg := buildEngineConfig(cfg)
	engine, err := recommend.NewEngine(engineCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}
	engine.SetDataProvider(data)

	logger.Info().
		Int("max_results", engineCfg.Limits.MaxResults).
		Bool("cache_enabled", engineCfg.Cache.Enabled).
		Int64("seed", engineCfg.Seed).
		Msg("Recommendation engine initialized")
	return engine, nil
}
