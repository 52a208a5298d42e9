// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package main

import (
	"testing"
	"time"

	"github.com/tomtom215/bookoptimal/internal/config"
)

func TestBuildEngineConfig(t *testing.T) {
	t.Parallel()

	cfg := &config.RecommendConfig{
		MaxResults:       6,
		SimilarCount:     3,
		PercentileBase:   0.7,
		PercentileStep:   0.1,
		PercentileProbes: 2,
		RandomDraws:      1,
		RandomWindow:     5,
		CacheEnabled:     true,
		CacheTTL:         time.Minute,
		CacheMaxEntries:  50,
		Seed:             7,
	}

	got := buildEngineConfig(cfg)
	if err := got.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got.Limits.MaxResults != 6 || got.Strategy.SimilarCount != 3 || got.Strategy.RandomWindow != 5 {
		t.Errorf("strategy/limits = %+v / %+v", got.Strategy, got.Limits)
	}
	if got.Strategy.PercentileBase != 0.7 || got.Strategy.PercentileStep != 0.1 || got.Strategy.PercentileProbes != 2 {
		t.Errorf("percentiles = %+v", got.Strategy)
	}
	if !got.Cache.Enabled || got.Cache.TTL != time.Minute || got.Cache.MaxEntries != 50 {
		t.Errorf("cache = %+v", got.Cache)
	}
	if got.Seed != 7 {
		t.Errorf("Seed = %d", got.Seed)
	}
}
