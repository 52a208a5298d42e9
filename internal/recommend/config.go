// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package recommend

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Config tunes the engine. The zero value is not usable; start from
// DefaultConfig.
type Config struct {
	Strategy StrategyConfig `json:"strategy"`
	Limits   LimitsConfig   `json:"limits"`
	Cache    CacheConfig    `json:"cache"`

	// Seed drives the pivot and rank draws. Runs with the same seed and
	// library produce the same batches.
	Seed int64 `json:"seed"`
}

// StrategyConfig shapes the individual batches.
type StrategyConfig struct {
	SimilarCount int `json:"similar_count"` // last-viewed batch size

	// The select batch probes PercentileBase, +Step, +2*Step and so on,
	// PercentileProbes times.
	PercentileBase   float64 `json:"percentile_base"`
	PercentileStep   float64 `json:"percentile_step"`
	PercentileProbes int     `json:"percentile_probes"`

	RandomDraws  int `json:"random_draws"`  // randomized-select draws
	RandomWindow int `json:"random_window"` // ranks 0..RandomWindow-1 are eligible
}

// LimitsConfig caps the response.
type LimitsConfig struct {
	MaxResults int `json:"max_results"`
}

// CacheConfig controls memoized runs. A TTL of zero keeps entries until a
// library change or LRU eviction removes them.
type CacheConfig struct {
	Enabled    bool          `json:"enabled"`
	TTL        time.Duration `json:"ttl"`
	MaxEntries int           `json:"max_entries"`
}

// DefaultConfig returns the production configuration.
func DefaultConfig() *Config {
	return &Config{
		Strategy: StrategyConfig{
			SimilarCount:     2,
			PercentileBase:   0.80,
			PercentileStep:   0.05,
			PercentileProbes: 3,
			RandomDraws:      2,
			RandomWindow:     10,
		},
		Limits: LimitsConfig{MaxResults: 8},
		Cache:  CacheConfig{Enabled: true, MaxEntries: 10000},
		Seed:   42,
	}
}

// Validate reports the first out-of-range field.
func (c *Config) Validate() error {
	s := c.Strategy
	rules := []struct {
		bad  bool
		name string
		got  any
		want string
	}{
		{s.SimilarCount < 0, "strategy.similar_count", s.SimilarCount, "non-negative"},
		{s.PercentileBase < 0 || s.PercentileBase > 1, "strategy.percentile_base", s.PercentileBase, "in [0, 1]"},
		{s.PercentileStep < 0, "strategy.percentile_step", s.PercentileStep, "non-negative"},
		{s.PercentileProbes < 0, "strategy.percentile_probes", s.PercentileProbes, "non-negative"},
		{s.RandomDraws < 0, "strategy.random_draws", s.RandomDraws, "non-negative"},
		{s.RandomWindow < 1, "strategy.random_window", s.RandomWindow, "positive"},
		{c.Limits.MaxResults < 1, "limits.max_results", c.Limits.MaxResults, "positive"},
		{c.Cache.TTL < 0, "cache.ttl", c.Cache.TTL, "non-negative"},
		{c.Cache.Enabled && c.Cache.MaxEntries < 1, "cache.max_entries", c.Cache.MaxEntries, "positive when the cache is enabled"},
	}
	for _, r := range rules {
		if r.bad {
			return fmt.Errorf("%s must be %s, got %v", r.name, r.want, r.got)
		}
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// MarshalJSON writes TTL as a duration string ("1m30s").
func (c CacheConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Enabled    bool   `json:"enabled"`
		TTL        string `json:"ttl"`
		MaxEntries int    `json:"max_entries"`
	}{c.Enabled, c.TTL.String(), c.MaxEntries})
}
