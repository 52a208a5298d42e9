// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package recommend

import (
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
	if cfg.Limits.MaxResults != 8 {
		t.Errorf("Limits.MaxResults = %d, want 8", cfg.Limits.MaxResults)
	}
	if cfg.Strategy.SimilarCount != 2 {
		t.Errorf("Strategy.SimilarCount = %d, want 2", cfg.Strategy.SimilarCount)
	}
	if cfg.Strategy.PercentileProbes != 3 || cfg.Strategy.RandomDraws != 2 {
		t.Errorf("probes/draws = %d/%d, want 3/2", cfg.Strategy.PercentileProbes, cfg.Strategy.RandomDraws)
	}
	if !cfg.Cache.Enabled || cfg.Cache.MaxEntries <= 0 {
		t.Errorf("Cache = %+v, want enabled and bounded", cfg.Cache)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "negative similar count", mutate: func(c *Config) { c.Strategy.SimilarCount = -1 }, wantErr: "similar_count"},
		{name: "percentile base above one", mutate: func(c *Config) { c.Strategy.PercentileBase = 1.5 }, wantErr: "percentile_base"},
		{name: "negative percentile step", mutate: func(c *Config) { c.Strategy.PercentileStep = -0.1 }, wantErr: "percentile_step"},
		{name: "negative probes", mutate: func(c *Config) { c.Strategy.PercentileProbes = -1 }, wantErr: "percentile_probes"},
		{name: "negative draws", mutate: func(c *Config) { c.Strategy.RandomDraws = -2 }, wantErr: "random_draws"},
		{name: "zero window", mutate: func(c *Config) { c.Strategy.RandomWindow = 0 }, wantErr: "random_window"},
		{name: "zero max results", mutate: func(c *Config) { c.Limits.MaxResults = 0 }, wantErr: "max_results"},
		{name: "negative ttl", mutate: func(c *Config) { c.Cache.TTL = -time.Second }, wantErr: "cache.ttl"},
		{name: "enabled cache without capacity", mutate: func(c *Config) { c.Cache.MaxEntries = 0 }, wantErr: "max_entries"},
		{
			name: "disabled cache without capacity",
			mutate: func(c *Config) {
				c.Cache.Enabled = false
				c.Cache.MaxEntries = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	original := DefaultConfig()
	clone := original.Clone()

	clone.Limits.MaxResults = 99
	clone.Strategy.RandomDraws = 7

	if original.Limits.MaxResults == 99 || original.Strategy.RandomDraws == 7 {
		t.Error("Clone() shares state with the original")
	}
}

func TestConfig_MarshalJSON(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.TTL = 90 * time.Second

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	cacheSection, ok := decoded["cache"].(map[string]interface{})
	if !ok {
		t.Fatalf("cache section missing in %s", data)
	}
	if cacheSection["ttl"] != "1m30s" {
		t.Errorf("cache.ttl = %v, want 1m30s", cacheSection["ttl"])
	}
	if _, ok := decoded["strategy"]; !ok {
		t.Error("strategy section missing")
	}
}
