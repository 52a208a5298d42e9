// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package config

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"unknown environment", func(c *Config) { c.Server.Environment = "qa" }, "server.environment"},
		{"library path missing", func(c *Config) { c.Library.Path = "" }, "LIBRARY_PATH"},
		{"library in memory without path", func(c *Config) { c.Library.Path = ""; c.Library.InMemory = true }, ""},
		{"analytics path missing", func(c *Config) { c.Analytics.Path = "" }, "ANALYTICS_PATH"},
		{"analytics disabled without path", func(c *Config) { c.Analytics.Path = ""; c.Analytics.Enabled = false }, ""},
		{"catalog url not http", func(c *Config) { c.Catalog.BaseURL = "ftp://openlibrary.org" }, "catalog.base_url"},
		{"catalog url with path", func(c *Config) { c.Catalog.BaseURL = "https://openlibrary.org/search.json" }, "CATALOG_BASE_URL"},
		{"breaker ratio above one", func(c *Config) { c.Catalog.BreakerFailureRatio = 1.5 }, "catalog.breaker_failure_ratio"},
		{"max results zero", func(c *Config) { c.Recommend.MaxResults = 0 }, "recommend.max_results"},
		{"percentiles reach 100", func(c *Config) { c.Recommend.PercentileProbes = 5 }, "percentile probes"},
		{"production wildcard cors", func(c *Config) { c.Server.Environment = "production" }, "CORS_ORIGINS"},
		{"production explicit cors", func(c *Config) {
			c.Server.Environment = "production"
			c.API.CORSOrigins = []string{"https://books.example"}
		}, ""},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestServerConfig_Addr(t *testing.T) {
	t.Parallel()

	s := ServerConfig{Host: "127.0.0.1", Port: 8080}
	if got := s.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q", got)
	}
}
