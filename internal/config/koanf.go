// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists config file locations in priority order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/bookoptimal/config.yaml",
	"/etc/bookoptimal/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			RequestTimeout:  20 * time.Second,
			Environment:     "development",
		},
		API: APIConfig{
			CORSOrigins:       []string{"*"},
			RateLimitRequests: 120,
			RateLimitWindow:   time.Minute,
		},
		Library: LibraryConfig{
			Path:            "/data/library",
			SeedDefaultUser: true,
			GCInterval:      10 * time.Minute,
			GCDiscardRatio:  0.5,
		},
		Analytics: AnalyticsConfig{
			Enabled:            true,
			Path:               "/data/analytics.duckdb",
			QueryTimeout:       10 * time.Second,
			RouterCloseTimeout: 10 * time.Second,
			RetryCount:         3,
			RetryInterval:      100 * time.Millisecond,
			BufferSize:         256,
		},
		Catalog: CatalogConfig{
			BaseURL:             "https://openlibrary.org",
			CoversURL:           "https://covers.openlibrary.org",
			Limit:               10,
			Timeout:             30 * time.Second,
			RateLimit:           1,
			Burst:               3,
			BreakerMinRequests:  5,
			BreakerFailureRatio: 0.6,
			BreakerOpenTimeout:  60 * time.Second,
			RefreshInterval:     6 * time.Hour,
			RefreshOnStartup:    true,
			SearchCacheTTL:      10 * time.Minute,
			SearchCacheEntries:  500,
			MinSearchTermLength: 3,
			MaxErrorBodyBytes:   64 * 1024,
			FictionSubject:      "fiction",
			UserAgent:           "BookOptimal/1.0 (+https://github.com/tomtom215/bookoptimal)",
		},
		Recommend: RecommendConfig{
			MaxResults:       8,
			SimilarCount:     2,
			PercentileBase:   0.80,
			PercentileStep:   0.05,
			PercentileProbes: 3,
			RandomDraws:      2,
			RandomWindow:     10,
			CacheEnabled:     true,
			CacheTTL:         0, // entries live until the history changes or capacity evicts them
			CacheMaxEntries:  10000,
			Seed:             42,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

type layer struct {
	name     string
	provider koanf.Provider
	parser   koanf.Parser
}

// LoadWithKoanf loads configuration in layers:
//  1. Defaults
//  2. Config file (optional)
//  3. Environment variables (highest priority)
//
// The result is validated before it is returned.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Later layers override earlier ones.
	layers := []layer{{"defaults", structs.Provider(defaultConfig(), "koanf"), nil}}
	if path := findConfigFile(); path != "" {
		layers = append(layers, layer{path, file.Provider(path), yaml.Parser()})
	}
	layers = append(layers, layer{"environment", env.Provider("", ".", envTransformFunc), nil})

	for _, l := range layers {
		if err := k.Load(l.provider, l.parser); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", l.name, err)
		}
	}

	if err := splitListValues(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns CONFIG_PATH if it exists, else the first existing
// entry of DefaultConfigPaths, else "".
func findConfigFile() string {
	candidates := DefaultConfigPaths
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		candidates = append([]string{p}, candidates...)
	}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// listKeys arrive from the environment as comma-separated strings.
var listKeys = []string{"api.cors_origins"}

func splitListValues(k *koanf.Koanf) error {
	for _, key := range listKeys {
		raw, ok := k.Get(key).(string)
		if !ok {
			continue
		}
		var items []string
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		if len(items) == 0 {
			continue
		}
		if err := k.Set(key, items); err != nil {
			return fmt.Errorf("config: set %s: %w", key, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to config paths.
// Variables not listed here are ignored.
var envMappings = map[string]string{
	// Server
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"http_request_timeout":  "server.request_timeout",
	"environment":           "server.environment",

	// API
	"cors_origins":        "api.cors_origins",
	"rate_limit_requests": "api.rate_limit_requests",
	"rate_limit_window":   "api.rate_limit_window",
	"disable_rate_limit":  "api.rate_limit_disabled",

	// Library store
	"library_path":        "library.path",
	"library_in_memory":   "library.in_memory",
	"seed_default_user":   "library.seed_default_user",
	"library_gc_interval": "library.gc_interval",

	// Analytics
	"analytics_enabled":        "analytics.enabled",
	"analytics_path":           "analytics.path",
	"analytics_query_timeout":  "analytics.query_timeout",
	"analytics_retry_count":    "analytics.retry_count",
	"analytics_retry_interval": "analytics.retry_interval",
	"analytics_buffer_size":    "analytics.buffer_size",

	// Catalog
	"catalog_base_url":             "catalog.base_url",
	"catalog_covers_url":           "catalog.covers_url",
	"catalog_limit":                "catalog.limit",
	"catalog_timeout":              "catalog.timeout",
	"catalog_rate_limit":           "catalog.rate_limit",
	"catalog_burst":                "catalog.burst",
	"catalog_refresh_interval":     "catalog.refresh_interval",
	"catalog_refresh_on_startup":   "catalog.refresh_on_startup",
	"catalog_search_cache_ttl":     "catalog.search_cache_ttl",
	"catalog_attribute_seed":       "catalog.attribute_seed",
	"catalog_breaker_min_requests": "catalog.breaker_min_requests",
	"catalog_breaker_ratio":        "catalog.breaker_failure_ratio",
	"catalog_breaker_timeout":      "catalog.breaker_open_timeout",

	// Recommendation engine
	"recommend_max_results":       "recommend.max_results",
	"recommend_similar_count":     "recommend.similar_count",
	"recommend_percentile_base":   "recommend.percentile_base",
	"recommend_percentile_step":   "recommend.percentile_step",
	"recommend_percentile_probes": "recommend.percentile_probes",
	"recommend_random_draws":      "recommend.random_draws",
	"recommend_random_window":     "recommend.random_window",
	"recommend_cache_enabled":     "recommend.cache_enabled",
	"recommend_cache_ttl":         "recommend.cache_ttl",
	"recommend_cache_max_entries": "recommend.cache_max_entries",
	"recommend_seed":              "recommend.seed",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable to its config key. An empty
// result tells koanf to skip the variable.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
