// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
//
// Loading order (see LoadWithKoanf):
//  1. Defaults from defaultConfig
//  2. Optional YAML file (CONFIG_PATH, ./config.yaml, /etc/bookoptimal/config.yaml)
//  3. Environment variables listed in envMappings
//
// Example:
//
//	cfg, err := config.LoadWithKoanf()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
//	store, err := library.Open(cfg.Library.Path, library.Options{InMemory: cfg.Library.InMemory})
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	API       APIConfig       `koanf:"api"`
	Library   LibraryConfig   `koanf:"library"`
	Analytics AnalyticsConfig `koanf:"analytics"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	Host            string        `koanf:"host"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	RequestTimeout  time.Duration `koanf:"request_timeout" validate:"gt=0"`
	Environment     string        `koanf:"environment" validate:"oneof=development staging production"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// APIConfig holds cross-origin and rate limiting settings.
type APIConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests" validate:"min=1"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LibraryConfig holds the BadgerDB library store settings.
type LibraryConfig struct {
	// Path is the Badger directory. Ignored when InMemory is set.
	Path string `koanf:"path"`

	// InMemory keeps the store in RAM only. Everything is lost on restart.
	InMemory bool `koanf:"in_memory"`

	// SeedDefaultUser creates user "1" (Demo Reader) on an empty store.
	SeedDefaultUser bool `koanf:"seed_default_user"`

	// GCInterval is how often value log GC runs. Zero disables it.
	GCInterval     time.Duration `koanf:"gc_interval" validate:"min=0"`
	GCDiscardRatio float64       `koanf:"gc_discard_ratio" validate:"gt=0,lt=1"`
}

// AnalyticsConfig holds the DuckDB analytics settings.
type AnalyticsConfig struct {
	Enabled bool `koanf:"enabled"`

	// Path is the DuckDB file. ":memory:" keeps events in RAM.
	Path string `koanf:"path"`

	QueryTimeout       time.Duration `koanf:"query_timeout" validate:"gt=0"`
	RouterCloseTimeout time.Duration `koanf:"router_close_timeout" validate:"gt=0"`
	RetryCount         int           `koanf:"retry_count" validate:"min=0,max=10"`
	RetryInterval      time.Duration `koanf:"retry_interval" validate:"gt=0"`
	BufferSize         int64         `koanf:"buffer_size" validate:"min=0"`
}

// CatalogConfig holds Open Library client settings.
type CatalogConfig struct {
	BaseURL   string        `koanf:"base_url" validate:"required,http_url"`
	CoversURL string        `koanf:"covers_url" validate:"required,http_url"`
	Limit     int           `koanf:"limit" validate:"min=1,max=100"`
	Timeout   time.Duration `koanf:"timeout" validate:"gt=0"`

	// RateLimit is the sustained request rate in requests per second.
	RateLimit float64 `koanf:"rate_limit" validate:"gt=0"`
	Burst     int     `koanf:"burst" validate:"min=1"`

	BreakerMinRequests  uint32        `koanf:"breaker_min_requests" validate:"min=1"`
	BreakerFailureRatio float64       `koanf:"breaker_failure_ratio" validate:"gt=0,lte=1"`
	BreakerOpenTimeout  time.Duration `koanf:"breaker_open_timeout" validate:"gt=0"`

	RefreshInterval  time.Duration `koanf:"refresh_interval" validate:"gt=0"`
	RefreshOnStartup bool          `koanf:"refresh_on_startup"`

	SearchCacheTTL      time.Duration `koanf:"search_cache_ttl" validate:"min=0"`
	SearchCacheEntries  int           `koanf:"search_cache_entries" validate:"min=1"`
	MinSearchTermLength int           `koanf:"min_search_term_length" validate:"min=1"`

	// AttributeSeed drives the synthetic rating and position assigned to
	// fetched books. 0 derives a seed from the clock.
	AttributeSeed int64 `koanf:"attribute_seed"`

	MaxErrorBodyBytes int64  `koanf:"max_error_body_bytes" validate:"min=1"`
	FictionSubject    string `koanf:"fiction_subject" validate:"required"`
	UserAgent         string `koanf:"user_agent" validate:"required"`
}

// RecommendConfig holds engine settings. cmd/server translates it into
// recommend.Config.
type RecommendConfig struct {
	MaxResults       int     `koanf:"max_results" validate:"min=1"`
	SimilarCount     int     `koanf:"similar_count" validate:"min=0"`
	PercentileBase   float64 `koanf:"percentile_base" validate:"gte=0,lt=1"`
	PercentileStep   float64 `koanf:"percentile_step" validate:"gte=0,lt=1"`
	PercentileProbes int     `koanf:"percentile_probes" validate:"min=0"`
	RandomDraws      int     `koanf:"random_draws" validate:"min=0"`
	RandomWindow     int     `koanf:"random_window" validate:"min=1"`

	CacheEnabled    bool          `koanf:"cache_enabled"`
	CacheTTL        time.Duration `koanf:"cache_ttl" validate:"min=0"`
	CacheMaxEntries int           `koanf:"cache_max_entries" validate:"min=1"`

	// Seed for the engine's random source. 0 selects the default seed.
	Seed int64 `koanf:"seed"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
