// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

// Package config loads BookOptimal configuration with koanf v2.
//
// Sources, lowest priority first: built-in defaults, an optional YAML file,
// and environment variables. Only the variables in envMappings are read, so
// unrelated environment entries never leak into the configuration.
//
// # Environment Variables
//
//	HTTP_PORT            server.port (8080)
//	ENVIRONMENT          server.environment (development)
//	CORS_ORIGINS         api.cors_origins, comma separated (*)
//	LIBRARY_PATH         library.path (/data/library)
//	LIBRARY_IN_MEMORY    library.in_memory (false)
//	LIBRARY_GC_INTERVAL  library.gc_interval (10m, 0 disables)
//	ANALYTICS_PATH       analytics.path (/data/analytics.duckdb)
//	CATALOG_BASE_URL     catalog.base_url (https://openlibrary.org)
//	RECOMMEND_SEED       recommend.seed (42)
//	LOG_LEVEL            logging.level (info)
//	LOG_FORMAT           logging.format (json)
//
// Durations accept Go syntax ("30s", "6h").
//
// # Example YAML
//
//	server:
//	  port: 8080
//	library:
//	  path: /var/lib/bookoptimal/library
//	catalog:
//	  refresh_interval: 12h
//	recommend:
//	  cache_ttl: 30m
//
// Validate runs validator struct tags and then the cross-field rules, for
// example that the percentile probes stay below the 100th percentile.
package config
