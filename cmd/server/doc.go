// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

/*
Command server runs the BookOptimal recommendation API.

Startup order:

 1. Configuration: koanf v2 (defaults, optional config.yaml, environment)
 2. Logging: zerolog, JSON or console
 3. Library store: BadgerDB, seeded with the demo reader
 4. Catalog: Open Library client behind a circuit breaker and rate limiter
 5. Recommendation engine: reads histories and libraries from the store
 6. Analytics (optional): DuckDB store plus a Watermill GoChannel bus
 7. Supervisor tree: suture v4, see internal/supervisor
 8. HTTP server: chi router, see internal/api

SIGINT or SIGTERM cancels the tree. The HTTP server drains within
SHUTDOWN_TIMEOUT, then the event bus and stores are closed.

# Example

	export LIBRARY_IN_MEMORY=true
	export ANALYTICS_PATH=:memory:
	export LOG_FORMAT=console
	./bookoptimal

	curl localhost:8080/api/v1/users/1/recommendations
*/
package main
