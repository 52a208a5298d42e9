// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

/*
Package metrics defines the Prometheus metrics exported by BookOptimal.

All collectors are registered with the default registry through promauto and
served at /metrics by the API router.

# Available Metrics

API:
  - bookoptimal_api_requests_total{method,route,status}
  - bookoptimal_api_request_duration_seconds{method,route}
  - bookoptimal_api_active_requests

Recommendations:
  - bookoptimal_recommend_runs_total{outcome}: hit, miss, empty, error
  - bookoptimal_recommend_items_total{algorithm}
  - bookoptimal_recommend_duration_seconds
  - bookoptimal_recommend_cache_entries

Catalog:
  - bookoptimal_catalog_fetches_total{kind,result}
  - bookoptimal_catalog_fetch_duration_seconds{kind}
  - bookoptimal_catalog_breaker_state
  - bookoptimal_catalog_books
  - bookoptimal_catalog_last_refresh_timestamp

Storage and analytics:
  - bookoptimal_library_operations_total{operation,result}
  - bookoptimal_analytics_events_published_total
  - bookoptimal_analytics_events_recorded_total{result}
  - bookoptimal_analytics_query_duration_seconds{operation}

# Route Labels

The API middleware labels requests with the chi route pattern
("/api/v1/users/{userID}/library"), not the raw path, so user and book IDs
never become label values.
*/
package metrics
