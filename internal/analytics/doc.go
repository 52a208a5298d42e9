// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

/*
Package analytics records recommendation runs and answers per-user analytics
queries.

Flow:

	API handler --Publish--> GoChannel topic "recommendations.generated"
	                               |
	                         Router (Recoverer, Retry)
	                               |
	                         Store.Record --> DuckDB

Each run is one row in recommendation_runs plus one row per recommended
book in recommendation_events, tagged with the strategy that picked it.
Recording is idempotent by event ID, so retried deliveries do not double
count.
*/
package analytics
