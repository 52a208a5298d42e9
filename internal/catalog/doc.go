// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

/*
Package catalog acquires books from the Open Library search API.

Client performs the HTTP calls. Each call waits on a golang.org/x/time/rate
token bucket, then runs through a sony/gobreaker circuit breaker. While the
breaker is open, calls fail fast with ErrCircuitOpen.

Catalog keeps the current snapshot of fetched fiction books, which is the
candidate pool the API shows and users add to their libraries from. A
supervised service calls Refresh periodically; a failed refresh keeps the
previous snapshot.

Open Library has no preference-plane position or quality score, so
FormatBooks draws them from a seeded random source (X and Y in [70, 99],
rating in [3.5, 5.0)).
*/
package catalog
