// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

/*
Package api provides the BookOptimal HTTP API on the chi router.

Every response uses one envelope:

	{
	  "success": true,
	  "data": {...},
	  "error": {"code": "NOT_FOUND", "message": "...", "details": ..., "request_id": "..."},
	  "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 3}
	}

Errors are translated in ResponseWriter.Fail:

	VALIDATION_ERROR     400  malformed body, failed validation, bad rating
	NOT_FOUND            404  unknown user, book or route, rank out of range
	CONFLICT             409  user already exists
	TOO_MANY_REQUESTS    429  per-IP rate limit
	SERVICE_UNAVAILABLE  503  catalog breaker open, store closing, timeout
	INTERNAL_ERROR       500  everything else (logged)

Routes:

	GET    /health, /health/live, /health/ready
	GET    /metrics
	GET    /api/v1/catalog
	GET    /api/v1/catalog/search?q=
	GET    /api/v1/users
	POST   /api/v1/users
	GET    /api/v1/users/{userID}
	GET    /api/v1/users/{userID}/library
	POST   /api/v1/users/{userID}/library
	GET    /api/v1/users/{userID}/library/rank?k=&mode=deterministic|randomized
	DELETE /api/v1/users/{userID}/library/{bookID}
	GET    /api/v1/users/{userID}/history
	POST   /api/v1/users/{userID}/history
	GET    /api/v1/users/{userID}/last-viewed
	PUT    /api/v1/users/{userID}/ratings/{bookID}
	GET    /api/v1/users/{userID}/recommendations?refresh=true
	GET    /api/v1/users/{userID}/analytics
	GET    /api/v1/users/{userID}/export?download=true

Mutations of a user's library, history or ratings drop that user's cached
recommendations.
*/
package api
