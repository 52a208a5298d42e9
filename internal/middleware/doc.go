// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

/*
Package middleware provides the BookOptimal-specific HTTP middleware that
runs alongside chi's stock middleware.

Key Components:

  - RequestID: assigns or validates X-Request-ID and stores it for logging
  - PrometheusMetrics: request count, latency and in-flight gauge labelled by route pattern
  - AccessLog: one zerolog line per request

All three have the standard func(http.Handler) http.Handler shape and are
mounted with chi's Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog(logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.PrometheusMetrics)

RequestID must come before AccessLog so that the access log line carries the
request ID.
*/
package middleware
