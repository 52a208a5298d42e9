// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookoptimal_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bookoptimal_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bookoptimal_api_active_requests",
			Help: "Number of API requests currently being served",
		},
	)

	// Recommendation Metrics
	RecommendRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookoptimal_recommend_runs_total",
			Help: "Recommendation runs by outcome",
		},
		[]string{"outcome"}, // "hit", "miss", "empty", "error"
	)

	RecommendItems = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookoptimal_recommend_items_total",
			Help: "Recommended books by contributing algorithm",
		},
		[]string{"algorithm"},
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bookoptimal_recommend_duration_seconds",
			Help:    "Time to produce a recommendation list, including cache replays",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	RecommendCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bookoptimal_recommend_cache_entries",
			Help: "Entries currently held by the recommendation cache",
		},
	)

	// Catalog Metrics
	CatalogFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookoptimal_catalog_fetches_total",
			Help: "Open Library requests by kind and result",
		},
		[]string{"kind", "result"}, // kind: fiction|search, result: success|error|rejected
	)

	CatalogFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bookoptimal_catalog_fetch_duration_seconds",
			Help:    "Open Library request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	CatalogBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bookoptimal_catalog_breaker_state",
			Help: "Open Library circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	CatalogBooks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bookoptimal_catalog_books",
			Help: "Books in the current catalog snapshot",
		},
	)

	CatalogLastRefresh = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bookoptimal_catalog_last_refresh_timestamp",
			Help: "Unix time of the last successful catalog refresh",
		},
	)

	// Library Store Metrics
	LibraryOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookoptimal_library_operations_total",
			Help: "Library store operations by kind and result",
		},
		[]string{"operation", "result"},
	)

	// Analytics Metrics
	AnalyticsEventsPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookoptimal_analytics_events_published_total",
			Help: "Recommendation events published to the event bus",
		},
	)

	AnalyticsEventsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookoptimal_analytics_events_recorded_total",
			Help: "Recommendation events written to DuckDB by result",
		},
		[]string{"result"},
	)

	AnalyticsQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bookoptimal_analytics_query_duration_seconds",
			Help:    "DuckDB analytics query latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bookoptimal_app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// Result labels.
const (
	ResultSuccess  = "success"
	ResultError    = "error"
	ResultRejected = "rejected"
)

// Outcome labels for RecommendRuns.
const (
	OutcomeHit   = "hit"
	OutcomeMiss  = "miss"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, route, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, status).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records one engine run. counts maps algorithm tags to
// the number of books each contributed.
func RecordRecommendation(outcome string, counts map[string]int, duration time.Duration) {
	RecommendRuns.WithLabelValues(outcome).Inc()
	RecommendDuration.Observe(duration.Seconds())
	for alg, n := range counts {
		if n > 0 {
			RecommendItems.WithLabelValues(alg).Add(float64(n))
		}
	}
}

// RecordCatalogFetch records an Open Library request. rejected marks calls
// refused by the breaker or limiter without reaching the network.
func RecordCatalogFetch(kind string, duration time.Duration, err error, rejected bool) {
	switch {
	case rejected:
		CatalogFetches.WithLabelValues(kind, ResultRejected).Inc()
		return
	case err != nil:
		CatalogFetches.WithLabelValues(kind, ResultError).Inc()
	default:
		CatalogFetches.WithLabelValues(kind, ResultSuccess).Inc()
	}
	CatalogFetchDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordCatalogRefresh records a successful snapshot swap.
func RecordCatalogRefresh(books int, at time.Time) {
	CatalogBooks.Set(float64(books))
	CatalogLastRefresh.Set(float64(at.Unix()))
}

// RecordLibraryOperation records a library store call.
func RecordLibraryOperation(operation string, err error) {
	LibraryOperations.WithLabelValues(operation, resultOf(err)).Inc()
}

// RecordAnalyticsEvent records the result of persisting one event.
func RecordAnalyticsEvent(err error) {
	AnalyticsEventsRecorded.WithLabelValues(resultOf(err)).Inc()
}

// RecordAnalyticsQuery records a DuckDB query duration.
func RecordAnalyticsQuery(operation string, duration time.Duration) {
	AnalyticsQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetAppInfo publishes the build version.
func SetAppInfo(version string) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}

func resultOf(err error) string {
	if err == nil {
		return ResultSuccess
	}
	return ResultError
}
