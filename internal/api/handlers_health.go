// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package api

import (
	"context"
	"net/http"
	"time"
)

// healthPingTimeout bounds the analytics ping in health checks.
const healthPingTimeout = 2 * time.Second

// HealthStatus is the /health payload.
type HealthStatus struct {
	Status        string          `json:"status"`
	Version       string          `json:"version"`
	UptimeSeconds float64         `json:"uptime_seconds"`
	Catalog       CatalogHealth   `json:"catalog"`
	Analytics     AnalyticsHealth `json:"analytics"`
}

// CatalogHealth describes the catalog snapshot.
type CatalogHealth struct {
	Books       int        `json:"books"`
	RefreshedAt *time.Time `json:"refreshed_at,omitempty"`
}

// AnalyticsHealth describes the analytics store.
type AnalyticsHealth struct {
	Enabled   bool `json:"enabled"`
	Connected bool `json:"connected"`
}

// Health reports component status. It always answers 200; status is
// "degraded" when the catalog snapshot is empty or analytics is unreachable.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.healthStatus(r.Context()))
}

// HealthLive answers 200 while the process serves requests.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "alive"})
}

// HealthReady answers 503 until the service can produce recommendations.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	status := h.healthStatus(r.Context())
	if status.Status != "healthy" {
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "service not ready", status)
		return
	}
	rw.Success(status)
}

func (h *Handler) healthStatus(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:        "healthy",
		Version:       h.version,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
		Catalog:       CatalogHealth{Books: len(h.catalog.Books())},
	}
	if at := h.catalog.RefreshedAt(); !at.IsZero() {
		status.Catalog.RefreshedAt = &at
	}
	if status.Catalog.Books == 0 {
		status.Status = "degraded"
	}

	if h.analytics != nil {
		status.Analytics.Enabled = true
		pctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
		defer cancel()
		status.Analytics.Connected = h.analytics.Ping(pctx) == nil
		if !status.Analytics.Connected {
			status.Status = "degraded"
		}
	}
	return status
}
