// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tomtom215/bookoptimal/internal/middleware"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler        *Handler
	chiMiddleware  *ChiMiddleware
	logger         zerolog.Logger
	requestTimeout time.Duration
}

// NewRouter creates a router. requestTimeout bounds every /api/v1 request;
// zero disables the bound.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewRouter(handler *Handler, mw *ChiMiddleware, requestTimeout time.Duration, logger zerolog.Logger) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{
		handler:        handler,
		chiMiddleware:  mw,
		logger:         logger.With().Str("component", "http").Logger(),
		requestTimeout: requestTimeout,
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	h := router.handler
	r := chi.NewRouter()

	// Global middleware, in order
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog(router.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).NotFound("route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Operational endpoints are not rate limited
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.Health)
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)
		if router.requestTimeout > 0 {
			r.Use(chimiddleware.Timeout(router.requestTimeout))
		}

		r.Get("/catalog", h.Catalog)
		r.Get("/catalog/search", h.CatalogSearch)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.ListUsers)
			r.Post("/", h.CreateUser)

			r.Route("/{userID}", func(r chi.Router) {
				r.Get("/", h.GetUser)

				r.Get("/library", h.Library)
				r.Post("/library", h.AddToLibrary)
				r.Get("/library/rank", h.Rank)
				r.Delete("/library/{bookID}", h.RemoveFromLibrary)

				r.Get("/history", h.History)
				r.Post("/history", h.AddToHistory)
				r.Get("/last-viewed", h.LastViewed)

				r.Put("/ratings/{bookID}", h.RateBook)

				r.Get("/recommendations", h.Recommendations)
				r.Get("/analytics", h.Analytics)
				r.Get("/export", h.Export)
			})
		})
	})

	return r
}
