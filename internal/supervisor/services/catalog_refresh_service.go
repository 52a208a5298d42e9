// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// CatalogRefresher reloads the catalog snapshot.
type CatalogRefresher interface {
	Refresh(ctx context.Context) error
	Len() int
}

// CatalogRefreshConfig holds configuration for the refresh loop.
type CatalogRefreshConfig struct {
	// RefreshOnStartup loads the catalog as soon as the service starts.
	RefreshOnStartup bool

	// Interval between scheduled refreshes. Defaults to 6h.
	Interval time.Duration

	// Timeout bounds a single refresh. Defaults to 2m.
	Timeout time.Duration
}

// CatalogRefreshService keeps the in-memory catalog current. A failed
// refresh is logged and retried on the next tick; the catalog keeps serving
// its previous snapshot in the meantime, so failures never crash the
// service.
type CatalogRefreshService struct {
	catalog CatalogRefresher
	config  CatalogRefreshConfig
	logger  zerolog.Logger
}

// NewCatalogRefreshService creates the refresh loop.
//
//nolint:gocritic // zerolog.Logger is passed by value throughout
func NewCatalogRefreshService(catalog CatalogRefresher, cfg CatalogRefreshConfig, logger zerolog.Logger) *CatalogRefreshService {
	if cfg.Interval <= 0 {
		cfg.Interval = 6 * time.Hour
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	return &CatalogRefreshService{
		catalog: catalog,
		config:  cfg,
		logger:  logger.With().Str("service", "catalog-refresh").Logger(),
	}
}

// Serve implements suture.Service.
func (s *CatalogRefreshService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("refresh_on_startup", s.config.RefreshOnStartup).
		Dur("interval", s.config.Interval).
		Msg("catalog refresh service starting")

	if s.config.RefreshOnStartup {
		s.refresh(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("catalog refresh service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *CatalogRefreshService) refresh(ctx context.Context) {
	refreshCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	if err := s.catalog.Refresh(refreshCtx); err != nil {
		if ctx.Err() == nil {
			s.logger.Warn().Err(err).Msg("catalog refresh failed, will retry on schedule")
		}
		return
	}
	s.logger.Info().
		Int("books", s.catalog.Len()).
		Dur("duration", time.Since(start)).
		Msg("catalog refreshed")
}

// String implements fmt.Stringer for suture's logs.
func (s *CatalogRefreshService) String() string {
	return "catalog-refresh"
}
