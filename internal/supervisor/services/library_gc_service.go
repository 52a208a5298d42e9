// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// ValueLogCollector reclaims space in the library store.
type ValueLogCollector interface {
	RunGC(discardRatio float64) error
}

// LibraryGCService periodically runs Badger value log GC on the library
// store. A GC error is returned to the supervisor, which restarts the loop
// with backoff.
type LibraryGCService struct {
	store        ValueLogCollector
	interval     time.Duration
	discardRatio float64
	logger       zerolog.Logger
}

// NewLibraryGCService creates the GC loop. discardRatio outside (0,1)
// falls back to 0.5.
//
//nolint:gocritic // zerolog.Logger is passed by value throughout
func NewLibraryGCService(store ValueLogCollector, interval time.Duration, discardRatio float64, logger zerolog.Logger) *LibraryGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	if discardRatio <= 0 || discardRatio >= 1 {
		discardRatio = 0.5
	}
	return &LibraryGCService{
		store:        store,
		interval:     interval,
		discardRatio: discardRatio,
		logger:       logger.With().Str("service", "library-gc").Logger(),
	}
}

// Serve implements suture.Service.
func (s *LibraryGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			start := time.Now()
			if err := s.store.RunGC(s.discardRatio); err != nil {
				return fmt.Errorf("library value log gc: %w", err)
			}
			s.logger.Debug().Dur("duration", time.Since(start)).Msg("library value log gc complete")
		}
	}
}

// String implements fmt.Stringer for suture's logs.
func (s *LibraryGCService) String() string {
	return "library-gc"
}
