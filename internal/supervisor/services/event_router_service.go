// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// EventRouter is a single-use message router. Run blocks until ctx is
// canceled or the router is closed.
type EventRouter interface {
	Run(ctx context.Context) error
	Close() error
}

// RouterFactory builds a fresh router for each (re)start.
type RouterFactory func() (EventRouter, error)

// errRouterStopped is returned when a router exits while the service is
// still wanted, so the supervisor restarts it.
var errRouterStopped = errors.New("event router stopped unexpectedly")

// EventRouterService supervises the analytics event router. Watermill
// routers cannot be restarted once closed, so every Serve call builds a new
// one from the factory.
type EventRouterService struct {
	factory RouterFactory
	logger  zerolog.Logger
}

// NewEventRouterService creates the service.
//
//nolint:gocritic // zerolog.Logger is passed by value throughout
func NewEventRouterService(factory RouterFactory, logger zerolog.Logger) *EventRouterService {
	return &EventRouterService{
		factory: factory,
		logger:  logger.With().Str("service", "event-router").Logger(),
	}
}

// Serve implements suture.Service.
func (s *EventRouterService) Serve(ctx context.Context) error {
	router, err := s.factory()
	if err != nil {
		return fmt.Errorf("build event router: %w", err)
	}
	defer func() {
		if cerr := router.Close(); cerr != nil {
			s.logger.Warn().Err(cerr).Msg("event router close failed")
		}
	}()

	s.logger.Info().Msg("event router starting")
	err = router.Run(ctx)

	if ctx.Err() != nil {
		s.logger.Info().Msg("event router shutting down")
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("event router: %w", err)
	}
	return errRouterStopped
}

// String implements fmt.Stringer for suture's logs.
func (s *EventRouterService) String() string {
	return "event-router"
}
