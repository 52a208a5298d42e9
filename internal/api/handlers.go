// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package api

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/bookoptimal/internal/analytics"
	"github.com/tomtom215/bookoptimal/internal/catalog"
	"github.com/tomtom215/bookoptimal/internal/config"
	"github.com/tomtom215/bookoptimal/internal/library"
	"github.com/tomtom215/bookoptimal/internal/recommend"
)

// LibraryStore is the subset of *library.Store the handlers use.
type LibraryStore interface {
	CreateUser(ctx context.Context, user library.User) (*library.User, error)
	GetUser(ctx context.Context, userID string) (*library.User, error)
	ListUsers(ctx context.Context) ([]library.User, error)

	AddToLibrary(ctx context.Context, userID string, book library.Book) (bool, error)
	RemoveFromLibrary(ctx context.Context, userID, bookID string) (bool, error)
	GetUserLibrary(ctx context.Context, userID string) ([]library.Book, error)

	AddToHistory(ctx context.Context, userID, bookID string) (*library.HistoryEntry, error)
	GetUserHistory(ctx context.Context, userID string) ([]library.Book, error)
	GetLastViewed(ctx context.Context, userID string) (*library.Book, error)

	RateBook(ctx context.Context, userID, bookID string, value int) (*library.Rating, error)
	ExportLibrary(ctx context.Context, userID string) (*library.Export, error)
}

// BookCatalog is the subset of *catalog.Catalog the handlers use.
type BookCatalog interface {
	Books() []catalog.Book
	Find(id string) (catalog.Book, bool)
	Search(ctx context.Context, term string) ([]catalog.Book, error)
	RefreshedAt() time.Time
}

// Recommender produces recommendations and drops cached runs.
type Recommender interface {
	Generate(ctx context.Context, req recommend.Request) (*recommend.Response, error)
	InvalidateUser(userID string) int
}

// AnalyticsStore answers per-user analytics queries.
type AnalyticsStore interface {
	Summary(ctx context.Context, userID string, history []recommend.Item) (*analytics.Summary, error)
	Ping(ctx context.Context) error
}

// EventPublisher publishes recommendation events. Publishing is best effort:
// a failure is logged and never fails the request.
type EventPublisher interface {
	Publish(e *analytics.RecommendationsGenerated) error
}

var (
	_ LibraryStore   = (*library.Store)(nil)
	_ BookCatalog    = (*catalog.Catalog)(nil)
	_ Recommender    = (*recommend.Engine)(nil)
	_ AnalyticsStore = (*analytics.Store)(nil)
	_ EventPublisher = (*analytics.Publisher)(nil)
)

// Handler serves the BookOptimal HTTP API.
type Handler struct {
	library   LibraryStore
	catalog   BookCatalog
	engine    Recommender
	analytics AnalyticsStore // optional
	events    EventPublisher // optional
	config    *config.Config
	logger    zerolog.Logger
	version   string
	startTime time.Time
	now       func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewHandler creates a handler. Analytics and event publishing are attached
// with SetAnalytics and SetEventPublisher; without them the analytics
// endpoint reports preferences only and no events are emitted.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHandler(lib LibraryStore, cat BookCatalog, engine Recommender, cfg *config.Config, logger zerolog.Logger) *Handler {
	seed := cfg.Recommend.Seed
	if seed == 0 {
		seed = 42
	}

	return &Handler{
		library:   lib,
		catalog:   cat,
		engine:    engine,
		config:    cfg,
		logger:    logger.With().Str("component", "api").Logger(),
		version:   "dev",
		startTime: time.Now(),
		now:       time.Now,
		rng:       rand.New(rand.NewSource(seed)), //nolint:gosec // rank draws, not security sensitive
	}
}

// SetAnalytics attaches the analytics store.
func (h *Handler) SetAnalytics(store AnalyticsStore) {
	h.analytics = store
}

// SetEventPublisher attaches the recommendation event publisher.
func (h *Handler) SetEventPublisher(pub EventPublisher) {
	h.events = pub
}

// SetVersion sets the version reported by /health.
func (h *Handler) SetVersion(v string) {
	h.version = v
}
