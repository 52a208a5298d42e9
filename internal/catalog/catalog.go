// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package catalog

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/tomtom215/bookoptimal/internal/cache"
	"github.com/tomtom215/bookoptimal/internal/config"
	"github.com/tomtom215/bookoptimal/internal/metrics"
)

// Catalog holds the current snapshot of fetched books plus recently searched
// results. Book IDs resolve against both, so a book found through search can
// be added to a library by ID. Safe for concurrent use.
type Catalog struct {
	source    Source
	coversURL string
	minTerm   int
	logger    zerolog.Logger
	now       func() time.Time

	mu          sync.RWMutex
	books       []Book
	byID        map[string]Book
	refreshedAt time.Time

	rngMu sync.Mutex
	rng   *rand.Rand

	searches *cache.LRU[string, []Book]
	found    *cache.LRU[string, Book]
}

// New creates an empty catalog backed by source.
func New(source Source, cfg *config.CatalogConfig, logger zerolog.Logger) *Catalog {
	seed := cfg.AttributeSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	entries := cfg.SearchCacheEntries
	return &Catalog{
		source:    source,
		coversURL: cfg.CoversURL,
		minTerm:   cfg.MinSearchTermLength,
		logger:    logger.With().Str("component", "catalog").Logger(),
		now:       time.Now,
		byID:      map[string]Book{},
		rng:       rand.New(rand.NewSource(seed)), //nolint:gosec // synthetic attributes, not security sensitive
		searches:  cache.NewLRU[string, []Book](entries, cfg.SearchCacheTTL),
		found:     cache.NewLRU[string, Book](entries*max(cfg.Limit, 1), cfg.SearchCacheTTL),
	}
}

// Books returns a copy of the current snapshot.
func (c *Catalog) Books() []Book {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Book, len(c.books))
	copy(out, c.books)
	return out
}

// Len returns the snapshot size.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.books)
}

// RefreshedAt returns the time of the last successful refresh.
func (c *Catalog) RefreshedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refreshedAt
}

// Find looks a book up by ID in the snapshot, then in recent search results.
func (c *Catalog) Find(id string) (Book, bool) {
	c.mu.RLock()
	b, ok := c.byID[id]
	c.mu.RUnlock()
	if ok {
		return b, true
	}
	return c.found.Get(id)
}

// Refresh fetches the fiction listing and swaps the snapshot. On failure the
// previous snapshot stays in place.
func (c *Catalog) Refresh(ctx context.Context) error {
	docs, err := c.source.Fiction(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Int("kept_books", c.Len()).Msg("Catalog refresh failed, keeping previous snapshot")
		return fmt.Errorf("refresh catalog: %w", err)
	}

	books := c.format(docs)
	byID := make(map[string]Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}

	at := c.now()
	c.mu.Lock()
	c.books = books
	c.byID = byID
	c.refreshedAt = at
	c.mu.Unlock()

	metrics.RecordCatalogRefresh(len(books), at)
	c.logger.Info().Int("books", len(books)).Msg("Catalog refreshed")
	return nil
}

// Search queries Open Library. Results are cached per normalized term, so
// repeated searches return the same books with the same attributes. Terms
// shorter than the configured minimum return an empty list.
func (c *Catalog) Search(ctx context.Context, term string) ([]Book, error) {
	key := strings.ToLower(strings.TrimSpace(term))
	if utf8.RuneCountInString(key) < c.minTerm {
		return []Book{}, nil
	}

	if books, ok := c.searches.Get(key); ok {
		return books, nil
	}

	docs, err := c.source.Search(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("search catalog: %w", err)
	}

	books := c.format(docs)
	c.searches.Add(key, books)
	for _, b := range books {
		c.found.Add(b.ID, b)
	}
	return books, nil
}

func (c *Catalog) format(docs []Doc) []Book {
	c.rngMu.Lock()
	defer c.rngMu.Unlock()
	return formatBooks(docs, c.coversURL, c.rng)
}
