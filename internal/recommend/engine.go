// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/bookoptimal/internal/cache"
	"github.com/tomtom215/bookoptimal/internal/recommend/algorithms"
)

// ErrNoDataProvider is returned when Recommend is called before
// SetDataProvider.
var ErrNoDataProvider = errors.New("data provider not set")

// Engine merges the recommendation strategies into a bounded, deduplicated
// list and memoizes the result per (user, history length).
// It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	// Metrics
	requestCount atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	errorCount   atomic.Int64

	cache *cache.LRU[cacheKey, cachedResult]

	// Random source for pivots and rank draws (guarded by rngMu)
	rng   *rand.Rand
	rngMu sync.Mutex

	dataProvider DataProvider

	now func() time.Time
}

// cacheKey identifies a memoized run. A new history entry changes the key.
type cacheKey struct {
	userID        string
	historyLength int
}

// cachedResult is the stored outcome of a run.
type cachedResult struct {
	items         []Recommendation
	candidatePool int
	generatedAt   time.Time
}

// DataProvider supplies the per-user state the engine reads.
// This is typically implemented by the library store.
type DataProvider interface {
	// GetUserHistory returns the user's viewed books in view order.
	GetUserHistory(ctx context.Context, userID string) ([]Item, error)

	// GetLastViewed returns the most recently viewed book, or nil.
	GetLastViewed(ctx context.Context, userID string) (*Item, error)

	// GetUserLibrary returns the user's library in insertion order.
	GetUserLibrary(ctx context.Context, userID string) ([]Item, error)

	// HistoryLength returns the number of history entries for the user.
	HistoryLength(ctx context.Context, userID string) (int, error)
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = 42
	}

	return &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
		cache:  cache.NewLRU[cacheKey, cachedResult](cfg.Cache.MaxEntries, cfg.Cache.TTL),
		rng:    rand.New(rand.NewSource(seed)), //nolint:gosec // math/rand is fine for recommendation draws
		now:    time.Now,
	}, nil
}

// SetDataProvider sets the source of history and library data.
func (e *Engine) SetDataProvider(dp DataProvider) {
	e.dataProvider = dp
}

// SetRand replaces the random source. Intended for seeded test runs.
func (e *Engine) SetRand(rng *rand.Rand) {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	e.rng = rng
}

// Recommend returns at most Limits.MaxResults recommendations for userID.
func (e *Engine) Recommend(ctx context.Context, userID string) ([]Recommendation, error) {
	resp, err := e.Generate(ctx, Request{UserID: userID})
	if err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Generate runs the recommendation pipeline for a request.
//
// While the user's history length is unchanged, repeated calls replay the
// cached result verbatim, including the ranks drawn at random the first time.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Generate(ctx context.Context, req Request) (*Response, error) {
	start := e.now()
	e.requestCount.Add(1)

	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Str("user_id", req.UserID).
		Logger()

	if e.dataProvider == nil {
		e.errorCount.Add(1)
		return nil, ErrNoDataProvider
	}

	historyLength, err := e.dataProvider.HistoryLength(ctx, req.UserID)
	if err != nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("get history length: %w", err)
	}
	key := cacheKey{userID: req.UserID, historyLength: historyLength}

	if resp := e.tryGetCachedResponse(req, key, start, logger); resp != nil {
		return resp, nil
	}

	pool, history, lastViewed, err := e.loadState(ctx, req.UserID)
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	items := e.buildRecommendations(pool, history, lastViewed)
	result := cachedResult{items: items, candidatePool: len(pool), generatedAt: e.now()}
	if e.config.Cache.Enabled {
		e.cache.Add(key, result)
	}

	resp := e.buildResponse(req, key, result, false, start)

	logger.Debug().
		Int("candidates", len(pool)).
		Int("history", len(history)).
		Bool("last_viewed", lastViewed != nil).
		Int("returned", len(items)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

// tryGetCachedResponse returns a replay of the cached run, or nil.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) tryGetCachedResponse(req Request, key cacheKey, start time.Time, logger zerolog.Logger) *Response {
	if !e.config.Cache.Enabled || req.BypassCache {
		return nil
	}

	result, ok := e.cache.Get(key)
	if !ok {
		e.cacheMisses.Add(1)
		return nil
	}

	e.cacheHits.Add(1)
	logger.Debug().Int("returned", len(result.items)).Msg("cache hit")
	return e.buildResponse(req, key, result, true, start)
}

// loadState reads the candidate pool, history and last viewed book.
// The pool is the library minus every viewed ID, in library order.
func (e *Engine) loadState(ctx context.Context, userID string) (pool, history []Item, lastViewed *Item, err error) {
	history, err = e.dataProvider.GetUserHistory(ctx, userID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("get user history: %w", err)
	}

	lastViewed, err = e.dataProvider.GetLastViewed(ctx, userID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("get last viewed: %w", err)
	}

	library, err := e.dataProvider.GetUserLibrary(ctx, userID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("get user library: %w", err)
	}

	viewed := make(map[string]struct{}, len(history))
	for i := range history {
		viewed[history[i].ID] = struct{}{}
	}

	pool = make([]Item, 0, len(library))
	for i := range library {
		if _, seen := viewed[library[i].ID]; !seen {
			pool = append(pool, library[i])
		}
	}

	return pool, history, lastViewed, nil
}

// buildRecommendations runs the batches in priority order:
// last viewed, percentile select, random discovery, preference center.
func (e *Engine) buildRecommendations(pool, history []Item, lastViewed *Item) []Recommendation {
	if len(pool) == 0 {
		return []Recommendation{}
	}

	acc := newAccumulator(len(pool))

	if lastViewed != nil && lastViewed.ID != "" {
		e.addSimilar(acc, *lastViewed, pool)
	}
	e.addPercentiles(acc, pool)
	e.addRandomDiscoveries(acc, pool)
	if len(history) > 0 {
		e.addPreferenceCenter(acc, pool, history)
	}

	return acc.truncate(e.config.Limits.MaxResults)
}

func (e *Engine) addSimilar(acc *accumulator, ref Item, pool []Item) {
	reason := NewReason(ReasonLastViewed, 0)
	for _, item := range algorithms.SimilarTo(ref, pool, e.config.Strategy.SimilarCount) {
		acc.add(item, AlgorithmLastViewed, reason)
	}
}

func (e *Engine) addPercentiles(acc *accumulator, pool []Item) {
	n := float64(len(pool))
	cfg := e.config.Strategy
	for i := 0; i < cfg.PercentileProbes; i++ {
		rank := int(math.Floor(n * (cfg.PercentileBase + float64(i)*cfg.PercentileStep)))
		item, ok := algorithms.Select(pool, rank)
		if !ok {
			continue
		}
		percent := int(math.Round((1 - float64(rank)/n) * 100))
		acc.add(item, AlgorithmSelect, NewReason(ReasonTopPercentile, percent))
	}
}

func (e *Engine) addRandomDiscoveries(acc *accumulator, pool []Item) {
	window := min(len(pool), e.config.Strategy.RandomWindow)
	reason := NewReason(ReasonRandomDiscovery, 0)

	e.rngMu.Lock()
	defer e.rngMu.Unlock()

	for i := 0; i < e.config.Strategy.RandomDraws; i++ {
		rank := int(math.Floor(e.rng.Float64() * float64(window)))
		if item, ok := algorithms.RandomizedSelect(pool, rank, e.rng); ok {
			acc.add(item, AlgorithmRandomizedSelect, reason)
		}
	}
}

// addPreferenceCenter picks the not-yet-recommended candidate closest to
// the centroid of the viewing history.
func (e *Engine) addPreferenceCenter(acc *accumulator, pool, history []Item) {
	center := algorithms.CentroidOf(history)

	remaining := make([]Item, 0, len(pool))
	for i := range pool {
		if !acc.has(pool[i].ID) {
			remaining = append(remaining, pool[i])
		}
	}

	if item, ok := algorithms.Closest(remaining, center); ok {
		acc.add(item, AlgorithmOptimalPosition, NewReason(ReasonPreferenceCenter, 0))
	}
}

// buildResponse copies a stored result into a response so that callers
// cannot modify the cache.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) buildResponse(req Request, key cacheKey, result cachedResult, cacheHit bool, start time.Time) *Response {
	items := make([]Recommendation, len(result.items))
	copy(items, result.items)

	return &Response{
		Items:         items,
		CandidatePool: result.candidatePool,
		Metadata: ResponseMetadata{
			RequestID:     req.RequestID,
			UserID:        req.UserID,
			HistoryLength: key.historyLength,
			CacheHit:      cacheHit,
			Algorithms:    CountByAlgorithm(items),
			LatencyMS:     e.now().Sub(start).Milliseconds(),
			GeneratedAt:   result.generatedAt,
			Timestamp:     e.now(),
		},
	}
}

// InvalidateUser drops every cached result for userID. Library and rating
// changes do not alter the history length, so callers invalidate explicitly.
func (e *Engine) InvalidateUser(userID string) int {
	removed := e.cache.RemoveFunc(func(k cacheKey) bool { return k.userID == userID })
	if removed > 0 {
		e.logger.Debug().Str("user_id", userID).Int("entries", removed).Msg("cache invalidated")
	}
	return removed
}

// ClearCache removes all cached results.
func (e *Engine) ClearCache() {
	e.cache.Clear()
	e.logger.Debug().Msg("cache cleared")
}

// GetMetrics returns the current engine metrics.
func (e *Engine) GetMetrics() Metrics {
	stats := e.cache.Stats()
	return Metrics{
		Requests:    e.requestCount.Load(),
		CacheHits:   e.cacheHits.Load(),
		CacheMisses: e.cacheMisses.Load(),
		Errors:      e.errorCount.Load(),
		CacheSize:   stats.Size,
		Evictions:   stats.Evictions,
	}
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

// accumulator collects recommendations in append order, skipping IDs
// already present.
type accumulator struct {
	items []Recommendation
	seen  map[string]struct{}
}

func newAccumulator(capacity int) *accumulator {
	return &accumulator{
		items: make([]Recommendation, 0, min(capacity, 16)),
		seen:  make(map[string]struct{}, capacity),
	}
}

func (a *accumulator) has(id string) bool {
	_, ok := a.seen[id]
	return ok
}

//nolint:gocritic // hugeParam: item is copied into the recommendation
func (a *accumulator) add(item Item, alg Algorithm, reason Reason) {
	if a.has(item.ID) {
		return
	}
	a.seen[item.ID] = struct{}{}
	a.items = append(a.items, Recommendation{Item: item, Algorithm: alg, Reason: reason})
}

func (a *accumulator) truncate(limit int) []Recommendation {
	if len(a.items) > limit {
		return a.items[:limit]
	}
	return a.items
}
