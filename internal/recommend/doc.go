// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

// Package recommend implements the BookOptimal recommendation engine.
//
// # Architecture
//
// The engine merges four strategies, each contributing a batch, in a fixed
// priority order:
//
//  1. last-viewed: books similar to the most recently viewed one
//  2. select: the books at the 80th, 85th and 90th rating percentile ranks
//  3. randomized-select: random ranks among the top ten, via quickselect
//  4. optimal-position: the book closest to the centroid of the history
//
// Later batches skip books already recommended. The merged list is cut to
// eight entries without re-sorting. The candidate pool is the user's library
// minus every book in the viewing history.
//
// # Caching
//
// Results are memoized per (user, history length) in a bounded LRU. While
// the key is unchanged a request replays the stored list, including ranks
// that were drawn at random. Library and rating changes do not move the key,
// so callers invalidate with InvalidateUser.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	engine.SetDataProvider(store)
//
//	recs, err := engine.Recommend(ctx, userID)
//
// # Thread Safety
//
// The engine is safe for concurrent use. The cache has its own lock and the
// random source is guarded by a mutex.
package recommend
