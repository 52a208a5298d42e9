// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

// Package cache provides a generic, thread-safe LRU with optional TTL.
//
// The recommendation engine memoizes runs in it, keyed by user and history
// length. The catalog keeps recent Open Library search results in two
// instances: one by term, one by book ID.
package cache
