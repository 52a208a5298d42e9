// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

// Package algorithms provides the scoring primitives behind BookOptimal
// recommendations.
//
// # Primitives
//
//   - Select: deterministic k-th order statistic by descending rating
//   - RandomizedSelect: quickselect with a random pivot per step
//   - Centroid and Distance: 2-D preference geometry
//   - SimilarTo: genre/rating affinity ranked by distance to a reference
//
// All primitives are generic over small interfaces so that any catalog type
// exposing a rating, a genre and a preference coordinate can be ranked. They
// never mutate the caller's slice: each call works on an owned copy.
//
// # Tie Policy
//
// Select sorts with sort.SliceStable, so items with an equal rating keep
// their input order. RandomizedSelect guarantees the rating at rank k but
// not which of several equally rated items is returned.
//
// # Randomness
//
// RandomizedSelect takes an explicit *rand.Rand. Callers that need
// reproducible runs pass a seeded source.
package algorithms
