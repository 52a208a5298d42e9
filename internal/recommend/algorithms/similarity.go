// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package algorithms

import (
	"math"
	"sort"
)

// RatingProximity is the rating gap below which two items count as similar
// regardless of genre.
const RatingProximity = 0.5

// SimilarTo returns at most n candidates from pool that share ref's genre or
// sit within RatingProximity of its rating, ordered by ascending distance to
// ref's position. ref itself is never returned.
//
// An empty result is a valid outcome, not an error.
func SimilarTo[T Candidate](ref T, pool []T, n int) []T {
	if n <= 0 {
		return []T{}
	}

	type scored struct {
		item T
		dist float64
	}

	origin := ref.Position()
	matches := make([]scored, 0, len(pool))
	for _, c := range pool {
		if c.Key() == ref.Key() {
			continue
		}
		if c.Category() != ref.Category() && math.Abs(c.Score()-ref.Score()) >= RatingProximity {
			continue
		}
		matches = append(matches, scored{item: c, dist: Distance(c.Position(), origin)})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].dist < matches[j].dist
	})

	if len(matches) > n {
		matches = matches[:n]
	}

	out := make([]T, len(matches))
	for i, m := range matches {
		out[i] = m.item
	}
	return out
}
