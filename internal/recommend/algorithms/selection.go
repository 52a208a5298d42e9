// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package algorithms

import (
	"math/rand"
	"sort"
)

// Select returns the item at rank k (0-indexed) when items are ordered by
// descending score. The second return value is false when k is outside
// [0, len(items)).
//
// The ordering is a stable sort of a private copy: equal scores keep their
// input order.
func Select[T Rated](items []T, k int) (T, bool) {
	var zero T
	if k < 0 || k >= len(items) {
		return zero, false
	}

	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score() > sorted[j].Score()
	})

	return sorted[k], true
}

// RandomizedSelect finds the item at rank k (0-indexed, descending score)
// using quickselect with a uniformly random pivot on each step.
//
// Empty input returns false. k is clamped into [0, len(items)-1]. The input
// slice is copied before partitioning. Expected time is linear; the worst
// case is quadratic.
func RandomizedSelect[T Rated](items []T, k int, rng *rand.Rand) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}

	if k > len(items)-1 {
		k = len(items) - 1
	}
	if k < 0 {
		k = 0
	}

	work := make([]T, len(items))
	copy(work, items)

	left, right := 0, len(work)-1
	for left < right {
		store := partition(work, left, right, left+rng.Intn(right-left+1))
		switch {
		case k == store:
			return work[k], true
		case k < store:
			right = store - 1
		default:
			left = store + 1
		}
	}

	return work[left], true
}

// partition moves the pivot to the right end, gathers every item scoring at
// least the pivot at the front of [left, right), then places the pivot after
// them. It returns the pivot's final index.
func partition[T Rated](work []T, left, right, pivotIndex int) int {
	pivot := work[pivotIndex].Score()
	work[pivotIndex], work[right] = work[right], work[pivotIndex]

	store := left
	for i := left; i < right; i++ {
		if work[i].Score() >= pivot {
			work[i], work[store] = work[store], work[i]
			store++
		}
	}

	work[store], work[right] = work[right], work[store]
	return store
}
