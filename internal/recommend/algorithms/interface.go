// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package algorithms

// Rated is implemented by anything ranked by a numeric quality score.
type Rated interface {
	// Score returns the rating used for ordering (higher is better).
	Score() float64
}

// Positioned is implemented by anything placed on the 2-D preference plane.
type Positioned interface {
	// Position returns the preference coordinate.
	Position() Point
}

// Candidate is the full view SimilarTo needs of a catalog entry.
type Candidate interface {
	Rated
	Positioned

	// Key returns the stable identifier.
	Key() string

	// Category returns the genre label compared for exact equality.
	Category() string
}
