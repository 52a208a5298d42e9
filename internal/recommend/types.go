// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/bookoptimal/internal/recommend/algorithms"
)

// Item is a catalog book as seen by the recommendation engine.
// Items are never mutated by the engine; recommendations decorate copies.
type Item struct {
	// ID is the stable identifier (e.g. "ol-OL45883W").
	ID string `json:"id" validate:"required"`

	// Title is the display title.
	Title string `json:"title"`

	// Author is the comma-joined author list.
	Author string `json:"author"`

	// Year is the first publication year (0 when unknown).
	Year int `json:"year"`

	// Genre is the categorical label compared for exact equality.
	Genre string `json:"genre"`

	// Rating is the quality score in [0, 5].
	Rating float64 `json:"rating" validate:"gte=0,lte=5"`

	// X and Y place the item on the preference plane.
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// Cover is the cover image URL, if any.
	Cover string `json:"cover,omitempty"`

	// OLKey is the Open Library work key (e.g. "/works/OL45883W").
	OLKey string `json:"ol_key,omitempty"`
}

// Score implements algorithms.Rated.
func (i Item) Score() float64 { return i.Rating }

// Position implements algorithms.Positioned.
func (i Item) Position() algorithms.Point { return algorithms.Point{X: i.X, Y: i.Y} }

// Key implements algorithms.Candidate.
func (i Item) Key() string { return i.ID }

// Category implements algorithms.Candidate.
func (i Item) Category() string { return i.Genre }

// Algorithm identifies the strategy that produced a recommendation.
type Algorithm int

const (
	// AlgorithmLastViewed ranks items similar to the most recently viewed book.
	AlgorithmLastViewed Algorithm = iota
	// AlgorithmSelect picks items at fixed rating percentiles.
	AlgorithmSelect
	// AlgorithmRandomizedSelect picks items at random ranks among the top.
	AlgorithmRandomizedSelect
	// AlgorithmOptimalPosition picks the item closest to the history centroid.
	AlgorithmOptimalPosition
)

// Algorithms lists every strategy in pipeline order.
var Algorithms = []Algorithm{
	AlgorithmLastViewed,
	AlgorithmSelect,
	AlgorithmRandomizedSelect,
	AlgorithmOptimalPosition,
}

// String returns the wire tag for the algorithm.
func (a Algorithm) String() string {
	switch a {
	case AlgorithmLastViewed:
		return "last-viewed"
	case AlgorithmSelect:
		return "select"
	case AlgorithmRandomizedSelect:
		return "randomized-select"
	case AlgorithmOptimalPosition:
		return "optimal-position"
	default:
		return "unknown"
	}
}

// MarshalText encodes the algorithm as its wire tag.
func (a Algorithm) MarshalText() ([]byte, error) {
	if a < AlgorithmLastViewed || a > AlgorithmOptimalPosition {
		return nil, fmt.Errorf("unknown algorithm %d", int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText decodes a wire tag.
func (a *Algorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAlgorithm converts a wire tag back into an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	for _, a := range Algorithms {
		if a.String() == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown algorithm %q", s)
}

// ReasonKey names the message template explaining a recommendation.
type ReasonKey string

const (
	ReasonLastViewed       ReasonKey = "last_viewed"
	ReasonTopPercentile    ReasonKey = "top_percentile"
	ReasonRandomDiscovery  ReasonKey = "random_discovery"
	ReasonPreferenceCenter ReasonKey = "preference_center"
)

// Reason is a message template plus its numeric parameter. Text carries the
// default English rendering; clients may localize from Key and Percent.
type Reason struct {
	Key     ReasonKey `json:"key"`
	Percent int       `json:"percent,omitempty"`
	Text    string    `json:"text"`
}

// NewReason renders the English text for key. percent is only used by
// ReasonTopPercentile.
func NewReason(key ReasonKey, percent int) Reason {
	r := Reason{Key: key}
	switch key {
	case ReasonLastViewed:
		r.Text = "based on last viewed book"
	case ReasonTopPercentile:
		r.Percent = percent
		r.Text = fmt.Sprintf("top %d%% of ratings", percent)
	case ReasonRandomDiscovery:
		r.Text = "balanced random discovery"
	case ReasonPreferenceCenter:
		r.Text = "closest to the center of your preferences"
	default:
		r.Text = string(key)
	}
	return r
}

// String returns the rendered text.
func (r Reason) String() string { return r.Text }

// Recommendation is an Item decorated with the strategy that selected it.
type Recommendation struct {
	Item

	// Algorithm is the strategy tag.
	Algorithm Algorithm `json:"algorithm"`

	// Reason explains the pick.
	Reason Reason `json:"reason"`
}

// Request is a recommendation request.
type Request struct {
	// UserID is the user to recommend for.
	UserID string `json:"user_id" validate:"required"`

	// RequestID correlates logs. Generated when empty.
	RequestID string `json:"request_id,omitempty"`

	// BypassCache forces a fresh run. The result still replaces the cached one.
	BypassCache bool `json:"bypass_cache,omitempty"`
}

// Response holds recommendations and run metadata.
type Response struct {
	// Items are the recommendations in pipeline order.
	Items []Recommendation `json:"items"`

	// CandidatePool is the number of library items not yet viewed.
	CandidatePool int `json:"candidate_pool"`

	// Metadata describes the run.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains information about a recommendation run.
type ResponseMetadata struct {
	RequestID     string         `json:"request_id"`
	UserID        string         `json:"user_id"`
	HistoryLength int            `json:"history_length"`
	CacheHit      bool           `json:"cache_hit"`
	Algorithms    map[string]int `json:"algorithms"`
	LatencyMS     int64          `json:"latency_ms"`
	GeneratedAt   time.Time      `json:"generated_at"`
	Timestamp     time.Time      `json:"timestamp"`
}

// CountByAlgorithm tallies recommendations per strategy tag. Every tag is
// present, zero-filled.
func CountByAlgorithm(recs []Recommendation) map[string]int {
	counts := make(map[string]int, len(Algorithms))
	for _, a := range Algorithms {
		counts[a.String()] = 0
	}
	for i := range recs {
		counts[recs[i].Algorithm.String()]++
	}
	return counts
}

// Metrics contains engine counters.
type Metrics struct {
	Requests    int64 `json:"requests"`
	CacheHits   int64 `json:"cache_hits"`
	CacheMisses int64 `json:"cache_misses"`
	Errors      int64 `json:"errors"`
	CacheSize   int   `json:"cache_size"`
	Evictions   int64 `json:"evictions"`
}
