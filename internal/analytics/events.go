// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package analytics

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/bookoptimal/internal/recommend"
	"github.com/tomtom215/bookoptimal/internal/validation"
)

// TopicRecommendationsGenerated carries one event per recommendation run.
const TopicRecommendationsGenerated = "recommendations.generated"

// RecommendationsGenerated is published after every recommendation run.
type RecommendationsGenerated struct {
	EventID string `json:"event_id" validate:"required,uuid"`
	UserID  string `json:"user_id" validate:"required,userid"`

	// Algorithms holds the strategy tag of each recommended book, in list
	// order.
	Algorithms []string  `json:"algorithms" validate:"dive,oneof=last-viewed select randomized-select optimal-position"`
	Count      int       `json:"count" validate:"min=0"`
	Cached     bool      `json:"cached"`
	Timestamp  time.Time `json:"timestamp" validate:"required"`
}

// NewRecommendationsGenerated builds the event for one run.
func NewRecommendationsGenerated(userID string, recs []recommend.Recommendation, cached bool, at time.Time) *RecommendationsGenerated {
	tags := make([]string, len(recs))
	for i := range recs {
		tags[i] = recs[i].Algorithm.String()
	}
	return &RecommendationsGenerated{
		EventID:    uuid.NewString(),
		UserID:     userID,
		Algorithms: tags,
		Count:      len(recs),
		Cached:     cached,
		Timestamp:  at.UTC(),
	}
}

// Validate checks the event before it is published or stored.
func (e *RecommendationsGenerated) Validate() error {
	if verr := validation.Struct(e); verr != nil {
		return verr
	}
	if e.Count != len(e.Algorithms) {
		return fmt.Errorf("count %d does not match %d algorithm tags", e.Count, len(e.Algorithms))
	}
	return nil
}

// MarshalEvent validates and encodes an event.
func MarshalEvent(e *RecommendationsGenerated) ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("validate event: %w", err)
	}
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}

// UnmarshalEvent decodes and validates an event.
func UnmarshalEvent(data []byte) (*RecommendationsGenerated, error) {
	var e RecommendationsGenerated
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("validate event: %w", err)
	}
	return &e, nil
}
