// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/bookoptimal/internal/analytics"
	"github.com/tomtom215/bookoptimal/internal/library"
	"github.com/tomtom215/bookoptimal/internal/logging"
	"github.com/tomtom215/bookoptimal/internal/metrics"
	"github.com/tomtom215/bookoptimal/internal/recommend"
	"github.com/tomtom215/bookoptimal/internal/recommend/algorithms"
	"github.com/tomtom215/bookoptimal/internal/validation"
)

// Rank modes.
const (
	RankDeterministic = "deterministic"
	RankRandomized    = "randomized"
)

// RankRequest selects the book at rank K (0 = highest rated) of the library.
type RankRequest struct {
	K    int    `json:"k" validate:"min=0"`
	Mode string `json:"mode" validate:"oneof=deterministic randomized"`
}

// RankResponse is the order statistic result.
type RankResponse struct {
	K           int          `json:"k"`
	Mode        string       `json:"mode"`
	LibrarySize int          `json:"library_size"`
	Book        library.Book `json:"book"`
}

// Recommendations runs the engine for the user. ?refresh=true bypasses the
// cached run. Every run is published as a recommendation event.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	userID, ok := h.requireUser(rw, r)
	if !ok {
		return
	}

	start := time.Now()
	resp, err := h.engine.Generate(r.Context(), recommend.Request{
		UserID:      userID,
		RequestID:   logging.RequestIDFromContext(r.Context()),
		BypassCache: getBoolParam(r, "refresh"),
	})
	if err != nil {
		metrics.RecordRecommendation(metrics.OutcomeError, nil, time.Since(start))
		rw.Fail(err)
		return
	}

	metrics.RecordRecommendation(outcomeOf(resp), resp.Metadata.Algorithms, time.Since(start))
	h.publish(r, userID, resp)
	rw.Success(resp)
}

func outcomeOf(resp *recommend.Response) string {
	switch {
	case len(resp.Items) == 0:
		return metrics.OutcomeEmpty
	case resp.Metadata.CacheHit:
		return metrics.OutcomeHit
	default:
		return metrics.OutcomeMiss
	}
}

func (h *Handler) publish(r *http.Request, userID string, resp *recommend.Response) {
	if h.events == nil {
		return
	}
	e := analytics.NewRecommendationsGenerated(userID, resp.Items, resp.Metadata.CacheHit, h.now())
	if err := h.events.Publish(e); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).
			Str("user_id", userID).
			Msg("Failed to publish recommendation event")
	}
}

// Rank returns the library book at rank k by rating, highest first. The
// deterministic mode breaks ties by insertion order; the randomized mode uses
// quickselect and clamps k into the library.
func (h *Handler) Rank(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	userID, ok := h.requireUser(rw, r)
	if !ok {
		return
	}

	req, err := parseRankRequest(r)
	if err != nil {
		rw.Fail(err)
		return
	}

	books, err := h.library.GetUserLibrary(r.Context(), userID)
	if err != nil {
		rw.Fail(err)
		return
	}

	var (
		book  library.Book
		found bool
	)
	if req.Mode == RankRandomized {
		h.rngMu.Lock()
		book, found = algorithms.RandomizedSelect(books, req.K, h.rng)
		h.rngMu.Unlock()
	} else {
		book, found = algorithms.Select(books, req.K)
	}
	if !found {
		rw.Fail(fmt.Errorf("%w: k=%d, library has %d books", ErrRankOutOfRange, req.K, len(books)))
		return
	}

	rw.Success(RankResponse{K: req.K, Mode: req.Mode, LibrarySize: len(books), Book: book})
}

func parseRankRequest(r *http.Request) (RankRequest, error) {
	q := r.URL.Query()
	req := RankRequest{Mode: q.Get("mode")}
	if req.Mode == "" {
		req.Mode = RankDeterministic
	}
	if raw := q.Get("k"); raw != "" {
		k, err := strconv.Atoi(raw)
		if err != nil {
			return req, &validation.Error{Fields: []validation.FieldError{{
				Field:   "k",
				Tag:     "number",
				Value:   raw,
				Message: "k must be an integer",
			}}}
		}
		req.K = k
	}
	if verr := validation.Struct(&req); verr != nil {
		return req, verr
	}
	return req, nil
}
