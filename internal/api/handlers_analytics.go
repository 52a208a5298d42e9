// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package api

import (
	"net/http"

	"github.com/tomtom215/bookoptimal/internal/analytics"
	"github.com/tomtom215/bookoptimal/internal/recommend"
	"github.com/tomtom215/bookoptimal/internal/recommend/algorithms"
)

// Analytics returns the user's recommendation statistics and preference
// center. Without an analytics store the run statistics are zero and only
// the preference center is computed.
func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	userID, ok := h.requireUser(rw, r)
	if !ok {
		return
	}

	history, err := h.library.GetUserHistory(r.Context(), userID)
	if err != nil {
		rw.Fail(err)
		return
	}

	if h.analytics == nil {
		rw.Success(preferencesOnly(userID, history))
		return
	}

	summary, err := h.analytics.Summary(r.Context(), userID, history)
	if err != nil {
		rw.Fail(err)
		return
	}
	rw.Success(summary)
}

func preferencesOnly(userID string, history []recommend.Item) *analytics.Summary {
	center := algorithms.CentroidOf(history)
	return &analytics.Summary{
		UserID:          userID,
		AlgorithmCounts: recommend.CountByAlgorithm(nil),
		Preferences: analytics.Preferences{
			X:           center.X,
			Y:           center.Y,
			HistorySize: len(history),
		},
	}
}
