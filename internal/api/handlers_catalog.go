// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/bookoptimal/internal/catalog"
	"github.com/tomtom215/bookoptimal/internal/validation"
)

// CatalogResponse is the catalog snapshot.
type CatalogResponse struct {
	Books       []catalog.Book `json:"books"`
	Count       int            `json:"count"`
	RefreshedAt *time.Time     `json:"refreshed_at,omitempty"`
}

// SearchResponse holds catalog search results.
type SearchResponse struct {
	Query string         `json:"query"`
	Books []catalog.Book `json:"books"`
	Count int            `json:"count"`
}

type searchRequest struct {
	Query string `json:"q" validate:"required,max=200"`
}

// Catalog returns the current fiction snapshot. ?limit=n truncates it.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	books := h.catalog.Books()
	if limit := getIntParam(r, "limit", 0); limit > 0 && limit < len(books) {
		books = books[:limit]
	}

	resp := CatalogResponse{Books: books, Count: len(books)}
	if at := h.catalog.RefreshedAt(); !at.IsZero() {
		resp.RefreshedAt = &at
	}
	rw.Success(resp)
}

// CatalogSearch searches Open Library. Terms below the minimum length return
// an empty result without a remote call.
func (h *Handler) CatalogSearch(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req := searchRequest{Query: strings.TrimSpace(r.URL.Query().Get("q"))}
	if verr := validation.Struct(&req); verr != nil {
		rw.Fail(verr)
		return
	}

	books, err := h.catalog.Search(r.Context(), req.Query)
	if err != nil {
		rw.Fail(err)
		return
	}

	rw.Success(SearchResponse{Query: req.Query, Books: books, Count: len(books)})
}
