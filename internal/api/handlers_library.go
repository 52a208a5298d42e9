// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/bookoptimal/internal/library"
	"github.com/tomtom215/bookoptimal/internal/validation"
)

// AddBookRequest is the POST /library body: either a complete book or just
// {"book_id": "..."}, which is resolved against the catalog.
type AddBookRequest struct {
	BookID string `json:"book_id"`
	library.Book
}

// AddBookResponse reports whether the book was new to the library.
type AddBookResponse struct {
	Added bool         `json:"added"`
	Book  library.Book `json:"book"`
}

// BookIDRequest carries a single book reference.
type BookIDRequest struct {
	BookID string `json:"book_id" validate:"required,bookid"`
}

// RateBookRequest is the PUT /ratings/{bookID} body.
type RateBookRequest struct {
	Rating int `json:"rating" validate:"min=1,max=5"`
}

// LastViewedResponse wraps the possibly absent last-viewed book.
type LastViewedResponse struct {
	Book *library.Book `json:"book"`
}

// Library returns the user's library in insertion order.
func (h *Handler) Library(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	userID, ok := h.requireUser(rw, r)
	if !ok {
		return
	}

	books, err := h.library.GetUserLibrary(r.Context(), userID)
	if err != nil {
		rw.Fail(err)
		return
	}
	rw.Success(books)
}

// AddToLibrary adds a book. Adding a book already in the library is not an
// error; the response reports added=false with status 200.
func (h *Handler) AddToLibrary(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	userID, err := userIDParam(r)
	if err != nil {
		rw.Fail(err)
		return
	}

	var req AddBookRequest
	if err := readJSON(w, r, &req); err != nil {
		rw.Fail(err)
		return
	}

	book, err := h.resolveBook(&req)
	if err != nil {
		rw.Fail(err)
		return
	}

	added, err := h.library.AddToLibrary(r.Context(), userID, book)
	if err != nil {
		rw.Fail(err)
		return
	}

	if !added {
		rw.Success(AddBookResponse{Added: false, Book: book})
		return
	}
	h.engine.InvalidateUser(userID)
	rw.Created(AddBookResponse{Added: true, Book: book})
}

// resolveBook turns an AddBookRequest into the book to store.
func (h *Handler) resolveBook(req *AddBookRequest) (library.Book, error) {
	if req.BookID != "" && req.ID == "" {
		if verr := validation.Var("book_id", req.BookID, "bookid"); verr != nil {
			return library.Book{}, verr
		}
		book, ok := h.catalog.Find(req.BookID)
		if !ok {
			return library.Book{}, fmt.Errorf("%w: %s", ErrNotInCatalog, req.BookID)
		}
		return book, nil
	}

	if verr := validation.Struct(&req.Book); verr != nil {
		return library.Book{}, verr
	}
	if verr := validation.Var("id", req.ID, "bookid"); verr != nil {
		return library.Book{}, verr
	}
	return req.Book, nil
}

// RemoveFromLibrary removes a book. Removing an absent book succeeds with
// removed=false.
func (h *Handler) RemoveFromLibrary(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	userID, err := userIDParam(r)
	if err != nil {
		rw.Fail(err)
		return
	}
	bookID, err := bookIDParam(r)
	if err != nil {
		rw.Fail(err)
		return
	}

	removed, err := h.library.RemoveFromLibrary(r.Context(), userID, bookID)
	if err != nil {
		rw.Fail(err)
		return
	}
	if removed {
		h.engine.InvalidateUser(userID)
	}
	rw.Success(map[string]interface{}{"removed": removed, "book_id": bookID})
}

// History returns the viewed books in view order.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	userID, ok := h.requireUser(rw, r)
	if !ok {
		return
	}

	books, err := h.library.GetUserHistory(r.Context(), userID)
	if err != nil {
		rw.Fail(err)
		return
	}
	rw.Success(books)
}

// AddToHistory records a view.
func (h *Handler) AddToHistory(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	userID, err := userIDParam(r)
	if err != nil {
		rw.Fail(err)
		return
	}

	var req BookIDRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.Fail(err)
		return
	}

	entry, err := h.library.AddToHistory(r.Context(), userID, req.BookID)
	if err != nil {
		rw.Fail(err)
		return
	}
	h.engine.InvalidateUser(userID)
	rw.Created(entry)
}

// LastViewed returns the most recently viewed book, or a null book.
func (h *Handler) LastViewed(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	userID, ok := h.requireUser(rw, r)
	if !ok {
		return
	}

	book, err := h.library.GetLastViewed(r.Context(), userID)
	if err != nil {
		rw.Fail(err)
		return
	}
	rw.Success(LastViewedResponse{Book: book})
}

// RateBook stores the user's 1-5 rating for a book in their library.
func (h *Handler) RateBook(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	userID, err := userIDParam(r)
	if err != nil {
		rw.Fail(err)
		return
	}
	bookID, err := bookIDParam(r)
	if err != nil {
		rw.Fail(err)
		return
	}

	var req RateBookRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.Fail(err)
		return
	}

	rating, err := h.library.RateBook(r.Context(), userID, bookID, req.Rating)
	if err != nil {
		rw.Fail(err)
		return
	}
	h.engine.InvalidateUser(userID)
	rw.Success(rating)
}

// Export returns the library export. With ?download=true the bare export
// document is sent as a file attachment instead of the API envelope.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	userID, err := userIDParam(r)
	if err != nil {
		rw.Fail(err)
		return
	}

	export, err := h.library.ExportLibrary(r.Context(), userID)
	if err != nil {
		rw.Fail(err)
		return
	}

	if !getBoolParam(r, "download") {
		rw.Success(export)
		return
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		rw.Fail(fmt.Errorf("marshal export: %w", err))
		return
	}
	filename := fmt.Sprintf("library-%s-%s.json", userID, h.now().UTC().Format(time.DateOnly))
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to write export download")
	}
}
