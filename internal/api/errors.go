// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/bookoptimal/internal/catalog"
	"github.com/tomtom215/bookoptimal/internal/library"
	"github.com/tomtom215/bookoptimal/internal/logging"
	"github.com/tomtom215/bookoptimal/internal/validation"
)

// Handler-level errors.
var (
	// ErrNotInCatalog is returned when a book_id does not resolve against the
	// catalog snapshot or recent searches.
	ErrNotInCatalog = errors.New("book not found in catalog")

	// ErrRankOutOfRange is returned by the rank endpoint when k exceeds the
	// library size.
	ErrRankOutOfRange = errors.New("rank out of range")

	// ErrMalformedBody is returned when a request body is not valid JSON.
	ErrMalformedBody = errors.New("malformed request body")
)

// Fail maps err to a status code and error code and writes it. This is the
// only place errors are translated for clients.
func (rw *ResponseWriter) Fail(err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		rw.ValidationError(verr.Error(), verr.Details())

	case errors.Is(err, ErrMalformedBody),
		errors.Is(err, library.ErrInvalidRating),
		errors.Is(err, library.ErrInvalidID):
		rw.Error(http.StatusBadRequest, ErrCodeValidation, err.Error())

	case errors.Is(err, library.ErrUserNotFound),
		errors.Is(err, library.ErrBookNotFound),
		errors.Is(err, ErrNotInCatalog),
		errors.Is(err, ErrRankOutOfRange):
		rw.NotFound(err.Error())

	case errors.Is(err, library.ErrUserExists):
		rw.Error(http.StatusConflict, ErrCodeConflict, err.Error())

	case errors.Is(err, catalog.ErrCircuitOpen):
		rw.ServiceUnavailable("book catalog is temporarily unavailable")

	case errors.Is(err, library.ErrClosed):
		rw.ServiceUnavailable("library store is shutting down")

	case errors.Is(err, context.DeadlineExceeded):
		rw.ServiceUnavailable("request timed out")

	default:
		logging.Ctx(rw.r.Context()).Error().Err(err).
			Str("path", rw.r.URL.Path).
			Msg("Request failed")
		rw.InternalError("internal server error")
	}
}

// WriteFailure is a convenience function for Fail.
func WriteFailure(w http.ResponseWriter, r *http.Request, err error) {
	NewResponseWriter(w, r).Fail(err)
}
