// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/bookoptimal/internal/validation"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// readJSON reads the body into v without validating it.
func readJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return nil
}

// decodeJSON reads the body into v and validates it.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if err := readJSON(w, r, v); err != nil {
		return err
	}
	if verr := validation.Struct(v); verr != nil {
		return verr
	}
	return nil
}

// userIDParam returns the validated {userID} path parameter.
func userIDParam(r *http.Request) (string, error) {
	id := chi.URLParam(r, "userID")
	if verr := validation.Var("user_id", id, "required,userid"); verr != nil {
		return "", verr
	}
	return id, nil
}

// bookIDParam returns the validated {bookID} path parameter.
func bookIDParam(r *http.Request) (string, error) {
	id := chi.URLParam(r, "bookID")
	if verr := validation.Var("book_id", id, "required,bookid"); verr != nil {
		return "", verr
	}
	return id, nil
}

// getIntParam extracts an integer query parameter with a default value.
// Unparseable values fall back to the default.
func getIntParam(r *http.Request, name string, defaultValue int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return v
}

// getBoolParam extracts a boolean query parameter, false when absent or
// unparseable.
func getBoolParam(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && v
}
