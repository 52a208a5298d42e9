// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package api

import (
	"net/http"

	"github.com/tomtom215/bookoptimal/internal/library"
)

// CreateUserRequest is the POST /users body. ID is optional; a UUID is
// assigned when it is empty.
type CreateUserRequest struct {
	ID    string `json:"id" validate:"omitempty,userid"`
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"omitempty,email"`
}

// CreateUser registers a new reader.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req CreateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.Fail(err)
		return
	}

	user, err := h.library.CreateUser(r.Context(), library.User{ID: req.ID, Name: req.Name, Email: req.Email})
	if err != nil {
		rw.Fail(err)
		return
	}

	h.logger.Info().Str("user_id", user.ID).Msg("User created")
	rw.Created(user)
}

// ListUsers returns every reader.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	users, err := h.library.ListUsers(r.Context())
	if err != nil {
		rw.Fail(err)
		return
	}
	rw.Success(users)
}

// GetUser returns one reader.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, err := userIDParam(r)
	if err != nil {
		rw.Fail(err)
		return
	}

	user, err := h.library.GetUser(r.Context(), userID)
	if err != nil {
		rw.Fail(err)
		return
	}
	rw.Success(user)
}

// requireUser validates the {userID} parameter and checks the user exists.
// It writes the failure itself and reports whether the handler may go on.
func (h *Handler) requireUser(rw *ResponseWriter, r *http.Request) (string, bool) {
	userID, err := userIDParam(r)
	if err != nil {
		rw.Fail(err)
		return "", false
	}
	if _, err := h.library.GetUser(r.Context(), userID); err != nil {
		rw.Fail(err)
		return "", false
	}
	return userID, true
}
