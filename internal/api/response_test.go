// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tomtom215/bookoptimal/internal/catalog"
	"github.com/tomtom215/bookoptimal/internal/library"
	"github.com/tomtom215/bookoptimal/internal/logging"
	"github.com/tomtom215/bookoptimal/internal/validation"
)

func TestResponseWriter_Success(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(logging.ContextWithRequestID(req.Context(), "req-1"))
	rec := httptest.NewRecorder()

	NewResponseWriter(rec, req).Success(map[string]int{"n": 1})

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if !env.Success || env.Error != nil {
		t.Errorf("envelope = %+v, want success", env)
	}
	if env.Meta == nil || env.Meta.RequestID != "req-1" || env.Meta.Timestamp.IsZero() {
		t.Errorf("meta = %+v", env.Meta)
	}
	if string(env.Data) != `{"n":1}` {
		t.Errorf("data = %s", env.Data)
	}
}

func TestResponseWriter_ErrorCarriesRequestID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(logging.ContextWithRequestID(req.Context(), "req-2"))
	rec := httptest.NewRecorder()

	NewResponseWriter(rec, req).ErrorWithDetails(http.StatusBadRequest, ErrCodeValidation, "bad", map[string]string{"field": "x"})

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Success || env.Error == nil {
		t.Fatalf("envelope = %+v, want error", env)
	}
	if env.Error.RequestID != "req-2" || env.Meta.RequestID != "req-2" {
		t.Errorf("request ids = %q / %q", env.Error.RequestID, env.Meta.RequestID)
	}
	if len(env.Data) != 0 {
		t.Errorf("data = %s, want omitted", env.Data)
	}
}

func TestResponseWriter_Fail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", validation.Var("user_id", "a b", "userid"), http.StatusBadRequest, ErrCodeValidation},
		{"malformed body", fmt.Errorf("%w: eof", ErrMalformedBody), http.StatusBadRequest, ErrCodeValidation},
		{"invalid rating", library.ErrInvalidRating, http.StatusBadRequest, ErrCodeValidation},
		{"invalid id", fmt.Errorf("add: %w", library.ErrInvalidID), http.StatusBadRequest, ErrCodeValidation},
		{"user not found", library.ErrUserNotFound, http.StatusNotFound, ErrCodeNotFound},
		{"book not found", fmt.Errorf("rate: %w", library.ErrBookNotFound), http.StatusNotFound, ErrCodeNotFound},
		{"not in catalog", ErrNotInCatalog, http.StatusNotFound, ErrCodeNotFound},
		{"rank out of range", ErrRankOutOfRange, http.StatusNotFound, ErrCodeNotFound},
		{"user exists", library.ErrUserExists, http.StatusConflict, ErrCodeConflict},
		{"breaker open", fmt.Errorf("search: %w: %w", catalog.ErrCircuitOpen, errors.New("open")), http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"store closed", library.ErrClosed, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			NewResponseWriter(rec, req).Fail(tt.err)

			var env envelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatal(err)
			}
			expectError(t, rec, env, tt.status, tt.code)
		})
	}
}

func TestResponseWriter_FailHidesInternalMessage(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	NewResponseWriter(rec, req).Fail(errors.New("password=hunter2"))

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Error.Message != "internal server error" {
		t.Errorf("message = %q, leaked internal error", env.Error.Message)
	}
}

func TestResponseWriter_FailValidationDetails(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	NewResponseWriter(rec, req).Fail(validation.Var("user_id", "a b", "userid"))

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	details, ok := env.Error.Details.(map[string]interface{})
	if !ok {
		t.Fatalf("details = %#v", env.Error.Details)
	}
	if details["field"] != "user_id" || details["tag"] != "userid" {
		t.Errorf("details = %v", details)
	}
}
