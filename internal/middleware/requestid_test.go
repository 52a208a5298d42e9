// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func serveWithRequestID(t *testing.T, header string) (responseID, contextID string) {
	t.Helper()

	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contextID = GetRequestID(r)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	if header != "" {
		req.Header.Set(RequestIDHeader, header)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec.Header().Get(RequestIDHeader), contextID
}

func TestRequestID_GeneratesNewID(t *testing.T) {
	t.Parallel()

	responseID, contextID := serveWithRequestID(t, "")

	if _, err := uuid.Parse(responseID); err != nil {
		t.Errorf("Response X-Request-ID is not a valid UUID: %v", err)
	}
	if contextID != responseID {
		t.Errorf("Context ID (%s) doesn't match response header ID (%s)", contextID, responseID)
	}
}

func TestRequestID_PreservesExistingID(t *testing.T) {
	t.Parallel()

	responseID, contextID := serveWithRequestID(t, "edge-7f3a.42")

	if responseID != "edge-7f3a.42" || contextID != "edge-7f3a.42" {
		t.Errorf("upstream ID not preserved: header=%q ctx=%q", responseID, contextID)
	}
}

func TestRequestID_ReplacesMalformedID(t *testing.T) {
	t.Parallel()

	tests := []string{
		"has spaces in it",
		"newline\ninjection",
		strings.Repeat("a", 129),
		"<script>",
	}

	for _, header := range tests {
		responseID, _ := serveWithRequestID(t, header)
		if responseID == header {
			t.Errorf("malformed ID %q was echoed back", header)
		}
		if _, err := uuid.Parse(responseID); err != nil {
			t.Errorf("replacement %q is not a UUID", responseID)
		}
	}
}

func TestRequestID_UniquePerRequest(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id, _ := serveWithRequestID(t, "")
		if seen[id] {
			t.Fatalf("duplicate request ID %s", id)
		}
		seen[id] = true
	}
}
