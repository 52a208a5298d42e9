// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package middleware

import (
	"net/http"
	"regexp"

	"github.com/tomtom215/bookoptimal/internal/logging"
)

// RequestIDHeader is the header read from clients and echoed back.
const RequestIDHeader = "X-Request-ID"

// upstreamIDPattern bounds what we accept from proxies before the value
// ends up in logs and response headers.
var upstreamIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,128}$`)

// RequestID assigns every request an ID. A well-formed X-Request-ID from an
// upstream proxy is kept, anything else is replaced by a UUID. The ID is
// stored in the context for logging.Ctx and echoed in the response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if !upstreamIDPattern.MatchString(requestID) {
			requestID = logging.GenerateRequestID()
		}

		w.Header().Set(RequestIDHeader, requestID)

		ctx := logging.ContextWithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID returns the request ID stored by RequestID, or "".
func GetRequestID(r *http.Request) string {
	return logging.RequestIDFromContext(r.Context())
}
