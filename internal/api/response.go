// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/bookoptimal/internal/logging"
)

// APIResponse is the envelope every endpoint writes. Exactly one of Data
// and Error is set; Meta always is.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *APIMeta    `json:"meta"`
}

// APIError is the error half of the envelope. Code is one of the ErrCode
// constants; Details carries per-field validation messages when present.
type APIError struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// APIMeta is attached to every response.
type APIMeta struct {
	RequestID  string    `json:"request_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	DurationMs int64     `json:"duration_ms"`
}

// Machine-readable error codes.
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeTooManyRequests    = "TOO_MANY_REQUESTS"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// ResponseWriter writes enveloped JSON for one request. Create it at the top
// of the handler so DurationMs covers the handler's work.
type ResponseWriter struct {
	w       http.ResponseWriter
	r       *http.Request
	started time.Time
}

// NewResponseWriter starts the request clock.
func NewResponseWriter(w http.ResponseWriter, r *http.Request) *ResponseWriter {
	return &ResponseWriter{w: w, r: r, started: time.Now()}
}

// Success writes 200 with data.
func (rw *ResponseWriter) Success(data interface{}) { rw.send(http.StatusOK, data, nil) }

// Created writes 201 with data.
func (rw *ResponseWriter) Created(data interface{}) { rw.send(http.StatusCreated, data, nil) }

// Error writes an error envelope with status.
func (rw *ResponseWriter) Error(status int, code, message string) {
	rw.send(status, nil, &APIError{Code: code, Message: message})
}

// ErrorWithDetails is Error plus a details payload.
func (rw *ResponseWriter) ErrorWithDetails(status int, code, message string, details interface{}) {
	rw.send(status, nil, &APIError{Code: code, Message: message, Details: details})
}

func (rw *ResponseWriter) NotFound(message string) {
	rw.Error(http.StatusNotFound, ErrCodeNotFound, message)
}

func (rw *ResponseWriter) ValidationError(message string, details interface{}) {
	rw.ErrorWithDetails(http.StatusBadRequest, ErrCodeValidation, message, details)
}

func (rw *ResponseWriter) InternalError(message string) {
	rw.Error(http.StatusInternalServerError, ErrCodeInternalError, message)
}

func (rw *ResponseWriter) ServiceUnavailable(message string) {
	rw.Error(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, message)
}

func (rw *ResponseWriter) send(status int, data interface{}, apiErr *APIError) {
	ctx := rw.r.Context()
	meta := &APIMeta{
		RequestID:  logging.RequestIDFromContext(ctx),
		Timestamp:  time.Now().UTC(),
		DurationMs: time.Since(rw.started).Milliseconds(),
	}
	if apiErr != nil {
		apiErr.RequestID = meta.RequestID
	}

	h := rw.w.Header()
	h.Set("Content-Type", "application/json; charset=utf-8")
	rw.w.WriteHeader(status)

	body := APIResponse{Success: apiErr == nil, Data: data, Error: apiErr, Meta: meta}
	if err := json.NewEncoder(rw.w).Encode(body); err != nil {
		// Headers are already out; all that is left is to log it.
		logging.Ctx(ctx).Error().Err(err).Int("status", status).Msg("encode response")
	}
}

// WriteError writes an error envelope outside a handler (router fallbacks,
// rate limiter).
func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	NewResponseWriter(w, r).Error(status, code, message)
}
