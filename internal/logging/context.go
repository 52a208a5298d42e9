// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ctxKey is unexported so only this package can read or write these values.
type ctxKey int

const (
	requestIDKey ctxKey = iota
	userIDKey
	loggerKey
)

// GenerateRequestID returns a random UUIDv4 for requests that arrive without
// an X-Request-ID.
func GenerateRequestID() string {
	return uuid.NewString()
}

func stringValue(ctx context.Context, key ctxKey) string {
	s, _ := ctx.Value(key).(string)
	return s
}

// ContextWithRequestID returns a context carrying the request ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request ID, or "".
func RequestIDFromContext(ctx context.Context) string { return stringValue(ctx, requestIDKey) }

// ContextWithUserID tags ctx with the BookOptimal user the request acts on.
func ContextWithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromContext returns the user ID, or "".
func UserIDFromContext(ctx context.Context) string { return stringValue(ctx, userIDKey) }

// ContextWithLogger stores a logger in the context.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func ContextWithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext returns the stored logger, falling back to the process
// logger.
func LoggerFromContext(ctx context.Context) zerolog.Logger {
	if l, ok := ctx.Value(loggerKey).(zerolog.Logger); ok {
		return l
	}
	return Logger()
}

// Ctx is the logger handlers should use: the context's logger with
// request_id and user_id attached when known.
//
//	logging.Ctx(ctx).Info().Str("book_id", id).Msg("book added")
func Ctx(ctx context.Context) *zerolog.Logger {
	fields := make(map[string]interface{}, 2)
	if id := RequestIDFromContext(ctx); id != "" {
		fields["request_id"] = id
	}
	if id := UserIDFromContext(ctx); id != "" {
		fields["user_id"] = id
	}

	l := LoggerFromContext(ctx)
	if len(fields) > 0 {
		l = l.With().Fields(fields).Logger()
	}
	return &l
}
