// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

// Package logging provides zerolog-based structured logging for BookOptimal.
//
// Production output is JSON. The console format is meant for development.
// Every line carries service=bookoptimal.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Str("addr", addr).Msg("HTTP server listening")
//	logging.Ctx(ctx).Warn().Err(err).Msg("catalog refresh failed")
//
// # Adapters
//
// Two libraries in the service want their own logger type:
//
//   - suture's event hook takes a *slog.Logger, see NewSlogLogger
//   - watermill takes a watermill.LoggerAdapter, see NewWatermillAdapter
//
// Both write through zerolog so that log levels and fields stay uniform.
package logging
