// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

// Package validation wraps go-playground/validator v10 with a shared
// instance and readable messages.
//
// Field names in messages come from the json tag (API payloads) or the koanf
// tag (configuration), falling back to the Go field name. Nested fields are
// reported with a dotted path such as "catalog.base_url".
//
// Custom rules:
//
//   - bookid: a book identifier that is safe as a URL path segment
//   - userid: letters, digits, '-' and '_' only, at most 64 characters
//
// Failures are returned as *Error, which the API renders as a
// VALIDATION_ERROR with Details().
package validation
