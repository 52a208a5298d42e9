// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

// Package library is the BadgerDB-backed store for readers, their book
// libraries, viewing history and personal ratings.
//
// Store implements recommend.DataProvider, so the engine reads libraries and
// history straight from Badger:
//
//	store, err := library.Open(library.Options{Path: "/data/library", SeedDefaultUser: true, Logger: logger})
//	engine.SetDataProvider(store)
//
// Values are JSON encoded with goccy/go-json. Writes that touch more than one
// key (library entry plus its index) happen in a single Badger transaction.
//
// Reads for an unknown user return empty results. Writes for an unknown user
// return ErrUserNotFound.
package library
