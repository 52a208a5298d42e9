// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package library

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// openLibraryBase prefixes a book's work key to form its public link.
const openLibraryBase = "https://openlibrary.org"

// ExportLibrary snapshots the user's library with their ratings. Library and
// ratings are read in one transaction.
func (s *Store) ExportLibrary(ctx context.Context, userID string) (*Export, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}

	var (
		books   []Book
		ratings map[string]int
	)
	err := s.db.View(func(txn *badger.Txn) error {
		if err := userExists(txn, userID); err != nil {
			return err
		}
		var err error
		if books, err = scanLibrary(txn, userID); err != nil {
			return err
		}
		ratings, err = scanRatings(txn, userID)
		return err
	})
	if err != nil {
		return nil, record("export_library", err)
	}

	out := &Export{
		Date:  s.now().UTC().Format(time.RFC3339),
		Count: len(books),
		Books: make([]ExportedBook, 0, len(books)),
	}
	for i := range books {
		b := &books[i]

		var year interface{} = b.Year
		if b.Year == 0 {
			year = UnknownYear
		}
		var rating interface{} = NotRated
		if r, ok := ratings[b.ID]; ok {
			rating = r
		}

		out.Books = append(out.Books, ExportedBook{
			Title:  b.Title,
			Author: b.Author,
			Year:   year,
			Genre:  b.Genre,
			Rating: rating,
			Link:   openLibraryBase + b.OLKey,
		})
	}

	_ = record("export_library", nil)
	return out, nil
}
