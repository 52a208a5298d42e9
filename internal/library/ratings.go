// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package library

import (
	"context"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// RateBook stores the user's 1-5 rating for a book in their library,
// replacing any earlier rating.
func (s *Store) RateBook(ctx context.Context, userID, bookID string, value int) (*Rating, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	if value < MinRating || value > MaxRating {
		return nil, record("rate_book", ErrInvalidRating)
	}

	rating := Rating{UserID: userID, BookID: bookID, Value: value, RatedAt: s.now().UTC()}
	data, err := json.Marshal(rating)
	if err != nil {
		return nil, fmt.Errorf("marshal rating: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := userExists(txn, userID); err != nil {
			return err
		}
		var entry libraryEntry
		if err := getLibraryEntry(txn, userID, bookID, &entry); err != nil {
			return err
		}
		return txn.Set(ratingKey(userID, bookID), data)
	})
	if err != nil {
		return nil, record("rate_book", err)
	}

	_ = record("rate_book", nil)
	return &rating, nil
}

// GetRatings returns the user's ratings keyed by book ID.
func (s *Store) GetRatings(ctx context.Context, userID string) (map[string]int, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}

	var ratings map[string]int
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		ratings, err = scanRatings(txn, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

// scanRatings must run inside a transaction.
func scanRatings(txn *badger.Txn, userID string) (map[string]int, error) {
	prefix := ratingPrefix(userID)
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	it := txn.NewIterator(opts)
	defer it.Close()

	ratings := make(map[string]int)
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()
		bookID := strings.TrimPrefix(string(item.Key()), string(prefix))

		var r Rating
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &r)
		}); err != nil {
			return nil, fmt.Errorf("decode rating: %w", err)
		}
		ratings[bookID] = r.Value
	}
	return ratings, nil
}
