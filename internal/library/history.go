// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package library

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// AddToHistory records that the user viewed bookID. The book does not have
// to be in the library; entries that do not resolve against the library are
// skipped by GetUserHistory and GetLastViewed but still count towards
// HistoryLength.
func (s *Store) AddToHistory(ctx context.Context, userID, bookID string) (*HistoryEntry, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	if bookID == "" {
		return nil, record("add_to_history", fmt.Errorf("%w: empty book id", ErrInvalidID))
	}

	seq, err := s.seq.Next()
	if err != nil {
		return nil, fmt.Errorf("next sequence: %w", err)
	}

	entry := HistoryEntry{UserID: userID, BookID: bookID, Timestamp: s.now().UTC()}
	data, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("marshal history entry: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := userExists(txn, userID); err != nil {
			return err
		}
		return txn.Set(historyKey(userID, entry.Timestamp, seq), data)
	})
	if err != nil {
		return nil, record("add_to_history", err)
	}

	_ = record("add_to_history", nil)
	return &entry, nil
}

// GetHistoryEntries returns the raw history in view order.
func (s *Store) GetHistoryEntries(ctx context.Context, userID string) ([]HistoryEntry, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}

	var entries []HistoryEntry
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		entries, err = scanHistory(txn, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// GetUserHistory resolves each history entry against the user's library, in
// view order. A book viewed twice appears twice. Entries whose book is not
// in the library are dropped.
func (s *Store) GetUserHistory(ctx context.Context, userID string) ([]Book, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}

	var books []Book
	err := s.db.View(func(txn *badger.Txn) error {
		entries, err := scanHistory(txn, userID)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			books = []Book{}
			return nil
		}

		lib, err := scanLibrary(txn, userID)
		if err != nil {
			return err
		}
		byID := make(map[string]Book, len(lib))
		for _, b := range lib {
			byID[b.ID] = b
		}

		books = make([]Book, 0, len(entries))
		for _, e := range entries {
			if b, ok := byID[e.BookID]; ok {
				books = append(books, b)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return books, nil
}

// GetLastViewed resolves the most recent history entry against the library.
// It returns nil when the history is empty or the latest book is no longer
// in the library; earlier entries are not consulted.
func (s *Store) GetLastViewed(ctx context.Context, userID string) (*Book, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}

	var book *Book
	err := s.db.View(func(txn *badger.Txn) error {
		prefix := historyPrefix(userID)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		it.Seek(prefixEnd(prefix))
		if !it.ValidForPrefix(prefix) {
			return nil
		}

		var latest HistoryEntry
		if err := it.Item().Value(func(val []byte) error {
			return json.Unmarshal(val, &latest)
		}); err != nil {
			return fmt.Errorf("decode history entry: %w", err)
		}

		var entry libraryEntry
		err := getLibraryEntry(txn, userID, latest.BookID, &entry)
		if err == ErrBookNotFound { //nolint:errorlint // sentinel returned unwrapped
			return nil
		}
		if err != nil {
			return err
		}
		book = &entry.Book
		return nil
	})
	if err != nil {
		return nil, err
	}
	return book, nil
}

// HistoryLength counts the user's history entries, resolved or not. The
// engine keys its cache on this value.
func (s *Store) HistoryLength(ctx context.Context, userID string) (int, error) {
	if err := s.check(ctx); err != nil {
		return 0, err
	}

	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		prefix := historyPrefix(userID)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			n++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// scanHistory must run inside a transaction.
func scanHistory(txn *badger.Txn, userID string) ([]HistoryEntry, error) {
	prefix := historyPrefix(userID)
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	it := txn.NewIterator(opts)
	defer it.Close()

	entries := []HistoryEntry{}
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var e HistoryEntry
		if err := it.Item().Value(func(val []byte) error {
			return json.Unmarshal(val, &e)
		}); err != nil {
			return nil, fmt.Errorf("decode history entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
