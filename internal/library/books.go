// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package library

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// AddToLibrary appends book to the user's library. Adding a book whose ID is
// already present is a no-op and reports added=false.
//
//nolint:gocritic // Book is copied into the stored entry
func (s *Store) AddToLibrary(ctx context.Context, userID string, book Book) (added bool, err error) {
	if err := s.check(ctx); err != nil {
		return false, err
	}
	if book.ID == "" {
		return false, record("add_to_library", fmt.Errorf("%w: empty book id", ErrInvalidID))
	}

	seq, err := s.seq.Next()
	if err != nil {
		return false, fmt.Errorf("next sequence: %w", err)
	}

	data, err := json.Marshal(libraryEntry{Book: book, AddedAt: s.now().UTC()})
	if err != nil {
		return false, fmt.Errorf("marshal library entry: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := userExists(txn, userID); err != nil {
			return err
		}

		_, err := txn.Get(libIndexKey(userID, book.ID))
		if err == nil {
			return nil // already in the library
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("get library index: %w", err)
		}

		key := libraryKey(userID, seq)
		if err := txn.Set(key, data); err != nil {
			return fmt.Errorf("set library entry: %w", err)
		}
		if err := txn.Set(libIndexKey(userID, book.ID), key); err != nil {
			return fmt.Errorf("set library index: %w", err)
		}
		added = true
		return nil
	})
	if err != nil {
		return false, record("add_to_library", err)
	}

	_ = record("add_to_library", nil)
	return added, nil
}

// RemoveFromLibrary deletes the book from the user's library. Removing an
// absent book is a no-op and reports removed=false. History entries and the
// user's rating for the book are kept.
func (s *Store) RemoveFromLibrary(ctx context.Context, userID, bookID string) (removed bool, err error) {
	if err := s.check(ctx); err != nil {
		return false, err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := userExists(txn, userID); err != nil {
			return err
		}

		item, err := txn.Get(libIndexKey(userID, bookID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get library index: %w", err)
		}

		entryKey, err := item.ValueCopy(nil)
		if err != nil {
			return fmt.Errorf("read library index: %w", err)
		}
		if err := txn.Delete(entryKey); err != nil {
			return fmt.Errorf("delete library entry: %w", err)
		}
		if err := txn.Delete(libIndexKey(userID, bookID)); err != nil {
			return fmt.Errorf("delete library index: %w", err)
		}
		removed = true
		return nil
	})
	if err != nil {
		return false, record("remove_from_library", err)
	}

	_ = record("remove_from_library", nil)
	return removed, nil
}

// GetBook returns one book from the user's library, or ErrBookNotFound.
func (s *Store) GetBook(ctx context.Context, userID, bookID string) (*Book, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}

	var entry libraryEntry
	err := s.db.View(func(txn *badger.Txn) error {
		return getLibraryEntry(txn, userID, bookID, &entry)
	})
	if err != nil {
		return nil, err
	}
	return &entry.Book, nil
}

// GetUserLibrary returns the user's books in insertion order. Unknown users
// have an empty library.
func (s *Store) GetUserLibrary(ctx context.Context, userID string) ([]Book, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}

	var books []Book
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		books, err = scanLibrary(txn, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return books, nil
}

func getLibraryEntry(txn *badger.Txn, userID, bookID string, entry *libraryEntry) error {
	idx, err := txn.Get(libIndexKey(userID, bookID))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrBookNotFound
	}
	if err != nil {
		return fmt.Errorf("get library index: %w", err)
	}

	entryKey, err := idx.ValueCopy(nil)
	if err != nil {
		return fmt.Errorf("read library index: %w", err)
	}

	item, err := txn.Get(entryKey)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrBookNotFound
	}
	if err != nil {
		return fmt.Errorf("get library entry: %w", err)
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, entry)
	})
}

// scanLibrary must run inside a transaction.
func scanLibrary(txn *badger.Txn, userID string) ([]Book, error) {
	prefix := libraryPrefix(userID)
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	it := txn.NewIterator(opts)
	defer it.Close()

	books := []Book{}
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var entry libraryEntry
		if err := it.Item().Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		}); err != nil {
			return nil, fmt.Errorf("decode library entry: %w", err)
		}
		books = append(books, entry.Book)
	}
	return books, nil
}
