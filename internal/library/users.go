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
	"github.com/google/uuid"
)

// CreateUser stores a new user. An empty ID is replaced by a UUID. The
// stored user is returned.
//
//nolint:gocritic // User is small and copied on purpose
func (s *Store) CreateUser(ctx context.Context, user User) (*User, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if !validUserID(user.ID) {
		return nil, record("create_user", fmt.Errorf("%w: user id %q", ErrInvalidID, user.ID))
	}
	user.CreatedAt = s.now().UTC()

	data, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("marshal user: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(userKey(user.ID))
		if err == nil {
			return ErrUserExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("get user: %w", err)
		}
		return txn.Set(userKey(user.ID), data)
	})
	if err != nil {
		return nil, record("create_user", err)
	}

	_ = record("create_user", nil)
	return &user, nil
}

// GetUser returns the user or ErrUserNotFound.
func (s *Store) GetUser(ctx context.Context, userID string) (*User, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}

	var user User
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userKey(userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &user)
		})
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns all users ordered by ID.
func (s *Store) ListUsers(ctx context.Context) ([]User, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}

	users := []User{}
	err := s.db.View(func(txn *badger.Txn) error {
		prefix := []byte(userKeyPrefix)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var user User
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &user)
			}); err != nil {
				return fmt.Errorf("decode user: %w", err)
			}
			users = append(users, user)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}
