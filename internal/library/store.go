// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package library

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/tomtom215/bookoptimal/internal/metrics"
	"github.com/tomtom215/bookoptimal/internal/recommend"
)

// DefaultUser is seeded into an empty store when Options.SeedDefaultUser is set.
var DefaultUser = User{ID: "1", Name: "Demo Reader", Email: "reader@example.com"}

// Options configures Open.
type Options struct {
	// Path is the Badger directory. Ignored when InMemory is true.
	Path string

	// InMemory keeps all data in RAM.
	InMemory bool

	// SeedDefaultUser creates DefaultUser if it does not exist.
	SeedDefaultUser bool

	// SyncWrites fsyncs every commit.
	SyncWrites bool

	Logger zerolog.Logger
}

// Store is the BadgerDB-backed library store. It holds users, their
// libraries, viewing history and personal ratings, and serves the
// recommendation engine as its DataProvider.
type Store struct {
	db       *badger.DB
	seq      *badger.Sequence
	logger   zerolog.Logger
	inMemory bool
	now      func() time.Time

	mu     sync.RWMutex
	closed bool
}

var _ recommend.DataProvider = (*Store)(nil)

// Open opens (or creates) the store.
//
//nolint:gocritic // Options carries a zerolog.Logger, passed by value by design
func Open(opts Options) (*Store, error) {
	path := opts.Path
	if opts.InMemory {
		path = ""
	}

	bopts := badger.DefaultOptions(path).
		WithInMemory(opts.InMemory).
		WithSyncWrites(opts.SyncWrites).
		WithLogger(newBadgerLogger(opts.Logger))

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	seq, err := db.GetSequence([]byte(sequenceKey), sequenceBandwidth)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open sequence: %w", err)
	}

	s := &Store{
		db:       db,
		seq:      seq,
		logger:   opts.Logger.With().Str("component", "library").Logger(),
		inMemory: opts.InMemory,
		now:      time.Now,
	}

	if opts.SeedDefaultUser {
		if err := s.seedDefaultUser(context.Background()); err != nil {
			_ = s.Close()
			return nil, err
		}
	}

	s.logger.Info().
		Str("path", path).
		Bool("in_memory", opts.InMemory).
		Msg("Library store opened")
	return s, nil
}

func (s *Store) seedDefaultUser(ctx context.Context) error {
	_, err := s.CreateUser(ctx, DefaultUser)
	if errors.Is(err, ErrUserExists) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed default user: %w", err)
	}
	s.logger.Info().Str("user_id", DefaultUser.ID).Msg("Seeded default user")
	return nil
}

// Close releases the sequence lease and closes the database. It is safe to
// call more than once.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if err := s.seq.Release(); err != nil {
		errs = append(errs, fmt.Errorf("release sequence: %w", err))
	}
	if err := s.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close badger: %w", err))
	}
	return errors.Join(errs...)
}

// RunGC rewrites value log files until Badger reports nothing left to
// reclaim. It is a no-op for in-memory stores.
func (s *Store) RunGC(discardRatio float64) error {
	if err := s.check(context.Background()); err != nil {
		return err
	}
	if s.inMemory {
		return nil
	}

	for {
		err := s.db.RunValueLogGC(discardRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run value log gc: %w", err)
		}
	}
}

// check fails fast on cancelled contexts and closed stores.
func (s *Store) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

// record counts an operation in Prometheus and returns err unchanged.
func record(op string, err error) error {
	metrics.RecordLibraryOperation(op, err)
	return err
}

// userExists must run inside a transaction.
func userExists(txn *badger.Txn, userID string) error {
	_, err := txn.Get(userKey(userID))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	return nil
}
