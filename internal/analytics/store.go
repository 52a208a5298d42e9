// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package analytics

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/rs/zerolog"

	"github.com/tomtom215/bookoptimal/internal/metrics"
	"github.com/tomtom215/bookoptimal/internal/recommend"
	"github.com/tomtom215/bookoptimal/internal/recommend/algorithms"
)

// MemoryPath opens a DuckDB database that lives only in RAM.
const MemoryPath = ":memory:"

// schema is applied statement by statement on Open.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS recommendation_runs (
		event_id   VARCHAR PRIMARY KEY,
		user_id    VARCHAR NOT NULL,
		item_count INTEGER NOT NULL,
		cached     BOOLEAN NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS recommendation_events (
		event_id   VARCHAR NOT NULL,
		item_index INTEGER NOT NULL,
		user_id    VARCHAR NOT NULL,
		algorithm  VARCHAR NOT NULL,
		cached     BOOLEAN NOT NULL,
		created_at TIMESTAMP NOT NULL,
		PRIMARY KEY (event_id, item_index)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_recommendation_events_user ON recommendation_events (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_recommendation_runs_user ON recommendation_runs (user_id)`,
}

// Store persists recommendation events in DuckDB and answers per-user
// analytics queries.
type Store struct {
	db           *sql.DB
	queryTimeout time.Duration
	logger       zerolog.Logger
}

// Preferences is the user's preference center on the X/Y plane.
type Preferences struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	HistorySize int     `json:"history_size"`
}

// Summary is the analytics view for one user.
type Summary struct {
	UserID          string         `json:"user_id"`
	Runs            int64          `json:"runs"`
	CachedRuns      int64          `json:"cached_runs"`
	LastRunAt       *time.Time     `json:"last_run_at,omitempty"`
	AlgorithmCounts map[string]int `json:"algorithm_counts"`
	Preferences     Preferences    `json:"preferences"`
}

// Open opens (or creates) the DuckDB file at path and applies the schema.
// Use MemoryPath for a throwaway database.
//
//nolint:gocritic // zerolog.Logger is passed by value throughout
func Open(ctx context.Context, path string, queryTimeout time.Duration, logger zerolog.Logger) (*Store, error) {
	if path != MemoryPath {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("create analytics directory %s: %w", dir, err)
			}
		}
	}

	dsn := path
	if path == MemoryPath {
		dsn = ""
	}
	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{
		db:           db,
		queryTimeout: queryTimeout,
		logger:       logger.With().Str("component", "analytics").Logger(),
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping duckdb: %w", err)
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create analytics schema: %w", err)
		}
	}

	s.logger.Info().Str("path", path).Msg("Analytics store opened")
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.db.PingContext(ctx)
}

// Record stores one event. Recording the same event twice is a no-op, so
// redelivered messages are safe.
func (s *Store) Record(ctx context.Context, e *RecommendationsGenerated) (err error) {
	start := time.Now()
	defer func() { metrics.RecordAnalyticsQuery("record", time.Since(start)) }()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO recommendation_runs (event_id, user_id, item_count, cached, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		e.EventID, e.UserID, e.Count, e.Cached, e.Timestamp)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	if n, rerr := res.RowsAffected(); rerr == nil && n == 0 {
		s.logger.Debug().Str("event_id", e.EventID).Msg("Duplicate recommendation event ignored")
		return tx.Commit()
	}

	for i, alg := range e.Algorithms {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO recommendation_events (event_id, item_index, user_id, algorithm, cached, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			e.EventID, i, e.UserID, alg, e.Cached, e.Timestamp); err != nil {
			return fmt.Errorf("insert event row: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit event: %w", err)
	}
	return nil
}

// AlgorithmCounts tallies recommended books per strategy tag for userID.
// Every tag is present, zero-filled.
func (s *Store) AlgorithmCounts(ctx context.Context, userID string) (map[string]int, error) {
	start := time.Now()
	defer func() { metrics.RecordAnalyticsQuery("algorithm_counts", time.Since(start)) }()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT algorithm, COUNT(*) FROM recommendation_events
		 WHERE user_id = ? GROUP BY algorithm`, userID)
	if err != nil {
		return nil, fmt.Errorf("query algorithm counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int, len(recommend.Algorithms))
	for _, a := range recommend.Algorithms {
		counts[a.String()] = 0
	}
	for rows.Next() {
		var (
			alg string
			n   int64
		)
		if err := rows.Scan(&alg, &n); err != nil {
			return nil, fmt.Errorf("scan algorithm count: %w", err)
		}
		counts[alg] = int(n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate algorithm counts: %w", err)
	}
	return counts, nil
}

// Summary combines stored run statistics with the preference center of the
// given history. An empty history yields the neutral point.
func (s *Store) Summary(ctx context.Context, userID string, history []recommend.Item) (*Summary, error) {
	counts, err := s.AlgorithmCounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() { metrics.RecordAnalyticsQuery("summary", time.Since(start)) }()

	qctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		runs, cached int64
		last         sql.NullTime
	)
	err = s.db.QueryRowContext(qctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE cached), MAX(created_at)
		 FROM recommendation_runs WHERE user_id = ?`, userID).Scan(&runs, &cached, &last)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("query run summary: %w", err)
	}

	center := algorithms.CentroidOf(history)
	out := &Summary{
		UserID:          userID,
		Runs:            runs,
		CachedRuns:      cached,
		AlgorithmCounts: counts,
		Preferences: Preferences{
			X:           center.X,
			Y:           center.Y,
			HistorySize: len(history),
		},
	}
	if last.Valid {
		t := last.Time.UTC()
		out.LastRunAt = &t
	}
	return out, nil
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}
