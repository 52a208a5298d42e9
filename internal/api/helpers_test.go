// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/bookoptimal/internal/analytics"
	"github.com/tomtom215/bookoptimal/internal/catalog"
	"github.com/tomtom215/bookoptimal/internal/config"
	"github.com/tomtom215/bookoptimal/internal/library"
	"github.com/tomtom215/bookoptimal/internal/recommend"
)

var testRefreshedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// fakeCatalog is a hand-written BookCatalog.
type fakeCatalog struct {
	mu        sync.Mutex
	books     []catalog.Book
	searchErr error
	searches  []string
}

func (f *fakeCatalog) Books() []catalog.Book {
	return append([]catalog.Book(nil), f.books...)
}

func (f *fakeCatalog) Find(id string) (catalog.Book, bool) {
	for _, b := range f.books {
		if b.ID == id {
			return b, true
		}
	}
	return catalog.Book{}, false
}

func (f *fakeCatalog) Search(_ context.Context, term string) ([]catalog.Book, error) {
	f.mu.Lock()
	f.searches = append(f.searches, term)
	f.mu.Unlock()

	if f.searchErr != nil {
		return nil, f.searchErr
	}
	out := []catalog.Book{}
	for _, b := range f.books {
		if strings.Contains(strings.ToLower(b.Title), strings.ToLower(term)) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeCatalog) RefreshedAt() time.Time {
	if len(f.books) == 0 {
		return time.Time{}
	}
	return testRefreshedAt
}

// recordingPublisher is a hand-written EventPublisher.
type recordingPublisher struct {
	mu     sync.Mutex
	events []*analytics.RecommendationsGenerated
	err    error
}

func (p *recordingPublisher) Publish(e *analytics.RecommendationsGenerated) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

// failingAnalytics is an AnalyticsStore whose database is gone.
type failingAnalytics struct{}

func (failingAnalytics) Summary(context.Context, string, []recommend.Item) (*analytics.Summary, error) {
	return nil, errors.New("duckdb closed")
}

func (failingAnalytics) Ping(context.Context) error { return errors.New("duckdb closed") }

func catalogBooks() []catalog.Book {
	return []catalog.Book{
		{ID: "ol-1", Title: "Dune", Author: "Frank Herbert", Year: 1965, Genre: "Science Fiction", Rating: 4.6, X: 80, Y: 90},
		{ID: "ol-2", Title: "Emma", Author: "Jane Austen", Year: 1815, Genre: "Romance", Rating: 4.1, X: 72, Y: 75},
		{ID: "ol-3", Title: "Ubik", Author: "Philip K. Dick", Year: 1969, Genre: "Science Fiction", Rating: 4.3, X: 85, Y: 88},
		{ID: "ol-4", Title: "Beloved", Author: "Toni Morrison", Year: 1987, Genre: "Literary", Rating: 3.9, X: 76, Y: 70},
	}
}

type testServer struct {
	handler   http.Handler
	api       *Handler
	store     *library.Store
	catalog   *fakeCatalog
	engine    *recommend.Engine
	publisher *recordingPublisher
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store, err := library.Open(library.Options{InMemory: true, SeedDefaultUser: true, Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("library.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	engine, err := recommend.NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	engine.SetDataProvider(store)

	cat := &fakeCatalog{books: catalogBooks()}
	pub := &recordingPublisher{}

	h := NewHandler(store, cat, engine, &config.Config{}, zerolog.Nop())
	h.SetEventPublisher(pub)
	h.SetVersion("test")
	h.now = func() time.Time { return testRefreshedAt }

	mw := NewChiMiddleware(&ChiMiddlewareConfig{RateLimitDisabled: true})
	router := NewRouter(h, mw, 5*time.Second, zerolog.Nop())

	return &testServer{
		handler:   router.SetupChi(),
		api:       h,
		store:     store,
		catalog:   cat,
		engine:    engine,
		publisher: pub,
	}
}

// envelope mirrors APIResponse with Data left raw.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") && rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode envelope: %v (body %s)", err, rec.Body.String())
		}
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data: %v (data %s)", err, env.Data)
	}
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, env envelope, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Errorf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	if env.Success {
		t.Error("success = true, want false")
	}
	if env.Error == nil {
		t.Fatal("error = nil")
	}
	if env.Error.Code != code {
		t.Errorf("error.code = %s, want %s", env.Error.Code, code)
	}
}

// addBooks puts the catalog books with the given IDs into user 1's library.
func (s *testServer) addBooks(t *testing.T, ids ...string) {
	t.Helper()
	for _, id := range ids {
		rec, _ := s.do(t, http.MethodPost, "/api/v1/users/1/library", map[string]string{"book_id": id})
		if rec.Code != http.StatusCreated {
			t.Fatalf("add %s: status %d (body %s)", id, rec.Code, rec.Body.String())
		}
	}
}
