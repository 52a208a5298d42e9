// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package library

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestRateBook(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, _ = s.AddToLibrary(ctx, "1", book("a", 4.2, 80, 80))

	tests := []struct {
		name    string
		bookID  string
		value   int
		wantErr error
	}{
		{"valid", "a", 5, nil},
		{"overwrite", "a", 3, nil},
		{"too low", "a", 0, ErrInvalidRating},
		{"too high", "a", 6, ErrInvalidRating},
		{"not in library", "zzz", 4, ErrBookNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.RateBook(ctx, "1", tt.bookID, tt.value)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("RateBook() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	ratings, err := s.GetRatings(ctx, "1")
	if err != nil {
		t.Fatalf("GetRatings() error = %v", err)
	}
	if len(ratings) != 1 || ratings["a"] != 3 {
		t.Errorf("GetRatings() = %v, want map[a:3]", ratings)
	}

	// Personal ratings never touch the catalog score.
	b, _ := s.GetBook(ctx, "1", "a")
	if b.Rating != 4.2 {
		t.Errorf("book rating = %v, want 4.2", b.Rating)
	}
}

func TestRateBook_UnknownUser(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.RateBook(context.Background(), "ghost", "a", 3); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("RateBook() error = %v, want ErrUserNotFound", err)
	}
}

func TestRemoveFromLibrary_KeepsRating(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, _ = s.AddToLibrary(ctx, "1", book("a", 4, 80, 80))
	_, _ = s.RateBook(ctx, "1", "a", 4)
	_, _ = s.RemoveFromLibrary(ctx, "1", "a")

	ratings, _ := s.GetRatings(ctx, "1")
	if ratings["a"] != 4 {
		t.Errorf("rating after removal = %v, want 4", ratings["a"])
	}
}

func TestExportLibrary(t *testing.T) {
	s := newTestStore(t)
	s.now = func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC) }
	ctx := context.Background()

	rated := book("rated", 4, 80, 80)
	undated := book("undated", 4, 80, 80)
	undated.Year = 0
	_, _ = s.AddToLibrary(ctx, "1", rated)
	_, _ = s.AddToLibrary(ctx, "1", undated)
	_, _ = s.RateBook(ctx, "1", "rated", 5)

	exp, err := s.ExportLibrary(ctx, "1")
	if err != nil {
		t.Fatalf("ExportLibrary() error = %v", err)
	}
	if exp.Date != "2026-03-04T05:06:07Z" {
		t.Errorf("Date = %q", exp.Date)
	}
	if exp.Count != 2 || len(exp.Books) != 2 {
		t.Fatalf("Count = %d, books = %d; want 2", exp.Count, len(exp.Books))
	}

	first := exp.Books[0]
	if first.Year != 1990 || first.Rating != 5 {
		t.Errorf("first = %+v, want year 1990 rating 5", first)
	}
	if first.Link != "https://openlibrary.org/works/rated" {
		t.Errorf("Link = %q", first.Link)
	}

	second := exp.Books[1]
	if second.Year != UnknownYear || second.Rating != NotRated {
		t.Errorf("second = %+v, want placeholders", second)
	}

	data, err := json.Marshal(exp)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if _, ok := decoded["books"]; !ok {
		t.Error("export JSON missing books")
	}
}

func TestExportLibrary_UnknownUser(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.ExportLibrary(context.Background(), "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("ExportLibrary() error = %v, want ErrUserNotFound", err)
	}
}
