// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package algorithms

import (
	"math/rand"
	"sort"
	"testing"
)

// testBook is a minimal Candidate used across the package tests.
type testBook struct {
	id     string
	rating float64
	genre  string
	x, y   float64
}

func (b testBook) Score() float64   { return b.rating }
func (b testBook) Position() Point  { return Point{X: b.x, Y: b.y} }
func (b testBook) Key() string      { return b.id }
func (b testBook) Category() string { return b.genre }

func sampleBooks() []testBook {
	return []testBook{
		{id: "a", rating: 3.1, genre: "Fiction", x: 70, y: 71},
		{id: "b", rating: 4.9, genre: "Fantasy", x: 90, y: 95},
		{id: "c", rating: 2.0, genre: "Fiction", x: 80, y: 80},
		{id: "d", rating: 4.2, genre: "Mystery", x: 75, y: 99},
		{id: "e", rating: 3.7, genre: "Fiction", x: 85, y: 72},
	}
}

func ids(books []testBook) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.id
	}
	return out
}

func descending(books []testBook) []testBook {
	sorted := make([]testBook, len(books))
	copy(sorted, books)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].rating > sorted[j].rating })
	return sorted
}

// --- Test: Select ---

func TestSelect(t *testing.T) {
	t.Parallel()

	books := sampleBooks()

	tests := []struct {
		name   string
		k      int
		wantID string
		wantOK bool
	}{
		{name: "highest", k: 0, wantID: "b", wantOK: true},
		{name: "second", k: 1, wantID: "d", wantOK: true},
		{name: "lowest", k: 4, wantID: "c", wantOK: true},
		{name: "negative rank", k: -1, wantOK: false},
		{name: "rank equal to length", k: 5, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := Select(books, tt.k)
			if ok != tt.wantOK {
				t.Fatalf("Select(k=%d) ok = %v, want %v", tt.k, ok, tt.wantOK)
			}
			if ok && got.id != tt.wantID {
				t.Errorf("Select(k=%d) = %q, want %q", tt.k, got.id, tt.wantID)
			}
		})
	}
}

func TestSelect_EmptyInput(t *testing.T) {
	t.Parallel()

	if _, ok := Select([]testBook{}, 0); ok {
		t.Error("Select on empty input should fail")
	}
}

func TestSelect_StableTies(t *testing.T) {
	t.Parallel()

	books := []testBook{
		{id: "first", rating: 4.0},
		{id: "top", rating: 5.0},
		{id: "second", rating: 4.0},
		{id: "third", rating: 4.0},
	}

	want := []string{"top", "first", "second", "third"}
	for k, id := range want {
		got, ok := Select(books, k)
		if !ok || got.id != id {
			t.Errorf("Select(k=%d) = %q, want %q", k, got.id, id)
		}
	}
}

func TestSelect_MatchesSortedOrder(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7)) //nolint:gosec // deterministic test data
	for trial := 0; trial < 50; trial++ {
		books := randomBooks(rng, 1+rng.Intn(30))
		sorted := descending(books)
		for k := range books {
			got, ok := Select(books, k)
			if !ok || got.id != sorted[k].id {
				t.Fatalf("trial %d: Select(k=%d) = %q, want %q", trial, k, got.id, sorted[k].id)
			}
		}
	}
}

func TestSelect_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	books := sampleBooks()
	before := ids(books)

	Select(books, 2)

	after := ids(books)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("input mutated: before %v, after %v", before, after)
		}
	}
}

// --- Test: RandomizedSelect ---

func TestRandomizedSelect_Empty(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1)) //nolint:gosec // deterministic test data
	if _, ok := RandomizedSelect([]testBook{}, 0, rng); ok {
		t.Error("RandomizedSelect on empty input should fail")
	}
}

func TestRandomizedSelect_ClampsRank(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1)) //nolint:gosec // deterministic test data
	books := sampleBooks()

	tests := []struct {
		name   string
		k      int
		wantID string
	}{
		{name: "past the end clamps to lowest", k: 99, wantID: "c"},
		{name: "negative clamps to highest", k: -3, wantID: "b"},
		{name: "single element", k: 0, wantID: "b"},
	}

	for _, tt := range tests {
		input := books
		if tt.name == "single element" {
			input = books[1:2]
		}
		got, ok := RandomizedSelect(input, tt.k, rng)
		if !ok {
			t.Fatalf("%s: RandomizedSelect returned ok=false", tt.name)
		}
		if got.id != tt.wantID {
			t.Errorf("%s: got %q, want %q", tt.name, got.id, tt.wantID)
		}
	}
}

func TestRandomizedSelect_RankMatchesSortAcrossSeeds(t *testing.T) {
	t.Parallel()

	data := rand.New(rand.NewSource(99)) //nolint:gosec // deterministic test data
	for seed := int64(0); seed < 200; seed++ {
		rng := rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic test data
		books := randomBooks(data, 1+data.Intn(25))
		sorted := descending(books)
		k := data.Intn(len(books))

		got, ok := RandomizedSelect(books, k, rng)
		if !ok {
			t.Fatalf("seed %d: ok=false", seed)
		}
		if got.rating != sorted[k].rating {
			t.Fatalf("seed %d: rank %d rating = %v, want %v", seed, k, got.rating, sorted[k].rating)
		}
	}
}

func TestRandomizedSelect_DuplicateRatings(t *testing.T) {
	t.Parallel()

	books := []testBook{
		{id: "a", rating: 4}, {id: "b", rating: 4}, {id: "c", rating: 2},
		{id: "d", rating: 4}, {id: "e", rating: 5}, {id: "f", rating: 2},
	}
	want := []float64{5, 4, 4, 4, 2, 2}

	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic test data
		for k, rating := range want {
			got, _ := RandomizedSelect(books, k, rng)
			if got.rating != rating {
				t.Fatalf("seed %d: rank %d rating = %v, want %v", seed, k, got.rating, rating)
			}
		}
	}
}

func TestRandomizedSelect_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(3)) //nolint:gosec // deterministic test data
	books := sampleBooks()
	before := ids(books)

	for k := 0; k < len(books); k++ {
		RandomizedSelect(books, k, rng)
	}

	after := ids(books)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("input mutated: before %v, after %v", before, after)
		}
	}
}

func randomBooks(rng *rand.Rand, n int) []testBook {
	books := make([]testBook, n)
	for i := range books {
		books[i] = testBook{
			id:     string(rune('A'+i%26)) + string(rune('a'+i/26)),
			rating: float64(rng.Intn(41)) / 10,
			x:      70 + float64(rng.Intn(30)),
			y:      70 + float64(rng.Intn(30)),
		}
	}
	return books
}

func BenchmarkRandomizedSelect(b *testing.B) {
	rng := rand.New(rand.NewSource(42)) //nolint:gosec // benchmark data
	books := randomBooks(rng, 500)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		RandomizedSelect(books, 250, rng)
	}
}
