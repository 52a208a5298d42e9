// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package catalog

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/tomtom215/bookoptimal/internal/recommend"
)

// Book is a formatted catalog entry.
type Book = recommend.Item

// DefaultCoversURL is the Open Library covers host.
const DefaultCoversURL = "https://covers.openlibrary.org"

// Placeholders for missing document fields.
const (
	UnknownTitle  = "Unknown Title"
	UnknownAuthor = "Unknown Author"
	UnknownGenre  = "Unknown Genre"
)

// Synthetic attributes. Open Library has no position or quality score, so
// both are drawn from rng: X and Y in [70, 99], rating in [3.5, 5.0).
const (
	positionBase   = 70
	positionSpread = 30
	ratingBase     = 3.5
	ratingSpread   = 1.5
	genreSubjects  = 3
	worksKeyPrefix = "/works/"
	bookIDPrefix   = "ol-"
)

// FormatBooks converts Open Library documents into books, drawing synthetic
// position and rating from rng.
func FormatBooks(docs []Doc, rng *rand.Rand) []Book {
	return formatBooks(docs, DefaultCoversURL, rng)
}

func formatBooks(docs []Doc, coversURL string, rng *rand.Rand) []Book {
	coversURL = strings.TrimRight(coversURL, "/")
	books := make([]Book, 0, len(docs))
	for i := range docs {
		books = append(books, formatBook(&docs[i], coversURL, rng))
	}
	return books
}

func formatBook(d *Doc, coversURL string, rng *rand.Rand) Book {
	b := Book{
		ID:     bookIDPrefix + strings.Replace(d.Key, worksKeyPrefix, "", 1),
		Title:  d.Title,
		Author: strings.Join(d.AuthorName, ", "),
		Year:   d.FirstPublishYear,
		X:      float64(positionBase + rng.Intn(positionSpread)),
		Y:      float64(positionBase + rng.Intn(positionSpread)),
		Rating: ratingBase + rng.Float64()*ratingSpread,
		OLKey:  d.Key,
	}

	if b.Title == "" {
		b.Title = UnknownTitle
	}
	if len(d.AuthorName) == 0 {
		b.Author = UnknownAuthor
	}

	if len(d.Subject) == 0 {
		b.Genre = UnknownGenre
	} else {
		n := min(len(d.Subject), genreSubjects)
		b.Genre = strings.Join(d.Subject[:n], ", ")
	}

	if d.CoverI != 0 {
		b.Cover = fmt.Sprintf("%s/b/id/%d-M.jpg", coversURL, d.CoverI)
	}
	return b
}
