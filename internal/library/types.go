// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package library

import (
	"errors"
	"time"

	"github.com/tomtom215/bookoptimal/internal/recommend"
)

// Sentinel errors. Callers match them with errors.Is.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUserExists    = errors.New("user already exists")
	ErrBookNotFound  = errors.New("book not found in library")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	ErrInvalidID     = errors.New("invalid identifier")
	ErrClosed        = errors.New("library store is closed")
)

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// Book is the stored form of a catalog book. It is the engine's item type so
// that library reads feed the engine without conversion.
type Book = recommend.Item

// User is a reader.
type User struct {
	ID        string    `json:"id" validate:"omitempty,userid"`
	Name      string    `json:"name" validate:"required,max=200"`
	Email     string    `json:"email" validate:"omitempty,email"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryEntry records one view of a book.
type HistoryEntry struct {
	UserID    string    `json:"user_id"`
	BookID    string    `json:"book_id"`
	Timestamp time.Time `json:"timestamp"`
}

// Rating is a user's personal star rating of a book in their library. It is
// separate from Book.Rating, which is the catalog score the engine ranks by.
type Rating struct {
	UserID  string    `json:"user_id"`
	BookID  string    `json:"book_id"`
	Value   int       `json:"rating"`
	RatedAt time.Time `json:"rated_at"`
}

// libraryEntry is the value stored under a lib: key.
type libraryEntry struct {
	Book    Book      `json:"book"`
	AddedAt time.Time `json:"added_at"`
}

// Export is the downloadable snapshot of a user's library.
type Export struct {
	Date  string         `json:"date"`
	Count int            `json:"count"`
	Books []ExportedBook `json:"books"`
}

// ExportedBook is one book in an Export. Year is a number or "Unknown Year",
// Rating is the user's 1-5 rating or "not rated".
type ExportedBook struct {
	Title  string      `json:"title"`
	Author string      `json:"author"`
	Year   interface{} `json:"year"`
	Genre  string      `json:"genre"`
	Rating interface{} `json:"rating"`
	Link   string      `json:"link"`
}

// Export placeholders.
const (
	UnknownYear = "Unknown Year"
	NotRated    = "not rated"
)
