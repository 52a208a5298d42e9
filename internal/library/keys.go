// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package library

import (
	"fmt"
	"regexp"
	"time"
)

// Key layout. User IDs never contain ':' so "<prefix><user>:" is an exact
// per-user prefix. Numeric components are zero padded so that byte order
// equals numeric order.
//
//	user:<user>                          User
//	lib:<user>:<seq>                     libraryEntry, insertion order
//	libidx:<user>:<book>                 lib key of the book
//	hist:<user>:<unix-nanos>:<seq>       HistoryEntry, view order
//	rating:<user>:<book>                 Rating
const (
	userKeyPrefix     = "user:"
	libraryKeyPrefix  = "lib:"
	libIndexKeyPrefix = "libidx:"
	historyKeyPrefix  = "hist:"
	ratingKeyPrefix   = "rating:"

	sequenceKey       = "meta:seq"
	sequenceBandwidth = 128
)

var userIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// validUserID reports whether id is usable as a key component.
func validUserID(id string) bool {
	return userIDPattern.MatchString(id)
}

func userKey(userID string) []byte {
	return []byte(userKeyPrefix + userID)
}

func libraryPrefix(userID string) []byte {
	return []byte(libraryKeyPrefix + userID + ":")
}

func libraryKey(userID string, seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%s:%020d", libraryKeyPrefix, userID, seq))
}

func libIndexKey(userID, bookID string) []byte {
	return []byte(libIndexKeyPrefix + userID + ":" + bookID)
}

func historyPrefix(userID string) []byte {
	return []byte(historyKeyPrefix + userID + ":")
}

func historyKey(userID string, ts time.Time, seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%s:%020d:%020d", historyKeyPrefix, userID, ts.UnixNano(), seq))
}

func ratingPrefix(userID string) []byte {
	return []byte(ratingKeyPrefix + userID + ":")
}

func ratingKey(userID, bookID string) []byte {
	return []byte(ratingKeyPrefix + userID + ":" + bookID)
}

// prefixEnd returns a key greater than every key with prefix, for reverse
// iteration.
func prefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix)+1)
	copy(end, prefix)
	end[len(prefix)] = 0xFF
	return end
}
