// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Load when no document exists under the key.
var ErrNotFound = errors.New("document not found")

// Documents is the persistence contract consumed by the catalog and
// activity packages: whole-document reads and atomic whole-document
// replacement of JSON values.
type Documents interface {
	// Load unmarshals the document stored under key into v.
	// Returns ErrNotFound when no document exists.
	Load(ctx context.Context, key string, v any) error

	// Save marshals v and atomically replaces the document under key.
	Save(ctx context.Context, key string, v any) error
}

// Document key construction. User names are embedded verbatim; they are
// validated at the boundary before reaching this layer.
const (
	KeyCatalogTracks  = "catalog:tracks"
	KeyCatalogPopular = "catalog:popular"
	KeyAdminArtists   = "admin:artists"
)

// UserHistoryKey returns the document key for a user's play history.
func UserHistoryKey(user string) string {
	return fmt.Sprintf("user:%s:history", user)
}

// UserLibraryKey returns the document key for a user's likes and playlists.
func UserLibraryKey(user string) string {
	return fmt.Sprintf("user:%s:library", user)
}
