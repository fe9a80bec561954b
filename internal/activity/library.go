// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

package activity

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tunedeck/tunedeck/internal/models"
	"github.com/tunedeck/tunedeck/internal/store"
)

// ErrPlaylistNotFound is returned when a playlist ID does not exist for
// the user.
var ErrPlaylistNotFound = errors.New("playlist not found")

// Library manages each user's liked songs and playlists, persisted as a
// single document per user and created lazily on the first write.
type Library struct {
	docs   store.Documents
	logger zerolog.Logger

	mu sync.Mutex
}

// NewLibrary creates a library store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewLibrary(docs store.Documents, logger zerolog.Logger) *Library {
	return &Library{
		docs:   docs,
		logger: logger.With().Str("component", "library").Logger(),
	}
}

// Get returns the user's library. Missing or unreadable documents read as
// the empty library.
func (l *Library) Get(ctx context.Context, user string) models.Library {
	var lib models.Library
	if err := l.docs.Load(ctx, store.UserLibraryKey(user), &lib); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			l.logger.Warn().Str("user", user).Err(err).Msg("library unreadable, treating as empty")
		}
		return models.Library{}
	}
	return lib
}

// ToggleLike flips the liked state of trackID for the user and reports
// the new state.
func (l *Library) ToggleLike(ctx context.Context, user, trackID string) (bool, error) {
	if trackID == "" {
		return false, errors.New("track id required")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	lib := l.Get(ctx, user)

	liked := true
	if lib.Likes(trackID) {
		kept := lib.LikedSongs[:0]
		for _, id := range lib.LikedSongs {
			if id != trackID {
				kept = append(kept, id)
			}
		}
		lib.LikedSongs = kept
		liked = false
	} else {
		lib.LikedSongs = append(lib.LikedSongs, trackID)
	}

	if err := l.save(ctx, user, lib); err != nil {
		return false, err
	}
	return liked, nil
}

// IsLiked reports whether the user has liked trackID.
func (l *Library) IsLiked(ctx context.Context, user, trackID string) bool {
	return l.Get(ctx, user).Likes(trackID)
}

// LikedSongs returns the user's liked track IDs.
func (l *Library) LikedSongs(ctx context.Context, user string) []string {
	return l.Get(ctx, user).LikedSongs
}

// CreatePlaylist appends a new empty playlist to the user's library and
// returns it. IDs keep the pl_ prefix with a UUID body, so creation
// cannot collide even within the same second.
func (l *Library) CreatePlaylist(ctx context.Context, user, name string) (models.Playlist, error) {
	if name == "" {
		return models.Playlist{}, errors.New("playlist name required")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	lib := l.Get(ctx, user)

	pl := models.Playlist{
		ID:    "pl_" + uuid.NewString(),
		Name:  name,
		Songs: []string{},
	}
	lib.Playlists = append(lib.Playlists, pl)

	if err := l.save(ctx, user, lib); err != nil {
		return models.Playlist{}, err
	}

	l.logger.Info().Str("user", user).Str("playlist", pl.ID).Msg("playlist created")
	return pl, nil
}

// Playlists returns the user's playlists in creation order.
func (l *Library) Playlists(ctx context.Context, user string) []models.Playlist {
	return l.Get(ctx, user).Playlists
}

// Playlist returns the user's playlist with the given ID.
func (l *Library) Playlist(ctx context.Context, user, playlistID string) (models.Playlist, error) {
	for _, p := range l.Get(ctx, user).Playlists {
		if p.ID == playlistID {
			return p, nil
		}
	}
	return models.Playlist{}, ErrPlaylistNotFound
}

// AddSong appends trackID to the playlist. Idempotent: a track already
// present is not re-added.
func (l *Library) AddSong(ctx context.Context, user, playlistID, trackID string) error {
	if trackID == "" {
		return errors.New("track id required")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	lib := l.Get(ctx, user)

	for i := range lib.Playlists {
		if lib.Playlists[i].ID != playlistID {
			continue
		}
		if lib.Playlists[i].Contains(trackID) {
			return nil
		}
		lib.Playlists[i].Songs = append(lib.Playlists[i].Songs, trackID)
		return l.save(ctx, user, lib)
	}

	return ErrPlaylistNotFound
}

// save rewrites the user's library document.
func (l *Library) save(ctx context.Context, user string, lib models.Library) error {
	if err := l.docs.Save(ctx, store.UserLibraryKey(user), lib); err != nil {
		return fmt.Errorf("rewrite library for %s: %w", user, err)
	}
	return nil
}
