// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tunedeck/tunedeck/internal/store"
)

// AdminStore persists the list of artist names configured for periodic
// ingestion. Mutated only by the administrative append-if-absent action.
type AdminStore struct {
	docs   store.Documents
	logger zerolog.Logger

	mu sync.Mutex
}

// NewAdminStore creates a tracked-artist store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewAdminStore(docs store.Documents, logger zerolog.Logger) *AdminStore {
	return &AdminStore{
		docs:   docs,
		logger: logger.With().Str("component", "admin").Logger(),
	}
}

// Artists returns the tracked artist names in configuration order. An
// absent or unreadable document reads as an empty list.
func (s *AdminStore) Artists(ctx context.Context) []string {
	var artists []string
	if err := s.docs.Load(ctx, store.KeyAdminArtists, &artists); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Warn().Err(err).Msg("artist list unreadable, treating as empty")
		}
		return nil
	}
	return artists
}

// TrackArtist appends name to the tracked list if absent. Returns true
// when the list changed.
func (s *AdminStore) TrackArtist(ctx context.Context, name string) (bool, error) {
	if name == "" {
		return false, errors.New("artist name required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	artists := s.Artists(ctx)
	for _, a := range artists {
		if a == name {
			return false, nil
		}
	}

	artists = append(artists, name)
	if err := s.docs.Save(ctx, store.KeyAdminArtists, artists); err != nil {
		return false, fmt.Errorf("rewrite artist list: %w", err)
	}

	s.logger.Info().Str("artist", name).Msg("artist tracked for ingestion")
	return true, nil
}
