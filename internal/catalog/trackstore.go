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

	"github.com/tunedeck/tunedeck/internal/metrics"
	"github.com/tunedeck/tunedeck/internal/models"
	"github.com/tunedeck/tunedeck/internal/store"
)

// ErrTrackNotFound is returned when no source knows the requested track.
var ErrTrackNotFound = errors.New("track not found")

// TrackStore is the shared, process-wide track metadata cache. Tracks are
// appended by ingestion and on-demand caching, deduplicated by ID with
// first-seen wins, and never updated or deleted. Every batch append
// rewrites the whole backing document.
type TrackStore struct {
	docs   store.Documents
	logger zerolog.Logger

	// mu serializes read-modify-write append cycles so concurrent
	// ingestion triggers cannot lose each other's batches.
	mu sync.Mutex
}

// NewTrackStore creates a track store over the given document layer.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTrackStore(docs store.Documents, logger zerolog.Logger) *TrackStore {
	return &TrackStore{
		docs:   docs,
		logger: logger.With().Str("component", "trackstore").Logger(),
	}
}

// All returns every known track in store order. An absent or unreadable
// document degrades to an empty store, never an error.
func (s *TrackStore) All(ctx context.Context) []models.Track {
	var tracks []models.Track
	if err := s.docs.Load(ctx, store.KeyCatalogTracks, &tracks); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Warn().Err(err).Msg("track store unreadable, treating as empty")
		}
		return nil
	}
	return tracks
}

// Get looks a track up by ID with a linear scan.
func (s *TrackStore) Get(ctx context.Context, trackID string) (models.Track, error) {
	for _, t := range s.All(ctx) {
		if t.ID == trackID {
			return t, nil
		}
	}
	return models.Track{}, ErrTrackNotFound
}

// AppendAll adds the tracks whose IDs are not already present, first-seen
// wins, and rewrites the store. Returns the number of tracks added.
func (s *TrackStore) AppendAll(ctx context.Context, tracks []models.Track) (int, error) {
	if len(tracks) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.All(ctx)
	seen := make(map[string]struct{}, len(existing))
	for _, t := range existing {
		seen[t.ID] = struct{}{}
	}

	added := 0
	for _, t := range tracks {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		existing = append(existing, t)
		seen[t.ID] = struct{}{}
		added++
	}

	if added == 0 {
		return 0, nil
	}

	if err := s.docs.Save(ctx, store.KeyCatalogTracks, existing); err != nil {
		return 0, fmt.Errorf("rewrite track store: %w", err)
	}

	metrics.IngestTracksAdded.Add(float64(added))
	metrics.CatalogSize.Set(float64(len(existing)))

	return added, nil
}
