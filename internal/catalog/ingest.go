// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

package catalog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tunedeck/tunedeck/internal/metrics"
	"github.com/tunedeck/tunedeck/internal/models"
	"github.com/tunedeck/tunedeck/internal/provider"
)

// Ingestor pulls an artist's full catalog from the provider and merges new
// tracks into the track store. Safe to run concurrently with itself for
// the same artist: the store's dedup-by-ID append makes the outcome
// correct, only the provider work is duplicated.
type Ingestor struct {
	tracks  *TrackStore
	catalog provider.Catalog
	logger  zerolog.Logger
}

// NewIngestor creates an ingestor writing into the given track store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewIngestor(tracks *TrackStore, catalog provider.Catalog, logger zerolog.Logger) *Ingestor {
	return &Ingestor{
		tracks:  tracks,
		catalog: catalog,
		logger:  logger.With().Str("component", "ingest").Logger(),
	}
}

// Ingest fetches artistName's full track listing and appends the tracks
// not yet in the store, in one batch. No matching artist is a logged
// no-op; a provider error aborts the whole run without partial writes.
// Returns the number of tracks added.
func (i *Ingestor) Ingest(ctx context.Context, artistName string) (int, error) {
	log := i.logger.With().Str("artist", artistName).Logger()

	results, err := i.catalog.Search(ctx, artistName, provider.FilterArtists)
	if err != nil {
		metrics.IngestRuns.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("search artist %q: %w", artistName, err)
	}
	if len(results) == 0 {
		metrics.IngestRuns.WithLabelValues("no_match").Inc()
		log.Info().Msg("no matching artist found")
		return 0, nil
	}

	details, err := i.catalog.GetArtist(ctx, results[0].ID)
	if err != nil {
		metrics.IngestRuns.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("fetch artist %q: %w", artistName, err)
	}

	known := models.TrackIDSet(trackIDs(i.tracks.All(ctx)))

	batch := make([]models.Track, 0, len(details.Songs))
	for _, song := range details.Songs {
		if song.ID == "" {
			continue
		}
		if _, ok := known[song.ID]; ok {
			continue
		}
		batch = append(batch, trackFromResult(song, true))
		known[song.ID] = struct{}{}
	}

	if len(batch) == 0 {
		metrics.IngestRuns.WithLabelValues("ok").Inc()
		log.Info().Msg("no new tracks")
		return 0, nil
	}

	added, err := i.tracks.AppendAll(ctx, batch)
	if err != nil {
		metrics.IngestRuns.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("append tracks for %q: %w", artistName, err)
	}

	metrics.IngestRuns.WithLabelValues("ok").Inc()
	log.Info().Int("added", added).Msg("artist catalog ingested")
	return added, nil
}

// trackIDs extracts the ID of every track.
func trackIDs(tracks []models.Track) []string {
	ids := make([]string, len(tracks))
	for i, t := range tracks {
		ids[i] = t.ID
	}
	return ids
}
