// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

package catalog

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tunedeck/tunedeck/internal/metrics"
	"github.com/tunedeck/tunedeck/internal/models"
	"github.com/tunedeck/tunedeck/internal/provider"
)

// Resolver finds track metadata across local and external sources with a
// fixed precedence: track store, then popularity feed, then the provider's
// on-demand song lookup. First hit wins, so a track store entry shadows a
// divergent popularity copy of the same ID.
type Resolver struct {
	tracks  *TrackStore
	popular *PopularityFeed
	catalog provider.Catalog
	logger  zerolog.Logger
}

// NewResolver creates a resolver over the given sources.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewResolver(tracks *TrackStore, popular *PopularityFeed, catalog provider.Catalog, logger zerolog.Logger) *Resolver {
	return &Resolver{
		tracks:  tracks,
		popular: popular,
		catalog: catalog,
		logger:  logger.With().Str("component", "resolver").Logger(),
	}
}

// Resolve returns metadata for trackID, or ErrTrackNotFound when every
// source misses or the provider call fails. Resolve never mutates any
// store; cache fill is the Describe caller path's decision.
func (r *Resolver) Resolve(ctx context.Context, trackID string) (models.Track, error) {
	if t, err := r.tracks.Get(ctx, trackID); err == nil {
		metrics.ResolverLookups.WithLabelValues("store").Inc()
		return t, nil
	}

	if t, err := r.popular.Get(ctx, trackID); err == nil {
		metrics.ResolverLookups.WithLabelValues("popular").Inc()
		return t, nil
	}

	song, err := r.catalog.GetSong(ctx, trackID)
	if err != nil || song == nil || song.ID == "" {
		metrics.ResolverLookups.WithLabelValues("miss").Inc()
		if err != nil {
			r.logger.Debug().Str("track_id", trackID).Err(err).Msg("provider lookup failed")
		}
		return models.Track{}, ErrTrackNotFound
	}

	metrics.ResolverLookups.WithLabelValues("provider").Inc()
	return trackFromSong(song), nil
}

// Describe is the caller-facing song details operation. It resolves like
// Resolve, and when the result came from the provider it persists the
// track into the track store (stamped with LastUpdated) as a caching side
// effect. A cache write failure is logged, not surfaced: the details are
// still good.
func (r *Resolver) Describe(ctx context.Context, trackID string) (models.Track, error) {
	if t, err := r.tracks.Get(ctx, trackID); err == nil {
		metrics.ResolverLookups.WithLabelValues("store").Inc()
		return t, nil
	}

	if t, err := r.popular.Get(ctx, trackID); err == nil {
		metrics.ResolverLookups.WithLabelValues("popular").Inc()
		return t, nil
	}

	song, err := r.catalog.GetSong(ctx, trackID)
	if err != nil || song == nil || song.ID == "" {
		metrics.ResolverLookups.WithLabelValues("miss").Inc()
		return models.Track{}, ErrTrackNotFound
	}

	metrics.ResolverLookups.WithLabelValues("provider").Inc()

	t := trackFromSong(song)
	now := time.Now()
	t.LastUpdated = &now

	if _, err := r.tracks.AppendAll(ctx, []models.Track{t}); err != nil {
		r.logger.Warn().Str("track_id", trackID).Err(err).Msg("failed to cache resolved track")
	}

	return t, nil
}
