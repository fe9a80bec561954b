// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tunedeck/tunedeck/internal/activity"
	"github.com/tunedeck/tunedeck/internal/catalog"
	"github.com/tunedeck/tunedeck/internal/config"
	"github.com/tunedeck/tunedeck/internal/models"
	"github.com/tunedeck/tunedeck/internal/provider"
	"github.com/tunedeck/tunedeck/internal/recommend"
	"github.com/tunedeck/tunedeck/internal/store"
)

// App bundles the Tunedeck domain components behind one surface.
type App struct {
	Tracks   *catalog.TrackStore
	Popular  *catalog.PopularityFeed
	Admin    *catalog.AdminStore
	Resolver *catalog.Resolver
	Ingestor *catalog.Ingestor
	History  *activity.History
	Library  *activity.Library
	Engine   *recommend.Engine

	upstream    provider.Catalog
	searchLimit int
	logger      zerolog.Logger
}

// New wires the domain components over the given document store and
// catalog provider. The provider is expected to already carry its
// circuit breaker.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(cfg *config.Config, docs store.Documents, upstream provider.Catalog, logger zerolog.Logger) (*App, error) {
	tracks := catalog.NewTrackStore(docs, logger)
	popular := catalog.NewPopularityFeed(docs, upstream, cfg.Popular.ChartKind, cfg.Popular.ChartSize, logger)
	admin := catalog.NewAdminStore(docs, logger)
	resolver := catalog.NewResolver(tracks, popular, upstream, logger)
	ingestor := catalog.NewIngestor(tracks, upstream, logger)

	history := activity.NewHistory(docs, cfg.History.Limit, logger)
	library := activity.NewLibrary(docs, logger)

	engine, err := recommend.NewEngine(recommend.Config{
		PlayWeight:   cfg.Recommend.PlayWeight,
		LikeWeight:   cfg.Recommend.LikeWeight,
		TopArtists:   cfg.Recommend.TopArtists,
		DefaultLimit: cfg.Recommend.DefaultLimit,
	}, history, library, tracks, popular, resolver, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build recommendation engine: %w", err)
	}

	return &App{
		Tracks:      tracks,
		Popular:     popular,
		Admin:       admin,
		Resolver:    resolver,
		Ingestor:    ingestor,
		History:     history,
		Library:     library,
		Engine:      engine,
		upstream:    upstream,
		searchLimit: cfg.Provider.SearchLimit,
		logger:      logger,
	}, nil
}

// Describe resolves full metadata for a track, caching provider
// results in the track store.
func (a *App) Describe(ctx context.Context, trackID string) (models.Track, error) {
	return a.Resolver.Describe(ctx, trackID)
}

// Play records a play for the user and returns the resolved track.
func (a *App) Play(ctx context.Context, user, trackID string) (models.Track, error) {
	track, err := a.Resolver.Describe(ctx, trackID)
	if err != nil {
		return models.Track{}, err
	}
	if err := a.History.LogPlay(ctx, user, trackID); err != nil {
		return models.Track{}, err
	}
	return track, nil
}

// ToggleLike flips the user's like for a track and reports the new state.
func (a *App) ToggleLike(ctx context.Context, user, trackID string) (bool, error) {
	return a.Library.ToggleLike(ctx, user, trackID)
}

// CreatePlaylist creates a named playlist for the user.
func (a *App) CreatePlaylist(ctx context.Context, user, name string) (models.Playlist, error) {
	return a.Library.CreatePlaylist(ctx, user, name)
}

// AddToPlaylist adds a track to a playlist, ignoring duplicates.
func (a *App) AddToPlaylist(ctx context.Context, user, playlistID, trackID string) error {
	return a.Library.AddSong(ctx, user, playlistID, trackID)
}

// LikedTracks returns the user's liked tracks resolved to full records.
func (a *App) LikedTracks(ctx context.Context, user string) []models.Track {
	return a.Library.LikedTracks(ctx, user, a.Resolver)
}

// PlaylistDetail returns a playlist with its resolved tracks and cover.
func (a *App) PlaylistDetail(ctx context.Context, user, playlistID string) (activity.PlaylistView, error) {
	return a.Library.PlaylistDetail(ctx, user, playlistID, a.Resolver)
}

// Recommend produces up to limit personalized recommendations.
func (a *App) Recommend(ctx context.Context, user string, limit int) []models.Track {
	return a.Engine.Recommend(ctx, user, limit)
}

// Search queries the provider for tracks matching the query.
func (a *App) Search(ctx context.Context, query string) ([]models.Track, error) {
	return catalog.SearchTracks(ctx, a.upstream, query, a.searchLimit)
}

// TrackArtist registers an artist for periodic ingestion. It reports
// whether the artist was newly added.
func (a *App) TrackArtist(ctx context.Context, name string) (bool, error) {
	return a.Admin.TrackArtist(ctx, name)
}

// IngestArtist pulls an artist's catalog on demand, outside the periodic
// job. It may run concurrently with the job; the store dedups by track id.
func (a *App) IngestArtist(ctx context.Context, name string) (int, error) {
	return a.Ingestor.Ingest(ctx, name)
}
