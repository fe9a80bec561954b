// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tunedeck/tunedeck/internal/metrics"
	"github.com/tunedeck/tunedeck/internal/models"
)

// HistorySource supplies a user's recent-play log, most recent first.
// Satisfied by *activity.History.
type HistorySource interface {
	List(ctx context.Context, user string) []models.HistoryEntry
}

// LikesSource supplies a user's liked track IDs.
// Satisfied by *activity.Library.
type LikesSource interface {
	LikedSongs(ctx context.Context, user string) []string
}

// TrackSource supplies every known catalog track in store order.
// Satisfied by *catalog.TrackStore.
type TrackSource interface {
	All(ctx context.Context) []models.Track
}

// PopularSource supplies the popularity feed in feed order.
// Satisfied by *catalog.PopularityFeed.
type PopularSource interface {
	List(ctx context.Context, limit int) []models.Track
}

// Resolver finds track metadata across local stores and the provider.
// Satisfied by *catalog.Resolver.
type Resolver interface {
	Resolve(ctx context.Context, trackID string) (models.Track, error)
}

// Engine produces per-user recommendations. It only reads shared state,
// so a single engine serves all users concurrently.
type Engine struct {
	config   Config
	history  HistorySource
	likes    LikesSource
	tracks   TrackSource
	popular  PopularSource
	resolver Resolver
	logger   zerolog.Logger
}

// NewEngine creates a recommendation engine over the given sources.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg Config, history HistorySource, likes LikesSource, tracks TrackSource, popular PopularSource, resolver Resolver, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config:   cfg,
		history:  history,
		likes:    likes,
		tracks:   tracks,
		popular:  popular,
		resolver: resolver,
		logger:   logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Recommend returns up to limit recommended tracks for the user,
// deterministic given fixed inputs. Users with no history and no likes,
// and users whose every referenced track is unresolvable, get the head of
// the popularity feed. The result may be shorter than limit when too few
// candidates exist; it is never padded.
func (e *Engine) Recommend(ctx context.Context, user string, limit int) []models.Track {
	start := time.Now()
	metrics.RecommendRequests.Inc()
	defer func() {
		metrics.RecommendDuration.Observe(time.Since(start).Seconds())
	}()

	if limit <= 0 {
		limit = e.config.DefaultLimit
	}

	log := e.logger.With().Str("user", user).Logger()

	history := e.history.List(ctx, user)
	liked := e.likes.LikedSongs(ctx, user)

	if len(history) == 0 && len(liked) == 0 {
		metrics.RecommendFallbacks.Inc()
		log.Debug().Msg("cold user, serving popularity feed")
		return e.popular.List(ctx, limit)
	}

	scores := e.scoreArtists(ctx, history, liked)
	if scores.empty() {
		metrics.RecommendFallbacks.Inc()
		log.Debug().Msg("no resolvable activity, serving popularity feed")
		return e.popular.List(ctx, limit)
	}

	topArtists := scores.top(e.config.TopArtists)

	exclude := models.TrackIDSet(liked)
	for _, entry := range history {
		exclude[entry.TrackID] = struct{}{}
	}

	recs := e.scanCandidates(ctx, topArtists, exclude, limit)
	recs = e.topUpFromPopular(ctx, recs, exclude, limit)

	log.Debug().
		Int("history", len(history)).
		Int("likes", len(liked)).
		Strs("top_artists", topArtists).
		Int("returned", len(recs)).
		Msg("recommendations built")

	return recs
}

// scoreArtists builds the artist affinity table: every resolvable history
// entry credits its artists with the play weight, every resolvable liked
// track credits the like weight. Unresolvable entries contribute nothing.
func (e *Engine) scoreArtists(ctx context.Context, history []models.HistoryEntry, liked []string) *scoreTable {
	scores := newScoreTable()

	for _, entry := range history {
		t, err := e.resolver.Resolve(ctx, entry.TrackID)
		if err != nil {
			continue
		}
		for _, artist := range t.Artists {
			scores.add(artist, e.config.PlayWeight)
		}
	}

	for _, id := range liked {
		t, err := e.resolver.Resolve(ctx, id)
		if err != nil {
			continue
		}
		for _, artist := range t.Artists {
			scores.add(artist, e.config.LikeWeight)
		}
	}

	return scores
}

// scanCandidates walks the track store in store order and collects tracks
// by the top artists that the user has not played or liked.
func (e *Engine) scanCandidates(ctx context.Context, topArtists []string, exclude map[string]struct{}, limit int) []models.Track {
	recs := make([]models.Track, 0, limit)
	for _, t := range e.tracks.All(ctx) {
		if _, seen := exclude[t.ID]; seen {
			continue
		}
		if !t.HasAnyArtist(topArtists) {
			continue
		}
		recs = append(recs, t)
		if len(recs) == limit {
			break
		}
	}
	return recs
}

// topUpFromPopular fills remaining slots from the popularity feed in feed
// order, skipping excluded and already selected tracks.
func (e *Engine) topUpFromPopular(ctx context.Context, recs []models.Track, exclude map[string]struct{}, limit int) []models.Track {
	if len(recs) >= limit {
		return recs[:limit]
	}

	selected := make(map[string]struct{}, len(recs))
	for _, t := range recs {
		selected[t.ID] = struct{}{}
	}

	for _, t := range e.popular.List(ctx, 0) {
		if len(recs) >= limit {
			break
		}
		if _, seen := exclude[t.ID]; seen {
			continue
		}
		if _, seen := selected[t.ID]; seen {
			continue
		}
		recs = append(recs, t)
		selected[t.ID] = struct{}{}
	}

	return recs
}
