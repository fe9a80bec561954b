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
	"github.com/tunedeck/tunedeck/internal/provider"
	"github.com/tunedeck/tunedeck/internal/store"
)

// DefaultChartSize bounds the popularity feed on refresh.
const DefaultChartSize = 50

// PopularityFeed is the provider-curated list of trending tracks. It is
// replaced wholesale on each successful refresh and read by every user;
// entries carry no LastUpdated timestamp.
type PopularityFeed struct {
	docs      store.Documents
	catalog   provider.Catalog
	chartKind string
	chartSize int
	logger    zerolog.Logger

	mu sync.Mutex
}

// NewPopularityFeed creates a popularity feed refreshed from the given
// provider chart. chartSize <= 0 falls back to DefaultChartSize.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPopularityFeed(docs store.Documents, catalog provider.Catalog, chartKind string, chartSize int, logger zerolog.Logger) *PopularityFeed {
	if chartKind == "" {
		chartKind = provider.ChartTop
	}
	if chartSize <= 0 {
		chartSize = DefaultChartSize
	}
	return &PopularityFeed{
		docs:      docs,
		catalog:   catalog,
		chartKind: chartKind,
		chartSize: chartSize,
		logger:    logger.With().Str("component", "popularity").Logger(),
	}
}

// List returns up to limit feed entries in feed order. limit <= 0 returns
// the whole feed. An absent or unreadable document reads as empty.
func (f *PopularityFeed) List(ctx context.Context, limit int) []models.Track {
	var feed []models.Track
	if err := f.docs.Load(ctx, store.KeyCatalogPopular, &feed); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			f.logger.Warn().Err(err).Msg("popularity feed unreadable, treating as empty")
		}
		return nil
	}
	if limit > 0 && len(feed) > limit {
		feed = feed[:limit]
	}
	return feed
}

// Get looks a feed entry up by track ID.
func (f *PopularityFeed) Get(ctx context.Context, trackID string) (models.Track, error) {
	for _, t := range f.List(ctx, 0) {
		if t.ID == trackID {
			return t, nil
		}
	}
	return models.Track{}, ErrTrackNotFound
}

// Replace swaps the whole feed for tracks. An empty replacement is
// rejected so a bad fetch never wipes good data.
func (f *PopularityFeed) Replace(ctx context.Context, tracks []models.Track) error {
	if len(tracks) == 0 {
		return errors.New("refusing to replace popularity feed with empty set")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.docs.Save(ctx, store.KeyCatalogPopular, tracks); err != nil {
		return fmt.Errorf("rewrite popularity feed: %w", err)
	}

	metrics.PopularFeedSize.Set(float64(len(tracks)))
	return nil
}

// Refresh fetches the provider chart and replaces the feed when the fetch
// yields a non-empty result. Provider failures and empty charts leave the
// existing feed untouched.
func (f *PopularityFeed) Refresh(ctx context.Context) error {
	results, err := f.catalog.GetChart(ctx, f.chartKind, f.chartSize)
	if err != nil {
		metrics.PopularRefreshes.WithLabelValues("error").Inc()
		f.logger.Warn().Err(err).Msg("chart fetch failed, keeping current feed")
		return fmt.Errorf("fetch chart: %w", err)
	}

	tracks := make([]models.Track, 0, len(results))
	for _, r := range results {
		if r.ID == "" {
			continue
		}
		tracks = append(tracks, trackFromResult(r, false))
	}

	if len(tracks) == 0 {
		metrics.PopularRefreshes.WithLabelValues("empty").Inc()
		f.logger.Warn().Msg("chart fetch returned no usable entries, keeping current feed")
		return nil
	}

	if err := f.Replace(ctx, tracks); err != nil {
		metrics.PopularRefreshes.WithLabelValues("error").Inc()
		return err
	}

	metrics.PopularRefreshes.WithLabelValues("ok").Inc()
	f.logger.Info().Int("tracks", len(tracks)).Msg("popularity feed refreshed")
	return nil
}
