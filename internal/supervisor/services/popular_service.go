// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// FeedRefresher re-pulls the popularity feed from the provider chart.
// Satisfied by *catalog.PopularityFeed.
type FeedRefresher interface {
	Refresh(ctx context.Context) error
}

// PopularServiceConfig holds configuration for the popularity refresh job.
type PopularServiceConfig struct {
	// Interval between chart refreshes.
	Interval time.Duration
}

// PopularService keeps the popularity feed current. A failed refresh
// leaves the previous feed in place, so the job just logs and waits
// for the next tick.
type PopularService struct {
	feed   FeedRefresher
	config PopularServiceConfig
	logger zerolog.Logger
	name   string
}

// NewPopularService creates the popularity refresh job.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPopularService(feed FeedRefresher, cfg PopularServiceConfig, logger zerolog.Logger) *PopularService {
	if cfg.Interval <= 0 {
		cfg.Interval = 6 * time.Hour
	}
	return &PopularService{
		feed:   feed,
		config: cfg,
		logger: logger.With().Str("service", "popular").Logger(),
		name:   "popular-service",
	}
}

// Serve implements suture.Service. It refreshes immediately so a fresh
// deployment has a feed, then refreshes once per interval.
func (s *PopularService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.config.Interval).Msg("popularity service starting")

	s.refresh(ctx)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("popularity service shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *PopularService) refresh(ctx context.Context) {
	start := time.Now()
	if err := s.feed.Refresh(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("popularity refresh failed, keeping previous feed")
		return
	}
	s.logger.Info().Dur("duration", time.Since(start)).Msg("popularity feed refreshed")
}

// String returns the service name for logging.
func (s *PopularService) String() string {
	return s.name
}
