// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// ArtistSource lists the artists tracked for ingestion.
type ArtistSource interface {
	Artists(ctx context.Context) []string
}

// Ingestor pulls one artist's catalog from the provider into the
// track store. Satisfied by *catalog.Ingestor.
type Ingestor interface {
	Ingest(ctx context.Context, artistName string) (int, error)
}

// IngestServiceConfig holds configuration for the ingestion service.
type IngestServiceConfig struct {
	// Interval between full ingestion passes.
	Interval time.Duration

	// ArtistDelay is the minimum spacing between per-artist provider
	// calls, protecting the upstream from bursts.
	ArtistDelay time.Duration
}

// IngestService periodically re-ingests every tracked artist.
// A failure on one artist is logged and the pass continues; the
// service itself only exits on context cancellation.
type IngestService struct {
	artists  ArtistSource
	ingestor Ingestor
	config   IngestServiceConfig
	logger   zerolog.Logger
	name     string
}

// NewIngestService creates the ingestion job.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewIngestService(artists ArtistSource, ingestor Ingestor, cfg IngestServiceConfig, logger zerolog.Logger) *IngestService {
	if cfg.Interval <= 0 {
		cfg.Interval = 3 * time.Hour
	}
	if cfg.ArtistDelay <= 0 {
		cfg.ArtistDelay = 5 * time.Second
	}
	return &IngestService{
		artists:  artists,
		ingestor: ingestor,
		config:   cfg,
		logger:   logger.With().Str("service", "ingest").Logger(),
		name:     "ingest-service",
	}
}

// Serve implements suture.Service. It runs one pass immediately, then
// one per interval.
func (s *IngestService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.config.Interval).
		Dur("artist_delay", s.config.ArtistDelay).
		Msg("ingestion service starting")

	s.runPass(ctx)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("ingestion service shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.runPass(ctx)
		}
	}
}

// runPass ingests every tracked artist once, paced by ArtistDelay.
func (s *IngestService) runPass(ctx context.Context) {
	artists := s.artists.Artists(ctx)
	if len(artists) == 0 {
		s.logger.Debug().Msg("no tracked artists, skipping pass")
		return
	}

	start := time.Now()
	limiter := rate.NewLimiter(rate.Every(s.config.ArtistDelay), 1)

	var added, failed int
	for _, artist := range artists {
		if err := limiter.Wait(ctx); err != nil {
			return
		}

		n, err := s.ingestor.Ingest(ctx, artist)
		if err != nil {
			failed++
			s.logger.Warn().Err(err).Str("artist", artist).Msg("artist ingestion failed")
			continue
		}
		added += n
	}

	s.logger.Info().
		Int("artists", len(artists)).
		Int("tracks_added", added).
		Int("failed", failed).
		Dur("duration", time.Since(start)).
		Msg("ingestion pass complete")
}

// String returns the service name for logging.
func (s *IngestService) String() string {
	return s.name
}
