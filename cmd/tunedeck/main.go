// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

// Package main is the entry point for the Tunedeck backend.
//
// Tunedeck is a personal music streaming backend: it caches track
// metadata from an upstream catalog provider, maintains a popularity
// feed, records per-user listening activity, and produces
// artist-affinity recommendations.
//
// Startup order:
//
//  1. Configuration: koanf layering of defaults, config file, environment
//  2. Logging: zerolog, JSON by default
//  3. Store: embedded Badger document store
//  4. Provider: catalog API client behind a circuit breaker
//  5. Domain: track store, popularity feed, resolver, activity, engine
//  6. Supervision: suture tree running the ingestion and popularity jobs
//
// The process runs until SIGINT or SIGTERM, then shuts the tree down
// gracefully and closes the store.
package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/tunedeck/tunedeck/internal/app"
	"github.com/tunedeck/tunedeck/internal/config"
	"github.com/tunedeck/tunedeck/internal/logging"
	"github.com/tunedeck/tunedeck/internal/provider"
	"github.com/tunedeck/tunedeck/internal/store"
	"github.com/tunedeck/tunedeck/internal/supervisor"
	"github.com/tunedeck/tunedeck/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Msg("starting tunedeck")

	if cfg.Provider.BaseURL == "" {
		logging.Fatal().Msg("provider base URL is not configured (set TUNEDECK_PROVIDER_URL)")
	}

	docs, err := store.Open(cfg.Store.Path, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Store.Path).Msg("failed to open document store")
	}
	defer func() {
		if err := docs.Close(); err != nil {
			logging.Error().Err(err).Msg("failed to close document store")
		}
	}()

	upstream := provider.NewClient(cfg.Provider.BaseURL, cfg.Provider.APIKey)
	guarded := provider.NewBreaker(upstream, provider.BreakerSettings{
		MaxRequests:  cfg.Provider.Breaker.MaxRequests,
		Interval:     cfg.Provider.Breaker.Interval,
		Timeout:      cfg.Provider.Breaker.Timeout,
		MinRequests:  cfg.Provider.Breaker.MinRequests,
		FailureRatio: cfg.Provider.Breaker.FailureRatio,
	}, logging.Logger())

	deck, err := app.New(cfg, docs, guarded, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to assemble application")
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddJob(services.NewIngestService(deck.Admin, deck.Ingestor, services.IngestServiceConfig{
		Interval:    cfg.Ingest.Interval,
		ArtistDelay: cfg.Ingest.ArtistDelay,
	}, logging.Logger()))
	tree.AddJob(services.NewPopularService(deck.Popular, services.PopularServiceConfig{
		Interval: cfg.Popular.Interval,
	}, logging.Logger()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().
		Str("store", cfg.Store.Path).
		Dur("ingest_interval", cfg.Ingest.Interval).
		Dur("popular_interval", cfg.Popular.Interval).
		Msg("supervisor tree starting")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("supervisor tree exited")
	}

	logging.Info().Msg("tunedeck stopped")
}
