// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the root Tunedeck configuration.
type Config struct {
	Logging   LoggingConfig   `koanf:"logging"`
	Store     StoreConfig     `koanf:"store"`
	Provider  ProviderConfig  `koanf:"provider"`
	Ingest    IngestConfig    `koanf:"ingest"`
	Popular   PopularConfig   `koanf:"popular"`
	History   HistoryConfig   `koanf:"history"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// StoreConfig controls the embedded document store.
type StoreConfig struct {
	// Path is the Badger data directory.
	Path string `koanf:"path" validate:"required"`
}

// ProviderConfig controls the upstream music catalog client and its
// circuit breaker.
type ProviderConfig struct {
	// BaseURL is the catalog API root. Required at runtime; there is no
	// sensible default.
	BaseURL string `koanf:"base_url" validate:"omitempty,url"`

	// APIKey is the bearer token sent to the catalog API. Optional.
	APIKey string `koanf:"api_key"`

	// SearchLimit caps results returned by catalog search.
	SearchLimit int `koanf:"search_limit" validate:"gt=0"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig tunes the provider circuit breaker.
type BreakerConfig struct {
	// MaxRequests allowed through while half-open.
	MaxRequests uint32 `koanf:"max_requests" validate:"gt=0"`

	// Interval resets the closed-state failure counts.
	Interval time.Duration `koanf:"interval" validate:"gt=0"`

	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`

	// MinRequests before the failure ratio is considered.
	MinRequests uint32 `koanf:"min_requests" validate:"gt=0"`

	// FailureRatio at or above which the breaker trips.
	FailureRatio float64 `koanf:"failure_ratio" validate:"gt=0,lte=1"`
}

// IngestConfig controls the periodic artist catalog ingestion job.
type IngestConfig struct {
	// Interval between full ingestion passes.
	Interval time.Duration `koanf:"interval" validate:"gte=1m"`

	// ArtistDelay is the minimum spacing between per-artist provider
	// calls within a pass.
	ArtistDelay time.Duration `koanf:"artist_delay" validate:"gt=0"`
}

// PopularConfig controls the popularity feed refresh job.
type PopularConfig struct {
	// Interval between chart refreshes.
	Interval time.Duration `koanf:"interval" validate:"gte=1m"`

	// ChartKind identifies the upstream chart to pull.
	ChartKind string `koanf:"chart_kind" validate:"required"`

	// ChartSize is how many chart entries to request.
	ChartSize int `koanf:"chart_size" validate:"gt=0"`
}

// HistoryConfig controls per-user listening history retention.
type HistoryConfig struct {
	// Limit is the maximum retained history entries per user.
	Limit int `koanf:"limit" validate:"gt=0"`
}

// RecommendConfig tunes the artist-affinity recommendation engine.
type RecommendConfig struct {
	// PlayWeight is the score contributed by one play.
	PlayWeight int `koanf:"play_weight" validate:"gt=0"`

	// LikeWeight is the score contributed by one like.
	LikeWeight int `koanf:"like_weight" validate:"gt=0"`

	// TopArtists is how many top-scoring artists seed candidates.
	TopArtists int `koanf:"top_artists" validate:"gt=0"`

	// DefaultLimit is the recommendation count when the caller does
	// not specify one.
	DefaultLimit int `koanf:"default_limit" validate:"gt=0"`
}

// Default returns the built-in configuration. File and environment
// layers override it.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Store: StoreConfig{
			Path: "/data/tunedeck",
		},
		Provider: ProviderConfig{
			SearchLimit: 20,
			Breaker: BreakerConfig{
				MaxRequests:  3,
				Interval:     time.Minute,
				Timeout:      2 * time.Minute,
				MinRequests:  10,
				FailureRatio: 0.6,
			},
		},
		Ingest: IngestConfig{
			Interval:    3 * time.Hour,
			ArtistDelay: 5 * time.Second,
		},
		Popular: PopularConfig{
			Interval:  6 * time.Hour,
			ChartKind: "top",
			ChartSize: 50,
		},
		History: HistoryConfig{
			Limit: 500,
		},
		Recommend: RecommendConfig{
			PlayWeight:   1,
			LikeWeight:   5,
			TopArtists:   5,
			DefaultLimit: 20,
		},
	}
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
