// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

package provider

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tunedeck/tunedeck/internal/metrics"
)

// BreakerSettings tunes the circuit breaker around provider calls.
type BreakerSettings struct {
	// MaxRequests allowed through while half-open.
	MaxRequests uint32

	// Interval resets failure counts while closed.
	Interval time.Duration

	// Timeout before an open circuit transitions to half-open.
	Timeout time.Duration

	// MinRequests before the failure ratio is considered meaningful.
	MinRequests uint32

	// FailureRatio at or above which the circuit opens.
	FailureRatio float64
}

// DefaultBreakerSettings returns the production defaults: open after a 60%
// failure rate over at least 10 requests, retry after two minutes.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      2 * time.Minute,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// Breaker wraps a Catalog with a circuit breaker so that a misbehaving
// provider fails fast instead of stalling ingestion cycles and
// recommendation requests.
//
// The breaker uses real time for its interval and timeout bookkeeping;
// tests exercise the wrapped catalog directly.
type Breaker struct {
	inner  Catalog
	cb     *gobreaker.CircuitBreaker[any]
	logger zerolog.Logger
}

// NewBreaker wraps catalog with a circuit breaker using the given settings.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBreaker(catalog Catalog, settings BreakerSettings, logger zerolog.Logger) *Breaker {
	const name = "catalog-provider"
	log := logger.With().Str("component", "provider").Logger()

	metrics.BreakerState.WithLabelValues(name).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < settings.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			trip := ratio >= settings.FailureRatio
			if trip {
				log.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", ratio*100).
					Msg("opening provider circuit")
			}
			return trip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Info().
				Str("from", stateString(from)).
				Str("to", stateString(to)).
				Msg("provider circuit state change")
			metrics.BreakerState.WithLabelValues(name).Set(stateFloat(to))
			metrics.BreakerTransitions.WithLabelValues(name, stateString(from), stateString(to)).Inc()
		},
	})

	return &Breaker{inner: catalog, cb: cb, logger: log}
}

// Search implements Catalog.
func (b *Breaker) Search(ctx context.Context, query, filter string) ([]Result, error) {
	out, err := execute(b, "search", func() (any, error) {
		return b.inner.Search(ctx, query, filter)
	})
	if err != nil {
		return nil, err
	}
	return out.([]Result), nil
}

// GetArtist implements Catalog.
func (b *Breaker) GetArtist(ctx context.Context, artistID string) (*ArtistDetails, error) {
	out, err := execute(b, "get_artist", func() (any, error) {
		return b.inner.GetArtist(ctx, artistID)
	})
	if err != nil {
		return nil, err
	}
	return out.(*ArtistDetails), nil
}

// GetSong implements Catalog.
func (b *Breaker) GetSong(ctx context.Context, trackID string) (*SongDetails, error) {
	out, err := execute(b, "get_song", func() (any, error) {
		return b.inner.GetSong(ctx, trackID)
	})
	if err != nil {
		return nil, err
	}
	return out.(*SongDetails), nil
}

// GetChart implements Catalog.
func (b *Breaker) GetChart(ctx context.Context, kind string, limit int) ([]Result, error) {
	out, err := execute(b, "get_chart", func() (any, error) {
		return b.inner.GetChart(ctx, kind, limit)
	})
	if err != nil {
		return nil, err
	}
	return out.([]Result), nil
}

// execute runs op through the circuit breaker and records call metrics.
func execute(b *Breaker, op string, fn func() (any, error)) (any, error) {
	metrics.ProviderRequests.WithLabelValues(op).Inc()

	out, err := b.cb.Execute(fn)
	if err != nil {
		metrics.ProviderErrors.WithLabelValues(op).Inc()
		return nil, err
	}
	return out, nil
}

// stateString converts a gobreaker state to its metric label.
func stateString(s gobreaker.State) string {
	switch s {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// stateFloat converts a gobreaker state to its gauge value.
func stateFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
