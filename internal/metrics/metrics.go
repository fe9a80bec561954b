// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Resolver metrics

	// ResolverLookups counts track resolutions by the source that satisfied
	// them: "store", "popular", "provider", or "miss".
	ResolverLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tunedeck_resolver_lookups_total",
			Help: "Total track resolutions by satisfying source",
		},
		[]string{"source"},
	)

	// Ingestion metrics

	IngestRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tunedeck_ingest_runs_total",
			Help: "Total per-artist ingestion runs by result",
		},
		[]string{"result"}, // "ok", "no_match", "error"
	)

	IngestTracksAdded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tunedeck_ingest_tracks_added_total",
			Help: "Total new tracks appended to the catalog by ingestion",
		},
	)

	CatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tunedeck_catalog_tracks",
			Help: "Current number of tracks in the catalog store",
		},
	)

	// Popularity feed metrics

	PopularRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tunedeck_popular_refreshes_total",
			Help: "Total popularity feed refresh attempts by result",
		},
		[]string{"result"}, // "ok", "empty", "error"
	)

	PopularFeedSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tunedeck_popular_feed_tracks",
			Help: "Current number of tracks in the popularity feed",
		},
	)

	// Recommendation metrics

	RecommendRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tunedeck_recommend_requests_total",
			Help: "Total recommendation requests served",
		},
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tunedeck_recommend_duration_seconds",
			Help:    "Latency of recommendation requests",
			Buckets: prometheus.DefBuckets,
		},
	)

	RecommendFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tunedeck_recommend_popularity_fallbacks_total",
			Help: "Recommendation requests answered purely from the popularity feed",
		},
	)

	// Provider metrics

	ProviderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tunedeck_provider_requests_total",
			Help: "Total external catalog provider calls by operation",
		},
		[]string{"operation"},
	)

	ProviderErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tunedeck_provider_errors_total",
			Help: "Total failed external catalog provider calls by operation",
		},
		[]string{"operation"},
	)

	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tunedeck_provider_breaker_state",
			Help: "Provider circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"breaker"},
	)

	BreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tunedeck_provider_breaker_transitions_total",
			Help: "Provider circuit breaker state transitions",
		},
		[]string{"breaker", "from", "to"},
	)
)
