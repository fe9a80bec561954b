// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

// Package metrics exposes Prometheus collectors for Tunedeck's core
// subsystems: resolver lookups, catalog ingestion, popularity refresh,
// recommendation requests, and the provider circuit breaker.
//
// Collectors are registered with the default registry via promauto at
// package init; callers reference them directly as package-level vars.
package metrics
