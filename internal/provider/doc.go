// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

// Package provider defines the narrow interface Tunedeck consumes from the
// external music catalog, and a circuit-breaker decorator that gives every
// call fail-fast semantics.
//
// The concrete network client is deliberately not part of this module:
// search, artist, song, and chart lookups are best-effort collaborator
// calls, and every caller treats a provider error as a miss or a no-op,
// never as fatal.
package provider
