// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

// Package recommend produces per-user track recommendations from listening
// history and likes via artist-affinity scoring, with a popularity-feed
// fallback for cold users.
//
// The engine depends only on narrow source interfaces declared here, so it
// integrates with the catalog and activity packages without importing
// them. Recommend is a pure read over shared state and is safe for
// concurrent use by many users.
package recommend
