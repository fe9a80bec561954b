// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

// Package activity manages per-user listening state: the bounded
// recent-play history, the liked-song set, and playlists. Each user's
// state lives in its own documents, created lazily on first write; a
// missing document reads as the empty default.
//
// Writes serialize through a package-level mutex per store. This matches
// the single-writer-dominant workload: each user's documents are owned by
// that user's requests, and the lock only guards the read-modify-write
// cycle against concurrent requests from the same user.
package activity
