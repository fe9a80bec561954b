// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

// Package services provides suture service wrappers for Tunedeck's
// background jobs: periodic artist catalog ingestion and popularity
// feed refresh.
package services
