// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

// Package models defines the core data types shared across Tunedeck:
// catalog tracks, per-user listening history, and the per-user library
// of liked songs and playlists.
//
// The types here carry no behavior beyond normalization helpers; all
// persistence and business logic lives in the catalog, activity, and
// recommend packages.
package models
