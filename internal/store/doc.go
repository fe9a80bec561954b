// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

// Package store provides whole-document JSON persistence over BadgerDB.
//
// Each logical store (catalog tracks, popularity feed, tracked-artist list,
// per-user history, per-user library) is a single JSON document under a
// stable key. Documents are always read and rewritten whole; Badger
// transactions make each rewrite atomic, so readers never observe a
// partially written document.
//
// Key layout:
//
//	catalog:tracks        []models.Track
//	catalog:popular       []models.Track
//	admin:artists         []string
//	user:<name>:history   []models.HistoryEntry
//	user:<name>:library   models.Library
//
// A missing document is reported as ErrNotFound; callers that own a store
// translate that (and any unreadable document) into the type-appropriate
// empty default rather than surfacing an error.
package store
