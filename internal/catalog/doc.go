// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

// Package catalog implements the local track metadata cache and the paths
// that populate it: the append-only track store, the wholesale-replaced
// popularity feed, the read path that resolves a track ID across local and
// external sources, artist catalog ingestion, and the search passthrough.
//
// Write paths are serialized per store with a mutex; each batch rewrites
// the whole backing document. The resolver is a pure read: cache fill on
// on-demand lookups is an explicit decision of the Describe caller path,
// never an implicit resolver side effect.
package catalog
