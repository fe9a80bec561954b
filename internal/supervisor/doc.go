// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

// Package supervisor builds the suture supervision tree for Tunedeck's
// background jobs. A crash in one job is restarted with backoff without
// taking down the others.
package supervisor
