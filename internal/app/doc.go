// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

// Package app composes the Tunedeck subsystems into one operation
// surface. The App owns no goroutines; background jobs are wired
// separately into the supervisor tree.
package app
