// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

// Package logging provides zerolog-based structured logging for Tunedeck.
//
// The global logger is configured once at startup via Init and components
// derive child loggers with a component field:
//
//	catalogLogger := logging.With().Str("component", "catalog").Logger()
//	catalogLogger.Info().Msg("track store loaded")
//
// Output is JSON by default; the console format is intended for local
// development. A slog adapter is provided for libraries that speak
// log/slog, such as sutureslog.
package logging
