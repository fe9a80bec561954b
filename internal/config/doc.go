// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

// Package config loads and validates Tunedeck configuration.
//
// Configuration is layered with koanf: built-in defaults, then an
// optional YAML config file, then environment variables. Environment
// variables win. Only variables listed in the env mapping are read, so
// unrelated variables cannot pollute the configuration.
package config
