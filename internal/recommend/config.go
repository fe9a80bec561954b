// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

package recommend

import "fmt"

// Config tunes the recommendation engine.
type Config struct {
	// PlayWeight is the score a history entry contributes to each of its
	// track's artists.
	PlayWeight int

	// LikeWeight is the score a liked track contributes to each of its
	// artists. The default 5:1 ratio encodes that an explicit like is a
	// 5x stronger signal than a play.
	LikeWeight int

	// TopArtists is how many of the highest-scored artists seed the
	// candidate scan.
	TopArtists int

	// DefaultLimit is the result count used when the caller passes
	// limit <= 0.
	DefaultLimit int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		PlayWeight:   1,
		LikeWeight:   5,
		TopArtists:   5,
		DefaultLimit: 20,
	}
}

// Validate checks the configuration for usable values.
func (c Config) Validate() error {
	if c.PlayWeight <= 0 {
		return fmt.Errorf("play weight must be positive, got %d", c.PlayWeight)
	}
	if c.LikeWeight <= 0 {
		return fmt.Errorf("like weight must be positive, got %d", c.LikeWeight)
	}
	if c.TopArtists <= 0 {
		return fmt.Errorf("top artists must be positive, got %d", c.TopArtists)
	}
	if c.DefaultLimit <= 0 {
		return fmt.Errorf("default limit must be positive, got %d", c.DefaultLimit)
	}
	return nil
}
