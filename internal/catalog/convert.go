// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

package catalog

import (
	"time"

	"github.com/tunedeck/tunedeck/internal/models"
	"github.com/tunedeck/tunedeck/internal/provider"
)

// trackFromResult maps a provider result to a catalog track: thumbnail
// upscaled to the largest known resolution, album defaulted to "Single".
// When stamp is true the track gets a LastUpdated timestamp (ingested and
// cached-on-demand tracks); popularity entries are left unstamped.
func trackFromResult(r provider.Result, stamp bool) models.Track {
	album := r.Album
	if album == "" {
		album = models.AlbumSingle
	}

	var duration *string
	if r.Duration != "" {
		d := r.Duration
		duration = &d
	}

	t := models.Track{
		ID:        r.ID,
		Title:     r.Title,
		Artists:   r.Artists,
		Album:     album,
		Duration:  duration,
		Thumbnail: models.UpscaleThumbnail(r.BestThumbnail()),
	}

	if stamp {
		now := time.Now()
		t.LastUpdated = &now
	}

	return t
}

// trackFromSong maps an on-demand song lookup to a catalog track. The song
// endpoint reports a single author and no album, so the artist list has one
// entry and the album reads "Unknown".
func trackFromSong(s *provider.SongDetails) models.Track {
	var duration *string
	if s.DurationSeconds != "" {
		d := s.DurationSeconds
		duration = &d
	}

	return models.Track{
		ID:        s.ID,
		Title:     s.Title,
		Artists:   []string{s.Author},
		Album:     models.AlbumUnknown,
		Duration:  duration,
		Thumbnail: models.UpscaleThumbnail(s.BestThumbnail()),
	}
}
