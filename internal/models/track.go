// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

package models

import (
	"strings"
	"time"
)

// AlbumSingle is the album name assigned to tracks the provider reports
// without an album.
const AlbumSingle = "Single"

// AlbumUnknown is the album name assigned to tracks resolved on demand,
// where the provider's song endpoint does not report album metadata.
const AlbumUnknown = "Unknown"

// Track is a unit of playable content with a stable provider-assigned
// identifier and display metadata.
//
// LastUpdated is set for tracks that entered the catalog through ingestion
// or on-demand resolution; provider-curated popularity entries carry no
// timestamp.
type Track struct {
	ID          string     `json:"track_id"`
	Title       string     `json:"title"`
	Artists     []string   `json:"artists"`
	Album       string     `json:"album"`
	Duration    *string    `json:"duration"`
	Thumbnail   string     `json:"thumbnail"`
	LastUpdated *time.Time `json:"last_updated,omitempty"`
}

// HasArtist reports whether name appears in the track's artist list.
func (t Track) HasArtist(name string) bool {
	for _, a := range t.Artists {
		if a == name {
			return true
		}
	}
	return false
}

// HasAnyArtist reports whether any of the given artists appear in the
// track's artist list.
func (t Track) HasAnyArtist(artists []string) bool {
	for _, a := range artists {
		if t.HasArtist(a) {
			return true
		}
	}
	return false
}

// thumbnailUpscales maps low-resolution thumbnail size markers to the
// largest resolution the provider is known to serve.
var thumbnailUpscales = [][2]string{
	{"w120-h120", "w544-h544"},
	{"w60-h60", "w544-h544"},
}

// UpscaleThumbnail rewrites a provider thumbnail URL so that it points at
// the largest known resolution variant. URLs without a recognized size
// marker are returned unchanged.
func UpscaleThumbnail(url string) string {
	for _, up := range thumbnailUpscales {
		if strings.Contains(url, up[0]) {
			return strings.ReplaceAll(url, up[0], up[1])
		}
	}
	return url
}

// TrackIDSet builds a membership set from a list of track IDs.
func TrackIDSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
