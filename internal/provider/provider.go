// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

package provider

import "context"

// Search filters accepted by Catalog.Search.
const (
	FilterSongs   = "songs"
	FilterArtists = "artists"
)

// ChartTop is the chart kind for the provider's global top tracks.
const ChartTop = "top"

// Thumbnail is one resolution variant of a cover image. Providers return
// variants ordered smallest to largest.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Result is a track-shaped search or chart entry.
type Result struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Artists    []string    `json:"artists"`
	Album      string      `json:"album"`
	Duration   string      `json:"duration"`
	Thumbnails []Thumbnail `json:"thumbnails"`
}

// BestThumbnail returns the URL of the largest thumbnail variant, or ""
// when the result carries none.
func (r Result) BestThumbnail() string {
	if len(r.Thumbnails) == 0 {
		return ""
	}
	return r.Thumbnails[len(r.Thumbnails)-1].URL
}

// ArtistDetails is an artist page: identity plus the full track listing.
type ArtistDetails struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Songs []Result `json:"songs"`
}

// SongDetails is the on-demand lookup shape for a single track. The song
// endpoint reports a single author and a duration in seconds; it carries
// no album metadata.
type SongDetails struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Author          string      `json:"author"`
	DurationSeconds string      `json:"duration_seconds"`
	Thumbnails      []Thumbnail `json:"thumbnails"`
}

// BestThumbnail returns the URL of the largest thumbnail variant, or ""
// when the song carries none.
func (s SongDetails) BestThumbnail() string {
	if len(s.Thumbnails) == 0 {
		return ""
	}
	return s.Thumbnails[len(s.Thumbnails)-1].URL
}

// Catalog is the external catalog provider. Every method may fail with a
// provider error; callers treat all calls as best-effort.
type Catalog interface {
	// Search queries the provider. filter is one of the Filter constants.
	Search(ctx context.Context, query, filter string) ([]Result, error)

	// GetArtist fetches an artist's details including the full track listing.
	GetArtist(ctx context.Context, artistID string) (*ArtistDetails, error)

	// GetSong fetches details for a single track by ID.
	GetSong(ctx context.Context, trackID string) (*SongDetails, error)

	// GetChart fetches up to limit entries of the named chart.
	GetChart(ctx context.Context, kind string, limit int) ([]Result, error)
}
