// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

package activity

import (
	"context"

	"github.com/tunedeck/tunedeck/internal/models"
)

// TrackResolver resolves track IDs to metadata. Satisfied by
// *catalog.Resolver; declared here so the activity package stays
// decoupled from the catalog package.
type TrackResolver interface {
	Resolve(ctx context.Context, trackID string) (models.Track, error)
}

// PlaceholderCover is used for playlists whose songs cannot be resolved.
const PlaceholderCover = "https://placehold.co/544x544/121212/FFFFFF?text=+"

// PlaylistView is a playlist together with its resolved track metadata.
type PlaylistView struct {
	models.Playlist

	Cover  string         `json:"cover"`
	Tracks []models.Track `json:"songs_details"`
}

// LikedTracks resolves the user's liked songs to full track records,
// silently skipping IDs no source can resolve.
func (l *Library) LikedTracks(ctx context.Context, user string, resolver TrackResolver) []models.Track {
	ids := l.LikedSongs(ctx, user)

	tracks := make([]models.Track, 0, len(ids))
	for _, id := range ids {
		t, err := resolver.Resolve(ctx, id)
		if err != nil {
			continue
		}
		tracks = append(tracks, t)
	}
	return tracks
}

// PlaylistDetail returns the playlist with every resolvable song expanded
// to full track metadata. The cover is the first resolvable song's
// thumbnail, or a placeholder for empty/unresolvable playlists.
func (l *Library) PlaylistDetail(ctx context.Context, user, playlistID string, resolver TrackResolver) (PlaylistView, error) {
	pl, err := l.Playlist(ctx, user, playlistID)
	if err != nil {
		return PlaylistView{}, err
	}

	view := PlaylistView{
		Playlist: pl,
		Cover:    PlaceholderCover,
		Tracks:   make([]models.Track, 0, len(pl.Songs)),
	}

	for _, id := range pl.Songs {
		t, err := resolver.Resolve(ctx, id)
		if err != nil {
			continue
		}
		view.Tracks = append(view.Tracks, t)
	}

	if len(view.Tracks) > 0 && view.Tracks[0].Thumbnail != "" {
		view.Cover = view.Tracks[0].Thumbnail
	}

	return view, nil
}
