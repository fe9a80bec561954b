// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

package models

import "time"

// HistoryEntry records a single play event. Entries are kept most recent
// first in a user's history document.
type HistoryEntry struct {
	TrackID   string    `json:"track_id"`
	Timestamp time.Time `json:"timestamp"`
}

// Playlist is a named, ordered list of track IDs owned by a single user.
type Playlist struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Songs []string `json:"songs"`
}

// Contains reports whether the playlist already holds the given track.
func (p Playlist) Contains(trackID string) bool {
	for _, id := range p.Songs {
		if id == trackID {
			return true
		}
	}
	return false
}

// Library is the per-user document holding liked songs and playlists.
// LikedSongs has set semantics: no duplicates, order not meaningful.
type Library struct {
	LikedSongs []string   `json:"liked_songs"`
	Playlists  []Playlist `json:"playlists"`
}

// Likes reports whether the track is in the user's liked set.
func (l Library) Likes(trackID string) bool {
	for _, id := range l.LikedSongs {
		if id == trackID {
			return true
		}
	}
	return false
}
