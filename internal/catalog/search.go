// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

package catalog

import (
	"context"
	"fmt"

	"github.com/tunedeck/tunedeck/internal/models"
	"github.com/tunedeck/tunedeck/internal/provider"
)

// DefaultSearchLimit bounds search passthrough results.
const DefaultSearchLimit = 20

// SearchTracks queries the provider's song search and normalizes the
// results into catalog track shapes (largest thumbnail, album defaulted).
// Results are not persisted; search is a pure passthrough.
func SearchTracks(ctx context.Context, catalog provider.Catalog, query string, limit int) ([]models.Track, error) {
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	results, err := catalog.Search(ctx, query, provider.FilterSongs)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	tracks := make([]models.Track, 0, limit)
	for _, r := range results {
		if r.ID == "" {
			continue
		}
		tracks = append(tracks, trackFromResult(r, false))
		if len(tracks) == limit {
			break
		}
	}
	return tracks, nil
}
