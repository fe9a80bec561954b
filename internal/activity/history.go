// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

package activity

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tunedeck/tunedeck/internal/models"
	"github.com/tunedeck/tunedeck/internal/store"
)

// DefaultHistoryLimit caps each user's recent-play log.
const DefaultHistoryLimit = 500

// History is the per-user recent-play log: most recent first, capped, with
// move-to-front dedup so a track appears at most once.
type History struct {
	docs   store.Documents
	limit  int
	logger zerolog.Logger

	mu sync.Mutex
}

// NewHistory creates a history store. limit <= 0 falls back to
// DefaultHistoryLimit.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHistory(docs store.Documents, limit int, logger zerolog.Logger) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{
		docs:   docs,
		limit:  limit,
		logger: logger.With().Str("component", "history").Logger(),
	}
}

// List returns the user's history, most recent first. A missing or
// unreadable document reads as empty.
func (h *History) List(ctx context.Context, user string) []models.HistoryEntry {
	var entries []models.HistoryEntry
	if err := h.docs.Load(ctx, store.UserHistoryKey(user), &entries); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			h.logger.Warn().Str("user", user).Err(err).Msg("history unreadable, treating as empty")
		}
		return nil
	}
	return entries
}

// LogPlay records a play event at the front of the user's history. A
// track already present is moved to the front rather than duplicated;
// the log never exceeds the configured cap.
func (h *History) LogPlay(ctx context.Context, user, trackID string) error {
	if trackID == "" {
		return errors.New("track id required")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	entries := h.List(ctx, user)

	pruned := make([]models.HistoryEntry, 0, len(entries)+1)
	pruned = append(pruned, models.HistoryEntry{TrackID: trackID, Timestamp: time.Now()})
	for _, e := range entries {
		if e.TrackID == trackID {
			continue
		}
		pruned = append(pruned, e)
	}

	if len(pruned) > h.limit {
		pruned = pruned[:h.limit]
	}

	if err := h.docs.Save(ctx, store.UserHistoryKey(user), pruned); err != nil {
		return fmt.Errorf("rewrite history for %s: %w", user, err)
	}
	return nil
}
