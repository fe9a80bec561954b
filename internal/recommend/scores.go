// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

package recommend

import "sort"

// scoreTable accumulates per-artist affinity scores while preserving the
// order in which artists first contributed. That insertion order breaks
// ties deterministically when ranking, instead of leaving tie order to
// map iteration.
type scoreTable struct {
	scores map[string]int
	order  []string
}

func newScoreTable() *scoreTable {
	return &scoreTable{scores: make(map[string]int)}
}

// add credits points to the artist, registering it on first contribution.
func (t *scoreTable) add(artist string, points int) {
	if artist == "" {
		return
	}
	if _, ok := t.scores[artist]; !ok {
		t.order = append(t.order, artist)
	}
	t.scores[artist] += points
}

// empty reports whether no artist has scored.
func (t *scoreTable) empty() bool {
	return len(t.scores) == 0
}

// score returns the accumulated score for artist.
func (t *scoreTable) score(artist string) int {
	return t.scores[artist]
}

// top returns up to n artists ranked by score descending, ties resolved
// by first-contribution order.
func (t *scoreTable) top(n int) []string {
	ranked := make([]string, len(t.order))
	copy(ranked, t.order)

	sort.SliceStable(ranked, func(i, j int) bool {
		return t.scores[ranked[i]] > t.scores[ranked[j]]
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
