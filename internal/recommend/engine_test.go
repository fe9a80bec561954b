// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tunedeck/tunedeck/internal/models"
)

// fixture implements every engine source over in-memory data.
type fixture struct {
	history map[string][]models.HistoryEntry
	liked   map[string][]string
	tracks  []models.Track
	popular []models.Track
}

func (f *fixture) engine(t *testing.T) *Engine {
	t.Helper()

	e, err := NewEngine(DefaultConfig(),
		historyStub{f.history}, likesStub{f.liked},
		trackStub{f.tracks}, popularStub{f.popular},
		resolverStub{f.allTracks()}, zerolog.Nop())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e
}

// allTracks resolves across both stores, track store first, mirroring
// resolver precedence.
func (f *fixture) allTracks() map[string]models.Track {
	out := make(map[string]models.Track)
	for _, t := range f.popular {
		out[t.ID] = t
	}
	for _, t := range f.tracks {
		out[t.ID] = t
	}
	return out
}

type historyStub struct {
	data map[string][]models.HistoryEntry
}

func (s historyStub) List(ctx context.Context, user string) []models.HistoryEntry {
	return s.data[user]
}

type likesStub struct {
	data map[string][]string
}

func (s likesStub) LikedSongs(ctx context.Context, user string) []string {
	return s.data[user]
}

type trackStub struct {
	tracks []models.Track
}

func (s trackStub) All(ctx context.Context) []models.Track {
	return s.tracks
}

type popularStub struct {
	tracks []models.Track
}

func (s popularStub) List(ctx context.Context, limit int) []models.Track {
	if limit > 0 && len(s.tracks) > limit {
		return s.tracks[:limit]
	}
	return s.tracks
}

type resolverStub struct {
	tracks map[string]models.Track
}

func (s resolverStub) Resolve(ctx context.Context, trackID string) (models.Track, error) {
	t, ok := s.tracks[trackID]
	if !ok {
		return models.Track{}, errors.New("track not found")
	}
	return t, nil
}

func played(ids ...string) []models.HistoryEntry {
	entries := make([]models.HistoryEntry, len(ids))
	for i, id := range ids {
		entries[i] = models.HistoryEntry{TrackID: id, Timestamp: time.Now()}
	}
	return entries
}

func track(id string, artists ...string) models.Track {
	return models.Track{ID: id, Title: "Track " + id, Artists: artists, Album: models.AlbumSingle}
}

func ids(tracks []models.Track) []string {
	out := make([]string, len(tracks))
	for i, t := range tracks {
		out[i] = t.ID
	}
	return out
}

func TestColdUserGetsPopularityFeed(t *testing.T) {
	f := &fixture{
		popular: []models.Track{track("p1", "X"), track("p2", "Y"), track("p3", "Z")},
	}
	e := f.engine(t)

	got := e.Recommend(context.Background(), "newcomer", 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(got))
	}
	// Feed order, unchanged.
	if got[0].ID != "p1" || got[1].ID != "p2" {
		t.Errorf("expected feed head in feed order, got %v", ids(got))
	}
}

func TestRecommendationsExcludeHistoryAndLikes(t *testing.T) {
	f := &fixture{
		history: map[string][]models.HistoryEntry{"alice": played("a1", "a2")},
		liked:   map[string][]string{"alice": {"a3"}},
		tracks: []models.Track{
			track("a1", "Foo"), track("a2", "Foo"), track("a3", "Foo"),
			track("new1", "Foo"), track("new2", "Foo"),
		},
		popular: []models.Track{track("a1", "Foo"), track("p1", "Other")},
	}
	e := f.engine(t)

	got := e.Recommend(context.Background(), "alice", 10)

	seen := models.TrackIDSet(ids(got))
	for _, banned := range []string{"a1", "a2", "a3"} {
		if _, ok := seen[banned]; ok {
			t.Errorf("recommendation leaked %s from history/likes", banned)
		}
	}
	if len(got) == 0 {
		t.Fatal("expected recommendations")
	}
}

func TestLikeWorthFivePlays(t *testing.T) {
	// Artist A: one liked track. Artist B: five played tracks.
	// Both must rank, and both must outrank artist C with four plays.
	f := &fixture{
		history: map[string][]models.HistoryEntry{
			"u": played("b1", "b2", "b3", "b4", "b5", "c1", "c2", "c3", "c4"),
		},
		liked: map[string][]string{"u": {"a1"}},
		tracks: []models.Track{
			track("a1", "A"), track("b1", "B"), track("b2", "B"), track("b3", "B"),
			track("b4", "B"), track("b5", "B"),
			track("c1", "C"), track("c2", "C"), track("c3", "C"), track("c4", "C"),
			track("newA", "A"), track("newB", "B"), track("newC", "C"),
		},
	}

	cfg := DefaultConfig()
	cfg.TopArtists = 2
	e, err := NewEngine(cfg,
		historyStub{f.history}, likesStub{f.liked},
		trackStub{f.tracks}, popularStub{nil},
		resolverStub{f.allTracks()}, zerolog.Nop())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got := e.Recommend(context.Background(), "u", 10)
	seen := models.TrackIDSet(ids(got))

	if _, ok := seen["newA"]; !ok {
		t.Errorf("one like must weigh as much as five plays; A's track missing from %v", ids(got))
	}
	if _, ok := seen["newB"]; !ok {
		t.Errorf("five plays must keep B ranked; got %v", ids(got))
	}
	if _, ok := seen["newC"]; ok {
		t.Errorf("C (score 4) must lose to A and B (score 5); got %v", ids(got))
	}
}

func TestArtistAffinityScenario(t *testing.T) {
	// history = [A(Foo), B(Foo)], likes = {C(Bar)}.
	// Scores: Foo 2, Bar 5. Top artists: [Bar, Foo].
	f := &fixture{
		history: map[string][]models.HistoryEntry{"u": played("trA", "trB")},
		liked:   map[string][]string{"u": {"trC"}},
		tracks: []models.Track{
			track("trA", "Foo"), track("trB", "Foo"), track("trC", "Bar"),
			track("bar1", "Bar"), track("bar2", "Bar"),
			track("foo1", "Foo"),
			track("baz1", "Baz"),
		},
	}
	e := f.engine(t)

	got := e.Recommend(context.Background(), "u", 10)

	want := []string{"bar1", "bar2", "foo1"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestUnresolvableActivityFallsBackToPopular(t *testing.T) {
	f := &fixture{
		history: map[string][]models.HistoryEntry{"u": played("ghost1", "ghost2")},
		tracks:  []models.Track{track("t1", "Foo")},
		popular: []models.Track{track("p1", "X"), track("p2", "Y")},
	}
	// The resolver knows none of the history tracks.
	e, err := NewEngine(DefaultConfig(),
		historyStub{f.history}, likesStub{nil},
		trackStub{f.tracks}, popularStub{f.popular},
		resolverStub{nil}, zerolog.Nop())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got := e.Recommend(context.Background(), "u", 5)
	if len(got) != 2 || got[0].ID != "p1" {
		t.Errorf("expected popularity fallback, got %v", ids(got))
	}
}

func TestTopUpFromPopularSkipsDuplicatesAndNeverPads(t *testing.T) {
	f := &fixture{
		history: map[string][]models.HistoryEntry{"u": played("a1")},
		tracks:  []models.Track{track("a1", "Foo"), track("new1", "Foo")},
		popular: []models.Track{
			track("new1", "Foo"), // already selected from the store scan
			track("a1", "Foo"),   // in history
			track("p1", "X"),
			track("p2", "Y"),
		},
	}
	e := f.engine(t)

	got := e.Recommend(context.Background(), "u", 10)

	want := []string{"new1", "p1", "p2"}
	if len(got) != len(want) {
		t.Fatalf("expected %v (no padding), got %v", want, ids(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestRecommendIsDeterministic(t *testing.T) {
	f := &fixture{
		history: map[string][]models.HistoryEntry{"u": played("t1", "t2")},
		tracks: []models.Track{
			track("t1", "Foo"), track("t2", "Bar"),
			track("n1", "Foo"), track("n2", "Bar"), track("n3", "Foo"),
		},
	}
	e := f.engine(t)
	ctx := context.Background()

	first := ids(e.Recommend(ctx, "u", 10))
	for i := 0; i < 20; i++ {
		again := ids(e.Recommend(ctx, "u", 10))
		if len(again) != len(first) {
			t.Fatalf("run %d: length changed %v vs %v", i, again, first)
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("run %d: order changed %v vs %v", i, again, first)
			}
		}
	}
}

func TestScoreTableTieBreakByFirstContribution(t *testing.T) {
	tbl := newScoreTable()
	tbl.add("B", 3)
	tbl.add("A", 3)
	tbl.add("C", 5)

	top := tbl.top(3)
	want := []string{"C", "B", "A"}
	for i, artist := range want {
		if top[i] != artist {
			t.Fatalf("expected %v, got %v", want, top)
		}
	}

	if tbl.score("C") != 5 {
		t.Errorf("score C = %d", tbl.score("C"))
	}
	if tbl.empty() {
		t.Error("table must not be empty")
	}
	tbl.add("", 10)
	if tbl.score("") != 0 {
		t.Error("empty artist names must not score")
	}
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LikeWeight = 0

	_, err := NewEngine(cfg, historyStub{nil}, likesStub{nil}, trackStub{nil}, popularStub{nil}, resolverStub{nil}, zerolog.Nop())
	if err == nil {
		t.Fatal("expected config validation error")
	}
}
