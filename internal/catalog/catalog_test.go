// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tunedeck/tunedeck/internal/models"
	"github.com/tunedeck/tunedeck/internal/provider"
	"github.com/tunedeck/tunedeck/internal/store"
)

// fakeProvider implements provider.Catalog for catalog tests.
type fakeProvider struct {
	searchResults map[string][]provider.Result // keyed by filter
	artists       map[string]*provider.ArtistDetails
	songs         map[string]*provider.SongDetails
	chart         []provider.Result
	err           error

	searchCalls int
	artistCalls int
	songCalls   int
	chartCalls  int
}

func (f *fakeProvider) Search(ctx context.Context, query, filter string) ([]provider.Result, error) {
	f.searchCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.searchResults[filter], nil
}

func (f *fakeProvider) GetArtist(ctx context.Context, artistID string) (*provider.ArtistDetails, error) {
	f.artistCalls++
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.artists[artistID]
	if !ok {
		return nil, errors.New("artist not found")
	}
	return a, nil
}

func (f *fakeProvider) GetSong(ctx context.Context, trackID string) (*provider.SongDetails, error) {
	f.songCalls++
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.songs[trackID]
	if !ok {
		return nil, errors.New("song not found")
	}
	return s, nil
}

func (f *fakeProvider) GetChart(ctx context.Context, kind string, limit int) ([]provider.Result, error) {
	f.chartCalls++
	if f.err != nil {
		return nil, f.err
	}
	if limit > 0 && len(f.chart) > limit {
		return f.chart[:limit], nil
	}
	return f.chart, nil
}

func newTrackStore(t *testing.T) (*TrackStore, *store.MemoryStore) {
	t.Helper()
	docs := store.NewMemoryStore()
	return NewTrackStore(docs, zerolog.Nop()), docs
}

func track(id, title string, artists ...string) models.Track {
	return models.Track{ID: id, Title: title, Artists: artists, Album: models.AlbumSingle}
}

func TestTrackStoreAppendDedup(t *testing.T) {
	ts, _ := newTrackStore(t)
	ctx := context.Background()

	added, err := ts.AppendAll(ctx, []models.Track{
		track("t1", "One", "Foo"),
		track("t2", "Two", "Bar"),
	})
	if err != nil || added != 2 {
		t.Fatalf("first append: added=%d err=%v", added, err)
	}

	// Second batch overlaps on t2; the existing record must win.
	added, err = ts.AppendAll(ctx, []models.Track{
		{ID: "t2", Title: "Two (Remaster)", Artists: []string{"Bar"}},
		track("t3", "Three", "Baz"),
	})
	if err != nil || added != 1 {
		t.Fatalf("second append: added=%d err=%v", added, err)
	}

	got, err := ts.Get(ctx, "t2")
	if err != nil {
		t.Fatalf("get t2: %v", err)
	}
	if got.Title != "Two" {
		t.Errorf("first-seen must win, got title %q", got.Title)
	}

	all := ts.All(ctx)
	if len(all) != 3 {
		t.Errorf("expected 3 tracks, got %d", len(all))
	}
	// Store order is insertion order.
	if all[0].ID != "t1" || all[2].ID != "t3" {
		t.Errorf("unexpected store order: %v", trackIDs(all))
	}
}

func TestTrackStoreGetMiss(t *testing.T) {
	ts, _ := newTrackStore(t)

	_, err := ts.Get(context.Background(), "absent")
	if !errors.Is(err, ErrTrackNotFound) {
		t.Errorf("expected ErrTrackNotFound, got %v", err)
	}
}

func TestTrackStoreUnreadableDegradesToEmpty(t *testing.T) {
	ts, docs := newTrackStore(t)
	ctx := context.Background()

	if _, err := ts.AppendAll(ctx, []models.Track{track("t1", "One", "Foo")}); err != nil {
		t.Fatalf("append: %v", err)
	}
	docs.Corrupt(store.KeyCatalogTracks)

	if got := ts.All(ctx); len(got) != 0 {
		t.Errorf("corrupt store must read empty, got %d tracks", len(got))
	}
}

func TestPopularityFeedReplaceRejectsEmpty(t *testing.T) {
	docs := store.NewMemoryStore()
	feed := NewPopularityFeed(docs, &fakeProvider{}, provider.ChartTop, 50, zerolog.Nop())
	ctx := context.Background()

	if err := feed.Replace(ctx, []models.Track{track("p1", "Hit", "Foo")}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := feed.Replace(ctx, nil); err == nil {
		t.Fatal("empty replacement must be rejected")
	}

	if got := feed.List(ctx, 0); len(got) != 1 || got[0].ID != "p1" {
		t.Errorf("feed lost data: %v", got)
	}
}

func TestPopularityFeedRefresh(t *testing.T) {
	docs := store.NewMemoryStore()
	p := &fakeProvider{chart: []provider.Result{
		{ID: "c1", Title: "Hit One", Artists: []string{"Foo"}, Thumbnails: []provider.Thumbnail{{URL: "u=w120-h120-rj"}}},
		{ID: "", Title: "Broken entry"},
		{ID: "c2", Title: "Hit Two", Artists: []string{"Bar"}},
	}}
	feed := NewPopularityFeed(docs, p, provider.ChartTop, 50, zerolog.Nop())
	ctx := context.Background()

	if err := feed.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	got := feed.List(ctx, 0)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries (id-less skipped), got %d", len(got))
	}
	if got[0].Thumbnail != "u=w544-h544-rj" {
		t.Errorf("thumbnail not upscaled: %q", got[0].Thumbnail)
	}
	if got[0].LastUpdated != nil {
		t.Error("popularity entries must not carry LastUpdated")
	}
	if got[1].Album != models.AlbumSingle {
		t.Errorf("missing album must default to Single, got %q", got[1].Album)
	}
}

func TestPopularityFeedRefreshFailureKeepsFeed(t *testing.T) {
	docs := store.NewMemoryStore()
	p := &fakeProvider{chart: []provider.Result{{ID: "c1", Title: "Hit"}}}
	feed := NewPopularityFeed(docs, p, provider.ChartTop, 50, zerolog.Nop())
	ctx := context.Background()

	if err := feed.Refresh(ctx); err != nil {
		t.Fatalf("initial refresh: %v", err)
	}

	p.err = errors.New("provider down")
	if err := feed.Refresh(ctx); err == nil {
		t.Fatal("expected refresh error")
	}
	if got := feed.List(ctx, 0); len(got) != 1 {
		t.Errorf("failed refresh must not wipe the feed, got %d entries", len(got))
	}

	// Empty chart also keeps the feed, without an error.
	p.err = nil
	p.chart = nil
	if err := feed.Refresh(ctx); err != nil {
		t.Fatalf("empty refresh: %v", err)
	}
	if got := feed.List(ctx, 0); len(got) != 1 {
		t.Errorf("empty refresh must not wipe the feed, got %d entries", len(got))
	}
}

func TestResolverPrecedence(t *testing.T) {
	ts, _ := newTrackStore(t)
	docs := store.NewMemoryStore()
	ctx := context.Background()

	// Same ID in both stores with divergent metadata: the track store wins.
	if _, err := ts.AppendAll(ctx, []models.Track{{ID: "x", Title: "Store Version", Artists: []string{"Foo"}}}); err != nil {
		t.Fatalf("append: %v", err)
	}
	p := &fakeProvider{}
	feed := NewPopularityFeed(docs, p, provider.ChartTop, 50, zerolog.Nop())
	if err := feed.Replace(ctx, []models.Track{{ID: "x", Title: "Feed Version", Artists: []string{"Foo"}}}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	r := NewResolver(ts, feed, p, zerolog.Nop())

	got, err := r.Resolve(ctx, "x")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.Title != "Store Version" {
		t.Errorf("track store must shadow the feed, got %q", got.Title)
	}
	if p.songCalls != 0 {
		t.Errorf("provider must not be consulted on a local hit, calls=%d", p.songCalls)
	}
}

func TestResolverFallsThroughToProvider(t *testing.T) {
	ts, _ := newTrackStore(t)
	docs := store.NewMemoryStore()
	p := &fakeProvider{songs: map[string]*provider.SongDetails{
		"y": {ID: "y", Title: "Remote", Author: "Foo", DurationSeconds: "217",
			Thumbnails: []provider.Thumbnail{{URL: "u=w120-h120-rj"}}},
	}}
	feed := NewPopularityFeed(docs, p, provider.ChartTop, 50, zerolog.Nop())
	r := NewResolver(ts, feed, p, zerolog.Nop())
	ctx := context.Background()

	got, err := r.Resolve(ctx, "y")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.Title != "Remote" || len(got.Artists) != 1 || got.Artists[0] != "Foo" {
		t.Errorf("unexpected track: %+v", got)
	}
	if got.Album != models.AlbumUnknown {
		t.Errorf("on-demand album must be Unknown, got %q", got.Album)
	}
	if got.Thumbnail != "u=w544-h544-rj" {
		t.Errorf("thumbnail not upscaled: %q", got.Thumbnail)
	}

	// Resolve is a pure read: nothing cached.
	if len(ts.All(ctx)) != 0 {
		t.Error("Resolve must not populate the track store")
	}

	// All sources miss.
	if _, err := r.Resolve(ctx, "absent"); !errors.Is(err, ErrTrackNotFound) {
		t.Errorf("expected ErrTrackNotFound, got %v", err)
	}

	// Provider failure is a miss, not an error.
	p.err = errors.New("provider down")
	if _, err := r.Resolve(ctx, "y2"); !errors.Is(err, ErrTrackNotFound) {
		t.Errorf("expected ErrTrackNotFound on provider failure, got %v", err)
	}
}

func TestDescribeCachesProviderResult(t *testing.T) {
	ts, _ := newTrackStore(t)
	docs := store.NewMemoryStore()
	p := &fakeProvider{songs: map[string]*provider.SongDetails{
		"y": {ID: "y", Title: "Remote", Author: "Foo"},
	}}
	feed := NewPopularityFeed(docs, p, provider.ChartTop, 50, zerolog.Nop())
	r := NewResolver(ts, feed, p, zerolog.Nop())
	ctx := context.Background()

	got, err := r.Describe(ctx, "y")
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if got.LastUpdated == nil {
		t.Error("cached-on-demand track must be stamped")
	}

	cached, err := ts.Get(ctx, "y")
	if err != nil {
		t.Fatalf("expected y cached in track store: %v", err)
	}
	if cached.Title != "Remote" {
		t.Errorf("cached track mismatch: %+v", cached)
	}

	// Second describe is served from the store without a provider call.
	calls := p.songCalls
	if _, err := r.Describe(ctx, "y"); err != nil {
		t.Fatalf("second describe: %v", err)
	}
	if p.songCalls != calls {
		t.Error("second describe must hit the track store")
	}
}

func TestIngestIdempotent(t *testing.T) {
	ts, _ := newTrackStore(t)
	p := &fakeProvider{
		searchResults: map[string][]provider.Result{
			provider.FilterArtists: {{ID: "a1", Title: "Foo"}},
		},
		artists: map[string]*provider.ArtistDetails{
			"a1": {ID: "a1", Name: "Foo", Songs: []provider.Result{
				{ID: "t1", Title: "One", Artists: []string{"Foo"},
					Thumbnails: []provider.Thumbnail{{URL: "u=w120-h120-rj"}}},
				{ID: "t2", Title: "Two", Artists: []string{"Foo"}, Album: "Album X"},
				{ID: "", Title: "Broken"},
			}},
		},
	}
	ing := NewIngestor(ts, p, zerolog.Nop())
	ctx := context.Background()

	added, err := ing.Ingest(ctx, "Foo")
	if err != nil || added != 2 {
		t.Fatalf("first ingest: added=%d err=%v", added, err)
	}

	got, err := ts.Get(ctx, "t1")
	if err != nil {
		t.Fatalf("get t1: %v", err)
	}
	if got.LastUpdated == nil {
		t.Error("ingested track must be stamped")
	}
	if got.Album != models.AlbumSingle {
		t.Errorf("missing album must default to Single, got %q", got.Album)
	}
	if got.Thumbnail != "u=w544-h544-rj" {
		t.Errorf("thumbnail not upscaled: %q", got.Thumbnail)
	}

	t2, _ := ts.Get(ctx, "t2")
	if t2.Album != "Album X" {
		t.Errorf("provider album must be kept, got %q", t2.Album)
	}

	// Re-running with no external changes adds nothing.
	added, err = ing.Ingest(ctx, "Foo")
	if err != nil || added != 0 {
		t.Errorf("second ingest must be a no-op: added=%d err=%v", added, err)
	}
}

func TestIngestNoMatchIsNoop(t *testing.T) {
	ts, _ := newTrackStore(t)
	p := &fakeProvider{searchResults: map[string][]provider.Result{}}
	ing := NewIngestor(ts, p, zerolog.Nop())

	added, err := ing.Ingest(context.Background(), "Nobody")
	if err != nil || added != 0 {
		t.Errorf("no match must be a clean no-op: added=%d err=%v", added, err)
	}
}

func TestIngestProviderErrorAborts(t *testing.T) {
	ts, _ := newTrackStore(t)
	p := &fakeProvider{err: errors.New("provider down")}
	ing := NewIngestor(ts, p, zerolog.Nop())
	ctx := context.Background()

	if _, err := ing.Ingest(ctx, "Foo"); err == nil {
		t.Fatal("expected error")
	}
	if len(ts.All(ctx)) != 0 {
		t.Error("failed ingestion must not write")
	}
}

func TestAdminStoreTrackArtist(t *testing.T) {
	docs := store.NewMemoryStore()
	admin := NewAdminStore(docs, zerolog.Nop())
	ctx := context.Background()

	changed, err := admin.TrackArtist(ctx, "Foo")
	if err != nil || !changed {
		t.Fatalf("first add: changed=%v err=%v", changed, err)
	}
	changed, err = admin.TrackArtist(ctx, "Foo")
	if err != nil || changed {
		t.Fatalf("duplicate add must be absent-only: changed=%v err=%v", changed, err)
	}
	if _, err := admin.TrackArtist(ctx, ""); err == nil {
		t.Error("empty name must be rejected")
	}

	if got := admin.Artists(ctx); len(got) != 1 || got[0] != "Foo" {
		t.Errorf("unexpected artist list: %v", got)
	}
}

func TestSearchTracks(t *testing.T) {
	p := &fakeProvider{searchResults: map[string][]provider.Result{
		provider.FilterSongs: {
			{ID: "s1", Title: "Hit", Artists: []string{"Foo"}},
			{ID: "", Title: "Broken"},
			{ID: "s2", Title: "Other", Artists: []string{"Bar"}},
		},
	}}
	ctx := context.Background()

	tracks, err := SearchTracks(ctx, p, "hit", 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(tracks))
	}

	// Limit applies after dropping id-less entries.
	tracks, err = SearchTracks(ctx, p, "hit", 1)
	if err != nil || len(tracks) != 1 {
		t.Fatalf("limited search: %v %v", tracks, err)
	}

	// Empty query short-circuits without a provider call.
	calls := p.searchCalls
	if tracks, err := SearchTracks(ctx, p, "", 0); err != nil || tracks != nil {
		t.Errorf("empty query: %v %v", tracks, err)
	}
	if p.searchCalls != calls {
		t.Error("empty query must not call the provider")
	}
}
