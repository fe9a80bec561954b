// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

type sampleDoc struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

func newTestBadger(t *testing.T) *BadgerStore {
	t.Helper()

	opts := badger.DefaultOptions(t.TempDir())
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	return NewBadgerStore(db, zerolog.Nop())
}

func TestBadgerStoreRoundTrip(t *testing.T) {
	s := newTestBadger(t)
	ctx := context.Background()

	in := sampleDoc{Name: "feed", Items: []string{"a", "b"}}
	if err := s.Save(ctx, "test:doc", in); err != nil {
		t.Fatalf("save: %v", err)
	}

	var out sampleDoc
	if err := s.Load(ctx, "test:doc", &out); err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.Name != in.Name || len(out.Items) != 2 {
		t.Errorf("round trip mismatch: %+v", out)
	}
}

func TestBadgerStoreMissingDocument(t *testing.T) {
	s := newTestBadger(t)

	var out sampleDoc
	err := s.Load(context.Background(), "test:absent", &out)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBadgerStoreOverwrite(t *testing.T) {
	s := newTestBadger(t)
	ctx := context.Background()

	if err := s.Save(ctx, "test:doc", sampleDoc{Name: "first"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(ctx, "test:doc", sampleDoc{Name: "second"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	var out sampleDoc
	if err := s.Load(ctx, "test:doc", &out); err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.Name != "second" {
		t.Errorf("expected last write to win, got %q", out.Name)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Save(ctx, "k", sampleDoc{Name: "v"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	var out sampleDoc
	if err := s.Load(ctx, "k", &out); err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.Name != "v" {
		t.Errorf("got %q", out.Name)
	}

	err := s.Load(ctx, "missing", &out)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreCorruptDocument(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Save(ctx, "k", sampleDoc{Name: "v"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	s.Corrupt("k")

	var out sampleDoc
	err := s.Load(ctx, "k", &out)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("corrupt document must read as absent, got %v", err)
	}
}

func TestUserKeys(t *testing.T) {
	if got := UserHistoryKey("alice"); got != "user:alice:history" {
		t.Errorf("history key: %q", got)
	}
	if got := UserLibraryKey("alice"); got != "user:alice:library" {
		t.Errorf("library key: %q", got)
	}
}
