// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

package store

import (
	"context"
	"sync"

	"github.com/goccy/go-json"
)

// MemoryStore is an in-memory Documents implementation. It backs unit
// tests and can serve as an ephemeral store when persistence is disabled.
// Values round-trip through JSON so callers see the same semantics as the
// Badger store.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryStore creates an empty in-memory document store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

// Load unmarshals the document stored under key into v.
func (s *MemoryStore) Load(ctx context.Context, key string, v any) error {
	s.mu.RLock()
	data, ok := s.docs[key]
	s.mu.RUnlock()

	if !ok {
		return ErrNotFound
	}
	if err := json.Unmarshal(data, v); err != nil {
		return ErrNotFound
	}
	return nil
}

// Save marshals v and replaces the document under key.
func (s *MemoryStore) Save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.docs[key] = data
	s.mu.Unlock()
	return nil
}

// Corrupt overwrites the document under key with bytes that do not parse
// as JSON. Test helper for exercising the corrupt-document path.
func (s *MemoryStore) Corrupt(key string) {
	s.mu.Lock()
	s.docs[key] = []byte("{not json")
	s.mu.Unlock()
}
