// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// errCorrupt marks documents whose stored bytes no longer decode.
var errCorrupt = errors.New("corrupt document")

// BadgerStore implements Documents on top of an embedded BadgerDB.
// Suitable for production use with persistence across restarts.
type BadgerStore struct {
	db     *badger.DB
	logger zerolog.Logger
}

// Open opens (creating if necessary) a Badger-backed document store at path.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(path string, logger zerolog.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // badger's own logger is noisy; events are logged here

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", path, err)
	}

	return &BadgerStore{
		db:     db,
		logger: logger.With().Str("component", "store").Logger(),
	}, nil
}

// NewBadgerStore wraps an already opened BadgerDB. Used by tests and by
// callers that manage the DB lifecycle themselves.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBadgerStore(db *badger.DB, logger zerolog.Logger) *BadgerStore {
	return &BadgerStore{
		db:     db,
		logger: logger.With().Str("component", "store").Logger(),
	}
}

// Load unmarshals the document stored under key into v.
func (s *BadgerStore) Load(ctx context.Context, key string, v any) error {
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get document: %w", err)
		}

		return item.Value(func(val []byte) error {
			if uerr := json.Unmarshal(val, v); uerr != nil {
				return fmt.Errorf("%w: %s", errCorrupt, uerr)
			}
			return nil
		})
	})

	if errors.Is(err, errCorrupt) {
		// A corrupt document degrades to "not found" so callers fall back
		// to their empty default instead of failing reads.
		s.logger.Warn().Str("key", key).Err(err).Msg("corrupt document, treating as absent")
		return ErrNotFound
	}

	return err
}

// Save marshals v and atomically replaces the document under key.
func (s *BadgerStore) Save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal document %s: %w", key, err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("save document %s: %w", key, err)
	}

	return nil
}

// Close releases the underlying BadgerDB.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
