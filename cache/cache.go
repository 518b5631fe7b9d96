// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cache persists enrichment results between runs so an
// interrupted deck build resumes without repeating paid model calls.
// Entries are stored in BadgerDB keyed by seed word.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/poiesic/lexikit/core"
)

// Key prefix, versioned so a format change can invalidate old caches
// without deleting the database.
const keyPrefix = "enrich:v1:"

// Cache is a BadgerDB-backed store of per-word enrichment results.
type Cache struct {
	db     *badger.DB
	logger *slog.Logger
}

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// Open opens (or creates) a cache database at the given directory.
func Open(path string) (*Cache, error) {
	info, err := os.Stat(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		if err := os.MkdirAll(path, 0755); err != nil {
			return nil, err
		}
		info, err = os.Stat(path)
		if err != nil {
			return nil, err
		}
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", path)
	}

	return open(badger.DefaultOptions(path))
}

// OpenInMemory opens a cache that lives only for the process lifetime.
func OpenInMemory() (*Cache, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Cache, error) {
	opts.Logger = &badgerLoggerAdapter{logger: slog.Default()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Cache{
		db:     db,
		logger: slog.Default().With("component", "cache"),
	}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached entries for a word. The boolean reports whether
// the word was present.
func (c *Cache) Get(word string) ([]core.CardEntry, bool, error) {
	var entries []core.CardEntry
	found := false

	err := c.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(key(word))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entries)
		})
	})
	if err != nil {
		return nil, false, fmt.Errorf("cache read for %q: %w", word, err)
	}

	return entries, found, nil
}

// Put stores the entries for a word, replacing any previous value.
func (c *Cache) Put(word string, entries []core.CardEntry) error {
	value, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("cache encode for %q: %w", word, err)
	}

	err = c.db.Update(func(tx *badger.Txn) error {
		return tx.Set(key(word), value)
	})
	if err != nil {
		return fmt.Errorf("cache write for %q: %w", word, err)
	}
	return nil
}

// Delete removes a word from the cache. Deleting an absent word is not
// an error.
func (c *Cache) Delete(word string) error {
	err := c.db.Update(func(tx *badger.Txn) error {
		return tx.Delete(key(word))
	})
	if err != nil {
		return fmt.Errorf("cache delete for %q: %w", word, err)
	}
	return nil
}

// Words lists all cached seed words.
func (c *Cache) Words() ([]string, error) {
	var words []string

	err := c.db.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(keyPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			k := iter.Item().Key()
			words = append(words, string(k[len(keyPrefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cache scan: %w", err)
	}

	return words, nil
}

func key(word string) []byte {
	return []byte(keyPrefix + word)
}
