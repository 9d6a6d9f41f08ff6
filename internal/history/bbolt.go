// Package history caches API responses in a bbolt database keyed by day, so
// stepping back and forth through the archive does not spend API quota.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/five82/apodbar/internal/apod"
)

var entriesBucket = []byte("entries")

// Store is a bbolt-backed day -> entry cache.
type Store struct {
	db *bbolt.DB
}

// Open opens (or creates) the cache database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	options := &bbolt.Options{Timeout: 1 * time.Second}
	db, err := bbolt.Open(path, 0o600, options)
	if err != nil {
		return nil, fmt.Errorf("could not open bbolt database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(entriesBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("could not create entries bucket: %w", err)
	}

	return &Store{db: db}, nil
}

func dayKey(day time.Time) []byte {
	return []byte(apod.FormatDay(day))
}

// Get returns the cached entry for day, if any.
func (s *Store) Get(day time.Time) (apod.Entry, bool, error) {
	var entry apod.Entry
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(entriesBucket).Get(dayKey(day))
		if v == nil {
			return nil
		}
		if err := json.Unmarshal(v, &entry); err != nil {
			return fmt.Errorf("error deserializing entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return entry, entry != nil, nil
}

// Put stores entry under day, replacing any previous value.
func (s *Store) Put(day time.Time, entry apod.Entry) error {
	value, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("error serializing entry: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(entriesBucket).Put(dayKey(day), value)
	})
}

// Recent returns up to limit cached entries, newest day first.
func (s *Store) Recent(limit int) ([]apod.Entry, error) {
	var entries []apod.Entry

	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(entriesBucket).Cursor()
		for k, v := c.Last(); k != nil && len(entries) < limit; k, v = c.Prev() {
			var entry apod.Entry
			if err := json.Unmarshal(v, &entry); err != nil {
				return fmt.Errorf("error deserializing entry %s: %w", k, err)
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Close releases the database file lock.
func (s *Store) Close() error {
	return s.db.Close()
}
