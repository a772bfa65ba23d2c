// Package cache implements the key-value store with per-key TTL expiry that
// backs the read-through endpoints and the message rate limiter.
package cache

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = fmt.Errorf("cache miss")

// TTLs shared by the read-through endpoints.
const (
	TenMinuteTTL = 10 * time.Minute
	OneHourTTL   = time.Hour
)

// Store is the contract the read path and the rate limiter depend on.
// Implementations may fail; callers are expected to degrade, never to treat
// the cache as a source of truth.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
}

// Key derives the deterministic cache key for a logical page and its
// subject identity.
func Key(page, userID string) string {
	return fmt.Sprintf("%s:%s", page, userID)
}

// BadgerStore keeps cache entries in a dedicated Badger instance, relying on
// Badger's native entry TTL for expiry.
type BadgerStore struct {
	db  *badger.DB
	log *slog.Logger
}

func NewBadgerStore(db *badger.DB, log *slog.Logger) *BadgerStore {
	return &BadgerStore{db: db, log: log}
}

func (s *BadgerStore) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	return value, nil
}

func (s *BadgerStore) Set(key string, value []byte, ttl time.Duration) error {
	return s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), value).WithTTL(ttl)
		return txn.SetEntry(entry)
	})
}

func (s *BadgerStore) Delete(key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}
