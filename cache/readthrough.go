package cache

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"
)

// ReadThrough wraps a query with cache-aside semantics: on a hit the loader
// is bypassed entirely, on a miss the loader runs and its result is stored
// under key with the given TTL.
//
// Every cache-touching step degrades gracefully. A broken store turns a read
// into a plain loader call and a failed write is only logged; persistence
// stays the source of truth and must remain reachable independently of cache
// health. Correctness of hits relies entirely on writers invalidating.
func ReadThrough[T any](store Store, log *slog.Logger, key string, ttl time.Duration, loader func() (T, error)) (T, error) {
	cached, err := store.Get(key)
	if err == nil {
		var value T
		if err := json.Unmarshal(cached, &value); err == nil {
			return value, nil
		}
		// Undecodable entry, treat as a miss and let the store below overwrite it.
		log.Warn("discarding undecodable cache entry", "key", key)
	} else if !errors.Is(err, ErrCacheMiss) {
		log.Warn("cache read failed, falling through to loader", "key", key, "error", err)
	}

	value, err := loader()
	if err != nil {
		var zero T
		return zero, err
	}

	if data, err := json.Marshal(value); err == nil {
		if err := store.Set(key, data, ttl); err != nil {
			log.Warn("cache write failed, skipping store", "key", key, "error", err)
		}
	}

	return value, nil
}

// Invalidate deletes the given keys unconditionally. Called synchronously
// after every mutation whose before-image might be cached, before the
// mutation's response is returned.
func Invalidate(store Store, log *slog.Logger, keys ...string) {
	for _, key := range keys {
		if err := store.Delete(key); err != nil {
			log.Warn("cache invalidation failed", "key", key, "error", err)
		}
	}
}
