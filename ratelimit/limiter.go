// Package ratelimit guards the message send path with a trailing
// sliding-window counter per sender, shared across that sender's devices
// and across process restarts through the cache store.
package ratelimit

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"tnkr-backend/cache"
)

const keyPrefix = "ratelimit:"

// Limiter caps send attempts per identity within a trailing window.
// The window is re-filtered on every check, so the cap holds for any 60s
// slice rather than resetting at fixed bucket boundaries.
type Limiter struct {
	store  cache.Store
	log    *slog.Logger
	limit  int
	window time.Duration
	now    func() time.Time
}

func New(store cache.Store, log *slog.Logger, limit int, window time.Duration) *Limiter {
	return &Limiter{
		store:  store,
		log:    log,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// CheckAndRecord reports whether identity may send now, and records the
// attempt when allowed. Rejected attempts leave storage untouched so a
// blocked sender cannot extend their own penalty.
//
// If the cache store is unreachable the limiter fails open: a cache outage
// must never block messaging.
func (l *Limiter) CheckAndRecord(identity string) bool {
	key := keyPrefix + identity
	now := l.now()
	windowStart := now.Add(-l.window)

	var stamps []int64
	data, err := l.store.Get(key)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &stamps); err != nil {
			l.log.Warn("discarding corrupt rate window", "identity", identity, "error", err)
			stamps = nil
		}
	case errors.Is(err, cache.ErrCacheMiss):
		// First send inside the window.
	default:
		l.log.Warn("rate limiter store unreachable, failing open", "identity", identity, "error", err)
		return true
	}

	recent := stamps[:0]
	for _, ts := range stamps {
		if !time.UnixMilli(ts).Before(windowStart) {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= l.limit {
		return false
	}

	recent = append(recent, now.UnixMilli())
	data, err = json.Marshal(recent)
	if err == nil {
		err = l.store.Set(key, data, l.window)
	}
	if err != nil {
		l.log.Warn("rate window write failed, allowing send", "identity", identity, "error", err)
	}
	return true
}

// SetClock overrides the time source. Test hook only.
func (l *Limiter) SetClock(now func() time.Time) {
	l.now = now
}
