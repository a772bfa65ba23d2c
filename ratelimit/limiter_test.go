package ratelimit

import (
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tnkr-backend/cache"
)

// memoryStore is an in-memory cache.Store honoring TTLs against an
// injectable clock.
type memoryStore struct {
	values  map[string][]byte
	expires map[string]time.Time
	now     func() time.Time
}

func newMemoryStore(now func() time.Time) *memoryStore {
	return &memoryStore{
		values:  make(map[string][]byte),
		expires: make(map[string]time.Time),
		now:     now,
	}
}

func (s *memoryStore) Get(key string) ([]byte, error) {
	value, ok := s.values[key]
	if !ok || s.now().After(s.expires[key]) {
		return nil, cache.ErrCacheMiss
	}
	return value, nil
}

func (s *memoryStore) Set(key string, value []byte, ttl time.Duration) error {
	s.values[key] = value
	s.expires[key] = s.now().Add(ttl)
	return nil
}

func (s *memoryStore) Delete(key string) error {
	delete(s.values, key)
	delete(s.expires, key)
	return nil
}

// brokenStore fails every operation, simulating a cache outage.
type brokenStore struct{}

func (brokenStore) Get(string) ([]byte, error)              { return nil, fmt.Errorf("store down") }
func (brokenStore) Set(string, []byte, time.Duration) error { return fmt.Errorf("store down") }
func (brokenStore) Delete(string) error                     { return fmt.Errorf("store down") }

func testLogger() *slog.Logger {
	return slog.Default()
}

func newTestLimiter(store cache.Store, clock func() time.Time) *Limiter {
	l := New(store, testLogger(), 10, time.Minute)
	l.SetClock(clock)
	return l
}

func TestLimiter_CapWithinWindow(t *testing.T) {
	req := require.New(t)

	now := time.Unix(1_700_000_000, 0)
	clock := func() time.Time { return now }
	limiter := newTestLimiter(newMemoryStore(clock), clock)

	for i := 0; i < 10; i++ {
		req.True(limiter.CheckAndRecord("sender"), "send %d should pass", i+1)
	}
	req.False(limiter.CheckAndRecord("sender"), "11th send inside the window must be rejected")
}

func TestLimiter_WindowSlides(t *testing.T) {
	req := require.New(t)

	now := time.Unix(1_700_000_000, 0)
	clock := func() time.Time { return now }
	limiter := newTestLimiter(newMemoryStore(clock), clock)

	// 10 sends spaced 7s apart span 63s; by the time the cap would matter,
	// the earliest stamps have slid out of the trailing minute.
	for i := 0; i < 10; i++ {
		req.True(limiter.CheckAndRecord("sender"))
		now = now.Add(7 * time.Second)
	}
	req.True(limiter.CheckAndRecord("sender"), "spaced sends never exceed the trailing window")
}

func TestLimiter_RejectionLeavesWindowUntouched(t *testing.T) {
	req := require.New(t)

	now := time.Unix(1_700_000_000, 0)
	clock := func() time.Time { return now }
	limiter := newTestLimiter(newMemoryStore(clock), clock)

	for i := 0; i < 10; i++ {
		req.True(limiter.CheckAndRecord("sender"))
	}

	// Hammering while blocked must not extend the penalty.
	for i := 0; i < 5; i++ {
		req.False(limiter.CheckAndRecord("sender"))
	}

	now = now.Add(61 * time.Second)
	req.True(limiter.CheckAndRecord("sender"), "window must clear once the original stamps expire")
}

func TestLimiter_PerIdentity(t *testing.T) {
	req := require.New(t)

	now := time.Unix(1_700_000_000, 0)
	clock := func() time.Time { return now }
	limiter := newTestLimiter(newMemoryStore(clock), clock)

	for i := 0; i < 10; i++ {
		req.True(limiter.CheckAndRecord("alice"))
	}
	req.False(limiter.CheckAndRecord("alice"))
	req.True(limiter.CheckAndRecord("bob"), "one sender's window never affects another")
}

func TestLimiter_FailsOpenOnStoreOutage(t *testing.T) {
	req := require.New(t)

	limiter := New(brokenStore{}, testLogger(), 10, time.Minute)

	for i := 0; i < 50; i++ {
		req.True(limiter.CheckAndRecord("sender"), "cache outage must never block messaging")
	}
}
