package cache

import (
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// mapStore is a minimal in-memory Store for the read-through tests.
type mapStore struct {
	values map[string][]byte
}

func newMapStore() *mapStore {
	return &mapStore{values: make(map[string][]byte)}
}

func (s *mapStore) Get(key string) ([]byte, error) {
	value, ok := s.values[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return value, nil
}

func (s *mapStore) Set(key string, value []byte, _ time.Duration) error {
	s.values[key] = value
	return nil
}

func (s *mapStore) Delete(key string) error {
	delete(s.values, key)
	return nil
}

type failingStore struct{}

func (failingStore) Get(string) ([]byte, error)              { return nil, fmt.Errorf("store down") }
func (failingStore) Set(string, []byte, time.Duration) error { return fmt.Errorf("store down") }
func (failingStore) Delete(string) error                     { return fmt.Errorf("store down") }

func TestKey(t *testing.T) {
	require.Equal(t, "current-requests:user-1", Key("current-requests", "user-1"))
}

func TestReadThrough_MissThenHit(t *testing.T) {
	req := require.New(t)
	store := newMapStore()

	calls := 0
	loader := func() (fixture, error) {
		calls++
		return fixture{Name: "loaded", Count: calls}, nil
	}

	first, err := ReadThrough(store, slog.Default(), "k", time.Minute, loader)
	req.NoError(err)
	req.Equal(1, first.Count)
	req.Equal(1, calls)

	// Second read must come straight from the cache.
	second, err := ReadThrough(store, slog.Default(), "k", time.Minute, loader)
	req.NoError(err)
	req.Equal(first, second)
	req.Equal(1, calls)
}

func TestReadThrough_InvalidateForcesReload(t *testing.T) {
	req := require.New(t)
	store := newMapStore()

	calls := 0
	loader := func() (fixture, error) {
		calls++
		return fixture{Count: calls}, nil
	}

	_, err := ReadThrough(store, slog.Default(), "k", time.Minute, loader)
	req.NoError(err)

	Invalidate(store, slog.Default(), "k")

	value, err := ReadThrough(store, slog.Default(), "k", time.Minute, loader)
	req.NoError(err)
	req.Equal(2, value.Count)
	req.Equal(2, calls)
}

func TestReadThrough_DegradesWhenStoreDown(t *testing.T) {
	req := require.New(t)

	calls := 0
	loader := func() (fixture, error) {
		calls++
		return fixture{Name: "direct"}, nil
	}

	// Every read hits the loader, none of them errors.
	for i := 0; i < 3; i++ {
		value, err := ReadThrough(failingStore{}, slog.Default(), "k", time.Minute, loader)
		req.NoError(err)
		req.Equal("direct", value.Name)
	}
	req.Equal(3, calls)
}

func TestReadThrough_LoaderErrorPropagates(t *testing.T) {
	req := require.New(t)

	wantErr := fmt.Errorf("record store unavailable")
	_, err := ReadThrough(newMapStore(), slog.Default(), "k", time.Minute, func() (fixture, error) {
		return fixture{}, wantErr
	})
	req.ErrorIs(err, wantErr)
}

func TestReadThrough_CorruptEntryFallsBack(t *testing.T) {
	req := require.New(t)
	store := newMapStore()
	req.NoError(store.Set("k", []byte("{not json"), time.Minute))

	value, err := ReadThrough(store, slog.Default(), "k", time.Minute, func() (fixture, error) {
		return fixture{Name: "fresh"}, nil
	})
	req.NoError(err)
	req.Equal("fresh", value.Name)
}

func TestBadgerStore(t *testing.T) {
	req := require.New(t)

	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	store := NewBadgerStore(db, slog.Default())

	_, err = store.Get("missing")
	req.ErrorIs(err, ErrCacheMiss)

	req.NoError(store.Set("k", []byte("value"), time.Minute))
	value, err := store.Get("k")
	req.NoError(err)
	req.Equal([]byte("value"), value)

	req.NoError(store.Delete("k"))
	_, err = store.Get("k")
	req.ErrorIs(err, ErrCacheMiss)
}

func TestBadgerStore_EntryExpires(t *testing.T) {
	req := require.New(t)

	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	store := NewBadgerStore(db, slog.Default())
	req.NoError(store.Set("k", []byte("value"), time.Second))

	req.Eventually(func() bool {
		_, err := store.Get("k")
		return err == ErrCacheMiss
	}, 5*time.Second, 100*time.Millisecond, "entry must expire with its TTL")
}
