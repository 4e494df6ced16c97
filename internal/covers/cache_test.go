package covers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// memStore is an in-memory Storage for tests.
type memStore struct {
	mu      sync.Mutex
	entries map[string]string

	readErr  error
	writeErr error
}

func newMemStore() *memStore {
	return &memStore{entries: make(map[string]string)}
}

func (s *memStore) Read(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return "", false, s.readErr
	}
	value, found := s.entries[key]
	return value, found, nil
}

func (s *memStore) Write(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	s.entries[key] = value
	return nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *memStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func TestCacheRoundTrip(t *testing.T) {
	store := newMemStore()
	cache := NewCache(store, nil)
	ctx := t.Context()

	cover := &Cover{Image: "http://img", Link: "http://link"}
	cache.Set(ctx, "key", cover, time.Hour)

	got, ok := cache.Get(ctx, "key")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got == nil || got.Image != cover.Image || got.Link != cover.Link {
		t.Errorf("got %+v, want %+v", got, cover)
	}
}

func TestCacheNegativeOutcome(t *testing.T) {
	store := newMemStore()
	cache := NewCache(store, nil)
	ctx := t.Context()

	cache.Set(ctx, "key", nil, time.Hour)

	got, ok := cache.Get(ctx, "key")
	if !ok {
		t.Fatal("a cached negative decision is a hit, not a miss")
	}
	if got != nil {
		t.Errorf("negative outcome must round-trip as nil, got %+v", got)
	}
}

func TestCacheExpiryEvicts(t *testing.T) {
	now := time.Now()
	clock := &now
	store := newMemStore()
	cache := NewCache(store, nil, WithClock(func() time.Time { return *clock }))
	ctx := t.Context()

	cache.Set(ctx, "key", &Cover{Image: "http://img"}, time.Minute)

	later := now.Add(2 * time.Minute)
	clock = &later

	if _, ok := cache.Get(ctx, "key"); ok {
		t.Fatal("expired entry must miss")
	}
	if store.len() != 0 {
		t.Error("expired entry must be deleted from storage")
	}
}

func TestCacheMalformedEntryEvicts(t *testing.T) {
	store := newMemStore()
	store.entries["key"] = "{not json"
	cache := NewCache(store, nil)

	if _, ok := cache.Get(t.Context(), "key"); ok {
		t.Fatal("malformed entry must miss")
	}
	if store.len() != 0 {
		t.Error("malformed entry must be deleted")
	}
}

func TestCacheStorageFailuresDegrade(t *testing.T) {
	store := newMemStore()
	store.readErr = errors.New("disk gone")
	store.writeErr = errors.New("disk gone")
	cache := NewCache(store, nil)
	ctx := t.Context()

	// Neither call may panic or surface the failure.
	cache.Set(ctx, "key", &Cover{Image: "http://img"}, time.Hour)
	if _, ok := cache.Get(ctx, "key"); ok {
		t.Error("read failure must be a miss")
	}
}

func TestCacheNilStoreIsNoop(t *testing.T) {
	cache := NewCache(nil, nil)
	ctx := t.Context()
	cache.Set(ctx, "key", &Cover{Image: "http://img"}, time.Hour)
	if _, ok := cache.Get(ctx, "key"); ok {
		t.Error("nil store must always miss")
	}
}

func TestCacheRejectsNonPositiveTTL(t *testing.T) {
	store := newMemStore()
	cache := NewCache(store, nil)
	cache.Set(t.Context(), "key", &Cover{Image: "http://img"}, 0)
	if store.len() != 0 {
		t.Error("entries must always expire strictly in the future")
	}
}

func TestCacheOverwritesWholeEntry(t *testing.T) {
	store := newMemStore()
	cache := NewCache(store, nil)
	ctx := t.Context()

	cache.Set(ctx, "key", &Cover{Image: "http://old"}, time.Hour)
	cache.Set(ctx, "key", nil, time.Hour)

	got, ok := cache.Get(ctx, "key")
	if !ok || got != nil {
		t.Errorf("overwrite must replace the outcome wholesale, got %+v ok=%v", got, ok)
	}
}
