package covers

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"bindery/internal/logging"
)

// Cover is a confirmed resolution outcome. Image is always non-empty; Link
// is optional.
type Cover struct {
	Image string `json:"image"`
	Link  string `json:"link,omitempty"`
}

// Storage is the durable key-value collaborator backing the cache. Read
// reports absence via the boolean; Write and Delete failures are allowed and
// the cache treats them as no-ops.
type Storage interface {
	Read(ctx context.Context, key string) (string, bool, error)
	Write(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// cacheEntry is the serialized form of one cached decision. A nil Value is
// an explicit "no match found" decision, distinct from an absent entry.
type cacheEntry struct {
	Value     *Cover    `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Cache stores resolution outcomes keyed by record fingerprint with
// per-entry expiry. Caching is a performance optimization, not a correctness
// requirement: every storage failure degrades to a miss or a no-op and is
// never surfaced to callers.
type Cache struct {
	store  Storage
	logger *slog.Logger
	now    func() time.Time
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithClock overrides the cache's time source.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCache creates a cache over the provided storage. A nil store yields a
// cache where every lookup misses and every write is a no-op.
func NewCache(store Storage, logger *slog.Logger, opts ...CacheOption) *Cache {
	c := &Cache{
		store:  store,
		logger: logging.NewComponentLogger(logger, "covercache"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached outcome for a fingerprint. The second return is
// false on a miss. Expired and malformed entries are deleted and reported as
// misses.
func (c *Cache) Get(ctx context.Context, key string) (*Cover, bool) {
	if c.store == nil || strings.TrimSpace(key) == "" {
		return nil, false
	}

	raw, found, err := c.store.Read(ctx, key)
	if err != nil {
		c.logger.Debug("cache read failed, treating as miss", logging.Error(err))
		return nil, false
	}
	if !found {
		return nil, false
	}

	var entry cacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		c.logger.Debug("malformed cache entry, evicting", logging.String("key", key), logging.Error(err))
		c.evict(ctx, key)
		return nil, false
	}
	if !entry.ExpiresAt.After(c.now()) {
		c.evict(ctx, key)
		return nil, false
	}
	return entry.Value, true
}

// Set stores an outcome with the given lifetime, overwriting any previous
// entry for the key. Failures are swallowed.
func (c *Cache) Set(ctx context.Context, key string, outcome *Cover, ttl time.Duration) {
	if c.store == nil || strings.TrimSpace(key) == "" || ttl <= 0 {
		return
	}

	entry := cacheEntry{Value: outcome, ExpiresAt: c.now().Add(ttl)}
	raw, err := json.Marshal(entry)
	if err != nil {
		c.logger.Debug("marshal cache entry failed", logging.String("key", key), logging.Error(err))
		return
	}
	if err := c.store.Write(ctx, key, string(raw)); err != nil {
		c.logger.Debug("cache write failed, continuing without cache", logging.String("key", key), logging.Error(err))
	}
}

// DecodeEntry parses a serialized cache entry. Inspection tooling uses it to
// render stored decisions without going through a Cache.
func DecodeEntry(raw string) (outcome *Cover, expiresAt time.Time, err error) {
	var entry cacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return nil, time.Time{}, err
	}
	return entry.Value, entry.ExpiresAt, nil
}

func (c *Cache) evict(ctx context.Context, key string) {
	if err := c.store.Delete(ctx, key); err != nil {
		c.logger.Debug("cache delete failed", logging.String("key", key), logging.Error(err))
	}
}
