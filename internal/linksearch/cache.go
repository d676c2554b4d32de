package linksearch

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by a Cache that holds no value for a key.
var ErrCacheMiss = errors.New("cache miss")

// Cache stores encoded search results.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisCache keeps search results in Redis under a key prefix.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache creates a cache on client. Keys are stored as
// {prefix}:{key}.
func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	if prefix == "" {
		prefix = "richfield:linksearch"
	}
	return &RedisCache{client: client, prefix: prefix}
}

// Get implements Cache.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+":"+key).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	return val, err
}

// Set implements Cache.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+":"+key, value, ttl).Err()
}

type memoryEntry struct {
	value   []byte
	expires time.Time
}

// MemoryCache is a process-local Cache used when no Redis is configured.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCache creates an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry), now: time.Now}
}

// Get implements Cache.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	if !e.expires.IsZero() && !c.now().Before(e.expires) {
		delete(c.entries, key)
		return nil, ErrCacheMiss
	}
	return e.value, nil
}

// Set implements Cache. A zero ttl never expires.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expires = c.now().Add(ttl)
	}
	c.entries[key] = e
	return nil
}

// Cached serves repeated searches from a Cache. Cache failures fall through
// to the wrapped Searcher.
type Cached struct {
	next   Searcher
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewCached wraps next.
func NewCached(next Searcher, cache Cache, ttl time.Duration, logger *slog.Logger) *Cached {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cached{next: next, cache: cache, ttl: ttl, logger: logger}
}

func searchKey(q Query) string {
	return strings.Join([]string{"search", q.Model, q.Field, q.Locale, strings.ToLower(q.Q)}, ":")
}

// Search implements Searcher.
func (c *Cached) Search(ctx context.Context, q Query) ([]Result, error) {
	key := searchKey(q)
	if raw, err := c.cache.Get(ctx, key); err == nil {
		var results []Result
		if err := json.Unmarshal(raw, &results); err == nil {
			return results, nil
		}
	} else if !errors.Is(err, ErrCacheMiss) {
		c.logger.Warn("link search cache read failed", "error", err)
	}

	results, err := c.next.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(results); err == nil {
		if err := c.cache.Set(ctx, key, raw, c.ttl); err != nil {
			c.logger.Warn("link search cache write failed", "error", err)
		}
	}
	return results, nil
}

// Get implements Searcher. Single lookups are not cached.
func (c *Cached) Get(ctx context.Context, id string) (*Result, error) {
	return c.next.Get(ctx, id)
}
