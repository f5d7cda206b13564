package taxonomy

import (
	"context"
	"encoding/json"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"

	"github.com/abhisek/prism/internal/logger"
)

// Cache stores query results by key. Implementations expire entries after
// their TTL and treat backend failures as misses.
type Cache interface {
	Get(ctx context.Context, key string) ([]Option, bool)
	Set(ctx context.Context, key string, opts []Option)
	Delete(ctx context.Context, key string)
}

const defaultCacheSize = 128

type cacheEntry struct {
	opts     []Option
	storedAt time.Time
}

// MemoryCache is an in-process LRU cache with a freshness window.
type MemoryCache struct {
	entries *lru.Cache[string, cacheEntry]
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryCache creates a cache holding up to size keys for ttl each.
func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	if size <= 0 {
		size = defaultCacheSize
	}
	// lru.New only fails for non-positive sizes.
	entries, _ := lru.New[string, cacheEntry](size)
	return &MemoryCache{entries: entries, ttl: ttl, now: time.Now}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]Option, bool) {
	e, ok := m.entries.Get(key)
	if !ok {
		return nil, false
	}
	if m.ttl > 0 && m.now().Sub(e.storedAt) > m.ttl {
		m.entries.Remove(key)
		return nil, false
	}
	return e.opts, true
}

func (m *MemoryCache) Set(_ context.Context, key string, opts []Option) {
	m.entries.Add(key, cacheEntry{opts: opts, storedAt: m.now()})
}

func (m *MemoryCache) Delete(_ context.Context, key string) {
	m.entries.Remove(key)
}

// RedisCache shares query results across prism processes.
type RedisCache struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
	log    logger.Logger
}

// NewRedisCache stores entries under prefix+key with the given ttl.
func NewRedisCache(client redis.Cmdable, prefix string, ttl time.Duration, log logger.Logger) *RedisCache {
	if log == nil {
		log = logger.NewNoOp()
	}
	return &RedisCache{client: client, prefix: prefix, ttl: ttl, log: log}
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]Option, bool) {
	raw, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.log.Warn("redis cache get failed", map[string]any{"key": key, "error": err.Error()})
		}
		return nil, false
	}
	var opts []Option
	if err := json.Unmarshal(raw, &opts); err != nil {
		r.log.Warn("redis cache entry corrupt", map[string]any{"key": key, "error": err.Error()})
		return nil, false
	}
	return opts, true
}

func (r *RedisCache) Set(ctx context.Context, key string, opts []Option) {
	raw, err := json.Marshal(opts)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, r.prefix+key, raw, r.ttl).Err(); err != nil {
		r.log.Warn("redis cache set failed", map[string]any{"key": key, "error": err.Error()})
	}
}

func (r *RedisCache) Delete(ctx context.Context, key string) {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		r.log.Warn("redis cache delete failed", map[string]any{"key": key, "error": err.Error()})
	}
}
