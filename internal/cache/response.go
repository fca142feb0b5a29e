// response.go provides a Valkey-backed cache for public API responses.
// Public endpoints serve the same payload to every visitor, so the encoded
// JSON is stored whole and subsequent requests skip the database entirely.
// Admin mutations invalidate the affected keys write-through.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// responseKeyPrefix namespaces cached responses in Valkey.
	responseKeyPrefix = "resp:"

	// DefaultResponseTTL is how long a cached public response stays fresh
	// even without an explicit invalidation.
	DefaultResponseTTL = 5 * time.Minute
)

// Well-known cache keys for the public endpoints.
const (
	KeySettings   = "settings"
	KeyHomeLayout = "home-layout"
	KeyProjects   = "projects"
	KeyWriting    = "writing"
)

// ProjectKey returns the cache key for a single project by slug.
func ProjectKey(slug string) string {
	return "project:" + slug
}

// ResponseCache manages cached public API payloads in Valkey. A nil
// *ResponseCache is valid and disables caching, so the server runs without
// Valkey configured.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResponseCache creates a response cache backed by the given Valkey client.
func NewResponseCache(client *redis.Client, ttl time.Duration) *ResponseCache {
	if ttl == 0 {
		ttl = DefaultResponseTTL
	}
	return &ResponseCache{client: client, ttl: ttl}
}

// Get retrieves a cached payload. Returns false on miss or when caching is
// disabled.
func (rc *ResponseCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if rc == nil {
		return nil, false
	}
	val, err := rc.client.Get(ctx, responseKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("response cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("response cache hit", "key", key)
	return val, true
}

// Set stores an encoded payload with the configured TTL. Failures are
// logged, never surfaced; the cache is an optimization.
func (rc *ResponseCache) Set(ctx context.Context, key string, payload []byte) {
	if rc == nil {
		return
	}
	if err := rc.client.Set(ctx, responseKeyPrefix+key, payload, rc.ttl).Err(); err != nil {
		slog.Warn("response cache set error", "key", key, "error", err)
	}
}

// Invalidate removes the given keys from the cache.
func (rc *ResponseCache) Invalidate(ctx context.Context, keys ...string) {
	if rc == nil || len(keys) == 0 {
		return
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = responseKeyPrefix + k
	}
	if err := rc.client.Del(ctx, prefixed...).Err(); err != nil {
		slog.Warn("response cache invalidate error", "keys", keys, "error", err)
	}
	slog.Debug("response cache invalidated", "keys", keys)
}

// InvalidateProjects removes the project list and every cached single
// project by scanning for the prefix. Used after project mutations, since a
// slug change can orphan a key the handler never sees.
func (rc *ResponseCache) InvalidateProjects(ctx context.Context) {
	if rc == nil {
		return
	}
	rc.Invalidate(ctx, KeyProjects)

	var cursor uint64
	for {
		keys, nextCursor, err := rc.client.Scan(ctx, cursor, responseKeyPrefix+"project:*", 100).Result()
		if err != nil {
			slog.Warn("response cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := rc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("response cache bulk delete error", "error", err)
			}
		}
		cursor = nextCursor
		if cursor == 0 {
			return
		}
	}
}
