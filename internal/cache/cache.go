// Package cache keeps the hot list responses (/todos, /categories) in redis
// so repeated reads skip sqlite. Redis being down never fails a request:
// every miss or error degrades to the repository.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const (
	KeyTodos      = "list:todos"
	KeyCategories = "list:categories"
)

type envelope struct {
	Version  int             `json:"version"`
	CachedAt time.Time       `json:"cachedAt"`
	Items    json.RawMessage `json:"items"`
}

// ListCache stores serialized list payloads under a TTL.
type ListCache struct {
	rdb *redis.Client
	ttl time.Duration
	now func() time.Time
}

// New returns a list cache over rdb. ttl <= 0 falls back to one minute.
func New(rdb *redis.Client, ttl time.Duration) *ListCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &ListCache{rdb: rdb, ttl: ttl, now: time.Now}
}

// Get unmarshals the cached entry for key into out. The second return is
// false on a miss or any redis/decoding failure.
func (c *ListCache) Get(ctx context.Context, key string, out any) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.WithError(err).WithField("key", key).Warn("cache read failed")
		}
		return false
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.WithError(err).WithField("key", key).Warn("cache entry corrupt, dropping")
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	if err := json.Unmarshal(env.Items, out); err != nil {
		log.WithError(err).WithField("key", key).Warn("cache items corrupt, dropping")
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

// Set stores items under key with the configured TTL.
func (c *ListCache) Set(ctx context.Context, key string, items any) {
	if c == nil || c.rdb == nil {
		return
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		log.WithError(err).WithField("key", key).Error("failed to marshal cache items")
		return
	}
	data, err := json.Marshal(envelope{
		Version:  1,
		CachedAt: c.now().UTC(),
		Items:    itemsJSON,
	})
	if err != nil {
		log.WithError(err).WithField("key", key).Error("failed to marshal cache envelope")
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.WithError(err).WithField("key", key).Warn("cache write failed")
	}
}

// Invalidate drops the given keys. Mutations call this so the next list read
// rebuilds from the repository.
func (c *ListCache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.rdb == nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.WithError(err).WithField("keys", keys).Warn("cache invalidation failed")
	}
}
