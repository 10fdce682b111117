package accounts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const listCacheVersionKey = "accounts:list:version"

// ListCache is a version-stamped read-through cache for the chart-of-accounts
// listing. Every mutation bumps the version, orphaning stale entries rather
// than deleting them. Cache failures fall back to the loader; the store stays
// the source of truth.
type ListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListCache wraps a redis client. A nil client disables caching.
func NewListCache(client *redis.Client, ttl time.Duration) *ListCache {
	return &ListCache{client: client, ttl: ttl}
}

func (c *ListCache) key(ctx context.Context) (string, error) {
	ver, err := c.client.Get(ctx, listCacheVersionKey).Int64()
	if err == redis.Nil {
		ver = 1
		if err := c.client.Set(ctx, listCacheVersionKey, ver, 0).Err(); err != nil {
			return "", err
		}
	} else if err != nil {
		return "", err
	}
	return fmt.Sprintf("accounts:list:%d", ver), nil
}

// Fetch returns the cached listing or populates it from the loader.
func (c *ListCache) Fetch(ctx context.Context, loader func(context.Context) ([]AccountView, error)) ([]AccountView, error) {
	if c == nil || c.client == nil {
		return loader(ctx)
	}

	key, err := c.key(ctx)
	if err != nil {
		return loader(ctx)
	}

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var views []AccountView
		if err := json.Unmarshal(payload, &views); err == nil {
			return views, nil
		}
	}

	views, err := loader(ctx)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(views); err == nil {
		_ = c.client.Set(ctx, key, raw, c.ttl).Err()
	}
	return views, nil
}

// Invalidate bumps the cache version so the next Fetch misses.
func (c *ListCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Incr(ctx, listCacheVersionKey).Err()
}
