package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	publicAppKeyPrefix = keyPrefix + "public_app:"
	negCacheKeySuffix  = ":neg"

	// DefaultPublicAppTTL is the TTL for cached public app payloads.
	DefaultPublicAppTTL = 5 * time.Minute

	// NegativeCacheTTL is the TTL for negative cache entries.
	NegativeCacheTTL = time.Minute
)

// Common cache errors.
var (
	ErrCacheMiss   = errors.New("cache miss")
	ErrNegativeHit = errors.New("negatively cached")
)

// GetPublicApp returns the cached payload of a public app.
// Returns ErrCacheMiss when nothing is cached and ErrNegativeHit when the
// app is known not to exist.
func (c *Cache) GetPublicApp(ctx context.Context, appID string) ([]byte, error) {
	key := publicAppKey(appID)

	pipe := c.client.Pipeline()
	payload := pipe.Get(ctx, key)
	negative := pipe.Exists(ctx, key+negCacheKeySuffix)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("redis get public app failed: %w", err)
	}

	if negative.Val() > 0 {
		return nil, ErrNegativeHit
	}

	data, err := payload.Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get public app failed: %w", err)
	}

	return data, nil
}

// SetPublicApp stores a public app payload and clears any negative entry.
func (c *Cache) SetPublicApp(ctx context.Context, appID string, payload []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultPublicAppTTL
	}
	key := publicAppKey(appID)

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, key, payload, ttl)
	pipe.Del(ctx, key+negCacheKeySuffix)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache public app: %w", err)
	}

	return nil
}

// SetPublicAppNotFound marks an app id as not found.
func (c *Cache) SetPublicAppNotFound(ctx context.Context, appID string) error {
	key := publicAppKey(appID) + negCacheKeySuffix

	if err := c.client.SetEx(ctx, key, "", NegativeCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set negative cache: %w", err)
	}

	return nil
}

// DeletePublicApp removes both entries of an app id.
func (c *Cache) DeletePublicApp(ctx context.Context, appID string) error {
	key := publicAppKey(appID)

	if err := c.client.Del(ctx, key, key+negCacheKeySuffix).Err(); err != nil {
		return fmt.Errorf("failed to delete public app from cache: %w", err)
	}

	return nil
}

func publicAppKey(appID string) string {
	return publicAppKeyPrefix + appID
}
