package redis

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/turtacn/warrify/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/warrify/pkg/errors"
)

var (
	ErrCacheMiss           = errors.New(errors.ErrCodeNotFound, "cache miss")
	ErrSerializationFailed = errors.New(errors.ErrCodeSerialization, "serialization failed")
)

// Cache stores JSON documents under namespaced keys.
type Cache struct {
	client     *Client
	logger     logging.Logger
	namespace  string
	defaultTTL time.Duration
	group      singleflight.Group
}

// NewCache returns a cache whose keys live under {prefix}:{namespace}:.
func NewCache(client *Client, namespace string, defaultTTL time.Duration, log logging.Logger) *Cache {
	if log == nil {
		log = logging.NewNopLogger()
	}
	if defaultTTL <= 0 {
		defaultTTL = 15 * time.Minute
	}
	return &Cache{client: client, logger: log, namespace: namespace, defaultTTL: defaultTTL}
}

func (c *Cache) fullKey(key string) string {
	return c.client.Key(c.namespace, key)
}

// Get decodes the value at key into dest. A missing key yields ErrCacheMiss.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, c.fullKey(key)).Bytes()
	if err == redis.Nil {
		return ErrCacheMiss
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to get from cache")
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return ErrSerializationFailed.WithCause(err)
	}
	return nil
}

// Set stores value at key. A zero ttl uses the cache default.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	data, err := json.Marshal(value)
	if err != nil {
		return ErrSerializationFailed.WithCause(err)
	}
	if err := c.client.Set(ctx, c.fullKey(key), data, ttl).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to set cache")
	}
	return nil
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.fullKey(k)
	}
	return c.client.Del(ctx, full...).Err()
}

// GetOrSet returns the cached value at key or calls load, caches its result
// and decodes it into dest. hit reports whether the value came from redis.
// Concurrent misses on one key share a single load. Cache read and write
// failures are logged and do not fail the call.
func (c *Cache) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, load func(ctx context.Context) (interface{}, error)) (hit bool, err error) {
	err = c.Get(ctx, key, dest)
	if err == nil {
		return true, nil
	}
	if !errors.IsCode(err, errors.ErrCodeNotFound) {
		c.logger.Warn("cache read failed, loading directly", logging.String("key", key), logging.Err(err))
	}

	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		v, loadErr := load(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		if setErr := c.Set(ctx, key, v, ttl); setErr != nil {
			c.logger.Warn("cache write failed", logging.String("key", key), logging.Err(setErr))
		}
		return v, nil
	})
	if err != nil {
		return false, err
	}

	data, err := json.Marshal(val)
	if err != nil {
		return false, ErrSerializationFailed.WithCause(err)
	}
	return false, json.Unmarshal(data, dest)
}

// DeleteByPrefix removes every key in the namespace starting with prefix.
func (c *Cache) DeleteByPrefix(ctx context.Context, prefix string) (int64, error) {
	var deleted int64
	var cursor uint64
	match := c.fullKey(prefix) + "*"
	for {
		keys, next, err := c.client.Scan(ctx, cursor, match, 100).Result()
		if err != nil {
			return deleted, errors.Wrap(err, errors.ErrCodeCacheError, "failed to scan cache")
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return deleted, errors.Wrap(err, errors.ErrCodeCacheError, "failed to delete cache keys")
			}
			deleted += int64(len(keys))
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return deleted, nil
}

// RiskCache keeps one risk assessment per product per calendar day, so a
// product's score is computed at most once a day unless the product changes.
type RiskCache struct {
	cache *Cache
}

// NewRiskCache stores entries under {prefix}:risk:{productID}:{day} for ttl.
func NewRiskCache(client *Client, ttl time.Duration, log logging.Logger) *RiskCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RiskCache{cache: NewCache(client, "risk", ttl, log)}
}

func riskKey(productID int64, day string) string {
	return strconv.FormatInt(productID, 10) + ":" + day
}

// GetOrCompute returns the cached assessment for (productID, day) or computes
// and stores it. hit is true when nothing was computed.
func (r *RiskCache) GetOrCompute(ctx context.Context, productID int64, day string, dest interface{}, compute func(ctx context.Context) (interface{}, error)) (bool, error) {
	return r.cache.GetOrSet(ctx, riskKey(productID, day), dest, 0, compute)
}

// Invalidate drops every cached day for productID.
func (r *RiskCache) Invalidate(ctx context.Context, productID int64) error {
	_, err := r.cache.DeleteByPrefix(ctx, strconv.FormatInt(productID, 10)+":")
	return err
}
