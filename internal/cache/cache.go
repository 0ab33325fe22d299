// internal/cache/cache.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Store is the key-value backend the cache runs on. The Redis
// infrastructure client satisfies it; tests substitute a fake.
// A missing key is reported as redis.Nil.
type Store interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Incr(ctx context.Context, key string) (int64, error)
	GetInt(ctx context.Context, key string) (int64, error)
}

// Cache is a read-through cache with per-resource staleness windows.
// Concurrent fills for the same key are collapsed to one upstream call,
// and a fill that raced with an invalidation is never written back.
type Cache struct {
	store  Store
	group  singleflight.Group
	logger *logrus.Logger
}

// New creates a cache over the given store
func New(store Store, logger *logrus.Logger) *Cache {
	return &Cache{
		store:  store,
		logger: logger,
	}
}

type fillResult struct {
	data []byte
}

// Fetch returns the cached value for key when fresh, otherwise runs fill
// once (de-duplicated across callers) and stores the result for ttl.
func Fetch[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, fill func(context.Context) (T, error)) (T, error) {
	var zero T

	var cached T
	err := c.store.GetJSON(ctx, key, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, redis.Nil) {
		// Backend trouble: fall through to the upstream rather than fail the read
		c.logger.WithError(err).WithField("key", key).Warn("Cache read failed")
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// Generation observed before the upstream call; bumped by Invalidate
		gen, genErr := c.generation(ctx, key)

		value, fillErr := fill(ctx)
		if fillErr != nil {
			return nil, fillErr
		}

		data, marshalErr := json.Marshal(value)
		if marshalErr != nil {
			return nil, marshalErr
		}

		// Only write back when no invalidation landed while we were in flight,
		// so a slow response cannot overwrite newer state.
		if genErr == nil {
			if current, err := c.generation(ctx, key); err == nil && current == gen {
				if err := c.store.SetJSON(ctx, key, json.RawMessage(data), ttl); err != nil {
					c.logger.WithError(err).WithField("key", key).Warn("Cache write failed")
				}
			} else {
				c.logger.WithField("key", key).Debug("Discarding stale cache fill")
			}
		}

		return fillResult{data: data}, nil
	})
	if err != nil {
		return zero, err
	}

	var out T
	if err := json.Unmarshal(v.(fillResult).data, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// Invalidate removes exactly the named entries and bumps their generation
// so in-flight fills against the old state are discarded.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	for _, key := range keys {
		if _, err := c.store.Incr(ctx, genKey(key)); err != nil {
			c.logger.WithError(err).WithField("key", key).Warn("Cache generation bump failed")
		}
	}
	if err := c.store.Del(ctx, keys...); err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{"keys": keys}).Warn("Cache invalidation failed")
	}
}

// CollectionVersion returns the version counter for a listing family.
// Listing keys embed the version, so bumping it retires every page of the
// family at once without touching unrelated entries.
func (c *Cache) CollectionVersion(ctx context.Context, name string) int64 {
	v, err := c.store.GetInt(ctx, genKey(name))
	if err != nil {
		return 0
	}
	return v
}

// BumpCollection advances the version counter for a listing family
func (c *Cache) BumpCollection(ctx context.Context, name string) {
	if _, err := c.store.Incr(ctx, genKey(name)); err != nil {
		c.logger.WithError(err).WithField("collection", name).Warn("Collection version bump failed")
	}
}

func (c *Cache) generation(ctx context.Context, key string) (int64, error) {
	v, err := c.store.GetInt(ctx, genKey(key))
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func genKey(key string) string {
	return "gen:" + key
}
