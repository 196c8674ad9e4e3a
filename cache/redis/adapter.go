package redis

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sig-0/fipeval/cache"
	"github.com/sig-0/fipeval/metrics"
)

const (
	backendName = "redis"

	// DefaultKeyPrefix isolates the service keys in a shared Redis
	DefaultKeyPrefix = "fipeval:"
)

var errMissingURL = errors.New("missing redis URL")

// Cache is a Redis-backed TTL cache, shared between service instances.
// Values are stored JSON-encoded; backend errors degrade to misses
type Cache struct {
	client redis.Cmdable
	logger *slog.Logger
	prefix string
}

// Option configures the Redis cache
type Option func(c *Cache)

// WithLogger specifies the logger for the cache
func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) {
		c.logger = l
	}
}

// WithKeyPrefix overrides the prefix applied to every key
func WithKeyPrefix(prefix string) Option {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

var _ cache.Cache = (*Cache)(nil)

// NewCache creates a cache on top of the given Redis client
func NewCache(client redis.Cmdable, opts ...Option) *Cache {
	c := &Cache{
		client: client,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		prefix: DefaultKeyPrefix,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Cache) Get(ctx context.Context, key string, out any) bool {
	hit := c.get(ctx, key, out)

	metrics.ObserveCacheLookup(backendName, cache.Namespace(key), hit)

	return hit
}

func (c *Cache) get(ctx context.Context, key string, out any) bool {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}

	if err != nil {
		c.logger.Warn(
			"unable to read cache entry",
			"key", key,
			"err", err,
		)

		return false
	}

	if err = json.Unmarshal(raw, out); err != nil {
		c.logger.Warn(
			"unable to decode cache entry",
			"key", key,
			"err", err,
		)

		return false
	}

	return true
}

func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn(
			"unable to encode cache entry",
			"key", key,
			"err", err,
		)

		return
	}

	// SET with PX makes the write and its expiry atomic
	if err = c.client.Set(ctx, c.prefix+key, raw, ttl).Err(); err != nil {
		c.logger.Warn(
			"unable to write cache entry",
			"key", key,
			"err", err,
		)
	}
}
