package memory

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/sig-0/fipeval/cache"
	"github.com/sig-0/fipeval/metrics"
)

const backendName = "memory"

type entry struct {
	insertedAt time.Time
	value      any
	ttl        time.Duration
}

// expired reports if the entry is logically dead at now
func (e entry) expired(now time.Time) bool {
	return now.Sub(e.insertedAt) >= e.ttl
}

// Cache is an in-process TTL cache.
// Stored values are kept by reference, callers must not mutate them
type Cache struct {
	data map[string]entry
	now  func() time.Time

	mu sync.RWMutex
}

// Option configures the memory cache
type Option func(c *Cache)

// WithClock overrides the time source of the cache
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

var _ cache.Cache = (*Cache)(nil)

// NewCache creates a new, empty in-memory cache
func NewCache(opts ...Option) *Cache {
	c := &Cache{
		data: make(map[string]entry),
		now:  time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Cache) Get(_ context.Context, key string, out any) bool {
	hit := c.get(key, out)

	metrics.ObserveCacheLookup(backendName, cache.Namespace(key), hit)

	return hit
}

func (c *Cache) get(key string, out any) bool {
	c.mu.RLock()
	e, ok := c.data[key]
	c.mu.RUnlock()

	if !ok {
		return false
	}

	if e.expired(c.now()) {
		c.mu.Lock()

		// Only drop the entry if it wasn't replaced in the meantime
		if cur, ok := c.data[key]; ok && cur.expired(c.now()) {
			delete(c.data, key)
		}

		c.mu.Unlock()

		return false
	}

	return assign(out, e.value)
}

func (c *Cache) Set(_ context.Context, key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	c.mu.Lock()
	c.data[key] = entry{
		insertedAt: c.now(),
		value:      value,
		ttl:        ttl,
	}
	c.mu.Unlock()
}

// Sweep drops every expired entry, returning the number removed
func (c *Cache) Sweep() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0

	for k, e := range c.data {
		if e.expired(now) {
			delete(c.data, k)

			removed++
		}
	}

	return removed
}

// Len returns the number of stored entries, expired ones included
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.data)
}

// assign copies value into the pointer out, if the types line up
func assign(out, value any) bool {
	dst := reflect.ValueOf(out)
	if dst.Kind() != reflect.Pointer || dst.IsNil() {
		return false
	}

	src := reflect.ValueOf(value)
	if !src.IsValid() {
		return false
	}

	elem := dst.Elem()

	// Allow storing T and loading into *T, or storing *T and loading into **T
	if src.Type().AssignableTo(elem.Type()) {
		elem.Set(src)

		return true
	}

	// Allow storing *T and loading into *T
	if src.Kind() == reflect.Pointer && !src.IsNil() && src.Elem().Type().AssignableTo(elem.Type()) {
		elem.Set(src.Elem())

		return true
	}

	return false
}
