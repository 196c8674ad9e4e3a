package resolve

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/sig-0/fipeval/cache"
)

// loader implements populate-on-miss over the shared cache.
// Concurrent misses for the same key may all hit the upstream,
// unless in-flight deduplication is enabled
type loader struct {
	cache cache.Cache
	group *singleflight.Group // nil if deduplication is disabled
}

func newLoader(c cache.Cache, dedup bool) *loader {
	l := &loader{
		cache: c,
	}

	if dedup {
		l.group = &singleflight.Group{}
	}

	return l
}

// load returns the cached value under key, or fetches and caches it.
// Fetch errors are never cached
func load[T any](
	ctx context.Context,
	l *loader,
	key string,
	ttl time.Duration,
	fetch func(context.Context) (T, error),
) (T, error) {
	var cached T
	if l.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	fetchAndStore := func(ctx context.Context) (T, error) {
		v, err := fetch(ctx)
		if err != nil {
			var zero T

			return zero, err
		}

		l.cache.Set(ctx, key, v, ttl)

		return v, nil
	}

	if l.group == nil {
		return fetchAndStore(ctx)
	}

	v, err, _ := l.group.Do(key, func() (any, error) {
		// Another caller may have populated the key while this one waited
		var fresh T
		if l.cache.Get(ctx, key, &fresh) {
			return fresh, nil
		}

		// The fetch is shared by every waiter, so it must outlive
		// the cancellation of the caller that started it
		return fetchAndStore(context.WithoutCancel(ctx))
	})
	if err != nil {
		var zero T

		return zero, err
	}

	return v.(T), nil //nolint:forcetypeassert // always T
}
