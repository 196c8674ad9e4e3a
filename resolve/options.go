package resolve

import (
	"log/slog"
	"time"
)

type Option func(r *Resolver)

// WithLogger specifies the logger for the resolver
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = l
	}
}

// WithPlateCacheTTL enables caching of registry answers per plate.
// Defaults to 0 (disabled), as every plate lookup is billed by the registry
// but its answers may change
func WithPlateCacheTTL(ttl time.Duration) Option {
	return func(r *Resolver) {
		r.plateCacheTTL = ttl
	}
}

// WithInflightDedup makes concurrent cache misses on the same key
// share a single upstream call
func WithInflightDedup() Option {
	return func(r *Resolver) {
		r.dedup = true
	}
}

// WithHistoryConcurrency specifies how many reference tables
// are cross-checked in parallel for a history. Defaults to 3
func WithHistoryConcurrency(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.historyConcurrency = n
		}
	}
}

// WithClock specifies the time source used for timestamps
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		r.now = now
	}
}
