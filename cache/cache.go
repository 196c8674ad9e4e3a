// Package cache defines the keyed, time-bounded store shared by the
// upstream-fetching components.
//
// A single cache instance serves every lookup type, so callers namespace
// their keys with Key (e.g. "valuation:001004-9:current").
package cache

import (
	"context"
	"strings"
	"time"
)

// Cache is an abstraction over a TTL key-value store
type Cache interface {
	// Get loads the value stored under key into out (a non-nil pointer).
	// It reports false on a miss, on an expired entry, or when the stored
	// value cannot be loaded into out
	Get(ctx context.Context, key string, out any) bool

	// Set stores value under key for the given ttl.
	// A non-positive ttl is a no-op
	Set(ctx context.Context, key string, value any, ttl time.Duration)
}

const separator = ":"

// Key builds a namespaced cache key
func Key(namespace string, parts ...string) string {
	if len(parts) == 0 {
		return namespace
	}

	return namespace + separator + strings.Join(parts, separator)
}

// Namespace returns the namespace portion of a key built with Key
func Namespace(key string) string {
	if i := strings.Index(key, separator); i != -1 {
		return key[:i]
	}

	return key
}
