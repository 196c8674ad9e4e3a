package mock

import (
	"context"
	"time"
)

type (
	GetDelegate func(context.Context, string, any) bool
	SetDelegate func(context.Context, string, any, time.Duration)
)

type Cache struct {
	GetFn GetDelegate
	SetFn SetDelegate
}

func (m *Cache) Get(ctx context.Context, key string, out any) bool {
	if m.GetFn != nil {
		return m.GetFn(ctx, key, out)
	}

	return false
}

func (m *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if m.SetFn != nil {
		m.SetFn(ctx, key, value, ttl)
	}
}
