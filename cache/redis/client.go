package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewClient creates a new Redis client from the given URL, and checks it is reachable
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, errMissingURL
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("unable to parse redis URL: %w", err)
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 2 * time.Second
	opts.WriteTimeout = 2 * time.Second

	client := redis.NewClient(opts)

	pingCtx, cancelFn := context.WithTimeout(ctx, 5*time.Second)
	defer cancelFn()

	if err = client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("unable to reach redis (ping): %w", err)
	}

	return client, nil
}
