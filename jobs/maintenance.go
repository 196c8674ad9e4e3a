package jobs

import (
	"context"
	"log/slog"
	"time"
)

// CatalogRefresher refreshes the cached reference table listing
type CatalogRefresher interface {
	RefreshCatalog(context.Context) error
}

// Sweeper drops expired cache entries
type Sweeper interface {
	Sweep() int
}

// CatalogRefresh keeps the reference table listing warm
type CatalogRefresh struct {
	refresher CatalogRefresher
	interval  time.Duration
	timeout   time.Duration
}

// NewCatalogRefresh creates a catalog warm-up job running every interval
func NewCatalogRefresh(refresher CatalogRefresher, interval time.Duration) *CatalogRefresh {
	return &CatalogRefresh{
		refresher: refresher,
		interval:  interval,
		timeout:   30 * time.Second,
	}
}

func (c *CatalogRefresh) Name() string {
	return "catalog-refresh"
}

func (c *CatalogRefresh) Interval() time.Duration {
	return c.interval
}

func (c *CatalogRefresh) Run(ctx context.Context) error {
	ctx, cancelFn := context.WithTimeout(ctx, c.timeout)
	defer cancelFn()

	return c.refresher.RefreshCatalog(ctx)
}

// CacheSweep reclaims expired entries of an in-process cache
type CacheSweep struct {
	sweeper  Sweeper
	logger   *slog.Logger
	interval time.Duration
}

// NewCacheSweep creates a cache sweep job running every interval
func NewCacheSweep(sweeper Sweeper, interval time.Duration, logger *slog.Logger) *CacheSweep {
	return &CacheSweep{
		sweeper:  sweeper,
		logger:   logger,
		interval: interval,
	}
}

func (c *CacheSweep) Name() string {
	return "cache-sweep"
}

func (c *CacheSweep) Interval() time.Duration {
	return c.interval
}

func (c *CacheSweep) Run(_ context.Context) error {
	if removed := c.sweeper.Sweep(); removed > 0 {
		c.logger.Debug(
			"swept expired cache entries",
			"removed", removed,
		)
	}

	return nil
}
