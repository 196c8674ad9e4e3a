package resolve

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/sig-0/fipeval/cache"
	"github.com/sig-0/fipeval/types"
)

const (
	tablesKey = "tables"
	tablesTTL = 12 * time.Hour
)

// catalog is the cached listing of FIPE reference tables
type catalog struct {
	prices PriceSource
	loader *loader
}

// Tables returns the reference tables, fetching them on a cache miss
func (c *catalog) Tables(ctx context.Context) ([]types.ReferenceTable, error) {
	tables, err := load(ctx, c.loader, cache.Key(tablesKey), tablesTTL, c.fetch)
	if err != nil {
		return nil, err
	}

	return slices.Clone(tables), nil
}

// Refresh refetches the reference tables and repopulates the cache
func (c *catalog) Refresh(ctx context.Context) error {
	tables, err := c.fetch(ctx)
	if err != nil {
		return err
	}

	c.loader.cache.Set(ctx, cache.Key(tablesKey), tables, tablesTTL)

	return nil
}

func (c *catalog) fetch(ctx context.Context) ([]types.ReferenceTable, error) {
	raw, err := c.prices.ReferenceTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}

	tables := make([]types.ReferenceTable, 0, len(raw))

	for _, t := range raw {
		if t.Code <= 0 {
			continue
		}

		tables = append(tables, t)
	}

	if len(tables) == 0 {
		return nil, fmt.Errorf("%w: empty table listing", ErrCatalogUnavailable)
	}

	return tables, nil
}

// mostRecent returns the n tables with the highest codes, descending
func mostRecent(tables []types.ReferenceTable, n int) []types.ReferenceTable {
	sorted := slices.Clone(tables)
	slices.SortFunc(sorted, func(a, b types.ReferenceTable) int {
		return b.Code - a.Code
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}

	return sorted
}
