package resolve

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sig-0/fipeval/cache"
	"github.com/sig-0/fipeval/metrics"
	"github.com/sig-0/fipeval/types"
)

const (
	MinWindow     = 2
	MaxWindow     = 12
	DefaultWindow = 6
)

const (
	historyNamespace = "history"
	historyTTL       = 6 * time.Hour
)

// ClampWindow bounds the history window to [MinWindow, MaxWindow]
func ClampWindow(window int) int {
	return min(max(window, MinWindow), MaxWindow)
}

// ParseWindow parses a raw window size, falling back to DefaultWindow
// for anything that is not a number. The result is clamped
func ParseWindow(raw string) int {
	window, err := strconv.Atoi(raw)
	if err != nil {
		return DefaultWindow
	}

	return ClampWindow(window)
}

// historyAggregator assembles valuation series over the most recent reference tables
type historyAggregator struct {
	catalog     *catalog
	checker     *crossChecker
	loader      *loader
	logger      *slog.Logger
	now         func() time.Time
	concurrency int
}

// History builds the valuation series of the fipe code over the window most recent tables.
// Only a catalog failure is fatal, unavailable points are omitted
func (h *historyAggregator) History(
	ctx context.Context,
	fipeCode types.FipeCode,
	window int,
) (*types.HistoryResult, error) {
	window = ClampWindow(window)
	key := cache.Key(historyNamespace, fipeCode.String(), strconv.Itoa(window))

	var cached types.HistoryResult
	if h.loader.cache.Get(ctx, key, &cached) {
		cached.Series = slices.Clone(cached.Series)

		return &cached, nil
	}

	tables, err := h.catalog.Tables(ctx)
	if err != nil {
		return nil, err
	}

	series := h.collect(ctx, fipeCode, mostRecent(tables, window))

	result := &types.HistoryResult{
		FipeCode:   fipeCode,
		WindowSize: window,
		Series:     series,
		Trend:      ComputeTrend(series),
		UpdatedAt:  h.now().UTC(),
	}

	metrics.ObserveHistoryPoints(len(series))

	// Empty series are likely transient upstream trouble
	if len(series) > 0 {
		stored := *result
		stored.Series = slices.Clone(series)

		h.loader.cache.Set(ctx, key, stored, historyTTL)
	}

	return result, nil
}

// collect cross-checks every table concurrently, returning the available
// points ascending by table code
func (h *historyAggregator) collect(
	ctx context.Context,
	fipeCode types.FipeCode,
	tables []types.ReferenceTable,
) types.ValuationSeries {
	var (
		series = make(types.ValuationSeries, 0, len(tables))
		mux    sync.Mutex
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(h.concurrency)

	for _, table := range tables {
		g.Go(func() error {
			point, ok := h.checker.CrossCheck(gCtx, fipeCode, table.Code)
			if !ok {
				h.logger.Debug(
					"omitting history point",
					"fipe_code", fipeCode.String(),
					"table", table.Code,
				)

				return nil
			}

			point.PeriodLabel = table.PeriodLabel
			if point.ReferenceMonth == "" {
				point.ReferenceMonth = table.PeriodLabel
			}

			mux.Lock()
			series = append(series, *point)
			mux.Unlock()

			return nil
		})
	}

	// Workers never return errors
	_ = g.Wait()

	slices.SortFunc(series, func(a, b types.ValuationPoint) int {
		return a.TableCode - b.TableCode
	})

	return series
}
