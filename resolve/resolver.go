// Package resolve reconciles the plate registry and the FIPE reference index
// into vehicle valuations and valuation histories
package resolve

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/sig-0/fipeval/cache"
	"github.com/sig-0/fipeval/metrics"
	"github.com/sig-0/fipeval/numeric"
	"github.com/sig-0/fipeval/types"
)

const defaultHistoryConcurrency = 3

// Resolver is the entry point for plate and history resolutions
type Resolver struct {
	logger *slog.Logger
	now    func() time.Time

	catalog    *catalog
	candidates *candidateResolver
	checker    *crossChecker
	history    *historyAggregator

	plateCacheTTL      time.Duration
	historyConcurrency int
	dedup              bool
}

// New creates a new Resolver over the given upstreams and shared cache
func New(plates PlateSource, prices PriceSource, c cache.Cache, opts ...Option) *Resolver {
	r := &Resolver{
		logger:             slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:                time.Now,
		historyConcurrency: defaultHistoryConcurrency,
	}

	// Apply the options
	for _, opt := range opts {
		opt(r)
	}

	l := newLoader(c, r.dedup)

	r.catalog = &catalog{
		prices: prices,
		loader: l,
	}

	r.candidates = &candidateResolver{
		plates: plates,
		loader: l,
		ttl:    r.plateCacheTTL,
	}

	r.checker = &crossChecker{
		prices: prices,
		loader: l,
		logger: r.logger,
		now:    r.now,
	}

	r.history = &historyAggregator{
		catalog:     r.catalog,
		checker:     r.checker,
		loader:      l,
		logger:      r.logger,
		now:         r.now,
		concurrency: r.historyConcurrency,
	}

	return r
}

// ResolvePlate resolves the raw plate into a vehicle and its valuation.
// The reference index valuation is preferred, and the registry's own
// valuation is used when the index is unavailable
func (r *Resolver) ResolvePlate(ctx context.Context, raw string) (*types.ResolvedVehicle, error) {
	plate, err := NormalizePlate(raw)
	if err != nil {
		return nil, err
	}

	match, err := r.candidates.Resolve(ctx, plate)
	if err != nil {
		return nil, err
	}

	var (
		vehicle   = match.Vehicle
		candidate = match.Candidate
	)

	resolved := &types.ResolvedVehicle{
		Plate:             plate,
		Brand:             firstNonEmpty(vehicle.Brand, candidate.Brand),
		Model:             firstNonEmpty(vehicle.Model, candidate.Model),
		YearManufacture:   vehicle.YearManufacture,
		YearModel:         firstNonEmpty(vehicle.YearModel, candidate.YearModel),
		Color:             vehicle.Color,
		Fuel:              firstNonEmpty(vehicle.Fuel, candidate.Fuel),
		FipeCode:          candidate.FipeCode,
		Chassis:           vehicle.Chassis,
		DepreciationToken: candidate.DepreciationToken,
		SourceFlags: types.SourceFlags{
			Source:                types.SourcePrimary,
			PrimaryReferenceMonth: candidate.ReferenceMonth,
		},
		Valuation: numeric.OrZero(candidate.RawValue),
	}

	if candidate.FipeCode != "" {
		if point, ok := r.checker.CrossCheck(ctx, candidate.FipeCode, 0); ok {
			resolved.Valuation = point.Value
			resolved.SourceFlags.Source = types.SourceCrossChecked
			resolved.SourceFlags.CrossChecked = true
		}
	}

	metrics.ObserveValuationSource(resolved.SourceFlags.Source.String())

	r.logger.Debug(
		"resolved plate",
		"plate", plate.String(),
		"fipe_code", resolved.FipeCode.String(),
		"source", resolved.SourceFlags.Source.String(),
	)

	return resolved, nil
}

// ResolveHistory resolves the valuation history of the raw fipe code
// over the window most recent reference tables (clamped to [2, 12])
func (r *Resolver) ResolveHistory(ctx context.Context, rawFipeCode string, window int) (*types.HistoryResult, error) {
	fipeCode, err := ParseFipeCode(rawFipeCode)
	if err != nil {
		return nil, err
	}

	return r.history.History(ctx, fipeCode, window)
}

// RefreshCatalog refetches the reference table listing into the cache
func (r *Resolver) RefreshCatalog(ctx context.Context) error {
	return r.catalog.Refresh(ctx)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
