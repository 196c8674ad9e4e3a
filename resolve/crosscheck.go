package resolve

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/sig-0/fipeval/cache"
	"github.com/sig-0/fipeval/numeric"
	"github.com/sig-0/fipeval/types"
)

const (
	valuationNamespace = "valuation"
	valuationTTL       = 6 * time.Hour
	currentTable       = "current"
)

// crossChecker fetches point valuations from the reference index.
// It never fails: an unavailable valuation is reported as absent
type crossChecker struct {
	prices PriceSource
	loader *loader
	logger *slog.Logger
	now    func() time.Time
}

// CrossCheck returns the valuation of the fipe code in the given table (0 is current)
func (c *crossChecker) CrossCheck(
	ctx context.Context,
	fipeCode types.FipeCode,
	tableCode int,
) (*types.ValuationPoint, bool) {
	point, err := load(
		ctx,
		c.loader,
		valuationKey(fipeCode, tableCode),
		valuationTTL,
		func(ctx context.Context) (*types.ValuationPoint, error) {
			return c.fetch(ctx, fipeCode, tableCode)
		},
	)
	if err != nil {
		c.logger.Warn(
			"cross-check unavailable",
			"fipe_code", fipeCode.String(),
			"table", tableCode,
			"err", err,
		)

		return nil, false
	}

	// Cached points are shared, hand out a copy
	p := *point

	return &p, true
}

func (c *crossChecker) fetch(
	ctx context.Context,
	fipeCode types.FipeCode,
	tableCode int,
) (*types.ValuationPoint, error) {
	quote, err := c.prices.Price(ctx, fipeCode, tableCode)
	if err != nil {
		return nil, err
	}

	value := numeric.Parse(quote.FormattedValue)
	if !numeric.Valid(value) {
		return nil, &unparseableValueError{raw: quote.FormattedValue}
	}

	return &types.ValuationPoint{
		TableCode:      tableCode,
		ReferenceMonth: strings.TrimSpace(quote.ReferenceMonth),
		Value:          value,
		FormattedValue: quote.FormattedValue,
		QueriedAt:      c.now().UTC(),
	}, nil
}

func valuationKey(fipeCode types.FipeCode, tableCode int) string {
	table := currentTable
	if tableCode > 0 {
		table = strconv.Itoa(tableCode)
	}

	return cache.Key(valuationNamespace, fipeCode.String(), table)
}

type unparseableValueError struct {
	raw string
}

func (e *unparseableValueError) Error() string {
	return "unparseable valuation " + strconv.Quote(e.raw)
}
