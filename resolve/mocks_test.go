package resolve

import (
	"context"

	"github.com/sig-0/fipeval/types"
)

type (
	lookupPlateDelegate     func(context.Context, types.PlateQuery) (*types.PlateLookup, error)
	referenceTablesDelegate func(context.Context) ([]types.ReferenceTable, error)
	priceDelegate           func(context.Context, types.FipeCode, int) (*types.PriceQuote, error)
)

type mockPlateSource struct {
	lookupPlateFn lookupPlateDelegate
}

func (m *mockPlateSource) LookupPlate(ctx context.Context, plate types.PlateQuery) (*types.PlateLookup, error) {
	if m.lookupPlateFn != nil {
		return m.lookupPlateFn(ctx, plate)
	}

	return &types.PlateLookup{}, nil
}

type mockPriceSource struct {
	referenceTablesFn referenceTablesDelegate
	priceFn           priceDelegate
}

func (m *mockPriceSource) ReferenceTables(ctx context.Context) ([]types.ReferenceTable, error) {
	if m.referenceTablesFn != nil {
		return m.referenceTablesFn(ctx)
	}

	return nil, nil
}

func (m *mockPriceSource) Price(ctx context.Context, code types.FipeCode, table int) (*types.PriceQuote, error) {
	if m.priceFn != nil {
		return m.priceFn(ctx, code, table)
	}

	return nil, nil
}
