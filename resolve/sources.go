package resolve

import (
	"context"

	"github.com/sig-0/fipeval/types"
)

// PlateSource is the plate registry (primary provider)
type PlateSource interface {
	// LookupPlate fetches the vehicle and its FIPE candidates for the plate
	LookupPlate(context.Context, types.PlateQuery) (*types.PlateLookup, error)
}

// PriceSource is the FIPE reference index (secondary provider)
type PriceSource interface {
	// ReferenceTables fetches the full reference table listing
	ReferenceTables(context.Context) ([]types.ReferenceTable, error)

	// Price fetches the price of the fipe code in the given table (0 is current)
	Price(context.Context, types.FipeCode, int) (*types.PriceQuote, error)
}
