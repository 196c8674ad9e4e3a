//nolint:tagliatelle // BrasilAPI uses camel case, with the odd snake case field
package brasilapi

import (
	"strings"

	"github.com/sig-0/fipeval/numeric"
	"github.com/sig-0/fipeval/provider/scalar"
	"github.com/sig-0/fipeval/types"
)

// tableEntry is a single item of the reference table listing
type tableEntry struct {
	Code  scalar.Value `json:"codigo"`
	Month string       `json:"mes"`
}

// priceEntry is a single item of the price endpoint
type priceEntry struct {
	Value           scalar.Value `json:"valor"`
	Brand           scalar.Value `json:"marca"`
	Model           scalar.Value `json:"modelo"`
	YearModel       scalar.Value `json:"anoModelo"`
	Fuel            scalar.Value `json:"combustivel"`
	FipeCode        scalar.Value `json:"codigoFipe"`
	ReferenceMonth  scalar.Value `json:"mesReferencia"`
	ReferenceMonth2 scalar.Value `json:"mes_referencia"`
}

// toPriceQuote converts the raw entry into the strict domain type
func (e priceEntry) toPriceQuote(requested types.FipeCode) *types.PriceQuote {
	month := e.ReferenceMonth.String()
	if month == "" {
		month = e.ReferenceMonth2.String()
	}

	code := types.FipeCode(e.FipeCode.String())
	if code == "" {
		code = requested
	}

	yearModel, _ := e.YearModel.Int()

	// Keep the formatted value in the locale the rest of the index uses
	formatted := e.Value.String()
	if e.Value.IsNumber() {
		formatted = numeric.Format(e.Value.Float())
	}

	return &types.PriceQuote{
		FipeCode:       code,
		ReferenceMonth: strings.TrimSpace(month),
		FormattedValue: formatted,
		Brand:          e.Brand.String(),
		Model:          e.Model.String(),
		Fuel:           e.Fuel.String(),
		YearModel:      yearModel,
	}
}
