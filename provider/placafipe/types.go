package placafipe

import (
	"strings"

	"github.com/sig-0/fipeval/numeric"
	"github.com/sig-0/fipeval/provider/scalar"
	"github.com/sig-0/fipeval/types"
)

// plateRequest is the request body of the plate lookup endpoint
type plateRequest struct {
	Plate string `json:"placa"`
	Token string `json:"token"`
}

// tokenRequest is the request body of token-only endpoints
type tokenRequest struct {
	Token string `json:"token"`
}

// envelope holds the status fields present on every response
type envelope struct {
	Code     scalar.Value `json:"codigo"`
	Msg      string       `json:"msg"`
	Mensagem string       `json:"mensagem"`
}

// message returns the upstream-provided message, if any
func (e envelope) message() string {
	if m := strings.TrimSpace(e.Msg); m != "" {
		return m
	}

	return strings.TrimSpace(e.Mensagem)
}

// plateResponse is the response of the plate lookup endpoint
type plateResponse struct {
	Vehicle    vehicleInfo `json:"informacoes_veiculo"`
	Candidates []fipeEntry `json:"fipe"`
}

type vehicleInfo struct {
	Brand     scalar.Value `json:"marca"`
	Model     scalar.Value `json:"modelo"`
	Year      scalar.Value `json:"ano"`
	YearModel scalar.Value `json:"ano_modelo"`
	Color     scalar.Value `json:"cor"`
	Fuel      scalar.Value `json:"combustivel"`
	Chassis   scalar.Value `json:"chassi"`
}

type fipeEntry struct {
	FipeCode       scalar.Value `json:"codigo_fipe"`
	Correspondence scalar.Value `json:"correspondencia"`
	Similarity     scalar.Value `json:"similaridade"`
	Value          scalar.Value `json:"valor"`
	ReferenceMonth scalar.Value `json:"mes_referencia"`
	Brand          scalar.Value `json:"marca"`
	Model          scalar.Value `json:"modelo"`
	YearModel      scalar.Value `json:"ano_modelo"`
	Fuel           scalar.Value `json:"combustivel"`
	Depreciation   scalar.Value `json:"desvalorizometro"`
}

// toPlateLookup converts the raw response into the strict domain type
func (r *plateResponse) toPlateLookup() *types.PlateLookup {
	out := &types.PlateLookup{
		Vehicle: types.VehicleInfo{
			Brand:           r.Vehicle.Brand.String(),
			Model:           r.Vehicle.Model.String(),
			YearManufacture: r.Vehicle.Year.String(),
			YearModel:       r.Vehicle.YearModel.String(),
			Color:           r.Vehicle.Color.String(),
			Fuel:            r.Vehicle.Fuel.String(),
			Chassis:         r.Vehicle.Chassis.String(),
		},
		Candidates: make([]types.FipeCandidate, 0, len(r.Candidates)),
	}

	for _, c := range r.Candidates {
		rawValue := c.Value.Float()

		out.Candidates = append(out.Candidates, types.FipeCandidate{
			FipeCode:          types.FipeCode(c.FipeCode.String()),
			ReferenceMonth:    c.ReferenceMonth.String(),
			Brand:             c.Brand.String(),
			Model:             c.Model.String(),
			YearModel:         c.YearModel.String(),
			Fuel:              c.Fuel.String(),
			DepreciationToken: c.Depreciation.String(),
			Correspondence:    numeric.OrZero(c.Correspondence.Float()),
			Similarity:        numeric.OrZero(c.Similarity.Float()),
			RawValue:          numeric.OrZero(rawValue),
			HasRawValue:       numeric.Valid(rawValue),
		})
	}

	return out
}

// depreciationRequest redeems a depreciation token
type depreciationRequest struct {
	Depreciation string `json:"desvalorizometro"`
	Token        string `json:"token"`
}

type brandsRequest struct {
	VehicleType   *int   `json:"veiculo_tipo,omitempty"`
	ReferenceDate string `json:"data_referencia,omitempty"`
	Token         string `json:"token"`
}

type modelsRequest struct {
	BrandCode        *int   `json:"codigo_marca,omitempty"`
	BrandDescription string `json:"marca_descricao,omitempty"`
	ReferenceDate    string `json:"data_referencia,omitempty"`
	Token            string `json:"token"`
}

type fipeByCodeRequest struct {
	FipeCode string `json:"codigo_fipe"`
	Year     int    `json:"ano"`
	Token    string `json:"token"`
}
