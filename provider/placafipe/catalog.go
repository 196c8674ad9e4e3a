package placafipe

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sig-0/fipeval/metrics"
	"github.com/sig-0/fipeval/types"
)

// Depreciation redeems the depreciation token of a plate lookup candidate.
// The payload is relayed as-is
func (c *Client) Depreciation(ctx context.Context, depreciationToken string) (json.RawMessage, error) {
	return c.relay(ctx, "depreciation", "/getdesvalorizometro", depreciationRequest{
		Depreciation: depreciationToken,
		Token:        c.token,
	})
}

// Fuels fetches the fuel catalog
func (c *Client) Fuels(ctx context.Context) (json.RawMessage, error) {
	return c.relay(ctx, "fuels", "/get-combustiveis", tokenRequest{Token: c.token})
}

// Brands fetches the brand catalog
func (c *Client) Brands(ctx context.Context, query types.BrandsQuery) (json.RawMessage, error) {
	return c.relay(ctx, "brands", "/get-marcas", brandsRequest{
		VehicleType:   query.VehicleType,
		ReferenceDate: query.ReferenceDate,
		Token:         c.token,
	})
}

// Models fetches the model catalog of a brand
func (c *Client) Models(ctx context.Context, query types.ModelsQuery) (json.RawMessage, error) {
	return c.relay(ctx, "models", "/get-modelos", modelsRequest{
		BrandCode:        query.BrandCode,
		BrandDescription: query.BrandDescription,
		ReferenceDate:    query.ReferenceDate,
		Token:            c.token,
	})
}

// FipeByCode fetches the registry's valuation of a fipe code for a model year
func (c *Client) FipeByCode(ctx context.Context, code types.FipeCode, year int) (json.RawMessage, error) {
	return c.relay(ctx, "fipe_by_code", "/fipebycodigo", fipeByCodeRequest{
		FipeCode: code.String(),
		Year:     year,
		Token:    c.token,
	})
}

// relay posts body to a token-authenticated endpoint and returns the raw payload
func (c *Client) relay(ctx context.Context, operation, path string, body any) (_ json.RawMessage, err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveUpstream(providerName, operation, start, err)
	}()

	if c.token == "" {
		return nil, ErrMissingToken
	}

	var resp json.RawMessage

	if err = c.do(ctx, http.MethodPost, path, body, &resp); err != nil {
		return nil, err
	}

	return resp, nil
}
