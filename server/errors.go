package server

import (
	"errors"
	"net/http"

	"github.com/sig-0/fipeval/provider/placafipe"
	"github.com/sig-0/fipeval/resolve"
)

const (
	codeInvalidRequest        = "invalid-request"
	codeInvalidPlate          = "invalid-plate"
	codeInvalidFipeCode       = "invalid-fipe-code"
	codeNotFound              = "not-found"
	codeProviderUnavailable   = "provider-unavailable"
	codeProviderMisconfigured = "provider-misconfigured"
	codeCatalogUnavailable    = "catalog-unavailable"
	codeInternal              = "internal"
)

var (
	errInvalidRequest           = errors.New("invalid request body")
	errInternal                 = errors.New("internal error")
	errMissingDepreciationToken = errors.New("depreciation_token is required")
	errInvalidYear              = errors.New("year is required and must be a number")
	errInvalidVehicleType       = errors.New("vehicle_type must be a number")
	errInvalidBrandCode         = errors.New("brand_code must be a number")
)

// errorKinds maps resolution errors to their HTTP representation
var errorKinds = []struct {
	err    error
	code   string
	status int
}{
	{resolve.ErrInvalidPlate, codeInvalidPlate, http.StatusBadRequest},
	{resolve.ErrInvalidFipeCode, codeInvalidFipeCode, http.StatusBadRequest},
	{resolve.ErrNotFound, codeNotFound, http.StatusNotFound},
	{resolve.ErrProviderMisconfigured, codeProviderMisconfigured, http.StatusInternalServerError},
	{resolve.ErrProviderUnavailable, codeProviderUnavailable, http.StatusBadGateway},
	{resolve.ErrCatalogUnavailable, codeCatalogUnavailable, http.StatusBadGateway},
	{placafipe.ErrMissingToken, codeProviderMisconfigured, http.StatusInternalServerError},
}

// errorResponse builds the status and body for err.
// Only the known error kinds are described, anything else is an internal error
func errorResponse(err error) (int, *ErrorResponse) {
	for _, kind := range errorKinds {
		if !errors.Is(err, kind.err) {
			continue
		}

		resp := &ErrorResponse{
			Error: kind.err.Error(),
			Code:  kind.code,
		}

		var apiErr *placafipe.APIError
		if errors.As(err, &apiErr) {
			resp.APICode = apiErr.Code

			if apiErr.Message != "" {
				resp.Error += ": " + apiErr.Message
			}
		}

		return kind.status, resp
	}

	return http.StatusInternalServerError, &ErrorResponse{
		Error: errInternal.Error(),
		Code:  codeInternal,
	}
}
