package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sig-0/fipeval/provider/placafipe"
	"github.com/sig-0/fipeval/resolve"
	"github.com/sig-0/fipeval/types"
)

// Depreciation redeems the depreciation token of a resolved vehicle
func (s *Server) Depreciation(w http.ResponseWriter, r *http.Request) {
	var req DepreciationRequest

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeInvalidRequest(w, errInvalidRequest)

		return
	}

	token := strings.TrimSpace(req.DepreciationToken)
	if token == "" {
		writeInvalidRequest(w, errMissingDepreciationToken)

		return
	}

	s.relay(w, r, "depreciation", func(ctx context.Context) (json.RawMessage, error) {
		return s.registry.Depreciation(ctx, token)
	})
}

// Fuels relays the registry's fuel catalog
func (s *Server) Fuels(w http.ResponseWriter, r *http.Request) {
	s.relay(w, r, "fuels", s.registry.Fuels)
}

// Brands relays the registry's brand catalog.
// Accepts the optional vehicle_type and reference_date filters
func (s *Server) Brands(w http.ResponseWriter, r *http.Request) {
	vehicleType, err := optionalInt(r, "vehicle_type")
	if err != nil {
		writeInvalidRequest(w, errInvalidVehicleType)

		return
	}

	query := types.BrandsQuery{
		VehicleType:   vehicleType,
		ReferenceDate: r.URL.Query().Get("reference_date"),
	}

	s.relay(w, r, "brands", func(ctx context.Context) (json.RawMessage, error) {
		return s.registry.Brands(ctx, query)
	})
}

// Models relays the registry's model catalog.
// Accepts the optional brand_code, brand_description and reference_date filters
func (s *Server) Models(w http.ResponseWriter, r *http.Request) {
	brandCode, err := optionalInt(r, "brand_code")
	if err != nil {
		writeInvalidRequest(w, errInvalidBrandCode)

		return
	}

	query := types.ModelsQuery{
		BrandCode:        brandCode,
		BrandDescription: r.URL.Query().Get("brand_description"),
		ReferenceDate:    r.URL.Query().Get("reference_date"),
	}

	s.relay(w, r, "models", func(ctx context.Context) (json.RawMessage, error) {
		return s.registry.Models(ctx, query)
	})
}

// FipeByCode relays the registry's valuation of a fipe code for the given model year
func (s *Server) FipeByCode(w http.ResponseWriter, r *http.Request) {
	code, err := resolve.ParseFipeCode(chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, err)

		return
	}

	year, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("year")))
	if err != nil {
		writeInvalidRequest(w, errInvalidYear)

		return
	}

	s.relay(w, r, "fipe by code", func(ctx context.Context) (json.RawMessage, error) {
		return s.registry.FipeByCode(ctx, code, year)
	})
}

// relay writes the registry payload returned by fetch, or its error
func (s *Server) relay(
	w http.ResponseWriter,
	r *http.Request,
	what string,
	fetch func(context.Context) (json.RawMessage, error),
) {
	payload, err := fetch(r.Context())
	if err != nil {
		s.logger.Warn(
			"unable to fetch "+what,
			"err", err,
		)

		writeError(w, registryError(err))

		return
	}

	writeRawJSON(w, payload)
}

// registryError classifies a registry failure.
// Anything but a missing token is an unavailable provider
func registryError(err error) error {
	if errors.Is(err, placafipe.ErrMissingToken) {
		return err
	}

	return errors.Join(resolve.ErrProviderUnavailable, err)
}

// optionalInt parses the named query parameter, nil if absent
func optionalInt(r *http.Request, name string) (*int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil //nolint:nilnil // absent
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}

	return &v, nil
}
