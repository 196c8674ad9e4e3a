package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sig-0/fipeval/cache"
	"github.com/sig-0/fipeval/resolve"
)

const (
	maxBodyBytes = 1 << 12

	quotasKey = "quotas"
	quotasTTL = time.Minute
)

// ResolvePlate resolves a plate, given either as a path parameter or in a JSON body
func (s *Server) ResolvePlate(w http.ResponseWriter, r *http.Request) {
	plate := chi.URLParam(r, "plate")

	if r.Method == http.MethodPost {
		var req PlateRequest

		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
			writeInvalidRequest(w, errInvalidRequest)

			return
		}

		plate = req.Plate
	}

	vehicle, err := s.resolver.ResolvePlate(r.Context(), plate)
	if err != nil {
		s.logResolveError("unable to resolve plate", err)
		writeError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, vehicle)
}

// ResolveHistory resolves the valuation history of a fipe code.
// The window defaults to 6, and is clamped to [2, 12]
func (s *Server) ResolveHistory(w http.ResponseWriter, r *http.Request) {
	var (
		code   = chi.URLParam(r, "code")
		window = resolve.ParseWindow(r.URL.Query().Get("window"))
	)

	result, err := s.resolver.ResolveHistory(r.Context(), code, window)
	if err != nil {
		s.logResolveError("unable to resolve history", err)
		writeError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Quotas relays the plate registry's usage quotas
func (s *Server) Quotas(w http.ResponseWriter, r *http.Request) {
	var payload json.RawMessage
	if s.cache.Get(r.Context(), cache.Key(quotasKey), &payload) {
		writeRawJSON(w, payload)

		return
	}

	payload, err := s.registry.Quotas(r.Context())
	if err != nil {
		s.logger.Warn(
			"unable to fetch quotas",
			"err", err,
		)

		writeError(w, registryError(err))

		return
	}

	s.cache.Set(r.Context(), cache.Key(quotasKey), payload, quotasTTL)

	writeRawJSON(w, payload)
}

// logResolveError logs upstream-related failures, input errors are not logged
func (s *Server) logResolveError(msg string, err error) {
	if errors.Is(err, resolve.ErrInvalidPlate) ||
		errors.Is(err, resolve.ErrInvalidFipeCode) ||
		errors.Is(err, resolve.ErrNotFound) {
		return
	}

	s.logger.Warn(msg, "err", err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck // Fine to ignore
}

func writeRawJSON(w http.ResponseWriter, payload json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	_, _ = w.Write(payload) //nolint:errcheck // Fine to ignore
}

func writeInvalidRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, &ErrorResponse{
		Error: err.Error(),
		Code:  codeInvalidRequest,
	})
}

func writeError(w http.ResponseWriter, err error) {
	status, resp := errorResponse(err)

	writeJSON(w, status, resp)
}
