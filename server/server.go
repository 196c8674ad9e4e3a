package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"

	"github.com/sig-0/fipeval/cache"
	"github.com/sig-0/fipeval/server/config"
	"github.com/sig-0/fipeval/types"
)

// RoutesFn is a callback that receives a router for registering routes
type RoutesFn func(router chi.Router)

// Resolver resolves plates and valuation histories
type Resolver interface {
	ResolvePlate(ctx context.Context, plate string) (*types.ResolvedVehicle, error)
	ResolveHistory(ctx context.Context, fipeCode string, window int) (*types.HistoryResult, error)
}

// Registry exposes the plate registry's account and catalog endpoints.
// Payloads are relayed as-is
type Registry interface {
	Quotas(ctx context.Context) (json.RawMessage, error)
	Depreciation(ctx context.Context, depreciationToken string) (json.RawMessage, error)
	Fuels(ctx context.Context) (json.RawMessage, error)
	Brands(ctx context.Context, query types.BrandsQuery) (json.RawMessage, error)
	Models(ctx context.Context, query types.ModelsQuery) (json.RawMessage, error)
	FipeByCode(ctx context.Context, code types.FipeCode, year int) (json.RawMessage, error)
}

var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type Server struct {
	logger *slog.Logger
	config *config.Config

	resolver Resolver
	registry Registry
	cache    cache.Cache

	mux *chi.Mux
}

// New creates a new server instance
func New(
	resolver Resolver,
	registry Registry,
	c cache.Cache,
	opts ...Option,
) (*Server, error) {
	s := &Server{
		logger:   noopLogger,
		resolver: resolver,
		registry: registry,
		cache:    c,
		config:   config.DefaultConfig(),
		mux:      chi.NewMux(),
	}

	// Apply the options
	for _, opt := range opts {
		opt(s)
	}

	// Validate the configuration
	if err := config.ValidateConfig(s.config); err != nil {
		return nil, fmt.Errorf("invalid configuration, %w", err)
	}

	// Set up the CORS middleware
	if s.config.CORSConfig != nil {
		corsMiddleware := cors.New(cors.Options{
			AllowedOrigins: s.config.CORSConfig.AllowedOrigins,
			AllowedMethods: s.config.CORSConfig.AllowedMethods,
			AllowedHeaders: s.config.CORSConfig.AllowedHeaders,
		})

		s.mux.Use(corsMiddleware.Handler)
	}

	s.mux.Use(httplog.RequestLogger(s.logger, &httplog.Options{
		Level:         slog.LevelInfo,
		Schema:        httplog.SchemaOTEL,
		RecoverPanics: true,
		Skip: func(r *http.Request, respStatus int) bool {
			return respStatus == http.StatusNotFound ||
				respStatus == http.StatusMethodNotAllowed ||
				r.URL.Path == healthPath
		},
	}))

	// Register the health check handler
	s.mux.Get(healthPath, func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})

	s.mux.Handle("/metrics", promhttp.Handler())

	s.mux.Get("/openapi.yaml", s.OpenAPI)
	s.mux.Get("/docs", s.Redoc)

	s.mux.Route("/v1", func(r chi.Router) {
		r.Post("/plates", s.ResolvePlate)
		r.Get("/plates/{plate}", s.ResolvePlate)
		r.Get("/fipe/{code}/history", s.ResolveHistory)
		r.Get("/quotas", s.Quotas)
		r.Post("/depreciation", s.Depreciation)

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/fuels", s.Fuels)
			r.Get("/brands", s.Brands)
			r.Get("/models", s.Models)
			r.Get("/fipe/{code}", s.FipeByCode)
		})
	})

	return s, nil
}

const healthPath = "/health"

// Routes calls fn with the server mux so callers can add endpoints
func (s *Server) Routes(fn RoutesFn) {
	if fn == nil {
		return
	}

	fn(s.mux)
}

// Handler returns the server's root handler
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Serve serves the fipeval service
func (s *Server) Serve(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.config.ListenAddress,
		Handler:           s.mux,
		ReadHeaderTimeout: 60 * time.Second,
	}

	group, gCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		defer s.logger.Info("server shut down")

		ln, err := net.Listen("tcp", server.Addr)
		if err != nil {
			return err
		}

		s.logger.Info(
			fmt.Sprintf(
				"server started at %s",
				ln.Addr().String(),
			),
		)

		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	group.Go(func() error {
		<-gCtx.Done()

		s.logger.Info("server to be shutdown")

		wsCtx, cancel := context.WithTimeout(context.Background(), time.Second*30)
		defer cancel()

		return server.Shutdown(wsCtx)
	})

	return group.Wait()
}
