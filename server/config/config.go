package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"time"

	"github.com/pelletier/go-toml"
)

const (
	DefaultListenAddress = "0.0.0.0:8787"

	DefaultPrimaryBaseURL   = "https://api.placafipe.com.br"
	DefaultSecondaryBaseURL = "https://brasilapi.com.br"
	DefaultUpstreamTimeout  = "15s"

	DefaultHistoryConcurrency     = 3
	DefaultCatalogRefreshInterval = "6h"
	DefaultCacheSweepInterval     = "10m"
)

var (
	ErrInvalidListenAddress      = errors.New("invalid listen address")
	ErrInvalidBaseURL            = errors.New("invalid upstream base URL")
	ErrInvalidDuration           = errors.New("invalid duration")
	ErrInvalidHistoryConcurrency = errors.New("invalid history concurrency")
)

var listenAddressRegex = regexp.MustCompile(`^\d{1,3}(\.\d{1,3}){3}:\d+$`)

// Config defines the base-level service configuration
type Config struct {
	// The associated CORS config, if any
	CORSConfig *CORS `toml:"cors_config"`

	// The plate registry (PlacaFipe) settings
	Primary Primary `toml:"primary"`

	// The FIPE reference index (BrasilAPI) settings
	Secondary Secondary `toml:"secondary"`

	// The resolution settings
	Resolver Resolver `toml:"resolver"`

	// The maintenance job settings
	Jobs Jobs `toml:"jobs"`

	// The address at which the server will be served.
	// Format should be: <IP>:<PORT>
	ListenAddress string `toml:"listen_address"`
}

// CORS defines the CORS middleware configuration
type CORS struct {
	AllowedOrigins []string `toml:"allowed_origins"`
	AllowedMethods []string `toml:"allowed_methods"`
	AllowedHeaders []string `toml:"allowed_headers"`
}

// Primary defines the plate registry client configuration.
// The API token is a secret, and is only read from the environment
type Primary struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`
	UseGET  bool   `toml:"use_get"`
}

// Secondary defines the FIPE reference index client configuration
type Secondary struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`
}

// Resolver defines the resolution behavior
type Resolver struct {
	// How long registry answers are cached per plate ("0s" disables it)
	PlateCacheTTL string `toml:"plate_cache_ttl"`

	// How many reference tables are cross-checked in parallel for a history
	HistoryConcurrency int `toml:"history_concurrency"`

	// Whether concurrent cache misses on the same key share one upstream call
	InflightDedup bool `toml:"inflight_dedup"`
}

// Jobs defines the maintenance job intervals
type Jobs struct {
	CatalogRefreshInterval string `toml:"catalog_refresh_interval"`
	CacheSweepInterval     string `toml:"cache_sweep_interval"`
}

// DefaultCORSConfig returns the default CORS configuration
func DefaultCORSConfig() *CORS {
	return &CORS{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept"},
	}
}

// DefaultConfig returns the default service configuration
func DefaultConfig() *Config {
	return &Config{
		ListenAddress: DefaultListenAddress,
		CORSConfig:    DefaultCORSConfig(),
		Primary: Primary{
			BaseURL: DefaultPrimaryBaseURL,
			Timeout: DefaultUpstreamTimeout,
		},
		Secondary: Secondary{
			BaseURL: DefaultSecondaryBaseURL,
			Timeout: DefaultUpstreamTimeout,
		},
		Resolver: Resolver{
			PlateCacheTTL:      "0s",
			HistoryConcurrency: DefaultHistoryConcurrency,
		},
		Jobs: Jobs{
			CatalogRefreshInterval: DefaultCatalogRefreshInterval,
			CacheSweepInterval:     DefaultCacheSweepInterval,
		},
	}
}

// ValidateConfig validates the service configuration
func ValidateConfig(config *Config) error {
	// Validate the listen address
	if !listenAddressRegex.MatchString(config.ListenAddress) {
		return ErrInvalidListenAddress
	}

	// Validate the upstream URLs
	for _, raw := range []string{config.Primary.BaseURL, config.Secondary.BaseURL} {
		if err := validateBaseURL(raw); err != nil {
			return err
		}
	}

	// Validate the durations
	durations := []struct {
		name     string
		value    string
		positive bool
	}{
		{"primary.timeout", config.Primary.Timeout, true},
		{"secondary.timeout", config.Secondary.Timeout, true},
		{"resolver.plate_cache_ttl", config.Resolver.PlateCacheTTL, false},
		{"jobs.catalog_refresh_interval", config.Jobs.CatalogRefreshInterval, true},
		{"jobs.cache_sweep_interval", config.Jobs.CacheSweepInterval, true},
	}

	for _, d := range durations {
		v, err := time.ParseDuration(d.value)
		if err != nil || v < 0 || (d.positive && v == 0) {
			return fmt.Errorf("%w: %s=%q", ErrInvalidDuration, d.name, d.value)
		}
	}

	if config.Resolver.HistoryConcurrency <= 0 {
		return ErrInvalidHistoryConcurrency
	}

	return nil
}

// Read reads the configuration from the given path.
// Values missing from the file keep their defaults
func Read(path string) (*Config, error) {
	// Read the config file
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Parse it
	cfg := DefaultConfig()

	if err := toml.Unmarshal(content, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// MustDuration parses a duration that already passed ValidateConfig
func MustDuration(raw string) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil {
		panic(fmt.Sprintf("unvalidated duration %q: %v", raw, err))
	}

	return d
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, raw)
	}

	return nil
}
