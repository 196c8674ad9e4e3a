package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_ValidateConfig(t *testing.T) {
	t.Parallel()

	t.Run("invalid listen address", func(t *testing.T) {
		t.Parallel()

		cfg := DefaultConfig()
		cfg.ListenAddress = "rando-address" // doesn't follow the format

		assert.ErrorIs(t, ValidateConfig(cfg), ErrInvalidListenAddress)
	})

	t.Run("invalid base URL", func(t *testing.T) {
		t.Parallel()

		for _, raw := range []string{"", "ftp://example.com", "brasilapi.com.br"} {
			cfg := DefaultConfig()
			cfg.Secondary.BaseURL = raw

			assert.ErrorIs(t, ValidateConfig(cfg), ErrInvalidBaseURL, raw)
		}
	})

	t.Run("invalid durations", func(t *testing.T) {
		t.Parallel()

		testTable := []struct {
			name  string
			apply func(*Config)
		}{
			{"unparseable timeout", func(c *Config) { c.Primary.Timeout = "soon" }},
			{"zero timeout", func(c *Config) { c.Secondary.Timeout = "0s" }},
			{"negative cache ttl", func(c *Config) { c.Resolver.PlateCacheTTL = "-1m" }},
			{"zero job interval", func(c *Config) { c.Jobs.CacheSweepInterval = "0" }},
		}

		for _, testCase := range testTable {
			t.Run(testCase.name, func(t *testing.T) {
				t.Parallel()

				cfg := DefaultConfig()
				testCase.apply(cfg)

				assert.ErrorIs(t, ValidateConfig(cfg), ErrInvalidDuration)
			})
		}
	})

	t.Run("invalid history concurrency", func(t *testing.T) {
		t.Parallel()

		cfg := DefaultConfig()
		cfg.Resolver.HistoryConcurrency = 0

		assert.ErrorIs(t, ValidateConfig(cfg), ErrInvalidHistoryConcurrency)
	})

	t.Run("valid configuration", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, ValidateConfig(DefaultConfig()))
	})
}

func TestConfig_Read(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := Read(filepath.Join(t.TempDir(), "missing.toml"))

		assert.Error(t, err)
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.toml")

		require.NoError(t, os.WriteFile(path, []byte(`
listen_address = "127.0.0.1:9000"

[primary]
use_get = true
timeout = "5s"

[resolver]
plate_cache_ttl = "10m"
inflight_dedup = true
`), 0o600))

		cfg, err := Read(path)
		require.NoError(t, err)

		assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddress)
		assert.True(t, cfg.Primary.UseGET)
		assert.Equal(t, DefaultPrimaryBaseURL, cfg.Primary.BaseURL)
		assert.Equal(t, 5*time.Second, MustDuration(cfg.Primary.Timeout))
		assert.Equal(t, 10*time.Minute, MustDuration(cfg.Resolver.PlateCacheTTL))
		assert.True(t, cfg.Resolver.InflightDedup)
		assert.Equal(t, DefaultHistoryConcurrency, cfg.Resolver.HistoryConcurrency)
		assert.Equal(t, DefaultSecondaryBaseURL, cfg.Secondary.BaseURL)
		assert.NotNil(t, cfg.CORSConfig)

		assert.NoError(t, ValidateConfig(cfg))
	})

	t.Run("malformed file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.toml")

		require.NoError(t, os.WriteFile(path, []byte(`listen_address = `), 0o600))

		_, err := Read(path)

		assert.Error(t, err)
	})
}

func TestMustDuration(t *testing.T) {
	t.Parallel()

	assert.Equal(t, time.Hour, MustDuration("1h"))
	assert.Panics(t, func() {
		MustDuration("soon")
	})
}
