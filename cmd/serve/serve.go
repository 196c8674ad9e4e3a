package serve

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
	"golang.org/x/sync/errgroup"

	"github.com/sig-0/fipeval/cache"
	"github.com/sig-0/fipeval/cmd/env"
	"github.com/sig-0/fipeval/jobs"
	"github.com/sig-0/fipeval/provider/brasilapi"
	"github.com/sig-0/fipeval/provider/placafipe"
	"github.com/sig-0/fipeval/resolve"
	"github.com/sig-0/fipeval/server"
	"github.com/sig-0/fipeval/server/config"
)

// serveCfg wraps the serve configuration
type serveCfg struct {
	config *config.Config

	configPath string
}

// NewServeCmd creates the serve subcommand
func NewServeCmd() *ffcli.Command {
	cfg := &serveCfg{
		config: config.DefaultConfig(),
	}

	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfg.registerFlags(fs)

	cmd := &ffcli.Command{
		Name:       "serve",
		ShortUsage: "serve <subcommand> [flags]",
		LongHelp:   "Serves the fipeval backend",
		FlagSet:    fs,
		Exec: func(_ context.Context, _ []string) error {
			return flag.ErrHelp
		},
		Options: []ff.Option{
			// Allow using ENV variables
			ff.WithEnvVars(),
			ff.WithEnvVarPrefix(env.Prefix),
		},
	}

	cmd.Subcommands = []*ffcli.Command{
		newServeMemoryCmd(cfg),
		newServeRedisCmd(cfg),
	}

	return cmd
}

func (c *serveCfg) registerFlags(fs *flag.FlagSet) {
	fs.StringVar(
		&c.config.ListenAddress,
		"listen",
		config.DefaultListenAddress,
		"the IP:PORT URL for the server",
	)

	fs.StringVar(
		&c.configPath,
		"config",
		"",
		"the path to the server TOML configuration, if any",
	)
}

// loadConfig reads the server configuration file, if any
func (c *serveCfg) loadConfig() error {
	if c.configPath == "" {
		return nil
	}

	serverCfg, err := config.Read(c.configPath)
	if err != nil {
		return fmt.Errorf("unable to read server config, %w", err)
	}

	c.config = serverCfg

	return config.ValidateConfig(c.config)
}

// serveDeps are the backend-specific pieces of the service
type serveDeps struct {
	cache   cache.Cache
	sweeper jobs.Sweeper // nil if the cache expires entries on its own
	logger  *slog.Logger
}

// run wires the service over the given cache, and serves it until ctx is done
func (c *serveCfg) run(ctx context.Context, deps serveDeps) error {
	var (
		cfg    = c.config
		logger = deps.logger
	)

	token := os.Getenv(env.Prefix + env.PlacaFipeTokenSuffix)
	if token == "" {
		logger.Warn(
			"plate registry token not set, plate lookups will fail",
			"env", env.Prefix+env.PlacaFipeTokenSuffix,
		)
	}

	// Create the upstream clients
	plates, prices := NewClients(cfg, token)

	// Create the resolver
	resolver := NewResolver(cfg, plates, prices, deps.cache, logger)

	// Create the maintenance jobs
	orchestrator := jobs.New(jobs.WithLogger(logger))

	maintenance := []jobs.Job{
		jobs.NewCatalogRefresh(
			resolver,
			config.MustDuration(cfg.Jobs.CatalogRefreshInterval),
		),
	}

	if deps.sweeper != nil {
		maintenance = append(maintenance, jobs.NewCacheSweep(
			deps.sweeper,
			config.MustDuration(cfg.Jobs.CacheSweepInterval),
			logger,
		))
	}

	for _, job := range maintenance {
		if err := orchestrator.Register(job); err != nil {
			return fmt.Errorf("unable to register job: %w", err)
		}
	}

	// Create the server instance
	s, err := server.New(
		resolver,
		plates,
		deps.cache,
		server.WithLogger(logger),
		server.WithConfig(cfg),
	)
	if err != nil {
		return fmt.Errorf("unable to create server, %w", err)
	}

	runCtx, cancelFn := signal.NotifyContext(
		ctx,
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancelFn()

	group, gCtx := errgroup.WithContext(runCtx)

	// Start the HTTP server
	group.Go(func() error {
		return s.Serve(gCtx)
	})

	// Start the maintenance jobs
	group.Go(func() error {
		return orchestrator.Start(gCtx)
	})

	return group.Wait()
}

// NewClients creates the upstream clients from the configuration
func NewClients(cfg *config.Config, token string) (*placafipe.Client, *brasilapi.Client) {
	plateOpts := []placafipe.Option{
		placafipe.WithToken(token),
		placafipe.WithTimeout(config.MustDuration(cfg.Primary.Timeout)),
	}

	if cfg.Primary.UseGET {
		plateOpts = append(plateOpts, placafipe.WithGET())
	}

	plates := placafipe.NewClient(cfg.Primary.BaseURL, plateOpts...)

	prices := brasilapi.NewClient(
		cfg.Secondary.BaseURL,
		brasilapi.WithTimeout(config.MustDuration(cfg.Secondary.Timeout)),
	)

	return plates, prices
}

// NewResolver creates the resolver from the configuration
func NewResolver(
	cfg *config.Config,
	plates resolve.PlateSource,
	prices resolve.PriceSource,
	c cache.Cache,
	logger *slog.Logger,
) *resolve.Resolver {
	opts := []resolve.Option{
		resolve.WithLogger(logger),
		resolve.WithPlateCacheTTL(config.MustDuration(cfg.Resolver.PlateCacheTTL)),
		resolve.WithHistoryConcurrency(cfg.Resolver.HistoryConcurrency),
	}

	if cfg.Resolver.InflightDedup {
		opts = append(opts, resolve.WithInflightDedup())
	}

	return resolve.New(plates, prices, c, opts...)
}
