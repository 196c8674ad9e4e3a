package serve

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/sig-0/fipeval/cache/memory"
	"github.com/sig-0/fipeval/cmd/env"
)

type serveMemoryCfg struct {
	rootCfg *serveCfg
}

// newServeMemoryCmd creates the serve memory command
func newServeMemoryCmd(rootCfg *serveCfg) *ffcli.Command {
	cfg := &serveMemoryCfg{
		rootCfg: rootCfg,
	}

	fs := flag.NewFlagSet("memory", flag.ExitOnError)
	cfg.rootCfg.registerFlags(fs)

	return &ffcli.Command{
		Name:       "memory",
		ShortUsage: "serve memory [flags]",
		LongHelp:   "Serves the fipeval backend, using an in-process cache",
		FlagSet:    fs,
		Exec:       cfg.exec,
		Options: []ff.Option{
			ff.WithEnvVars(),
			ff.WithEnvVarPrefix(env.Prefix),
		},
	}
}

func (c *serveMemoryCfg) exec(ctx context.Context, _ []string) error {
	// Read the server configuration, if any
	if err := c.rootCfg.loadConfig(); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load .env
	if err := godotenv.Load(); err != nil {
		logger.Warn("unable to load .env file")
	}

	// Create an in-process cache
	store := memory.NewCache()

	return c.rootCfg.run(ctx, serveDeps{
		cache:   store,
		sweeper: store,
		logger:  logger,
	})
}
