// Package lookup holds the one-shot resolution commands
package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/sig-0/fipeval/cache/memory"
	"github.com/sig-0/fipeval/cmd/env"
	"github.com/sig-0/fipeval/cmd/serve"
	"github.com/sig-0/fipeval/resolve"
	"github.com/sig-0/fipeval/server/config"
)

var errMissingArgument = errors.New("missing argument")

// lookupCfg wraps the lookup configuration
type lookupCfg struct {
	out io.Writer

	configPath string
	verbose    bool
}

// NewLookupCmd creates the lookup subcommand
func NewLookupCmd() *ffcli.Command {
	cfg := &lookupCfg{
		out: os.Stdout,
	}

	fs := flag.NewFlagSet("lookup", flag.ExitOnError)
	cfg.registerFlags(fs)

	cmd := &ffcli.Command{
		Name:       "lookup",
		ShortUsage: "lookup <subcommand> [flags] <arg>",
		LongHelp:   "Runs a single resolution against the upstreams, printing the JSON result",
		FlagSet:    fs,
		Exec: func(_ context.Context, _ []string) error {
			return flag.ErrHelp
		},
		Options: []ff.Option{
			ff.WithEnvVars(),
			ff.WithEnvVarPrefix(env.Prefix),
		},
	}

	cmd.Subcommands = []*ffcli.Command{
		newPlateCmd(cfg),
		newHistoryCmd(cfg),
	}

	return cmd
}

func (c *lookupCfg) registerFlags(fs *flag.FlagSet) {
	fs.StringVar(
		&c.configPath,
		"config",
		"",
		"the path to the TOML configuration, if any",
	)

	fs.BoolVar(
		&c.verbose,
		"verbose",
		false,
		"log upstream degradations to stderr",
	)
}

// newResolver wires a resolver over a throwaway in-process cache
func (c *lookupCfg) newResolver() (*resolve.Resolver, error) {
	cfg := config.DefaultConfig()

	if c.configPath != "" {
		fileCfg, err := config.Read(c.configPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read config, %w", err)
		}

		cfg = fileCfg
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration, %w", err)
	}

	level := slog.LevelError
	if c.verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// Load .env
	if err := godotenv.Load(); err != nil {
		logger.Debug("unable to load .env file")
	}

	plates, prices := serve.NewClients(cfg, os.Getenv(env.Prefix+env.PlacaFipeTokenSuffix))

	return serve.NewResolver(cfg, plates, prices, memory.NewCache(), logger), nil
}

func (c *lookupCfg) print(v any) error {
	encoder := json.NewEncoder(c.out)
	encoder.SetIndent("", "  ")

	return encoder.Encode(v)
}
