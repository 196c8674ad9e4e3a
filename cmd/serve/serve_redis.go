package serve

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/sig-0/fipeval/cache/redis"
	"github.com/sig-0/fipeval/cmd/env"
)

type serveRedisCfg struct {
	rootCfg *serveCfg

	keyPrefix string
}

// newServeRedisCmd creates the serve redis command
func newServeRedisCmd(rootCfg *serveCfg) *ffcli.Command {
	cfg := &serveRedisCfg{
		rootCfg: rootCfg,
	}

	fs := flag.NewFlagSet("redis", flag.ExitOnError)
	cfg.rootCfg.registerFlags(fs)

	fs.StringVar(
		&cfg.keyPrefix,
		"key-prefix",
		redis.DefaultKeyPrefix,
		"the prefix of every cache key stored in redis",
	)

	return &ffcli.Command{
		Name:       "redis",
		ShortUsage: "serve redis [flags]",
		LongHelp:   "Serves the fipeval backend, using a shared redis cache",
		FlagSet:    fs,
		Exec:       cfg.exec,
		Options: []ff.Option{
			// Allow using ENV variables
			ff.WithEnvVars(),
			ff.WithEnvVarPrefix(env.Prefix),
		},
	}
}

// exec executes the serve redis command
func (c *serveRedisCfg) exec(ctx context.Context, _ []string) error {
	// Read the server configuration, if any
	if err := c.rootCfg.loadConfig(); err != nil {
		return err
	}

	// Create a new logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load .env
	if err := godotenv.Load(); err != nil {
		logger.Warn("unable to load .env file")
	}

	// Redis
	url := os.Getenv(env.Prefix + env.RedisURLSuffix)
	if url == "" {
		return fmt.Errorf("missing %s", env.Prefix+env.RedisURLSuffix)
	}

	client, err := redis.NewClient(ctx, url)
	if err != nil {
		return fmt.Errorf("unable to reach redis: %w", err)
	}

	defer func() {
		if err := client.Close(); err != nil {
			logger.Error(
				"unable to gracefully close redis connection",
				"err", err,
			)
		}
	}()

	logger.Info("redis ping success")

	store := redis.NewCache(
		client,
		redis.WithLogger(logger),
		redis.WithKeyPrefix(c.keyPrefix),
	)

	// Redis expires entries on its own, no sweep needed
	return c.rootCfg.run(ctx, serveDeps{
		cache:  store,
		logger: logger,
	})
}
