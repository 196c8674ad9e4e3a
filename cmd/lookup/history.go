package lookup

import (
	"context"
	"flag"
	"fmt"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/sig-0/fipeval/cmd/env"
	"github.com/sig-0/fipeval/resolve"
)

type historyCfg struct {
	rootCfg *lookupCfg

	window int
}

// newHistoryCmd creates the lookup history command
func newHistoryCmd(rootCfg *lookupCfg) *ffcli.Command {
	cfg := &historyCfg{
		rootCfg: rootCfg,
	}

	fs := flag.NewFlagSet("history", flag.ExitOnError)
	rootCfg.registerFlags(fs)

	fs.IntVar(
		&cfg.window,
		"window",
		resolve.DefaultWindow,
		"the number of most recent reference tables (2-12)",
	)

	return &ffcli.Command{
		Name:       "history",
		ShortUsage: "lookup history [flags] <FIPE-CODE>",
		LongHelp:   "Resolves the valuation history of a FIPE code",
		FlagSet:    fs,
		Exec:       cfg.exec,
		Options: []ff.Option{
			ff.WithEnvVars(),
			ff.WithEnvVarPrefix(env.Prefix),
		},
	}
}

func (c *historyCfg) exec(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: expected a FIPE code", errMissingArgument)
	}

	resolver, err := c.rootCfg.newResolver()
	if err != nil {
		return err
	}

	result, err := resolver.ResolveHistory(ctx, args[0], c.window)
	if err != nil {
		return fmt.Errorf("unable to resolve history: %w", err)
	}

	return c.rootCfg.print(result)
}
