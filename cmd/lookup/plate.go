package lookup

import (
	"context"
	"flag"
	"fmt"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/sig-0/fipeval/cmd/env"
)

// newPlateCmd creates the lookup plate command
func newPlateCmd(rootCfg *lookupCfg) *ffcli.Command {
	fs := flag.NewFlagSet("plate", flag.ExitOnError)
	rootCfg.registerFlags(fs)

	return &ffcli.Command{
		Name:       "plate",
		ShortUsage: "lookup plate [flags] <PLATE>",
		LongHelp:   "Resolves a license plate into a vehicle and its current valuation",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			return rootCfg.execPlate(ctx, args)
		},
		Options: []ff.Option{
			ff.WithEnvVars(),
			ff.WithEnvVarPrefix(env.Prefix),
		},
	}
}

func (c *lookupCfg) execPlate(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: expected a plate", errMissingArgument)
	}

	resolver, err := c.newResolver()
	if err != nil {
		return err
	}

	vehicle, err := resolver.ResolvePlate(ctx, args[0])
	if err != nil {
		return fmt.Errorf("unable to resolve plate: %w", err)
	}

	return c.print(vehicle)
}
