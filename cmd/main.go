package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/sig-0/fipeval/cmd/lookup"
	"github.com/sig-0/fipeval/cmd/serve"
)

func main() {
	fs := flag.NewFlagSet("root", flag.ExitOnError)

	// Create the root command
	cmd := &ffcli.Command{
		ShortUsage: "<sub-command> [flags] [<arg>...]",
		LongHelp:   "Runs the fipeval vehicle valuation service",
		FlagSet:    fs,
		Exec: func(_ context.Context, _ []string) error {
			return flag.ErrHelp
		},
	}

	// Add the subcommands
	cmd.Subcommands = []*ffcli.Command{
		serve.NewServeCmd(),
		lookup.NewLookupCmd(),
	}

	if err := cmd.ParseAndRun(context.Background(), os.Args[1:]); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)

		os.Exit(1)
	}
}
