// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// hdist is a command-line front end for the hdist32 SQL function. It
// computes Hamming distances directly and runs SQL against a SQLite
// database whose connections have hdist32 registered, which is the
// way fingerprint databases are usually explored:
//
//	hdist query --database fingerprints.db \
//	    "SELECT a.path, b.path, hdist32(a.hash, b.hash) AS d
//	     FROM sources a JOIN sources b ON a.path < b.path
//	     WHERE d < 8 ORDER BY d"
//
// The loadable extension for other SQLite hosts is built from
// cmd/hdist-extension.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/hdist/cmd/hdist/cli"
	"github.com/bureau-foundation/hdist/lib/process"
	"github.com/bureau-foundation/hdist/lib/version"
)

func main() {
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

func run() error {
	// Handle --version before anything else.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print(os.Stdout, "hdist", false)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return newRootCommand(os.Stdout).Execute(ctx, os.Args[1:])
}

// newRootCommand builds the command tree. Results are written to
// stdout; help and logs go to stderr.
func newRootCommand(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:        "hdist",
		Description: "hdist computes 32-bit Hamming distances and runs SQL with the hdist32 function registered.",
		Subcommands: []*cli.Command{
			distanceCommand(stdout),
			queryCommand(stdout),
			versionCommand(stdout),
		},
	}
}

func versionCommand(stdout io.Writer) *cli.Command {
	var verbose bool

	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("version", pflag.ContinueOnError)
			flagSet.BoolVarP(&verbose, "verbose", "v", false, "include Go version and platform")
			return flagSet
		},
		Run: func(_ context.Context, args []string) error {
			if len(args) > 0 {
				return cli.Usage("unexpected argument: %s", args[0])
			}
			version.Print(stdout, "hdist", verbose)
			return nil
		},
	}
}
