// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/hdist/cmd/hdist/cli"
	"github.com/bureau-foundation/hdist/lib/hdist"
)

// distanceResult is the --json output of "hdist distance".
type distanceResult struct {
	A        uint32 `json:"a"`
	B        uint32 `json:"b"`
	Distance uint32 `json:"distance"`
}

func distanceCommand(stdout io.Writer) *cli.Command {
	var outputJSON bool
	var within int

	return &cli.Command{
		Name:    "distance",
		Summary: "Print the Hamming distance between two 32-bit integers",
		Description: `Print the number of bit positions at which two 32-bit integers differ.

Operands may be decimal, or prefixed with 0x, 0b, or 0o. Values outside
the unsigned 32-bit range keep only their low 32 bits, so -1 is
0xFFFFFFFF, exactly as hdist32 sees it inside SQLite.

With --within N the command exits with status 1 when the distance is
greater than N, so shell scripts can test two fingerprints for
near-equality.`,
		Usage: "hdist distance [flags] A B",
		Examples: []cli.Example{
			{Description: "0101 and 1001 differ in two bits", Command: "hdist distance 5 9"},
			{Description: "Negative operands need --", Command: "hdist distance -- -1 0"},
			{Description: "Succeed only if at most 4 bits differ", Command: "hdist distance --within 4 0x1F2E 0x1F2F"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("distance", pflag.ContinueOnError)
			flagSet.BoolVar(&outputJSON, "json", false, "output as JSON")
			flagSet.IntVar(&within, "within", -1, "exit with status 1 if the distance exceeds this many bits")
			return flagSet
		},
		Run: func(_ context.Context, args []string) error {
			if len(args) != 2 {
				return cli.Usage("distance takes exactly 2 operands, got %d", len(args))
			}

			a, err := parseOperand(args[0])
			if err != nil {
				return err
			}
			b, err := parseOperand(args[1])
			if err != nil {
				return err
			}

			result := distanceResult{A: a, B: b, Distance: hdist.Distance(a, b)}
			if outputJSON {
				err = cli.WriteJSON(stdout, result)
			} else {
				_, err = fmt.Fprintln(stdout, result.Distance)
			}
			if err != nil {
				return err
			}

			if within >= 0 && int(result.Distance) > within {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

// parseOperand parses s as an integer in any Go literal base and keeps
// its low 32 bits.
func parseOperand(s string) (uint32, error) {
	if signed, err := strconv.ParseInt(s, 0, 64); err == nil {
		return uint32(signed), nil
	}
	if unsigned, err := strconv.ParseUint(s, 0, 64); err == nil {
		return uint32(unsigned), nil
	}
	return 0, cli.Usage("invalid operand %q: want an integer such as 5, 0x1F, or 0b1010", s)
}
