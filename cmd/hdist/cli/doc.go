// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework for the hdist tool: a tree of
// [Command] values with pflag flag sets, help output, and typo
// suggestions for unknown commands and flags.
//
// Commands return errors; main decides how to print them. An
// [ExitError] requests a specific exit code without an extra message.
// [NewCommandLogger] builds the slog logger commands use for
// operational messages, which always go to stderr so that stdout stays
// clean for results.
package cli
