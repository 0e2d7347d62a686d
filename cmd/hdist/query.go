// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"zombiezen.com/go/sqlite"

	"github.com/bureau-foundation/hdist/cmd/hdist/cli"
	"github.com/bureau-foundation/hdist/lib/config"
	"github.com/bureau-foundation/hdist/lib/sqlitepool"
)

type queryParams struct {
	configPath string
	database   string
	format     string
	readOnly   bool
}

func queryCommand(stdout io.Writer) *cli.Command {
	var params queryParams
	var flagSet *pflag.FlagSet

	return &cli.Command{
		Name:    "query",
		Summary: "Run a SQL statement with hdist32 registered",
		Description: `Run one SQL statement against a SQLite database whose connection has
hdist32(a, b) registered, and print the resulting rows.

Positional arguments after the statement are bound to its ? parameters
in order: arguments that parse as integers are bound as INTEGER, all
others as TEXT. Put -- before the first argument that starts with a dash.

Configuration comes from --config, else the file named by HDIST_CONFIG,
else built-in defaults. Flags override the configuration.`,
		Usage: "hdist query [flags] SQL [ARG...]",
		Examples: []cli.Example{
			{
				Description: "Evaluate the function directly",
				Command:     `hdist query --database :memory: "SELECT hdist32(5, 9)"`,
			},
			{
				Description: "Find near-duplicate fingerprints in a read-only database",
				Command:     `hdist query --read-only --database fingerprints.db --format json "SELECT a.path, b.path FROM sources a JOIN sources b ON a.path < b.path WHERE hdist32(a.hash, b.hash) <= ?" 4`,
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet = pflag.NewFlagSet("query", pflag.ContinueOnError)
			flagSet.StringVar(&params.configPath, "config", "", "path to hdist.yaml (default: $HDIST_CONFIG)")
			flagSet.StringVar(&params.database, "database", "", "SQLite database file (overrides database.path)")
			flagSet.StringVar(&params.format, "format", "", "output format: table, json, or cbor (overrides output.format)")
			flagSet.BoolVar(&params.readOnly, "read-only", false, "open the database read-only (overrides database.read_only)")
			return flagSet
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return cli.Usage("query requires a SQL statement")
			}

			cfg, err := loadQueryConfig(params, flagSet)
			if err != nil {
				return err
			}
			level, err := cfg.Log.SlogLevel()
			if err != nil {
				return err
			}
			logger := cli.NewCommandLogger(level).With("command", "query")

			result, err := runQuery(ctx, cfg, logger, args[0], args[1:])
			if err != nil {
				return err
			}
			return writeResult(stdout, cfg.Output.Format, result)
		},
	}
}

// loadQueryConfig resolves the configuration and applies explicitly
// set flags on top of it.
func loadQueryConfig(params queryParams, flagSet *pflag.FlagSet) (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case params.configPath != "":
		cfg, err = config.LoadFile(params.configPath)
	case os.Getenv(config.EnvironmentVariable) != "":
		cfg, err = config.Load()
	default:
		cfg = config.Resolve()
	}
	if err != nil {
		return nil, err
	}

	if flagSet != nil {
		if flagSet.Changed("database") {
			cfg.Database.Path = params.database
		}
		if flagSet.Changed("format") {
			cfg.Output.Format = params.format
		}
		if flagSet.Changed("read-only") {
			cfg.Database.ReadOnly = params.readOnly
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, cli.Usage("invalid configuration: %w", err)
	}
	return cfg, nil
}

// runQuery executes one statement on a pooled connection and collects
// every row.
func runQuery(ctx context.Context, cfg *config.Config, logger *slog.Logger, query string, args []string) (*resultSet, error) {
	if cfg.Database.Path != ":memory:" {
		if err := cfg.EnsureDatabaseDir(); err != nil {
			return nil, err
		}
	}

	pool, err := sqlitepool.Open(sqlitepool.Config{
		Path:     cfg.Database.Path,
		PoolSize: cfg.Database.PoolSize,
		ReadOnly: cfg.Database.ReadOnly,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	conn, err := pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer pool.Put(conn)

	result, err := executeStatement(conn, query, args)
	if err != nil {
		return nil, err
	}
	logger.Debug("statement executed",
		"columns", len(result.Columns),
		"rows", len(result.Rows),
		"changes", conn.Changes(),
	)
	return result, nil
}

// executeStatement prepares query, binds args, and steps it to
// completion.
func executeStatement(conn *sqlite.Conn, query string, args []string) (*resultSet, error) {
	stmt, trailingBytes, err := conn.PrepareTransient(query)
	if err != nil {
		return nil, fmt.Errorf("preparing statement: %w", err)
	}
	if stmt == nil {
		return nil, cli.Usage("query contains no SQL statement")
	}
	defer stmt.Finalize()

	if trailingBytes > 0 && strings.TrimSpace(query[len(query)-trailingBytes:]) != "" {
		return nil, cli.Usage("query runs exactly one SQL statement")
	}

	if count := stmt.BindParamCount(); count != len(args) {
		return nil, cli.Usage("statement has %d parameters, got %d arguments", count, len(args))
	}
	for i, arg := range args {
		if value, err := strconv.ParseInt(arg, 0, 64); err == nil {
			stmt.BindInt64(i+1, value)
		} else {
			stmt.BindText(i+1, arg)
		}
	}

	result := &resultSet{}
	for i := range stmt.ColumnCount() {
		result.Columns = append(result.Columns, stmt.ColumnName(i))
	}

	for {
		hasRow, err := stmt.Step()
		if err != nil {
			return nil, fmt.Errorf("executing statement: %w", err)
		}
		if !hasRow {
			break
		}
		row := make([]any, len(result.Columns))
		for i := range row {
			row[i] = columnValue(stmt, i)
		}
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}

// columnValue returns column i of the current row as int64, float64,
// string, []byte, or nil.
func columnValue(stmt *sqlite.Stmt, i int) any {
	switch stmt.ColumnType(i) {
	case sqlite.TypeInteger:
		return stmt.ColumnInt64(i)
	case sqlite.TypeFloat:
		return stmt.ColumnFloat(i)
	case sqlite.TypeText:
		return stmt.ColumnText(i)
	case sqlite.TypeBlob:
		buffer := make([]byte, stmt.ColumnLen(i))
		stmt.ColumnBytes(i, buffer)
		return buffer
	default:
		return nil
	}
}
