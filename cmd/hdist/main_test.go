// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/bureau-foundation/hdist/cmd/hdist/cli"
	"github.com/bureau-foundation/hdist/lib/codec"
	"github.com/bureau-foundation/hdist/lib/config"
	"github.com/bureau-foundation/hdist/lib/sqlitehost"
	"github.com/bureau-foundation/hdist/lib/version"
)

func TestParseOperand(t *testing.T) {
	tests := []struct {
		input string
		want  uint32
	}{
		{"0", 0},
		{"5", 5},
		{"0x1F", 0x1F},
		{"0b1010", 0b1010},
		{"0o17", 0o17},
		{"-1", 0xFFFFFFFF},
		{"4294967295", 0xFFFFFFFF},
		{"4294967301", 5},
		{"18446744073709551615", 0xFFFFFFFF},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			got, err := parseOperand(test.input)
			if err != nil {
				t.Fatalf("parseOperand(%q): %v", test.input, err)
			}
			if got != test.want {
				t.Errorf("parseOperand(%q) = %#x, want %#x", test.input, got, test.want)
			}
		})
	}
}

func TestParseOperandInvalid(t *testing.T) {
	for _, input := range []string{"", "abc", "3.7", "0xZZ"} {
		_, err := parseOperand(input)
		var usageErr *cli.UsageError
		if !errors.As(err, &usageErr) {
			t.Errorf("parseOperand(%q) error = %v, want *cli.UsageError", input, err)
		}
	}
}

func TestDistanceCommand(t *testing.T) {
	output := runCommand(t, "distance", "5", "9")
	if output != "2\n" {
		t.Errorf("output = %q, want %q", output, "2\n")
	}

	output = runCommand(t, "distance", "--", "-1", "0")
	if output != "32\n" {
		t.Errorf("output = %q, want %q", output, "32\n")
	}
}

func TestDistanceCommandJSON(t *testing.T) {
	output := runCommand(t, "distance", "--json", "0b1010", "0b0110")

	var result distanceResult
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("unmarshal %q: %v", output, err)
	}
	want := distanceResult{A: 10, B: 6, Distance: 2}
	if result != want {
		t.Errorf("result = %+v, want %+v", result, want)
	}
}

func TestDistanceCommandWithin(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")

	var stdout bytes.Buffer
	err := newRootCommand(&stdout).Execute(context.Background(), []string{"distance", "--within", "2", "5", "9"})
	if err != nil {
		t.Errorf("distance 2 within 2: %v", err)
	}

	stdout.Reset()
	err = newRootCommand(&stdout).Execute(context.Background(), []string{"distance", "--within", "1", "5", "9"})
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("distance 2 within 1: error = %v, want exit code 1", err)
	}
	if stdout.String() != "2\n" {
		t.Errorf("output = %q, want the distance printed before exiting", stdout.String())
	}
}

func TestDistanceCommandArgumentCount(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")
	var stdout bytes.Buffer
	err := newRootCommand(&stdout).Execute(context.Background(), []string{"distance", "5"})
	var usageErr *cli.UsageError
	if !errors.As(err, &usageErr) {
		t.Fatalf("error = %v, want *cli.UsageError", err)
	}
}

func TestQueryCommandJSON(t *testing.T) {
	path := createFingerprintDatabase(t)

	output := runCommand(t, "query", "--database", path, "--format", "json",
		"SELECT path, hdist32(hash, ?) AS distance FROM sources ORDER BY path", "0")

	var rows []map[string]any
	if err := json.Unmarshal([]byte(output), &rows); err != nil {
		t.Fatalf("unmarshal %q: %v", output, err)
	}
	want := []struct {
		path     string
		distance float64
	}{
		{"a.c", 0},
		{"b.c", 1},
		{"c.c", 32},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d: %s", len(rows), len(want), output)
	}
	for i, row := range rows {
		if row["path"] != want[i].path || row["distance"] != want[i].distance {
			t.Errorf("row %d = %v, want path=%s distance=%v", i, row, want[i].path, want[i].distance)
		}
	}
}

func TestQueryCommandCBOR(t *testing.T) {
	path := createFingerprintDatabase(t)

	output := runCommand(t, "query", "--database", path, "--format", "cbor",
		"SELECT hdist32(a.hash, b.hash) AS distance FROM sources a, sources b WHERE a.path = ? AND b.path = ?",
		"b.c", "c.c")

	var rows []map[string]any
	if err := codec.Unmarshal([]byte(output), &rows); err != nil {
		t.Fatalf("codec.Unmarshal: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0]["distance"] != uint64(31) {
		t.Errorf("distance = %#v, want uint64(31)", rows[0]["distance"])
	}
}

func TestQueryCommandTable(t *testing.T) {
	path := createFingerprintDatabase(t)

	output := runCommand(t, "query", "--database", path,
		"SELECT path, hdist32(hash, 0) AS distance FROM sources WHERE path = 'c.c'")

	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), output)
	}
	if fields := strings.Fields(lines[0]); len(fields) != 2 || fields[0] != "path" || fields[1] != "distance" {
		t.Errorf("header = %q", lines[0])
	}
	if fields := strings.Fields(lines[1]); len(fields) != 2 || fields[0] != "c.c" || fields[1] != "32" {
		t.Errorf("row = %q", lines[1])
	}
}

func TestQueryCommandMemoryDatabase(t *testing.T) {
	output := runCommand(t, "query", "--database", ":memory:", "--format", "json", "SELECT hdist32(5, 9) AS d")

	var rows []map[string]any
	if err := json.Unmarshal([]byte(output), &rows); err != nil {
		t.Fatalf("unmarshal %q: %v", output, err)
	}
	if len(rows) != 1 || rows[0]["d"] != float64(2) {
		t.Errorf("rows = %v, want [{d: 2}]", rows)
	}
}

func TestQueryCommandReadOnly(t *testing.T) {
	path := createFingerprintDatabase(t)
	t.Setenv(config.EnvironmentVariable, "")

	var stdout bytes.Buffer
	err := newRootCommand(&stdout).Execute(context.Background(), []string{
		"query", "--database", path, "--read-only",
		"INSERT INTO sources (path, hash) VALUES ('d.c', 1)",
	})
	if err == nil {
		t.Fatal("insert through a read-only database succeeded")
	}
	if !strings.Contains(strings.ToLower(err.Error()), "readonly") {
		t.Errorf("error = %v, want a read-only database error", err)
	}
}

func TestQueryCommandConfigFile(t *testing.T) {
	path := createFingerprintDatabase(t)
	configPath := filepath.Join(t.TempDir(), "hdist.yaml")
	contents := "database:\n  path: " + path + "\noutput:\n  format: json\n"
	if err := os.WriteFile(configPath, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.EnvironmentVariable, configPath)

	var stdout bytes.Buffer
	err := newRootCommand(&stdout).Execute(context.Background(), []string{
		"query", "SELECT count(*) AS n FROM sources",
	})
	if err != nil {
		t.Fatalf("query: %v", err)
	}

	var rows []map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &rows); err != nil {
		t.Fatalf("unmarshal %q: %v", stdout.String(), err)
	}
	if len(rows) != 1 || rows[0]["n"] != float64(3) {
		t.Errorf("rows = %v, want [{n: 3}]", rows)
	}
}

func TestQueryCommandUsageErrors(t *testing.T) {
	path := createFingerprintDatabase(t)

	tests := []struct {
		name string
		args []string
	}{
		{"no statement", []string{"query", "--database", path}},
		{"missing argument", []string{"query", "--database", path, "SELECT hdist32(?, ?)", "1"}},
		{"extra argument", []string{"query", "--database", path, "SELECT 1", "1"}},
		{"two statements", []string{"query", "--database", path, "SELECT 1; SELECT 2"}},
		{"unknown format", []string{"query", "--database", path, "--format", "xml", "SELECT 1"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Setenv(config.EnvironmentVariable, "")
			var stdout bytes.Buffer
			err := newRootCommand(&stdout).Execute(context.Background(), test.args)
			var usageErr *cli.UsageError
			if !errors.As(err, &usageErr) {
				t.Errorf("error = %v, want *cli.UsageError", err)
			}
		})
	}
}

func TestExecuteStatementValues(t *testing.T) {
	conn, err := sqlite.OpenConn(filepath.Join(t.TempDir(), "values.db"), sqlite.OpenReadWrite|sqlite.OpenCreate)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := sqlitehost.Load(conn, nil); err != nil {
		t.Fatal(err)
	}

	result, err := executeStatement(conn,
		"SELECT hdist32(?, ?) AS i, 1.5 AS f, ? AS s, x'cafe' AS b, NULL AS n",
		[]string{"0x0F", "0", "hello"})
	if err != nil {
		t.Fatalf("executeStatement: %v", err)
	}
	if len(result.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(result.Rows))
	}

	row := result.Rows[0]
	if row[0] != int64(4) {
		t.Errorf("integer column = %#v, want int64(4)", row[0])
	}
	if row[1] != 1.5 {
		t.Errorf("float column = %#v, want 1.5", row[1])
	}
	if row[2] != "hello" {
		t.Errorf("text column = %#v, want \"hello\"", row[2])
	}
	if blob, ok := row[3].([]byte); !ok || !bytes.Equal(blob, []byte{0xca, 0xfe}) {
		t.Errorf("blob column = %#v, want []byte{0xca, 0xfe}", row[3])
	}
	if row[4] != nil {
		t.Errorf("null column = %#v, want nil", row[4])
	}

	var table bytes.Buffer
	if err := writeTable(&table, result); err != nil {
		t.Fatal(err)
	}
	fields := strings.Fields(strings.Split(table.String(), "\n")[1])
	want := []string{"4", "1.5", "hello", "x'cafe'", "NULL"}
	if strings.Join(fields, " ") != strings.Join(want, " ") {
		t.Errorf("table row = %v, want %v", fields, want)
	}
}

func TestCBORDiagnosticForTerminals(t *testing.T) {
	result := &resultSet{
		Columns: []string{"path", "distance"},
		Rows:    [][]any{{"a.c", int64(2)}},
	}

	var output bytes.Buffer
	if err := writeCBORDiagnostic(&output, result.records()); err != nil {
		t.Fatalf("writeCBORDiagnostic: %v", err)
	}
	for _, want := range []string{`"path"`, `"a.c"`, `"distance"`, "2"} {
		if !strings.Contains(output.String(), want) {
			t.Errorf("diagnostic notation %q missing %s", output.String(), want)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	output := runCommand(t, "version")
	if output != "hdist "+version.Current().String()+"\n" {
		t.Errorf("output = %q", output)
	}

	output = runCommand(t, "version", "--verbose")
	if !strings.Contains(output, "Platform: ") {
		t.Errorf("verbose output = %q, want platform details", output)
	}
}

// runCommand executes the root command with args and returns stdout.
// HDIST_CONFIG is cleared so a developer's config file cannot leak in.
func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv(config.EnvironmentVariable, "")

	var stdout bytes.Buffer
	root := newRootCommand(&stdout)
	root.HelpOutput = &bytes.Buffer{}
	if err := root.Execute(context.Background(), args); err != nil {
		t.Fatalf("hdist %s: %v", strings.Join(args, " "), err)
	}
	return stdout.String()
}

// createFingerprintDatabase writes a small database of path/hash rows
// and returns its path.
func createFingerprintDatabase(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fingerprints.db")

	conn, err := sqlite.OpenConn(path, sqlite.OpenReadWrite|sqlite.OpenCreate)
	if err != nil {
		t.Fatalf("opening %s: %v", path, err)
	}
	defer conn.Close()

	err = sqlitex.ExecuteScript(conn, `
		CREATE TABLE sources (path TEXT PRIMARY KEY, hash INTEGER NOT NULL);
		INSERT INTO sources (path, hash) VALUES
			('a.c', 0),
			('b.c', 1),
			('c.c', 4294967295);
	`, nil)
	if err != nil {
		t.Fatalf("creating schema: %v", err)
	}
	return path
}
