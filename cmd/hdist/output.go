// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/bureau-foundation/hdist/cmd/hdist/cli"
	"github.com/bureau-foundation/hdist/lib/codec"
	"github.com/bureau-foundation/hdist/lib/config"
)

// resultSet holds the columns and rows produced by one statement.
type resultSet struct {
	Columns []string
	Rows    [][]any
}

// records returns the rows as column-name-keyed maps. When a name
// repeats, the rightmost column wins.
func (r *resultSet) records() []map[string]any {
	records := make([]map[string]any, 0, len(r.Rows))
	for _, row := range r.Rows {
		record := make(map[string]any, len(r.Columns))
		for i, column := range r.Columns {
			record[column] = row[i]
		}
		records = append(records, record)
	}
	return records
}

// writeResult renders result in the named format.
func writeResult(w io.Writer, format string, result *resultSet) error {
	switch format {
	case config.FormatTable:
		return writeTable(w, result)
	case config.FormatJSON:
		return cli.WriteJSON(w, result.records())
	case config.FormatCBOR:
		if cli.IsTerminal(w) {
			return writeCBORDiagnostic(w, result.records())
		}
		return codec.NewEncoder(w).Encode(result.records())
	default:
		return cli.Usage("unknown output format %q", format)
	}
}

// writeCBORDiagnostic prints the CBOR encoding of value in diagnostic
// notation, for a terminal that cannot show the raw bytes.
func writeCBORDiagnostic(w io.Writer, value any) error {
	data, err := codec.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding CBOR: %w", err)
	}
	notation, err := codec.Diagnose(data)
	if err != nil {
		return fmt.Errorf("diagnosing CBOR: %w", err)
	}
	_, err = fmt.Fprintln(w, notation)
	return err
}

// writeTable writes a header line and one line per row. Statements that
// return no columns print nothing.
func writeTable(w io.Writer, result *resultSet) error {
	if len(result.Columns) == 0 {
		return nil
	}

	writer := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	fmt.Fprintln(writer, strings.Join(result.Columns, "\t"))
	for _, row := range result.Rows {
		cells := make([]string, len(row))
		for i, value := range row {
			cells[i] = formatCell(value)
		}
		fmt.Fprintln(writer, strings.Join(cells, "\t"))
	}
	return writer.Flush()
}

func formatCell(value any) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return v
	case []byte:
		return "x'" + hex.EncodeToString(v) + "'"
	default:
		return fmt.Sprint(v)
	}
}
