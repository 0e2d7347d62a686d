// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sqlitehost

import (
	"fmt"
	"log/slog"

	"zombiezen.com/go/sqlite"

	"github.com/bureau-foundation/hdist/lib/hdist"
)

// Session is one SQLite connection acting as an hdist host. Like the
// connection it wraps, a Session is not safe for concurrent use.
type Session struct {
	conn   *sqlite.Conn
	logger *slog.Logger
}

// Bind wraps conn as a Session. A nil conn is reported as
// hdist.StatusMisuse, and a zombiezen build whose Conn layout this
// package does not recognize as hdist.StatusInternal. If logger is
// nil, a no-op logger is used.
func Bind(conn *sqlite.Conn, logger *slog.Logger) (*Session, error) {
	if conn == nil {
		return nil, &hdist.Error{
			Status:  hdist.StatusMisuse,
			Message: "sqlitehost: nil connection",
		}
	}
	if err := checkConnLayout(); err != nil {
		return nil, &hdist.Error{Status: hdist.StatusInternal, Err: err}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{conn: conn, logger: logger}, nil
}

// HasFunction reports whether name can be called with nargs arguments
// on this connection. It compiles, but never steps, a lookup statement;
// SQLite rejects unknown functions and arity mismatches at prepare time.
func (s *Session) HasFunction(name string, nargs int) bool {
	stmt, _, err := s.conn.PrepareTransient(hdist.LookupQuery(name, nargs))
	if err != nil {
		return false
	}
	if err := stmt.Finalize(); err != nil {
		s.logger.Warn("finalizing function lookup failed",
			"function", name,
			"error", err,
		)
	}
	return true
}

// CreateFunction installs def on the connection with def.Flags passed
// to sqlite3_create_function_v2 unchanged, so FlagInnocuous reaches
// SQLite as SQLITE_INNOCUOUS. Errors carry the SQLite result code as
// an hdist.Status.
func (s *Session) CreateFunction(def hdist.Definition) error {
	if def.Scalar == nil {
		return &hdist.Error{
			Status:  hdist.StatusMisuse,
			Message: fmt.Sprintf("sqlitehost: %s has no scalar body", def.Name),
		}
	}

	status, message := native(s.conn).createFunction(def)
	if status != hdist.StatusOK {
		return &hdist.Error{
			Status:  status,
			Message: fmt.Sprintf("sqlitehost: creating %s/%d: %s", def.Name, def.NArgs, message),
		}
	}

	s.logger.Debug("function created",
		"function", def.Name,
		"nargs", def.NArgs,
		"flags", def.Flags.String(),
	)
	return nil
}

// Load binds conn and registers hdist32 on it.
func Load(conn *sqlite.Conn, logger *slog.Logger) error {
	session, err := Bind(conn, logger)
	if err != nil {
		return err
	}

	var extension hdist.Extension
	if err := extension.Register(session); err != nil {
		session.logger.Error("hdist registration failed",
			"status", hdist.StatusOf(err).String(),
			"error", err,
		)
		return err
	}

	session.logger.Debug("hdist registered",
		"function", hdist.FunctionName,
		"state", extension.State().String(),
	)
	return nil
}
