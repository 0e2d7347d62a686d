// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sqlitehost binds a zombiezen.com/go/sqlite connection as the
// host engine for the hdist extension.
//
// [Bind] is the binding step: it wraps a *sqlite.Conn in a [Session]
// that implements hdist.Catalog. [Load] binds and registers hdist32 in
// one call and is what lib/sqlitepool runs on every new connection:
//
//	conn, err := sqlite.OpenConn(path)
//	if err != nil {
//	    return err
//	}
//	if err := sqlitehost.Load(conn, logger); err != nil {
//	    return err // hdist.StatusOf(err) is the SQLite result code
//	}
//
// SQLite's sqlite3_create_function silently replaces an existing
// function with the same name and arity. Session.HasFunction compiles
// a lookup statement instead, so that hdist.Extension can report a
// collision rather than overwrite.
//
// zombiezen's FunctionImpl has no way to declare SQLITE_INNOCUOUS, so
// Session.CreateFunction registers through modernc's
// sqlite3_create_function_v2 on the connection's own handle. Flags
// reach SQLite unchanged, and hdist32 stays usable from views and
// triggers under PRAGMA trusted_schema=OFF. Arguments are read with
// sqlite3_value_int, so text, real, blob, and NULL arguments follow
// SQLite's numeric coercion.
package sqlitehost
