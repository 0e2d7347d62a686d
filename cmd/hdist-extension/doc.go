// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// hdist-extension builds hdist32 as a SQLite run-time loadable
// extension:
//
//	go build -buildmode=c-shared -o hdist.so ./cmd/hdist-extension
//
// and then, from any SQLite host:
//
//	sqlite> .load ./hdist
//	sqlite> SELECT hdist32(5, 9);
//	2
//
// SQLite derives the entry point sqlite3_hdist_init from the file name.
// The build needs sqlite3ext.h (libsqlite3-dev on Debian) but does not
// link against libsqlite3: every SQLite call goes through the routine
// table the host passes to the entry point. Hosts older than 3.31.0
// are refused because they cannot honor SQLITE_INNOCUOUS.
//
// Loading the same library twice into one connection fails with
// SQLITE_ERROR rather than replacing the existing hdist32.
package main
