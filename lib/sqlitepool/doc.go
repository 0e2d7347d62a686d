// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sqlitepool provides a SQLite connection pool whose
// connections all have the hdist32 function registered.
//
// It wraps zombiezen.com/go/sqlite with production-ready defaults: WAL
// journal mode, NORMAL synchronous for process-crash durability
// without fsync-per-commit overhead, memory-mapped I/O for read
// performance, and busy timeout to handle write contention gracefully.
//
// The pool is built on zombiezen's sqlitex.Pool, which manages a
// fixed-size set of connections. Callers [Pool.Take] a connection,
// perform work, and [Pool.Put] it back. Connections are NOT safe for
// concurrent use; each goroutine must hold its own connection for the
// duration of its work. hdist32 itself holds no state, so any number
// of connections may evaluate it at once.
//
// # Connection setup
//
// Every connection is prepared in this order:
//
//  1. Pragmas: journal_mode=WAL (skipped for read-only pools),
//     synchronous=NORMAL, busy_timeout=5000, foreign_keys=OFF,
//     cache_size=-8192, mmap_size=268435456, temp_store=MEMORY.
//  2. hdist32 registration through lib/sqlitehost. A registration
//     failure discards the connection and is returned from Take.
//  3. The optional [Config].OnConnect callback, which can already
//     use hdist32 (for example in a generated column or a view).
//
// # Usage
//
//	pool, err := sqlitepool.Open(sqlitepool.Config{
//	    Path:     "/var/lib/hdist/fingerprints.db",
//	    ReadOnly: true,
//	    Logger:   logger,
//	})
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	conn, err := pool.Take(ctx)
//	if err != nil {
//	    return err
//	}
//	defer pool.Put(conn)
package sqlitepool
