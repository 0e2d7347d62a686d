// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package hdist implements the hdist32 SQL scalar function: the Hamming
// distance between two 32-bit unsigned integers, and the registration
// logic that binds it into a SQL engine's function catalog.
//
// The package never talks to a database engine directly. The engine's
// services are injected as two small interfaces:
//
//   - [Catalog] -- the engine's function catalog (register_function,
//     plus a lookup used to detect name/arity collisions)
//   - [Call] -- one invocation of a registered function
//     (extract_int and report_int_result)
//
// Adapters live elsewhere: lib/sqlitehost binds a zombiezen
// *sqlite.Conn, and cmd/hdist-extension binds the C API table handed
// to a SQLite loadable extension at load time.
//
// # Registration
//
// An [Extension] holds the state of one load of the extension:
//
//	var extension hdist.Extension
//	if err := extension.Register(catalog); err != nil {
//	    return hdist.StatusOf(err)
//	}
//
// Register installs hdist32 with arity 2 and the flags UTF8,
// DETERMINISTIC, and INNOCUOUS. If the catalog already holds a
// function named hdist32 with arity 2, Register fails with
// [StatusError] instead of replacing it. Whatever the catalog reports
// on failure is surfaced unmodified through [StatusOf]; nothing is
// retried.
//
// # Argument coercion
//
// [Scalar] accepts whatever 32-bit pattern the engine's coercion
// produces for each argument and reinterprets it as unsigned. Text
// that is not numeric, NULL, out-of-range integers, and negative
// values are handled entirely by the engine's own rules; the function
// itself never fails.
package hdist
