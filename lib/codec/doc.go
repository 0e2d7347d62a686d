// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the standard CBOR encoding configuration used
// for binary query output.
//
// The hdist CLI writes query results as JSON for people and scripts,
// and as CBOR (--format cbor) for programs that feed the rows into
// further fingerprint processing without a text round trip. 64-bit
// integers and blobs survive CBOR intact, where JSON would turn
// integers above 2^53 into floats and blobs into base64 text.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items.
// Same logical data always produces identical bytes.
//
// Query output is streamed with [NewEncoder]. When stdout is a
// terminal the CLI prints [Diagnose] notation of the [Marshal]ed rows
// instead of raw bytes. [Unmarshal] decodes into map[string]any, so a
// decoded row reads the same as its JSON form.
//
// Types that are also printed as JSON use `json` struct tags only;
// fxamacker/cbor reads them as a fallback when `cbor` tags are absent.
package codec
