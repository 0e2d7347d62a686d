// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports which build of hdist is running.
//
// GitCommit, GitDirty, BuildTime, and Version are stamped in by the
// release build with -ldflags -X; development builds and tests see the
// defaults ("unknown", "false", "unknown", "0.1.0-dev"). [Current]
// snapshots them together with the Go toolchain and platform, and
// [Print] is what "hdist version" and "hdist --version" call.
package version
