// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides binary entrypoint helpers. [Fatal] is the
// one place a binary writes raw error text to stderr, for errors that
// happen before or after the structured logger exists.
package process
