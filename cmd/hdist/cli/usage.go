// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// UsageError is an invalid invocation: wrong argument count, a value
// that does not parse, an unknown output format.
type UsageError struct {
	err error
}

// Usage returns a UsageError formatted like fmt.Errorf.
func Usage(format string, args ...any) *UsageError {
	return &UsageError{err: fmt.Errorf(format, args...)}
}

func (e *UsageError) Error() string {
	return e.err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.err
}
