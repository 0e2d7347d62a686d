// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hdist

import (
	"errors"
	"fmt"
)

// Status is a result code returned to the host engine. Values match
// SQLite's primary result codes.
type Status int32

const (
	StatusOK       Status = 0
	StatusError    Status = 1
	StatusInternal Status = 2
	StatusPerm     Status = 3
	StatusAbort    Status = 4
	StatusBusy     Status = 5
	StatusLocked   Status = 6
	StatusNoMem    Status = 7
	StatusReadOnly Status = 8
	StatusMisuse   Status = 21
)

var statusNames = map[Status]string{
	StatusOK:       "SQLITE_OK",
	StatusError:    "SQLITE_ERROR",
	StatusInternal: "SQLITE_INTERNAL",
	StatusPerm:     "SQLITE_PERM",
	StatusAbort:    "SQLITE_ABORT",
	StatusBusy:     "SQLITE_BUSY",
	StatusLocked:   "SQLITE_LOCKED",
	StatusNoMem:    "SQLITE_NOMEM",
	StatusReadOnly: "SQLITE_READONLY",
	StatusMisuse:   "SQLITE_MISUSE",
}

func (s Status) String() string {
	// Extended result codes keep the primary code in the low byte.
	if name, ok := statusNames[s]; ok {
		return name
	}
	if name, ok := statusNames[s&0xff]; ok {
		return fmt.Sprintf("%s(%d)", name, int32(s))
	}
	return fmt.Sprintf("Status(%d)", int32(s))
}

// Error is a registration failure with the status code to report to
// the host engine.
type Error struct {
	Status  Status
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v (%s)", e.Message, e.Err, e.Status)
	case e.Message != "":
		return fmt.Sprintf("%s (%s)", e.Message, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%v (%s)", e.Err, e.Status)
	default:
		return e.Status.String()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusOf returns the status code to report to the host for err: OK
// for nil, the carried status for an [*Error] or any error exposing a
// Status() Status method, and StatusError otherwise.
func StatusOf(err error) Status {
	if err == nil {
		return StatusOK
	}
	var registrationError *Error
	if errors.As(err, &registrationError) {
		return registrationError.Status
	}
	var carrier interface{ Status() Status }
	if errors.As(err, &carrier) {
		return carrier.Status()
	}
	return StatusError
}
