// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hdist

import "fmt"

// State is the lifecycle state of an [Extension].
type State int

const (
	// StateUnloaded is the initial state, and the state after a failed
	// registration.
	StateUnloaded State = iota

	// StateRegistered means hdist32 has been installed in the catalog.
	StateRegistered
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateRegistered:
		return "registered"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Extension is one load of the hdist extension into one engine
// session. The zero value is ready to use. An Extension is owned by
// the entry point that loads it and is not safe for concurrent
// Register calls; engines serialize extension loading.
type Extension struct {
	state State
}

// State returns the current lifecycle state.
func (e *Extension) State() State {
	return e.state
}

// Register installs hdist32 into catalog. A nil catalog is a binding
// failure (StatusMisuse). An existing hdist32/2 in the catalog is a
// collision (StatusError) and is left untouched. Any error from
// CreateFunction is returned with its status intact. On failure the
// Extension stays in StateUnloaded.
func (e *Extension) Register(catalog Catalog) error {
	if catalog == nil {
		return &Error{
			Status:  StatusMisuse,
			Message: "hdist: no host function catalog bound",
		}
	}

	definition := Function()
	if e.state == StateRegistered || catalog.HasFunction(definition.Name, definition.NArgs) {
		return &Error{
			Status:  StatusError,
			Message: fmt.Sprintf("hdist: function %s/%d already registered", definition.Name, definition.NArgs),
		}
	}

	if err := catalog.CreateFunction(definition); err != nil {
		return &Error{
			Status:  StatusOf(err),
			Message: fmt.Sprintf("hdist: registering %s/%d", definition.Name, definition.NArgs),
			Err:     err,
		}
	}

	e.state = StateRegistered
	return nil
}
