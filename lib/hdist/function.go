// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hdist

import "strings"

// Flags are the properties declared for a function at registration.
// The bit values match SQLite's eTextRep flags so that adapters for
// the C API can pass them through unchanged.
type Flags uint32

const (
	// FlagUTF8 declares that text arguments are handled as UTF-8.
	FlagUTF8 Flags = 0x000001

	// FlagDeterministic declares that identical arguments always
	// produce identical results, so the engine may fold or cache calls.
	FlagDeterministic Flags = 0x000800

	// FlagDirectOnly restricts the function to top-level SQL: it may
	// not be used from views, triggers, or schema structures.
	FlagDirectOnly Flags = 0x080000

	// FlagInnocuous declares the function free of side effects and
	// safe to run from reduced-trust contexts such as views and
	// triggers.
	FlagInnocuous Flags = 0x200000
)

// Has reports whether all bits of flag are set.
func (f Flags) Has(flag Flags) bool {
	return f&flag == flag
}

func (f Flags) String() string {
	if f == 0 {
		return "0"
	}
	var names []string
	if f.Has(FlagUTF8) {
		names = append(names, "UTF8")
	}
	if f.Has(FlagDeterministic) {
		names = append(names, "DETERMINISTIC")
	}
	if f.Has(FlagDirectOnly) {
		names = append(names, "DIRECTONLY")
	}
	if f.Has(FlagInnocuous) {
		names = append(names, "INNOCUOUS")
	}
	return strings.Join(names, "|")
}

// Call is a single invocation of a registered scalar function. It is
// only valid for the duration of the Scalar callback that received it.
type Call interface {
	// ArgInt returns argument i coerced to a 32-bit integer by the
	// engine's own rules.
	ArgInt(i int) int32

	// ResultInt reports v as the invocation's return value.
	ResultInt(v int64)
}

// Catalog is the engine's function catalog for one session.
type Catalog interface {
	// HasFunction reports whether a function with the given name and
	// arity is already callable in the session.
	HasFunction(name string, nargs int) bool

	// CreateFunction installs def. Errors should carry the engine's
	// status code (see [Error]) so it can be returned to the engine
	// unchanged.
	CreateFunction(def Definition) error
}

// LookupQuery returns a SELECT that calls name with nargs NULL
// arguments. SQL engines resolve function names and arities at prepare
// time, so a Catalog can implement HasFunction by compiling the lookup
// without stepping it. The name is quoted as an identifier.
func LookupQuery(name string, nargs int) string {
	placeholders := make([]string, nargs)
	for i := range placeholders {
		placeholders[i] = "NULL"
	}
	return `SELECT "` + strings.ReplaceAll(name, `"`, `""`) + `"(` + strings.Join(placeholders, ", ") + ")"
}

// Definition describes a scalar function to install in a [Catalog].
type Definition struct {
	// Name is the SQL-visible name. Engines match it case-insensitively.
	Name string

	// NArgs is the exact number of positional arguments.
	NArgs int

	// Flags are the declared properties.
	Flags Flags

	// Scalar computes one result per call.
	Scalar func(Call)
}

const (
	// FunctionName is the name hdist32 is registered under.
	FunctionName = "hdist32"

	// FunctionArgs is the arity of hdist32.
	FunctionArgs = 2

	// FunctionFlags are the properties declared for hdist32.
	FunctionFlags = FlagUTF8 | FlagDeterministic | FlagInnocuous
)

// Function returns the Definition of hdist32.
func Function() Definition {
	return Definition{
		Name:   FunctionName,
		NArgs:  FunctionArgs,
		Flags:  FunctionFlags,
		Scalar: Scalar,
	}
}
