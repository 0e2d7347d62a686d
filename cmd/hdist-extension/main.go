// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

/*
#cgo CFLAGS: -O2
#include <stdlib.h>
#include "shim.h"
*/
import "C"

import (
	"fmt"
	"runtime/cgo"
	"unsafe"

	"github.com/bureau-foundation/hdist/lib/hdist"
)

// main is required by -buildmode=c-shared and never runs.
func main() {}

//export sqlite3_hdist_init
func sqlite3_hdist_init(db *C.sqlite3, pzErrMsg **C.char, pApi *C.sqlite3_api_routines) C.int {
	if rc := C.hdist_api_init(db, pzErrMsg, pApi); rc != C.SQLITE_OK {
		return rc
	}

	err := load(db)
	if err != nil {
		message := C.CString(err.Error())
		C.hdist_set_error(pzErrMsg, message)
		C.free(unsafe.Pointer(message))
	}
	return C.int(hdist.StatusOf(err))
}

// load binds db and registers hdist32 on it. The Extension lives only
// for this load; SQLite owns the registered function from here on.
func load(db *C.sqlite3) error {
	catalog, err := bind(db)
	if err != nil {
		return err
	}
	var extension hdist.Extension
	return extension.Register(catalog)
}

// connection is a sqlite3 handle seen through the C API routine table.
type connection struct {
	db *C.sqlite3
}

func bind(db *C.sqlite3) (*connection, error) {
	if db == nil {
		return nil, &hdist.Error{
			Status:  hdist.StatusMisuse,
			Message: "hdist-extension: nil database handle",
		}
	}
	return &connection{db: db}, nil
}

func (c *connection) HasFunction(name string, nargs int) bool {
	lookup := C.CString(hdist.LookupQuery(name, nargs))
	defer C.free(unsafe.Pointer(lookup))
	return C.hdist_has_function(c.db, lookup) != 0
}

func (c *connection) CreateFunction(def hdist.Definition) error {
	if def.Scalar == nil {
		return &hdist.Error{
			Status:  hdist.StatusMisuse,
			Message: fmt.Sprintf("hdist-extension: %s has no scalar body", def.Name),
		}
	}

	name := C.CString(def.Name)
	defer C.free(unsafe.Pointer(name))

	// Released by hdistRelease when SQLite drops the function, or
	// immediately if creation fails.
	handle := cgo.NewHandle(def)
	rc := C.hdist_create_function(c.db, name, C.int(def.NArgs), C.int(def.Flags), C.uintptr_t(handle))
	if rc != C.SQLITE_OK {
		return &hdist.Error{
			Status:  hdist.Status(rc),
			Message: fmt.Sprintf("hdist-extension: creating %s/%d: %s", def.Name, def.NArgs, C.GoString(C.hdist_errmsg(c.db))),
		}
	}
	return nil
}

// valueCall adapts one sqlite3 scalar invocation to hdist.Call.
type valueCall struct {
	ctx  *C.sqlite3_context
	argc int
	argv **C.sqlite3_value
}

func (c *valueCall) ArgInt(i int) int32 {
	if i < 0 || i >= c.argc {
		return 0
	}
	return int32(C.hdist_value_int(c.argv, C.int(i)))
}

func (c *valueCall) ResultInt(v int64) {
	C.hdist_result_int64(c.ctx, C.sqlite3_int64(v))
}

//export hdistDispatch
func hdistDispatch(ctx *C.sqlite3_context, handle C.uintptr_t, argc C.int, argv **C.sqlite3_value) {
	def := cgo.Handle(handle).Value().(hdist.Definition)
	def.Scalar(&valueCall{ctx: ctx, argc: int(argc), argv: argv})
}

//export hdistRelease
func hdistRelease(handle C.uintptr_t) {
	cgo.Handle(handle).Delete()
}
