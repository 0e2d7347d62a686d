// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sqlitehost

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"unsafe"

	"modernc.org/libc"
	lib "modernc.org/sqlite/lib"
	"zombiezen.com/go/sqlite"

	"github.com/bureau-foundation/hdist/lib/hdist"
)

// zombiezen's FunctionImpl can set SQLITE_DETERMINISTIC and
// SQLITE_DIRECTONLY but never SQLITE_INNOCUOUS, so functions are
// created through the modernc C API directly. That needs the
// connection's TLS and sqlite3* handle, which *sqlite.Conn keeps as
// its first two fields.

// nativeConn mirrors the leading fields of zombiezen.com/go/sqlite.Conn.
type nativeConn struct {
	tls *libc.TLS
	db  uintptr
}

// checkConnLayout verifies that sqlite.Conn still starts with the
// fields nativeConn mirrors.
var checkConnLayout = sync.OnceValue(func() error {
	connType := reflect.TypeFor[sqlite.Conn]()
	mirrorType := reflect.TypeFor[nativeConn]()
	if connType.NumField() < mirrorType.NumField() {
		return fmt.Errorf("sqlitehost: sqlite.Conn has %d fields, want at least %d", connType.NumField(), mirrorType.NumField())
	}
	for i := range mirrorType.NumField() {
		got, want := connType.Field(i), mirrorType.Field(i)
		if got.Type != want.Type || got.Offset != want.Offset {
			return fmt.Errorf("sqlitehost: sqlite.Conn field %d is %s %s at offset %d, want %s at offset %d",
				i, got.Name, got.Type, got.Offset, want.Type, want.Offset)
		}
	}
	return nil
})

func native(conn *sqlite.Conn) *nativeConn {
	return (*nativeConn)(unsafe.Pointer(conn))
}

// scalars maps the user-data id passed to sqlite3_create_function_v2
// to the Definition it dispatches to. Ids are never reused, so a
// release that races a failed create is harmless.
var scalars struct {
	next        atomic.Uintptr
	definitions sync.Map // uintptr -> hdist.Definition
}

// createFunction calls sqlite3_create_function_v2 with def.Flags
// passed through unchanged. It returns the SQLite result code and, on
// failure, the connection's error message.
func (c *nativeConn) createFunction(def hdist.Definition) (hdist.Status, string) {
	name, err := libc.CString(def.Name)
	if err != nil {
		return hdist.StatusNoMem, err.Error()
	}
	defer libc.Xfree(c.tls, name)

	id := scalars.next.Add(1)
	scalars.definitions.Store(id, def)

	rc := lib.Xsqlite3_create_function_v2(
		c.tls,
		c.db,
		name,
		int32(def.NArgs),
		int32(def.Flags),
		id,
		cFuncPointer(scalarTrampoline),
		0,
		0,
		cFuncPointer(releaseTrampoline),
	)
	if rc != lib.SQLITE_OK {
		scalars.definitions.Delete(id)
		return hdist.Status(rc), libc.GoString(lib.Xsqlite3_errmsg(c.tls, c.db))
	}
	return hdist.StatusOK, ""
}

func scalarTrampoline(tls *libc.TLS, ctx uintptr, argc int32, argv uintptr) {
	value, ok := scalars.definitions.Load(lib.Xsqlite3_user_data(tls, ctx))
	if !ok {
		lib.Xsqlite3_result_null(tls, ctx)
		return
	}
	call := nativeCall{tls: tls, ctx: ctx, argc: int(argc), argv: argv}
	value.(hdist.Definition).Scalar(&call)
}

func releaseTrampoline(tls *libc.TLS, id uintptr) {
	scalars.definitions.Delete(id)
}

// nativeCall adapts one sqlite3 scalar invocation to hdist.Call.
type nativeCall struct {
	tls  *libc.TLS
	ctx  uintptr
	argc int
	argv uintptr
}

// ArgInt is sqlite3_value_int on argument i.
func (c *nativeCall) ArgInt(i int) int32 {
	if i < 0 || i >= c.argc {
		return 0
	}
	value := *(*uintptr)(unsafe.Pointer(c.argv + uintptr(i)*unsafe.Sizeof(uintptr(0))))
	return lib.Xsqlite3_value_int(c.tls, value)
}

func (c *nativeCall) ResultInt(v int64) {
	lib.Xsqlite3_result_int64(c.tls, c.ctx, v)
}

// cFuncPointer converts a Go function to the uintptr form modernc uses
// for C function pointers.
func cFuncPointer[T any](f T) uintptr {
	return *(*uintptr)(unsafe.Pointer(&struct{ f T }{f}))
}
