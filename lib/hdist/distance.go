// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hdist

import "math/bits"

// MaxDistance is the largest value Distance can return.
const MaxDistance = 32

// Distance returns the number of bit positions at which a and b differ.
// The result is always in [0, MaxDistance].
func Distance(a, b uint32) uint32 {
	return uint32(bits.OnesCount32(a ^ b))
}

// Scalar is the body of hdist32. It reads both arguments through the
// engine's integer coercion, reinterprets them as unsigned 32-bit
// values, and reports their Distance.
func Scalar(call Call) {
	a := uint32(call.ArgInt(0))
	b := uint32(call.ArgInt(1))
	call.ResultInt(int64(Distance(a, b)))
}
