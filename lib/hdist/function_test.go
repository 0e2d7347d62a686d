// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hdist

import "testing"

func TestLookupQuery(t *testing.T) {
	tests := []struct {
		name  string
		nargs int
		want  string
	}{
		{"hdist32", 2, `SELECT "hdist32"(NULL, NULL)`},
		{"random", 0, `SELECT "random"()`},
		{`odd"name`, 1, `SELECT "odd""name"(NULL)`},
	}

	for _, test := range tests {
		if got := LookupQuery(test.name, test.nargs); got != test.want {
			t.Errorf("LookupQuery(%q, %d) = %q, want %q", test.name, test.nargs, got, test.want)
		}
	}
}

func TestFunction(t *testing.T) {
	definition := Function()
	if definition.Name != "hdist32" || definition.NArgs != 2 {
		t.Errorf("Function() = %s/%d, want hdist32/2", definition.Name, definition.NArgs)
	}
	if definition.Flags != FlagUTF8|FlagDeterministic|FlagInnocuous {
		t.Errorf("Function().Flags = %s", definition.Flags)
	}
	if definition.Flags.Has(FlagDirectOnly) {
		t.Error("hdist32 must be callable from views and triggers")
	}
	if definition.Scalar == nil {
		t.Fatal("Function().Scalar is nil")
	}

	call := &recordingCall{args: []int32{5, 9}}
	definition.Scalar(call)
	if call.result != 2 {
		t.Errorf("Scalar(5, 9) = %d, want 2", call.result)
	}
}
