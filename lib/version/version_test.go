// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"bytes"
	"runtime"
	"strings"
	"testing"
)

func TestBuildString(t *testing.T) {
	tests := []struct {
		name  string
		build Build
		want  string
	}{
		{
			name:  "clean",
			build: Build{Version: "1.2.3", Commit: "abc1234", Time: "2026-02-10T00:00:00Z"},
			want:  "1.2.3 (abc1234, 2026-02-10T00:00:00Z)",
		},
		{
			name:  "dirty",
			build: Build{Version: "1.2.3", Commit: "abc1234", Dirty: true, Time: "2026-02-10T00:00:00Z"},
			want:  "1.2.3 (abc1234-dirty, 2026-02-10T00:00:00Z)",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.build.String(); got != test.want {
				t.Errorf("String() = %q, want %q", got, test.want)
			}
		})
	}
}

func TestCurrent(t *testing.T) {
	savedCommit, savedDirty := GitCommit, GitDirty
	t.Cleanup(func() { GitCommit, GitDirty = savedCommit, savedDirty })

	GitCommit = "abc1234"
	GitDirty = "true"

	build := Current()
	if build.Commit != "abc1234" || !build.Dirty {
		t.Errorf("Current() = %+v, want commit abc1234, dirty", build)
	}
	if build.Platform != runtime.GOOS+"/"+runtime.GOARCH {
		t.Errorf("Platform = %q", build.Platform)
	}
}

func TestPrint(t *testing.T) {
	var buffer bytes.Buffer
	Print(&buffer, "hdist", false)
	if got, want := buffer.String(), "hdist "+Current().String()+"\n"; got != want {
		t.Errorf("Print = %q, want %q", got, want)
	}

	buffer.Reset()
	Print(&buffer, "hdist", true)
	output := buffer.String()
	if !strings.HasPrefix(output, "hdist "+Current().String()+"\n") {
		t.Errorf("verbose Print does not start with the build line: %q", output)
	}
	if !strings.Contains(output, "Go: "+runtime.Version()) {
		t.Errorf("verbose Print missing Go version: %q", output)
	}
}
