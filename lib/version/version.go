// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"io"
	"runtime"
)

// Set with -ldflags -X at build time:
//
//	go build -ldflags "-X github.com/bureau-foundation/hdist/lib/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	GitCommit = "unknown"
	GitDirty  = "false"
	BuildTime = "unknown"
	Version   = "0.1.0-dev"
)

// Build describes the running binary.
type Build struct {
	Version  string
	Commit   string
	Dirty    bool
	Time     string
	Go       string
	Platform string
}

// Current returns the build information injected into this binary.
func Current() Build {
	return Build{
		Version:  Version,
		Commit:   GitCommit,
		Dirty:    GitDirty == "true",
		Time:     BuildTime,
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String formats b as "1.2.3 (abc1234-dirty, 2026-02-10T00:00:00Z)".
func (b Build) String() string {
	commit := b.Commit
	if b.Dirty {
		commit += "-dirty"
	}
	return fmt.Sprintf("%s (%s, %s)", b.Version, commit, b.Time)
}

// Details is String followed by the toolchain and platform lines.
func (b Build) Details() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s", b, b.Go, b.Platform)
}

// Print writes "<binary> <build>" to w, with details when verbose.
func Print(w io.Writer, binary string, verbose bool) {
	build := Current()
	if verbose {
		fmt.Fprintf(w, "%s %s\n", binary, build.Details())
		return
	}
	fmt.Fprintf(w, "%s %s\n", binary, build)
}
