// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
)

// Set via -ldflags at build time. Builds without ldflags fall back to
// the VCS stamp the Go toolchain embeds (see [Resolve]).
var (
	GitCommit = "unknown"
	GitDirty  = "false"
	BuildTime = "unknown"

	// Version is set manually for releases.
	Version = "0.1.0-dev"
)

// Build is the resolved version information of the running binary.
type Build struct {
	Version   string
	Commit    string
	Dirty     bool
	BuildTime string
	GoVersion string
	Platform  string
}

// Resolve combines the ldflags variables with the toolchain's embedded
// build info. Values injected by ldflags win; "unknown" fields are
// filled from vcs.revision, vcs.modified and vcs.time when present.
func Resolve() Build {
	build := Build{
		Version:   Version,
		Commit:    GitCommit,
		Dirty:     GitDirty == "true",
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return build
	}
	return build.withSettings(info.Settings)
}

func (build Build) withSettings(settings []debug.BuildSetting) Build {
	if build.Commit != "unknown" {
		return build
	}
	for _, setting := range settings {
		switch setting.Key {
		case "vcs.revision":
			build.Commit = setting.Value
			if len(build.Commit) > 7 {
				build.Commit = build.Commit[:7]
			}
		case "vcs.modified":
			build.Dirty = setting.Value == "true"
		case "vcs.time":
			if build.BuildTime == "unknown" {
				build.BuildTime = setting.Value
			}
		}
	}
	return build
}

// String formats the build as "0.1.0-dev (abc1234-dirty, 2026-02-10T...)".
func (build Build) String() string {
	dirty := ""
	if build.Dirty {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", build.Version, build.Commit, dirty, build.BuildTime)
}

// Info returns a formatted version string suitable for --version output.
func Info() string {
	return Resolve().String()
}

// Full returns Info plus the Go version and platform.
func Full() string {
	build := Resolve()
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s", build, build.GoVersion, build.Platform)
}

// Print writes "<binary> <Full>" to stdout.
func Print(binary string) {
	Fprint(os.Stdout, binary)
}

// Fprint writes "<binary> <Full>" to w.
func Fprint(w io.Writer, binary string) {
	fmt.Fprintf(w, "%s %s\n", binary, Full())
}
