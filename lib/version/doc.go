// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports build version information for the demo
// binary's --version flag.
//
// Four package-level variables can be injected at build time via
// -ldflags -X: [GitCommit], [GitDirty], [BuildTime] and [Version]. For
// example:
//
//	go build -ldflags "-X github.com/bureau-foundation/popover/lib/version.GitCommit=$(git rev-parse --short HEAD)" ./cmd/popover-demo
//
// Without ldflags, [Resolve] falls back to the VCS stamp the Go
// toolchain embeds in module builds, so "go install" binaries still
// report their commit.
package version
