// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the popover demo configuration: the contents of
// the trigger-build screen (app slug, git object, workflow IDs,
// environment variables) and the picker widget's tuning.
//
// Configuration comes from a single file named by --config. There is
// no discovery and no environment override; with no file, [Default]
// applies. Files ending in .jsonc or .json are parsed as JSONC (JSON
// with comments and trailing commas); anything else as YAML.
//
// Environment variable values support ${VAR} and ${VAR:-default}
// expansion after loading, so a shared config can pick up
// machine-specific values.
//
// Key exports:
//
//   - [Config] -- screen and widget sections
//   - [Default] -- a runnable demo configuration
//   - [LoadFile] -- parse, expand, and return (validation is separate)
//   - [Config.Validate] -- field-named errors joined with errors.Join
package config
