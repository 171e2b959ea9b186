// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli holds the ambient pieces shared by the popover command
// line tools: categorized errors with operator hints, exit-code
// signalling, and slog handler construction (terminal-aware stderr
// logging, JSON file logs, and fan-out to several handlers).
package cli
