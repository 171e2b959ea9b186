// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package gesturetrace records pointer gestures to a compact file and
// replays them deterministically, so an interaction captured in a live
// terminal session can be rerun under a fake clock in tests or from
// the command line.
//
// File layout:
//
//	"PTRC"            4-byte magic
//	tag               1 byte: 0 none, 1 lz4 (frame), 2 zstd
//	records...        CBOR sequence, compressed per tag
//
// Each record is a CBOR map {offset_ns, kind, x, y}: the nanoseconds
// since recording started, the pointer event kind name, and the
// position in window cells. Records are written with Core
// Deterministic Encoding, so the same gesture always produces the
// same bytes.
package gesturetrace
