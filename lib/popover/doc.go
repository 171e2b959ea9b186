// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package popover implements a press-to-reveal action strip: a Host
// control that, when tapped or long-pressed, shows a horizontal Strip
// of action items below itself and lets the user pick one by tapping
// or by dragging onto it and releasing.
//
// The Host is a pointer state machine with four states:
//
//	Idle ──press──▶ Pressing ──300ms──▶ OpenDragging
//	  ▲                │                     │
//	  └──release/cancel┘◀──────release───────┘
//	                   │
//	                   └──short tap on host──▶ Open
//
// A press held for LongPressThreshold opens the strip and turns the
// gesture into a drag selection. Releases shorter than
// DragSelectThreshold on the host toggle the strip; longer ones close
// it unless they end on an item. Each gesture selects at most one item.
//
// The package is renderer-agnostic. Geometry is expressed in integer
// layout units (terminal cells for lib/tui), the Host's coordinates
// have its top-left corner at the origin, and the Strip's opacity is a
// Fade evaluated lazily against the Host's clock. Because the strip
// lies outside the Host's rectangle, ancestors must forward hit tests
// to the Host's node; see package hittest.
package popover
