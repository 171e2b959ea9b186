// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package popover

import "time"

// Gesture timing.
const (
	// LongPressThreshold is how long a press must be held before the
	// strip opens on its own and the gesture becomes a drag selection.
	// A press held exactly this long opens the strip.
	LongPressThreshold = 300 * time.Millisecond

	// DragSelectThreshold splits release handling. Gestures shorter
	// than this are taps: releasing on the host toggles the strip.
	// Gestures at least this long are drags: releasing anywhere but
	// on an item closes the strip.
	DragSelectThreshold = 1000 * time.Millisecond

	// FocusSuppressionWindow is the quiet period after a press during
	// which focus changes are applied visually but not reported, so
	// the touch-down itself never reads as a deliberate move.
	FocusSuppressionWindow = 100 * time.Millisecond

	// FadeDuration is the length of the strip's cross-fade.
	FadeDuration = 100 * time.Millisecond
)

// DefaultTouchedAlpha is the opacity of the item under the pointer.
const DefaultTouchedAlpha = 0.5

// Strip geometry, in layout units (one terminal cell in the TUI).
const (
	// ItemSpacing separates adjacent items.
	ItemSpacing = 10

	// InsetVertical pads the items above and below inside the pill.
	InsetVertical = 4

	// InsetHorizontal pads the items left and right inside the pill.
	InsetHorizontal = 8

	// PillCornerRadius rounds the background pill.
	PillCornerRadius = 2

	// StripGap separates the host's bottom edge from the strip's top.
	StripGap = 8

	// StripLeadingInset moves the strip's leading edge inward from
	// the host's leading edge.
	StripLeadingInset = 4
)

// Pill colors. The pill is pressed while a pointer tracks inside it.
const (
	PillIdleColor    = "#999999"
	PillPressedColor = "#DDDDDD"
)
