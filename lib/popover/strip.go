// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package popover

import (
	"image"
	"math"
	"time"

	"github.com/bureau-foundation/popover/lib/pointer"
)

// Strip is the transient surface holding the action items: a rounded
// pill with the items laid out left to right. It is purely
// presentational. The Host decides when it is shown and which item is
// highlighted; the strip answers geometry queries in its own
// coordinates (top-left corner of the pill at the origin).
type Strip struct {
	views       []View
	frames      []image.Rectangle
	opacities   []float64
	size        image.Point
	highlighted bool
	visibility  Fade

	// selectItem is the host's selection entry point, used by the
	// fallback release path.
	selectItem func(index int)
}

// newStrip lays out views and starts fully transparent.
func newStrip(views []View, selectItem func(index int)) *Strip {
	strip := &Strip{
		views:      views,
		opacities:  make([]float64, len(views)),
		selectItem: selectItem,
	}
	strip.ResetOpacities()
	strip.Relayout()
	return strip
}

// Relayout recomputes item frames from the views' current sizes. Items
// sit InsetHorizontal from the pill's left edge, ItemSpacing apart, and
// centered vertically within a row as tall as the tallest item plus
// InsetVertical above and below.
func (strip *Strip) Relayout() {
	rowHeight := 0
	for _, view := range strip.views {
		if height := view.Size().Y; height > rowHeight {
			rowHeight = height
		}
	}

	strip.frames = make([]image.Rectangle, len(strip.views))
	x := InsetHorizontal
	for index, view := range strip.views {
		size := view.Size()
		y := InsetVertical + (rowHeight-size.Y)/2
		strip.frames[index] = image.Rectangle{
			Min: image.Pt(x, y),
			Max: image.Pt(x+size.X, y+size.Y),
		}
		x += size.X + ItemSpacing
	}
	if len(strip.views) > 0 {
		x -= ItemSpacing
	}
	strip.size = image.Pt(x+InsetHorizontal, rowHeight+2*InsetVertical)
}

// Size returns the pill's extent.
func (strip *Strip) Size() image.Point { return strip.size }

// Bounds returns the pill's rectangle in strip coordinates.
func (strip *Strip) Bounds() image.Rectangle {
	return image.Rectangle{Max: strip.size}
}

// Len returns the number of items.
func (strip *Strip) Len() int { return len(strip.views) }

// View returns the view of item index.
func (strip *Strip) View(index int) View { return strip.views[index] }

// ItemFrame returns the rectangle of item index in strip coordinates.
func (strip *Strip) ItemFrame(index int) image.Rectangle { return strip.frames[index] }

// Contains reports whether p lies anywhere on the pill.
func (strip *Strip) Contains(p image.Point) bool {
	return p.In(strip.Bounds())
}

// ItemAt returns the index of the item containing p, or -1 when p is
// on the pill background or off the strip.
func (strip *Strip) ItemAt(p image.Point) int {
	for index, frame := range strip.frames {
		if p.In(frame) {
			return index
		}
	}
	return -1
}

// Opacity returns the opacity of item index.
func (strip *Strip) Opacity(index int) float64 { return strip.opacities[index] }

// SetOpacity sets the opacity of item index, clamped to [0,1].
func (strip *Strip) SetOpacity(index int, opacity float64) {
	strip.opacities[index] = clampUnit(opacity)
}

// ResetOpacities returns every item to full opacity.
func (strip *Strip) ResetOpacities() {
	for index := range strip.opacities {
		strip.opacities[index] = 1.0
	}
}

// Highlighted reports whether the pill is in its pressed state.
func (strip *Strip) Highlighted() bool { return strip.highlighted }

// SetHighlighted switches the pill between idle and pressed.
func (strip *Strip) SetHighlighted(highlighted bool) { strip.highlighted = highlighted }

// PillColor returns the pill's current background color as a hex
// string.
func (strip *Strip) PillColor() string {
	if strip.highlighted {
		return PillPressedColor
	}
	return PillIdleColor
}

// Visibility returns the strip's opacity at now.
func (strip *Strip) Visibility(now time.Time) float64 {
	return strip.visibility.Value(now)
}

// HandlePointer is the fallback dispatch path for front ends that
// deliver a release straight to the strip instead of to the host. The
// release position is in strip coordinates. The host deduplicates, so
// a release seen by both still selects at most once.
func (strip *Strip) HandlePointer(event pointer.Event) {
	if event.Kind != pointer.Release || strip.selectItem == nil {
		return
	}
	if index := strip.ItemAt(event.Position); index >= 0 {
		strip.selectItem(index)
	}
}

// clampUnit limits value to [0,1], mapping NaN to 0.
func clampUnit(value float64) float64 {
	switch {
	case math.IsNaN(value), value < 0:
		return 0
	case value > 1:
		return 1
	default:
		return value
	}
}
