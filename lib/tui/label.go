// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"image"

	"github.com/charmbracelet/x/ansi"
)

// Label is a one-line text item view. Its width is the display width
// of Text, so wide runes take two cells.
type Label struct {
	Text string
}

// Size implements popover.View.
func (label Label) Size() image.Point {
	return image.Pt(ansi.StringWidth(label.Text), 1)
}
