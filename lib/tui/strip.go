// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/bureau-foundation/popover/lib/popover"
)

// RenderStrip draws strip as lines of styled text, one per row of the
// strip's layout. A terminal has no alpha channel, so opacity is
// rendered by blending: the pill blends from theme.Background toward
// its color by visibility, and each Label item's text blends from the
// pill color toward theme.PillText by the item's opacity. Corner cells
// outside the pill's rounded outline are left as plain spaces.
//
// Returns nil when visibility is zero. Item views other than Label
// render as bare pill.
func RenderStrip(strip *popover.Strip, visibility float64, theme Theme) []string {
	if strip == nil || visibility <= 0 {
		return nil
	}

	size := strip.Size()
	pillColor := theme.PillColor(strip.Highlighted())
	pillStyle := lipgloss.NewStyle().
		Background(lipgloss.Color(Blend(theme.Background, pillColor, visibility)))

	itemStyles := make([]lipgloss.Style, strip.Len())
	for index := range itemStyles {
		text := Blend(pillColor, theme.PillText, strip.Opacity(index))
		itemStyles[index] = pillStyle.
			Foreground(lipgloss.Color(Blend(theme.Background, text, visibility)))
	}

	// labelStarts maps each row to the labels beginning on it, keyed
	// by column.
	labelStarts := make([]map[int]int, size.Y)
	for index := range strip.Len() {
		if _, ok := labelText(strip.View(index)); !ok {
			continue
		}
		frame := strip.ItemFrame(index)
		if frame.Min.Y < 0 || frame.Min.Y >= size.Y {
			continue
		}
		if labelStarts[frame.Min.Y] == nil {
			labelStarts[frame.Min.Y] = make(map[int]int)
		}
		labelStarts[frame.Min.Y][frame.Min.X] = index
	}

	lines := make([]string, size.Y)
	for row := range size.Y {
		var line strings.Builder
		column := 0
		for column < size.X {
			if outsideRoundedCorner(column, row, size.X, size.Y, popover.PillCornerRadius) {
				line.WriteByte(' ')
				column++
				continue
			}
			if index, ok := labelStarts[row][column]; ok {
				text, _ := labelText(strip.View(index))
				line.WriteString(itemStyles[index].Render(text))
				column += strip.ItemFrame(index).Dx()
				continue
			}
			end := column + 1
			for end < size.X && !outsideRoundedCorner(end, row, size.X, size.Y, popover.PillCornerRadius) {
				if _, ok := labelStarts[row][end]; ok {
					break
				}
				end++
			}
			line.WriteString(pillStyle.Render(strings.Repeat(" ", end-column)))
			column = end
		}
		lines[row] = line.String()
	}
	return lines
}

// Blend returns the hex color amount of the way from from to to in
// RGB space. amount is clamped to [0,1]. If either color fails to
// parse, to is returned unchanged.
func Blend(from, to string, amount float64) string {
	start, err := colorful.Hex(from)
	if err != nil {
		return to
	}
	end, err := colorful.Hex(to)
	if err != nil {
		return to
	}
	switch {
	case amount <= 0:
		return start.Hex()
	case amount >= 1:
		return end.Hex()
	}
	return start.BlendRgb(end, amount).Hex()
}

func labelText(view popover.View) (string, bool) {
	switch label := view.(type) {
	case Label:
		return label.Text, true
	case *Label:
		return label.Text, true
	}
	return "", false
}

// outsideRoundedCorner reports whether cell (column, row) of a
// width×height rectangle lies outside a rounded outline of the given
// radius, measuring from cell centers.
func outsideRoundedCorner(column, row, width, height, radius int) bool {
	if radius <= 0 {
		return false
	}
	var dx, dy float64
	switch {
	case column < radius:
		dx = float64(radius-column) - 0.5
	case column >= width-radius:
		dx = float64(column-(width-radius)) + 0.5
	default:
		return false
	}
	switch {
	case row < radius:
		dy = float64(radius-row) - 0.5
	case row >= height-radius:
		dy = float64(row-(height-radius)) + 0.5
	default:
		return false
	}
	r := float64(radius)
	return dx*dx+dy*dy > r*r
}
