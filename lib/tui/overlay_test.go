// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestSpliceOverlay(t *testing.T) {
	cases := []struct {
		name    string
		view    string
		overlay []string
		x, y    int
		want    string
	}{
		{"middle", "hello world\nsecond", []string{"XX"}, 2, 0, "heXXo world\nsecond"},
		{"second row", "hello\nworld", []string{"Q"}, 0, 1, "hello\nQorld"},
		{"past line end pads", "ab", []string{"Z"}, 5, 0, "ab   Z"},
		{"clipped left", "hello", []string{"XYZ"}, -1, 0, "YZllo"},
		{"below view dropped", "hello", []string{"A", "B"}, 0, 0, "Aello"},
		{"above view clipped", "hello\nworld", []string{"A", "B"}, 0, -1, "Bello\nworld"},
		{"empty overlay", "hello", nil, 0, 0, "hello"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ansi.Strip(SpliceOverlay(c.view, c.overlay, c.x, c.y))
			if got != c.want {
				t.Errorf("got %q, want %q", got, c.want)
			}
		})
	}
}

func TestSpliceOverlay_PreservesStyledSuffix(testing *testing.T) {
	view := "\x1b[31mred text here\x1b[0m"
	result := SpliceOverlay(view, []string{"__"}, 4, 0)
	if got := ansi.Strip(result); got != "red __xt here" {
		testing.Errorf("stripped = %q", got)
	}
	if ansi.StringWidth(result) != ansi.StringWidth(view) {
		testing.Errorf("width changed: %d -> %d", ansi.StringWidth(view), ansi.StringWidth(result))
	}
}
