// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"image"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/popover/lib/pointer"
)

// PointerEvent translates a bubbletea mouse message into a pointer
// event in screen cells. Only the left button drives gestures: a left
// press starts one, motion with the left button held moves it, and any
// release ends it. Hover motion, wheel and other buttons report false.
//
// The program must enable motion reporting (tea.WithMouseCellMotion or
// tea.WithMouseAllMotion) for drags to arrive.
func PointerEvent(message tea.MouseMsg) (pointer.Event, bool) {
	position := image.Pt(message.X, message.Y)
	switch message.Action {
	case tea.MouseActionPress:
		if message.Button != tea.MouseButtonLeft {
			return pointer.Event{}, false
		}
		return pointer.Event{Kind: pointer.Press, Position: position}, true
	case tea.MouseActionMotion:
		if message.Button != tea.MouseButtonLeft {
			return pointer.Event{}, false
		}
		return pointer.Event{Kind: pointer.Move, Position: position}, true
	case tea.MouseActionRelease:
		return pointer.Event{Kind: pointer.Release, Position: position}, true
	}
	return pointer.Event{}, false
}
