// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameInterval is the re-render interval while a strip is fading.
// The fade lasts 100ms, so this gives five intermediate frames.
const FrameInterval = 20 * time.Millisecond

// FrameMsg is delivered by ScheduleFrame. A model re-renders on it and
// schedules another frame while anything is still animating.
type FrameMsg struct {
	Time time.Time
}

// Animator is anything whose rendering changes over time on its own.
// *popover.Host satisfies it.
type Animator interface {
	Animating() bool
}

// ScheduleFrame returns a command that delivers a FrameMsg after
// FrameInterval.
func ScheduleFrame() tea.Cmd {
	return tea.Tick(FrameInterval, func(now time.Time) tea.Msg {
		return FrameMsg{Time: now}
	})
}

// AnyAnimating reports whether any of animators is mid-animation.
func AnyAnimating(animators ...Animator) bool {
	for _, animator := range animators {
		if animator.Animating() {
			return true
		}
	}
	return false
}
