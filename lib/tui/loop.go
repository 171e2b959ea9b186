// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// PostMsg carries a function onto the bubbletea event loop. Models
// call Run when they receive one.
type PostMsg struct {
	Run func()
}

// Loop marshals work from other goroutines (timer callbacks) onto a
// bubbletea program's event loop. Its Post method is the Post hook for
// popover.HostConfig.
//
// Create the Loop before the program, hand Post to the widgets, and
// call SetProgram once the tea.Program exists. Functions posted before
// SetProgram are dropped.
type Loop struct {
	program atomic.Pointer[tea.Program]
}

// SetProgram sets the program that receives posted functions. Safe to
// call from any goroutine.
func (loop *Loop) SetProgram(program *tea.Program) {
	loop.program.Store(program)
}

// Post sends run to the event loop as a PostMsg.
func (loop *Loop) Post(run func()) {
	program := loop.program.Load()
	if program == nil {
		return
	}
	program.Send(PostMsg{Run: run})
}
