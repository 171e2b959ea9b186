// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package triggerui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the trigger-build screen. The
// pointer drives the git object picker; the keyboard drives the rest
// of the form and offers a tap on the picker for terminals without
// mouse reporting.
type KeyMap struct {
	Up   key.Binding
	Down key.Binding

	// Activate selects the workflow under the cursor, toggles the
	// environment variable under the cursor, or triggers the build
	// when the cursor is on the trigger button.
	Activate key.Binding

	// Picker taps the git object picker, opening or closing its strip.
	Picker key.Binding

	// List editing. Add and Delete act on the section under the
	// cursor: workflow IDs or environment variables.
	Add    key.Binding
	Delete key.Binding

	// Edit starts typing a new git object value.
	Edit key.Binding

	Trigger key.Binding

	// Entry editing (active while typing).
	Submit key.Binding
	Cancel key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Activate: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "select"),
	),
	Picker: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "git object"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "delete"),
		key.WithHelp("d", "delete"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit ref"),
	),
	Trigger: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "trigger"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "done"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (keys KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.Up, keys.Down, keys.Activate, keys.Picker, keys.Edit, keys.Add, keys.Delete, keys.Trigger, keys.Quit}
}

// FullHelp implements help.KeyMap.
func (keys KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.Up, keys.Down, keys.Activate},
		{keys.Picker, keys.Edit, keys.Trigger},
		{keys.Add, keys.Delete},
		{keys.Quit},
	}
}

// entryHelp is the help line shown while typing an entry.
type entryHelp struct{ keys KeyMap }

func (help entryHelp) ShortHelp() []key.Binding {
	return []key.Binding{help.keys.Submit, help.keys.Cancel}
}

func (help entryHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{help.ShortHelp()}
}
