// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/popover/lib/popover"
)

// Theme defines the color palette for the popover screens. Chrome
// colors use lipgloss ANSI 256-color codes for broad terminal
// compatibility. The strip colors are hex because they are blended
// toward Background during fades; lipgloss degrades them to the
// terminal's color profile on output.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Focused form field.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Status bar log records.
	LogWarn  lipgloss.Color
	LogError lipgloss.Color

	// Background is what the strip fades into. It should match the
	// terminal background.
	Background string

	// Strip pill and item text.
	PillIdle    string
	PillPressed string
	PillText    string
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	LogWarn:  lipgloss.Color("220"), // yellow/amber
	LogError: lipgloss.Color("196"), // red

	Background: "#000000",

	PillIdle:    popover.PillIdleColor,
	PillPressed: popover.PillPressedColor,
	PillText:    "#1C1C1C",
}

// PillColor returns the pill background for the strip's highlight
// state.
func (theme Theme) PillColor(highlighted bool) string {
	if highlighted {
		return theme.PillPressed
	}
	return theme.PillIdle
}
