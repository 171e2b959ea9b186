// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui renders popover hosts in a terminal with bubbletea and
// lipgloss, and bridges bubbletea's event loop to the
// renderer-agnostic widget core.
//
// One layout unit is one terminal cell. The pieces:
//
//   - Theme: the palette, including the strip's pill colors.
//   - Label: a text item view sized by display width.
//   - RenderStrip: draws a popover.Strip as styled lines, blending the
//     pill and item text toward the background by the strip's
//     visibility and each item's opacity.
//   - SpliceOverlay: places rendered lines over an existing view.
//   - PointerEvent: translates tea.MouseMsg into pointer events.
//   - Loop: posts functions onto the program's event loop, the Post
//     hook for popover.HostConfig.
//   - ScheduleFrame: drives re-rendering while a fade is in progress.
//   - LogHandler: routes slog records into the status bar.
package tui
