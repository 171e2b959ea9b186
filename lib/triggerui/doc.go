// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package triggerui implements the trigger-build screen, a bubbletea
// model that embeds a [popover.Host] as its git object picker. Pressing
// the picker opens a strip of git object kinds (branch, tag, commit);
// a tap toggles the strip, a long press opens it for drag selection.
// Below the picker the screen lists workflow IDs, build environment
// variables, and a trigger button.
//
// Pointer input flows through an element tree:
//
//	screen
//	├── form-body        (lists and trigger button)
//	└── git-object-form  (forwards to the picker)
//	    └── git-object   (popover.Host)
//
// The open strip hangs below the form's bounds and over the lists. The
// form carries the picker as its forwarding target, so presses on the
// strip reach the picker before the lists underneath.
//
// [Model.Dispatch] is the single entry point for pointer events, which
// lets a recorded [gesturetrace] session be replayed against a model
// running on a fake clock.
package triggerui
