// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package hittest implements hit testing over a retained element tree
// and the forwarding contract that lets a widget receive pointer events
// for geometry it draws outside its own rectangle.
//
// Standard hit testing never descends into a child for a point outside
// the parent's bounds, so a popover rendered below its host is
// unreachable: every ancestor reports a miss before the host is asked.
// Ancestors opt in to forwarding with one of two strategies:
//
//   - Explicit override: set Node.Override to ForwardTo(host). The
//     ancestor hit-tests normally and consults the host before
//     reporting a miss.
//   - Attribute: call ancestor.SetForwardingTarget(host) and, once per
//     process, Enable(). Node.HitTest is the tree's single entry point
//     and honors the attribute for every tagged node.
//
// The forwarding target's Content has the final word: it claims the
// point only if it lies in the target's extended region.
package hittest
