// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hittest

import (
	"log/slog"

	"github.com/bureau-foundation/popover/lib/pointer"
)

// Dispatcher routes pointer events from the window into an element
// tree. A press is hit-tested from the root; the nearest node at or
// above the hit whose Content implements pointer.Handler captures the
// gesture and receives every following event until the release or
// cancel, even when the pointer wanders outside its bounds.
//
// Positions passed to Dispatch are in window coordinates (the root's
// parent space). The captured handler receives them in its own node's
// coordinates.
type Dispatcher struct {
	root     *Node
	captured *Node
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher for the tree under root. A nil
// logger discards records.
func NewDispatcher(root *Node, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{root: root, logger: logger}
}

// Captured returns the node holding the current gesture, or nil.
func (dispatcher *Dispatcher) Captured() *Node { return dispatcher.captured }

// Dispatch delivers event and reports whether a handler received it.
func (dispatcher *Dispatcher) Dispatch(event pointer.Event) bool {
	if event.Kind == pointer.Press {
		// A press while a gesture is still captured means the release
		// was lost somewhere upstream.
		if dispatcher.captured != nil {
			dispatcher.deliver(pointer.Event{Kind: pointer.Cancel, Position: event.Position})
			dispatcher.captured = nil
		}
		local := event.Position.Sub(dispatcher.root.Frame.Min)
		hit := dispatcher.root.HitTest(local)
		dispatcher.captured = responder(hit)
		if dispatcher.captured == nil {
			dispatcher.logger.Debug("press missed every handler",
				"x", event.Position.X,
				"y", event.Position.Y,
			)
			return false
		}
		dispatcher.logger.Debug("pointer captured",
			"node", dispatcher.captured.Name,
			"x", event.Position.X,
			"y", event.Position.Y,
		)
	}

	if dispatcher.captured == nil {
		return false
	}
	dispatcher.deliver(event)
	if event.Kind == pointer.Release || event.Kind == pointer.Cancel {
		dispatcher.captured = nil
	}
	return true
}

// Reset cancels the captured gesture, if any. Used on teardown.
func (dispatcher *Dispatcher) Reset() {
	if dispatcher.captured == nil {
		return
	}
	dispatcher.deliver(pointer.Event{Kind: pointer.Cancel})
	dispatcher.captured = nil
}

func (dispatcher *Dispatcher) deliver(event pointer.Event) {
	handler := dispatcher.captured.Content.(pointer.Handler)
	handler.HandlePointer(event.Translate(dispatcher.captured.Origin()))
}

// responder walks from node toward the root and returns the first node
// whose Content can handle pointer events.
func responder(node *Node) *Node {
	for current := node; current != nil; current = current.parent {
		if _, ok := current.Content.(pointer.Handler); ok {
			return current
		}
	}
	return nil
}
