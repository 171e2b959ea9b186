// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pointer

import (
	"fmt"
	"image"
)

// Kind of pointer event.
type Kind uint8

const (
	// Press is the start of a gesture: a finger touching down or the
	// primary mouse button going down.
	Press Kind = iota
	// Move is a change of position while the gesture is in progress.
	Move
	// Release ends a gesture normally.
	Release
	// Cancel ends a gesture abnormally: the platform took the pointer
	// away (focus loss, system gesture, window teardown). Handlers
	// treat it like a release that selects nothing.
	Cancel
)

func (kind Kind) String() string {
	switch kind {
	case Press:
		return "press"
	case Move:
		return "move"
	case Release:
		return "release"
	case Cancel:
		return "cancel"
	default:
		return fmt.Sprintf("unknown(%d)", kind)
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "press":
		return Press, nil
	case "move":
		return Move, nil
	case "release":
		return Release, nil
	case "cancel":
		return Cancel, nil
	default:
		return 0, fmt.Errorf("unknown pointer event kind %q", name)
	}
}

// Event is a single pointer event. Position is in the coordinate space
// of whoever receives the event: dispatchers translate it as the event
// travels down an element tree.
type Event struct {
	Kind     Kind
	Position image.Point
}

// Translate returns a copy of the event with Position moved by -origin,
// converting from a parent space into a child whose top-left corner
// sits at origin.
func (event Event) Translate(origin image.Point) Event {
	event.Position = event.Position.Sub(origin)
	return event
}

func (event Event) String() string {
	return fmt.Sprintf("%s@%d,%d", event.Kind, event.Position.X, event.Position.Y)
}

// Handler receives the events of a gesture. Implementations are called
// on the UI event loop only and must not block.
type Handler interface {
	HandlePointer(event Event)
}

// HandlerFunc adapts an ordinary function to Handler.
type HandlerFunc func(event Event)

// HandlePointer calls f(event).
func (f HandlerFunc) HandlePointer(event Event) { f(event) }
