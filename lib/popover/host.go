// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package popover

import (
	"image"
	"log/slog"
	"math"
	"time"

	"github.com/bureau-foundation/popover/lib/clock"
	"github.com/bureau-foundation/popover/lib/hittest"
	"github.com/bureau-foundation/popover/lib/pointer"
)

// State is the host's interaction state.
type State int

const (
	// Idle: strip closed, no gesture in progress.
	Idle State = iota
	// Pressing: a gesture is in progress and the long-press timer has
	// not fired. The strip may already be open from an earlier tap.
	Pressing
	// Open: strip open from a tap, no gesture in progress.
	Open
	// OpenDragging: the long press fired; the strip is open and the
	// pointer's position drives item focus.
	OpenDragging
)

func (state State) String() string {
	switch state {
	case Idle:
		return "idle"
	case Pressing:
		return "pressing"
	case Open:
		return "open"
	case OpenDragging:
		return "open-dragging"
	default:
		return "unknown"
	}
}

// HostConfig holds the dependencies of a Host. Zero values select the
// production defaults.
type HostConfig struct {
	// Name labels the host's element-tree node and its log records.
	// Default: "popover".
	Name string

	// Clock drives the long-press timer and fades. Default: real time.
	Clock clock.Clock

	// Logger receives transition records at debug level and misuse
	// warnings. Default: discard.
	Logger *slog.Logger

	// Post runs a function on the UI event loop. Timer callbacks are
	// routed through it so every state change happens on the loop.
	// Default: run inline, which is correct when the clock's callbacks
	// already run on the loop (FakeClock.Advance in tests).
	Post func(func())
}

// Host is the embeddable control whose press reveals the action
// strip. It owns the action list, consumes pointer events in its own
// coordinates, runs the open/close state machine, and claims the
// strip's rectangle as part of its hit region.
//
// All methods must be called from the UI event loop.
type Host struct {
	clock  clock.Clock
	logger *slog.Logger
	post   func(func())
	node   *hittest.Node

	actions        []Action
	onFocusChanged func()
	touchedAlpha   float64

	strip  *Strip
	isOpen bool
	state  State
	closed bool

	// pressStartedAt is zero when no gesture is in progress.
	pressStartedAt time.Time

	// pending is the long-press timer. pendingGeneration identifies
	// the live registration; a callback carrying any other generation
	// arrived after a cancel and is dropped.
	pending           *clock.Timer
	pendingGeneration uint64

	// gesture counts presses. tappedGesture records the last gesture
	// that selected an item, so a release seen on two dispatch paths
	// selects once.
	gesture       uint64
	tappedGesture uint64

	// focused is the item under a tracking pointer, or -1.
	focused int
}

// NewHost creates a host with no actions. Position it by setting the
// Frame of Node() inside an element tree.
func NewHost(config HostConfig) *Host {
	if config.Name == "" {
		config.Name = "popover"
	}
	if config.Clock == nil {
		config.Clock = clock.Real()
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	if config.Post == nil {
		config.Post = func(f func()) { f() }
	}

	host := &Host{
		clock:        config.Clock,
		logger:       config.Logger.With("widget", config.Name),
		post:         config.Post,
		touchedAlpha: DefaultTouchedAlpha,
		focused:      -1,
	}
	host.node = hittest.NewNode(config.Name, image.Rectangle{})
	host.node.Content = host
	return host
}

// Node returns the host's element-tree node. Its Content is the host,
// so hit tests and dispatched gestures reach the host through it.
func (host *Host) Node() *hittest.Node { return host.node }

// AddAction appends an action. Actions must be registered before the
// strip is first shown; later registrations are ignored.
func (host *Host) AddAction(view View, onTap func()) {
	if host.strip != nil {
		host.logger.Warn("action registered after the strip was built, ignoring",
			"registered_actions", len(host.actions),
		)
		return
	}
	host.actions = append(host.actions, Action{View: view, OnTap: onTap})
}

// Actions returns the registered actions in registration order.
func (host *Host) Actions() []Action { return host.actions }

// OnFocusChanged registers the callback run when dragging moves focus
// to a different item. It replaces any earlier registration.
func (host *Host) OnFocusChanged(callback func()) {
	host.onFocusChanged = callback
}

// TouchedAlpha returns the opacity applied to the focused item.
func (host *Host) TouchedAlpha() float64 { return host.touchedAlpha }

// SetTouchedAlpha sets the opacity applied to the focused item,
// clamped to [0,1]. NaN leaves the current value in place. A currently
// focused item picks up the new value immediately.
func (host *Host) SetTouchedAlpha(alpha float64) {
	if math.IsNaN(alpha) {
		host.logger.Warn("ignoring NaN touched alpha", "current", host.touchedAlpha)
		return
	}
	alpha = clampUnit(alpha)
	if alpha == host.touchedAlpha {
		return
	}
	host.touchedAlpha = alpha
	if host.strip != nil && host.focused >= 0 {
		host.strip.SetOpacity(host.focused, alpha)
	}
}

// State returns the current interaction state.
func (host *Host) State() State { return host.state }

// IsOpen reports whether the strip is logically open. During the fade
// this may disagree with Visibility; input is routed by IsOpen.
func (host *Host) IsOpen() bool { return host.isOpen }

// Strip returns the strip, or nil before the first open.
func (host *Host) Strip() *Strip { return host.strip }

// Focused returns the index of the item under a tracking pointer, or -1.
func (host *Host) Focused() int { return host.focused }

// Bounds returns the host's own rectangle in host coordinates.
func (host *Host) Bounds() image.Rectangle { return host.node.Bounds() }

// StripOrigin returns the strip's top-left corner in host coordinates:
// StripLeadingInset right of the host's leading edge and StripGap below
// its bottom edge.
func (host *Host) StripOrigin() image.Point {
	return image.Pt(StripLeadingInset, host.node.Frame.Dy()+StripGap)
}

// StripFrame returns the strip's rectangle in host coordinates, or an
// empty rectangle before the strip exists.
func (host *Host) StripFrame() image.Rectangle {
	if host.strip == nil {
		return image.Rectangle{}
	}
	return host.strip.Bounds().Add(host.StripOrigin())
}

// Visibility returns the strip's current opacity (0 before it exists).
func (host *Host) Visibility() float64 {
	if host.strip == nil {
		return 0
	}
	return host.strip.Visibility(host.clock.Now())
}

// Animating reports whether the strip is mid-fade. Renderers keep
// scheduling frames while this is true.
func (host *Host) Animating() bool {
	return host.strip != nil && host.strip.visibility.Animating(host.clock.Now())
}

// HitTest reports whether p (host coordinates) hits the host: anywhere
// in its own rectangle, or anywhere on the strip while it is open.
func (host *Host) HitTest(p image.Point) bool {
	if p.In(host.Bounds()) {
		return true
	}
	return host.isOpen && host.strip != nil && p.In(host.StripFrame())
}

// HandlePointer consumes one event of a gesture. Positions are in host
// coordinates.
func (host *Host) HandlePointer(event pointer.Event) {
	if host.closed {
		return
	}
	switch event.Kind {
	case pointer.Press:
		host.press(event.Position)
	case pointer.Move:
		host.move(event.Position)
	case pointer.Release:
		host.release(event.Position)
	case pointer.Cancel:
		host.cancel()
	}
}

// Close tears the host down: the long-press timer is cancelled, any
// fade stops, and the strip disappears without animating. The host
// ignores input afterwards.
func (host *Host) Close() {
	host.cancelPending()
	host.closed = true
	host.isOpen = false
	host.pressStartedAt = time.Time{}
	host.focused = -1
	host.state = Idle
	if host.strip != nil {
		host.strip.visibility.Snap(0)
		host.strip.ResetOpacities()
		host.strip.SetHighlighted(false)
	}
}

func (host *Host) press(p image.Point) {
	if len(host.actions) == 0 {
		return
	}
	host.cancelPending()
	host.pressStartedAt = host.clock.Now()
	host.gesture++
	host.focused = -1
	host.state = Pressing
	host.schedulePending()

	if host.isOpen && host.strip.Contains(p.Sub(host.StripOrigin())) {
		host.strip.SetHighlighted(true)
	}
	host.logger.Debug("press", "x", p.X, "y", p.Y, "open", host.isOpen)
}

func (host *Host) move(p image.Point) {
	if host.pressStartedAt.IsZero() || !host.isOpen {
		return
	}
	host.track(p)
}

// track updates item focus for a pointer at p (host coordinates).
func (host *Host) track(p image.Point) {
	local := p.Sub(host.StripOrigin())
	index := host.strip.ItemAt(local)
	if index < 0 {
		host.strip.ResetOpacities()
		host.strip.SetHighlighted(host.strip.Contains(local))
		host.focused = -1
		return
	}

	host.strip.SetHighlighted(true)
	for item := range host.strip.opacities {
		if item == index {
			host.strip.SetOpacity(item, host.touchedAlpha)
		} else {
			host.strip.SetOpacity(item, 1.0)
		}
	}

	if index == host.focused {
		return
	}
	host.focused = index
	if host.clock.Now().Sub(host.pressStartedAt) >= FocusSuppressionWindow && host.onFocusChanged != nil {
		host.onFocusChanged()
	}
}

func (host *Host) release(p image.Point) {
	if host.pressStartedAt.IsZero() {
		return
	}
	host.cancelPending()
	elapsed := host.clock.Now().Sub(host.pressStartedAt)

	index := -1
	if host.isOpen {
		index = host.strip.ItemAt(p.Sub(host.StripOrigin()))
	}

	switch {
	case index >= 0:
		host.selectItem(index)
	case elapsed < DragSelectThreshold && host.HitTest(p):
		if host.isOpen {
			host.hide()
		} else {
			host.show()
		}
	default:
		host.hide()
	}

	host.logger.Debug("release",
		"x", p.X,
		"y", p.Y,
		"elapsed", elapsed,
		"item", index,
		"open", host.isOpen,
	)
	host.endGesture()
}

func (host *Host) cancel() {
	if host.pressStartedAt.IsZero() {
		return
	}
	host.cancelPending()
	host.hide()
	host.logger.Debug("gesture cancelled")
	host.endGesture()
}

// selectItem runs the action for item index at most once per gesture
// and closes the strip.
func (host *Host) selectItem(index int) {
	if !host.isOpen || host.gesture == 0 || host.tappedGesture == host.gesture {
		return
	}
	host.tappedGesture = host.gesture
	host.logger.Debug("action selected", "item", index)
	if onTap := host.actions[index].OnTap; onTap != nil {
		onTap()
	}
	host.hide()
}

func (host *Host) endGesture() {
	host.pressStartedAt = time.Time{}
	host.focused = -1
	if host.strip != nil {
		host.strip.ResetOpacities()
		host.strip.SetHighlighted(false)
	}
	if host.isOpen {
		host.state = Open
	} else {
		host.state = Idle
	}
}

func (host *Host) show() {
	if host.isOpen {
		return
	}
	if host.strip == nil {
		if host.node.Parent() == nil {
			host.logger.Warn("showing strip for a host with no parent; it may be mispositioned")
		}
		views := make([]View, len(host.actions))
		for index, action := range host.actions {
			views[index] = action.View
		}
		host.strip = newStrip(views, host.selectItem)
	}
	host.isOpen = true
	host.strip.visibility.Start(1, host.clock.Now(), FadeDuration)
	host.logger.Debug("strip opened")
}

func (host *Host) hide() {
	if !host.isOpen {
		return
	}
	host.isOpen = false
	host.strip.visibility.Start(0, host.clock.Now(), FadeDuration)
	host.logger.Debug("strip closed")
}

func (host *Host) schedulePending() {
	host.pendingGeneration++
	generation := host.pendingGeneration
	host.pending = host.clock.AfterFunc(LongPressThreshold, func() {
		host.post(func() { host.longPressElapsed(generation) })
	})
}

func (host *Host) cancelPending() {
	if host.pending == nil {
		return
	}
	host.pending.Stop()
	host.pending = nil
}

// longPressElapsed runs on the event loop when the long-press timer
// fires. Deliveries for a timer that has since been cancelled or
// replaced are dropped.
func (host *Host) longPressElapsed(generation uint64) {
	if host.closed || host.pending == nil || generation != host.pendingGeneration {
		return
	}
	host.pending = nil
	host.state = OpenDragging
	host.show()
	host.logger.Debug("long press")
}

// PendingOpen reports whether the long-press timer is live.
func (host *Host) PendingOpen() bool { return host.pending != nil }
