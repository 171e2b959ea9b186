// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock abstracts the time operations used by interactive widgets.
// Production code injects Real(); tests inject Fake() and advance time
// explicitly, so long-press thresholds and fades can be asserted to the
// millisecond without sleeping.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc waits for duration d, then calls f. Returns a Timer
	// that can cancel the pending call with Stop. If d <= 0, f is
	// called immediately in a new goroutine (real) or synchronously
	// (fake).
	AfterFunc(d time.Duration, f func()) *Timer
}

// Timer represents a scheduled callback.
type Timer struct {
	stopFunc func() bool
}

// Stop prevents the Timer from firing. Returns true if the call stops
// the timer, false if the timer has already fired or been stopped.
//
// A false return from a real timer does not mean the callback has
// finished: it may be running concurrently. Callers that marshal the
// callback onto an event loop must guard against a late delivery
// themselves.
func (t *Timer) Stop() bool { return t.stopFunc() }
