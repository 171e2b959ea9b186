// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package popover

import "time"

// Fade is a linear opacity transition evaluated lazily against the
// clock, so nothing has to tick for it to progress. Renderers ask for
// the value at frame time and keep scheduling frames while Animating
// reports true.
type Fade struct {
	from     float64
	to       float64
	start    time.Time
	duration time.Duration
}

// Value returns the opacity at now: from at the start, to once the
// duration has elapsed, linearly interpolated in between.
func (fade Fade) Value(now time.Time) float64 {
	if fade.duration <= 0 {
		return fade.to
	}
	elapsed := now.Sub(fade.start)
	if elapsed >= fade.duration {
		return fade.to
	}
	if elapsed <= 0 {
		return fade.from
	}
	progress := float64(elapsed) / float64(fade.duration)
	return fade.from + (fade.to-fade.from)*progress
}

// Target returns the opacity the fade settles on.
func (fade Fade) Target() float64 { return fade.to }

// Animating reports whether the value is still changing at now.
func (fade Fade) Animating(now time.Time) bool {
	return fade.duration > 0 && fade.from != fade.to && now.Before(fade.start.Add(fade.duration))
}

// Start begins a transition toward target from whatever the value is
// at now, so reversing mid-fade does not jump.
func (fade *Fade) Start(target float64, now time.Time, duration time.Duration) {
	fade.from = fade.Value(now)
	fade.to = target
	fade.start = now
	fade.duration = duration
}

// Snap stops any transition and pins the value.
func (fade *Fade) Snap(value float64) {
	fade.from = value
	fade.to = value
	fade.duration = 0
}
