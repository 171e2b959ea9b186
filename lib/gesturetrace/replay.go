// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gesturetrace

import (
	"fmt"
	"time"

	"github.com/bureau-foundation/popover/lib/pointer"
)

// Advancer is a clock that replay can move forward. *clock.FakeClock
// satisfies it.
type Advancer interface {
	Advance(d time.Duration)
}

// Dispatcher receives replayed events. *hittest.Dispatcher satisfies
// it, as does any screen that routes window-space pointer events.
type Dispatcher interface {
	Dispatch(event pointer.Event) bool
}

// Replay feeds records to dispatcher in order, advancing clock to each
// record's offset first so timers due in between fire at the right
// moments. The clock is assumed to read the recording's start time
// when Replay begins. Returns how many events a handler received.
//
// Records must be in non-decreasing offset order; an out-of-order
// record is an error and stops the replay.
func Replay(records []Record, clock Advancer, dispatcher Dispatcher) (int, error) {
	var elapsed time.Duration
	delivered := 0
	for index, record := range records {
		if record.Offset < elapsed {
			return delivered, fmt.Errorf("record %d: offset %v before previous offset %v", index, record.Offset, elapsed)
		}
		event, err := record.Event()
		if err != nil {
			return delivered, fmt.Errorf("record %d: %w", index, err)
		}
		clock.Advance(record.Offset - elapsed)
		elapsed = record.Offset
		if dispatcher.Dispatch(event) {
			delivered++
		}
	}
	return delivered, nil
}
