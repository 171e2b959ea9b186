// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time abstraction for testability.
//
// Widgets accept a Clock instead of calling time.Now or time.AfterFunc
// directly. In production, Real() provides the standard library
// behavior. In tests, Fake() provides a deterministic clock that
// advances only when Advance is called.
//
// # Wiring Pattern
//
//	host := popover.NewHost(popover.HostConfig{Clock: clock.Real()})
//
// In tests:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	host := popover.NewHost(popover.HostConfig{Clock: fake})
//	host.HandlePointer(pointer.Event{Kind: pointer.Press})
//	fake.Advance(300 * time.Millisecond) // long-press fires here
//
// # FakeClock Callbacks
//
// AfterFunc callbacks on a FakeClock run synchronously inside Advance,
// on the goroutine that called Advance, in deadline order. A test that
// drives a widget from one goroutine therefore observes exactly the
// single-threaded ordering the widget's event loop guarantees.
package clock
