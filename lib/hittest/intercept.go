// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hittest

import (
	"sync"
	"sync/atomic"
)

var (
	enableOnce          sync.Once
	interceptionEnabled atomic.Bool
)

// Enable activates attribute-based forwarding for every Node in the
// process: from now on a node tagged with SetForwardingTarget consults
// its target after a miss. Enable is idempotent and safe to call from
// any goroutine. Programs call it once at startup; tests that exercise
// forwarding tags call it before the first gesture.
func Enable() {
	enableOnce.Do(func() {
		interceptionEnabled.Store(true)
	})
}

// Enabled reports whether Enable has been called.
func Enabled() bool {
	return interceptionEnabled.Load()
}
