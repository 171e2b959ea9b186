// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package popover

import "image"

// View is the visual content of one strip item. The core only lays
// views out; drawing them is the renderer's business.
type View interface {
	// Size is the item's extent in layout units.
	Size() image.Point
}

// Action pairs an item view with the callback run when the user
// selects it.
type Action struct {
	View  View
	OnTap func()
}
