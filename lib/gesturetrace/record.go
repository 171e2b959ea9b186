// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gesturetrace

import (
	"fmt"
	"image"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/bureau-foundation/popover/lib/pointer"
)

// Record is one pointer event in a trace.
type Record struct {
	// Offset is the time since recording started.
	Offset time.Duration `cbor:"offset_ns"`

	// Kind is the pointer.Kind name ("press", "move", ...).
	Kind string `cbor:"kind"`

	X int `cbor:"x"`
	Y int `cbor:"y"`
}

// NewRecord builds the record for event observed offset after the
// start of recording.
func NewRecord(offset time.Duration, event pointer.Event) Record {
	return Record{
		Offset: offset,
		Kind:   event.Kind.String(),
		X:      event.Position.X,
		Y:      event.Position.Y,
	}
}

// Event converts the record back into a pointer event.
func (record Record) Event() (pointer.Event, error) {
	kind, err := pointer.ParseKind(record.Kind)
	if err != nil {
		return pointer.Event{}, err
	}
	return pointer.Event{Kind: kind, Position: image.Pt(record.X, record.Y)}, nil
}

// encMode writes Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items.
var encMode cbor.EncMode

// decMode rejects duplicate map keys so a corrupt record cannot
// silently override a field. Unknown fields are ignored so newer
// traces with extra fields still replay.
var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("gesturetrace: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic("gesturetrace: CBOR decoder initialization failed: " + err.Error())
	}
}

func (record Record) String() string {
	return fmt.Sprintf("+%v %s@%d,%d", record.Offset, record.Kind, record.X, record.Y)
}
