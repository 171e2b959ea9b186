// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gesturetrace

import (
	"fmt"
	"io"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/bureau-foundation/popover/lib/clock"
	"github.com/bureau-foundation/popover/lib/pointer"
)

// Magic opens every trace file.
const Magic = "PTRC"

// Recorder appends pointer events to a trace. Offsets are measured on
// the recorder's clock from the moment the recorder was created.
//
// A Recorder is not safe for concurrent use; record from the UI event
// loop, where pointer events originate.
type Recorder struct {
	clock      clock.Clock
	start      time.Time
	compressor io.WriteCloser
	encoder    *cbor.Encoder
	count      int
}

// NewRecorder writes the trace header to w and returns a recorder
// appending to it. Close the recorder to flush compression; w itself
// is not closed.
func NewRecorder(w io.Writer, compression Compression, clk clock.Clock) (*Recorder, error) {
	header := append([]byte(Magic), byte(compression))
	if _, err := w.Write(header); err != nil {
		return nil, fmt.Errorf("writing trace header: %w", err)
	}
	compressed, err := compressor(w, compression)
	if err != nil {
		return nil, err
	}
	return &Recorder{
		clock:      clk,
		start:      clk.Now(),
		compressor: compressed,
		encoder:    encMode.NewEncoder(compressed),
	}, nil
}

// Record appends event at the current clock offset.
func (recorder *Recorder) Record(event pointer.Event) error {
	record := NewRecord(recorder.clock.Now().Sub(recorder.start), event)
	if err := recorder.encoder.Encode(record); err != nil {
		return fmt.Errorf("encoding trace record %d: %w", recorder.count, err)
	}
	recorder.count++
	return nil
}

// Count returns the number of records written.
func (recorder *Recorder) Count() int { return recorder.count }

// Close flushes any buffered compressed data.
func (recorder *Recorder) Close() error {
	if err := recorder.compressor.Close(); err != nil {
		return fmt.Errorf("flushing trace: %w", err)
	}
	return nil
}
