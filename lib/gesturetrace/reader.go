// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gesturetrace

import (
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// ErrNotATrace is returned when the input does not start with Magic.
var ErrNotATrace = errors.New("not a gesture trace")

// Reader reads records from a trace.
type Reader struct {
	compression  Compression
	decompressor io.ReadCloser
	decoder      *cbor.Decoder
	index        int
}

// NewReader reads and checks the trace header from r.
func NewReader(r io.Reader) (*Reader, error) {
	header := make([]byte, len(Magic)+1)
	if _, err := io.ReadFull(r, header); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: header truncated", ErrNotATrace)
		}
		return nil, fmt.Errorf("reading trace header: %w", err)
	}
	if string(header[:len(Magic)]) != Magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrNotATrace, header[:len(Magic)])
	}
	compression := Compression(header[len(Magic)])
	decompressed, err := decompressor(r, compression)
	if err != nil {
		return nil, err
	}
	return &Reader{
		compression:  compression,
		decompressor: decompressed,
		decoder:      decMode.NewDecoder(decompressed),
	}, nil
}

// Compression returns the trace's compression.
func (reader *Reader) Compression() Compression { return reader.compression }

// Next returns the next record, or io.EOF after the last one.
func (reader *Reader) Next() (Record, error) {
	var record Record
	if err := reader.decoder.Decode(&record); err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, io.EOF
		}
		return Record{}, fmt.Errorf("decoding trace record %d: %w", reader.index, err)
	}
	reader.index++
	return record, nil
}

// ReadAll returns every remaining record.
func (reader *Reader) ReadAll() ([]Record, error) {
	var records []Record
	for {
		record, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, record)
	}
}

// Close releases decompression resources. The underlying reader is
// not closed.
func (reader *Reader) Close() error {
	return reader.decompressor.Close()
}
