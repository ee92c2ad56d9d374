// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package framer

import (
	"fmt"
	"io"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Chunk is one raw read recorded from a byte stream
type Chunk struct {
	Offset time.Duration `cbor:"0,keyasint"` // Since the start of the capture
	Data   []byte        `cbor:"1,keyasint"`
}

// CaptureWriter writes chunks as a CBOR sequence
type CaptureWriter struct {
	enc   *cbor.Encoder
	start time.Time
}

// NewCaptureWriter creates a capture writer. Offsets are measured from now.
func NewCaptureWriter(w io.Writer) *CaptureWriter {
	return &CaptureWriter{
		enc:   cbor.NewEncoder(w),
		start: time.Now(),
	}
}

// WriteChunk records data with its offset from the capture start
func (cw *CaptureWriter) WriteChunk(data []byte) error {
	chunk := Chunk{
		Offset: time.Since(cw.start),
		Data:   data,
	}
	if err := cw.enc.Encode(chunk); err != nil {
		return fmt.Errorf("failed to write capture chunk: %w", err)
	}
	return nil
}

// CaptureReader reads chunks written by CaptureWriter
type CaptureReader struct {
	dec *cbor.Decoder
}

// NewCaptureReader creates a capture reader
func NewCaptureReader(r io.Reader) *CaptureReader {
	return &CaptureReader{dec: cbor.NewDecoder(r)}
}

// Next returns the next chunk, or io.EOF at the end of the capture
func (cr *CaptureReader) Next() (Chunk, error) {
	var chunk Chunk
	if err := cr.dec.Decode(&chunk); err != nil {
		if err == io.EOF {
			return Chunk{}, io.EOF
		}
		return Chunk{}, fmt.Errorf("failed to read capture chunk: %w", err)
	}
	return chunk, nil
}

// RecordingReader records every successful read of the wrapped reader
type RecordingReader struct {
	r  io.Reader
	cw *CaptureWriter
}

// NewRecordingReader wraps r so that each read is written to cw
func NewRecordingReader(r io.Reader, cw *CaptureWriter) *RecordingReader {
	return &RecordingReader{r: r, cw: cw}
}

// Read reads from the wrapped reader and records the bytes read
func (rr *RecordingReader) Read(p []byte) (int, error) {
	n, err := rr.r.Read(p)
	if n > 0 {
		if werr := rr.cw.WriteChunk(p[:n]); werr != nil && err == nil {
			err = werr
		}
	}
	return n, err
}

// Close closes the wrapped reader when it supports closing
func (rr *RecordingReader) Close() error {
	if c, ok := rr.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Replay feeds each chunk of a capture through c, one Drain per chunk, and
// hands completed frames to fn. Returns the number of chunks replayed.
func Replay(cr *CaptureReader, c *Collector, fn func(Chunk, *Frame)) (int, error) {
	queue := &ByteQueue{}
	chunks := 0
	for {
		chunk, err := cr.Next()
		if err == io.EOF {
			return chunks, nil
		}
		if err != nil {
			return chunks, err
		}
		chunks++

		queue.Write(chunk.Data)
		c.Drain(queue, func(f *Frame) {
			fn(chunk, f)
		})
	}
}
