// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package framer

import "time"

// Frame is a copy of one complete message taken from a Collector
type Frame struct {
	raw       []byte // Start delimiter through end delimiter, no sentinel
	timestamp time.Time
}

// NewFrame copies raw into a new frame stamped with the current time
func NewFrame(raw []byte) *Frame {
	data := make([]byte, len(raw))
	copy(data, raw)
	return &Frame{
		raw:       data,
		timestamp: time.Now(),
	}
}

// Raw returns the frame bytes including both delimiters
func (f *Frame) Raw() []byte {
	return f.raw
}

// Payload returns the bytes between the delimiters
func (f *Frame) Payload() []byte {
	if len(f.raw) < 2 {
		return nil
	}
	return f.raw[1 : len(f.raw)-1]
}

// Length returns the frame length including delimiters
func (f *Frame) Length() int {
	return len(f.raw)
}

// StartDelimiter returns the first byte of the frame
func (f *Frame) StartDelimiter() byte {
	if len(f.raw) == 0 {
		return 0
	}
	return f.raw[0]
}

// EndDelimiter returns the last byte of the frame
func (f *Frame) EndDelimiter() byte {
	if len(f.raw) == 0 {
		return 0
	}
	return f.raw[len(f.raw)-1]
}

// Timestamp returns when the frame was taken from the collector
func (f *Frame) Timestamp() time.Time {
	return f.timestamp
}

// String returns the payload as text
func (f *Frame) String() string {
	return string(f.Payload())
}
