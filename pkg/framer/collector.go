// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package framer

import (
	"fmt"
	"time"
)

// ErrSameDelimiters is returned when the start and end delimiters are equal
var ErrSameDelimiters = fmt.Errorf("start and end delimiters must differ")

// ErrCapacityTooSmall is returned when the buffer cannot hold a minimal frame
var ErrCapacityTooSmall = fmt.Errorf("capacity must be at least %d", MinCapacity)

// Transport is the byte source drained by Collector.Poll
type Transport interface {
	// Available returns the number of bytes that can be read without blocking
	Available() int
	// Read returns the next byte
	Read() byte
}

// Collector reassembles one delimiter-framed message at a time.
//
// A Collector is not safe for concurrent use. It is owned by a single
// goroutine that calls Poll, HasMessage and Reset.
type Collector struct {
	buffer     []byte
	cursor     int
	started    bool
	completed  bool
	startDelim byte
	endDelim   byte
	stats      *Statistics
}

// NewCollector creates an idle collector with a buffer of the given capacity
func NewCollector(startDelim, endDelim byte, capacity int) (*Collector, error) {
	if startDelim == endDelim {
		return nil, fmt.Errorf("%w: both are 0x%02X", ErrSameDelimiters, startDelim)
	}
	if capacity < MinCapacity {
		return nil, fmt.Errorf("%w: got %d", ErrCapacityTooSmall, capacity)
	}
	return &Collector{
		buffer:     make([]byte, capacity),
		startDelim: startDelim,
		endDelim:   endDelim,
		stats:      NewStatistics(),
	}, nil
}

// Poll drains the bytes the transport reports as available at entry.
// Bytes arriving while Poll runs are left for the next call.
func (c *Collector) Poll(t Transport) {
	c.stats.Polls++
	for n := t.Available(); n > 0; n-- {
		c.CollectByte(t.Read())
	}
}

// Drain is Poll for callers that consume frames as they complete. After each
// byte, a complete frame is handed to fn and the collector is reset, so
// several frames arriving in one read are all delivered. Returns the number
// of frames delivered.
func (c *Collector) Drain(t Transport, fn func(*Frame)) int {
	c.stats.Polls++
	delivered := 0
	for n := t.Available(); n > 0; n-- {
		c.CollectByte(t.Read())
		if frame, ok := c.Take(); ok {
			fn(frame)
			delivered++
		}
	}
	return delivered
}

// CollectByte classifies a single byte against the collector state
func (c *Collector) CollectByte(b byte) {
	c.stats.BytesRead++

	switch {
	case b == c.startDelim && !c.started && c.cursor == 0:
		c.buffer[c.cursor] = b
		c.started = true
		c.cursor++

	case b == c.endDelim && c.started && !c.completed && c.cursor > 0:
		c.buffer[c.cursor] = b
		c.completed = true
		c.cursor++
		c.buffer[c.cursor] = Sentinel
		c.stats.Frames++
		c.stats.LastFrameTime = time.Now()

	case c.started && !c.completed && c.cursor < len(c.buffer)-reserved:
		if b == c.startDelim {
			c.stats.PrematureStarts++
		}
		c.buffer[c.cursor] = b
		c.cursor++

	case c.started && !c.completed:
		// No room left for the byte plus end delimiter and sentinel
		c.stats.Overflows++
		c.Reset()

	case c.completed:
		c.stats.LateBytes++

	default:
		c.stats.StrayBytes++
	}
}

// HasMessage reports whether a complete frame is buffered
func (c *Collector) HasMessage() bool {
	return c.started && c.completed
}

// Reset returns the collector to idle without reallocating the buffer
func (c *Collector) Reset() {
	c.cursor = 0
	c.started = false
	c.completed = false
}

// Take copies the buffered frame, resets the collector and returns the copy.
// Returns false when no frame is complete.
func (c *Collector) Take() (*Frame, bool) {
	if !c.HasMessage() {
		return nil, false
	}
	frame := NewFrame(c.Message())
	c.Reset()
	return frame, true
}

// Message returns the complete frame including both delimiters, or nil.
// The slice aliases the collector buffer and is valid until Reset.
func (c *Collector) Message() []byte {
	if !c.HasMessage() {
		return nil
	}
	return c.buffer[:c.cursor]
}

// Payload returns the bytes between the delimiters of a complete frame, or nil
func (c *Collector) Payload() []byte {
	if !c.HasMessage() {
		return nil
	}
	return c.buffer[1 : c.cursor-1]
}

// Buffer returns the buffered bytes. For a complete frame this includes the
// trailing sentinel.
func (c *Collector) Buffer() []byte {
	if c.completed {
		return c.buffer[:c.cursor+1]
	}
	return c.buffer[:c.cursor]
}

// State returns the current lifecycle state
func (c *Collector) State() State {
	switch {
	case c.completed:
		return StateComplete
	case c.started:
		return StateCollecting
	default:
		return StateIdle
	}
}

// Cursor returns the next write position
func (c *Collector) Cursor() int {
	return c.cursor
}

// Capacity returns the fixed buffer size
func (c *Collector) Capacity() int {
	return len(c.buffer)
}

// StartDelimiter returns the configured start byte
func (c *Collector) StartDelimiter() byte {
	return c.startDelim
}

// EndDelimiter returns the configured end byte
func (c *Collector) EndDelimiter() byte {
	return c.endDelim
}

// Stats returns the live statistics tracker
func (c *Collector) Stats() *Statistics {
	return c.stats
}
