// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package framer

import (
	"io"
	"sync"
)

// DefaultChunkSize is the read size used by StreamTransport
const DefaultChunkSize = 128

// ByteQueue is an in-memory Transport. Bytes written to it are returned by
// Read in order.
type ByteQueue struct {
	data []byte
}

// NewByteQueue creates a queue holding a copy of data
func NewByteQueue(data []byte) *ByteQueue {
	q := &ByteQueue{}
	q.Write(data)
	return q
}

// Write appends p to the queue
func (q *ByteQueue) Write(p []byte) (int, error) {
	q.data = append(q.data, p...)
	return len(p), nil
}

// Available returns the number of queued bytes
func (q *ByteQueue) Available() int {
	return len(q.data)
}

// Read returns the next queued byte, or 0 if the queue is empty
func (q *ByteQueue) Read() byte {
	if len(q.data) == 0 {
		return 0
	}
	b := q.data[0]
	q.data = q.data[1:]
	return b
}

// StreamTransport adapts a blocking io.Reader (serial port, WebSocket) to the
// non-blocking Transport interface. A pump goroutine reads into a pending
// buffer that Available and Read consume.
type StreamTransport struct {
	mu      sync.Mutex
	pending []byte
	err     error
	done    chan struct{}
	closer  io.Closer
}

// NewStreamTransport starts pumping r in chunks of chunkSize bytes.
// If r is also an io.Closer, Close closes it.
func NewStreamTransport(r io.Reader, chunkSize int) *StreamTransport {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	s := &StreamTransport{
		done: make(chan struct{}),
	}
	if c, ok := r.(io.Closer); ok {
		s.closer = c
	}
	go s.pump(r, chunkSize)
	return s
}

func (s *StreamTransport) pump(r io.Reader, chunkSize int) {
	defer close(s.done)

	buf := make([]byte, chunkSize)
	for {
		n, err := r.Read(buf)
		s.mu.Lock()
		if n > 0 {
			s.pending = append(s.pending, buf[:n]...)
		}
		if err != nil {
			s.err = err
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()
	}
}

// Available returns the number of bytes pumped but not yet read
func (s *StreamTransport) Available() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Read returns the next pending byte, or 0 if none is pending
func (s *StreamTransport) Read() byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) == 0 {
		return 0
	}
	b := s.pending[0]
	s.pending = s.pending[1:]
	return b
}

// Done is closed once the underlying reader returns an error
func (s *StreamTransport) Done() <-chan struct{} {
	return s.done
}

// Err returns the error that stopped the pump, if any
func (s *StreamTransport) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close closes the underlying reader when it supports closing
func (s *StreamTransport) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
