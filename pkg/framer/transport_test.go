// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package framer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/iotest"
	"time"
)

// waitDone waits for a stream transport to finish pumping
func waitDone(t *testing.T, s *StreamTransport) {
	t.Helper()
	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for stream transport")
	}
}

// ============================================================
// ByteQueue Tests
// ============================================================

func TestByteQueue_FIFO(t *testing.T) {
	q := NewByteQueue([]byte("ab"))
	q.Write([]byte("c"))

	if q.Available() != 3 {
		t.Fatalf("Expected 3 available, got %d", q.Available())
	}
	for _, want := range []byte("abc") {
		if got := q.Read(); got != want {
			t.Errorf("Expected %q, got %q", want, got)
		}
	}
	if q.Available() != 0 {
		t.Errorf("Expected empty queue, got %d", q.Available())
	}
	if q.Read() != 0 {
		t.Error("Read on empty queue should return 0")
	}
}

func TestByteQueue_CopiesInput(t *testing.T) {
	data := []byte("$A\n")
	q := NewByteQueue(data)
	data[1] = 'Z'

	q.Read()
	if got := q.Read(); got != 'A' {
		t.Errorf("Queue should not alias caller data, got %q", got)
	}
}

// ============================================================
// StreamTransport Tests
// ============================================================

func TestStreamTransport_PumpsReader(t *testing.T) {
	s := NewStreamTransport(strings.NewReader("$hello\n"), 3)
	waitDone(t, s)

	if s.Available() != 7 {
		t.Fatalf("Expected 7 bytes pending, got %d", s.Available())
	}

	c, _ := NewCollector('$', '\n', 16)
	c.Poll(s)
	if string(c.Payload()) != "hello" {
		t.Errorf("Expected hello, got %q", c.Payload())
	}
	if s.Available() != 0 || s.Read() != 0 {
		t.Error("Expected transport drained")
	}
}

func TestStreamTransport_Err(t *testing.T) {
	boom := errors.New("port unplugged")
	s := NewStreamTransport(iotest.ErrReader(boom), 0)
	waitDone(t, s)

	if !errors.Is(s.Err(), boom) {
		t.Errorf("Expected %v, got %v", boom, s.Err())
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close without closer should succeed, got %v", err)
	}
}

// ============================================================
// Watch Tests
// ============================================================

func TestWatch_StopsOnCancel(t *testing.T) {
	c, _ := NewCollector('$', '\n', 16)
	q := NewByteQueue([]byte("$one\n$two\n"))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var got []string
	err := Watch(ctx, c, q, time.Millisecond, func(f *Frame) {
		got = append(got, f.String())
		if len(got) == 2 {
			cancel()
		}
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if len(got) != 2 || got[0] != "one" || got[1] != "two" {
		t.Errorf("Unexpected frames: %q", got)
	}
}

func TestWatch_ReturnsAtEOF(t *testing.T) {
	c, _ := NewCollector('$', '\n', 16)
	s := NewStreamTransport(iotest.OneByteReader(strings.NewReader("junk$hello\n$wor")), 0)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var got []string
	err := Watch(ctx, c, s, time.Millisecond, func(f *Frame) {
		got = append(got, f.String())
	})

	if err != nil {
		t.Fatalf("Expected nil at EOF, got %v", err)
	}
	if len(got) != 1 || got[0] != "hello" {
		t.Errorf("Expected [hello], got %q", got)
	}
	if c.State() != StateCollecting {
		t.Errorf("Trailing partial frame should stay pending, got %s", c.State())
	}
}

func TestWatch_ReturnsTransportError(t *testing.T) {
	boom := errors.New("read failed")
	c, _ := NewCollector('$', '\n', 16)
	s := NewStreamTransport(iotest.ErrReader(boom), 0)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := Watch(ctx, c, s, time.Millisecond, func(*Frame) {})
	if !errors.Is(err, boom) {
		t.Errorf("Expected %v, got %v", boom, err)
	}
}
