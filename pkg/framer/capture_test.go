// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package framer

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestCapture_WriteRead(t *testing.T) {
	var buf bytes.Buffer
	cw := NewCaptureWriter(&buf)

	chunks := []string{"$he", "llo\n$wor", "ld\n"}
	for _, c := range chunks {
		if err := cw.WriteChunk([]byte(c)); err != nil {
			t.Fatalf("WriteChunk: %v", err)
		}
	}

	cr := NewCaptureReader(&buf)
	var last Chunk
	for i, want := range chunks {
		chunk, err := cr.Next()
		if err != nil {
			t.Fatalf("Next %d: %v", i, err)
		}
		if string(chunk.Data) != want {
			t.Errorf("Chunk %d: expected %q, got %q", i, want, chunk.Data)
		}
		if chunk.Offset < last.Offset {
			t.Errorf("Chunk %d offset went backwards: %v < %v", i, chunk.Offset, last.Offset)
		}
		last = chunk
	}

	if _, err := cr.Next(); err != io.EOF {
		t.Errorf("Expected io.EOF, got %v", err)
	}
}

func TestCapture_Garbage(t *testing.T) {
	cr := NewCaptureReader(bytes.NewReader([]byte{0xFF, 0xFF, 0xFF}))
	if _, err := cr.Next(); err == nil || err == io.EOF {
		t.Errorf("Expected decode error, got %v", err)
	}
}

func TestRecordingReader_Replay(t *testing.T) {
	var capture bytes.Buffer
	cw := NewCaptureWriter(&capture)
	rr := NewRecordingReader(strings.NewReader("--$GPRMC\n$GPGGA\n$GP"), cw)

	// Record in small reads so frames span chunks
	buf := make([]byte, 4)
	for {
		_, err := rr.Read(buf)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
	}
	if err := rr.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}

	c, _ := NewCollector('$', '\n', 32)
	var got []string
	chunks, err := Replay(NewCaptureReader(&capture), c, func(_ Chunk, f *Frame) {
		got = append(got, f.String())
	})
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}

	if chunks != 5 {
		t.Errorf("Expected 5 chunks, got %d", chunks)
	}
	if len(got) != 2 || got[0] != "GPRMC" || got[1] != "GPGGA" {
		t.Errorf("Unexpected frames: %q", got)
	}
	if c.State() != StateCollecting {
		t.Errorf("Expected trailing partial frame, got %s", c.State())
	}
}
