// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package framer

import (
	"fmt"
	"time"
)

// Statistics tracks collector throughput and dropped input
type Statistics struct {
	StartTime     time.Time
	LastFrameTime time.Time

	// Counters
	Polls           uint64
	BytesRead       uint64
	Frames          uint64
	StrayBytes      uint64 // Discarded while idle
	LateBytes       uint64 // Discarded after completion, before Reset
	PrematureStarts uint64 // Start delimiter seen while collecting
	Overflows       uint64 // Frames dropped for exceeding capacity

	// Rates (calculated)
	FrameRate float64 // frames/sec
	ByteRate  float64 // bytes/sec
}

// NewStatistics creates a new statistics tracker
func NewStatistics() *Statistics {
	return &Statistics{
		StartTime: time.Now(),
	}
}

// DroppedBytes returns the number of bytes discarded outside of a frame
func (s *Statistics) DroppedBytes() uint64 {
	return s.StrayBytes + s.LateBytes
}

// CalculateRates calculates frame and byte rates
func (s *Statistics) CalculateRates() {
	elapsed := time.Since(s.StartTime).Seconds()
	if elapsed > 0 {
		s.FrameRate = float64(s.Frames) / elapsed
		s.ByteRate = float64(s.BytesRead) / elapsed
	}
}

// Snapshot returns a copy safe to hand to another goroutine
func (s *Statistics) Snapshot() Statistics {
	s.CalculateRates()
	return *s
}

// String returns a formatted statistics summary
func (s *Statistics) String() string {
	s.CalculateRates()

	var droppedPercent float64
	if s.BytesRead > 0 {
		droppedPercent = float64(s.DroppedBytes()) * 100.0 / float64(s.BytesRead)
	}

	elapsed := time.Since(s.StartTime)

	result := fmt.Sprintf("=== Statistics (%.0f seconds) ===\n", elapsed.Seconds())
	result += fmt.Sprintf("Frames:          %8d\n", s.Frames)
	result += fmt.Sprintf("Bytes Read:      %8d\n", s.BytesRead)

	if s.DroppedBytes() > 0 {
		result += fmt.Sprintf("Dropped Bytes:   %8d (%.1f%%)\n", s.DroppedBytes(), droppedPercent)
		if s.StrayBytes > 0 {
			result += fmt.Sprintf("  Stray (idle):     %5d\n", s.StrayBytes)
		}
		if s.LateBytes > 0 {
			result += fmt.Sprintf("  Late (complete):  %5d\n", s.LateBytes)
		}
	}
	if s.PrematureStarts > 0 {
		result += fmt.Sprintf("Premature Starts:%8d\n", s.PrematureStarts)
	}
	if s.Overflows > 0 {
		result += fmt.Sprintf("Overflows:       %8d\n", s.Overflows)
	}

	result += fmt.Sprintf("Frame Rate:      %8.1f frames/sec\n", s.FrameRate)
	result += fmt.Sprintf("Byte Rate:       %8.1f bytes/sec\n", s.ByteRate)
	result += "================================\n"

	return result
}

// Reset resets all statistics counters
func (s *Statistics) Reset() {
	*s = Statistics{StartTime: time.Now()}
}
