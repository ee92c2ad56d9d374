// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package framer extracts delimiter-framed messages from serial-like byte
// streams.
//
// A Collector holds a single fixed-capacity message buffer. Each call to
// Poll drains the bytes a Transport reports as available and classifies
// them against the collector state (idle, collecting, complete). A frame
// begins at the start delimiter, ends at the end delimiter, and is followed
// in the buffer by a 0x00 sentinel so it can be consumed as a C-style string.
//
// Malformed input never surfaces as an error: stray bytes are dropped and an
// overflowing frame resets the collector. Statistics counts each case.
package framer

// Defaults used by the CLI
const (
	DefaultStartDelimiter = '$'
	DefaultEndDelimiter   = '\n'
	DefaultCapacity       = 128
)

// MinCapacity fits a start delimiter, an end delimiter and the sentinel
const MinCapacity = 3

// Sentinel is written one position past the end delimiter
const Sentinel = 0x00

// reserved holds the final two buffer slots for the end delimiter and sentinel
const reserved = 2

// State is the collector lifecycle state
type State int

// Collector states
const (
	StateIdle State = iota
	StateCollecting
	StateComplete
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateCollecting:
		return "COLLECTING"
	case StateComplete:
		return "COMPLETE"
	default:
		return "UNKNOWN"
	}
}
