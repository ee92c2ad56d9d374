// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package framer

import (
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidDelimiter is returned when a delimiter string cannot be parsed
var ErrInvalidDelimiter = fmt.Errorf("invalid delimiter")

var escapedDelimiters = map[string]byte{
	`\n`: '\n',
	`\r`: '\r',
	`\t`: '\t',
	`\0`: 0x00,
}

// ParseDelimiter parses a delimiter given as a single character ("$"), an
// escape ("\n", "\r", "\t", "\0"), hex ("0x7E") or decimal ("126").
// A single character is always taken literally, so "7" is 0x37.
func ParseDelimiter(s string) (byte, error) {
	if b, ok := escapedDelimiters[s]; ok {
		return b, nil
	}

	switch {
	case s == "":
		return 0, fmt.Errorf("%w: empty", ErrInvalidDelimiter)
	case len(s) == 1:
		return s[0], nil
	}

	base := 10
	digits := s
	if lower := strings.ToLower(s); strings.HasPrefix(lower, "0x") {
		base = 16
		digits = s[2:]
	}

	v, err := strconv.ParseUint(digits, base, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDelimiter, s)
	}
	return byte(v), nil
}

// FormatDelimiter renders a delimiter byte as hex with its character form
func FormatDelimiter(b byte) string {
	for text, v := range escapedDelimiters {
		if v == b {
			return fmt.Sprintf("0x%02X '%s'", b, text)
		}
	}
	if b >= 0x20 && b < 0x7F {
		return fmt.Sprintf("0x%02X '%c'", b, b)
	}
	return fmt.Sprintf("0x%02X", b)
}
