// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package framer

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatFrame formats a frame for display: a header line, the payload as
// quoted text and a hex dump of the full frame
func FormatFrame(f *Frame) string {
	timestamp := f.Timestamp().Format("15:04:05.000")

	var s strings.Builder
	fmt.Fprintf(&s, "[%s] FRAME len=%d payload=%d\n", timestamp, f.Length(), len(f.Payload()))
	fmt.Fprintf(&s, "  Text: %s\n", strconv.Quote(string(f.Payload())))
	s.WriteString(FormatHexDump(f.Raw()))
	return s.String()
}

// FormatHexDump renders data as hex, 16 bytes per row
func FormatHexDump(data []byte) string {
	if len(data) == 0 {
		return "  (empty)\n"
	}

	result := "  Hex:  "
	for i, b := range data {
		if i > 0 && i%16 == 0 {
			result += "\n        "
		}
		result += fmt.Sprintf("%02X ", b)
	}
	return result + "\n"
}

// FormatSummary returns a one-line frame description for logs
func FormatSummary(f *Frame) string {
	return fmt.Sprintf("%s len=%d %s",
		f.Timestamp().Format("15:04:05.000"), f.Length(), strconv.Quote(string(f.Payload())))
}
