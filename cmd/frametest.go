// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Thermoquad/framescope/pkg/framer"
	"github.com/spf13/cobra"
)

var (
	frameTestTimeout int
)

var frameTestCmd = &cobra.Command{
	Use:   "frame_test",
	Short: "Test connection by waiting for a complete frame",
	Long: `Wait for a complete delimited frame on the connection until timeout.

This command connects to a serial port or WebSocket and waits for any
frame bounded by the configured start and end delimiters. Noise between
frames and oversized frames are ignored.

Exit codes:
  0 - Frame received before timeout
  1 - Timeout reached without receiving a frame
  2 - Connection error`,
	RunE: runFrameTest,
}

func init() {
	rootCmd.AddCommand(frameTestCmd)
	frameTestCmd.Flags().IntVar(&frameTestTimeout, "timeout", 10, "Timeout in seconds to wait for a frame")
}

func runFrameTest(cmd *cobra.Command, args []string) error {
	collector, err := newCollector()
	if err != nil {
		return err
	}

	transport, connInfo, cleanup, err := OpenTransport("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer cleanup()

	fmt.Printf("Framescope - Frame Test\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Framing: %s\n", collectorInfo(collector))
	fmt.Printf("Timeout: %d seconds\n", frameTestTimeout)
	fmt.Printf("Waiting for a complete frame...\n\n")

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(frameTestTimeout)*time.Second)
	defer cancel()

	var frame *framer.Frame
	err = framer.Watch(ctx, collector, transport, pollInterval, func(f *framer.Frame) {
		if frame == nil {
			frame = f
			cancel()
		}
	})

	if frame != nil {
		stats := collector.Stats()
		if dropped := stats.DroppedBytes(); dropped > 0 {
			fmt.Printf("(skipped %d bytes before sync)\n", dropped)
		}
		fmt.Printf("SUCCESS: Received frame\n")
		fmt.Printf("  Length: %d bytes\n", frame.Length())
		fmt.Printf("  Payload: %s\n", strconv.Quote(frame.String()))
		fmt.Print(framer.FormatHexDump(frame.Raw()))
		cleanup()
		os.Exit(0)
	}

	cleanup()
	if errors.Is(err, context.DeadlineExceeded) {
		fmt.Fprintf(os.Stderr, "TIMEOUT: No frame received within %d seconds\n", frameTestTimeout)
		os.Exit(1)
	}
	if err == nil {
		err = fmt.Errorf("stream ended")
	}
	fmt.Fprintf(os.Stderr, "Read error: %v\n", err)
	os.Exit(2)

	return nil
}
