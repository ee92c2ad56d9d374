// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Thermoquad/framescope/pkg/framer"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	recordPath          string
	framesStatsInterval int
)

var framesCmd = &cobra.Command{
	Use:   "frames",
	Short: "Display collected frames as they arrive",
	Long: `Continuously collect and display delimited frames from the connection.

Each frame is shown with a timestamp, its payload as quoted text and a hex
dump including both delimiters. Use --record to save the raw stream to a
capture file that can be fed back with the replay command.

Supports both serial and WebSocket connections.`,
	RunE: runFrames,
}

func init() {
	rootCmd.AddCommand(framesCmd)
	framesCmd.Flags().StringVar(&recordPath, "record", "", "Write the raw stream to a capture file")
	framesCmd.Flags().IntVar(&framesStatsInterval, "stats-interval", 0, "Print statistics every N seconds of frames (0 disables)")
}

func runFrames(cmd *cobra.Command, args []string) error {
	collector, err := newCollector()
	if err != nil {
		return err
	}

	transport, connInfo, cleanup, err := OpenTransport(recordPath)
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Printf("Framescope - Frame Log\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Framing: %s\n", collectorInfo(collector))
	fmt.Printf("Press Ctrl+C to exit\n\n")

	statsEvery := time.Duration(framesStatsInterval) * time.Second
	lastStats := time.Now()

	err = framer.Watch(cmd.Context(), collector, transport, pollInterval, func(f *framer.Frame) {
		fmt.Print(framer.FormatFrame(f))
		if statsEvery > 0 && time.Since(lastStats) >= statsEvery {
			fmt.Println()
			fmt.Print(collector.Stats().String())
			fmt.Println()
			lastStats = time.Now()
		}
	})

	fmt.Println()
	fmt.Print(collector.Stats().String())

	switch {
	case err == nil:
		log.Info().Msg("Stream ended")
		return nil
	case errors.Is(err, context.Canceled):
		return nil
	case errors.Is(err, ErrConnectionClosed):
		log.Info().Msg("Connection closed")
		return nil
	default:
		return fmt.Errorf("read error: %w", err)
	}
}
