// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"

	"github.com/Thermoquad/framescope/pkg/framer"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay <capture>",
	Short: "Collect frames from a recorded capture file",
	Long: `Feed a capture file written by 'frames --record' through a collector.

Chunks are replayed in the order and sizes they were read from the live
connection, so frames split across reads are reassembled the same way. The
delimiter and capacity flags may differ from the recording session.

No connection flags are needed.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	collector, err := newCollector()
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open capture: %w", err)
	}
	defer f.Close()

	fmt.Printf("Framescope - Replay\n")
	fmt.Printf("Capture: %s\n", args[0])
	fmt.Printf("Framing: %s\n\n", collectorInfo(collector))

	chunks, err := framer.Replay(framer.NewCaptureReader(f), collector, func(chunk framer.Chunk, frame *framer.Frame) {
		fmt.Printf("@%-12s ", chunk.Offset)
		fmt.Print(framer.FormatFrame(frame))
	})
	if err != nil {
		return err
	}

	log.Debug().Int("chunks", chunks).Str("state", collector.State().String()).Msg("replay finished")
	fmt.Printf("\nReplayed %d chunks\n", chunks)
	fmt.Print(collector.Stats().String())
	return nil
}
