// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Thermoquad/framescope/pkg/framer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	showAll       bool
	statsInterval int
	useTUI        bool
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Monitor frame statistics and stream anomalies",
	Long: `Track collected frames, dropped bytes and overflows with statistics.

This command reports:
  - Synchronization (first complete frame and bytes skipped before it)
  - Overflows (frames longer than the collector capacity, dropped whole)
  - Premature start delimiters inside a frame
  - Statistics (frame rate, byte rate, dropped bytes)

By default, only anomalies are displayed. Use --show-all to display frames too.`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
	monitorCmd.Flags().BoolVar(&showAll, "show-all", false, "Show all frames (not just anomalies)")
	monitorCmd.Flags().IntVar(&statsInterval, "stats-interval", 10, "Statistics update interval (seconds)")
	monitorCmd.Flags().BoolVar(&useTUI, "tui", true, "Use terminal UI (false for text mode)")
}

// anomalyTracker turns counter increases into event messages
type anomalyTracker struct {
	overflows       uint64
	prematureStarts uint64
}

// check returns one message per counter that grew since the last call
func (a *anomalyTracker) check(s *framer.Statistics) []string {
	var events []string
	if n := s.Overflows - a.overflows; n > 0 {
		events = append(events, fmt.Sprintf("OVERFLOW: %d frame(s) exceeded capacity and were dropped", n))
	}
	if n := s.PrematureStarts - a.prematureStarts; n > 0 {
		events = append(events, fmt.Sprintf("PREMATURE START: %d start delimiter(s) inside a frame", n))
	}
	a.overflows = s.Overflows
	a.prematureStarts = s.PrematureStarts
	return events
}

// streamResult maps a finished transport to the command result
func streamResult(err error) error {
	if err == nil || errors.Is(err, io.EOF) || errors.Is(err, ErrConnectionClosed) {
		log.Info().Msg("Stream ended")
		return nil
	}
	return fmt.Errorf("read error: %w", err)
}

func runMonitor(cmd *cobra.Command, args []string) error {
	if statsInterval <= 0 {
		return fmt.Errorf("--stats-interval must be positive")
	}
	if pollInterval <= 0 {
		return fmt.Errorf("--poll-interval must be positive")
	}

	collector, err := newCollector()
	if err != nil {
		return err
	}

	transport, connInfo, cleanup, err := OpenTransport("")
	if err != nil {
		return err
	}
	defer cleanup()

	if useTUI {
		return runTUIMode(cmd.Context(), collector, transport, connInfo)
	}
	return runTextMode(cmd.Context(), collector, transport, connInfo)
}

// runTUIMode runs the monitor in TUI mode
func runTUIMode(ctx context.Context, collector *framer.Collector, transport *framer.StreamTransport, connInfo string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Log lines would tear the alternate screen
	log.Logger = zerolog.Nop()

	m := initialModel(connInfo, collectorInfo(collector), showAll)
	p := tea.NewProgram(m, tea.WithContext(ctx))

	go func() {
		tracker := &anomalyTracker{}
		pollTicker := time.NewTicker(pollInterval)
		defer pollTicker.Stop()
		statsTicker := time.NewTicker(time.Second)
		defer statsTicker.Stop()

		drain := func() {
			collector.Drain(transport, func(f *framer.Frame) {
				p.Send(frameMsg{frame: f, dropped: collector.Stats().DroppedBytes()})
			})
			for _, event := range tracker.check(collector.Stats()) {
				p.Send(eventMsg{message: event, isError: true})
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-pollTicker.C:
				drain()
			case <-statsTicker.C:
				p.Send(statsMsg{stats: collector.Stats().Snapshot()})
			case <-transport.Done():
				drain()
				p.Send(statsMsg{stats: collector.Stats().Snapshot()})
				p.Send(streamEndMsg{err: transport.Err()})
				return
			}
		}
	}()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// runTextMode runs the monitor in text mode
func runTextMode(ctx context.Context, collector *framer.Collector, transport *framer.StreamTransport, connInfo string) error {
	fmt.Printf("Framescope - Monitor\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Framing: %s\n", collectorInfo(collector))
	fmt.Printf("Statistics interval: %d seconds\n", statsInterval)
	if showAll {
		fmt.Printf("Mode: All frames\n")
	} else {
		fmt.Printf("Mode: Anomalies only\n")
	}
	fmt.Printf("Press Ctrl+C to exit\n\n")

	tracker := &anomalyTracker{}
	synchronized := false

	pollTicker := time.NewTicker(pollInterval)
	defer pollTicker.Stop()
	statsTicker := time.NewTicker(time.Duration(statsInterval) * time.Second)
	defer statsTicker.Stop()

	drain := func() {
		collector.Drain(transport, func(f *framer.Frame) {
			if !synchronized {
				synchronized = true
				if dropped := collector.Stats().DroppedBytes(); dropped > 0 {
					fmt.Printf("[SYNC] Synchronized after skipping %d bytes\n\n", dropped)
				} else {
					fmt.Printf("[SYNC] Synchronized\n\n")
				}
			}
			if showAll {
				fmt.Print(framer.FormatFrame(f))
			}
		})

		for _, event := range tracker.check(collector.Stats()) {
			timestamp := time.Now().Format("15:04:05.000")
			fmt.Printf("[%s] \033[1;31m%s\033[0m\n\n", timestamp, event)
		}
	}

	for {
		select {
		case <-ctx.Done():
			fmt.Println()
			fmt.Print(collector.Stats().String())
			return nil

		case <-pollTicker.C:
			drain()

		case <-statsTicker.C:
			fmt.Println()
			fmt.Print(collector.Stats().String())
			fmt.Println()

		case <-transport.Done():
			drain()
			fmt.Println()
			fmt.Print(collector.Stats().String())
			return streamResult(transport.Err())
		}
	}
}
