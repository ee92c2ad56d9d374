// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Thermoquad/framescope/pkg/framer"
	"github.com/spf13/cobra"
)

var (
	// Serial connection flags
	portName string
	baudRate int

	// WebSocket connection flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool

	// Collector flags
	startDelim   string
	endDelim     string
	capacity     int
	pollInterval time.Duration

	logLevel   string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "framescope",
	Short: "Delimited Frame Collector",
	Long: `Framescope - A CLI tool for extracting delimited frames from byte streams.

A frame starts at the start delimiter and ends at the end delimiter. Bytes
outside a frame are dropped, and frames longer than the collector capacity
are discarded whole.

Connection modes:
  Serial:    --port /dev/ttyUSB0 [--baud 115200]
  WebSocket: --url ws://host/path [--username user]

Delimiters accept a character ($), an escape (\n, \r, \t, \0), hex (0x7E)
or decimal (126).

Defaults for any flag can be set in a TOML file passed with --config.
For WebSocket authentication, the password is read from the FRAMESCOPE_PASSWORD
environment variable, or prompted interactively if not set.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := applyConfigFile(cmd.Flags(), configPath); err != nil {
			return err
		}
		return configureLogging(logLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 115200, "Baud rate (serial only)")

	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")

	rootCmd.PersistentFlags().StringVarP(&startDelim, "start", "s", "$", "Start delimiter")
	rootCmd.PersistentFlags().StringVarP(&endDelim, "end", "e", `\n`, "End delimiter")
	rootCmd.PersistentFlags().IntVarP(&capacity, "capacity", "c", framer.DefaultCapacity, "Frame buffer capacity in bytes (including delimiters and sentinel)")
	rootCmd.PersistentFlags().DurationVar(&pollInterval, "poll-interval", framer.DefaultPollInterval, "Interval between transport polls")

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error, disabled)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "TOML config file with flag defaults")
}

// newCollector builds a collector from the delimiter and capacity flags
func newCollector() (*framer.Collector, error) {
	start, err := framer.ParseDelimiter(startDelim)
	if err != nil {
		return nil, fmt.Errorf("--start: %w", err)
	}
	end, err := framer.ParseDelimiter(endDelim)
	if err != nil {
		return nil, fmt.Errorf("--end: %w", err)
	}
	return framer.NewCollector(start, end, capacity)
}

// collectorInfo describes a collector's framing for command headers
func collectorInfo(c *framer.Collector) string {
	return fmt.Sprintf("%s ... %s, capacity %d",
		framer.FormatDelimiter(c.StartDelimiter()), framer.FormatDelimiter(c.EndDelimiter()), c.Capacity())
}

// Execute runs the root command until it finishes or the process is interrupted
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}
