// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad
//
// Framescope - Delimited Frame Collector
//
// A CLI tool for extracting start/end delimited frames from serial and
// WebSocket byte streams.

package main

import (
	"os"

	"github.com/Thermoquad/framescope/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
