// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

type testFlags struct {
	port     string
	baud     int
	start    string
	end      string
	capacity int
	poll     time.Duration
	noVerify bool
}

func newTestFlagSet() (*pflag.FlagSet, *testFlags) {
	v := &testFlags{}
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringVar(&v.port, "port", "", "")
	flags.IntVar(&v.baud, "baud", 115200, "")
	flags.StringVar(&v.start, "start", "$", "")
	flags.StringVar(&v.end, "end", `\n`, "")
	flags.IntVar(&v.capacity, "capacity", 128, "")
	flags.DurationVar(&v.poll, "poll-interval", 10*time.Millisecond, "")
	flags.BoolVar(&v.noVerify, "no-ssl-verify", false, "")
	return flags, v
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "framescope.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestApplyConfigFile_SetsDefinedKeys(t *testing.T) {
	flags, v := newTestFlagSet()
	path := writeConfig(t, `
port = "/dev/ttyUSB1"
baud = 9600
start = "0x7E"
end = "0x7F"
capacity = 64
poll_interval = "25ms"
no_ssl_verify = true
`)

	if err := applyConfigFile(flags, path); err != nil {
		t.Fatalf("applyConfigFile: %v", err)
	}

	if v.port != "/dev/ttyUSB1" || v.baud != 9600 {
		t.Errorf("Serial settings not applied: %q @ %d", v.port, v.baud)
	}
	if v.start != "0x7E" || v.end != "0x7F" || v.capacity != 64 {
		t.Errorf("Framing not applied: %q %q %d", v.start, v.end, v.capacity)
	}
	if v.poll != 25*time.Millisecond {
		t.Errorf("Expected 25ms poll interval, got %v", v.poll)
	}
	if !v.noVerify {
		t.Error("Expected no_ssl_verify applied")
	}
}

func TestApplyConfigFile_KeepsUndefinedDefaults(t *testing.T) {
	flags, v := newTestFlagSet()
	path := writeConfig(t, `port = "/dev/ttyACM0"`)

	if err := applyConfigFile(flags, path); err != nil {
		t.Fatalf("applyConfigFile: %v", err)
	}
	if v.baud != 115200 || v.capacity != 128 || v.start != "$" {
		t.Errorf("Undefined keys should keep flag defaults: %d %d %q", v.baud, v.capacity, v.start)
	}
}

func TestApplyConfigFile_CommandLineWins(t *testing.T) {
	flags, v := newTestFlagSet()
	if err := flags.Parse([]string{"--baud=57600"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	path := writeConfig(t, "baud = 9600\ncapacity = 32\n")

	if err := applyConfigFile(flags, path); err != nil {
		t.Fatalf("applyConfigFile: %v", err)
	}
	if v.baud != 57600 {
		t.Errorf("Command line baud should win, got %d", v.baud)
	}
	if v.capacity != 32 {
		t.Errorf("Expected capacity from config, got %d", v.capacity)
	}
}

func TestApplyConfigFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown key", content: `colour = "blue"`},
		{name: "wrong type", content: `capacity = "large"`},
		{name: "bad duration", content: `poll_interval = "soon"`},
		{name: "syntax", content: `port = `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags, _ := newTestFlagSet()
			if err := applyConfigFile(flags, writeConfig(t, tt.content)); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestApplyConfigFile_NoPath(t *testing.T) {
	flags, _ := newTestFlagSet()
	if err := applyConfigFile(flags, ""); err != nil {
		t.Errorf("Empty path should be a no-op, got %v", err)
	}
	if err := applyConfigFile(flags, filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
