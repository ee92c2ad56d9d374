// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
)

// fileConfig mirrors the persistent flags. Keys are flag names with
// dashes replaced by underscores.
type fileConfig struct {
	Port         string `toml:"port"`
	Baud         int    `toml:"baud"`
	URL          string `toml:"url"`
	Username     string `toml:"username"`
	NoSSLVerify  bool   `toml:"no_ssl_verify"`
	Start        string `toml:"start"`
	End          string `toml:"end"`
	Capacity     int    `toml:"capacity"`
	PollInterval string `toml:"poll_interval"`
	LogLevel     string `toml:"log_level"`
}

// applyConfigFile loads path and sets every flag it defines that was not
// given on the command line. An empty path is a no-op.
func applyConfigFile(flags *pflag.FlagSet, path string) error {
	if path == "" {
		return nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("load config %s: unknown key %q", path, undecoded[0].String())
	}

	values := map[string]string{
		"port":          raw.Port,
		"baud":          strconv.Itoa(raw.Baud),
		"url":           raw.URL,
		"username":      raw.Username,
		"no_ssl_verify": strconv.FormatBool(raw.NoSSLVerify),
		"start":         raw.Start,
		"end":           raw.End,
		"capacity":      strconv.Itoa(raw.Capacity),
		"poll_interval": strings.TrimSpace(raw.PollInterval),
		"log_level":     strings.TrimSpace(raw.LogLevel),
	}

	for key, value := range values {
		if !meta.IsDefined(key) {
			continue
		}
		name := strings.ReplaceAll(key, "_", "-")
		if flags.Changed(name) {
			continue
		}
		if err := flags.Set(name, value); err != nil {
			return fmt.Errorf("config %s: %s: %w", path, key, err)
		}
	}

	return nil
}
