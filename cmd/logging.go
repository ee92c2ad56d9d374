// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EnvLogLevel sets the log level when --log-level is not given
const EnvLogLevel = "FRAMESCOPE_LOG_LEVEL"

// newLogger creates a console logger. The level comes from level, then
// EnvLogLevel, then defaults to info.
func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	raw := strings.TrimSpace(level)
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv(EnvLogLevel))
	}

	lvl := zerolog.InfoLevel
	if raw != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(raw))
		if err != nil {
			return zerolog.Logger{}, fmt.Errorf("invalid log level %q: %w", raw, err)
		}
		lvl = parsed
	}

	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05.000",
	}
	return zerolog.New(output).Level(lvl).With().Timestamp().Logger(), nil
}

// configureLogging installs the global logger on stderr
func configureLogging(level string) error {
	logger, err := newLogger(os.Stderr, level)
	if err != nil {
		return err
	}
	log.Logger = logger
	return nil
}
