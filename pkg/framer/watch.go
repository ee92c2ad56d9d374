// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package framer

import (
	"context"
	"errors"
	"io"
	"time"
)

// DefaultPollInterval is the Watch tick period used by the CLI
const DefaultPollInterval = 10 * time.Millisecond

// finiteTransport is implemented by transports that can run dry for good
type finiteTransport interface {
	Done() <-chan struct{}
	Err() error
}

// Watch polls t every interval and hands each completed frame to fn.
//
// Watch returns ctx.Err() when the context is cancelled. If t also reports
// completion (as StreamTransport does), Watch returns once the transport is
// done and fully drained: nil for io.EOF, otherwise the transport error.
func Watch(ctx context.Context, c *Collector, t Transport, interval time.Duration, fn func(*Frame)) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	var done <-chan struct{}
	finite, isFinite := t.(finiteTransport)
	if isFinite {
		done = finite.Done()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			c.Drain(t, fn)

		case <-done:
			// Pick up whatever arrived before the source stopped
			c.Drain(t, fn)
			if t.Available() > 0 {
				continue
			}
			if err := finite.Err(); err != nil && !errors.Is(err, io.EOF) {
				return err
			}
			return nil
		}
	}
}
