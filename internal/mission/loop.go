/*
Package mission
File: loop.go
Description:
    Loop is the frame driver. It ticks Control on a fixed period and runs
    commands from other goroutines (HTTP handlers) between frames, so
    Control only ever has one writer.
*/

package mission

import (
	"context"
	"time"
)

type command struct {
	fn   func(*Control) error
	done chan error
}

// Loop serializes all access to a Control.
type Loop struct {
	control *Control
	period  time.Duration
	cmds    chan command
}

// NewLoop returns a loop ticking c every period.
func NewLoop(c *Control, period time.Duration) *Loop {
	return &Loop{
		control: c,
		period:  period,
		cmds:    make(chan command),
	}
}

// Run blocks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			l.control.Tick(now)
		case cmd := <-l.cmds:
			cmd.done <- cmd.fn(l.control)
		}
	}
}

// Do runs fn on the loop goroutine and returns its error.
func (l *Loop) Do(ctx context.Context, fn func(*Control) error) error {
	cmd := command{fn: fn, done: make(chan error, 1)}
	select {
	case l.cmds <- cmd:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-cmd.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
