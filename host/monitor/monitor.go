// Package monitor watches the firmware's debug channel for a line.
package monitor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"tinygo.org/x/drivers"
)

// DefaultPoll is how long Watch sleeps when nothing is buffered
const DefaultPoll = 10 * time.Millisecond

// maxLine bounds a line; longer lines are dropped whole
const maxLine = 256

// ErrNotSeen is returned when the channel ends before the line shows up
var ErrNotSeen = errors.New("line not seen")

// Watcher reads lines from a UART
type Watcher struct {
	uart drivers.UART

	// Poll is the sleep between empty polls
	Poll time.Duration

	// OnLine, when set, receives every complete line
	OnLine func(string)

	pending    []byte
	discarding bool // inside a line that grew past maxLine
}

// NewWatcher returns a watcher on uart
func NewWatcher(uart drivers.UART) *Watcher {
	return &Watcher{uart: uart, Poll: DefaultPoll}
}

// Wait reads until a line equal to want arrives, the context ends or the
// UART fails. Trailing carriage returns and spaces are ignored.
func (w *Watcher) Wait(ctx context.Context, want string) error {
	buf := make([]byte, 64)
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("waiting for %q: %w", want, err)
		}
		if w.uart.Buffered() == 0 {
			select {
			case <-ctx.Done():
			case <-time.After(w.Poll):
			}
			continue
		}

		n, err := w.uart.Read(buf)
		if w.feed(buf[:n], want) {
			return nil
		}
		switch {
		case errors.Is(err, io.EOF):
			// a closed stream still delivers its last unterminated line
			if w.flush(want) {
				return nil
			}
			return fmt.Errorf("waiting for %q: %w", want, ErrNotSeen)
		case err != nil:
			return fmt.Errorf("waiting for %q: %w", want, err)
		}
	}
}

// feed splits data into lines and reports whether want was among them
func (w *Watcher) feed(data []byte, want string) bool {
	for len(data) > 0 {
		i := bytes.IndexByte(data, '\n')
		if w.discarding {
			if i < 0 {
				return false
			}
			w.discarding = false
			data = data[i+1:]
			continue
		}
		if i < 0 {
			w.pending = append(w.pending, data...)
			if len(w.pending) > maxLine {
				w.pending = w.pending[:0]
				w.discarding = true
			}
			return false
		}
		w.pending = append(w.pending, data[:i]...)
		data = data[i+1:]
		if len(w.pending) > maxLine {
			w.pending = w.pending[:0]
			continue
		}
		line := string(bytes.TrimRight(w.pending, "\r "))
		w.pending = w.pending[:0]
		if w.OnLine != nil {
			w.OnLine(line)
		}
		if line == want {
			return true
		}
	}
	return false
}

func (w *Watcher) flush(want string) bool {
	if len(w.pending) == 0 || w.discarding {
		return false
	}
	return w.feed([]byte{'\n'}, want)
}

// Watch waits on uart for a line equal to want
func Watch(ctx context.Context, uart drivers.UART, want string) error {
	return NewWatcher(uart).Wait(ctx, want)
}
