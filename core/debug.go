package core

import (
	"context"
	"io"
)

// DebugWriter is a function type for writing debug messages. Platform
// code builds one for its debug channel and hands it to Bringup and Idle.
type DebugWriter func(string)

// DebugLoopCountMax is the number of idle iterations after which the
// diagnostic line is printed
const DebugLoopCountMax = 1

// DiagnosticLine is printed once the PWM is running
const DiagnosticLine = "Generated complementary PWM waves"

// Println writes msg through w. A nil writer means debug output is off.
func (w DebugWriter) Println(msg string) {
	if w != nil {
		w(msg)
	}
}

// WriterDebug returns a DebugWriter that writes one line per message to w.
// Write errors are dropped; debug output is best effort.
func WriterDebug(w io.Writer) DebugWriter {
	return func(s string) {
		_, _ = io.WriteString(w, s+"\n")
	}
}

// Idle is the loop body the firmware runs once the PWM is running.
// With debug on it counts iterations and prints DiagnosticLine exactly
// once, when the count reaches DebugLoopCountMax.
type Idle struct {
	debug   DebugWriter
	enabled bool
	count   uint32
}

// NewIdle returns an idle loop. A nil writer disables the diagnostic.
func NewIdle(debug DebugWriter, enabled bool) *Idle {
	return &Idle{debug: debug, enabled: enabled && debug != nil}
}

// Tick runs one iteration of the idle loop
func (l *Idle) Tick() {
	if !l.enabled {
		return
	}
	l.count++
	if l.count >= DebugLoopCountMax {
		l.debug(DiagnosticLine)
		l.enabled = false
	}
}

// Count returns the iterations counted so far
func (l *Idle) Count() uint32 {
	return l.count
}

// Pending reports whether the diagnostic line is still to be printed
func (l *Idle) Pending() bool {
	return l.enabled
}

// Park is the hosted form of the idle loop: it ticks once and then blocks
// until ctx ends. The PWM keeps running in hardware.
func (l *Idle) Park(ctx context.Context) error {
	l.Tick()
	<-ctx.Done()
	return ctx.Err()
}
