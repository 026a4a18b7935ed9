package main

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ccu8pwm/core"
	"ccu8pwm/host/monitor"
)

// debugger serves lines on a local TCP port the way OpenOCD forwards
// semihosting output
func debugger(t *testing.T, lines ...string) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })
	go func() {
		c, err := ln.Accept()
		if err != nil {
			return
		}
		defer c.Close()
		// give run time to flush before the board starts talking
		time.Sleep(20 * time.Millisecond)
		for _, l := range lines {
			if _, err := c.Write([]byte(l + "\n")); err != nil {
				return
			}
		}
	}()
	return ln.Addr().String()
}

func withFlags(t *testing.T, a string, wait time.Duration) {
	oldAddr, oldDevice, oldPoll, oldTimeout := addr, device, *poll, *timeout
	t.Cleanup(func() {
		addr, device, *poll, *timeout = oldAddr, oldDevice, oldPoll, oldTimeout
	})
	addr, device = a, ""
	*poll = 5 * time.Millisecond
	*timeout = wait
}

func TestRunSeesDiagnostic(t *testing.T) {
	withFlags(t, debugger(t,
		"[PWM] start_timer -> running",
		"[PWM] XMC1400 Boot Kit timer 48MHz",
		core.DiagnosticLine,
	), 2*time.Second)
	require.NoError(t, run())
}

func TestRunStreamEndsEarly(t *testing.T) {
	withFlags(t, debugger(t, "[PWM] board init failed"), 2*time.Second)
	err := run()
	assert.True(t, errors.Is(err, monitor.ErrNotSeen), "got %v", err)
}

func TestRunNoDebugger(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	a := ln.Addr().String()
	require.NoError(t, ln.Close())

	withFlags(t, a, time.Second)
	assert.ErrorContains(t, run(), "failed to connect")
}
