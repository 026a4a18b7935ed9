//go:build (xmc1400 || xmc4700) && debugprint

package main

import (
	"tinygo.org/x/drivers/semihosting"

	"ccu8pwm/core"
)

// initDebug routes debug output to the host over ARM semihosting.
// A debugger with semihosting enabled must be attached, or the first
// write traps. OpenOCD can forward the output to a TCP port for
// ccu8-monitor.
func initDebug() core.DebugWriter {
	return func(s string) {
		_ = semihosting.Stdout.Write([]byte(s + "\n"))
	}
}
