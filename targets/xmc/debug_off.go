//go:build (xmc1400 || xmc4700) && !debugprint

package main

import "ccu8pwm/core"

// initDebug leaves debug output off
func initDebug() core.DebugWriter { return nil }
