//go:build xmc1400 || xmc4700

package main

import "device/arm"

// halt stops in front of an attached debugger and never returns
func halt() {
	arm.Asm("bkpt")
	for {
	}
}
