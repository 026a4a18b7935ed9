//go:build xmc1400 && !xmc4700

package main

import "ccu8pwm/core"

// XMC1400 boot kit: CCU80 slice 0 drives P0.0 (direct) and P0.1 (inverted)
const variant = core.VariantXMC14
