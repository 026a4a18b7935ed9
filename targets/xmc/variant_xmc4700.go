//go:build xmc4700 && !xmc1400

package main

import "ccu8pwm/core"

// XMC4700 relax kit: CCU80 slice 2 drives P0.3 (direct) and P0.0 (inverted)
const variant = core.VariantXMC47
