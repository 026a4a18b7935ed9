//go:build xmc1400 || xmc4700

package main

import (
	"errors"

	"ccu8pwm/core"
)

func main() {
	debug := initDebug()

	plan, err := core.DefaultPlan(variant)
	if err != nil {
		panic(err)
	}

	bus := core.MMIO{}
	res, err := core.Bringup(bus, plan, core.Options{
		BoardInit: core.BoardInit(bus, plan.Target),
		Debug:     debug,
	})
	if err != nil {
		// A plan that fails validation is a build error, not a board fault
		if errors.Is(err, core.ErrInvalidConfig) {
			panic(err)
		}
		debug.Println("[PWM] " + err.Error())
		halt()
	}
	debug.Println("[PWM] " + res.Target.Name + " " + res.Timing.String())

	// The slice runs on its own from here on
	idle := core.NewIdle(debug, debug != nil)
	for {
		idle.Tick()
	}
}
