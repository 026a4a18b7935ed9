package main

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/abiosoft/ishell"
	"github.com/golang/glog"

	"ccu8pwm/core"
)

const sessionKey = "$session"

var commands = []*ishell.Cmd{
	{
		Name: "regs",
		Help: "print the CCU8 and port registers",
		Func: func(c *ishell.Context) {
			var w bytes.Buffer
			if err := sessionFrom(c).dev.Dump(&w); err != nil {
				c.Err(err)
				return
			}
			c.Print(w.String())
		},
	},
	{
		Name: "wave",
		Help: "[TICKS] sample the outputs and draw them",
		Func: func(c *ishell.Context) {
			n := int(sessionFrom(c).sampler.Period()) * 2
			if len(c.Args) > 0 {
				v, err := strconv.Atoi(c.Args[0])
				if err != nil || v <= 0 {
					c.Err(fmt.Errorf("Invalid TICKS: %q", c.Args[0]))
					return
				}
				n = v
			}
			s := sessionFrom(c)
			samples := s.sampler.Run(n)
			m := samples.Measure()
			c.Println(samples.Render(*step))
			c.Printf("direct=%d inverted=%d overlap=%d dead=%d windows=%v\n",
				m.DirectHigh, m.InvertedHigh, m.Overlap, m.Dead, m.DeadWindows)
		},
	},
	{
		Name: "timing",
		Help: "print the timing of the running configuration",
		Func: func(c *ishell.Context) {
			tm := sessionFrom(c).res.Timing
			c.Printf("timer clock %s, PWM %s, duty %s\n", tm.TimerClock(), tm.PWMFrequency(), tm.Duty())
			c.Printf("high %v, low %v, dead time %v / %v\n",
				tm.HighTime(), tm.LowTime(), tm.DeadTimeRising(), tm.DeadTimeFalling())
		},
	},
	{
		Name: "compare",
		Help: "VALUE update the compare value, effective at the next period",
		Func: func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("VALUE required"))
				return
			}
			v, err := strconv.ParseUint(c.Args[0], 10, 16)
			if err != nil {
				c.Err(fmt.Errorf("Invalid VALUE: %v", err))
				return
			}
			if err := sessionFrom(c).setCompare(uint16(v)); err != nil {
				c.Err(err)
				return
			}
			c.Println("OK")
		},
	},
	{
		Name: "trace",
		Help: "print the register writes of the bring-up",
		Func: func(c *ishell.Context) {
			for _, a := range sessionFrom(c).dev.Writes() {
				c.Println(a)
			}
			for _, f := range sessionFrom(c).dev.Faults() {
				c.Println("fault:", f)
			}
		},
	},
}

func newShell(s *session) *ishell.Shell {
	sh := ishell.New()
	sh.Set(sessionKey, s)
	sh.SetPrompt(fmt.Sprintf("[%s] > ", s.plan.Target.Variant))
	for _, cmd := range commands {
		sh.AddCmd(cmd)
	}
	return sh
}

func sessionFrom(c *ishell.Context) *session {
	return c.Get(sessionKey).(*session)
}

// setCompare writes a new compare value to the shadow register and requests
// the transfer. The running timer picks it up at its next period.
func (s *session) setCompare(v uint16) error {
	next := s.plan
	next.Compare = v
	if err := next.Validate(); err != nil {
		return err
	}
	t := &s.plan.Target
	module := core.NewCCU8(s.dev, t.ModuleBase, t.ModuleClock)
	module.Slice(t.Slice).SetTimerCompareMatch(t.CompareChannel, v)
	module.EnableShadowTransfer(t.ShadowMask)

	s.plan = next
	s.res.Timing = next.Timing()
	glog.Infof("compare %d requested", v)
	return nil
}
