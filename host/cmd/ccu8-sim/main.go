package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"

	"ccu8pwm/core"
	"ccu8pwm/sim"
)

var (
	variant     = "xmc1400"
	period      = flag.Uint("period", core.DefaultPeriod, "Timer period in ticks")
	compare     = flag.Uint("compare", core.DefaultCompare, "Channel 1 compare value in ticks")
	ticks       = flag.Int("ticks", 2*core.DefaultPeriod, "Ticks to sample for the waveform")
	step        = flag.Int("step", 8, "Ticks per waveform column")
	interactive = flag.Bool("i", false, "Start an interactive shell after bring-up")
)

func init() {
	if val := os.Getenv("CCU8_SIM_VARIANT"); val != "" {
		variant = val
	}
	flag.StringVar(&variant, "variant", variant, "Board variant (xmc1400 or xmc4700)")
}

func main() {
	flag.Parse()
	defer glog.Flush()

	s, err := bringUp()
	if err != nil {
		glog.Exitf("bring-up: %v", err)
	}

	fmt.Printf("%s, CCU80 slice %d, %s / %s\n", s.res.Target.Name, s.res.Target.Slice, s.res.Target.Direct, s.res.Target.Inverted)
	fmt.Println(s.res.Timing)
	s.printWave(os.Stdout, *ticks)

	if *interactive {
		newShell(s).Run()
	}
}

// session is a simulated board after bring-up
type session struct {
	plan    core.Plan
	dev     *sim.Device
	sampler *sim.Sampler
	res     *core.Result
}

func bringUp() (*session, error) {
	v, err := core.ParseVariant(variant)
	if err != nil {
		return nil, err
	}
	plan, err := core.DefaultPlan(v)
	if err != nil {
		return nil, err
	}
	if *period > core.CCU8_TimerMax || *compare > core.CCU8_TimerMax {
		return nil, fmt.Errorf("period and compare must fit %d bits", core.CCU8_TimerBits)
	}
	if *ticks < 1 {
		return nil, fmt.Errorf("ticks must be positive, got %d", *ticks)
	}
	plan.Period = uint16(*period)
	plan.Compare = uint16(*compare)

	dev := sim.New(plan.Target)
	res, err := core.Bringup(dev, plan, core.Options{
		BoardInit: core.BoardInit(dev, plan.Target),
		Debug:     func(s string) { glog.V(1).Info(s) },
	})
	if glog.V(2) {
		for _, a := range dev.Trace() {
			glog.Info(a)
		}
	}
	if err != nil {
		return nil, err
	}
	for _, f := range dev.Faults() {
		glog.Warningf("fault: %v", f)
	}
	glog.Infof("%s running after %d steps", plan.Target.Name, len(res.Steps))
	return &session{plan: plan, dev: dev, sampler: sim.NewSampler(dev), res: res}, nil
}

func (s *session) printWave(w io.Writer, n int) {
	samples := s.sampler.Run(n)
	m := samples.Measure()
	fmt.Fprintln(w, samples.Render(*step))
	fmt.Fprintf(w, "ticks=%d direct=%d inverted=%d overlap=%d dead=%d windows=%v\n",
		m.Ticks, m.DirectHigh, m.InvertedHigh, m.Overlap, m.Dead, m.DeadWindows)
}
