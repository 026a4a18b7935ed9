package core

// Default PWM parameters, in timer ticks
const (
	DefaultPeriod  = 720
	DefaultCompare = 360
)

// Plan is the complete static configuration applied by Bringup.
// It is built once, validated, applied, and then has no further use.
type Plan struct {
	Target Target

	Clock  ClockSource
	Action MCMSAction

	Slice   SliceCompareConfig
	Period  uint16
	Compare uint16 // channel 1 compare value

	DirectPin   GPIOPinConfig
	InvertedPin GPIOPinConfig

	DeadTime DeadTimeConfig
}

// DefaultPlan returns the shipped plan for a variant:
// 720 tick period, 50% duty, 22 ticks of dead time on both edges.
func DefaultPlan(v Variant) (Plan, error) {
	t, err := TargetFor(v)
	if err != nil {
		return Plan{}, err
	}
	slice := DefaultSliceConfig()
	slice.SliceStatus = t.StatusChannel
	return Plan{
		Target:      t,
		Clock:       ClockSCU,
		Action:      MCMSTransferPRCR,
		Slice:       slice,
		Period:      DefaultPeriod,
		Compare:     DefaultCompare,
		DirectPin:   t.PinConfig,
		InvertedPin: t.PinConfig,
		DeadTime:    DefaultDeadTime(),
	}, nil
}

// Validate checks every static invariant of the plan and reports all
// violations at once. The returned error matches ErrInvalidConfig.
func (p *Plan) Validate() error {
	var errs ValidationError

	if p.Target.Variant == 0 {
		errs.Add("target", "no target selected")
	}
	if p.Target.Slice >= CCU8_NumSlices {
		errs.Add("target.slice", "slice "+itoa(int(p.Target.Slice))+" does not exist")
	}

	if p.Period == 0 {
		errs.Add("period", "must be non-zero")
	}
	if p.Compare > p.Period {
		errs.Add("compare", "compare "+itoa(int(p.Compare))+" exceeds period "+itoa(int(p.Period)))
	}

	if p.Slice.PrescalerInitVal > CCU8_NibbleMax {
		errs.Add("slice.prescaler", "divider exponent must fit 4 bits")
	}
	if p.Slice.FloatLimit > CCU8_NibbleMax {
		errs.Add("slice.float_limit", "must fit 4 bits")
	}
	if p.Slice.DitherLimit > CCU8_NibbleMax {
		errs.Add("slice.dither_limit", "must fit 4 bits")
	}
	if p.Slice.SliceStatus > StatusChannel1And2 {
		errs.Add("slice.status", "unknown status channel")
	}

	p.validateDeadTime(&errs)
	p.validatePin(&errs, "direct_pin", p.Target.Direct, p.DirectPin, false)
	p.validatePin(&errs, "inverted_pin", p.Target.Inverted, p.InvertedPin, true)

	return errs.Aggregate()
}

func (p *Plan) validateDeadTime(errs *ValidationError) {
	dt := &p.DeadTime
	if dt.Div > DeadTimeDiv8 {
		errs.Add("dead_time.div", "unknown divider")
	}
	if dt.EnableChannel2 {
		errs.Add("dead_time.channel2", "channel 2 has no compare value in this plan")
	}
	if !dt.EnableChannel1 || p.Period == 0 || p.Compare > p.Period {
		return
	}

	// The dead time must fit inside both the active and the passive phase,
	// otherwise one output never turns on and the notch swallows the edge.
	limit := uint32(min(p.Compare, p.Period-p.Compare))
	div := dt.Div.Factor()
	check := func(field string, enabled bool, counter uint8) {
		if !enabled {
			return
		}
		ticks := uint32(counter) * div
		switch {
		case counter == 0:
			errs.Add(field, "must be positive")
		case ticks >= limit:
			errs.Add(field, utoa(ticks)+" ticks must be below min(compare, period-compare) = "+utoa(limit))
		}
	}
	check("dead_time.channel1_rising", dt.Channel1STPath, dt.Channel1RisingEdge)
	check("dead_time.channel1_falling", dt.Channel1InvSTPath, dt.Channel1FallingEdge)
}

// validatePin checks that cfg routes the wanted slice output to ref: a slice
// output of channel 1 fed by the direct (inverted == false) or the inverted path.
func (p *Plan) validatePin(errs *ValidationError, field string, ref PinRef, cfg GPIOPinConfig, inverted bool) {
	if !cfg.Mode.IsOutput() || cfg.Mode.Alt() == 0 {
		errs.Add(field, ref.String()+" mode "+cfg.Mode.String()+" does not select an alternate output")
		return
	}
	f, ok := p.Target.PinFunc(ref, cfg.Mode.Alt())
	if !ok {
		errs.Add(field, ref.String()+" has no alternate function "+itoa(int(cfg.Mode.Alt())))
		return
	}
	if f.Slice != p.Target.Slice {
		errs.Add(field, ref.String()+" "+string(f.Name)+" belongs to slice "+itoa(int(f.Slice))+
			", not slice "+itoa(int(p.Target.Slice)))
		return
	}
	if f.Output > 1 {
		errs.Add(field, string(f.Name)+" is a channel 2 output")
		return
	}
	if p.Slice.InvertOut[f.Output] != inverted {
		errs.Add(field, string(f.Name)+" is not fed by the "+pathName(inverted)+" path")
	}
}

func pathName(inverted bool) string {
	if inverted {
		return "inverted"
	}
	return "direct"
}

// Timing returns the timing the plan produces on its target
func (p *Plan) Timing() Timing {
	return Timing{
		ModuleFreq:    p.Target.ModuleFreq,
		Prescaler:     p.Slice.PrescalerInitVal,
		CenterAligned: p.Slice.TimerMode == TimerCountCenterAligned,
		Period:        p.Period,
		Compare:       p.Compare,
		DeadRising:    deadTicks(p.DeadTime.EnableChannel1 && p.DeadTime.Channel1STPath, p.DeadTime.Channel1RisingEdge),
		DeadFalling:   deadTicks(p.DeadTime.EnableChannel1 && p.DeadTime.Channel1InvSTPath, p.DeadTime.Channel1FallingEdge),
		DeadDiv:       p.DeadTime.Div.Factor(),
	}
}

func deadTicks(enabled bool, counter uint8) uint8 {
	if !enabled {
		return 0
	}
	return counter
}
