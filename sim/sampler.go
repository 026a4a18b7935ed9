package sim

import (
	"strings"

	"periph.io/x/conn/v3/gpio"

	"ccu8pwm/core"
)

// Sample is the state of the two PWM pins during one timer tick
type Sample struct {
	Tick     uint32
	ST       bool // status bit of the slice's compare channel 1
	Direct   gpio.Level
	Inverted gpio.Level
}

// Samples is a run of consecutive ticks
type Samples []Sample

// Sampler steps the running slices of a device tick by tick and reads the
// levels of the target's direct and inverted pins.
type Sampler struct {
	dev      *Device
	direct   core.PinRef
	inverted core.PinRef
	tick     uint32
}

// NewSampler returns a sampler for the target's PWM pins
func NewSampler(d *Device) *Sampler {
	return &Sampler{dev: d, direct: d.target.Direct, inverted: d.target.Inverted}
}

// Run advances n ticks and returns one sample per tick. Pending shadow
// transfers are applied when a period ends. A count below one samples
// nothing.
func (s *Sampler) Run(n int) Samples {
	if n < 1 {
		return nil
	}
	out := make(Samples, 0, n)
	slice := s.dev.target.Slice
	for i := 0; i < n; i++ {
		out = append(out, Sample{
			Tick:     s.tick,
			ST:       s.dev.status(slice, 0),
			Direct:   s.dev.PinLevel(s.direct),
			Inverted: s.dev.PinLevel(s.inverted),
		})
		for y := uint8(0); y < core.CCU8_NumSlices; y++ {
			s.dev.advance(y)
		}
		s.tick++
	}
	return out
}

// Period returns the length of one PWM period of the target slice, in ticks
func (s *Sampler) Period() uint32 {
	return s.dev.wave(s.dev.target.Slice, 0).period
}

// waveform of one compare channel: ST is high from start for high ticks,
// modulo period
type waveform struct {
	period uint32
	start  uint32
	high   uint32
}

func (d *Device) wave(y uint8, channel uint8) waveform {
	sb := core.SliceBase(d.target.ModuleBase, y)
	p := d.regs[sb+core.CC8_PR] & core.CCU8_TimerMax
	cr := d.regs[sb+core.CC8_CR1]
	if channel == 1 {
		cr = d.regs[sb+core.CC8_CR2]
	}
	c := min(cr&core.CCU8_TimerMax, p)
	if d.regs[sb+core.CC8_TC]&core.TC_TCM != 0 {
		return waveform{period: 2 * p, start: 2*p - c, high: 2 * c}
	}
	return waveform{period: p, start: 0, high: c}
}

// rel returns the ticks since ST last rose
func (w waveform) rel(phase uint32) uint32 {
	return (phase + w.period - w.start) % w.period
}

func (d *Device) status(y, channel uint8) bool {
	w := d.wave(y, channel)
	if w.period == 0 || !d.running(y) {
		return false
	}
	return w.rel(d.phase[y]) < w.high
}

// path returns the direct (inverted == false) or inverted dead time path
// of a compare channel
func (d *Device) path(y, channel uint8, inverted bool) bool {
	w := d.wave(y, channel)
	if w.period == 0 {
		return false
	}
	sb := core.SliceBase(d.target.ModuleBase, y)
	dtc := d.regs[sb+core.CC8_DTC]
	dcr := d.regs[sb+core.CC8_DC1R]
	enable, rising, falling := uint32(core.DTC_DTE1), uint32(core.DTC_DCEN1), uint32(core.DTC_DCEN2)
	if channel == 1 {
		dcr = d.regs[sb+core.CC8_DC2R]
		enable, rising, falling = core.DTC_DTE2, core.DTC_DCEN3, core.DTC_DCEN4
	}
	div := uint32(1) << ((dtc & core.DTC_DTCC_Msk) >> core.DTC_DTCC_Pos)
	var delayRise, delayFall uint32
	if dtc&enable != 0 {
		if dtc&rising != 0 {
			delayRise = (dcr >> core.DCR_DTR_Pos & core.DCR_Msk) * div
		}
		if dtc&falling != 0 {
			delayFall = (dcr >> core.DCR_DTF_Pos & core.DCR_Msk) * div
		}
	}

	r := w.rel(d.phase[y])
	if !inverted {
		if w.high == w.period {
			return true
		}
		return r >= delayRise && r < w.high
	}
	if w.high == 0 {
		return true
	}
	return r >= w.high+delayFall && r < w.period
}

// Output returns the level of slice output OUTyk
func (d *Device) Output(y, k uint8) gpio.Level {
	sb := core.SliceBase(d.target.ModuleBase, y)
	passiveHigh := d.regs[sb+core.CC8_PSL]&(1<<k) != 0
	if !d.running(y) {
		return gpio.Level(passiveHigh)
	}
	inverted := d.regs[sb+core.CC8_CHC]&(1<<(core.CHC_OCS1_Pos+uint32(k))) != 0
	active := d.path(y, k/2, inverted)
	return gpio.Level(active != passiveHigh)
}

// PinLevel returns the pad level of a pin of the target port. Pins bound
// to a CCU8 output follow that output; plain outputs follow the OUT
// register; inputs read low.
func (d *Device) PinLevel(p core.PinRef) gpio.Level {
	base := d.target.PortBase
	iocr := d.regs[base+core.PORT_IOCR0+uintptr(p.Pin/core.PORT_PinsPerIOCR)*4]
	mode := core.GPIOMode(iocr >> (8 * uint32(p.Pin%core.PORT_PinsPerIOCR)) & core.PORT_IOCR_PC_Msk)
	switch {
	case !mode.IsOutput():
		return gpio.Low
	case mode.Alt() == 0:
		return gpio.Level(d.regs[base+core.PORT_OUT]&(1<<p.Pin) != 0)
	}
	f, ok := d.target.PinFunc(p, mode.Alt())
	if !ok {
		return gpio.Low
	}
	return d.Output(f.Slice, f.Output)
}

// advance moves slice y one tick. Shadow transfers requested while the
// timer ran are applied when the count wraps at the end of the period.
func (d *Device) advance(y uint8) {
	if !d.running(y) {
		return
	}
	w := d.wave(y, 0)
	if w.period == 0 {
		return
	}
	d.phase[y] = (d.phase[y] + 1) % w.period
	d.regs[core.SliceBase(d.target.ModuleBase, y)+core.CC8_TIMER] = d.phase[y]
	if d.phase[y] == 0 && d.pending[y] != 0 {
		d.transfer(y, d.pending[y])
		d.pending[y] = 0
	}
}

// Measurement summarises a run of samples
type Measurement struct {
	Ticks        uint32
	DirectHigh   uint32
	InvertedHigh uint32
	Overlap      uint32   // both pins high
	Dead         uint32   // both pins low
	DeadWindows  []uint32 // lengths of the complete both-low runs
}

// Measure summarises the samples
func (ss Samples) Measure() Measurement {
	var m Measurement
	run := uint32(0)
	open := false // inside a both-low run whose start was sampled
	for i, s := range ss {
		m.Ticks++
		if s.Direct == gpio.High {
			m.DirectHigh++
		}
		if s.Inverted == gpio.High {
			m.InvertedHigh++
		}
		switch {
		case s.Direct == gpio.High && s.Inverted == gpio.High:
			m.Overlap++
		case s.Direct == gpio.Low && s.Inverted == gpio.Low:
			m.Dead++
			if run == 0 {
				open = i > 0
			}
			run++
			continue
		}
		if run > 0 && open {
			m.DeadWindows = append(m.DeadWindows, run)
		}
		run = 0
	}
	return m
}

// Render draws the two pins as two rows of text, one column per step ticks
func (ss Samples) Render(step int) string {
	if step < 1 {
		step = 1
	}
	var st, direct, inverted strings.Builder
	st.WriteString("ST  ")
	direct.WriteString("OUT ")
	inverted.WriteString("INV ")
	for i := 0; i < len(ss); i += step {
		s := ss[i]
		st.WriteByte(levelChar(gpio.Level(s.ST)))
		direct.WriteByte(levelChar(s.Direct))
		inverted.WriteByte(levelChar(s.Inverted))
	}
	return st.String() + "\n" + direct.String() + "\n" + inverted.String()
}

func levelChar(l gpio.Level) byte {
	if l == gpio.High {
		return '#'
	}
	return '_'
}
