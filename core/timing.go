package core

import (
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Timing derives the output timing of a slice from its clock and register values.
//
// The timer clock is fCCU / 2^Prescaler. In edge aligned mode one PWM period
// lasts Period ticks; the direct output is active for Compare ticks and
// passive for Period-Compare ticks. Center aligned mode doubles both phases.
// Dead time counters tick at timer clock / DeadDiv.
type Timing struct {
	ModuleFreq    physic.Frequency
	Prescaler     uint8
	CenterAligned bool

	Period  uint16
	Compare uint16

	DeadRising  uint8 // 0 when the direct path has no dead time
	DeadFalling uint8 // 0 when the inverted path has no dead time
	DeadDiv     uint32
}

// TimerClock returns the prescaled counter clock
func (t Timing) TimerClock() physic.Frequency {
	return t.ModuleFreq >> (t.Prescaler & CCU8_NibbleMax)
}

func (t Timing) factor() uint32 {
	if t.CenterAligned {
		return 2
	}
	return 1
}

// PeriodTicks returns the length of one PWM period in timer ticks
func (t Timing) PeriodTicks() uint32 {
	return uint32(t.Period) * t.factor()
}

// HighTicks returns the nominal active phase of the direct output
func (t Timing) HighTicks() uint32 {
	return uint32(min(t.Compare, t.Period)) * t.factor()
}

// LowTicks returns the nominal passive phase of the direct output
func (t Timing) LowTicks() uint32 {
	return t.PeriodTicks() - t.HighTicks()
}

// DeadRisingTicks returns the rising edge dead time in timer ticks
func (t Timing) DeadRisingTicks() uint32 {
	return uint32(t.DeadRising) * t.deadDiv()
}

// DeadFallingTicks returns the falling edge dead time in timer ticks
func (t Timing) DeadFallingTicks() uint32 {
	return uint32(t.DeadFalling) * t.deadDiv()
}

func (t Timing) deadDiv() uint32 {
	if t.DeadDiv == 0 {
		return 1
	}
	return t.DeadDiv
}

// Ticks converts timer ticks to a duration
func (t Timing) Ticks(n uint32) time.Duration {
	hz := int64(t.TimerClock() / physic.Hertz)
	if hz == 0 {
		return 0
	}
	return time.Duration(int64(n) * int64(time.Second) / hz)
}

// PWMFrequency returns the output frequency
func (t Timing) PWMFrequency() physic.Frequency {
	p := t.PeriodTicks()
	if p == 0 {
		return 0
	}
	return t.TimerClock() / physic.Frequency(p)
}

// HighTime is Compare / f_timer
func (t Timing) HighTime() time.Duration { return t.Ticks(t.HighTicks()) }

// LowTime is (Period - Compare) / f_timer
func (t Timing) LowTime() time.Duration { return t.Ticks(t.LowTicks()) }

// DeadTimeRising is the rising edge counter / (f_timer / div)
func (t Timing) DeadTimeRising() time.Duration { return t.Ticks(t.DeadRisingTicks()) }

// DeadTimeFalling is the falling edge counter / (f_timer / div)
func (t Timing) DeadTimeFalling() time.Duration { return t.Ticks(t.DeadFallingTicks()) }

// Duty returns the nominal duty cycle of the direct output
func (t Timing) Duty() gpio.Duty {
	p := t.PeriodTicks()
	if p == 0 {
		return 0
	}
	return gpio.Duty(uint64(t.HighTicks()) * uint64(gpio.DutyMax) / uint64(p))
}

// String renders a one-line summary, for debug output
func (t Timing) String() string {
	return "f_pwm=" + t.PWMFrequency().String() +
		" duty=" + t.Duty().String() +
		" high=" + t.HighTime().String() +
		" low=" + t.LowTime().String() +
		" dead=" + t.DeadTimeRising().String() + "/" + t.DeadTimeFalling().String()
}
