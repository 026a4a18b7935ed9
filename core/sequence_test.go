package core

import (
	"errors"
	"strings"
	"testing"
)

func newTestSequencer(t *testing.T, v Variant) (*memBus, *Sequencer) {
	t.Helper()
	p, err := DefaultPlan(v)
	if err != nil {
		t.Fatal(err)
	}
	bus := newMemBus()
	return bus, NewSequencer(bus, &p, Options{})
}

func TestSequencerStates(t *testing.T) {
	_, seq := newTestSequencer(t, VariantXMC14)

	want := map[Step]SliceState{
		StepBoardInit:      StateUnclocked,
		StepModuleClock:    StateUnclocked,
		StepModuleInit:     StateUnclocked,
		StepStartPrescaler: StateUnclocked,
		StepSliceClock:     StateIdle,
		StepCompareInit:    StateConfigured,
		StepPeriodMatch:    StateConfigured,
		StepCompareMatch:   StateArmed,
		StepDirectPin:      StateArmed,
		StepInvertedPin:    StateArmed,
		StepShadowTransfer: StateArmed,
		StepDeadTime:       StateArmed,
		StepStartTimer:     StateRunning,
	}
	for _, step := range Sequence {
		if err := seq.Do(step); err != nil {
			t.Fatalf("%v: %v", step, err)
		}
		if got := seq.State(); got != want[step] {
			t.Errorf("after %v: state %v, want %v", step, got, want[step])
		}
		switch step {
		case StepPeriodMatch, StepCompareMatch:
			if !seq.ShadowPending() {
				t.Errorf("after %v: shadow transfer should be pending", step)
			}
		case StepShadowTransfer:
			if seq.ShadowPending() {
				t.Error("shadow transfer still pending after commit")
			}
		}
	}
	if len(seq.Steps()) != len(Sequence) {
		t.Errorf("completed %d steps, want %d", len(seq.Steps()), len(Sequence))
	}
}

func TestSequencerOutOfOrder(t *testing.T) {
	tests := []struct {
		name  string
		done  []Step
		step  Step
		state SliceState
	}{
		{"timer before anything", nil, StepStartTimer, StateUnclocked},
		{"module before board", nil, StepModuleClock, StateUnclocked},
		{"slice clock before prescaler", []Step{StepBoardInit, StepModuleClock, StepModuleInit}, StepSliceClock, StateUnclocked},
		{"compare on unclocked slice", []Step{StepBoardInit, StepModuleClock}, StepCompareInit, StateUnclocked},
		{"period before compare init", []Step{StepBoardInit, StepModuleClock, StepModuleInit, StepStartPrescaler, StepSliceClock}, StepPeriodMatch, StateIdle},
		{"transfer before compare value", []Step{
			StepBoardInit, StepModuleClock, StepModuleInit, StepStartPrescaler, StepSliceClock, StepCompareInit, StepPeriodMatch,
		}, StepShadowTransfer, StateConfigured},
		{"dead time before transfer", []Step{
			StepBoardInit, StepModuleClock, StepModuleInit, StepStartPrescaler, StepSliceClock, StepCompareInit, StepPeriodMatch, StepCompareMatch,
		}, StepDeadTime, StateArmed},
		{"timer without pins", []Step{
			StepBoardInit, StepModuleClock, StepModuleInit, StepStartPrescaler, StepSliceClock, StepCompareInit,
			StepPeriodMatch, StepCompareMatch, StepShadowTransfer, StepDeadTime,
		}, StepStartTimer, StateArmed},
		{"step twice", []Step{StepBoardInit}, StepBoardInit, StateUnclocked},
		{"after running", Sequence, StepPeriodMatch, StateRunning},
		{"unknown step", nil, numSteps, StateUnclocked},
	}

	for _, tt := range tests {
		bus, seq := newTestSequencer(t, VariantXMC14)
		for _, s := range tt.done {
			if err := seq.Do(s); err != nil {
				t.Fatalf("%s: setup step %v: %v", tt.name, s, err)
			}
		}
		stores := len(bus.stores)

		err := seq.Do(tt.step)
		if !errors.Is(err, ErrOutOfOrder) {
			t.Errorf("%s: expected ErrOutOfOrder, got %v", tt.name, err)
			continue
		}
		var serr *StepError
		if !errors.As(err, &serr) || serr.Step != tt.step || serr.State != tt.state {
			t.Errorf("%s: unexpected error detail %v", tt.name, err)
		}
		if len(bus.stores) != stores {
			t.Errorf("%s: refused step wrote registers", tt.name)
		}
	}
}

func TestSequencerPinsBeforeClock(t *testing.T) {
	// Pins only need the board; they may be bound before the module runs
	_, seq := newTestSequencer(t, VariantXMC47)
	for _, s := range []Step{StepBoardInit, StepInvertedPin, StepDirectPin} {
		if err := seq.Do(s); err != nil {
			t.Errorf("%v: %v", s, err)
		}
	}
}

func TestBringupDebugLines(t *testing.T) {
	p, _ := DefaultPlan(VariantXMC14)
	var lines []string
	res, err := Bringup(newMemBus(), p, Options{Debug: func(s string) { lines = append(lines, s) }})
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != len(Sequence) {
		t.Fatalf("expected %d debug lines, got %d", len(Sequence), len(lines))
	}
	if lines[len(lines)-1] != "[PWM] start_timer -> running" {
		t.Errorf("last line %q", lines[len(lines)-1])
	}
	if res.State != StateRunning {
		t.Errorf("state %v", res.State)
	}
	if res.Timing.Period != 720 {
		t.Errorf("timing not filled in: %+v", res.Timing)
	}
}

func TestBringupRejectsInvalidPlan(t *testing.T) {
	p, _ := DefaultPlan(VariantXMC14)
	p.Compare = 1000
	bus := newMemBus()
	res, err := Bringup(bus, p, Options{})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if res != nil || len(bus.stores) != 0 {
		t.Error("invalid plan reached the hardware")
	}
}

func TestBringupBoardInitFailure(t *testing.T) {
	p, _ := DefaultPlan(VariantXMC47)
	bus := newMemBus()
	cause := errors.New("clock tree not locked")
	res, err := Bringup(bus, p, Options{BoardInit: func() error { return cause }})

	if !errors.Is(err, ErrBoardInit) || !errors.Is(err, cause) {
		t.Fatalf("expected board init error wrapping the cause, got %v", err)
	}
	if !strings.Contains(err.Error(), "clock tree not locked") {
		t.Errorf("cause missing from %q", err.Error())
	}
	if len(bus.stores) != 0 {
		t.Errorf("%d registers written after board init failure", len(bus.stores))
	}
	if res.State != StateUnclocked || len(res.Steps) != 0 {
		t.Errorf("result %+v", res)
	}
}

func TestBringupWriteOrder(t *testing.T) {
	p, _ := DefaultPlan(VariantXMC14)
	bus := newMemBus()
	if _, err := Bringup(bus, p, Options{}); err != nil {
		t.Fatal(err)
	}

	first := func(addr uintptr) int {
		for i, s := range bus.stores {
			if s.addr == addr {
				return i
			}
		}
		t.Fatalf("no store to %s", hex32(uint32(addr)))
		return -1
	}
	tgt := p.Target
	sb := SliceBase(tgt.ModuleBase, tgt.Slice)
	order := []uintptr{
		tgt.ModuleClock.GateAddr,
		tgt.ModuleBase + CCU8_GIDLC,
		sb + CC8_TC,
		sb + CC8_PRS,
		sb + CC8_CR1S,
		tgt.PortBase + PORT_OMR,
		tgt.ModuleBase + CCU8_GCSS,
		sb + CC8_DTC,
		sb + CC8_TCSET,
	}
	for i := 1; i < len(order); i++ {
		if first(order[i-1]) >= first(order[i]) {
			t.Errorf("%s written after %s", hex32(uint32(order[i-1])), hex32(uint32(order[i])))
		}
	}
	if got := bus.storedAt(tgt.ModuleBase + CCU8_GCSS); len(got) != 1 || got[0] != ShadowTransferSlice0 {
		t.Errorf("GCSS writes %v", got)
	}
}

func TestStepNames(t *testing.T) {
	if StepDeadTime.String() != "dead_time" || numSteps.String() != "step(13)" {
		t.Errorf("step names: %s %s", StepDeadTime, numSteps)
	}
	if StateArmed.String() != "armed" || SliceState(9).String() != "state(9)" {
		t.Errorf("state names: %s %s", StateArmed, SliceState(9))
	}
}
