package core

import "testing"

func TestGPIOMode(t *testing.T) {
	tests := []struct {
		mode   GPIOMode
		output bool
		alt    uint8
		name   string
	}{
		{ModeInputTristate, false, 0, "input(0x0)"},
		{ModeInputPullUp, false, 0, "input(0x10)"},
		{ModeOutputPushPull, true, 0, "output"},
		{PushPullAlt(3), true, 3, "output-alt3"},
		{PushPullAlt(5), true, 5, "output-alt5"},
		{ModeOutputOpenDrain | 2<<3, true, 2, "output-alt2"},
	}
	for _, tt := range tests {
		if tt.mode.IsOutput() != tt.output || tt.mode.Alt() != tt.alt || tt.mode.String() != tt.name {
			t.Errorf("mode 0x%02X: output=%v alt=%d name=%s", uint8(tt.mode), tt.mode.IsOutput(), tt.mode.Alt(), tt.mode)
		}
	}
	if PushPullAlt(5) != 0xA8 {
		t.Errorf("ALT5 push-pull = 0x%02X, want 0xA8", uint8(PushPullAlt(5)))
	}
}

func TestGPIOInitXMC1(t *testing.T) {
	bus := newMemBus()
	base := uintptr(PORT0BaseXMC1)
	bus.regs[base+PORT_IOCR0] = 0x000000F8 // pin 0 left in some other mode
	port := NewGPIOPort(bus, base, PadHysteresis)

	port.Init(1, GPIOPinConfig{Mode: PushPullAlt(5), OutputLevel: OutputLow, InputHysteresis: HysteresisLarge})

	if got := bus.regs[base+PORT_IOCR0]; got != 0x0000A8F8 {
		t.Errorf("IOCR0 = %s, want 0x0000A8F8", hex32(got))
	}
	if got := bus.storedAt(base + PORT_OMR); len(got) != 1 || got[0] != 1<<(16+1) {
		t.Errorf("OMR writes %v, want reset of pin 1", got)
	}
	if got := bus.regs[base+PORT_PHCR0]; got != 0x40 {
		t.Errorf("PHCR0 = %s, want 0x00000040", hex32(got))
	}

	// the pad and the level are set while the pin is still an input
	iocr := bus.storedAt(base + PORT_IOCR0)
	if len(iocr) != 2 || iocr[0] != 0x000000F8 {
		t.Errorf("IOCR0 writes %v", iocr)
	}
	last := bus.stores[len(bus.stores)-1]
	if last.addr != base+PORT_IOCR0 {
		t.Errorf("last write to %s, want IOCR0", hex32(uint32(last.addr)))
	}
}

func TestGPIOInitXMC4(t *testing.T) {
	bus := newMemBus()
	base := uintptr(PORT0BaseXMC4)
	port := NewGPIOPort(bus, base, PadDriver)

	port.Init(3, GPIOPinConfig{Mode: PushPullAlt(3), OutputLevel: OutputHigh, OutputStrength: StrengthMedium})

	if got := bus.regs[base+PORT_IOCR0]; got != 0x98000000 {
		t.Errorf("IOCR0 = %s, want 0x98000000", hex32(got))
	}
	if got := bus.regs[base+PORT_PDR0]; got != 0x4000 {
		t.Errorf("PDR0 = %s, want 0x00004000", hex32(got))
	}
	if got := bus.regs[base+PORT_OMR]; got != 1<<3 {
		t.Errorf("OMR = %s, want set of pin 3", hex32(got))
	}

	// inputs leave the driver strength and the output alone
	bus = newMemBus()
	port = NewGPIOPort(bus, base, PadDriver)
	port.Init(5, GPIOPinConfig{Mode: ModeInputPullDown, OutputStrength: StrengthWeak})
	if len(bus.storedAt(base+PORT_PDR0)) != 0 || len(bus.storedAt(base+PORT_OMR)) != 0 {
		t.Error("input pin touched PDR or OMR")
	}
	if got := bus.regs[base+PORT_IOCR0+4]; got != 0x0800 {
		t.Errorf("IOCR4 = %s, want 0x00000800", hex32(got))
	}
}
