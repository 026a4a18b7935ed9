package core

import "strconv"

// GPIOMode is the pin control value written to the pin's IOCR byte.
// Bit 7 selects output, bit 6 selects open drain, bits 5..3 select the
// input characteristic or, for outputs, the alternate function.
type GPIOMode uint8

const (
	ModeInputTristate   GPIOMode = 0x00
	ModeInputPullDown   GPIOMode = 0x08
	ModeInputPullUp     GPIOMode = 0x10
	ModeOutputPushPull  GPIOMode = 0x80
	ModeOutputOpenDrain GPIOMode = 0xC0
	modeOutputFlag      GPIOMode = 0x80
	modeAltShift                 = 3
	modeAltMask         GPIOMode = 0x7 << modeAltShift
)

// PushPullAlt returns the push-pull output mode bound to alternate function n (1..7)
func PushPullAlt(n uint8) GPIOMode {
	return ModeOutputPushPull | GPIOMode(n&0x7)<<modeAltShift
}

// IsOutput reports whether the mode drives the pad
func (m GPIOMode) IsOutput() bool {
	return m&modeOutputFlag != 0
}

// Alt returns the alternate output function, 0 for plain GPIO or inputs
func (m GPIOMode) Alt() uint8 {
	if !m.IsOutput() {
		return 0
	}
	return uint8((m & modeAltMask) >> modeAltShift)
}

func (m GPIOMode) String() string {
	switch {
	case !m.IsOutput():
		return "input(0x" + strconv.FormatUint(uint64(m), 16) + ")"
	case m.Alt() == 0:
		return "output"
	default:
		return "output-alt" + strconv.Itoa(int(m.Alt()))
	}
}

// OutputLevel is the initial level of an output pin, encoded as the OMR
// value for pin 0 (set bit or reset bit)
type OutputLevel uint32

const (
	OutputLow  OutputLevel = 1 << PORT_OMR_PR_Pos
	OutputHigh OutputLevel = 1
)

// InputHysteresis selects the pad hysteresis class (XMC1 devices)
type InputHysteresis uint8

const (
	HysteresisStandard InputHysteresis = 0x0
	HysteresisLarge    InputHysteresis = 0x4
)

// OutputStrength selects the pad driver class (XMC4 devices)
type OutputStrength uint8

const (
	StrengthStrongSharpEdge  OutputStrength = 0x0
	StrengthStrongMediumEdge OutputStrength = 0x1
	StrengthStrongSoftEdge   OutputStrength = 0x2
	StrengthStrongSlowEdge   OutputStrength = 0x3
	StrengthMedium           OutputStrength = 0x4
	StrengthMediumUnaffected OutputStrength = 0x5
	StrengthWeak             OutputStrength = 0x7
)

// GPIOPinConfig is the configuration of one port pin
type GPIOPinConfig struct {
	Mode            GPIOMode
	OutputLevel     OutputLevel
	InputHysteresis InputHysteresis // used when the port has PHCR registers
	OutputStrength  OutputStrength  // used when the port has PDR registers
}

// PadKind tells which pad control register family a port has
type PadKind uint8

const (
	PadHysteresis PadKind = iota // XMC1 PHCR
	PadDriver                    // XMC4 PDR
)

// PinRef identifies a port pin
type PinRef struct {
	Port uint8
	Pin  uint8
}

func (p PinRef) String() string {
	return "P" + strconv.Itoa(int(p.Port)) + "." + strconv.Itoa(int(p.Pin))
}

// GPIOPort drives the registers of one port
type GPIOPort struct {
	bus  Bus
	base uintptr
	pad  PadKind
}

// NewGPIOPort returns a driver for the port at base
func NewGPIOPort(bus Bus, base uintptr, pad PadKind) *GPIOPort {
	return &GPIOPort{bus: bus, base: base, pad: pad}
}

// Base returns the port base address
func (p *GPIOPort) Base() uintptr {
	return p.base
}

// Init configures pin. The pin is first returned to input so that the pad
// settings and the initial output level are in place before the output
// driver (and its alternate function) is connected.
func (p *GPIOPort) Init(pin uint8, cfg GPIOPinConfig) {
	iocr := p.base + PORT_IOCR0 + uintptr(pin/PORT_PinsPerIOCR)*4
	iocrShift := 8 * uint32(pin%PORT_PinsPerIOCR)

	// Back to input tristate
	clearBits(p.bus, iocr, PORT_IOCR_PC_Msk<<iocrShift)

	padReg := p.base + PORT_PDR0 + uintptr(pin/PORT_PinsPerPDR)*4
	padShift := 4 * uint32(pin%PORT_PinsPerPDR)
	switch p.pad {
	case PadHysteresis:
		modify(p.bus, padReg, PORT_PHCR_Msk<<padShift, uint32(cfg.InputHysteresis)<<padShift)
	case PadDriver:
		if cfg.Mode.IsOutput() {
			modify(p.bus, padReg, PORT_PDR_PD_Msk<<padShift, uint32(cfg.OutputStrength)<<padShift)
		}
	}

	if cfg.Mode.IsOutput() {
		p.bus.Store(p.base+PORT_OMR, uint32(cfg.OutputLevel)<<pin)
	}

	setBits(p.bus, iocr, uint32(cfg.Mode)<<iocrShift)
}
