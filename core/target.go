package core

import (
	"slices"
	"strconv"
	"strings"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/pin"
)

// Variant selects one of the supported boards. The set is closed.
type Variant uint8

const (
	VariantXMC14 Variant = iota + 1 // XMC1400 boot kit: CCU80 slice 0, P0.0 / P0.1
	VariantXMC47                    // XMC4700 relax kit: CCU80 slice 2, P0.3 / P0.0
)

// Variants lists every supported variant
var Variants = []Variant{VariantXMC14, VariantXMC47}

func (v Variant) String() string {
	switch v {
	case VariantXMC14:
		return "xmc1400"
	case VariantXMC47:
		return "xmc4700"
	default:
		return "variant(" + itoa(int(v)) + ")"
	}
}

// ParseVariant maps a build tag style name ("xmc1400", "xmc4700", or the
// short "xmc14" / "xmc47") to a Variant.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "xmc1400", "xmc14":
		return VariantXMC14, nil
	case "xmc4700", "xmc47":
		return VariantXMC47, nil
	}
	return 0, &unknownVariantError{name: strconv.Quote(s)}
}

// PinFunc is one entry of a port pin's alternate output function table:
// selecting Alt on Pin routes CCU8 slice output OUT<Slice><Output> to the pad.
type PinFunc struct {
	Pin    PinRef
	Alt    uint8
	Slice  uint8
	Output uint8 // 0..3 for OUTy0..OUTy3
	Name   pin.Func
}

// Target describes everything that differs between the supported boards.
type Target struct {
	Variant Variant
	Name    string

	// Chip family code expected in SCU IDCHIP[19:12]
	ChipFamily uint8
	IDChipAddr uintptr

	// fCCU, the CCU8 module clock
	ModuleFreq physic.Frequency

	ModuleBase  uintptr
	ModuleClock ModuleClock
	Slice       uint8
	ShadowMask  uint32

	CompareChannel CompareChannel
	StatusChannel  StatusChannel

	PortBase uintptr // the port both PWM pins live on
	Pad      PadKind

	Direct    PinRef // carries OUTy0
	Inverted  PinRef // carries OUTy1
	PinConfig GPIOPinConfig

	PinFuncs []PinFunc
}

// PinFunc returns the alternate function entry for p with alternate function alt.
func (t *Target) PinFunc(p PinRef, alt uint8) (PinFunc, bool) {
	for _, f := range t.PinFuncs {
		if f.Pin == p && f.Alt == alt {
			return f, true
		}
	}
	return PinFunc{}, false
}

var targets = map[Variant]Target{
	VariantXMC14: {
		Variant:    VariantXMC14,
		Name:       "XMC1400 Boot Kit",
		ChipFamily: 0x14,
		IDChipAddr: SCUGeneralBaseXMC1 + SCU_IDCHIP,
		ModuleFreq: 96 * physic.MegaHertz, // PCLK = 2 x MCLK (48 MHz)
		ModuleBase: CCU80BaseXMC1,
		ModuleClock: ModuleClock{
			LockAddr: SCUGeneralBaseXMC1 + SCU_PASSWD,
			GateAddr: SCUClockBaseXMC1 + SCU_CGATCLR0,
			GateMask: SCU_CGATCLR0_CCU80,
		},
		Slice:          0,
		ShadowMask:     ShadowTransferSlice0,
		CompareChannel: CompareChannel1,
		StatusChannel:  StatusChannel1,
		PortBase:       PORT0BaseXMC1,
		Pad:            PadHysteresis,
		Direct:         PinRef{Port: 0, Pin: 0},
		Inverted:       PinRef{Port: 0, Pin: 1},
		PinConfig: GPIOPinConfig{
			Mode:            PushPullAlt(5),
			OutputLevel:     OutputLow,
			InputHysteresis: HysteresisStandard,
		},
		PinFuncs: []PinFunc{
			{Pin: PinRef{0, 0}, Alt: 5, Slice: 0, Output: 0, Name: "CCU80.OUT00"},
			{Pin: PinRef{0, 1}, Alt: 5, Slice: 0, Output: 1, Name: "CCU80.OUT01"},
			{Pin: PinRef{0, 2}, Alt: 5, Slice: 0, Output: 2, Name: "CCU80.OUT02"},
			{Pin: PinRef{0, 3}, Alt: 5, Slice: 0, Output: 3, Name: "CCU80.OUT03"},
			{Pin: PinRef{0, 4}, Alt: 5, Slice: 1, Output: 0, Name: "CCU80.OUT10"},
			{Pin: PinRef{0, 5}, Alt: 5, Slice: 1, Output: 1, Name: "CCU80.OUT11"},
		},
	},
	VariantXMC47: {
		Variant:    VariantXMC47,
		Name:       "XMC4700 Relax Kit",
		ChipFamily: 0x47,
		IDChipAddr: SCUGeneralBaseXMC4 + SCU_IDCHIP,
		ModuleFreq: 144 * physic.MegaHertz,
		ModuleBase: CCU80BaseXMC4,
		ModuleClock: ModuleClock{
			GateAddr:  SCUClockBaseXMC4 + SCU_CLKSET,
			GateMask:  SCU_CLKSET_CCUCEN,
			ResetAddr: SCUResetBaseXMC4 + SCU_PRCLR0,
			ResetMask: SCU_PRCLR0_CCU80RS,
		},
		Slice:          2,
		ShadowMask:     ShadowTransferSlice2,
		CompareChannel: CompareChannel1,
		StatusChannel:  StatusChannel1,
		PortBase:       PORT0BaseXMC4,
		Pad:            PadDriver,
		Direct:         PinRef{Port: 0, Pin: 3},
		Inverted:       PinRef{Port: 0, Pin: 0},
		PinConfig: GPIOPinConfig{
			Mode:           PushPullAlt(3),
			OutputLevel:    OutputLow,
			OutputStrength: StrengthMedium,
		},
		PinFuncs: []PinFunc{
			{Pin: PinRef{0, 0}, Alt: 3, Slice: 2, Output: 1, Name: "CCU80.OUT21"},
			{Pin: PinRef{0, 1}, Alt: 3, Slice: 1, Output: 1, Name: "CCU80.OUT11"},
			{Pin: PinRef{0, 2}, Alt: 3, Slice: 1, Output: 0, Name: "CCU80.OUT10"},
			{Pin: PinRef{0, 3}, Alt: 3, Slice: 2, Output: 0, Name: "CCU80.OUT20"},
			{Pin: PinRef{0, 4}, Alt: 3, Slice: 1, Output: 2, Name: "CCU80.OUT12"},
			{Pin: PinRef{0, 5}, Alt: 3, Slice: 1, Output: 3, Name: "CCU80.OUT13"},
		},
	},
}

// TargetFor returns the descriptor of a variant
func TargetFor(v Variant) (Target, error) {
	t, ok := targets[v]
	if !ok {
		return Target{}, &unknownVariantError{name: v.String()}
	}
	t.PinFuncs = slices.Clone(t.PinFuncs)
	return t, nil
}

// MustTarget returns the descriptor of a variant or panics.
// Firmware uses it with the compiled-in variant.
func MustTarget(v Variant) Target {
	t, err := TargetFor(v)
	if err != nil {
		panic(err)
	}
	return t
}
