package core

// TimerCountMode selects edge or center aligned counting
type TimerCountMode uint8

const (
	TimerCountEdgeAligned   TimerCountMode = 0
	TimerCountCenterAligned TimerCountMode = 1
)

// TimerRepeatMode selects free running or single shot operation
type TimerRepeatMode uint8

const (
	TimerRepeat     TimerRepeatMode = 0
	TimerSingleShot TimerRepeatMode = 1
)

// PrescalerMode selects the normal or floating prescaler
type PrescalerMode uint8

const (
	PrescalerNormal   PrescalerMode = 0
	PrescalerFloating PrescalerMode = 1
)

// PassiveLevel is the level an output takes while its signal is passive
// (timer idle or inside a dead time window)
type PassiveLevel uint8

const (
	PassiveLow  PassiveLevel = 0
	PassiveHigh PassiveLevel = 1
)

// StatusChannel selects which compare channel drives the slice status output
type StatusChannel uint8

const (
	StatusChannel1     StatusChannel = 0
	StatusChannel2     StatusChannel = 1
	StatusChannel1And2 StatusChannel = 2
)

// CompareChannel identifies one of the two compare channels of a slice
type CompareChannel uint8

const (
	CompareChannel1 CompareChannel = 1
	CompareChannel2 CompareChannel = 2
)

// ClockSource is the prescaler input clock of the module
type ClockSource uint8

const (
	ClockSCU        ClockSource = 0 // fCCU from the system control unit
	ClockExternalP  ClockSource = 1
	ClockExternalF  ClockSource = 2
	ClockExternalFP ClockSource = 3
)

// MCMSAction selects which shadow transfers a multi channel pattern update triggers
type MCMSAction uint8

const (
	MCMSTransferPRCR      MCMSAction = 0 // period and compare
	MCMSTransferPRCRPM    MCMSAction = 1 // period, compare and prescaler
	MCMSTransferPRCRPMDIT MCMSAction = 3 // period, compare, prescaler and dither
)

// DeadTimeDivider is the dead time counter clock divider
type DeadTimeDivider uint8

const (
	DeadTimeDiv1 DeadTimeDivider = 0
	DeadTimeDiv2 DeadTimeDivider = 1
	DeadTimeDiv4 DeadTimeDivider = 2
	DeadTimeDiv8 DeadTimeDivider = 3
)

// Factor returns the division factor (1, 2, 4 or 8)
func (d DeadTimeDivider) Factor() uint32 {
	return 1 << (d & 0x3)
}

// SliceCompareConfig is the compare mode configuration of one CCU8 slice
type SliceCompareConfig struct {
	TimerMode       TimerCountMode
	Monoshot        TimerRepeatMode
	ShadowXferClear bool // shadow transfer on timer clear

	DitherTimerPeriod bool
	DitherDutyCycle   bool

	PrescalerMode PrescalerMode

	MCMCh1Enable bool // multi channel mode, channel 1
	MCMCh2Enable bool // multi channel mode, channel 2

	SliceStatus StatusChannel

	PassiveLevel [4]PassiveLevel // OUTy0..OUTy3

	AsymmetricPWM bool

	// InvertOut[k] connects OUTyk to the inverted status path of its channel
	InvertOut [4]bool

	PrescalerInitVal   uint8 // timer clock = fCCU / 2^PrescalerInitVal
	FloatLimit         uint8
	DitherLimit        uint8
	TimerConcatenation bool
}

// DefaultSliceConfig returns the compare configuration that generates
// complementary PWM on OUTy0 (direct) and OUTy1 (inverted).
func DefaultSliceConfig() SliceCompareConfig {
	return SliceCompareConfig{
		TimerMode:     TimerCountEdgeAligned,
		Monoshot:      TimerRepeat,
		PrescalerMode: PrescalerNormal,
		SliceStatus:   StatusChannel1,
		PassiveLevel:  [4]PassiveLevel{PassiveLow, PassiveLow, PassiveLow, PassiveLow},
		AsymmetricPWM: false,
		InvertOut:     [4]bool{false, true, false, true},

		PrescalerInitVal: 1,
	}
}

// DeadTimeConfig is the dead time generator configuration of one slice
type DeadTimeConfig struct {
	EnableChannel1 bool
	EnableChannel2 bool

	Channel1STPath    bool // dead time on the direct path of channel 1
	Channel1InvSTPath bool // dead time on the inverted path of channel 1
	Channel2STPath    bool
	Channel2InvSTPath bool

	Div DeadTimeDivider

	// Edge counters in dead time clock ticks
	Channel1RisingEdge  uint8
	Channel1FallingEdge uint8
	Channel2RisingEdge  uint8
	Channel2FallingEdge uint8
}

// DefaultDeadTime returns 22 ticks of dead time on both edges of channel 1.
func DefaultDeadTime() DeadTimeConfig {
	return DeadTimeConfig{
		EnableChannel1:      true,
		Channel1STPath:      true,
		Channel1InvSTPath:   true,
		Div:                 DeadTimeDiv1,
		Channel1RisingEdge:  22,
		Channel1FallingEdge: 22,
	}
}

// Register images of the records

// tc encodes the TC register value.
func (c *SliceCompareConfig) tc() uint32 {
	var v uint32
	if c.TimerMode == TimerCountCenterAligned {
		v |= TC_TCM
	}
	if c.Monoshot == TimerSingleShot {
		v |= TC_TSSM
	}
	if c.ShadowXferClear {
		v |= TC_CLST
	}
	if c.DitherTimerPeriod {
		v |= TC_DITHE_Period
	}
	if c.DitherDutyCycle {
		v |= TC_DITHE_Duty
	}
	if c.PrescalerMode == PrescalerFloating {
		v |= TC_FPE
	}
	if c.MCMCh1Enable {
		v |= TC_MCME1
	}
	if c.MCMCh2Enable {
		v |= TC_MCME2
	}
	v |= uint32(c.SliceStatus) << TC_STOS_Pos & TC_STOS_Msk
	return v
}

// psl encodes the PSL register value.
func (c *SliceCompareConfig) psl() uint32 {
	var v uint32
	for i, l := range c.PassiveLevel {
		if l == PassiveHigh {
			v |= 1 << i
		}
	}
	return v
}

// chc encodes the CHC register value.
func (c *SliceCompareConfig) chc() uint32 {
	var v uint32
	if c.AsymmetricPWM {
		v |= CHC_ASE
	}
	for i, inv := range c.InvertOut {
		if inv {
			v |= 1 << (CHC_OCS1_Pos + i)
		}
	}
	return v
}

// dtc encodes the DTC register value.
func (d *DeadTimeConfig) dtc() uint32 {
	var v uint32
	if d.EnableChannel1 {
		v |= DTC_DTE1
	}
	if d.EnableChannel2 {
		v |= DTC_DTE2
	}
	if d.Channel1STPath {
		v |= DTC_DCEN1
	}
	if d.Channel1InvSTPath {
		v |= DTC_DCEN2
	}
	if d.Channel2STPath {
		v |= DTC_DCEN3
	}
	if d.Channel2InvSTPath {
		v |= DTC_DCEN4
	}
	v |= uint32(d.Div) << DTC_DTCC_Pos & DTC_DTCC_Msk
	return v
}

func dcr(rising, falling uint8) uint32 {
	return uint32(rising)<<DCR_DTR_Pos | uint32(falling)<<DCR_DTF_Pos
}
