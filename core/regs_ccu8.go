package core

// CCU8 Register Definitions
// Based on the XMC1400 / XMC4700 reference manuals, CCU8 chapter.

// CCU8 module base addresses
const (
	CCU80BaseXMC1 = 0x50000000 // XMC1400 CCU80
	CCU80BaseXMC4 = 0x40020000 // XMC4700 CCU80
)

// Offsets of the global (module) registers
const (
	CCU8_GCTRL = 0x00 // Global control
	CCU8_GSTAT = 0x04 // Global status
	CCU8_GIDLS = 0x08 // Global idle set
	CCU8_GIDLC = 0x0C // Global idle clear
	CCU8_GCSS  = 0x10 // Global channel set (shadow transfer request)
	CCU8_GCSC  = 0x14 // Global channel clear
	CCU8_GCST  = 0x18 // Global channel status
	CCU8_GPCHK = 0x1C // Parity checker
	CCU8_MIDR  = 0x80 // Module identification

	// Slice CC8y lives at module base + CCU8_SliceStride*(y+1)
	CCU8_SliceStride = 0x100
	CCU8_NumSlices   = 4
)

// Offsets of the slice (CC8y) registers
const (
	CC8_INS   = 0x00 // Input selector configuration
	CC8_CMC   = 0x04 // Connection matrix control
	CC8_TCST  = 0x08 // Timer run status (read only)
	CC8_TCSET = 0x0C // Timer run set
	CC8_TCCLR = 0x10 // Timer run clear
	CC8_TC    = 0x14 // Timer control
	CC8_PSL   = 0x18 // Passive level config
	CC8_DIT   = 0x1C // Dither config
	CC8_DITS  = 0x20 // Dither shadow
	CC8_PSC   = 0x24 // Prescaler control
	CC8_FPC   = 0x28 // Floating prescaler control
	CC8_FPCS  = 0x2C // Floating prescaler shadow
	CC8_PR    = 0x30 // Timer period value
	CC8_PRS   = 0x34 // Timer period shadow
	CC8_CR1   = 0x38 // Channel 1 compare value
	CC8_CR1S  = 0x3C // Channel 1 compare shadow
	CC8_CR2   = 0x40 // Channel 2 compare value
	CC8_CR2S  = 0x44 // Channel 2 compare shadow
	CC8_CHC   = 0x48 // Channel control
	CC8_DTC   = 0x4C // Dead time control
	CC8_DC1R  = 0x50 // Channel 1 dead time values
	CC8_DC2R  = 0x54 // Channel 2 dead time values
	CC8_TIMER = 0x70 // Timer value
	CC8_INTS  = 0xA0 // Interrupt status
	CC8_INTE  = 0xA4 // Interrupt enable
	CC8_SWS   = 0xAC // Interrupt status set
	CC8_SWR   = 0xB0 // Interrupt status clear
)

// GCTRL fields
const (
	GCTRL_PRBC_Pos   = 0 // Prescaler clear configuration
	GCTRL_PCIS_Pos   = 4 // Prescaler input clock selection
	GCTRL_PCIS_Msk   = 0x3 << GCTRL_PCIS_Pos
	GCTRL_SUSCFG_Pos = 8  // Suspend mode configuration
	GCTRL_MSDE_Pos   = 14 // Multi channel shadow transfer request configuration
	GCTRL_MSDE_Msk   = 0x3 << GCTRL_MSDE_Pos
)

// GSTAT / GIDLS / GIDLC fields
const (
	GSTAT_S0I = 1 << 0 // Slice 0 idle (one bit per slice)
	GSTAT_PRB = 1 << 8 // Prescaler run bit

	GIDLS_CPRB = 1 << 8 // Clear prescaler run bit
	GIDLS_PSIC = 1 << 9 // Prescaler clear

	GIDLC_SPRB = 1 << 8 // Set prescaler run bit
)

// GCSS fields, four bits per slice
const (
	GCSS_S0SE       = 1 << 0  // Slice 0 period/compare shadow transfer
	GCSS_S0DSE      = 1 << 1  // Slice 0 dither shadow transfer
	GCSS_S0PSE      = 1 << 2  // Slice 0 prescaler shadow transfer
	GCSS_S0ST1S     = 1 << 16 // Slice 0 status bit 1 set
	GCSS_SliceShift = 4

	// Shadow transfer masks as used by the slices of this firmware
	ShadowTransferSlice0 = GCSS_S0SE
	ShadowTransferSlice1 = GCSS_S0SE << (1 * GCSS_SliceShift)
	ShadowTransferSlice2 = GCSS_S0SE << (2 * GCSS_SliceShift)
	ShadowTransferSlice3 = GCSS_S0SE << (3 * GCSS_SliceShift)
)

// TC fields
const (
	TC_TCM          = 1 << 0 // Timer counting mode (0 edge aligned, 1 center aligned)
	TC_TSSM         = 1 << 1 // Single shot mode
	TC_CLST         = 1 << 2 // Shadow transfer on clear
	TC_DITHE_Pos    = 13     // Dither enable (bit 13 period, bit 14 duty)
	TC_DITHE_Period = 1 << 13
	TC_DITHE_Duty   = 1 << 14
	TC_FPE          = 1 << 16 // Floating prescaler enable
	TC_MCME1        = 1 << 25 // Multi channel mode enable, channel 1
	TC_MCME2        = 1 << 26 // Multi channel mode enable, channel 2
	TC_STOS_Pos     = 29      // Status bit output selector
	TC_STOS_Msk     = 0x3 << TC_STOS_Pos
)

// TCST / TCSET / TCCLR fields
const (
	TCST_TRB  = 1 << 0 // Timer run bit
	TCST_CDIR = 1 << 1 // Timer counting direction
	TCST_DTR1 = 1 << 3 // Dead time counter 1 run bit
	TCST_DTR2 = 1 << 4 // Dead time counter 2 run bit

	TCSET_TRBS = 1 << 0 // Timer run bit set

	TCCLR_TRBC = 1 << 0 // Timer run bit clear
	TCCLR_TCC  = 1 << 1 // Timer clear
	TCCLR_DITC = 1 << 2 // Dither counter clear
)

// CMC fields
const (
	CMC_TCE = 1 << 20 // Timer concatenation enable
)

// CHC fields (devices without the CCU8v3 output selectors)
const (
	CHC_ASE      = 1 << 0 // Asymmetric PWM mode enable
	CHC_OCS1_Pos = 1      // Output selector for OUTy0..OUTy3 occupy bits 1..4
)

// DTC fields
const (
	DTC_DTE1     = 1 << 0 // Dead time enable channel 1
	DTC_DTE2     = 1 << 1 // Dead time enable channel 2
	DTC_DCEN1    = 1 << 2 // Dead time enable for CC8yST1
	DTC_DCEN2    = 1 << 3 // Dead time enable for inverted CC8yST1
	DTC_DCEN3    = 1 << 4 // Dead time enable for CC8yST2
	DTC_DCEN4    = 1 << 5 // Dead time enable for inverted CC8yST2
	DTC_DTCC_Pos = 6      // Dead time clock control
	DTC_DTCC_Msk = 0x3 << DTC_DTCC_Pos
)

// DC1R / DC2R fields
const (
	DCR_DTR_Pos = 0 // Rising edge value
	DCR_DTF_Pos = 8 // Falling edge value
	DCR_Msk     = 0xFF
)

// Widths of the counter registers
const (
	CCU8_TimerBits = 16
	CCU8_TimerMax  = 1<<CCU8_TimerBits - 1
	CCU8_NibbleMax = 0xF
)

// SliceBase returns the address of slice CC8y inside a module.
func SliceBase(module uintptr, slice uint8) uintptr {
	return module + CCU8_SliceStride*uintptr(slice+1)
}
