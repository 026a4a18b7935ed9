package core

// SCU Register Definitions used for clock gating, reset and chip identification
const (
	SCUGeneralBaseXMC1 = 0x40010000
	SCUClockBaseXMC1   = 0x40010300

	SCUGeneralBaseXMC4 = 0x50004000
	SCUResetBaseXMC4   = 0x50004400
	SCUClockBaseXMC4   = 0x50004600

	SCU_IDCHIP = 0x04 // Chip ID (SCU_GENERAL)

	// XMC1 bit protection: CGATCLR0 only accepts writes while MODE is 00b
	SCU_PASSWD          = 0x24 // XMC1: password register (SCU_GENERAL)
	SCU_PASSWD_MODE_Msk = 0x3
	SCU_PASSWD_PROTS    = 1 << 2 // protection active
	SCU_PASSWD_Disable  = 0xC0   // PASS 11000b, MODE 00b
	SCU_PASSWD_Enable   = 0xC3   // PASS 11000b, MODE 11b

	SCU_CGATCLR0       = 0x10 // XMC1: peripheral clock gating clear 0 (SCU_CLK, protected)
	SCU_CGATCLR0_CCU80 = 1 << 1

	SCU_CLKSET        = 0x04 // XMC4: clock enable set (SCU_CLK)
	SCU_CLKSET_CCUCEN = 1 << 4

	SCU_PRCLR0         = 0x14 // XMC4: peripheral reset clear 0 (SCU_RESET)
	SCU_PRCLR0_CCU80RS = 1 << 7

	// Family code lives in IDCHIP[19:12]
	SCU_IDCHIP_Family_Pos = 12
	SCU_IDCHIP_Family_Msk = 0xFF << SCU_IDCHIP_Family_Pos
)
