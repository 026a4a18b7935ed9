package core

// PORT Register Definitions
// Offsets are shared by the XMC1400 and XMC4700 ports unless noted.

// PORT0 base addresses
const (
	PORT0BaseXMC1 = 0x40040000
	PORT0BaseXMC4 = 0x48028000
)

// Offsets of the port registers
const (
	PORT_OUT   = 0x00 // Output register
	PORT_OMR   = 0x04 // Output modification register
	PORT_IOCR0 = 0x10 // Input/output control, pins 0-3 (one byte per pin)
	PORT_IN    = 0x24 // Input register
	PORT_PDR0  = 0x40 // XMC4: pad driver mode, pins 0-7 (one nibble per pin)
	PORT_PHCR0 = 0x40 // XMC1: pad hysteresis control, pins 0-7 (one nibble per pin)
	PORT_PDISC = 0x60 // Pin function decision control
	PORT_PPS   = 0x70 // Pin power save
	PORT_HWSEL = 0x74 // Pin hardware select

	PORT_PinsPerIOCR = 4
	PORT_PinsPerPDR  = 8
	PORT_IOCR_PC_Msk = 0xF8 // PCx field inside a pin's IOCR byte
	PORT_PDR_PD_Msk  = 0x7
	PORT_PHCR_Msk    = 0x4
	PORT_OMR_PR_Pos  = 16 // OMR reset bits start here
)
