package sim

import (
	"fmt"
	"io"

	"ccu8pwm/core"
)

// Register is a named register of the device
type Register struct {
	Name  string
	Addr  uintptr
	Value uint32
}

var globalRegs = []struct {
	name string
	off  uintptr
}{
	{"GCTRL", core.CCU8_GCTRL},
	{"GSTAT", core.CCU8_GSTAT},
}

var sliceRegs = []struct {
	name string
	off  uintptr
}{
	{"CMC", core.CC8_CMC},
	{"TCST", core.CC8_TCST},
	{"TC", core.CC8_TC},
	{"PSL", core.CC8_PSL},
	{"DITS", core.CC8_DITS},
	{"PSC", core.CC8_PSC},
	{"FPCS", core.CC8_FPCS},
	{"PR", core.CC8_PR},
	{"PRS", core.CC8_PRS},
	{"CR1", core.CC8_CR1},
	{"CR1S", core.CC8_CR1S},
	{"CR2", core.CC8_CR2},
	{"CR2S", core.CC8_CR2S},
	{"CHC", core.CC8_CHC},
	{"DTC", core.CC8_DTC},
	{"DC1R", core.CC8_DC1R},
	{"DC2R", core.CC8_DC2R},
}

// Registers lists the module registers, the registers of the target
// slice and the port registers the PWM pins use.
func (d *Device) Registers() []Register {
	t := &d.target
	var regs []Register
	for _, r := range globalRegs {
		regs = append(regs, Register{"CCU80." + r.name, t.ModuleBase + r.off, d.regs[t.ModuleBase+r.off]})
	}
	sb := core.SliceBase(t.ModuleBase, t.Slice)
	prefix := fmt.Sprintf("CC8%d.", t.Slice)
	for _, r := range sliceRegs {
		regs = append(regs, Register{prefix + r.name, sb + r.off, d.regs[sb+r.off]})
	}

	port := fmt.Sprintf("PORT%d.", t.Direct.Port)
	regs = append(regs,
		Register{port + "OUT", t.PortBase + core.PORT_OUT, d.regs[t.PortBase+core.PORT_OUT]},
		Register{port + "IOCR0", t.PortBase + core.PORT_IOCR0, d.regs[t.PortBase+core.PORT_IOCR0]},
	)
	pad := "PDR0"
	if t.Pad == core.PadHysteresis {
		pad = "PHCR0"
	}
	regs = append(regs, Register{port + pad, t.PortBase + core.PORT_PDR0, d.regs[t.PortBase+core.PORT_PDR0]})
	return regs
}

// Dump writes the register listing to w
func (d *Device) Dump(w io.Writer) error {
	for _, r := range d.Registers() {
		if _, err := fmt.Fprintf(w, "%-12s 0x%08X  0x%08X\n", r.Name, r.Addr, r.Value); err != nil {
			return err
		}
	}
	return nil
}
