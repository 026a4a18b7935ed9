// Package sim models the SCU, CCU8 and PORT registers of an XMC device so
// the bring-up sequence can run and be checked on the host.
package sim

import (
	"fmt"

	"ccu8pwm/core"
)

// Op is the kind of a bus access
type Op uint8

const (
	OpLoad Op = iota
	OpStore
)

// Access is one entry of the bus journal
type Access struct {
	Op    Op
	Addr  uintptr
	Value uint32
}

func (a Access) String() string {
	op := "R"
	if a.Op == OpStore {
		op = "W"
	}
	return fmt.Sprintf("%s 0x%08X = 0x%08X", op, a.Addr, a.Value)
}

// Fault is a register write the hardware would have ignored or a
// transition it would not have made
type Fault struct {
	Addr   uintptr
	Value  uint32
	Reason string
}

func (f Fault) String() string {
	return fmt.Sprintf("0x%08X <- 0x%08X: %s", f.Addr, f.Value, f.Reason)
}

const moduleSpan = core.CCU8_SliceStride * (core.CCU8_NumSlices + 1)

// Device is a register file with the hardware semantics the bring-up
// sequence relies on. It implements core.Bus.
type Device struct {
	target core.Target

	regs map[uintptr]uint32

	locked   bool // SCU bit protection active
	gated    bool // fCCU reaches the module
	released bool // module out of reset

	pending [core.CCU8_NumSlices]uint32 // shadow transfers waiting for a period boundary
	phase   [core.CCU8_NumSlices]uint32 // timer position, in ticks

	journal []Access
	faults  []Fault
}

// New returns a device in its reset state: module unclocked, every slice
// idle, prescaler stopped, pins tristate.
func New(t core.Target) *Device {
	d := &Device{
		target:   t,
		regs:     make(map[uintptr]uint32),
		locked:   t.ModuleClock.LockAddr != 0,
		released: t.ModuleClock.ResetAddr == 0,
	}
	if d.locked {
		d.regs[t.ModuleClock.LockAddr] = core.SCU_PASSWD_Enable | core.SCU_PASSWD_PROTS
	}
	d.regs[t.ModuleBase+core.CCU8_GSTAT] = 1<<core.CCU8_NumSlices - 1
	d.regs[t.IDChipAddr] = uint32(t.ChipFamily)<<core.SCU_IDCHIP_Family_Pos | 0x1
	return d
}

// Target returns the target the device was built for
func (d *Device) Target() core.Target {
	return d.target
}

// SetChipID overrides the SCU IDCHIP value
func (d *Device) SetChipID(id uint32) {
	d.regs[d.target.IDChipAddr] = id
}

// Clocked reports whether the CCU8 module receives fCCU and is out of reset
func (d *Device) Clocked() bool {
	return d.gated && d.released
}

// Locked reports whether the SCU bit protection guards the clock gate
func (d *Device) Locked() bool {
	return d.locked
}

// Peek returns a register value without recording an access
func (d *Device) Peek(addr uintptr) uint32 {
	return d.regs[addr]
}

// Trace returns every access in order
func (d *Device) Trace() []Access {
	return append([]Access(nil), d.journal...)
}

// Writes returns the stores in order
func (d *Device) Writes() []Access {
	var w []Access
	for _, a := range d.journal {
		if a.Op == OpStore {
			w = append(w, a)
		}
	}
	return w
}

// Faults returns the faults recorded so far
func (d *Device) Faults() []Fault {
	return append([]Fault(nil), d.faults...)
}

func (d *Device) fault(addr uintptr, value uint32, format string, args ...any) {
	d.faults = append(d.faults, Fault{Addr: addr, Value: value, Reason: fmt.Sprintf(format, args...)})
}

// Load implements core.Bus
func (d *Device) Load(addr uintptr) uint32 {
	v := d.regs[addr]
	d.journal = append(d.journal, Access{Op: OpLoad, Addr: addr, Value: v})
	return v
}

// Store implements core.Bus
func (d *Device) Store(addr uintptr, value uint32) {
	d.journal = append(d.journal, Access{Op: OpStore, Addr: addr, Value: value})

	clk := d.target.ModuleClock
	switch {
	case clk.LockAddr != 0 && addr == clk.LockAddr:
		d.locked = value&core.SCU_PASSWD_MODE_Msk == core.SCU_PASSWD_MODE_Msk
		d.regs[addr] = value &^ core.SCU_PASSWD_PROTS
		if d.locked {
			d.regs[addr] |= core.SCU_PASSWD_PROTS
		}
	case clk.GateAddr != 0 && addr == clk.GateAddr:
		if d.locked {
			d.fault(addr, value, "clock gate written while the SCU bit protection is on")
			return
		}
		if value&clk.GateMask != 0 {
			d.gated = true
		}
	case clk.ResetAddr != 0 && addr == clk.ResetAddr:
		if value&clk.ResetMask != 0 {
			d.released = true
		}
	case d.inModule(addr):
		d.storeModule(addr, value)
	case addr >= d.target.PortBase && addr < d.target.PortBase+0x100:
		d.storePort(addr, value)
	default:
		d.regs[addr] = value
	}
}

func (d *Device) inModule(addr uintptr) bool {
	base := d.target.ModuleBase
	return addr >= base && addr < base+moduleSpan
}

func (d *Device) storeModule(addr uintptr, value uint32) {
	if !d.Clocked() {
		d.fault(addr, value, "CCU8 write while the module is unclocked")
		return
	}
	base := d.target.ModuleBase
	off := addr - base
	if off < core.CCU8_SliceStride {
		d.storeGlobal(off, value)
		return
	}
	slice := uint8(off/core.CCU8_SliceStride) - 1
	d.storeSlice(slice, off%core.CCU8_SliceStride, value)
}

func (d *Device) storeGlobal(off uintptr, value uint32) {
	base := d.target.ModuleBase
	gstat := base + core.CCU8_GSTAT
	const idle = 1<<core.CCU8_NumSlices - 1
	switch off {
	case core.CCU8_GSTAT:
		d.fault(base+off, value, "GSTAT is read only")
	case core.CCU8_GIDLS:
		d.regs[gstat] |= value & idle
		if value&core.GIDLS_CPRB != 0 {
			d.regs[gstat] &^= core.GSTAT_PRB
		}
	case core.CCU8_GIDLC:
		d.regs[gstat] &^= value & idle
		if value&core.GIDLC_SPRB != 0 {
			d.regs[gstat] |= core.GSTAT_PRB
		}
	case core.CCU8_GCSS:
		for y := uint8(0); y < core.CCU8_NumSlices; y++ {
			req := (value >> (core.GCSS_SliceShift * uint32(y))) & 0x7
			if req == 0 {
				continue
			}
			if d.running(y) {
				d.pending[y] |= req
			} else {
				d.transfer(y, req)
			}
		}
	default:
		d.regs[base+off] = value
	}
}

func (d *Device) storeSlice(y uint8, off uintptr, value uint32) {
	sb := core.SliceBase(d.target.ModuleBase, y)
	switch off {
	case core.CC8_TCST:
		d.fault(sb+off, value, "TCST is read only")
	case core.CC8_TCSET:
		if value&core.TCSET_TRBS == 0 {
			return
		}
		gstat := d.regs[d.target.ModuleBase+core.CCU8_GSTAT]
		switch {
		case gstat&core.GSTAT_PRB == 0:
			d.fault(sb+off, value, "timer start with the prescaler stopped")
		case gstat&(core.GSTAT_S0I<<y) != 0:
			d.fault(sb+off, value, "timer start on idle slice %d", y)
		default:
			d.regs[sb+core.CC8_TCST] |= core.TCST_TRB
		}
	case core.CC8_TCCLR:
		if value&core.TCCLR_TRBC != 0 {
			d.regs[sb+core.CC8_TCST] &^= core.TCST_TRB
		}
		if value&core.TCCLR_TCC != 0 {
			d.phase[y] = 0
			d.regs[sb+core.CC8_TIMER] = 0
		}
	default:
		d.regs[sb+off] = value
	}
}

// transfer copies shadow registers to their active counterparts.
// req holds the slice's three GCSS bits (period/compare, dither, prescaler).
func (d *Device) transfer(y uint8, req uint32) {
	sb := core.SliceBase(d.target.ModuleBase, y)
	if req&core.GCSS_S0SE != 0 {
		d.regs[sb+core.CC8_PR] = d.regs[sb+core.CC8_PRS]
		d.regs[sb+core.CC8_CR1] = d.regs[sb+core.CC8_CR1S]
		d.regs[sb+core.CC8_CR2] = d.regs[sb+core.CC8_CR2S]
	}
	if req&core.GCSS_S0DSE != 0 {
		d.regs[sb+core.CC8_DIT] = d.regs[sb+core.CC8_DITS]
	}
	if req&core.GCSS_S0PSE != 0 {
		d.regs[sb+core.CC8_FPC] = d.regs[sb+core.CC8_FPCS]
	}
}

func (d *Device) storePort(addr uintptr, value uint32) {
	out := d.target.PortBase + core.PORT_OUT
	switch addr - d.target.PortBase {
	case core.PORT_OMR:
		set := value & 0xFFFF
		reset := value >> core.PORT_OMR_PR_Pos
		v := d.regs[out]
		v |= set &^ reset
		v &^= reset &^ set
		v ^= set & reset // both bits toggle
		d.regs[out] = v
	case core.PORT_IN:
		d.fault(addr, value, "IN is read only")
	default:
		d.regs[addr] = value
	}
}

func (d *Device) running(y uint8) bool {
	return d.regs[core.SliceBase(d.target.ModuleBase, y)+core.CC8_TCST]&core.TCST_TRB != 0
}
