package core

// ModuleClock describes how the SCU hands fCCU to a CCU8 module.
// A zero address means the step does not exist on that device.
type ModuleClock struct {
	LockAddr  uintptr // bit protection guarding GateAddr (XMC1 PASSWD)
	GateAddr  uintptr // write-1-to-ungate (XMC1 CGATCLR0, XMC4 CLKSET)
	GateMask  uint32
	ResetAddr uintptr // write-1-to-release reset (XMC4 PRCLR0)
	ResetMask uint32
}

// CCU8 drives the global registers of one CCU8 module
type CCU8 struct {
	bus   Bus
	base  uintptr
	clock ModuleClock
}

// NewCCU8 returns a driver for the module at base
func NewCCU8(bus Bus, base uintptr, clock ModuleClock) *CCU8 {
	return &CCU8{bus: bus, base: base, clock: clock}
}

// Base returns the module base address
func (m *CCU8) Base() uintptr {
	return m.base
}

// SetModuleClock makes fCCU reach the module and selects the prescaler
// input clock. No other module register may be written before this.
func (m *CCU8) SetModuleClock(src ClockSource) {
	if m.clock.GateAddr != 0 {
		m.unlock()
		m.bus.Store(m.clock.GateAddr, m.clock.GateMask)
		m.lock()
	}
	if m.clock.ResetAddr != 0 {
		m.bus.Store(m.clock.ResetAddr, m.clock.ResetMask)
	}
	modify(m.bus, m.base+CCU8_GCTRL, GCTRL_PCIS_Msk, uint32(src)<<GCTRL_PCIS_Pos)
}

// unlock lifts the SCU bit protection in front of a protected gate register
func (m *CCU8) unlock() {
	if m.clock.LockAddr == 0 {
		return
	}
	m.bus.Store(m.clock.LockAddr, SCU_PASSWD_Disable)
	for m.bus.Load(m.clock.LockAddr)&SCU_PASSWD_PROTS != 0 {
	}
}

func (m *CCU8) lock() {
	if m.clock.LockAddr != 0 {
		m.bus.Store(m.clock.LockAddr, SCU_PASSWD_Enable)
	}
}

// Init starts the prescaler and selects how multi channel shadow transfers
// are chained across slices.
func (m *CCU8) Init(action MCMSAction) {
	m.StartPrescaler()
	modify(m.bus, m.base+CCU8_GCTRL, GCTRL_MSDE_Msk, uint32(action)<<GCTRL_MSDE_Pos)
}

// StartPrescaler sets the prescaler run bit, restoring clocks to the slices
func (m *CCU8) StartPrescaler() {
	m.bus.Store(m.base+CCU8_GIDLC, GIDLC_SPRB)
}

// StopPrescaler clears the prescaler run bit
func (m *CCU8) StopPrescaler() {
	m.bus.Store(m.base+CCU8_GIDLS, GIDLS_CPRB)
}

// IsPrescalerRunning reports the prescaler run bit
func (m *CCU8) IsPrescalerRunning() bool {
	return m.bus.Load(m.base+CCU8_GSTAT)&GSTAT_PRB != 0
}

// EnableClock takes a slice out of idle
func (m *CCU8) EnableClock(slice uint8) {
	m.bus.Store(m.base+CCU8_GIDLC, GSTAT_S0I<<slice)
}

// DisableClock puts a slice into idle
func (m *CCU8) DisableClock(slice uint8) {
	m.bus.Store(m.base+CCU8_GIDLS, GSTAT_S0I<<slice)
}

// IsSliceIdle reports the idle bit of a slice
func (m *CCU8) IsSliceIdle(slice uint8) bool {
	return m.bus.Load(m.base+CCU8_GSTAT)&(GSTAT_S0I<<slice) != 0
}

// EnableShadowTransfer requests the shadow transfers selected by mask
// (see the ShadowTransferSlice constants).
func (m *CCU8) EnableShadowTransfer(mask uint32) {
	m.bus.Store(m.base+CCU8_GCSS, mask)
}

// Slice returns the driver of slice n (0..3)
func (m *CCU8) Slice(n uint8) *Slice {
	return &Slice{bus: m.bus, base: SliceBase(m.base, n), num: n}
}

// Slice drives the registers of one CC8y timer slice
type Slice struct {
	bus  Bus
	base uintptr
	num  uint8
}

// Number returns the slice index inside its module
func (s *Slice) Number() uint8 {
	return s.num
}

// Base returns the slice base address
func (s *Slice) Base() uintptr {
	return s.base
}

// CompareInit applies a compare mode configuration. The timer is stopped
// first; period and compare values are left untouched.
func (s *Slice) CompareInit(cfg *SliceCompareConfig) {
	s.StopTimer()

	s.bus.Store(s.base+CC8_TC, cfg.tc())
	if cfg.TimerConcatenation {
		setBits(s.bus, s.base+CC8_CMC, CMC_TCE)
	} else {
		clearBits(s.bus, s.base+CC8_CMC, CMC_TCE)
	}
	s.bus.Store(s.base+CC8_PSC, uint32(cfg.PrescalerInitVal&CCU8_NibbleMax))
	s.bus.Store(s.base+CC8_FPCS, uint32(cfg.FloatLimit&CCU8_NibbleMax))
	s.bus.Store(s.base+CC8_DITS, uint32(cfg.DitherLimit&CCU8_NibbleMax))
	s.bus.Store(s.base+CC8_PSL, cfg.psl())
	s.bus.Store(s.base+CC8_CHC, cfg.chc())
}

// SetTimerPeriodMatch writes the period shadow register
func (s *Slice) SetTimerPeriodMatch(period uint16) {
	s.bus.Store(s.base+CC8_PRS, uint32(period))
}

// SetTimerCompareMatch writes the compare shadow register of a channel
func (s *Slice) SetTimerCompareMatch(ch CompareChannel, value uint16) {
	if ch == CompareChannel2 {
		s.bus.Store(s.base+CC8_CR2S, uint32(value))
		return
	}
	s.bus.Store(s.base+CC8_CR1S, uint32(value))
}

// TimerPeriodMatch returns the active period value
func (s *Slice) TimerPeriodMatch() uint16 {
	return uint16(s.bus.Load(s.base + CC8_PR))
}

// TimerCompareMatch returns the active compare value of a channel
func (s *Slice) TimerCompareMatch(ch CompareChannel) uint16 {
	if ch == CompareChannel2 {
		return uint16(s.bus.Load(s.base + CC8_CR2))
	}
	return uint16(s.bus.Load(s.base + CC8_CR1))
}

// DeadTimeInit programs the dead time generator
func (s *Slice) DeadTimeInit(cfg *DeadTimeConfig) {
	s.bus.Store(s.base+CC8_DTC, cfg.dtc())
	s.bus.Store(s.base+CC8_DC1R, dcr(cfg.Channel1RisingEdge, cfg.Channel1FallingEdge))
	s.bus.Store(s.base+CC8_DC2R, dcr(cfg.Channel2RisingEdge, cfg.Channel2FallingEdge))
}

// StartTimer sets the timer run bit
func (s *Slice) StartTimer() {
	s.bus.Store(s.base+CC8_TCSET, TCSET_TRBS)
}

// StopTimer clears the timer run bit
func (s *Slice) StopTimer() {
	s.bus.Store(s.base+CC8_TCCLR, TCCLR_TRBC)
}

// IsTimerRunning reports the timer run bit
func (s *Slice) IsTimerRunning() bool {
	return s.bus.Load(s.base+CC8_TCST)&TCST_TRB != 0
}
