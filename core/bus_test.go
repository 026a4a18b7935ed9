package core

import "testing"

// memBus is a plain register file that records every store
type memBus struct {
	regs   map[uintptr]uint32
	stores []memStore
}

type memStore struct {
	addr  uintptr
	value uint32
}

func newMemBus() *memBus {
	return &memBus{regs: make(map[uintptr]uint32)}
}

func (b *memBus) Load(addr uintptr) uint32 {
	return b.regs[addr]
}

func (b *memBus) Store(addr uintptr, value uint32) {
	b.regs[addr] = value
	b.stores = append(b.stores, memStore{addr, value})
}

// storedAt returns the values written to addr, in order
func (b *memBus) storedAt(addr uintptr) []uint32 {
	var v []uint32
	for _, s := range b.stores {
		if s.addr == addr {
			v = append(v, s.value)
		}
	}
	return v
}

// hex32 formats a register value as 0x%08X
func hex32(v uint32) string {
	const digits = "0123456789ABCDEF"
	buf := []byte("0x00000000")
	for i := 9; i >= 2; i-- {
		buf[i] = digits[v&0xF]
		v >>= 4
	}
	return string(buf)
}

func TestModify(t *testing.T) {
	bus := newMemBus()
	bus.regs[0x100] = 0xFFFF0000

	modify(bus, 0x100, 0x0000FF00, 0x00001200)
	if got := bus.regs[0x100]; got != 0xFFFF1200 {
		t.Errorf("modify: expected 0xFFFF1200, got %s", hex32(got))
	}

	// bits outside the mask are ignored
	modify(bus, 0x100, 0x0000000F, 0xFFFFFFF5)
	if got := bus.regs[0x100]; got != 0xFFFF1205 {
		t.Errorf("modify: expected 0xFFFF1205, got %s", hex32(got))
	}

	setBits(bus, 0x100, 0x0000000A)
	clearBits(bus, 0x100, 0xFFFF0000)
	if got := bus.regs[0x100]; got != 0x0000120F {
		t.Errorf("set/clear: expected 0x0000120F, got %s", hex32(got))
	}
}

func TestHex32(t *testing.T) {
	tests := map[uint32]string{
		0:          "0x00000000",
		0x1616:     "0x00001616",
		0xDEADBEEF: "0xDEADBEEF",
	}
	for v, want := range tests {
		if got := hex32(v); got != want {
			t.Errorf("hex32(%d) = %s, want %s", v, got, want)
		}
	}
}

func TestItoa(t *testing.T) {
	tests := map[int]string{0: "0", 7: "7", 720: "720", -22: "-22"}
	for v, want := range tests {
		if got := itoa(v); got != want {
			t.Errorf("itoa(%d) = %s, want %s", v, got, want)
		}
	}
}

func TestHex8(t *testing.T) {
	tests := map[uint8]string{0: "0x00", 0x14: "0x14", 0x47: "0x47", 0xAF: "0xAF"}
	for v, want := range tests {
		if got := hex8(v); got != want {
			t.Errorf("hex8(%d) = %s, want %s", v, got, want)
		}
	}
}
