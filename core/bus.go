package core

// Bus is the register access seam used by the peripheral drivers.
// Addresses are absolute. On hardware the bus is the memory-mapped register
// space (see MMIO); on the host it is a register file model.
type Bus interface {
	// Load reads a 32-bit register
	Load(addr uintptr) uint32

	// Store writes a 32-bit register
	Store(addr uintptr, value uint32)
}

// modify performs a read-modify-write of the bits selected by mask.
// value must already be shifted into position.
func modify(b Bus, addr uintptr, mask, value uint32) {
	b.Store(addr, b.Load(addr)&^mask|value&mask)
}

func setBits(b Bus, addr uintptr, bits uint32) {
	b.Store(addr, b.Load(addr)|bits)
}

func clearBits(b Bus, addr uintptr, bits uint32) {
	b.Store(addr, b.Load(addr)&^bits)
}
