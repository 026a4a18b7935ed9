//go:build tinygo

package core

import (
	"runtime/volatile"
	"unsafe"
)

// MMIO is the memory-mapped register space of the running chip.
type MMIO struct{}

// Load reads the register at addr with a volatile access
func (MMIO) Load(addr uintptr) uint32 {
	return (*volatile.Register32)(unsafe.Pointer(addr)).Get()
}

// Store writes the register at addr with a volatile access
func (MMIO) Store(addr uintptr, value uint32) {
	(*volatile.Register32)(unsafe.Pointer(addr)).Set(value)
}
