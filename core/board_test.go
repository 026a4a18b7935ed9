package core

import (
	"errors"
	"strings"
	"testing"
)

func TestCheckChipFamily(t *testing.T) {
	tests := []struct {
		variant Variant
		idchip  uint32
		ok      bool
	}{
		{VariantXMC14, 0x00014A01, true},
		{VariantXMC14, 0x00047001, false},
		{VariantXMC47, 0x00047001, true},
		{VariantXMC47, 0x00048001, false},
		{VariantXMC47, 0, false},
	}
	for _, tt := range tests {
		tgt := MustTarget(tt.variant)
		bus := newMemBus()
		bus.regs[tgt.IDChipAddr] = tt.idchip

		err := BoardInit(bus, tgt)()
		if (err == nil) != tt.ok {
			t.Errorf("%v with IDCHIP %s: err = %v", tt.variant, hex32(tt.idchip), err)
		}
		if len(bus.stores) != 0 {
			t.Errorf("%v: chip check wrote registers", tt.variant)
		}
	}
}

func TestBringupChipMismatch(t *testing.T) {
	p, _ := DefaultPlan(VariantXMC14)
	bus := newMemBus()
	bus.regs[p.Target.IDChipAddr] = 0x00047000

	_, err := Bringup(bus, p, Options{BoardInit: BoardInit(bus, p.Target)})
	if !errors.Is(err, ErrBoardInit) {
		t.Fatalf("expected ErrBoardInit, got %v", err)
	}
	if !strings.Contains(err.Error(), "chip family 0x47") {
		t.Errorf("message %q", err.Error())
	}
}
