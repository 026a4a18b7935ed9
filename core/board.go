package core

import "errors"

// ChipFamily reads the family code from the SCU chip ID register
func ChipFamily(bus Bus, t *Target) uint8 {
	return uint8((bus.Load(t.IDChipAddr) & SCU_IDCHIP_Family_Msk) >> SCU_IDCHIP_Family_Pos)
}

// CheckChipFamily fails when the chip on the bus is not the one the
// target was built for. Only the SCU ID register is read.
func CheckChipFamily(bus Bus, t *Target) error {
	if got := ChipFamily(bus, t); got != t.ChipFamily {
		return errors.New("chip family " + hex8(got) + ", " + t.Name + " expects " + hex8(t.ChipFamily))
	}
	return nil
}

// BoardInit returns the board bring-up used by the firmware: it checks the
// chip identity before any peripheral is configured.
func BoardInit(bus Bus, t Target) BoardInitFunc {
	return func() error {
		return CheckChipFamily(bus, &t)
	}
}
