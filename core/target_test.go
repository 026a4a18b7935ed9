package core

import (
	"errors"
	"testing"
)

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in   string
		want Variant
		err  bool
	}{
		{"xmc1400", VariantXMC14, false},
		{"XMC14", VariantXMC14, false},
		{" xmc4700 ", VariantXMC47, false},
		{"xmc47", VariantXMC47, false},
		{"xmc4800", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseVariant(tt.in)
		if tt.err {
			if !errors.Is(err, ErrUnknownVariant) {
				t.Errorf("ParseVariant(%q): expected ErrUnknownVariant, got %v", tt.in, err)
			}
			if want := "unknown variant: \"" + tt.in + "\""; err != nil && err.Error() != want {
				t.Errorf("ParseVariant(%q): message %q, want %q", tt.in, err.Error(), want)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseVariant(%q) = %v, %v", tt.in, got, err)
		}
		if back, _ := ParseVariant(got.String()); back != got {
			t.Errorf("%v does not round trip through its name", got)
		}
	}
}

func TestTargets(t *testing.T) {
	tests := []struct {
		variant  Variant
		slice    uint8
		shadow   uint32
		direct   string
		inverted string
		alt      uint8
	}{
		{VariantXMC14, 0, 0x1, "P0.0", "P0.1", 5},
		{VariantXMC47, 2, 0x100, "P0.3", "P0.0", 3},
	}
	for _, tt := range tests {
		tgt, err := TargetFor(tt.variant)
		if err != nil {
			t.Fatal(err)
		}
		if tgt.Slice != tt.slice || tgt.ShadowMask != tt.shadow {
			t.Errorf("%v: slice %d shadow %s", tt.variant, tgt.Slice, hex32(tgt.ShadowMask))
		}
		if tgt.Direct.String() != tt.direct || tgt.Inverted.String() != tt.inverted {
			t.Errorf("%v: pins %s/%s", tt.variant, tgt.Direct, tgt.Inverted)
		}
		if tgt.PinConfig.Mode.Alt() != tt.alt || !tgt.PinConfig.Mode.IsOutput() {
			t.Errorf("%v: pin mode %s", tt.variant, tgt.PinConfig.Mode)
		}

		direct, ok := tgt.PinFunc(tgt.Direct, tt.alt)
		if !ok || direct.Slice != tt.slice || direct.Output != 0 {
			t.Errorf("%v: direct pin function %+v", tt.variant, direct)
		}
		inverted, ok := tgt.PinFunc(tgt.Inverted, tt.alt)
		if !ok || inverted.Slice != tt.slice || inverted.Output != 1 {
			t.Errorf("%v: inverted pin function %+v", tt.variant, inverted)
		}
	}
}

func TestTargetForUnknown(t *testing.T) {
	if _, err := TargetFor(Variant(0)); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("expected ErrUnknownVariant, got %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Error("MustTarget did not panic")
		}
	}()
	MustTarget(Variant(42))
}

func TestTargetForCopiesPinFuncs(t *testing.T) {
	tgt := MustTarget(VariantXMC47)
	tgt.PinFuncs[0].Slice = 3
	tgt.PinFuncs = append(tgt.PinFuncs[:0], tgt.PinFuncs[1:]...)

	again := MustTarget(VariantXMC47)
	if f, ok := again.PinFunc(PinRef{0, 0}, 3); !ok || f.Slice != 2 {
		t.Errorf("edited copy leaked into the table: %+v", f)
	}
	if len(again.PinFuncs) != 6 {
		t.Errorf("table has %d pin functions", len(again.PinFuncs))
	}
}

func TestVariantString(t *testing.T) {
	if s := Variant(9).String(); s != "variant(9)" {
		t.Errorf("Variant(9) = %s", s)
	}
	if _, err := TargetFor(Variant(9)); err == nil || err.Error() != "unknown variant: variant(9)" {
		t.Errorf("TargetFor(9) = %v", err)
	}
}
