package program

import (
	"testing"
)

func TestOutputMaskSetTest(t *testing.T) {
	var m OutputMask
	m = m.Set(VertResultHPos).Set(63)
	if !m.Test(VertResultHPos) || !m.Test(63) {
		t.Errorf("Expecting bits %d and 63 set, got %#x", VertResultHPos, uint64(m))
	}
	if m.Test(VertResultColor0) {
		t.Errorf("Expecting bit %d clear", VertResultColor0)
	}
}

func TestOutputMaskSetRange(t *testing.T) {
	var m OutputMask
	m = m.SetRange(VertResultVar0, 4)
	for i := 0; i < 4; i++ {
		if !m.Test(VertResultVar0 + i) {
			t.Errorf("Expecting varying slot %d set", i)
		}
	}
	if m.Test(VertResultVar0 + 4) {
		t.Errorf("Expecting slot 4 clear")
	}
}

func TestInputRangeClips(t *testing.T) {
	m := InputRange(30, 8)
	if m != 0b11<<30 {
		t.Errorf("Expecting the range clipped at bit 31, got %#x", m)
	}
}

// Generic attribute zero sits right after the fixed-function inputs so
// a full complement of generics still fits the 32-bit mask.
func TestVertexInputLayout(t *testing.T) {
	if VertAttribGeneric0 != 16 {
		t.Errorf("Expecting generics to start at 16, got %d", VertAttribGeneric0)
	}
	if VertAttribGeneric0+16 > 32 {
		t.Errorf("Generic attributes overflow the 32-bit input mask")
	}
}
