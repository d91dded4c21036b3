package program

import (
	"strings"
	"testing"
)

func TestOpcodeArity(t *testing.T) {
	cases := []struct {
		op  Opcode
		n   int
		tex bool
	}{
		{OpNop, 0, false},
		{OpMov, 1, false},
		{OpAdd, 2, false},
		{OpMad, 3, false},
		{OpTex, 1, true},
		{OpTxd, 3, true},
		{OpEnd, 0, false},
	}
	for _, c := range cases {
		if got := c.op.NumSrc(); got != c.n {
			t.Errorf("%s: expecting %d sources, got %d", c.op, c.n, got)
		}
		if got := c.op.IsTexture(); got != c.tex {
			t.Errorf("%s: expecting texture=%v", c.op, c.tex)
		}
	}
}

func TestInstructionString(t *testing.T) {
	in := &Instruction{
		Op:  OpMad,
		Dst: DstOperand{File: FileTemporary, Index: 2, WriteMask: WriteMaskXYZW},
		Src: [3]SrcOperand{
			{File: FileInput, Index: 3},
			{File: FileUniform, Index: 1},
			{File: FileTemporary, Index: 0},
		},
	}
	got := in.String()
	for _, want := range []string{"MAD", "TEMP[2]", "INPUT[3]", "UNIFORM[1]", "TEMP[0]"} {
		if !strings.Contains(got, want) {
			t.Errorf("Expecting %q in %q", want, got)
		}
	}
}

func TestInstructionStringTexture(t *testing.T) {
	in := &Instruction{
		Op:           OpTex,
		Dst:          DstOperand{File: FileTemporary, Index: 0, WriteMask: WriteMaskXYZW},
		Src:          [3]SrcOperand{{File: FileInput, Index: int16(FragAttribTex0)}},
		TexSrcUnit:   4,
		TexSrcTarget: TargetCube,
		TexShadow:    true,
	}
	got := in.String()
	for _, want := range []string{"TEX", "texture[4]", "CUBE", "SHADOW"} {
		if !strings.Contains(got, want) {
			t.Errorf("Expecting %q in %q", want, got)
		}
	}
}

func TestRelAddrString(t *testing.T) {
	src := SrcOperand{File: FileInput, Index: 5, RelAddr: true}
	if got := src.String(); got != "INPUT[A0+5]" {
		t.Errorf("Unexpected operand rendering %q", got)
	}
}
