package linker

import (
	"testing"

	"github.com/spaghettifunk/prism/pipeline/program"
)

func TestMetadataTemporaryCount(t *testing.T) {
	l := newTestLinker(t)
	prog := &program.StageProgram{
		Stage: program.StageVertex,
		Instructions: []*program.Instruction{
			{
				Op:  program.OpMov,
				Dst: program.DstOperand{File: program.FileTemporary, Index: 6, WriteMask: program.WriteMaskXYZW},
				Src: [3]program.SrcOperand{{File: program.FileTemporary, Index: 2}},
			},
			{
				Op:  program.OpMov,
				Dst: program.DstOperand{File: program.FileOutput, Index: program.VertResultHPos, WriteMask: program.WriteMaskXYZW},
				Src: [3]program.SrcOperand{{File: program.FileTemporary, Index: 6}},
			},
			{Op: program.OpEnd},
		},
	}
	l.recomputeMetadata(prog)
	if prog.NumTemporaries != 7 {
		t.Errorf("Expecting NumTemporaries 7, got %d", prog.NumTemporaries)
	}
	if !prog.OutputsWritten.Test(program.VertResultHPos) {
		t.Errorf("Expecting position output recorded")
	}
}

func TestMetadataNoTemporaries(t *testing.T) {
	l := newTestLinker(t)
	prog := &program.StageProgram{
		Stage: program.StageVertex,
		Instructions: []*program.Instruction{
			{
				Op:  program.OpMov,
				Dst: program.DstOperand{File: program.FileOutput, Index: program.VertResultHPos, WriteMask: program.WriteMaskXYZW},
				Src: [3]program.SrcOperand{{File: program.FileInput, Index: program.VertAttribPos}},
			},
			{Op: program.OpEnd},
		},
	}
	l.recomputeMetadata(prog)
	if prog.NumTemporaries != 0 {
		t.Errorf("Expecting NumTemporaries 0, got %d", prog.NumTemporaries)
	}
	if prog.InputsRead != 1<<program.VertAttribPos {
		t.Errorf("Expecting only the position input read, got %#x", prog.InputsRead)
	}
}

func TestMetadataAddressRegisters(t *testing.T) {
	l := newTestLinker(t)
	prog := &program.StageProgram{
		Stage: program.StageVertex,
		Instructions: []*program.Instruction{
			{
				Op:  program.OpArl,
				Dst: program.DstOperand{File: program.FileAddress, Index: 0, WriteMask: program.WriteMaskX},
				Src: [3]program.SrcOperand{{File: program.FileInput, Index: program.VertAttribPos}},
			},
			{Op: program.OpEnd},
		},
	}
	l.recomputeMetadata(prog)
	if prog.NumAddressRegs != 1 {
		t.Errorf("Expecting NumAddressRegs 1, got %d", prog.NumAddressRegs)
	}
}

// Relative addressing of the varying base marks every varying slot
// read.
func TestMetadataRelativeVaryingExpansion(t *testing.T) {
	l := newTestLinker(t)
	prog := &program.StageProgram{
		Stage: program.StageFragment,
		Instructions: []*program.Instruction{
			{
				Op:  program.OpMov,
				Dst: program.DstOperand{File: program.FileOutput, Index: program.FragResultColor, WriteMask: program.WriteMaskXYZW},
				Src: [3]program.SrcOperand{{File: program.FileInput, Index: program.FragAttribVar0, RelAddr: true}},
			},
			{Op: program.OpEnd},
		},
	}
	l.recomputeMetadata(prog)
	want := program.InputRange(program.FragAttribVar0, l.limits.MaxVarying)
	if prog.InputsRead != want {
		t.Errorf("Expecting InputsRead %#x, got %#x", want, prog.InputsRead)
	}
}

// Relative addressing of a texture coordinate marks every coordinate
// slot read.
func TestMetadataRelativeTexCoordExpansion(t *testing.T) {
	l := newTestLinker(t)
	prog := &program.StageProgram{
		Stage: program.StageVertex,
		Instructions: []*program.Instruction{
			{
				Op:  program.OpMov,
				Dst: program.DstOperand{File: program.FileOutput, Index: program.VertResultHPos, WriteMask: program.WriteMaskXYZW},
				Src: [3]program.SrcOperand{{File: program.FileInput, Index: program.VertAttribTex2, RelAddr: true}},
			},
			{Op: program.OpEnd},
		},
	}
	l.recomputeMetadata(prog)
	want := program.InputRange(program.VertAttribTex0, l.limits.MaxTextureCoordUnits)
	if prog.InputsRead != want {
		t.Errorf("Expecting InputsRead %#x, got %#x", want, prog.InputsRead)
	}
}

// Relative addressing of an indexed fragment output marks every draw
// buffer written.
func TestMetadataRelativeDrawBufferExpansion(t *testing.T) {
	l := newTestLinker(t)
	prog := &program.StageProgram{
		Stage: program.StageFragment,
		Instructions: []*program.Instruction{
			{
				Op:  program.OpMov,
				Dst: program.DstOperand{File: program.FileOutput, Index: program.FragResultData0, RelAddr: true, WriteMask: program.WriteMaskXYZW},
				Src: [3]program.SrcOperand{{File: program.FileTemporary, Index: 0}},
			},
			{Op: program.OpEnd},
		},
	}
	l.recomputeMetadata(prog)
	var want program.OutputMask
	want = want.SetRange(program.FragResultData0, l.limits.MaxDrawBuffers)
	if prog.OutputsWritten != want {
		t.Errorf("Expecting OutputsWritten %#x, got %#x", uint64(want), uint64(prog.OutputsWritten))
	}
}

// Relative addressing of a generic attribute marks the span from the
// base to the last generic slot.
func TestMetadataRelativeGenericExpansion(t *testing.T) {
	l := newTestLinker(t)
	base := program.VertAttribGeneric0 + 2
	prog := &program.StageProgram{
		Stage: program.StageVertex,
		Instructions: []*program.Instruction{
			{
				Op:  program.OpMov,
				Dst: program.DstOperand{File: program.FileOutput, Index: program.VertResultHPos, WriteMask: program.WriteMaskXYZW},
				Src: [3]program.SrcOperand{{File: program.FileInput, Index: int16(base), RelAddr: true}},
			},
			{Op: program.OpEnd},
		},
	}
	l.recomputeMetadata(prog)
	want := program.InputRange(base, program.MaxVertexInputs-base)
	if prog.InputsRead != want {
		t.Errorf("Expecting InputsRead %#x, got %#x", want, prog.InputsRead)
	}
}
