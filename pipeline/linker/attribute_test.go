package linker

import (
	"testing"

	"github.com/spaghettifunk/prism/pipeline/program"
)

// attribVertexProgram builds a vertex stage declaring the named
// generic attributes and reading each once, plus an optional read of
// the built-in position.
func attribVertexProgram(names []string, readPosition bool) *program.StageProgram {
	prog := &program.StageProgram{
		Stage: program.StageVertex,
	}
	for _, n := range names {
		prog.Attributes = append(prog.Attributes, &program.Parameter{
			Name:     n,
			Size:     4,
			DataType: program.DataTypeFloat32_4,
			Used:     true,
		})
	}
	posSrc := program.SrcOperand{File: program.FileInput, Index: program.VertAttribGeneric0}
	if readPosition {
		posSrc = program.SrcOperand{File: program.FileInput, Index: program.VertAttribPos}
	}
	prog.Instructions = append(prog.Instructions, &program.Instruction{
		Op:  program.OpMov,
		Dst: program.DstOperand{File: program.FileOutput, Index: program.VertResultHPos, WriteMask: program.WriteMaskXYZW},
		Src: [3]program.SrcOperand{posSrc},
	})
	for k := range names {
		prog.Instructions = append(prog.Instructions, &program.Instruction{
			Op:  program.OpMov,
			Dst: program.DstOperand{File: program.FileTemporary, Index: int16(k), WriteMask: program.WriteMaskXYZW},
			Src: [3]program.SrcOperand{{File: program.FileInput, Index: int16(program.VertAttribGeneric0 + k)}},
		})
	}
	prog.Instructions = append(prog.Instructions, &program.Instruction{Op: program.OpEnd})
	return prog
}

func slotOf(t *testing.T, sp *program.ShaderProgram, name string) int {
	t.Helper()
	a := sp.FindAttribute(name)
	if a == nil {
		t.Fatalf("attribute %s not published", name)
	}
	return a.Slot
}

// A user pre-binding wins over first-free assignment, and remaining
// attributes fill the lowest free slots.
func TestAttributeBindingPriority(t *testing.T) {
	sp := program.NewShaderProgram()
	sp.BindAttribute("aPos", 3)
	sp.Attach(program.NewCompileUnit(program.StageVertex,
		attribVertexProgram([]string{"aPos", "aNorm", "aUV"}, false)))
	sp.Attach(program.NewCompileUnit(program.StageFragment, varyingReader()))

	if err := newTestLinker(t).Link(sp); err != nil {
		t.Fatalf("Link: %v", err)
	}
	if got := slotOf(t, sp, "aPos"); got != 3 {
		t.Errorf("Expecting aPos at bound slot 3, got %d", got)
	}
	if got := slotOf(t, sp, "aNorm"); got != 0 {
		t.Errorf("Expecting aNorm at first free slot 0, got %d", got)
	}
	if got := slotOf(t, sp, "aUV"); got != 1 {
		t.Errorf("Expecting aUV at next free slot 1, got %d", got)
	}

	// Instructions read the rewritten registers.
	vert := sp.VertexProgram
	if idx := int(vert.Instructions[1].Src[0].Index); idx != program.VertAttribGeneric0+3 {
		t.Errorf("Expecting aPos read at generic 3, got %d", idx-program.VertAttribGeneric0)
	}
	if idx := int(vert.Instructions[2].Src[0].Index); idx != program.VertAttribGeneric0+0 {
		t.Errorf("Expecting aNorm read at generic 0, got %d", idx-program.VertAttribGeneric0)
	}
	if idx := int(vert.Instructions[3].Src[0].Index); idx != program.VertAttribGeneric0+1 {
		t.Errorf("Expecting aUV read at generic 1, got %d", idx-program.VertAttribGeneric0)
	}
}

// Reading the built-in position reserves slot 0.
func TestAttributePositionReservesSlotZero(t *testing.T) {
	sp := program.NewShaderProgram()
	sp.Attach(program.NewCompileUnit(program.StageVertex,
		attribVertexProgram([]string{"aNorm", "aUV"}, true)))
	sp.Attach(program.NewCompileUnit(program.StageFragment, varyingReader()))

	if err := newTestLinker(t).Link(sp); err != nil {
		t.Fatalf("Link: %v", err)
	}
	if got := slotOf(t, sp, "aNorm"); got != 1 {
		t.Errorf("Expecting aNorm pushed to slot 1 by the position alias, got %d", got)
	}
	if got := slotOf(t, sp, "aUV"); got != 2 {
		t.Errorf("Expecting aUV at slot 2, got %d", got)
	}

	// The built-in is published for introspection without a slot.
	if got := slotOf(t, sp, "gl_Vertex"); got != program.SlotUnset {
		t.Errorf("Expecting gl_Vertex with no generic slot, got %d", got)
	}
}

// With user bindings at {0,2} the next free attribute lands at 1.
func TestAttributeFillsLowestFree(t *testing.T) {
	sp := program.NewShaderProgram()
	sp.BindAttribute("a0", 0)
	sp.BindAttribute("a2", 2)
	sp.Attach(program.NewCompileUnit(program.StageVertex,
		attribVertexProgram([]string{"a0", "a2", "free"}, false)))
	sp.Attach(program.NewCompileUnit(program.StageFragment, varyingReader()))

	if err := newTestLinker(t).Link(sp); err != nil {
		t.Fatalf("Link: %v", err)
	}
	if got := slotOf(t, sp, "free"); got != 1 {
		t.Errorf("Expecting the unbound attribute at slot 1, got %d", got)
	}
}

func TestAttributeLimitExceeded(t *testing.T) {
	limits := DefaultLimits()
	limits.MaxVertexGenericAttribs = 2
	l, err := New(limits)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	sp := program.NewShaderProgram()
	sp.Attach(program.NewCompileUnit(program.StageVertex,
		attribVertexProgram([]string{"a", "b", "c"}, false)))
	sp.Attach(program.NewCompileUnit(program.StageFragment, varyingReader()))

	if err := l.Link(sp); err == nil {
		t.Fatalf("Expecting link failure past the attribute limit")
	}
	if sp.InfoLog != "Too many vertex attributes" {
		t.Errorf("Unexpected InfoLog %q", sp.InfoLog)
	}
}
