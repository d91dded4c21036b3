package program

import (
	"fmt"
	"strings"
)

/** @brief Pipeline stages a program may target. */
type StageKind uint8

const (
	StageVertex StageKind = iota
	StageGeometry
	StageFragment
)

func (s StageKind) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageGeometry:
		return "geometry"
	case StageFragment:
		return "fragment"
	}
	return fmt.Sprintf("stage(%d)", uint8(s))
}

func StageKindFromString(s string) (StageKind, error) {
	switch s {
	case "vertex", "vert":
		return StageVertex, nil
	case "geometry", "geom":
		return StageGeometry, nil
	case "fragment", "frag":
		return StageFragment, nil
	}
	return 0, fmt.Errorf("string %s is not a valid StageKind", s)
}

/**
 * @brief A compiled program for a single pipeline stage: the instruction
 * stream produced by the front-end plus the derived register accounting
 * the linker maintains.
 */
type StageProgram struct {
	/** @brief Which pipeline stage the program targets. */
	Stage StageKind

	/** @brief The ordered instruction stream. */
	Instructions []*Instruction

	/** @brief Uniforms, samplers, varyings and state variables. */
	Parameters []*Parameter

	/**
	 * @brief Vertex attributes declared by the stage, in declaration
	 * order. Entry i corresponds to generic input register
	 * VertAttribGeneric0+i before attribute resolution. Vertex stage only.
	 */
	Attributes []*Parameter

	/** @brief Mask of INPUT registers read by at least one instruction. */
	InputsRead uint32
	/** @brief Mask of OUTPUT registers written by at least one instruction. */
	OutputsWritten OutputMask
	/** @brief Number of temporary registers required. */
	NumTemporaries int
	/** @brief Number of address registers required. */
	NumAddressRegs int

	/** @brief Mask of program-wide sampler units referenced by texture instructions. */
	SamplersUsed uint32
	/** @brief Mask of sampler units used with shadow comparison. */
	ShadowSamplers uint32
	/** @brief Texture target each used sampler unit must be bound to. */
	SamplerTargets [MaxSamplerUnits]TextureTarget

	/** @brief Qualifier flags per INPUT register, indexed by register number. */
	InputFlags [MaxVertexInputs]ParamFlags
	/** @brief Qualifier flags per OUTPUT register, indexed by register number. */
	OutputFlags [MaxVertexOutputs]ParamFlags
}

// Clone deep-copies the stage program so the linker can rewrite it
// without touching the front-end's compiled unit.
func (p *StageProgram) Clone() *StageProgram {
	cp := &StageProgram{
		Stage:          p.Stage,
		InputsRead:     p.InputsRead,
		OutputsWritten: p.OutputsWritten,
		NumTemporaries: p.NumTemporaries,
		NumAddressRegs: p.NumAddressRegs,
		SamplersUsed:   p.SamplersUsed,
		ShadowSamplers: p.ShadowSamplers,
		SamplerTargets: p.SamplerTargets,
		InputFlags:     p.InputFlags,
		OutputFlags:    p.OutputFlags,
	}
	cp.Instructions = make([]*Instruction, len(p.Instructions))
	for i, in := range p.Instructions {
		inst := *in
		cp.Instructions[i] = &inst
	}
	cp.Parameters = make([]*Parameter, len(p.Parameters))
	for i, par := range p.Parameters {
		cp.Parameters[i] = par.Clone()
	}
	cp.Attributes = make([]*Parameter, len(p.Attributes))
	for i, att := range p.Attributes {
		cp.Attributes[i] = att.Clone()
	}
	return cp
}

// String renders the instruction stream and register accounting in a
// readable form; the demo in main.go prints it after linking.
func (p *StageProgram) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s program, %d instructions\n", p.Stage, len(p.Instructions)))
	for i, in := range p.Instructions {
		sb.WriteString(fmt.Sprintf("%3d: %s\n", i, in.String()))
	}
	sb.WriteString(fmt.Sprintf("# inputs=0x%08x outputs=0x%016x temps=%d addrs=%d samplers=0x%08x\n",
		p.InputsRead, uint64(p.OutputsWritten), p.NumTemporaries, p.NumAddressRegs, p.SamplersUsed))
	return sb.String()
}
