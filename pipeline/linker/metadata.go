package linker

import (
	"github.com/spaghettifunk/prism/pipeline/math"
	"github.com/spaghettifunk/prism/pipeline/program"
)

// recomputeMetadata derives InputsRead, OutputsWritten, NumTemporaries
// and NumAddressRegs from the rewritten instruction stream.
func (l *Linker) recomputeMetadata(prog *program.StageProgram) {
	prog.InputsRead = 0
	prog.OutputsWritten = 0
	maxTemp := -1
	maxAddr := -1

	for _, inst := range prog.Instructions {
		for s := 0; s < inst.Op.NumSrc(); s++ {
			src := inst.Src[s]
			switch src.File {
			case program.FileTemporary:
				maxTemp = math.Max(maxTemp, int(src.Index))
			case program.FileAddress:
				maxAddr = math.Max(maxAddr, int(src.Index))
			case program.FileInput:
				prog.InputsRead |= l.inputMask(prog.Stage, int(src.Index), src.RelAddr)
			case program.FileOutput:
				// Reading back a result register still marks it written.
				prog.OutputsWritten |= l.outputMask(prog.Stage, int(src.Index), src.RelAddr)
			}
		}
		if inst.Op.HasDst() {
			switch inst.Dst.File {
			case program.FileTemporary:
				maxTemp = math.Max(maxTemp, int(inst.Dst.Index))
			case program.FileAddress:
				maxAddr = math.Max(maxAddr, int(inst.Dst.Index))
			case program.FileOutput:
				prog.OutputsWritten |= l.outputMask(prog.Stage, int(inst.Dst.Index), inst.Dst.RelAddr)
			}
		}
	}

	prog.NumTemporaries = maxTemp + 1
	prog.NumAddressRegs = maxAddr + 1
}

// inputMask returns the InputsRead contribution of one operand. With
// relative addressing the whole array span of the addressed built-in
// base is assumed touched.
func (l *Linker) inputMask(stage program.StageKind, index int, relAddr bool) uint32 {
	if !relAddr {
		return program.InputRange(index, 1)
	}
	switch stage {
	case program.StageVertex:
		switch {
		case index >= program.VertAttribGeneric0:
			return program.InputRange(index, program.MaxVertexInputs-index)
		case index >= program.VertAttribTex0 && index <= program.VertAttribTex7:
			return program.InputRange(program.VertAttribTex0, l.limits.MaxTextureCoordUnits)
		}
	case program.StageGeometry:
		switch {
		case index >= program.GeomAttribVar0:
			return program.InputRange(program.GeomAttribVar0, l.limits.MaxVarying)
		case index >= program.GeomAttribTex0 && index <= program.GeomAttribTex7:
			return program.InputRange(program.GeomAttribTex0, l.limits.MaxTextureCoordUnits)
		}
	case program.StageFragment:
		switch {
		case index >= program.FragAttribVar0:
			return program.InputRange(program.FragAttribVar0, l.limits.MaxVarying)
		case index >= program.FragAttribTex0 && index <= program.FragAttribTex7:
			return program.InputRange(program.FragAttribTex0, l.limits.MaxTextureCoordUnits)
		}
	}
	return program.InputRange(index, 1)
}

// outputMask returns the OutputsWritten contribution of one operand,
// expanding relative addressing to the addressed array span.
func (l *Linker) outputMask(stage program.StageKind, index int, relAddr bool) program.OutputMask {
	var m program.OutputMask
	if !relAddr {
		return m.Set(index)
	}
	switch stage {
	case program.StageVertex, program.StageGeometry:
		switch {
		case index >= program.VertResultVar0:
			return m.SetRange(program.VertResultVar0, l.limits.MaxVarying)
		case index >= program.VertResultTex0 && index <= program.VertResultTex7:
			return m.SetRange(program.VertResultTex0, l.limits.MaxTextureCoordUnits)
		}
	case program.StageFragment:
		if index >= program.FragResultData0 {
			return m.SetRange(program.FragResultData0, l.limits.MaxDrawBuffers)
		}
	}
	return m.Set(index)
}
