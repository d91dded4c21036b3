package linker

import (
	"github.com/spaghettifunk/prism/pipeline/program"
)

// varyingBases gives, per stage, the operand file and first register
// index varying reads and writes are rewritten to.
type varyingBases struct {
	reads   bool
	writes  bool
	inBase  int
	outBase int
}

var stageVaryingBases = map[program.StageKind]varyingBases{
	program.StageVertex:   {writes: true, outBase: program.VertResultVar0},
	program.StageGeometry: {reads: true, writes: true, inBase: program.GeomAttribVar0, outBase: program.VertResultVar0},
	program.StageFragment: {reads: true, inBase: program.FragAttribVar0},
}

// mergeVaryings folds the stage's varying parameters into the
// program-wide varying table and rewrites every VARYING operand to the
// stage's INPUT or OUTPUT file at the linked slot.
func (l *Linker) mergeVaryings(sp *program.ShaderProgram, prog *program.StageProgram) error {
	bases := stageVaryingBases[prog.Stage]

	// Map each stage-local varying register to its linked slot. Local
	// registers are assigned in parameter order; types wider than one
	// register occupy consecutive slots on both sides.
	slotMap := make(map[int]int)
	localBase := 0
	for _, par := range prog.Parameters {
		if par.Kind != program.ParamVarying {
			continue
		}
		regs := par.RegisterCount()
		linkedBase, err := l.addVarying(sp, par)
		if err != nil {
			return err
		}
		for r := 0; r < regs; r++ {
			slotMap[localBase+r] = linkedBase + r
		}
		localBase += regs
	}

	for _, inst := range prog.Instructions {
		if inst.Op.HasDst() && inst.Dst.File == program.FileVarying {
			slot, ok := slotMap[int(inst.Dst.Index)]
			if !ok {
				return l.fail(sp, "varying register %d out of range in %s program", inst.Dst.Index, prog.Stage)
			}
			if !bases.writes {
				return l.fail(sp, "%s program writes a varying", prog.Stage)
			}
			flags := l.varyingFlagsAt(sp, slot)
			inst.Dst.File = program.FileOutput
			inst.Dst.Index = int16(bases.outBase + slot)
			prog.OutputFlags[bases.outBase+slot] = flags
		}
		for s := 0; s < inst.Op.NumSrc(); s++ {
			src := &inst.Src[s]
			if src.File != program.FileVarying {
				continue
			}
			slot, ok := slotMap[int(src.Index)]
			if !ok {
				return l.fail(sp, "varying register %d out of range in %s program", src.Index, prog.Stage)
			}
			flags := l.varyingFlagsAt(sp, slot)
			if bases.reads {
				src.File = program.FileInput
				src.Index = int16(bases.inBase + slot)
				prog.InputFlags[bases.inBase+slot] = flags
			} else {
				// A vertex shader may read back a varying it wrote;
				// those reads resolve to the output register.
				src.File = program.FileOutput
				src.Index = int16(bases.outBase + slot)
				prog.OutputFlags[bases.outBase+slot] = flags
			}
		}
	}

	// Stale masks from the front-end are meaningless after rewriting;
	// they are recomputed from the rewritten stream later.
	prog.InputsRead = 0
	prog.OutputsWritten = 0
	return nil
}

// addVarying looks the varying up in the program-wide table, verifying
// cross-stage agreement, or appends it. Returns the linked slot.
func (l *Linker) addVarying(sp *program.ShaderProgram, par *program.Parameter) (int, error) {
	slot := 0
	for _, v := range sp.Varyings {
		if v.Name == par.Name {
			if v.Size != par.Size {
				return 0, l.fail(sp, "mismatched varying variable types: %s", par.Name)
			}
			if v.Flags&program.FlagCentroid != par.Flags&program.FlagCentroid {
				return 0, l.fail(sp, "centroid qualifier mismatch: %s", par.Name)
			}
			if v.Flags&program.FlagInvariant != par.Flags&program.FlagInvariant {
				return 0, l.fail(sp, "invariant qualifier mismatch: %s", par.Name)
			}
			return slot, nil
		}
		slot += v.RegisterCount()
	}

	v := &program.Varying{
		Name:     par.Name,
		Size:     par.Size,
		DataType: par.DataType,
		Flags:    par.Flags,
	}
	if slot+v.RegisterCount() > l.limits.MaxVarying {
		return 0, l.fail(sp, "too many varying variables")
	}
	sp.Varyings = append(sp.Varyings, v)
	return slot, nil
}

// varyingFlagsAt returns the qualifier flags of the varying covering
// the linked slot.
func (l *Linker) varyingFlagsAt(sp *program.ShaderProgram, slot int) program.ParamFlags {
	base := 0
	for _, v := range sp.Varyings {
		n := v.RegisterCount()
		if slot >= base && slot < base+n {
			return v.Flags
		}
		base += n
	}
	return 0
}
