package linker

import (
	"github.com/spaghettifunk/prism/pipeline/program"
)

// mergeUniforms folds the stage's used uniform and sampler parameters
// into the program-wide uniform table, assigns program-wide sampler
// units and rewrites texture instructions to reference them.
func (l *Linker) mergeUniforms(sp *program.ShaderProgram, prog *program.StageProgram) error {
	// Stage-local sampler number to program-wide unit.
	samplerMap := make(map[int]int)

	for i, par := range prog.Parameters {
		if !par.Used {
			continue
		}
		switch par.Kind {
		case program.ParamUniform:
			l.addUniform(sp, par.Name, prog.Stage, i)
		case program.ParamSampler:
			l.addUniform(sp, par.Name, prog.Stage, i)
			local := int(par.Values[0])
			unit, ok := samplerMap[local]
			if !ok {
				if l.nextSamplerUnit >= l.limits.MaxTextureImageUnits {
					return l.fail(sp, "Too many texture samplers")
				}
				unit = l.nextSamplerUnit
				l.nextSamplerUnit++
				samplerMap[local] = unit
			}
			par.Values[0] = float32(unit)
		case program.ParamStateVar:
			// State variables keep their per-stage parameter indices
			// and stay out of the program-wide table; the driver
			// tracks them directly.
		}
	}

	for _, inst := range prog.Instructions {
		if !inst.Op.IsTexture() {
			continue
		}
		unit, ok := samplerMap[int(inst.TexSrcUnit)]
		if !ok {
			return l.fail(sp, "texture instruction references unknown sampler %d", inst.TexSrcUnit)
		}
		inst.TexSrcUnit = uint8(unit)
		prog.SamplerTargets[unit] = inst.TexSrcTarget
		prog.SamplersUsed |= 1 << uint(unit)
		if inst.TexShadow {
			prog.ShadowSamplers |= 1 << uint(unit)
		}
	}
	return nil
}

// addUniform records (name, stage, parameter index) in the program-wide
// uniform table, creating the entry on first sight. A name declared by
// several stages shares one entry with a parameter index per stage.
func (l *Linker) addUniform(sp *program.ShaderProgram, name string, stage program.StageKind, pos int) {
	u := sp.FindUniform(name)
	if u == nil {
		u = &program.Uniform{
			Name:    name,
			VertPos: program.PosUnset,
			GeomPos: program.PosUnset,
			FragPos: program.PosUnset,
		}
		sp.Uniforms = append(sp.Uniforms, u)
	}
	switch stage {
	case program.StageVertex:
		u.VertPos = pos
	case program.StageGeometry:
		u.GeomPos = pos
	case program.StageFragment:
		u.FragPos = pos
	}
}
