package linker

import (
	"github.com/spaghettifunk/prism/pipeline/program"
)

// validate enforces the cross-stage constraints after all rewrites and
// recomputation.
func (l *Linker) validate(sp *program.ShaderProgram, linked map[program.StageKind]*program.StageProgram) error {
	vert := linked[program.StageVertex]
	geom := linked[program.StageGeometry]
	frag := linked[program.StageFragment]

	if l.limits.ESProfile {
		if vert == nil {
			return l.fail(sp, "missing vertex shader")
		}
		if frag == nil {
			return l.fail(sp, "missing fragment shader")
		}
	}

	if vert != nil && !vert.OutputsWritten.Test(program.VertResultHPos) {
		return l.fail(sp, "gl_Position was not written by vertex shader")
	}

	if geom != nil {
		if vert == nil {
			return l.fail(sp, "geometry shader without vertex shader")
		}
		if sp.Geometry.VerticesOut <= 0 {
			return l.fail(sp, "geometry shader output vertex count is zero")
		}
	}

	// Every varying the fragment stage reads must be produced by the
	// vertex stage, checked as set inclusion on the varying slots.
	if vert != nil && frag != nil {
		for slot := 0; slot < l.limits.MaxVarying; slot++ {
			read := program.FragAttribVar0 + slot
			if read >= 32 || frag.InputsRead&(1<<uint(read)) == 0 {
				continue
			}
			if !vert.OutputsWritten.Test(program.VertResultVar0 + slot) {
				return l.fail(sp, "fragment shader reads varying %s which is not written by the vertex shader",
					l.varyingNameAt(sp, slot))
			}
		}
	}

	// The scalar colour result and the indexed data results are
	// mutually exclusive output channels.
	if frag != nil && frag.OutputsWritten.Test(program.FragResultColor) {
		for i := 0; i < l.limits.MaxDrawBuffers; i++ {
			if frag.OutputsWritten.Test(program.FragResultData0 + i) {
				return l.fail(sp, "fragment shader writes both gl_FragColor and gl_FragData")
			}
		}
	}

	return l.validateFeedback(sp, vert)
}

// validateFeedback checks the transform feedback request against the
// linked varying table and the mode's component budget.
func (l *Linker) validateFeedback(sp *program.ShaderProgram, vert *program.StageProgram) error {
	if len(sp.Feedback.Varyings) == 0 {
		return nil
	}
	if vert == nil {
		return l.fail(sp, "transform feedback without vertex shader")
	}

	seen := make(map[string]bool)
	components := 0
	for _, name := range sp.Feedback.Varyings {
		if seen[name] {
			return l.fail(sp, "duplicate feedback varying %s", name)
		}
		seen[name] = true

		found := false
		for _, v := range sp.Varyings {
			if v.Name == name {
				components += v.Size
				found = true
				break
			}
		}
		if !found {
			return l.fail(sp, "vertex shader does not emit %s", name)
		}
	}

	limit := l.limits.MaxFeedbackInterleavedComponents
	if sp.Feedback.Mode == program.FeedbackSeparate {
		limit = l.limits.MaxFeedbackSeparateComponents
	}
	if components > limit {
		return l.fail(sp, "Too many feedback components: %d, max is %d", components, limit)
	}
	return nil
}

// varyingNameAt returns the name of the varying covering the linked
// slot, for diagnostics.
func (l *Linker) varyingNameAt(sp *program.ShaderProgram, slot int) string {
	base := 0
	for _, v := range sp.Varyings {
		n := v.RegisterCount()
		if slot >= base && slot < base+n {
			return v.Name
		}
		base += n
	}
	return "(unknown)"
}
