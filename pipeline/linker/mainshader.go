package linker

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/prism/pipeline/program"
)

// selectMainShader returns the compiled unit providing main for the
// stage. When no attached unit is self-contained the sources of every
// unit of the stage are concatenated and handed to the external
// compiler, and the resulting unit is adopted.
func (l *Linker) selectMainShader(sp *program.ShaderProgram, stage program.StageKind) (*program.CompileUnit, error) {
	units := sp.UnitsForStage(stage)
	for _, unit := range units {
		if unit.DefinesMain && !unit.UnresolvedRefs {
			return unit, nil
		}
	}

	// No unit is self-contained. Build one combined source and compile
	// it as a whole.
	if l.compiler == nil {
		return nil, l.fail(sp, "Unresolved symbols")
	}
	combined, err := l.concatenateSources(sp, stage, units)
	if err != nil {
		return nil, err
	}
	unit, err := l.compiler.Compile(stage, combined)
	if err != nil {
		return nil, l.fail(sp, "Unresolved symbols")
	}
	if !unit.CompileStatus || !unit.DefinesMain || unit.UnresolvedRefs || unit.Program == nil {
		return nil, l.fail(sp, "Unresolved symbols")
	}
	unit.Stage = stage
	unit.Source = combined
	return unit, nil
}

// concatenateSources joins the source texts of every unit of the stage.
// The first unit's pragmas are kept; #version directives after the
// first are commented out so the combined text stays well-formed. For
// the geometry stage the input vertex count constant is prepended.
func (l *Linker) concatenateSources(sp *program.ShaderProgram, stage program.StageKind, units []*program.CompileUnit) (string, error) {
	var sb strings.Builder

	if stage == program.StageGeometry {
		n := sp.Geometry.InputType.VerticesIn()
		if n == 0 {
			return "", l.fail(sp, "invalid geometry input primitive type")
		}
		sb.WriteString(fmt.Sprintf("const int gl_VerticesIn = %d;\n", n))
	}

	for i, unit := range units {
		source := unit.Source
		if i == 0 {
			if unit.Pragmas != "" {
				sb.WriteString(unit.Pragmas)
				sb.WriteString("\n")
			}
		} else {
			source = suppressVersionDirectives(source)
		}
		sb.WriteString(source)
		if !strings.HasSuffix(source, "\n") {
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}

// suppressVersionDirectives turns every #version directive into a line
// comment by replacing its first two characters.
func suppressVersionDirectives(source string) string {
	out := []byte(source)
	for idx := 0; ; {
		pos := strings.Index(string(out[idx:]), "#version")
		if pos < 0 {
			break
		}
		pos += idx
		out[pos] = '/'
		out[pos+1] = '/'
		idx = pos + 2
	}
	return string(out)
}
