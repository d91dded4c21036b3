package linker

import (
	"fmt"

	"github.com/spaghettifunk/prism/pipeline/core"
	"github.com/spaghettifunk/prism/pipeline/driver"
	"github.com/spaghettifunk/prism/pipeline/program"
)

// Compiler is the external shading-language compiler. The linker calls
// it when no attached unit of a stage is self-contained and a combined
// source must be compiled.
type Compiler interface {
	Compile(stage program.StageKind, source string) (*program.CompileUnit, error)
}

/**
 * @brief The shader program linker. A Linker carries the context
 * limits, the optional external compiler and target backend, and the
 * program-wide sampler unit counter. Link calls through one Linker are
 * sequential; distinct Linkers are independent.
 */
type Linker struct {
	limits   *Limits
	compiler Compiler
	backend  driver.Driver

	// Next free program-wide sampler unit. Monotonic across Link calls
	// so units stay distinct between programs linked by this Linker.
	nextSamplerUnit int
}

// Option configures a Linker.
type Option func(*Linker)

// WithCompiler attaches the external compiler used for concatenated
// sources.
func WithCompiler(c Compiler) Option {
	return func(l *Linker) { l.compiler = c }
}

// WithDriver attaches the target backend notified per linked stage.
func WithDriver(d driver.Driver) Option {
	return func(l *Linker) { l.backend = d }
}

// New creates a linker for the given context limits.
func New(limits *Limits, options ...Option) (*Linker, error) {
	if limits == nil {
		limits = DefaultLimits()
	}
	if err := limits.Validate(); err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	l := &Linker{
		limits:  limits,
		backend: driver.Null{},
	}
	for _, opt := range options {
		opt(l)
	}
	return l, nil
}

// fail records the first diagnostic on the program and returns it as an
// error. Later passes are skipped by the caller.
func (l *Linker) fail(sp *program.ShaderProgram, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	if sp.InfoLog == "" {
		sp.InfoLog = msg
	}
	sp.LinkStatus = false
	core.LogError("link failed: %s", msg)
	return fmt.Errorf("%s", msg)
}

// Link combines the program's compiled stage units into linked
// per-stage programs that agree on varyings, uniforms, samplers and
// attributes. On success LinkStatus is true and the linked stages are
// published on the program; on failure LinkStatus is false and InfoLog
// carries the first diagnostic.
func (l *Linker) Link(sp *program.ShaderProgram) error {
	// A relink starts from a clean slate.
	sp.LinkStatus = false
	sp.InfoLog = ""
	sp.Varyings = nil
	sp.Uniforms = nil
	sp.Attributes = nil
	sp.VertexProgram = nil
	sp.GeometryProgram = nil
	sp.FragmentProgram = nil

	if len(sp.Units) == 0 {
		return l.fail(sp, "no compiled shaders attached")
	}
	for _, unit := range sp.Units {
		if !unit.CompileStatus {
			return l.fail(sp, "shader was not compiled")
		}
	}

	// Select the main shader of each attached stage, then clone so
	// rewriting never touches the front-end's compiled units.
	stages := []program.StageKind{program.StageVertex, program.StageGeometry, program.StageFragment}
	linked := make(map[program.StageKind]*program.StageProgram)
	for _, stage := range stages {
		if len(sp.UnitsForStage(stage)) == 0 {
			continue
		}
		unit, err := l.selectMainShader(sp, stage)
		if err != nil {
			return err
		}
		linked[stage] = unit.Program.Clone()
	}

	for _, stage := range stages {
		prog, ok := linked[stage]
		if !ok {
			continue
		}
		if err := l.mergeVaryings(sp, prog); err != nil {
			return err
		}
		if err := l.mergeUniforms(sp, prog); err != nil {
			return err
		}
	}

	if vert, ok := linked[program.StageVertex]; ok {
		if err := l.resolveAttributes(sp, vert); err != nil {
			return err
		}
	}

	for _, prog := range linked {
		l.recomputeMetadata(prog)
	}

	if err := l.validate(sp, linked); err != nil {
		return err
	}

	for _, stage := range stages {
		prog, ok := linked[stage]
		if !ok {
			continue
		}
		if !l.backend.ProgramStringNotify(stage, prog) {
			return l.fail(sp, "driver rejected %s program", stage)
		}
	}

	// Publish the clones; ownership moves to the shader program.
	sp.VertexProgram = linked[program.StageVertex]
	sp.GeometryProgram = linked[program.StageGeometry]
	sp.FragmentProgram = linked[program.StageFragment]
	sp.LinkStatus = true
	core.LogDebug("linked program %s: %d varyings, %d uniforms, %d attributes",
		sp.ID, len(sp.Varyings), len(sp.Uniforms), len(sp.Attributes))
	return nil
}
