package program

import (
	"github.com/google/uuid"
)

/**
 * @brief One compilation unit handed over by the front-end: the source
 * text, its compile status and the lowered stage program.
 */
type CompileUnit struct {
	/** @brief The unit identifier. */
	ID uuid.UUID
	/** @brief Which pipeline stage the unit belongs to. */
	Stage StageKind
	/** @brief The original source text, kept for concatenation. */
	Source string
	/** @brief Pragma lines the front-end collected from the source. */
	Pragmas string
	/** @brief True when the front-end compiled the unit successfully. */
	CompileStatus bool
	/** @brief True when the unit defines main. */
	DefinesMain bool
	/** @brief True when the unit still references undefined externals. */
	UnresolvedRefs bool
	/** @brief The lowered instruction representation. */
	Program *StageProgram
}

// NewCompileUnit builds a unit with a fresh identifier.
func NewCompileUnit(stage StageKind, prog *StageProgram) *CompileUnit {
	return &CompileUnit{
		ID:            uuid.New(),
		Stage:         stage,
		CompileStatus: true,
		DefinesMain:   true,
		Program:       prog,
	}
}

/** @brief A program-wide varying table entry. Its linked varying slot is
 * the sum of the register counts of the entries before it in
 * ShaderProgram.Varyings; it covers RegisterCount consecutive slots. */
type Varying struct {
	Name string
	/** @brief Element size in floats. */
	Size int
	/** @brief The data type of the varying. */
	DataType DataType
	/** @brief Qualifier flags (centroid, invariant). */
	Flags ParamFlags
}

// RegisterCount returns how many 4-float slots the varying occupies.
func (v *Varying) RegisterCount() int {
	n := (v.Size + 3) / 4
	if n < 1 {
		n = 1
	}
	return n
}

// PosUnset marks a uniform as absent from a stage's parameter list.
const PosUnset = -1

/** @brief A program-wide uniform table entry: one parameter index per
 * stage, PosUnset where the stage does not declare the uniform. */
type Uniform struct {
	Name    string
	VertPos int
	GeomPos int
	FragPos int
}

// SlotUnset marks a built-in attribute that has no generic slot.
const SlotUnset = -1

/** @brief A program-wide attribute table entry. Built-ins carry
 * Slot == SlotUnset. */
type Attribute struct {
	Name string
	/** @brief Element size in floats. */
	Size int
	/** @brief The data type of the attribute. */
	DataType DataType
	/** @brief The assigned generic slot, or SlotUnset for built-ins. */
	Slot int
}

/** @brief Transform feedback buffer layouts. */
type FeedbackMode uint8

const (
	FeedbackInterleaved FeedbackMode = iota
	FeedbackSeparate
)

/** @brief Transform feedback capture request, populated before linking. */
type FeedbackConfig struct {
	Mode FeedbackMode
	/** @brief Ordered varying names to capture; empty disables feedback. */
	Varyings []string
}

/** @brief Input and output primitive types for the geometry stage. */
type PrimitiveType uint8

const (
	PrimitivePoints PrimitiveType = iota
	PrimitiveLines
	PrimitiveLinesAdjacency
	PrimitiveTriangles
	PrimitiveTrianglesAdjacency
	PrimitiveTriangleStrip
)

// VerticesIn returns how many vertices the geometry stage receives per
// input primitive.
func (p PrimitiveType) VerticesIn() int {
	switch p {
	case PrimitivePoints:
		return 1
	case PrimitiveLines:
		return 2
	case PrimitiveTriangles:
		return 3
	case PrimitiveLinesAdjacency:
		return 4
	case PrimitiveTrianglesAdjacency:
		return 6
	}
	return 0
}

/** @brief Geometry stage configuration, populated before linking. */
type GeometryConfig struct {
	InputType  PrimitiveType
	OutputType PrimitiveType
	/** @brief Maximum vertices the stage may emit per invocation. */
	VerticesOut int
}

/**
 * @brief The linkable container: the compiled units of every stage, the
 * linked per-stage programs, and the program-wide symbol tables the
 * linker fills in.
 */
type ShaderProgram struct {
	/** @brief The program identifier. */
	ID uuid.UUID

	/** @brief Compiled units in attach order. */
	Units []*CompileUnit

	/** @brief The linked per-stage programs, nil until a successful link. */
	VertexProgram   *StageProgram
	GeometryProgram *StageProgram
	FragmentProgram *StageProgram

	/** @brief Program-wide varying table in slot order; see FindVarying
	  for an entry's linked slot. */
	Varyings []*Varying
	/** @brief Program-wide uniform table. */
	Uniforms []*Uniform
	/** @brief Program-wide attribute table. */
	Attributes []*Attribute

	/** @brief User attribute pre-bindings, name to generic slot. */
	AttributeBindings map[string]int

	/** @brief Transform feedback request. */
	Feedback FeedbackConfig
	/** @brief Geometry stage configuration. */
	Geometry GeometryConfig

	/** @brief True after a successful link. */
	LinkStatus bool
	/** @brief Diagnostic text for the last link attempt. */
	InfoLog string
}

// NewShaderProgram builds an empty program with a fresh identifier.
func NewShaderProgram() *ShaderProgram {
	return &ShaderProgram{
		ID:                uuid.New(),
		AttributeBindings: make(map[string]int),
	}
}

// Attach appends a compiled unit to the program.
func (sp *ShaderProgram) Attach(unit *CompileUnit) {
	sp.Units = append(sp.Units, unit)
}

// BindAttribute records a user attribute pre-binding. Bindings take
// effect at the next link.
func (sp *ShaderProgram) BindAttribute(name string, slot int) {
	sp.AttributeBindings[name] = slot
}

// UnitsForStage returns the compiled units targeting the given stage,
// in attach order.
func (sp *ShaderProgram) UnitsForStage(stage StageKind) []*CompileUnit {
	var units []*CompileUnit
	for _, u := range sp.Units {
		if u.Stage == stage {
			units = append(units, u)
		}
	}
	return units
}

// FindVarying returns the linked slot of the named varying, or -1.
func (sp *ShaderProgram) FindVarying(name string) int {
	slot := 0
	for _, v := range sp.Varyings {
		if v.Name == name {
			return slot
		}
		slot += v.RegisterCount()
	}
	return -1
}

// FindUniform returns the program-wide uniform entry, or nil.
func (sp *ShaderProgram) FindUniform(name string) *Uniform {
	for _, u := range sp.Uniforms {
		if u.Name == name {
			return u
		}
	}
	return nil
}

// FindAttribute returns the program-wide attribute entry, or nil.
func (sp *ShaderProgram) FindAttribute(name string) *Attribute {
	for _, a := range sp.Attributes {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// StageProgramFor returns the linked program for the stage, nil when
// the stage is absent or the program is unlinked.
func (sp *ShaderProgram) StageProgramFor(stage StageKind) *StageProgram {
	switch stage {
	case StageVertex:
		return sp.VertexProgram
	case StageGeometry:
		return sp.GeometryProgram
	case StageFragment:
		return sp.FragmentProgram
	}
	return nil
}
