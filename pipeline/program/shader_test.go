package program

import (
	"testing"
)

func TestFindVaryingSlots(t *testing.T) {
	sp := NewShaderProgram()
	sp.Varyings = []*Varying{
		{Name: "m", Size: 16, DataType: DataTypeMatrix4}, // four registers
		{Name: "c", Size: 4, DataType: DataTypeFloat32_4},
	}
	if got := sp.FindVarying("m"); got != 0 {
		t.Errorf("Expecting m at slot 0, got %d", got)
	}
	if got := sp.FindVarying("c"); got != 4 {
		t.Errorf("Expecting c after the mat4 at slot 4, got %d", got)
	}
	if got := sp.FindVarying("missing"); got != -1 {
		t.Errorf("Expecting -1 for an unknown varying, got %d", got)
	}
}

func TestUnitsForStage(t *testing.T) {
	sp := NewShaderProgram()
	sp.Attach(NewCompileUnit(StageVertex, &StageProgram{Stage: StageVertex}))
	sp.Attach(NewCompileUnit(StageFragment, &StageProgram{Stage: StageFragment}))
	sp.Attach(NewCompileUnit(StageVertex, &StageProgram{Stage: StageVertex}))

	if got := len(sp.UnitsForStage(StageVertex)); got != 2 {
		t.Errorf("Expecting 2 vertex units, got %d", got)
	}
	if got := len(sp.UnitsForStage(StageGeometry)); got != 0 {
		t.Errorf("Expecting no geometry units, got %d", got)
	}
}

func TestVerticesIn(t *testing.T) {
	cases := map[PrimitiveType]int{
		PrimitivePoints:             1,
		PrimitiveLines:              2,
		PrimitiveTriangles:          3,
		PrimitiveLinesAdjacency:     4,
		PrimitiveTrianglesAdjacency: 6,
		PrimitiveTriangleStrip:      0,
	}
	for prim, want := range cases {
		if got := prim.VerticesIn(); got != want {
			t.Errorf("primitive %d: expecting %d vertices in, got %d", prim, want, got)
		}
	}
}

func TestDataTypeFloatSize(t *testing.T) {
	cases := map[DataType]int{
		DataTypeFloat32:   1,
		DataTypeFloat32_3: 3,
		DataTypeMatrix4:   16,
		DataTypeSampler2D: 1,
	}
	for dt, want := range cases {
		if got := dt.FloatSize(); got != want {
			t.Errorf("type %d: expecting %d floats, got %d", dt, want, got)
		}
	}
}
