/*
This is an example of application that will use the
pipeline packages to link a small shader program
*/
package main

import (
	"fmt"
	"os"

	"github.com/spaghettifunk/prism/pipeline/linker"
	"github.com/spaghettifunk/prism/pipeline/program"
)

// passThroughVertex builds a vertex stage that transforms the incoming
// position and forwards one colour varying.
func passThroughVertex() *program.StageProgram {
	return &program.StageProgram{
		Stage: program.StageVertex,
		Parameters: []*program.Parameter{
			{Kind: program.ParamUniform, Name: "mvp", Size: 16, DataType: program.DataTypeMatrix4, Used: true},
			{Kind: program.ParamVarying, Name: "v_color", Size: 4, DataType: program.DataTypeFloat32_4, Used: true},
		},
		Instructions: []*program.Instruction{
			{
				Op:  program.OpDp4,
				Dst: program.DstOperand{File: program.FileOutput, Index: program.VertResultHPos, WriteMask: program.WriteMaskXYZW},
				Src: [3]program.SrcOperand{
					{File: program.FileUniform, Index: 0},
					{File: program.FileInput, Index: program.VertAttribPos},
				},
			},
			{
				Op:  program.OpMov,
				Dst: program.DstOperand{File: program.FileVarying, Index: 0, WriteMask: program.WriteMaskXYZW},
				Src: [3]program.SrcOperand{
					{File: program.FileInput, Index: program.VertAttribColor0},
				},
			},
			{Op: program.OpEnd},
		},
	}
}

// passThroughFragment builds a fragment stage that writes the colour
// varying to the scalar colour output.
func passThroughFragment() *program.StageProgram {
	return &program.StageProgram{
		Stage: program.StageFragment,
		Parameters: []*program.Parameter{
			{Kind: program.ParamVarying, Name: "v_color", Size: 4, DataType: program.DataTypeFloat32_4, Used: true},
		},
		Instructions: []*program.Instruction{
			{
				Op:  program.OpMov,
				Dst: program.DstOperand{File: program.FileOutput, Index: program.FragResultColor, WriteMask: program.WriteMaskXYZW},
				Src: [3]program.SrcOperand{
					{File: program.FileVarying, Index: 0},
				},
			},
			{Op: program.OpEnd},
		},
	}
}

func main() {
	l, err := linker.New(linker.DefaultLimits())
	if err != nil {
		panic(err)
	}

	sp := program.NewShaderProgram()
	sp.Attach(program.NewCompileUnit(program.StageVertex, passThroughVertex()))
	sp.Attach(program.NewCompileUnit(program.StageFragment, passThroughFragment()))

	if err := l.Link(sp); err != nil {
		fmt.Fprintf(os.Stderr, "link failed: %s\n", sp.InfoLog)
		os.Exit(1)
	}

	fmt.Print(sp.VertexProgram.String())
	fmt.Print(sp.FragmentProgram.String())
	for slot, v := range sp.Varyings {
		fmt.Printf("varying %d: %s (%d floats)\n", slot, v.Name, v.Size)
	}
	for _, u := range sp.Uniforms {
		fmt.Printf("uniform %s: vert=%d geom=%d frag=%d\n", u.Name, u.VertPos, u.GeomPos, u.FragPos)
	}
	for _, a := range sp.Attributes {
		fmt.Printf("attribute %s: slot=%d\n", a.Name, a.Slot)
	}
}
