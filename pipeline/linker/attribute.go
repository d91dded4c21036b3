package linker

import (
	"github.com/spaghettifunk/prism/pipeline/program"
)

// builtinAttribNames maps vertex built-in input registers to the names
// published for introspection.
var builtinAttribNames = map[int]string{
	program.VertAttribPos:      "gl_Vertex",
	program.VertAttribWeight:   "gl_Weight",
	program.VertAttribNormal:   "gl_Normal",
	program.VertAttribColor0:   "gl_Color",
	program.VertAttribColor1:   "gl_SecondaryColor",
	program.VertAttribFogCoord: "gl_FogCoord",
	program.VertAttribTex0:     "gl_MultiTexCoord0",
	program.VertAttribTex1:     "gl_MultiTexCoord1",
	program.VertAttribTex2:     "gl_MultiTexCoord2",
	program.VertAttribTex3:     "gl_MultiTexCoord3",
	program.VertAttribTex4:     "gl_MultiTexCoord4",
	program.VertAttribTex5:     "gl_MultiTexCoord5",
	program.VertAttribTex6:     "gl_MultiTexCoord6",
	program.VertAttribTex7:     "gl_MultiTexCoord7",
}

// resolveAttributes assigns a generic slot to every user attribute the
// vertex program reads, honoring user pre-bindings, and rewrites input
// operands to the assigned slots. Built-ins actually read are published
// with SlotUnset so introspection can enumerate them.
func (l *Linker) resolveAttributes(sp *program.ShaderProgram, prog *program.StageProgram) error {
	// Slots already spoken for: every user pre-binding, plus slot 0
	// when the program reads the built-in position, which aliases it.
	var usedAttributes uint32
	for _, slot := range sp.AttributeBindings {
		if slot >= 0 && slot < l.limits.MaxVertexGenericAttribs {
			usedAttributes |= 1 << uint(slot)
		}
	}
	readsPosition := false
	for _, inst := range prog.Instructions {
		for s := 0; s < inst.Op.NumSrc(); s++ {
			if inst.Src[s].File == program.FileInput && int(inst.Src[s].Index) == program.VertAttribPos {
				readsPosition = true
			}
		}
	}
	if readsPosition {
		usedAttributes |= 1
	}

	// Generic register k to assigned slot.
	slotFor := make(map[int]int)

	for _, inst := range prog.Instructions {
		for s := 0; s < inst.Op.NumSrc(); s++ {
			src := &inst.Src[s]
			if src.File != program.FileInput || int(src.Index) < program.VertAttribGeneric0 {
				continue
			}
			k := int(src.Index) - program.VertAttribGeneric0
			slot, ok := slotFor[k]
			if !ok {
				if k >= len(prog.Attributes) {
					return l.fail(sp, "attribute register %d has no declaration", k)
				}
				att := prog.Attributes[k]
				if bound, found := sp.AttributeBindings[att.Name]; found {
					slot = bound
				} else {
					slot = -1
					for i := 0; i < l.limits.MaxVertexGenericAttribs; i++ {
						if usedAttributes&(1<<uint(i)) == 0 {
							slot = i
							break
						}
					}
					if slot < 0 {
						return l.fail(sp, "Too many vertex attributes")
					}
				}
				usedAttributes |= 1 << uint(slot)
				slotFor[k] = slot
				sp.Attributes = append(sp.Attributes, &program.Attribute{
					Name:     att.Name,
					Size:     att.Size,
					DataType: att.DataType,
					Slot:     slot,
				})
			}
			src.Index = int16(program.VertAttribGeneric0 + slot)
		}
	}

	// Publish the built-ins the program reads.
	seen := make(map[int]bool)
	for _, inst := range prog.Instructions {
		for s := 0; s < inst.Op.NumSrc(); s++ {
			src := inst.Src[s]
			if src.File != program.FileInput || int(src.Index) >= program.VertAttribGeneric0 {
				continue
			}
			idx := int(src.Index)
			if seen[idx] {
				continue
			}
			seen[idx] = true
			name, ok := builtinAttribNames[idx]
			if !ok {
				continue
			}
			sp.Attributes = append(sp.Attributes, &program.Attribute{
				Name:     name,
				Size:     4,
				DataType: program.DataTypeFloat32_4,
				Slot:     program.SlotUnset,
			})
		}
	}
	return nil
}
