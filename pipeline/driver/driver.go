package driver

import (
	"github.com/spaghettifunk/prism/pipeline/program"
)

// Driver is the target backend notified once per linked stage. A
// backend returning false rejects the stage and fails the link.
type Driver interface {
	ProgramStringNotify(stage program.StageKind, prog *program.StageProgram) bool
}

// Null accepts every stage. Used when no target backend is attached.
type Null struct{}

func (Null) ProgramStringNotify(stage program.StageKind, prog *program.StageProgram) bool {
	return true
}
