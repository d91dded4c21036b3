package core

import (
	"errors"
)

var (
	ErrLinkFailed  = errors.New("program link failed")
	ErrNotCompiled = errors.New("shader was not compiled")
	ErrUnknown     = errors.New("unknown")
)
