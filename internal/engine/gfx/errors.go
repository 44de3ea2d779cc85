package gfx

import (
	"errors"
	"fmt"
)

var (
	// ErrResourceCreation means the context could not allocate a program or buffer.
	ErrResourceCreation = errors.New("gfx: resource creation failed")

	// ErrUniformNotFound means a uniform name is missing or inactive in a program.
	ErrUniformNotFound = errors.New("gfx: uniform not found")

	// ErrDraw means the context reported a failure while drawing.
	ErrDraw = errors.New("gfx: draw failed")
)

// ShaderCompileError carries the backend diagnostic for a stage that failed to compile.
type ShaderCompileError struct {
	Stage string // "vertex" or "fragment"
	Log   string
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("gfx: %s shader: %s", e.Stage, e.Log)
}

// ProgramLinkError carries the backend diagnostic for a program that failed to link.
type ProgramLinkError struct {
	Log string
}

func (e *ProgramLinkError) Error() string {
	return fmt.Sprintf("gfx: link: %s", e.Log)
}
