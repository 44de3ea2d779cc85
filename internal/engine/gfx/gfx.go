// Package gfx defines the graphics context capabilities the render programs
// depend on. Implementations wrap a concrete API (see glcontext) or record
// calls for tests (see gfxtest).
package gfx

import (
	"github.com/hluengas/color-shredder/pkg/math"
)

// Program is a linked shader program handle. Zero is never a valid program.
type Program uint32

// Buffer is a GPU buffer handle. Zero is never a valid buffer.
type Buffer uint32

// UniformLocation is a resolved uniform slot within a linked program.
type UniformLocation int32

// Target selects the binding point of a buffer.
type Target int

const (
	ArrayBuffer        Target = iota // Per-vertex attributes
	ElementArrayBuffer               // Triangle indices
)

// Usage hints how often a buffer's contents change.
type Usage int

const (
	StaticDraw  Usage = iota // Filled once at construction
	DynamicDraw              // Refilled every frame
)

// Primitive is the primitive type of a draw call.
type Primitive int

const (
	Triangles Primitive = iota
)

// Context is the capability surface of the rendering context.
// All calls are synchronous and issued from a single goroutine.
type Context interface {
	// CreateProgram compiles both stages and links them.
	// Returns *ShaderCompileError, *ProgramLinkError or ErrResourceCreation.
	CreateProgram(vertexSrc, fragmentSrc string) (Program, error)
	DeleteProgram(p Program)
	UseProgram(p Program)

	// UniformLocation resolves name, returning ErrUniformNotFound if it is inactive.
	UniformLocation(p Program, name string) (UniformLocation, error)
	Uniform1f(loc UniformLocation, v float32)
	Uniform4f(loc UniformLocation, v0, v1, v2, v3 float32)
	UniformMatrix4fv(loc UniformLocation, m math.Mat4)

	// CreateBuffer returns ErrResourceCreation if no buffer could be allocated.
	CreateBuffer() (Buffer, error)
	DeleteBuffer(b Buffer)
	BindBuffer(target Target, b Buffer)
	// BufferFloat32 replaces the contents of the buffer bound to target.
	BufferFloat32(target Target, data []float32, usage Usage)
	// BufferUint16 replaces the contents of the buffer bound to target.
	BufferUint16(target Target, data []uint16, usage Usage)

	// VertexAttribPointer describes float attributes in the bound array buffer.
	// stride is in bytes, 0 means tightly packed.
	VertexAttribPointer(index uint32, size int32, stride int32)
	EnableVertexAttribArray(index uint32)

	// DrawArrays draws count vertices starting at first.
	DrawArrays(mode Primitive, first, count int32) error
	// DrawElements draws count uint16 indices from the bound element buffer.
	DrawElements(mode Primitive, count int32) error

	// Clear clears the color and depth buffers.
	Clear()
}
