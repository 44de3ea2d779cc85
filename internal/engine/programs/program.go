// Package programs implements the GPU program resources: a flat-color
// rectangle, a gradient rectangle and a lit height-field surface.
//
// Each program acquires its shader program, buffers and uniform locations
// once at construction. Render only rewrites buffer contents and uniforms.
package programs

import (
	"errors"

	"github.com/hluengas/color-shredder/internal/engine/gfx"
	"github.com/hluengas/color-shredder/internal/engine/transform"
)

// ErrInvalidHeightFieldLength is returned when Frame.Heights does not hold
// one value per surface vertex.
var ErrInvalidHeightFieldLength = errors.New("programs: height field length does not match grid")

// Attribute slots shared by the shaders.
const (
	attribPosition uint32 = 0
	attribColor    uint32 = 1 // Gradient rectangle
	attribHeight   uint32 = 1 // Height-field surface
	attribNormal   uint32 = 2
)

// Frame is the per-call render input. The 2D programs ignore the rotation
// and height fields.
type Frame struct {
	Bounds    transform.Bounds
	Surface   transform.Surface
	RotationX float32 // Radians
	RotationY float32 // Radians
	Heights   []float32
}

// Program is a render program owning its GPU resources.
type Program interface {
	// Render draws one instance described by f.
	Render(ctx gfx.Context, f Frame) error
	// Destroy releases every GPU resource. Safe to call more than once.
	Destroy(ctx gfx.Context)
}

// resources tracks the handles a program owns so construction failures and
// Destroy share one teardown path.
type resources struct {
	program gfx.Program
	buffers []gfx.Buffer
}

func (r *resources) link(ctx gfx.Context, vertexSrc, fragmentSrc string) error {
	p, err := ctx.CreateProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return err
	}
	r.program = p
	return nil
}

func (r *resources) uniform(ctx gfx.Context, name string) (gfx.UniformLocation, error) {
	return ctx.UniformLocation(r.program, name)
}

// floatBuffer creates a buffer and fills it with data.
func (r *resources) floatBuffer(ctx gfx.Context, data []float32, usage gfx.Usage) (gfx.Buffer, error) {
	b, err := r.newBuffer(ctx)
	if err != nil {
		return 0, err
	}
	ctx.BindBuffer(gfx.ArrayBuffer, b)
	ctx.BufferFloat32(gfx.ArrayBuffer, data, usage)
	return b, nil
}

// indexBuffer creates an element buffer and fills it with indices.
func (r *resources) indexBuffer(ctx gfx.Context, indices []uint16) (gfx.Buffer, error) {
	b, err := r.newBuffer(ctx)
	if err != nil {
		return 0, err
	}
	ctx.BindBuffer(gfx.ElementArrayBuffer, b)
	ctx.BufferUint16(gfx.ElementArrayBuffer, indices, gfx.StaticDraw)
	return b, nil
}

func (r *resources) newBuffer(ctx gfx.Context) (gfx.Buffer, error) {
	b, err := ctx.CreateBuffer()
	if err != nil {
		return 0, err
	}
	r.buffers = append(r.buffers, b)
	return b, nil
}

func (r *resources) release(ctx gfx.Context) {
	for _, b := range r.buffers {
		ctx.DeleteBuffer(b)
	}
	r.buffers = nil
	if r.program != 0 {
		ctx.DeleteProgram(r.program)
		r.program = 0
	}
}

// bindAttrib binds b and describes it as a tightly packed float attribute.
func bindAttrib(ctx gfx.Context, index uint32, b gfx.Buffer, size int32) {
	ctx.BindBuffer(gfx.ArrayBuffer, b)
	ctx.VertexAttribPointer(index, size, 0)
	ctx.EnableVertexAttribArray(index)
}

// uniforms resolves each named location, stopping at the first failure.
func uniforms(ctx gfx.Context, r *resources, names map[string]*gfx.UniformLocation) error {
	for name, loc := range names {
		l, err := r.uniform(ctx, name)
		if err != nil {
			return err
		}
		*loc = l
	}
	return nil
}
