// Package glcontext implements gfx.Context on OpenGL 4.1 core.
package glcontext

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/hluengas/color-shredder/internal/engine/gfx"
	"github.com/hluengas/color-shredder/internal/logger"
	"github.com/hluengas/color-shredder/pkg/math"
)

// Config holds the default state applied when the context is created.
type Config struct {
	ClearColor [4]float32
	ClearDepth float64
	DepthTest  bool
	Blend      bool
}

// DefaultConfig returns black clear color, depth 1, depth testing and alpha blending.
func DefaultConfig() Config {
	return Config{
		ClearColor: [4]float32{0, 0, 0, 1},
		ClearDepth: 1,
		DepthTest:  true,
		Blend:      true,
	}
}

// Context wraps the current OpenGL context.
type Context struct {
	// Core profile needs a bound VAO for any attribute setup
	vao uint32

	// Attribute arrays enabled since the last UseProgram
	enabled []uint32
}

var _ gfx.Context = (*Context)(nil)

// New loads OpenGL function pointers and applies cfg.
// IMPORTANT: Must be called AFTER the OpenGL context is made current!
func New(cfg Config) (*Context, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Named("gl").Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	if cfg.Blend {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}
	if cfg.DepthTest {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(gl.LEQUAL)
	}
	gl.ClearColor(cfg.ClearColor[0], cfg.ClearColor[1], cfg.ClearColor[2], cfg.ClearColor[3])
	gl.ClearDepth(cfg.ClearDepth)

	c := &Context{}
	gl.GenVertexArrays(1, &c.vao)
	if c.vao == 0 {
		return nil, fmt.Errorf("vertex array: %w", gfx.ErrResourceCreation)
	}
	gl.BindVertexArray(c.vao)

	return c, nil
}

// Close releases the shared vertex array.
func (c *Context) Close() {
	if c.vao != 0 {
		gl.BindVertexArray(0)
		gl.DeleteVertexArrays(1, &c.vao)
		c.vao = 0
	}
}

// Viewport resizes the GL viewport.
func (c *Context) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// ReadPixels reads the back buffer as tightly packed RGBA rows, bottom row first.
func (c *Context) ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

// UseProgram makes p current and disables attribute arrays left by the previous program.
func (c *Context) UseProgram(p gfx.Program) {
	for _, index := range c.enabled {
		gl.DisableVertexAttribArray(index)
	}
	c.enabled = c.enabled[:0]
	gl.UseProgram(uint32(p))
}

// DeleteProgram deletes a linked program.
func (c *Context) DeleteProgram(p gfx.Program) {
	gl.DeleteProgram(uint32(p))
}

// UniformLocation resolves a uniform by name.
func (c *Context) UniformLocation(p gfx.Program, name string) (gfx.UniformLocation, error) {
	loc := gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
	if loc < 0 {
		return -1, fmt.Errorf("%w: %q in program %d", gfx.ErrUniformNotFound, name, p)
	}
	return gfx.UniformLocation(loc), nil
}

// Uniform1f sets a float uniform on the current program.
func (c *Context) Uniform1f(loc gfx.UniformLocation, v float32) {
	gl.Uniform1f(int32(loc), v)
}

// Uniform4f sets a vec4 uniform on the current program.
func (c *Context) Uniform4f(loc gfx.UniformLocation, v0, v1, v2, v3 float32) {
	gl.Uniform4f(int32(loc), v0, v1, v2, v3)
}

// UniformMatrix4fv uploads m as-is; see math.Mat4 for the layout contract.
func (c *Context) UniformMatrix4fv(loc gfx.UniformLocation, m math.Mat4) {
	gl.UniformMatrix4fv(int32(loc), 1, false, m.Ptr())
}

// CreateBuffer generates a buffer object.
func (c *Context) CreateBuffer() (gfx.Buffer, error) {
	var b uint32
	gl.GenBuffers(1, &b)
	if b == 0 {
		return 0, fmt.Errorf("buffer: %w", gfx.ErrResourceCreation)
	}
	return gfx.Buffer(b), nil
}

// DeleteBuffer deletes a buffer object.
func (c *Context) DeleteBuffer(b gfx.Buffer) {
	id := uint32(b)
	gl.DeleteBuffers(1, &id)
}

// BindBuffer binds b to target.
func (c *Context) BindBuffer(target gfx.Target, b gfx.Buffer) {
	gl.BindBuffer(glTarget(target), uint32(b))
}

// BufferFloat32 uploads data to the buffer bound to target.
func (c *Context) BufferFloat32(target gfx.Target, data []float32, usage gfx.Usage) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = unsafe.Pointer(&data[0])
	}
	gl.BufferData(glTarget(target), len(data)*4, ptr, glUsage(usage))
}

// BufferUint16 uploads data to the buffer bound to target.
func (c *Context) BufferUint16(target gfx.Target, data []uint16, usage gfx.Usage) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = unsafe.Pointer(&data[0])
	}
	gl.BufferData(glTarget(target), len(data)*2, ptr, glUsage(usage))
}

// VertexAttribPointer describes a float attribute in the bound array buffer.
func (c *Context) VertexAttribPointer(index uint32, size int32, stride int32) {
	gl.VertexAttribPointerWithOffset(index, size, gl.FLOAT, false, stride, 0)
}

// EnableVertexAttribArray enables an attribute until the next UseProgram.
func (c *Context) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
	c.enabled = append(c.enabled, index)
}

// DrawArrays issues a non-indexed draw.
func (c *Context) DrawArrays(mode gfx.Primitive, first, count int32) error {
	gl.DrawArrays(glPrimitive(mode), first, count)
	return checkError("draw arrays")
}

// DrawElements issues an indexed draw over uint16 indices.
func (c *Context) DrawElements(mode gfx.Primitive, count int32) error {
	gl.DrawElements(glPrimitive(mode), count, gl.UNSIGNED_SHORT, nil)
	return checkError("draw elements")
}

// Clear clears the color and depth buffers.
func (c *Context) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func checkError(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%w: %s: GL error 0x%04x", gfx.ErrDraw, op, code)
	}
	return nil
}

func glTarget(t gfx.Target) uint32 {
	if t == gfx.ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func glUsage(u gfx.Usage) uint32 {
	if u == gfx.DynamicDraw {
		return gl.DYNAMIC_DRAW
	}
	return gl.STATIC_DRAW
}

func glPrimitive(gfx.Primitive) uint32 {
	return gl.TRIANGLES
}
