// Package gfxtest provides a recording gfx.Context for tests.
package gfxtest

import (
	"fmt"
	"slices"

	"github.com/hluengas/color-shredder/internal/engine/gfx"
	"github.com/hluengas/color-shredder/pkg/math"
)

// Call is one recorded context call.
type Call struct {
	Name string
	Args []any
}

// Draw is one recorded draw call.
type Draw struct {
	Program gfx.Program
	Indexed bool
	First   int32
	Count   int32
	// Buffer bound to ElementArrayBuffer at draw time (indexed draws only)
	Elements gfx.Buffer
}

// Attrib is the layout of an enabled vertex attribute.
type Attrib struct {
	Buffer gfx.Buffer
	Size   int32
	Stride int32
}

// Upload is the last data written into a buffer.
type Upload struct {
	Floats  []float32
	Uint16s []uint16
	Usage   gfx.Usage
	Count   int // Number of uploads so far
}

// Context records every call and keeps enough state to assert on bindings,
// uploads and uniforms. The zero value is not usable; call New.
type Context struct {
	Calls []Call
	Draws []Draw

	// Failure injection
	FailCompile string // "vertex" or "fragment"
	FailLink    bool
	FailProgram bool
	FailBuffer  int // Fail the Nth CreateBuffer call (1-based), 0 disables
	FailDraw    bool
	Missing     map[string]bool // Uniform names that do not resolve

	nextID   uint32
	buffers  int
	programs map[gfx.Program]map[string]gfx.UniformLocation

	current gfx.Program
	bound   map[gfx.Target]gfx.Buffer
	attribs map[uint32]Attrib
	pending map[uint32]Attrib // Described but not yet enabled

	Uploads  map[gfx.Buffer]*Upload
	Uniforms map[gfx.UniformLocation]any
	Clears   int
}

var _ gfx.Context = (*Context)(nil)

// New returns an empty recording context.
func New() *Context {
	return &Context{
		Missing:  map[string]bool{},
		programs: map[gfx.Program]map[string]gfx.UniformLocation{},
		bound:    map[gfx.Target]gfx.Buffer{},
		attribs:  map[uint32]Attrib{},
		pending:  map[uint32]Attrib{},
		Uploads:  map[gfx.Buffer]*Upload{},
		Uniforms: map[gfx.UniformLocation]any{},
	}
}

func (c *Context) record(name string, args ...any) {
	c.Calls = append(c.Calls, Call{Name: name, Args: args})
}

func (c *Context) id() uint32 {
	c.nextID++
	return c.nextID
}

// Count returns how many times a call with name was recorded.
func (c *Context) Count(name string) int {
	n := 0
	for _, call := range c.Calls {
		if call.Name == name {
			n++
		}
	}
	return n
}

// Names returns the recorded call names in order.
func (c *Context) Names() []string {
	names := make([]string, len(c.Calls))
	for i, call := range c.Calls {
		names[i] = call.Name
	}
	return names
}

// Reset forgets recorded calls and draws but keeps resources.
func (c *Context) Reset() {
	c.Calls = nil
	c.Draws = nil
}

// Live returns the number of programs and buffers not yet deleted.
func (c *Context) Live() (programs, buffers int) {
	return len(c.programs), c.buffers
}

// Attrib returns the layout of an enabled attribute.
func (c *Context) Attrib(index uint32) (Attrib, bool) {
	a, ok := c.attribs[index]
	return a, ok
}

// Uniform returns the last value pushed to the named uniform of p.
func (c *Context) Uniform(p gfx.Program, name string) (any, bool) {
	loc, ok := c.programs[p][name]
	if !ok {
		return nil, false
	}
	v, ok := c.Uniforms[loc]
	return v, ok
}

func (c *Context) CreateProgram(vertexSrc, fragmentSrc string) (gfx.Program, error) {
	c.record("CreateProgram", vertexSrc, fragmentSrc)
	switch {
	case c.FailCompile != "":
		return 0, &gfx.ShaderCompileError{Stage: c.FailCompile, Log: "0:1(1): error: syntax error"}
	case c.FailLink:
		return 0, &gfx.ProgramLinkError{Log: "error: vertex shader output not read by fragment shader"}
	case c.FailProgram:
		return 0, fmt.Errorf("program: %w", gfx.ErrResourceCreation)
	}
	p := gfx.Program(c.id())
	c.programs[p] = map[string]gfx.UniformLocation{}
	return p, nil
}

func (c *Context) DeleteProgram(p gfx.Program) {
	c.record("DeleteProgram", p)
	delete(c.programs, p)
}

func (c *Context) UseProgram(p gfx.Program) {
	c.record("UseProgram", p)
	c.current = p
	clear(c.attribs)
}

func (c *Context) UniformLocation(p gfx.Program, name string) (gfx.UniformLocation, error) {
	c.record("UniformLocation", p, name)
	uniforms, ok := c.programs[p]
	if !ok || c.Missing[name] {
		return -1, fmt.Errorf("%w: %q in program %d", gfx.ErrUniformNotFound, name, p)
	}
	loc := gfx.UniformLocation(c.id())
	uniforms[name] = loc
	return loc, nil
}

func (c *Context) Uniform1f(loc gfx.UniformLocation, v float32) {
	c.record("Uniform1f", loc, v)
	c.Uniforms[loc] = v
}

func (c *Context) Uniform4f(loc gfx.UniformLocation, v0, v1, v2, v3 float32) {
	c.record("Uniform4f", loc, v0, v1, v2, v3)
	c.Uniforms[loc] = [4]float32{v0, v1, v2, v3}
}

func (c *Context) UniformMatrix4fv(loc gfx.UniformLocation, m math.Mat4) {
	c.record("UniformMatrix4fv", loc, m)
	c.Uniforms[loc] = m
}

func (c *Context) CreateBuffer() (gfx.Buffer, error) {
	c.record("CreateBuffer")
	if c.FailBuffer > 0 {
		c.FailBuffer--
		if c.FailBuffer == 0 {
			return 0, fmt.Errorf("buffer: %w", gfx.ErrResourceCreation)
		}
	}
	c.buffers++
	return gfx.Buffer(c.id()), nil
}

func (c *Context) DeleteBuffer(b gfx.Buffer) {
	c.record("DeleteBuffer", b)
	c.buffers--
	delete(c.Uploads, b)
}

func (c *Context) BindBuffer(target gfx.Target, b gfx.Buffer) {
	c.record("BindBuffer", target, b)
	c.bound[target] = b
}

func (c *Context) upload(target gfx.Target, usage gfx.Usage) *Upload {
	b := c.bound[target]
	u, ok := c.Uploads[b]
	if !ok {
		u = &Upload{}
		c.Uploads[b] = u
	}
	u.Usage = usage
	u.Count++
	return u
}

func (c *Context) BufferFloat32(target gfx.Target, data []float32, usage gfx.Usage) {
	c.record("BufferFloat32", target, len(data), usage)
	c.upload(target, usage).Floats = slices.Clone(data)
}

func (c *Context) BufferUint16(target gfx.Target, data []uint16, usage gfx.Usage) {
	c.record("BufferUint16", target, len(data), usage)
	c.upload(target, usage).Uint16s = slices.Clone(data)
}

func (c *Context) VertexAttribPointer(index uint32, size int32, stride int32) {
	c.record("VertexAttribPointer", index, size, stride)
	c.pending[index] = Attrib{Buffer: c.bound[gfx.ArrayBuffer], Size: size, Stride: stride}
}

func (c *Context) EnableVertexAttribArray(index uint32) {
	c.record("EnableVertexAttribArray", index)
	c.attribs[index] = c.pending[index]
}

func (c *Context) DrawArrays(mode gfx.Primitive, first, count int32) error {
	c.record("DrawArrays", mode, first, count)
	if c.FailDraw {
		return fmt.Errorf("%w: injected", gfx.ErrDraw)
	}
	c.Draws = append(c.Draws, Draw{Program: c.current, First: first, Count: count})
	return nil
}

func (c *Context) DrawElements(mode gfx.Primitive, count int32) error {
	c.record("DrawElements", mode, count)
	if c.FailDraw {
		return fmt.Errorf("%w: injected", gfx.ErrDraw)
	}
	c.Draws = append(c.Draws, Draw{
		Program:  c.current,
		Indexed:  true,
		Count:    count,
		Elements: c.bound[gfx.ElementArrayBuffer],
	})
	return nil
}

func (c *Context) Clear() {
	c.record("Clear")
	c.Clears++
}
