package programs

import (
	"errors"
	"slices"
	"testing"

	"github.com/hluengas/color-shredder/internal/engine/gfx"
	"github.com/hluengas/color-shredder/internal/engine/gfx/gfxtest"
	"github.com/hluengas/color-shredder/internal/engine/grid"
	"github.com/hluengas/color-shredder/internal/engine/transform"
)

func newTestGraph(t *testing.T, ctx *gfxtest.Context, size int) *Graph3D {
	t.Helper()
	g, err := NewGraph3D(ctx, Graph3DConfig{GridSize: size, Opacity: 1})
	if err != nil {
		t.Fatalf("NewGraph3D: %v", err)
	}
	return g
}

// ripple returns a non-flat height field for a size x size grid.
func ripple(size int) []float32 {
	heights := make([]float32, grid.VertexCount(size))
	for i := range heights {
		heights[i] = float32(i%3) * 0.1
	}
	return heights
}

func TestGraph3DConstruction(t *testing.T) {
	ctx := gfxtest.New()
	g := newTestGraph(t, ctx, 4)

	if g.VertexCount() != 25 || g.GridSize() != 4 {
		t.Errorf("got %d vertices for grid %d", g.VertexCount(), g.GridSize())
	}

	tests := []struct {
		name   string
		buffer gfx.Buffer
		floats int
		usage  gfx.Usage
	}{
		{"positions", g.positions, 75, gfx.StaticDraw},
		{"heights", g.heights, 25, gfx.DynamicDraw},
		{"normals", g.normals, 75, gfx.DynamicDraw},
	}
	for _, tt := range tests {
		up := ctx.Uploads[tt.buffer]
		if up == nil {
			t.Errorf("%s: nothing uploaded", tt.name)
			continue
		}
		if len(up.Floats) != tt.floats || up.Usage != tt.usage {
			t.Errorf("%s: got %d floats usage %v, want %d usage %v",
				tt.name, len(up.Floats), up.Usage, tt.floats, tt.usage)
		}
	}

	if got := len(ctx.Uploads[g.indices].Uint16s); got != 96 {
		t.Errorf("expected 96 indices, got %d", got)
	}
}

func TestGraph3DDefaultConfig(t *testing.T) {
	ctx := gfxtest.New()
	g, err := NewGraph3D(ctx, DefaultGraph3DConfig())
	if err != nil {
		t.Fatalf("NewGraph3D: %v", err)
	}
	if g.VertexCount() != 101*101 {
		t.Errorf("expected %d vertices, got %d", 101*101, g.VertexCount())
	}
	if g.indexCount != 100*100*6 {
		t.Errorf("expected %d indices, got %d", 100*100*6, g.indexCount)
	}
}

func TestGraph3DRender(t *testing.T) {
	ctx := gfxtest.New()
	g := newTestGraph(t, ctx, 4)
	ctx.Reset()

	heights := ripple(4)
	f := testFrame()
	f.RotationX, f.RotationY = 0.3, 1.2
	f.Heights = heights
	if err := g.Render(ctx, f); err != nil {
		t.Fatalf("Render: %v", err)
	}

	if len(ctx.Draws) != 1 {
		t.Fatalf("expected 1 draw, got %d", len(ctx.Draws))
	}
	d := ctx.Draws[0]
	if !d.Indexed || d.Count != 96 || d.Elements != g.indices {
		t.Errorf("unexpected draw %+v", d)
	}

	if got := ctx.Uploads[g.heights].Floats; !slices.Equal(got, heights) {
		t.Errorf("heights upload = %v, want %v", got, heights)
	}
	wantNormals, err := grid.Normals(4, heights)
	if err != nil {
		t.Fatalf("Normals: %v", err)
	}
	if got := ctx.Uploads[g.normals].Floats; !slices.Equal(got, wantNormals) {
		t.Errorf("normals upload does not match grid.Normals")
	}

	attribs := []struct {
		index  uint32
		buffer gfx.Buffer
		size   int32
	}{
		{attribPosition, g.positions, 3},
		{attribHeight, g.heights, 1},
		{attribNormal, g.normals, 3},
	}
	for _, a := range attribs {
		got, ok := ctx.Attrib(a.index)
		if !ok || got.Buffer != a.buffer || got.Size != a.size {
			t.Errorf("attribute %d = %+v (enabled %v), want buffer %d size %d",
				a.index, got, ok, a.buffer, a.size)
		}
	}

	want := transform.NewCamera().Matrices(f.RotationX, f.RotationY, f.Bounds, f.Surface)
	if v, _ := ctx.Uniform(g.res.program, "uProjection"); v != want.Projection {
		t.Errorf("uProjection = %v, want %v", v, want.Projection)
	}
	if v, _ := ctx.Uniform(g.res.program, "uNormalsRotation"); v != want.NormalsRotation {
		t.Errorf("uNormalsRotation = %v, want %v", v, want.NormalsRotation)
	}
	if v, _ := ctx.Uniform(g.res.program, "uOpacity"); v != float32(1) {
		t.Errorf("uOpacity = %v, want 1", v)
	}
}

func TestGraph3DRenderReusesBuffers(t *testing.T) {
	ctx := gfxtest.New()
	g := newTestGraph(t, ctx, 4)
	ctx.Reset()

	f := testFrame()
	f.Heights = ripple(4)
	for i := 0; i < 5; i++ {
		f.RotationY = float32(i) * 0.1
		if err := g.Render(ctx, f); err != nil {
			t.Fatalf("Render %d: %v", i, err)
		}
	}

	if n := ctx.Count("CreateBuffer"); n != 0 {
		t.Errorf("render created %d buffers", n)
	}
	// Two uploads per frame: heights and normals
	if n := ctx.Count("BufferFloat32"); n != 10 {
		t.Errorf("expected 10 uploads, got %d", n)
	}
	if n := ctx.Uploads[g.positions].Count; n != 1 {
		t.Errorf("positions uploaded %d times, want 1", n)
	}
}

func TestGraph3DInvalidHeightFieldLength(t *testing.T) {
	ctx := gfxtest.New()
	g := newTestGraph(t, ctx, 4)
	ctx.Reset()

	for _, n := range []int{0, 10, 24, 26} {
		f := testFrame()
		f.Heights = make([]float32, n)
		err := g.Render(ctx, f)
		if !errors.Is(err, ErrInvalidHeightFieldLength) {
			t.Errorf("len %d: expected ErrInvalidHeightFieldLength, got %v", n, err)
		}
	}

	if len(ctx.Calls) != 0 {
		t.Errorf("rejected frames touched the context: %v", ctx.Names())
	}
}

func TestGraph3DInvalidGridSize(t *testing.T) {
	for _, size := range []int{0, -1, grid.MaxSize + 1} {
		ctx := gfxtest.New()
		_, err := NewGraph3D(ctx, Graph3DConfig{GridSize: size, Opacity: 1})
		if !errors.Is(err, grid.ErrInvalidSize) {
			t.Errorf("size %d: expected ErrInvalidSize, got %v", size, err)
		}
		if len(ctx.Calls) != 0 {
			t.Errorf("size %d: context used before validation", size)
		}
	}
}

func TestGraph3DFailuresRelease(t *testing.T) {
	tests := []struct {
		name   string
		inject func(*gfxtest.Context)
		target error
	}{
		{"program", func(c *gfxtest.Context) { c.FailProgram = true }, gfx.ErrResourceCreation},
		{"positions buffer", func(c *gfxtest.Context) { c.FailBuffer = 1 }, gfx.ErrResourceCreation},
		{"normals buffer", func(c *gfxtest.Context) { c.FailBuffer = 4 }, gfx.ErrResourceCreation},
		{"uniform", func(c *gfxtest.Context) { c.Missing["uNormalsRotation"] = true }, gfx.ErrUniformNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := gfxtest.New()
			tt.inject(ctx)

			_, err := NewGraph3D(ctx, Graph3DConfig{GridSize: 4, Opacity: 1})
			if !errors.Is(err, tt.target) {
				t.Fatalf("expected %v, got %v", tt.target, err)
			}
			programs, buffers := ctx.Live()
			if programs != 0 || buffers != 0 {
				t.Errorf("leaked %d programs and %d buffers", programs, buffers)
			}
		})
	}
}

func TestGraph3DCompileError(t *testing.T) {
	ctx := gfxtest.New()
	ctx.FailCompile = "vertex"

	_, err := NewGraph3D(ctx, Graph3DConfig{GridSize: 2, Opacity: 1})
	var compileErr *gfx.ShaderCompileError
	if !errors.As(err, &compileErr) || compileErr.Stage != "vertex" {
		t.Fatalf("expected vertex ShaderCompileError, got %v", err)
	}
}

func TestGraph3DDrawError(t *testing.T) {
	ctx := gfxtest.New()
	g := newTestGraph(t, ctx, 2)
	ctx.FailDraw = true

	f := testFrame()
	f.Heights = make([]float32, g.VertexCount())
	if err := g.Render(ctx, f); !errors.Is(err, gfx.ErrDraw) {
		t.Errorf("expected ErrDraw, got %v", err)
	}
}

func TestGraph3DDestroy(t *testing.T) {
	ctx := gfxtest.New()
	g := newTestGraph(t, ctx, 2)

	g.Destroy(ctx)
	g.Destroy(ctx)

	if n := ctx.Count("DeleteBuffer"); n != 4 {
		t.Errorf("expected 4 buffer deletes, got %d", n)
	}
	programs, buffers := ctx.Live()
	if programs != 0 || buffers != 0 {
		t.Errorf("leaked %d programs and %d buffers", programs, buffers)
	}
}
