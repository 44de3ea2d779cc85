package programs

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hluengas/color-shredder/internal/engine/gfx"
	"github.com/hluengas/color-shredder/internal/engine/grid"
	"github.com/hluengas/color-shredder/internal/engine/programs/shaders"
	"github.com/hluengas/color-shredder/internal/engine/transform"
	"github.com/hluengas/color-shredder/internal/logger"
)

// DefaultGridSize is the subdivision count of the surface grid.
const DefaultGridSize = 100

// Graph3DConfig holds the surface settings fixed at construction.
type Graph3DConfig struct {
	GridSize int     `yaml:"grid_size" toml:"grid_size"`
	Opacity  float32 `yaml:"opacity" toml:"opacity"`
}

// DefaultGraph3DConfig returns a 100x100 opaque surface.
func DefaultGraph3DConfig() Graph3DConfig {
	return Graph3DConfig{
		GridSize: DefaultGridSize,
		Opacity:  1,
	}
}

// Graph3D draws a lit height-field surface over a fixed grid.
type Graph3D struct {
	res    resources
	cfg    Graph3DConfig
	camera *transform.Camera

	vertexCount int
	indexCount  int32

	// Static
	positions gfx.Buffer
	indices   gfx.Buffer

	// Rewritten every frame
	heights gfx.Buffer
	normals gfx.Buffer

	// Reused across frames
	normalData []float32

	locOpacity         gfx.UniformLocation
	locProjection      gfx.UniformLocation
	locNormalsRotation gfx.UniformLocation
}

var _ Program = (*Graph3D)(nil)

// NewGraph3D builds the grid once, links the program and allocates the
// per-frame height and normal buffers.
func NewGraph3D(ctx gfx.Context, cfg Graph3DConfig) (*Graph3D, error) {
	mesh, err := grid.Build(cfg.GridSize)
	if err != nil {
		return nil, fmt.Errorf("graph 3d: %w", err)
	}

	g := &Graph3D{
		cfg:         cfg,
		camera:      transform.NewCamera(),
		vertexCount: mesh.VertexCount(),
		indexCount:  int32(len(mesh.Indices)),
		normalData:  make([]float32, mesh.VertexCount()*3),
	}
	if err := g.init(ctx, mesh); err != nil {
		g.Destroy(ctx)
		return nil, fmt.Errorf("graph 3d: %w", err)
	}

	logger.Debug("graph 3d program ready",
		zap.Uint32("program", uint32(g.res.program)),
		zap.Int("grid", cfg.GridSize),
		zap.Int("vertices", g.vertexCount),
		zap.Int32("indices", g.indexCount),
	)
	return g, nil
}

func (g *Graph3D) init(ctx gfx.Context, mesh *grid.Mesh) error {
	if err := g.res.link(ctx, shaders.Graph3DVertexShader, shaders.VaryingColorFragmentShader); err != nil {
		return err
	}

	var err error
	if g.positions, err = g.res.floatBuffer(ctx, mesh.Positions, gfx.StaticDraw); err != nil {
		return err
	}
	if g.indices, err = g.res.indexBuffer(ctx, mesh.Indices); err != nil {
		return err
	}

	// Size the dynamic buffers for a flat surface
	flat := make([]float32, g.vertexCount)
	if g.heights, err = g.res.floatBuffer(ctx, flat, gfx.DynamicDraw); err != nil {
		return err
	}
	if err := grid.NormalsInto(g.normalData, g.cfg.GridSize, flat); err != nil {
		return err
	}
	if g.normals, err = g.res.floatBuffer(ctx, g.normalData, gfx.DynamicDraw); err != nil {
		return err
	}

	return uniforms(ctx, &g.res, map[string]*gfx.UniformLocation{
		"uOpacity":         &g.locOpacity,
		"uProjection":      &g.locProjection,
		"uNormalsRotation": &g.locNormalsRotation,
	})
}

// VertexCount returns the number of heights Render expects.
func (g *Graph3D) VertexCount() int {
	return g.vertexCount
}

// GridSize returns the subdivision count of the surface.
func (g *Graph3D) GridSize() int {
	return g.cfg.GridSize
}

// Render uploads f.Heights and their normals and draws the surface rotated
// by f.RotationX and f.RotationY inside f.Bounds.
func (g *Graph3D) Render(ctx gfx.Context, f Frame) error {
	if len(f.Heights) != g.vertexCount {
		return fmt.Errorf("%w: got %d, want %d", ErrInvalidHeightFieldLength, len(f.Heights), g.vertexCount)
	}
	if err := grid.NormalsInto(g.normalData, g.cfg.GridSize, f.Heights); err != nil {
		return fmt.Errorf("graph 3d: %w", err)
	}

	ctx.UseProgram(g.res.program)

	m := g.camera.Matrices(f.RotationX, f.RotationY, f.Bounds, f.Surface)
	ctx.UniformMatrix4fv(g.locProjection, m.Projection)
	ctx.UniformMatrix4fv(g.locNormalsRotation, m.NormalsRotation)
	ctx.Uniform1f(g.locOpacity, g.cfg.Opacity)

	bindAttrib(ctx, attribPosition, g.positions, 3)

	bindAttrib(ctx, attribHeight, g.heights, 1)
	ctx.BufferFloat32(gfx.ArrayBuffer, f.Heights, gfx.DynamicDraw)

	bindAttrib(ctx, attribNormal, g.normals, 3)
	ctx.BufferFloat32(gfx.ArrayBuffer, g.normalData, gfx.DynamicDraw)

	ctx.BindBuffer(gfx.ElementArrayBuffer, g.indices)
	if err := ctx.DrawElements(gfx.Triangles, g.indexCount); err != nil {
		return fmt.Errorf("graph 3d: %w", err)
	}
	return nil
}

// Destroy releases the program and its buffers.
func (g *Graph3D) Destroy(ctx gfx.Context) {
	g.res.release(ctx)
	g.positions, g.indices, g.heights, g.normals = 0, 0, 0, 0
}
