package programs

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hluengas/color-shredder/internal/engine/gfx"
	"github.com/hluengas/color-shredder/internal/engine/programs/shaders"
	"github.com/hluengas/color-shredder/internal/engine/transform"
	"github.com/hluengas/color-shredder/internal/logger"
)

// Unit square corners, x, y per vertex.
var rectangleCorners = []float32{
	0, 1, // top-left
	0, 0, // bottom-left
	1, 1, // top-right
	1, 0, // bottom-right
}

var rectangleIndices = []uint16{0, 1, 2, 2, 1, 3}

// Color2DGradientConfig holds the corner colors, in rectangleCorners order.
type Color2DGradientConfig struct {
	Corners [4][4]float32 `yaml:"corners" toml:"corners"`
	Opacity float32       `yaml:"opacity" toml:"opacity"`
}

// DefaultColor2DGradientConfig returns red, green, blue and white corners at half opacity.
func DefaultColor2DGradientConfig() Color2DGradientConfig {
	return Color2DGradientConfig{
		Corners: [4][4]float32{
			{1, 0, 0, 1},
			{0, 1, 0, 1},
			{0, 0, 1, 1},
			{1, 1, 1, 1},
		},
		Opacity: 0.5,
	}
}

// Color2DGradient draws a rectangle interpolating four corner colors.
type Color2DGradient struct {
	res resources
	cfg Color2DGradientConfig

	vertices   gfx.Buffer
	colors     gfx.Buffer
	indices    gfx.Buffer
	indexCount int32

	// Colors changed since the last upload
	colorsDirty bool

	locOpacity   gfx.UniformLocation
	locTransform gfx.UniformLocation
}

var _ Program = (*Color2DGradient)(nil)

// NewColor2DGradient links the program and uploads geometry, indices and colors.
func NewColor2DGradient(ctx gfx.Context, cfg Color2DGradientConfig) (*Color2DGradient, error) {
	g := &Color2DGradient{
		cfg:        cfg,
		indexCount: int32(len(rectangleIndices)),
	}
	if err := g.init(ctx); err != nil {
		g.Destroy(ctx)
		return nil, fmt.Errorf("color 2d gradient: %w", err)
	}

	logger.Debug("color 2d gradient program ready", zap.Uint32("program", uint32(g.res.program)))
	return g, nil
}

func (g *Color2DGradient) init(ctx gfx.Context) error {
	if err := g.res.link(ctx, shaders.Color2DGradientVertexShader, shaders.Color2DGradientFragmentShader); err != nil {
		return err
	}

	var err error
	if g.vertices, err = g.res.floatBuffer(ctx, rectangleCorners, gfx.StaticDraw); err != nil {
		return err
	}
	if g.indices, err = g.res.indexBuffer(ctx, rectangleIndices); err != nil {
		return err
	}
	if g.colors, err = g.res.floatBuffer(ctx, g.colorData(), gfx.DynamicDraw); err != nil {
		return err
	}

	return uniforms(ctx, &g.res, map[string]*gfx.UniformLocation{
		"uOpacity":   &g.locOpacity,
		"uTransform": &g.locTransform,
	})
}

func (g *Color2DGradient) colorData() []float32 {
	data := make([]float32, 0, 16)
	for _, c := range g.cfg.Corners {
		data = append(data, c[:]...)
	}
	return data
}

// SetCorners replaces the corner colors. They are uploaded on the next Render.
func (g *Color2DGradient) SetCorners(corners [4][4]float32) {
	g.cfg.Corners = corners
	g.colorsDirty = true
}

// Render draws the gradient rectangle inside f.Bounds.
func (g *Color2DGradient) Render(ctx gfx.Context, f Frame) error {
	ctx.UseProgram(g.res.program)

	bindAttrib(ctx, attribPosition, g.vertices, 2)
	bindAttrib(ctx, attribColor, g.colors, 4)
	if g.colorsDirty {
		ctx.BufferFloat32(gfx.ArrayBuffer, g.colorData(), gfx.DynamicDraw)
		g.colorsDirty = false
	}

	ctx.Uniform1f(g.locOpacity, g.cfg.Opacity)
	ctx.UniformMatrix4fv(g.locTransform, transform.Placement2D(f.Bounds, f.Surface))

	ctx.BindBuffer(gfx.ElementArrayBuffer, g.indices)
	if err := ctx.DrawElements(gfx.Triangles, g.indexCount); err != nil {
		return fmt.Errorf("color 2d gradient: %w", err)
	}
	return nil
}

// Destroy releases the program and its buffers.
func (g *Color2DGradient) Destroy(ctx gfx.Context) {
	g.res.release(ctx)
	g.vertices, g.colors, g.indices = 0, 0, 0
}
