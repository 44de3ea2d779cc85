package programs

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hluengas/color-shredder/internal/engine/gfx"
	"github.com/hluengas/color-shredder/internal/engine/programs/shaders"
	"github.com/hluengas/color-shredder/internal/engine/transform"
	"github.com/hluengas/color-shredder/internal/logger"
)

// Two triangles covering the unit square, x, y per vertex.
var rectangleTriangles = []float32{
	0, 1,
	0, 0,
	1, 1,
	1, 1,
	0, 0,
	1, 0,
}

// Color2DConfig holds the flat rectangle appearance.
type Color2DConfig struct {
	Color   [4]float32 `yaml:"color" toml:"color"`
	Opacity float32    `yaml:"opacity" toml:"opacity"`
}

// DefaultColor2DConfig returns a teal, fully opaque rectangle.
func DefaultColor2DConfig() Color2DConfig {
	return Color2DConfig{
		Color:   [4]float32{0, 0.5, 0.5, 1},
		Opacity: 1,
	}
}

// Color2D draws a rectangle filled with a single color.
type Color2D struct {
	res resources
	cfg Color2DConfig

	rectangle   gfx.Buffer
	vertexCount int32

	locColor     gfx.UniformLocation
	locOpacity   gfx.UniformLocation
	locTransform gfx.UniformLocation
}

var _ Program = (*Color2D)(nil)

// NewColor2D links the program and uploads the static rectangle.
func NewColor2D(ctx gfx.Context, cfg Color2DConfig) (*Color2D, error) {
	c := &Color2D{
		cfg:         cfg,
		vertexCount: int32(len(rectangleTriangles) / 2),
	}
	if err := c.init(ctx); err != nil {
		c.Destroy(ctx)
		return nil, fmt.Errorf("color 2d: %w", err)
	}

	logger.Debug("color 2d program ready", zap.Uint32("program", uint32(c.res.program)))
	return c, nil
}

func (c *Color2D) init(ctx gfx.Context) error {
	if err := c.res.link(ctx, shaders.Color2DVertexShader, shaders.Color2DFragmentShader); err != nil {
		return err
	}

	var err error
	c.rectangle, err = c.res.floatBuffer(ctx, rectangleTriangles, gfx.StaticDraw)
	if err != nil {
		return err
	}

	return uniforms(ctx, &c.res, map[string]*gfx.UniformLocation{
		"uColor":     &c.locColor,
		"uOpacity":   &c.locOpacity,
		"uTransform": &c.locTransform,
	})
}

// SetColor changes the fill color used by subsequent renders.
func (c *Color2D) SetColor(color [4]float32) {
	c.cfg.Color = color
}

// Render draws the rectangle inside f.Bounds.
func (c *Color2D) Render(ctx gfx.Context, f Frame) error {
	ctx.UseProgram(c.res.program)

	bindAttrib(ctx, attribPosition, c.rectangle, 2)

	col := c.cfg.Color
	ctx.Uniform4f(c.locColor, col[0], col[1], col[2], col[3])
	ctx.Uniform1f(c.locOpacity, c.cfg.Opacity)
	ctx.UniformMatrix4fv(c.locTransform, transform.Placement2D(f.Bounds, f.Surface))

	if err := ctx.DrawArrays(gfx.Triangles, 0, c.vertexCount); err != nil {
		return fmt.Errorf("color 2d: %w", err)
	}
	return nil
}

// Destroy releases the program and its buffer.
func (c *Color2D) Destroy(ctx gfx.Context) {
	c.res.release(ctx)
	c.rectangle = 0
}
