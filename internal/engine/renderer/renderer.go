// Package renderer owns the graphics context and the render programs and
// exposes per-frame draw calls in pixel coordinates.
package renderer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hluengas/color-shredder/internal/engine/gfx"
	"github.com/hluengas/color-shredder/internal/engine/programs"
	"github.com/hluengas/color-shredder/internal/engine/transform"
	"github.com/hluengas/color-shredder/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int

	Color2D  programs.Color2DConfig
	Gradient programs.Color2DGradientConfig
	Graph3D  programs.Graph3DConfig
}

// DefaultConfig returns a renderer for a 1280x720 surface with default programs.
func DefaultConfig() Config {
	return Config{
		Width:    1280,
		Height:   720,
		Color2D:  programs.DefaultColor2DConfig(),
		Gradient: programs.DefaultColor2DGradientConfig(),
		Graph3D:  programs.DefaultGraph3DConfig(),
	}
}

// viewporter is implemented by contexts backed by a real framebuffer.
type viewporter interface {
	Viewport(width, height int)
}

// Renderer draws the panel, legend and surface programs.
type Renderer struct {
	ctx     gfx.Context
	surface transform.Surface

	panel  *programs.Color2D
	legend *programs.Color2DGradient
	graph  *programs.Graph3D
}

// New creates every program on ctx.
// IMPORTANT: ctx must wrap a current OpenGL context.
func New(ctx gfx.Context, cfg Config) (*Renderer, error) {
	r := &Renderer{ctx: ctx}
	r.setSurface(cfg.Width, cfg.Height)

	var err error
	if r.panel, err = programs.NewColor2D(ctx, cfg.Color2D); err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}
	if r.legend, err = programs.NewColor2DGradient(ctx, cfg.Gradient); err != nil {
		r.Close()
		return nil, fmt.Errorf("renderer: %w", err)
	}
	if r.graph, err = programs.NewGraph3D(ctx, cfg.Graph3D); err != nil {
		r.Close()
		return nil, fmt.Errorf("renderer: %w", err)
	}

	logger.Info("renderer ready",
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int("grid", cfg.Graph3D.GridSize),
	)
	return r, nil
}

// Close destroys every program. Safe to call more than once.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.panel != nil {
		r.panel.Destroy(r.ctx)
		r.panel = nil
	}
	if r.legend != nil {
		r.legend.Destroy(r.ctx)
		r.legend = nil
	}
	if r.graph != nil {
		r.graph.Destroy(r.ctx)
		r.graph = nil
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.setSurface(width, height)
	if v, ok := r.ctx.(viewporter); ok {
		v.Viewport(width, height)
	}
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

func (r *Renderer) setSurface(width, height int) {
	r.surface = transform.Surface{Width: float32(width), Height: float32(height)}
}

// Surface returns the current drawing surface size.
func (r *Renderer) Surface() transform.Surface {
	return r.surface
}

// HeightCount returns the number of heights DrawSurface expects.
func (r *Renderer) HeightCount() int {
	return r.graph.VertexCount()
}

// GridSize returns the subdivision count of the surface grid.
func (r *Renderer) GridSize() int {
	return r.graph.GridSize()
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	r.ctx.Clear()
}

// SetPanelColor changes the flat panel color.
func (r *Renderer) SetPanelColor(color [4]float32) {
	r.panel.SetColor(color)
}

// SetLegendCorners changes the legend corner colors.
func (r *Renderer) SetLegendCorners(corners [4][4]float32) {
	r.legend.SetCorners(corners)
}

// DrawPanel fills b with the panel color.
func (r *Renderer) DrawPanel(b transform.Bounds) error {
	return r.panel.Render(r.ctx, programs.Frame{Bounds: b, Surface: r.surface})
}

// DrawLegend fills b with the corner gradient.
func (r *Renderer) DrawLegend(b transform.Bounds) error {
	return r.legend.Render(r.ctx, programs.Frame{Bounds: b, Surface: r.surface})
}

// DrawSurface draws the height field inside b, rotated by rx then ry radians.
func (r *Renderer) DrawSurface(b transform.Bounds, rx, ry float32, heights []float32) error {
	return r.graph.Render(r.ctx, programs.Frame{
		Bounds:    b,
		Surface:   r.surface,
		RotationX: rx,
		RotationY: ry,
		Heights:   heights,
	})
}
