// Package app runs the viewer: it opens the window, builds the renderer and
// drives the animated surface frame by frame.
package app

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/hluengas/color-shredder/internal/config"
	"github.com/hluengas/color-shredder/internal/engine/gfx/glcontext"
	"github.com/hluengas/color-shredder/internal/engine/input"
	"github.com/hluengas/color-shredder/internal/engine/renderer"
	"github.com/hluengas/color-shredder/internal/engine/screenshot"
	"github.com/hluengas/color-shredder/internal/engine/window"
	"github.com/hluengas/color-shredder/internal/logger"
)

const title = "Color Shredder"

// App is the viewer instance.
type App struct {
	config   *config.Config
	running  bool
	window   *window.Window
	context  *glcontext.Context
	renderer *renderer.Renderer
	input    *input.Input
	scene    *Scene
	layout   Layout

	screenshots    *screenshot.Capture
	takeScreenshot bool

	// Nil when no config file exists
	watcher *config.Watcher
}

// New opens the window and creates every GPU resource.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Int("grid", cfg.Programs.Surface.GridSize),
	)

	a := &App{config: cfg}

	// Window also creates the OpenGL context
	var err error
	a.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	glCfg := glcontext.DefaultConfig()
	glCfg.ClearColor = cfg.Graphics.ClearColor
	a.context, err = glcontext.New(glCfg)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create graphics context: %w", err)
	}

	width, height := a.window.DrawableSize()
	a.renderer, err = renderer.New(a.context, renderer.Config{
		Width:    width,
		Height:   height,
		Color2D:  cfg.Programs.Panel,
		Gradient: cfg.Programs.Legend,
		Graph3D:  cfg.Programs.Surface,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	a.resize(width, height)

	a.input = input.New()
	a.screenshots = screenshot.New(cfg.Graphics.ScreenshotDir, "shredder")
	a.scene = NewScene(cfg.Scene, a.renderer.GridSize())

	if path := config.Path(); path != "" {
		if a.watcher, err = config.Watch(path); err != nil {
			logger.Warn("config reload disabled", zap.String("path", path), zap.Error(err))
		}
	}

	logger.Info("viewer initialized successfully")
	return a, nil
}

// Run starts the frame loop and returns when the window closes or Escape is pressed.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	var frameBudget time.Duration
	if a.config.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(a.config.Graphics.FPSLimit)
	}

	logger.Info("starting frame loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Process input
		if a.input.Update() {
			a.running = false
			break
		}
		for _, event := range a.input.Events() {
			switch event.Type {
			case input.EventWindowResize:
				a.resize(a.window.DrawableSize())
			case input.EventKeyDown:
				switch event.Key {
				case sdl.SCANCODE_ESCAPE:
					a.running = false
				case sdl.SCANCODE_F12:
					a.takeScreenshot = true
				}
			}
		}

		a.applyReloads()

		// 2. Animate
		dx, dy := a.input.Drag()
		a.scene.Update(float32(dt), dx, dy, a.input.Dragging())

		// 3. Render
		if err := a.render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		// Read the back buffer before it is presented
		if a.takeScreenshot {
			a.takeScreenshot = false
			a.saveScreenshot()
		}

		// 4. Present
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.Duration("dt", time.Duration(dt*float64(time.Second))),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if spent := time.Since(now); spent < frameBudget {
				time.Sleep(frameBudget - spent)
			}
		}
	}

	return nil
}

// Close releases GPU resources, then the window.
func (a *App) Close() {
	logger.Info("closing viewer")

	if a.watcher != nil {
		a.watcher.Close()
		a.watcher = nil
	}

	if a.renderer != nil {
		a.renderer.Close()
		a.renderer = nil
	}
	if a.context != nil {
		a.context.Close()
		a.context = nil
	}
	if a.window != nil {
		a.window.Close()
		a.window = nil
	}
}

// applyReloads picks up settings that can change without recreating GPU
// resources. Window and grid changes need a restart.
func (a *App) applyReloads() {
	if a.watcher == nil {
		return
	}
	select {
	case cfg := <-a.watcher.Changes():
		a.scene.SetConfig(cfg.Scene)
		a.renderer.SetPanelColor(cfg.Programs.Panel.Color)
		a.renderer.SetLegendCorners(cfg.Programs.Legend.Corners)
		if cfg.Programs.Surface.GridSize != a.renderer.GridSize() {
			logger.Info("grid size change applies after restart",
				zap.Int("current", a.renderer.GridSize()),
				zap.Int("configured", cfg.Programs.Surface.GridSize),
			)
		}
	case err := <-a.watcher.Errors():
		logger.Warn("config reload failed", zap.Error(err))
	default:
	}
}

func (a *App) saveScreenshot() {
	width, height := a.window.DrawableSize()
	path, err := a.screenshots.SavePixels(a.context.ReadPixels(width, height), width, height)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

func (a *App) resize(width, height int) {
	a.renderer.Resize(width, height)
	a.layout = NewLayout(a.renderer.Surface())
}

// render draws the panel, the legend and the surface in that order.
func (a *App) render() error {
	a.renderer.Begin()

	if err := a.renderer.DrawPanel(a.layout.Panel); err != nil {
		return err
	}
	if err := a.renderer.DrawLegend(a.layout.Legend); err != nil {
		return err
	}

	rx, ry := a.scene.Rotation()
	return a.renderer.DrawSurface(a.layout.Surface, rx, ry, a.scene.Heights())
}
