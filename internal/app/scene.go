package app

import (
	"github.com/chewxy/math32"

	"github.com/hluengas/color-shredder/internal/config"
	"github.com/hluengas/color-shredder/internal/engine/grid"
)

// Keeps the surface from flipping over when dragged vertically.
const maxTilt = math32.Pi / 2

// Scene is the animated state of the surface: its rotation and the height
// field sampled on the grid.
type Scene struct {
	cfg config.SceneConfig

	rotationX float32
	rotationY float32
	phase     float32

	// Distance of each vertex from the grid center, z-major
	dist    []float32
	heights []float32
}

// NewScene creates the scene for a size x size grid.
func NewScene(cfg config.SceneConfig, size int) *Scene {
	count := grid.VertexCount(size)
	s := &Scene{
		cfg:       cfg,
		rotationX: clampTilt(cfg.Tilt),
		dist:      make([]float32, 0, count),
		heights:   make([]float32, count),
	}

	perRow := size + 1
	step := 2 / float32(size)
	for z := 0; z < perRow; z++ {
		for x := 0; x < perRow; x++ {
			px := -1 + float32(x)*step
			pz := -1 + float32(z)*step
			s.dist = append(s.dist, math32.Sqrt(px*px+pz*pz))
		}
	}

	s.sample()
	return s
}

// Update advances the animation by dt seconds and applies a pointer drag of
// dx, dy pixels. While dragging the automatic spin pauses.
func (s *Scene) Update(dt float32, dx, dy int, dragging bool) {
	if !dragging {
		s.rotationY += s.cfg.SpinSpeed * dt
	}
	s.rotationY += float32(dx) * s.cfg.DragSensitivity
	s.rotationX = clampTilt(s.rotationX + float32(dy)*s.cfg.DragSensitivity)
	s.rotationY = math32.Mod(s.rotationY, 2*math32.Pi)

	s.phase += s.cfg.WaveSpeed * dt
	s.sample()
}

// sample writes sin(dist*frequency - phase) * amplitude for every vertex.
func (s *Scene) sample() {
	for i, d := range s.dist {
		s.heights[i] = math32.Sin(d*s.cfg.Frequency-s.phase) * s.cfg.Amplitude
	}
}

// SetConfig replaces the animation settings, keeping the current rotation
// and wave phase.
func (s *Scene) SetConfig(cfg config.SceneConfig) {
	s.cfg = cfg
	s.sample()
}

// Rotation returns the surface rotation around X and Y, in radians.
func (s *Scene) Rotation() (rx, ry float32) {
	return s.rotationX, s.rotationY
}

// Heights returns the current height field. The slice is reused by Update.
func (s *Scene) Heights() []float32 {
	return s.heights
}

func clampTilt(v float32) float32 {
	return math32.Max(-maxTilt, math32.Min(maxTilt, v))
}
