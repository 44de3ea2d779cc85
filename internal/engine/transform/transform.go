// Package transform composes the placement and camera matrices used by the
// render programs from pixel-space bounds.
package transform

import (
	"github.com/hluengas/color-shredder/pkg/math"
)

// Bounds is a rectangle in surface pixel coordinates with the origin at the
// bottom-left corner.
type Bounds struct {
	Bottom float32
	Top    float32
	Left   float32
	Right  float32
}

// Width returns Right - Left.
func (b Bounds) Width() float32 {
	return b.Right - b.Left
}

// Height returns Top - Bottom.
func (b Bounds) Height() float32 {
	return b.Top - b.Bottom
}

// Surface is the pixel size of the drawing surface.
type Surface struct {
	Width  float32
	Height float32
}

// Aspect returns Width / Height.
func (s Surface) Aspect() float32 {
	return s.Width / s.Height
}

// Placement2D maps the unit square [0,1]^2 onto the NDC quad covering b.
// The scale is applied first, then the translation to the rectangle origin.
func Placement2D(b Bounds, s Surface) math.Mat4 {
	translation := math.Translate(
		2*b.Left/s.Width-1,
		2*b.Bottom/s.Height-1,
		0,
	)
	scale := math.Scale(
		2*b.Width()/s.Width,
		2*b.Height()/s.Height,
		0,
	)
	return scale.Mul(translation)
}
