package transform

import (
	"github.com/chewxy/math32"

	"github.com/hluengas/color-shredder/pkg/math"
)

// Projection constants for the 3D surface.
const (
	FieldOfView = math32.Pi / 4 // 45 degrees, radians
	ZNear       = 0.1
	ZFar        = 100.0
)

// ZPlane is the eye-space depth at which one unit spans the full NDC height
// for FieldOfView.
var ZPlane = -1 / math32.Tan(FieldOfView/2)

// Matrices3D bundles the matrices pushed to the surface program.
type Matrices3D struct {
	Projection      math.Mat4 // Object space to clip space
	NormalsRotation math.Mat4 // Inverse of the pure rotation
}

// Camera builds 3D transforms. It remembers the last normals rotation so a
// singular rotation keeps the previous value instead of failing the frame.
type Camera struct {
	normalsRotation math.Mat4
}

// NewCamera creates a camera whose normals rotation starts at identity.
func NewCamera() *Camera {
	return &Camera{normalsRotation: math.Identity()}
}

// Rotation returns the rotation about X followed by the rotation about Y.
func Rotation(rx, ry float32) math.Mat4 {
	return math.RotateX(rx).Mul(math.RotateY(ry))
}

// Matrices composes rotation, uniform scale, translation and perspective for
// a unit surface drawn inside b. The order of every Mul is significant.
func (c *Camera) Matrices(rx, ry float32, b Bounds, s Surface) Matrices3D {
	rotation := Rotation(rx, ry)
	return Matrices3D{
		Projection:      Projection(rotation, b, s),
		NormalsRotation: c.updateNormals(rotation),
	}
}

// NormalsRotation returns the most recent normals rotation.
func (c *Camera) NormalsRotation() math.Mat4 {
	return c.normalsRotation
}

func (c *Camera) updateNormals(rotation math.Mat4) math.Mat4 {
	inv, err := rotation.Inverse()
	if err == nil {
		c.normalsRotation = inv
	}
	return c.normalsRotation
}

// Projection places an already rotated unit surface inside b and applies the
// perspective projection.
func Projection(rotation math.Mat4, b Bounds, s Surface) math.Mat4 {
	aspect := s.Aspect()
	scaleX := b.Width() / s.Width
	scaleY := b.Height() / s.Height
	scale := scaleY

	// X is pre-multiplied by aspect because the perspective divides it back out.
	translation := math.Translate(
		aspect*(-1+scaleX+2*b.Left/s.Width),
		-1+scaleY+2*b.Bottom/s.Height,
		ZPlane,
	)

	combined := rotation.Mul(math.Scale(scale, scale, scale)).Mul(translation)
	perspective := math.Perspective(aspect, FieldOfView, ZNear, ZFar)
	return combined.Mul(perspective)
}
