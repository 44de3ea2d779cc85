// Package grid builds the triangulated unit-square lattice used by the height-field surface.
package grid

import "errors"

// MaxSize is the largest subdivision count whose vertices fit 16-bit indices.
const MaxSize = 255

var (
	// ErrInvalidSize is returned for a subdivision count of zero or above MaxSize.
	ErrInvalidSize = errors.New("grid: invalid subdivision count")

	// ErrHeightCount is returned when a height field does not cover every vertex.
	ErrHeightCount = errors.New("grid: height count does not match vertex count")
)

// Mesh holds flat position and index arrays ready for GPU upload.
type Mesh struct {
	Size      int       // Subdivisions per side
	Positions []float32 // x, 0, z per vertex
	Indices   []uint16  // Three per triangle
}

// VertexCount returns (size+1)^2.
func (m *Mesh) VertexCount() int {
	return VertexCount(m.Size)
}

// VertexCount returns the number of lattice points for a subdivision count.
func VertexCount(size int) int {
	return (size + 1) * (size + 1)
}

// IndexCount returns the number of triangle indices for a subdivision count.
func IndexCount(size int) int {
	return 6 * size * size
}
