package grid

import (
	"fmt"

	"github.com/hluengas/color-shredder/pkg/math"
)

// Normals estimates a unit surface normal per vertex of a size x size grid
// displaced along Y by heights (one value per vertex, z-major).
//
// Central differences are taken between the X and Z neighbours, falling back
// to one-sided differences on the border. A flat field yields (0,1,0), the
// face normal produced by the mesh winding.
func Normals(size int, heights []float32) ([]float32, error) {
	normals := make([]float32, VertexCount(size)*3)
	if err := NormalsInto(normals, size, heights); err != nil {
		return nil, err
	}
	return normals, nil
}

// NormalsInto writes normals into dst, which must hold 3 floats per vertex.
func NormalsInto(dst []float32, size int, heights []float32) error {
	if size <= 0 || size > MaxSize {
		return fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	count := VertexCount(size)
	if len(heights) != count {
		return fmt.Errorf("%w: got %d, want %d", ErrHeightCount, len(heights), count)
	}
	if len(dst) != count*3 {
		return fmt.Errorf("%w: normal buffer holds %d floats, want %d", ErrHeightCount, len(dst), count*3)
	}

	perRow := size + 1
	step := 2 / float32(size)
	at := func(x, z int) float32 {
		return heights[z*perRow+x]
	}

	for z := 0; z < perRow; z++ {
		z0, z1 := max(z-1, 0), min(z+1, size)
		for x := 0; x < perRow; x++ {
			x0, x1 := max(x-1, 0), min(x+1, size)

			dx := float32(x1-x0) * step
			dz := float32(z1-z0) * step
			n := math.Vec3{
				X: -(at(x1, z) - at(x0, z)) / dx,
				Y: 1,
				Z: -(at(x, z1) - at(x, z0)) / dz,
			}.Normalize()

			i := (z*perRow + x) * 3
			dst[i] = n.X
			dst[i+1] = n.Y
			dst[i+2] = n.Z
		}
	}
	return nil
}
