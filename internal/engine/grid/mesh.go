package grid

import "fmt"

// Build creates a size x size grid spanning [-1,1] on X and Z with Y at 0.
//
// Vertices are emitted z-major: vertex (x, z) has index z*(size+1)+x.
// Each cell becomes two triangles with a fixed winding:
// (top-left, bottom-left, bottom-right) and (top-left, bottom-right, top-right),
// where bottom is the +Z neighbour and right is the +X neighbour.
func Build(size int) (*Mesh, error) {
	if size <= 0 || size > MaxSize {
		return nil, fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidSize, size, MaxSize)
	}

	perRow := size + 1
	step := 2 / float32(size)

	positions := make([]float32, 0, VertexCount(size)*3)
	indices := make([]uint16, 0, IndexCount(size))

	for z := 0; z < perRow; z++ {
		for x := 0; x < perRow; x++ {
			positions = append(positions,
				-1+float32(x)*step,
				0,
				-1+float32(z)*step,
			)

			if x == size || z == size {
				continue
			}

			topLeft := uint16(z*perRow + x)
			topRight := topLeft + 1
			bottomLeft := topLeft + uint16(perRow)
			bottomRight := bottomLeft + 1

			indices = append(indices,
				topLeft, bottomLeft, bottomRight,
				topLeft, bottomRight, topRight,
			)
		}
	}

	return &Mesh{
		Size:      size,
		Positions: positions,
		Indices:   indices,
	}, nil
}
