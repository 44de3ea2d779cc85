package grid

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
)

func TestNormalsFlat(t *testing.T) {
	size := 4
	heights := make([]float32, VertexCount(size))

	normals, err := Normals(size, heights)
	if err != nil {
		t.Fatalf("Normals: %v", err)
	}
	if len(normals) != VertexCount(size)*3 {
		t.Fatalf("got %d floats, want %d", len(normals), VertexCount(size)*3)
	}
	for i := 0; i < len(normals); i += 3 {
		if normals[i] != 0 || normals[i+1] != 1 || normals[i+2] != 0 {
			t.Fatalf("normal %d = %v, want (0, 1, 0)", i/3, normals[i:i+3])
		}
	}
}

func TestNormalsSlope(t *testing.T) {
	// Height rises along X with slope 1: h = x
	size := 2
	mesh, err := Build(size)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	heights := make([]float32, mesh.VertexCount())
	for i := range heights {
		heights[i] = mesh.Positions[i*3]
	}

	normals, err := Normals(size, heights)
	if err != nil {
		t.Fatalf("Normals: %v", err)
	}

	inv := 1 / math32.Sqrt(2)
	want := [3]float32{-inv, inv, 0}
	for i := 0; i < len(normals); i += 3 {
		for c := 0; c < 3; c++ {
			if math32.Abs(normals[i+c]-want[c]) > 1e-5 {
				t.Fatalf("normal %d = %v, want %v", i/3, normals[i:i+3], want)
			}
		}
	}
}

func TestNormalsUnitLength(t *testing.T) {
	size := 8
	heights := make([]float32, VertexCount(size))
	for i := range heights {
		heights[i] = math32.Sin(float32(i) * 0.37)
	}

	normals, err := Normals(size, heights)
	if err != nil {
		t.Fatalf("Normals: %v", err)
	}
	for i := 0; i < len(normals); i += 3 {
		l := math32.Sqrt(normals[i]*normals[i] + normals[i+1]*normals[i+1] + normals[i+2]*normals[i+2])
		if math32.Abs(l-1) > 1e-4 {
			t.Fatalf("normal %d has length %f", i/3, l)
		}
		if normals[i+1] <= 0 {
			t.Fatalf("normal %d points down: %v", i/3, normals[i:i+3])
		}
	}
}

func TestNormalsWrongLength(t *testing.T) {
	_, err := Normals(3, make([]float32, 10))
	if !errors.Is(err, ErrHeightCount) {
		t.Errorf("expected ErrHeightCount, got %v", err)
	}

	err = NormalsInto(make([]float32, 5), 1, make([]float32, 4))
	if !errors.Is(err, ErrHeightCount) {
		t.Errorf("expected ErrHeightCount for short destination, got %v", err)
	}

	if _, err := Normals(0, nil); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("expected ErrInvalidSize, got %v", err)
	}
}
