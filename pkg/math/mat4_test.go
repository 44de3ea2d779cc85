package math

import (
	"errors"
	"math"
	"testing"
)

const tol = 1e-4

// sample returns a non-singular matrix exercising every element.
func sample() Mat4 {
	return RotateX(0.4).Mul(RotateY(-1.1)).Mul(Scale(2, 3, 0.5)).Mul(Translate(4, -5, 6))
}

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 || m[12] != 0 || m[3] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := sample()
	id := Identity()

	if got := m.Mul(id); !got.ApproxEqual(m, tol) {
		t.Errorf("M * I should equal M: got %v, want %v", got, m)
	}
	if got := id.Mul(m); !got.ApproxEqual(m, tol) {
		t.Errorf("I * M should equal M: got %v, want %v", got, m)
	}
}

func TestMulRowColumn(t *testing.T) {
	var a, b Mat4
	for i := range a {
		a[i] = float32(i)
		b[i] = float32(16 - i)
	}
	got := a.Mul(b)

	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var want float32
			for k := 0; k < 4; k++ {
				want += a.At(row, k) * b.At(k, col)
			}
			if got.At(row, col) != want {
				t.Errorf("Mul[%d][%d] = %f, want %f", row, col, got.At(row, col), want)
			}
		}
	}
}

func TestMulOrder(t *testing.T) {
	p := [3]float32{1, 0, 0}

	// Scale applied first, then translate
	scaleThenTranslate := Scale(2, 2, 2).Mul(Translate(1, 0, 0))
	if got := scaleThenTranslate.TransformPoint(p); got != [3]float32{3, 0, 0} {
		t.Errorf("Scale.Mul(Translate): got %v, want (3, 0, 0)", got)
	}

	translateThenScale := Translate(1, 0, 0).Mul(Scale(2, 2, 2))
	if got := translateThenScale.TransformPoint(p); got != [3]float32{4, 0, 0} {
		t.Errorf("Translate.Mul(Scale): got %v, want (4, 0, 0)", got)
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation lives in the bottom row (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
	if m[15] != 1 {
		t.Errorf("Translate [15] should be 1, got %f", m[15])
	}
}

func TestScale(t *testing.T) {
	m := Scale(2, 3, 4)

	if m[0] != 2 || m[5] != 3 || m[10] != 4 || m[15] != 1 {
		t.Errorf("Scale diagonal: got (%f, %f, %f, %f), want (2, 3, 4, 1)", m[0], m[5], m[10], m[15])
	}
}

func TestTransformPoint(t *testing.T) {
	// Translate by (10, 20, 30)
	m := Translate(10, 20, 30)
	p := [3]float32{1, 2, 3}
	result := m.TransformPoint(p)

	expected := [3]float32{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}
}

func TestTransformPointScale(t *testing.T) {
	m := Scale(2, 2, 2)
	p := [3]float32{1, 2, 3}
	result := m.TransformPoint(p)

	expected := [3]float32{2, 4, 6}
	if result != expected {
		t.Errorf("TransformPoint with scale: got %v, want %v", result, expected)
	}
}

func TestRotateX90(t *testing.T) {
	m := RotateX(float32(math.Pi / 2))
	result := m.TransformPoint([3]float32{0, 1, 0})

	// Row-vector convention: (0,1,0) picks out row 1 = (0, cos, -sin)
	if abs(result[0]) > 0.001 || abs(result[1]) > 0.001 || abs(result[2]+1) > 0.001 {
		t.Errorf("RotateX 90: got %v, want (0, 0, -1)", result)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2))
	result := m.TransformPoint([3]float32{1, 0, 0})

	if abs(result[0]) > 0.001 || abs(result[1]) > 0.001 || abs(result[2]-1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, 1)", result)
	}
}

func TestRotationPreservesLength(t *testing.T) {
	m := RotateX(0.7).Mul(RotateY(2.1))
	d := m.TransformDirection(Vec3{1, 2, 3})
	if abs(d.Length()-(Vec3{1, 2, 3}).Length()) > 0.001 {
		t.Errorf("rotation changed length: got %f", d.Length())
	}
	if abs(m.Determinant()-1) > 0.001 {
		t.Errorf("rotation determinant = %f, want 1", m.Determinant())
	}
}

func TestPerspective(t *testing.T) {
	fov := float32(math.Pi / 4) // 45 degrees
	aspect := float32(1.0)
	near := float32(0.1)
	far := float32(100.0)

	m := Perspective(aspect, fov, near, far)

	// Should be a valid projection matrix (not identity)
	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	// Element [15] should be 0 for perspective projection
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	// Element [11] should be -1 for perspective projection
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}

	// Near plane maps to -1, far plane to +1
	if z := m.TransformPoint([3]float32{0, 0, -near})[2]; abs(z+1) > 0.001 {
		t.Errorf("near plane depth = %f, want -1", z)
	}
	if z := m.TransformPoint([3]float32{0, 0, -far})[2]; abs(z-1) > 0.001 {
		t.Errorf("far plane depth = %f, want 1", z)
	}
}

func TestPerspectiveAspect(t *testing.T) {
	m := Perspective(2, float32(math.Pi/2), 1, 10)
	if abs(m[0]-0.5) > tol || abs(m[5]-1) > tol {
		t.Errorf("Perspective(2, 90deg): got m0=%f m5=%f, want 0.5 and 1", m[0], m[5])
	}
}

func TestInverseRoundTrip(t *testing.T) {
	m := sample()

	inv, err := m.Inverse()
	if err != nil {
		t.Fatalf("Inverse: %v", err)
	}
	if got := m.Mul(inv); !got.ApproxEqual(Identity(), tol) {
		t.Errorf("M * M^-1 should be identity, got %v", got)
	}

	back, err := inv.Inverse()
	if err != nil {
		t.Fatalf("Inverse of inverse: %v", err)
	}
	if !back.ApproxEqual(m, 1e-4) {
		t.Errorf("invert(invert(M)) = %v, want %v", back, m)
	}
}

func TestInverseTranslate(t *testing.T) {
	inv, err := Translate(3, -4, 5).Inverse()
	if err != nil {
		t.Fatalf("Inverse: %v", err)
	}
	if want := Translate(-3, 4, -5); !inv.ApproxEqual(want, tol) {
		t.Errorf("Translate inverse = %v, want %v", inv, want)
	}
}

func TestInverseRotationIsTranspose(t *testing.T) {
	r := RotateX(0.3).Mul(RotateY(1.2))
	inv, err := r.Inverse()
	if err != nil {
		t.Fatalf("Inverse: %v", err)
	}
	if !inv.ApproxEqual(r.Transpose(), tol) {
		t.Errorf("rotation inverse = %v, want transpose %v", inv, r.Transpose())
	}
}

func TestInverseSingular(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
	}{
		{"zero", Mat4{}},
		{"rotation scaled to zero", RotateX(0.5).Mul(RotateY(0.5)).Mul(Scale(0, 0, 0))},
		{"flattened axis", Scale(1, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.m.Inverse()
			if !errors.Is(err, ErrSingularMatrix) {
				t.Errorf("expected ErrSingularMatrix, got %v", err)
			}
		})
	}
}

func TestTranspose(t *testing.T) {
	m := sample()
	if m.Transpose().Transpose() != m {
		t.Error("double transpose should return the original matrix")
	}
	if m.Transpose().At(1, 2) != m.At(2, 1) {
		t.Error("transpose should swap rows and columns")
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
