package math

import (
	"errors"

	"github.com/chewxy/math32"
)

// ErrSingularMatrix is returned by Inverse when the determinant is numerically zero.
var ErrSingularMatrix = errors.New("math: matrix is singular")

// singularEpsilon is the determinant magnitude below which a matrix has no inverse.
const singularEpsilon = 1e-10

// Mat4 is a 4x4 matrix in row-major order.
// Element [i*4+j] addresses row i, column j:
//
//	[m0  m1  m2  m3 ]
//	[m4  m5  m6  m7 ]
//	[m8  m9  m10 m11]
//	[m12 m13 m14 m15]
//
// Points are row vectors (p' = p * M), so translation lives in m12..m14 and
// a.Mul(b) applies a first. Uploading the 16 floats to OpenGL without
// transposing lets a column-vector shader (M * v) reproduce the same result.
type Mat4 [16]float32

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate returns a translation matrix.
func Translate(x, y, z float32) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// Scale returns a scale matrix.
func Scale(x, y, z float32) Mat4 {
	return Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// RotateX returns a rotation matrix around the X axis.
// angle is in radians.
func RotateX(angle float32) Mat4 {
	c := math32.Cos(angle)
	s := math32.Sin(angle)

	return Mat4{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	}
}

// RotateY returns a rotation matrix around the Y axis.
// angle is in radians.
func RotateY(angle float32) Mat4 {
	c := math32.Cos(angle)
	s := math32.Sin(angle)

	return Mat4{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// Perspective returns a right-handed perspective projection matrix.
// aspect is width/height, fovY is in radians.
func Perspective(aspect, fovY, near, far float32) Mat4 {
	f := 1 / math32.Tan(fovY/2)
	nf := 1 / (near - far)

	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, -1,
		0, 0, 2 * far * near * nf, 0,
	}
}

// Mul returns the product m * other. Not commutative.
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			result[row*4+col] =
				m[row*4+0]*other[0*4+col] +
					m[row*4+1]*other[1*4+col] +
					m[row*4+2]*other[2*4+col] +
					m[row*4+3]*other[3*4+col]
		}
	}
	return result
}

// At returns the element at row, col.
func (m Mat4) At(row, col int) float32 {
	return m[row*4+col]
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	var result Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			result[col*4+row] = m[row*4+col]
		}
	}
	return result
}

// TransformPoint transforms a 3D point by this matrix (assumes w=1).
// The result is divided by w when w is neither 0 nor 1.
func (m Mat4) TransformPoint(p [3]float32) [3]float32 {
	x := p[0]*m[0] + p[1]*m[4] + p[2]*m[8] + m[12]
	y := p[0]*m[1] + p[1]*m[5] + p[2]*m[9] + m[13]
	z := p[0]*m[2] + p[1]*m[6] + p[2]*m[10] + m[14]
	w := p[0]*m[3] + p[1]*m[7] + p[2]*m[11] + m[15]
	if w != 0 && w != 1 {
		return [3]float32{x / w, y / w, z / w}
	}
	return [3]float32{x, y, z}
}

// TransformDirection transforms a direction vector (ignores translation).
func (m Mat4) TransformDirection(d Vec3) Vec3 {
	return Vec3{
		X: d.X*m[0] + d.Y*m[4] + d.Z*m[8],
		Y: d.X*m[1] + d.Y*m[5] + d.Z*m[9],
		Z: d.X*m[2] + d.Y*m[6] + d.Z*m[10],
	}
}

// ApproxEqual reports whether every element of m is within tol of other.
func (m Mat4) ApproxEqual(other Mat4, tol float32) bool {
	for i := range m {
		if math32.Abs(m[i]-other[i]) > tol {
			return false
		}
	}
	return true
}

// Determinant returns the determinant of the matrix.
func (m Mat4) Determinant() float32 {
	c := m.cofactors()
	return m[0]*c[0] + m[4]*c[1] + m[8]*c[2] + m[12]*c[3]
}

// Inverse returns the inverse of the matrix.
// Returns ErrSingularMatrix if the determinant is numerically zero.
func (m Mat4) Inverse() (Mat4, error) {
	c := m.cofactors()

	det := m[0]*c[0] + m[4]*c[1] + m[8]*c[2] + m[12]*c[3]
	if math32.Abs(det) < singularEpsilon {
		return Mat4{}, ErrSingularMatrix
	}

	invDet := 1 / det
	var result Mat4
	for i := range c {
		result[i] = c[i] * invDet
	}
	return result, nil
}

// cofactors returns the adjugate of m in the same layout as m.
func (m Mat4) cofactors() Mat4 {
	return Mat4{
		m[5]*m[10]*m[15] - m[5]*m[11]*m[14] - m[9]*m[6]*m[15] + m[9]*m[7]*m[14] + m[13]*m[6]*m[11] - m[13]*m[7]*m[10],
		-m[1]*m[10]*m[15] + m[1]*m[11]*m[14] + m[9]*m[2]*m[15] - m[9]*m[3]*m[14] - m[13]*m[2]*m[11] + m[13]*m[3]*m[10],
		m[1]*m[6]*m[15] - m[1]*m[7]*m[14] - m[5]*m[2]*m[15] + m[5]*m[3]*m[14] + m[13]*m[2]*m[7] - m[13]*m[3]*m[6],
		-m[1]*m[6]*m[11] + m[1]*m[7]*m[10] + m[5]*m[2]*m[11] - m[5]*m[3]*m[10] - m[9]*m[2]*m[7] + m[9]*m[3]*m[6],

		-m[4]*m[10]*m[15] + m[4]*m[11]*m[14] + m[8]*m[6]*m[15] - m[8]*m[7]*m[14] - m[12]*m[6]*m[11] + m[12]*m[7]*m[10],
		m[0]*m[10]*m[15] - m[0]*m[11]*m[14] - m[8]*m[2]*m[15] + m[8]*m[3]*m[14] + m[12]*m[2]*m[11] - m[12]*m[3]*m[10],
		-m[0]*m[6]*m[15] + m[0]*m[7]*m[14] + m[4]*m[2]*m[15] - m[4]*m[3]*m[14] - m[12]*m[2]*m[7] + m[12]*m[3]*m[6],
		m[0]*m[6]*m[11] - m[0]*m[7]*m[10] - m[4]*m[2]*m[11] + m[4]*m[3]*m[10] + m[8]*m[2]*m[7] - m[8]*m[3]*m[6],

		m[4]*m[9]*m[15] - m[4]*m[11]*m[13] - m[8]*m[5]*m[15] + m[8]*m[7]*m[13] + m[12]*m[5]*m[11] - m[12]*m[7]*m[9],
		-m[0]*m[9]*m[15] + m[0]*m[11]*m[13] + m[8]*m[1]*m[15] - m[8]*m[3]*m[13] - m[12]*m[1]*m[11] + m[12]*m[3]*m[9],
		m[0]*m[5]*m[15] - m[0]*m[7]*m[13] - m[4]*m[1]*m[15] + m[4]*m[3]*m[13] + m[12]*m[1]*m[7] - m[12]*m[3]*m[5],
		-m[0]*m[5]*m[11] + m[0]*m[7]*m[9] + m[4]*m[1]*m[11] - m[4]*m[3]*m[9] - m[8]*m[1]*m[7] + m[8]*m[3]*m[5],

		-m[4]*m[9]*m[14] + m[4]*m[10]*m[13] + m[8]*m[5]*m[14] - m[8]*m[6]*m[13] - m[12]*m[5]*m[10] + m[12]*m[6]*m[9],
		m[0]*m[9]*m[14] - m[0]*m[10]*m[13] - m[8]*m[1]*m[14] + m[8]*m[2]*m[13] + m[12]*m[1]*m[10] - m[12]*m[2]*m[9],
		-m[0]*m[5]*m[14] + m[0]*m[6]*m[13] + m[4]*m[1]*m[14] - m[4]*m[2]*m[13] - m[12]*m[1]*m[6] + m[12]*m[2]*m[5],
		m[0]*m[5]*m[10] - m[0]*m[6]*m[9] - m[4]*m[1]*m[10] + m[4]*m[2]*m[9] + m[8]*m[1]*m[6] - m[8]*m[2]*m[5],
	}
}

// Ptr returns a pointer to the first element (for OpenGL uniform calls).
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}
