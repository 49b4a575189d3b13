package geometry

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrSingularMatrix is returned when a matrix has no inverse.
var ErrSingularMatrix = errors.New("geometry: singular matrix")

// Matrix3 is a 3x3 matrix stored column-major
type Matrix3 struct {
	m mgl64.Mat3
}

// Matrix3FromColumns builds a matrix whose columns are c0, c1 and c2
func Matrix3FromColumns(c0, c1, c2 Vector3) Matrix3 {
	return Matrix3{m: mgl64.Mat3FromCols(c0.Vec3(), c1.Vec3(), c2.Vec3())}
}

// Identity3 returns the 3x3 identity matrix
func Identity3() Matrix3 {
	return Matrix3{m: mgl64.Ident3()}
}

// At returns the element at row, col
func (m Matrix3) At(row, col int) float64 {
	return m.m.At(row, col)
}

// Column returns column i
func (m Matrix3) Column(i int) Vector3 {
	return FromVec3(m.m.Col(i))
}

// Determinant returns the determinant of the matrix
func (m Matrix3) Determinant() float64 {
	return m.m.Det()
}

// Transpose returns the transposed matrix
func (m Matrix3) Transpose() Matrix3 {
	return Matrix3{m: m.m.Transpose()}
}

// Mul returns the matrix product m * other
func (m Matrix3) Mul(other Matrix3) Matrix3 {
	return Matrix3{m: m.m.Mul3(other.m)}
}

// MulVector returns the product m * v
func (m Matrix3) MulVector(v Vector3) Vector3 {
	return FromVec3(m.m.Mul3x1(v.Vec3()))
}

// Solve returns x such that m * x = b, using Cramer's rule.
// It fails with ErrSingularMatrix when the determinant is zero or not finite.
func (m Matrix3) Solve(b Vector3) (Vector3, error) {
	det := m.Determinant()
	if singular(det) {
		return Vector3{}, ErrSingularMatrix
	}

	c0, c1, c2 := m.Column(0), m.Column(1), m.Column(2)
	x := Matrix3FromColumns(b, c1, c2).Determinant() / det
	y := Matrix3FromColumns(c0, b, c2).Determinant() / det
	z := Matrix3FromColumns(c0, c1, b).Determinant() / det

	return NewVector3(x, y, z), nil
}

// Inverse returns the inverse matrix, or ErrSingularMatrix
func (m Matrix3) Inverse() (Matrix3, error) {
	if singular(m.Determinant()) {
		return Matrix3{}, ErrSingularMatrix
	}
	return Matrix3{m: m.m.Inv()}, nil
}

func singular(det float64) bool {
	return det == 0 || math.IsNaN(det) || math.IsInf(det, 0)
}

// ApproxEqual reports whether all elements differ by at most tolerance
func (m Matrix3) ApproxEqual(other Matrix3, tolerance float64) bool {
	for i := range m.m {
		if math.Abs(m.m[i]-other.m[i]) > tolerance {
			return false
		}
	}
	return true
}
