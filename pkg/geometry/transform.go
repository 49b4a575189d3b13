package geometry

import "github.com/go-gl/mathgl/mgl64"

// Transform accumulates scale, rotation and translation into one affine
// 4x4 matrix. Each call post-multiplies the current matrix, so the
// operation added last is the first one applied to a point.
type Transform struct {
	m mgl64.Mat4
}

// NewTransform returns an identity transform
func NewTransform() *Transform {
	return &Transform{m: mgl64.Ident4()}
}

// Scale performs a uniform scaling
func (t *Transform) Scale(factor float64) *Transform {
	return t.ScaleAxes(NewVector3(factor, factor, factor))
}

// ScaleAxes performs a non-uniform scaling
func (t *Transform) ScaleAxes(factors Vector3) *Transform {
	t.m = t.m.Mul4(mgl64.Scale3D(factors.X, factors.Y, factors.Z))
	return t
}

// Rotate rotates by angle radians around axis
func (t *Transform) Rotate(angle float64, axis Vector3) *Transform {
	t.m = t.m.Mul4(mgl64.HomogRotate3D(angle, axis.Normalize().Vec3()))
	return t
}

// Translate performs a translation
func (t *Transform) Translate(offset Vector3) *Transform {
	t.m = t.m.Mul4(mgl64.Translate3D(offset.X, offset.Y, offset.Z))
	return t
}

// Clear resets the transform to identity
func (t *Transform) Clear() {
	t.m = mgl64.Ident4()
}

// Determinant of the linear part; the volume scale factor of the transform
func (t *Transform) Determinant() float64 {
	return t.m.Mat3().Det()
}

// Apply transforms a point
func (t *Transform) Apply(point Vector3) Vector3 {
	return FromVec3(t.m.Mul4x1(point.Vec3().Vec4(1)).Vec3())
}
