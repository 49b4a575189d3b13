package mesh

import (
	"fmt"
	"math"

	"github.com/philipparndt/gosolid/pkg/geometry"
)

// Cube creates an axis-aligned cube with one corner at the origin.
func Cube(size float64) *Solid {
	return Box(geometry.NewVector3(size, size, size))
}

// Box creates an axis-aligned box with one corner at the origin and the
// opposite corner at size. The result has 8 vertices, 18 edges and 12
// triangles and is not oriented.
func Box(size geometry.Vector3) *Solid {
	box := NewSolid()
	x, y, z := size.X, size.Y, size.Z

	v1 := box.AddVertex(geometry.NewVector3(0, 0, 0))
	v2 := box.AddVertex(geometry.NewVector3(0, 0, z))
	v3 := box.AddVertex(geometry.NewVector3(0, y, z))
	v4 := box.AddVertex(geometry.NewVector3(0, y, 0))
	v5 := box.AddVertex(geometry.NewVector3(x, 0, 0))
	v6 := box.AddVertex(geometry.NewVector3(x, 0, z))
	v7 := box.AddVertex(geometry.NewVector3(x, y, z))
	v8 := box.AddVertex(geometry.NewVector3(x, y, 0))

	// x = 0
	e12 := box.mustEdge(v1, v2)
	e23 := box.mustEdge(v2, v3)
	e34 := box.mustEdge(v3, v4)
	e14 := box.mustEdge(v1, v4)
	e13 := box.mustEdge(v1, v3)

	// x = size
	e56 := box.mustEdge(v5, v6)
	e67 := box.mustEdge(v6, v7)
	e78 := box.mustEdge(v7, v8)
	e58 := box.mustEdge(v5, v8)
	e57 := box.mustEdge(v5, v7)

	// Along x
	e15 := box.mustEdge(v1, v5)
	e26 := box.mustEdge(v2, v6)
	e37 := box.mustEdge(v3, v7)
	e48 := box.mustEdge(v4, v8)

	// Side diagonals
	e16 := box.mustEdge(v1, v6)
	e27 := box.mustEdge(v2, v7)
	e38 := box.mustEdge(v3, v8)
	e45 := box.mustEdge(v4, v5)

	box.mustTriangle(e12, e23, e13)
	box.mustTriangle(e13, e34, e14)
	box.mustTriangle(e56, e67, e57)
	box.mustTriangle(e57, e78, e58)
	box.mustTriangle(e12, e26, e16)
	box.mustTriangle(e56, e15, e16)
	box.mustTriangle(e34, e48, e38)
	box.mustTriangle(e78, e37, e38)
	box.mustTriangle(e23, e37, e27)
	box.mustTriangle(e67, e26, e27)
	box.mustTriangle(e14, e15, e45)
	box.mustTriangle(e58, e48, e45)

	return box
}

// Cone creates a closed cone standing on the XY plane: a regular polygon
// base with the given number of segments centred on the origin, and the
// apex at (0, 0, height). The result is not oriented.
func Cone(radius, height float64, segments int) (*Solid, error) {
	if segments < 3 {
		return nil, fmt.Errorf("%w: cone needs at least 3 segments, got %d", ErrInvalidShape, segments)
	}
	if radius <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: cone radius and height must be positive", ErrInvalidShape)
	}

	cone := NewSolid()
	apex := cone.AddVertex(geometry.NewVector3(0, 0, height))
	center := cone.AddVertex(geometry.NewVector3(0, 0, 0))

	ring := make([]Vertex, segments)
	for i := range ring {
		angle := geometry.Tau * float64(i) / float64(segments)
		ring[i] = cone.AddVertex(geometry.NewVector3(radius*math.Cos(angle), radius*math.Sin(angle), 0))
	}

	for i := range ring {
		next := ring[(i+1)%segments]
		cone.mustTriangleFromVertices(ring[i], next, apex)
		cone.mustTriangleFromVertices(center, next, ring[i])
	}

	return cone, nil
}

// The must helpers build shapes from freshly created vertices, where an
// error can only come from a bug in the factory itself.

func (m *Mesh) mustEdge(v1, v2 Vertex) Edge {
	e, err := m.AddEdge(v1, v2)
	if err != nil {
		panic(fmt.Sprintf("mesh: building shape: %v", err))
	}
	return e
}

func (m *Mesh) mustTriangle(e1, e2, e3 Edge) Triangle {
	t, err := m.AddTriangle(e1, e2, e3)
	if err != nil {
		panic(fmt.Sprintf("mesh: building shape: %v", err))
	}
	return t
}

func (m *Mesh) mustTriangleFromVertices(v1, v2, v3 Vertex) Triangle {
	t, err := m.AddTriangleFromVertices(v1, v2, v3)
	if err != nil {
		panic(fmt.Sprintf("mesh: building shape: %v", err))
	}
	return t
}
