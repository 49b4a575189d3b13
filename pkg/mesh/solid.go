package mesh

import (
	"log/slog"

	"github.com/philipparndt/gosolid/pkg/geometry"
)

// containsDirection is a skew direction used by Contains, chosen so that
// rays from typical sample points avoid running along edges of axis-aligned
// meshes.
var containsDirection = geometry.NewVector3(0.5377, 0.3011, 0.7879)

// Solid is a mesh describing the closed surface of a volume.
type Solid struct {
	*Mesh
}

// NewSolid creates an empty solid.
func NewSolid() *Solid {
	return &Solid{Mesh: New()}
}

// FromMesh takes ownership of m's records. m is left empty.
func FromMesh(m *Mesh) *Solid {
	return &Solid{Mesh: m.Move()}
}

// Orient flips triangles so that every normal points out of the solid, and
// returns how many were flipped. Complexity: O(n²) in the triangle count.
//
// For each face a ray is cast from its centroid along its normal against
// all other faces. Hits closer than DedupEpsilon are ignored, which drops
// coplanar neighbours touching the centroid. An odd number of crossings
// means the ray started out travelling into the volume.
func (s *Solid) Orient() int {
	flipped := 0
	degenerate := 0
	for _, face := range s.Triangles() {
		normal := face.Normal()
		if normal == (geometry.Vector3{}) {
			degenerate++
			continue
		}
		ray := NewRay(face.Position(), normal)
		if ray.cast(s.Mesh, face, DedupEpsilon).Len()%2 == 1 {
			face.ChangeOrientation()
			flipped++
		}
	}

	slog.Debug("solid oriented",
		slog.Int("triangles", s.NumTriangles()),
		slog.Int("flipped", flipped),
		slog.Int("degenerate", degenerate),
	)
	return flipped
}

// Volume returns the enclosed volume using the divergence theorem. The solid
// must be oriented first; otherwise the result is meaningless.
func (s *Solid) Volume() float64 {
	volume := 0.0
	for _, face := range s.Triangles() {
		vs := face.Vertices()
		p0, p1, p2 := vs[0].Position(), vs[1].Position(), vs[2].Position()
		e1 := p1.Sub(p0)
		e2 := p2.Sub(p1)

		// Twice a point on the face plane.
		sample := p0.Add(p1).Add(e1.Add(e2).Mul(0.5))
		volume += sample.Dot(face.VectorArea())
	}
	return volume / 6
}

// Center returns the mean of all vertex positions. This is not the
// volumetric centroid.
func (s *Solid) Center() geometry.Vector3 {
	n := s.NumVertices()
	if n == 0 {
		return geometry.Vector3{}
	}
	sum := geometry.Vector3{}
	for _, v := range s.Vertices() {
		sum = sum.Add(v.Position())
	}
	return sum.Div(float64(n))
}

// Centralize translates the solid so that Center is the origin.
func (s *Solid) Centralize() {
	center := s.Center()
	for _, v := range s.Vertices() {
		v.SetPosition(v.Position().Sub(center))
	}
}

// Contains reports whether point lies inside the solid by counting surface
// crossings of a ray leaving it. Points on the surface give no guarantee.
func (s *Solid) Contains(point geometry.Vector3) bool {
	return NewRay(point, containsDirection).CastOnMesh(s.Mesh).Len()%2 == 1
}

// SurfaceArea returns the sum of all triangle areas.
func (s *Solid) SurfaceArea() float64 {
	area := 0.0
	for _, t := range s.Triangles() {
		area += t.Area()
	}
	return area
}
