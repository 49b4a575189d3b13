package mesh

import (
	"github.com/philipparndt/gosolid/pkg/geometry"
)

// DedupEpsilon is the distance below which two hits of one ray are treated
// as the same surface crossing.
const DedupEpsilon = 1e-6

// barycentricTolerance widens the accepted barycentric range so that a
// crossing exactly on an edge registers on both adjacent triangles despite
// rounding. RemoveDuplicates then counts it once.
const barycentricTolerance = 1e-9

// Ray is a half-line starting at Origin and extending along Direction.
// Direction does not need to be normalized; hit distances are measured in
// multiples of it.
type Ray struct {
	Origin    geometry.Vector3
	Direction geometry.Vector3
}

// NewRay creates a ray.
func NewRay(origin, direction geometry.Vector3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// Equal reports whether both rays have the same origin and direction.
func (r Ray) Equal(other Ray) bool {
	return r.Origin == other.Origin && r.Direction == other.Direction
}

// PointAt returns origin + t*direction.
func (r Ray) PointAt(t float64) geometry.Vector3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// CastOnTriangle intersects the ray with a triangle. It solves
// origin + t*d = v0 + u*(v1-v0) + v*(v2-v0) and accepts the solution when
// t >= 0 and (u, v, 1-u-v) are all within [0, 1], up to a rounding
// tolerance on the triangle boundary. A ray parallel to the triangle plane
// does not hit.
func (r Ray) CastOnTriangle(t Triangle) RayHit {
	vs := t.Vertices()
	v0 := vs[0].Position()
	ej := vs[1].Position().Sub(v0)
	ek := vs[2].Position().Sub(v0)

	mat := geometry.Matrix3FromColumns(r.Direction.Neg(), ej, ek)
	solution, err := mat.Solve(r.Origin.Sub(v0))
	if err != nil {
		return noHit(r)
	}

	dist, u, v := solution.X, solution.Y, solution.Z
	if dist < 0 || !inUnitRange(u) || !inUnitRange(v) || !inUnitRange(1-u-v) {
		return noHit(r)
	}

	return RayHit{ray: r, distance: dist, hit: true}
}

// CastOnMesh intersects the ray with every triangle of m. Hits closer to
// each other than DedupEpsilon, such as a crossing through an edge shared
// by two triangles, are counted once.
func (r Ray) CastOnMesh(m *Mesh) *RayHitSet {
	return r.cast(m, Triangle{}, 0)
}

// cast collects the hits on every triangle except skip, ignoring those
// closer than minDistance, and removes duplicates.
func (r Ray) cast(m *Mesh, skip Triangle, minDistance float64) *RayHitSet {
	set := NewRayHitSet(r)
	for _, t := range m.Triangles() {
		if t == skip {
			continue
		}
		hit := r.CastOnTriangle(t)
		if !hit.HasHit() || hit.Distance() < minDistance {
			continue
		}
		set.insert(hit)
	}
	set.RemoveDuplicates()
	return set
}

func inUnitRange(x float64) bool {
	return x >= -barycentricTolerance && x <= 1+barycentricTolerance
}
