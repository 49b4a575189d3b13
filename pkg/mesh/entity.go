package mesh

import (
	"fmt"

	"github.com/philipparndt/gosolid/pkg/geometry"
)

// store is the arena owning every entity record of one mesh. Adjacency is
// kept as index slices into the same arena, so records never point at each
// other and the mesh is the only owner.
type store struct {
	vertices  []vertexRecord
	edges     []edgeRecord
	triangles []triangleRecord
	released  bool
}

type vertexRecord struct {
	position  geometry.Vector3
	edges     []int
	triangles []int
}

type edgeRecord struct {
	vertices  [2]int
	triangles []int
}

type triangleRecord struct {
	edges    [3]int
	vertices [3]int
}

// Vertex is a handle to a vertex record owned by a Mesh. Handles compare
// equal when they refer to the same record and can be used as map keys.
type Vertex struct {
	s  *store
	id int
}

// Edge is a handle to an edge record owned by a Mesh.
type Edge struct {
	s  *store
	id int
}

// Triangle is a handle to a triangle record owned by a Mesh.
type Triangle struct {
	s  *store
	id int
}

func (s *store) live() bool {
	return s != nil && !s.released
}

// IsValid reports whether the handle refers to a record of a live mesh.
func (v Vertex) IsValid() bool {
	return v.s.live() && v.id >= 0 && v.id < len(v.s.vertices)
}

// IsValid reports whether the handle refers to a record of a live mesh.
func (e Edge) IsValid() bool {
	return e.s.live() && e.id >= 0 && e.id < len(e.s.edges)
}

// IsValid reports whether the handle refers to a record of a live mesh.
func (t Triangle) IsValid() bool {
	return t.s.live() && t.id >= 0 && t.id < len(t.s.triangles)
}

func (v Vertex) record() *vertexRecord {
	if !v.IsValid() {
		panic(fmt.Sprintf("mesh: use of invalid vertex handle %d", v.id))
	}
	return &v.s.vertices[v.id]
}

func (e Edge) record() *edgeRecord {
	if !e.IsValid() {
		panic(fmt.Sprintf("mesh: use of invalid edge handle %d", e.id))
	}
	return &e.s.edges[e.id]
}

func (t Triangle) record() *triangleRecord {
	if !t.IsValid() {
		panic(fmt.Sprintf("mesh: use of invalid triangle handle %d", t.id))
	}
	return &t.s.triangles[t.id]
}

// Less orders vertices of the same mesh by creation.
func (v Vertex) Less(other Vertex) bool { return v.id < other.id }

// Less orders edges of the same mesh by creation.
func (e Edge) Less(other Edge) bool { return e.id < other.id }

// Less orders triangles of the same mesh by creation.
func (t Triangle) Less(other Triangle) bool { return t.id < other.id }

// Position returns the vertex coordinates.
func (v Vertex) Position() geometry.Vector3 {
	return v.record().position
}

// SetPosition moves the vertex. Every edge and triangle referencing it
// observes the new position.
func (v Vertex) SetPosition(p geometry.Vector3) {
	v.record().position = p
}

// Edges returns the edges incident to the vertex.
func (v Vertex) Edges() []Edge {
	return v.s.edgeHandles(v.record().edges)
}

// Triangles returns the triangles incident to the vertex.
func (v Vertex) Triangles() []Triangle {
	return v.s.triangleHandles(v.record().triangles)
}

func (v Vertex) String() string {
	return fmt.Sprintf("v%d%v", v.id, v.Position())
}

// Vertices returns both endpoints in creation order.
func (e Edge) Vertices() [2]Vertex {
	r := e.record()
	return [2]Vertex{{e.s, r.vertices[0]}, {e.s, r.vertices[1]}}
}

// Triangles returns the triangles bounded by the edge.
func (e Edge) Triangles() []Triangle {
	return e.s.triangleHandles(e.record().triangles)
}

// HasVertex reports whether v is an endpoint of the edge.
func (e Edge) HasVertex(v Vertex) bool {
	if v.s != e.s {
		return false
	}
	r := e.record()
	return r.vertices[0] == v.id || r.vertices[1] == v.id
}

// Other returns the endpoint opposite to v.
func (e Edge) Other(v Vertex) (Vertex, bool) {
	if !e.HasVertex(v) {
		return Vertex{}, false
	}
	r := e.record()
	if r.vertices[0] == v.id {
		return Vertex{e.s, r.vertices[1]}, true
	}
	return Vertex{e.s, r.vertices[0]}, true
}

// Vector returns the position of the second endpoint minus the first.
func (e Edge) Vector() geometry.Vector3 {
	r := e.record()
	return e.s.vertices[r.vertices[1]].position.Sub(e.s.vertices[r.vertices[0]].position)
}

// Length returns the distance between the endpoints.
func (e Edge) Length() float64 {
	return e.Vector().Length()
}

// Vertices returns the corners: the endpoints of the first edge given at
// construction, then the far endpoint of the second edge.
func (t Triangle) Vertices() [3]Vertex {
	r := t.record()
	return [3]Vertex{{t.s, r.vertices[0]}, {t.s, r.vertices[1]}, {t.s, r.vertices[2]}}
}

// Edges returns the boundary edges in their current order.
func (t Triangle) Edges() [3]Edge {
	r := t.record()
	return [3]Edge{{t.s, r.edges[0]}, {t.s, r.edges[1]}, {t.s, r.edges[2]}}
}

// HasEdge reports whether e bounds the triangle.
func (t Triangle) HasEdge(e Edge) bool {
	if e.s != t.s {
		return false
	}
	r := t.record()
	return r.edges[0] == e.id || r.edges[1] == e.id || r.edges[2] == e.id
}

// VectorArea returns a vector along Normal whose length is the area.
func (t Triangle) VectorArea() geometry.Vector3 {
	edges := t.Edges()
	return edges[1].Vector().Cross(edges[0].Vector()).Mul(0.5)
}

// Area returns the surface area.
func (t Triangle) Area() float64 {
	return t.VectorArea().Length()
}

// Normal returns the unit face normal. Its sign follows the edge order and
// is flipped by ChangeOrientation. Degenerate triangles return the zero
// vector.
func (t Triangle) Normal() geometry.Vector3 {
	edges := t.Edges()
	return edges[1].Vector().Cross(edges[0].Vector()).Normalize()
}

// Position returns the centroid.
func (t Triangle) Position() geometry.Vector3 {
	r := t.record()
	sum := geometry.Vector3{}
	for _, id := range r.vertices {
		sum = sum.Add(t.s.vertices[id].position)
	}
	return sum.Div(3)
}

// ChangeOrientation swaps the first two edges, which flips Normal and
// VectorArea without changing which edges and vertices bound the triangle.
func (t Triangle) ChangeOrientation() {
	r := t.record()
	r.edges[0], r.edges[1] = r.edges[1], r.edges[0]
}

// Winding returns the corners ordered so that
// (w1-w0) x (w2-w0) points along Normal.
func (t Triangle) Winding() [3]Vertex {
	vs := t.Vertices()
	p0, p1, p2 := vs[0].Position(), vs[1].Position(), vs[2].Position()
	if p1.Sub(p0).Cross(p2.Sub(p0)).Dot(t.VectorArea()) < 0 {
		vs[1], vs[2] = vs[2], vs[1]
	}
	return vs
}

func (t Triangle) String() string {
	vs := t.Vertices()
	return fmt.Sprintf("t%d[%d %d %d]", t.id, vs[0].id, vs[1].id, vs[2].id)
}

func (s *store) edgeHandles(ids []int) []Edge {
	out := make([]Edge, len(ids))
	for i, id := range ids {
		out[i] = Edge{s, id}
	}
	return out
}

func (s *store) triangleHandles(ids []int) []Triangle {
	out := make([]Triangle, len(ids))
	for i, id := range ids {
		out[i] = Triangle{s, id}
	}
	return out
}
