// Package mesh provides a triangle mesh with full vertex/edge/triangle
// adjacency, ray casting over it and closed-solid queries.
//
// # Ownership Model
//
// A Mesh owns every Vertex, Edge and Triangle record created through it.
// Handles are lightweight values (arena index plus owner) and never own
// anything; they stay usable across Move and become invalid after Release.
//
// # Thread Safety
//
// Mesh is NOT safe for concurrent use. Callers sharing a mesh between
// goroutines must synchronize externally.
package mesh

import (
	"fmt"

	"github.com/philipparndt/gosolid/pkg/geometry"
)

// Transformer maps a point to a new position.
type Transformer interface {
	Apply(point geometry.Vector3) geometry.Vector3
}

// Mesh owns a set of vertices, edges and triangles.
type Mesh struct {
	s *store
}

// New creates an empty mesh.
func New() *Mesh {
	return &Mesh{s: &store{}}
}

// AddVertex creates a vertex at position. Vertices are not deduplicated by
// position; inserting coincident vertices is unsupported.
func (m *Mesh) AddVertex(position geometry.Vector3) Vertex {
	m.s.vertices = append(m.s.vertices, vertexRecord{position: position})
	return Vertex{m.s, len(m.s.vertices) - 1}
}

// AddEdge returns the edge joining v1 and v2, creating it if the pair is not
// connected yet. Argument order does not matter for the lookup. On error the
// mesh is left unchanged.
func (m *Mesh) AddEdge(v1, v2 Vertex) (Edge, error) {
	if err := m.checkVertex(v1); err != nil {
		return Edge{}, err
	}
	if err := m.checkVertex(v2); err != nil {
		return Edge{}, err
	}
	if v1 == v2 {
		return Edge{}, fmt.Errorf("%w: %v", ErrDegenerateEdge, v1)
	}

	if e, ok := m.findEdge(v1, v2); ok {
		return e, nil
	}

	// Validation is complete; nothing below can fail.
	id := len(m.s.edges)
	m.s.edges = append(m.s.edges, edgeRecord{vertices: [2]int{v1.id, v2.id}})
	r1, r2 := &m.s.vertices[v1.id], &m.s.vertices[v2.id]
	r1.edges = append(r1.edges, id)
	r2.edges = append(r2.edges, id)

	return Edge{m.s, id}, nil
}

// AddTriangle returns the triangle bounded by e1, e2 and e3, creating it if
// none exists. Lookup ignores argument order; a new triangle keeps the given
// edge order, which fixes its initial orientation. Its corners are the
// endpoints of e1 followed by the endpoint of e2 not shared with e1. On
// error the mesh is left unchanged.
func (m *Mesh) AddTriangle(e1, e2, e3 Edge) (Triangle, error) {
	for _, e := range [3]Edge{e1, e2, e3} {
		if err := m.checkEdge(e); err != nil {
			return Triangle{}, err
		}
	}
	if e1 == e2 || e2 == e3 || e1 == e3 {
		return Triangle{}, fmt.Errorf("%w: repeated edge", ErrDegenerateTriangle)
	}

	if t, ok := m.findTriangle(e1, e2, e3); ok {
		return t, nil
	}

	corners, err := triangleCorners(e1, e2, e3)
	if err != nil {
		return Triangle{}, err
	}

	// Validation is complete; nothing below can fail.
	id := len(m.s.triangles)
	m.s.triangles = append(m.s.triangles, triangleRecord{
		edges:    [3]int{e1.id, e2.id, e3.id},
		vertices: [3]int{corners[0].id, corners[1].id, corners[2].id},
	})
	for _, v := range corners {
		r := &m.s.vertices[v.id]
		r.triangles = append(r.triangles, id)
	}
	for _, e := range [3]Edge{e1, e2, e3} {
		r := &m.s.edges[e.id]
		r.triangles = append(r.triangles, id)
	}

	return Triangle{m.s, id}, nil
}

// AddTriangleFromVertices connects the three vertices with edges
// (v1,v2), (v2,v3), (v1,v3) and returns the triangle they bound. All
// arguments are validated before any edge is created.
func (m *Mesh) AddTriangleFromVertices(v1, v2, v3 Vertex) (Triangle, error) {
	for _, v := range [3]Vertex{v1, v2, v3} {
		if err := m.checkVertex(v); err != nil {
			return Triangle{}, err
		}
	}
	if v1 == v2 || v2 == v3 || v1 == v3 {
		return Triangle{}, fmt.Errorf("%w: repeated vertex", ErrDegenerateTriangle)
	}

	e12, err := m.AddEdge(v1, v2)
	if err != nil {
		return Triangle{}, err
	}
	e23, err := m.AddEdge(v2, v3)
	if err != nil {
		return Triangle{}, err
	}
	e13, err := m.AddEdge(v1, v3)
	if err != nil {
		return Triangle{}, err
	}
	return m.AddTriangle(e12, e23, e13)
}

// AddWoundTriangle is AddTriangleFromVertices for corners listed
// counter-clockwise around the intended normal. A newly created triangle is
// oriented to match; an existing one is returned untouched.
func (m *Mesh) AddWoundTriangle(v1, v2, v3 Vertex) (Triangle, error) {
	before := len(m.s.triangles)
	t, err := m.AddTriangleFromVertices(v1, v2, v3)
	if err != nil {
		return Triangle{}, err
	}
	if len(m.s.triangles) > before && !sameCycle(t.Winding(), [3]Vertex{v1, v2, v3}) {
		t.ChangeOrientation()
	}
	return t, nil
}

// sameCycle reports whether b lists the corners of a in the same cyclic
// order.
func sameCycle(a, b [3]Vertex) bool {
	for i := range a {
		if a[i] == b[0] {
			return a[(i+1)%3] == b[1]
		}
	}
	return false
}

// Vertices returns every vertex of the mesh. The order is unspecified.
func (m *Mesh) Vertices() []Vertex {
	out := make([]Vertex, len(m.s.vertices))
	for i := range out {
		out[i] = Vertex{m.s, i}
	}
	return out
}

// Edges returns every edge of the mesh. The order is unspecified.
func (m *Mesh) Edges() []Edge {
	out := make([]Edge, len(m.s.edges))
	for i := range out {
		out[i] = Edge{m.s, i}
	}
	return out
}

// Triangles returns every triangle of the mesh. The order is unspecified.
func (m *Mesh) Triangles() []Triangle {
	out := make([]Triangle, len(m.s.triangles))
	for i := range out {
		out[i] = Triangle{m.s, i}
	}
	return out
}

func (m *Mesh) NumVertices() int  { return len(m.s.vertices) }
func (m *Mesh) NumEdges() int     { return len(m.s.edges) }
func (m *Mesh) NumTriangles() int { return len(m.s.triangles) }

// Apply replaces every vertex position p with t.Apply(p). Topology is not
// touched.
func (m *Mesh) Apply(t Transformer) {
	for i := range m.s.vertices {
		r := &m.s.vertices[i]
		r.position = t.Apply(r.position)
	}
}

// BoundingBox returns the box enclosing every vertex.
func (m *Mesh) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for i := range m.s.vertices {
		bbox.Extend(m.s.vertices[i].position)
	}
	return bbox
}

// Move transfers every record to a new mesh and leaves m empty. Handles
// obtained from m keep working and now belong to the returned mesh.
func (m *Mesh) Move() *Mesh {
	moved := &Mesh{s: m.s}
	m.s = &store{}
	return moved
}

// Release frees every record. Handles obtained before the call become
// invalid; m itself stays usable as an empty mesh.
func (m *Mesh) Release() {
	m.s.released = true
	m.s.vertices = nil
	m.s.edges = nil
	m.s.triangles = nil
	m.s = &store{}
}

// Owns reports whether v is a live vertex of this mesh.
func (m *Mesh) Owns(v Vertex) bool {
	return v.s == m.s && v.IsValid()
}

func (m *Mesh) checkVertex(v Vertex) error {
	if !v.IsValid() {
		return fmt.Errorf("%w: vertex %d", ErrInvalidHandle, v.id)
	}
	if v.s != m.s {
		return fmt.Errorf("%w: vertex %d", ErrForeignEntity, v.id)
	}
	return nil
}

func (m *Mesh) checkEdge(e Edge) error {
	if !e.IsValid() {
		return fmt.Errorf("%w: edge %d", ErrInvalidHandle, e.id)
	}
	if e.s != m.s {
		return fmt.Errorf("%w: edge %d", ErrForeignEntity, e.id)
	}
	return nil
}

// findEdge scans the edges of v1 for one ending at v2.
func (m *Mesh) findEdge(v1, v2 Vertex) (Edge, bool) {
	for _, id := range m.s.vertices[v1.id].edges {
		ends := m.s.edges[id].vertices
		if ends[0] == v2.id || ends[1] == v2.id {
			return Edge{m.s, id}, true
		}
	}
	return Edge{}, false
}

// findTriangle scans the triangles of e1 for one also bounded by e2 and e3.
func (m *Mesh) findTriangle(e1, e2, e3 Edge) (Triangle, bool) {
	for _, id := range m.s.edges[e1.id].triangles {
		t := Triangle{m.s, id}
		if t.HasEdge(e2) && t.HasEdge(e3) {
			return t, true
		}
	}
	return Triangle{}, false
}

// triangleCorners derives the corners of a triangle from its edges and
// checks that the edges close a cycle over three distinct vertices.
func triangleCorners(e1, e2, e3 Edge) ([3]Vertex, error) {
	ends := e1.Vertices()
	a, b := ends[0], ends[1]

	var c Vertex
	switch {
	case e2.HasVertex(a) && !e2.HasVertex(b):
		c, _ = e2.Other(a)
	case e2.HasVertex(b) && !e2.HasVertex(a):
		c, _ = e2.Other(b)
	default:
		return [3]Vertex{}, fmt.Errorf("%w: second edge must share exactly one vertex with the first", ErrDegenerateTriangle)
	}

	// The third edge joins c to whichever endpoint of e1 the second edge missed.
	var missing Vertex
	if e2.HasVertex(a) {
		missing = b
	} else {
		missing = a
	}
	if !e3.HasVertex(c) || !e3.HasVertex(missing) {
		return [3]Vertex{}, fmt.Errorf("%w: third edge does not close the cycle", ErrDegenerateTriangle)
	}

	return [3]Vertex{a, b, c}, nil
}
