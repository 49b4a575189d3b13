package stl

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/philipparndt/gosolid/pkg/geometry"
	"github.com/philipparndt/gosolid/pkg/mesh"
)

// Facet is one triangle as stored in an STL file. Corners are listed
// counter-clockwise when seen from outside.
type Facet struct {
	Normal     geometry.Vector3
	V1, V2, V3 geometry.Vector3
}

// Area returns the facet's area.
func (f Facet) Area() float64 {
	return f.V2.Sub(f.V1).Cross(f.V3.Sub(f.V1)).Length() / 2
}

// Model represents a complete STL model
type Model struct {
	Name   string
	Facets []Facet
}

// NewModel creates a new STL model
func NewModel(name string) *Model {
	return &Model{
		Name:   name,
		Facets: make([]Facet, 0),
	}
}

// AddFacet adds a facet to the model
func (m *Model) AddFacet(facet Facet) {
	m.Facets = append(m.Facets, facet)
}

// FacetCount returns the number of facets in the model
func (m *Model) FacetCount() int {
	return len(m.Facets)
}

// BoundingBox calculates the bounding box of the entire model
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, facet := range m.Facets {
		bbox.Extend(facet.V1)
		bbox.Extend(facet.V2)
		bbox.Extend(facet.V3)
	}
	return bbox
}

// SurfaceArea calculates the total surface area of the model
func (m *Model) SurfaceArea() float64 {
	totalArea := 0.0
	for _, facet := range m.Facets {
		totalArea += facet.Area()
	}
	return totalArea
}

// maxWeldCell bounds cell indices so that neighbour lookups stay in int64.
const maxWeldCell = 1 << 52

// weldKey identifies a grid cell of side tolerance.
type weldKey [3]int64

// welder merges points closer than tolerance into one vertex. Points are
// bucketed into cells of side tolerance; a lookup scans the 27 cells around
// the point, so neighbours across a cell boundary are found too.
type welder struct {
	solid     *mesh.Solid
	tolerance float64
	exact     map[geometry.Vector3]mesh.Vertex
	cells     map[weldKey][]mesh.Vertex
}

func newWelder(solid *mesh.Solid, tolerance float64) *welder {
	return &welder{
		solid:     solid,
		tolerance: tolerance,
		exact:     make(map[geometry.Vector3]mesh.Vertex),
		cells:     make(map[weldKey][]mesh.Vertex),
	}
}

func (w *welder) cell(p geometry.Vector3) (weldKey, error) {
	var key weldKey
	for i := range key {
		c := math.Floor(p.Component(i) / w.tolerance)
		if math.IsInf(c, 0) || math.Abs(c) > maxWeldCell {
			return weldKey{}, fmt.Errorf("%w: %s at tolerance %g", ErrWeldRange, p, w.tolerance)
		}
		key[i] = int64(c)
	}
	return key, nil
}

// vertexAt returns the nearest existing vertex within tolerance of p, or a
// new vertex at p.
func (w *welder) vertexAt(p geometry.Vector3) (mesh.Vertex, error) {
	if w.tolerance <= 0 {
		if v, ok := w.exact[p]; ok {
			return v, nil
		}
		v := w.solid.AddVertex(p)
		w.exact[p] = v
		return v, nil
	}

	key, err := w.cell(p)
	if err != nil {
		return mesh.Vertex{}, err
	}

	var nearest mesh.Vertex
	best := math.Inf(1)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dz := int64(-1); dz <= 1; dz++ {
				for _, v := range w.cells[weldKey{key[0] + dx, key[1] + dy, key[2] + dz}] {
					if d := v.Position().Distance(p); d <= w.tolerance && d < best {
						nearest, best = v, d
					}
				}
			}
		}
	}
	if !math.IsInf(best, 1) {
		return nearest, nil
	}

	v := w.solid.AddVertex(p)
	w.cells[key] = append(w.cells[key], v)
	return v, nil
}

// ToSolid builds a solid with shared vertices and edges from the facet soup.
// A corner within tolerance of an existing vertex reuses the nearest one; a
// tolerance <= 0 welds only identical coordinates. Facets that collapse to
// fewer than three distinct vertices are skipped. Each triangle keeps the
// facet's winding.
func (m *Model) ToSolid(tolerance float64) (*mesh.Solid, error) {
	solid := mesh.NewSolid()
	weld := newWelder(solid, tolerance)

	skipped := 0
	for i, facet := range m.Facets {
		if facet.V1.IsNaN() || facet.V2.IsNaN() || facet.V3.IsNaN() {
			return nil, fmt.Errorf("%w: facet %d has NaN coordinates", ErrInvalidFacet, i)
		}
		var corners [3]mesh.Vertex
		for j, p := range [3]geometry.Vector3{facet.V1, facet.V2, facet.V3} {
			v, err := weld.vertexAt(p)
			if err != nil {
				return nil, fmt.Errorf("facet %d: %w", i, err)
			}
			corners[j] = v
		}
		v1, v2, v3 := corners[0], corners[1], corners[2]
		if v1 == v2 || v2 == v3 || v1 == v3 {
			skipped++
			continue
		}
		if _, err := solid.AddWoundTriangle(v1, v2, v3); err != nil {
			return nil, fmt.Errorf("facet %d: %w", i, err)
		}
	}

	slog.Debug("welded STL model",
		slog.String("name", m.Name),
		slog.Int("facets", len(m.Facets)),
		slog.Int("vertices", solid.NumVertices()),
		slog.Int("triangles", solid.NumTriangles()),
		slog.Int("skipped", skipped),
	)
	return solid, nil
}

// FromSolid captures the triangles of s as facets with their current normal
// and winding.
func FromSolid(name string, s *mesh.Solid) *Model {
	model := NewModel(name)
	for _, t := range s.Triangles() {
		w := t.Winding()
		model.AddFacet(Facet{
			Normal: t.Normal(),
			V1:     w[0].Position(),
			V2:     w[1].Position(),
			V3:     w[2].Position(),
		})
	}
	return model
}
