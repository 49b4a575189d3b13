package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/gosolid/pkg/geometry"
	"github.com/philipparndt/gosolid/pkg/mesh"
)

// EdgeInfo contains information about an edge of the solid
type EdgeInfo struct {
	Start     geometry.Vector3
	End       geometry.Vector3
	Length    float64
	Triangles int
}

// MeasurementResult contains various measurements of a solid
type MeasurementResult struct {
	BoundingBox      geometry.BoundingBox
	Dimensions       geometry.Vector3
	Volume           float64
	SurfaceArea      float64
	VertexCount      int
	TriangleCount    int
	EdgeCount        int
	MinEdgeLength    float64
	MaxEdgeLength    float64
	AvgEdgeLength    float64
	AllEdges         []EdgeInfo
	BoundaryEdges    int
	NonManifoldEdges int
	Watertight       bool
	Euler            int
}

// AnalyzeSolid performs comprehensive analysis on a solid. The volume is
// only meaningful when the solid has been oriented.
func AnalyzeSolid(s *mesh.Solid) *MeasurementResult {
	result := &MeasurementResult{
		BoundingBox:   s.BoundingBox(),
		SurfaceArea:   s.SurfaceArea(),
		Volume:        s.Volume(),
		VertexCount:   s.NumVertices(),
		TriangleCount: s.NumTriangles(),
		EdgeCount:     s.NumEdges(),
		AllEdges:      make([]EdgeInfo, 0, s.NumEdges()),
	}

	result.Dimensions = result.BoundingBox.Size()
	result.Euler = result.VertexCount - result.EdgeCount + result.TriangleCount

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0

	for _, edge := range s.Edges() {
		vertices := edge.Vertices()
		length := edge.Length()
		triangles := len(edge.Triangles())

		result.AllEdges = append(result.AllEdges, EdgeInfo{
			Start:     vertices[0].Position(),
			End:       vertices[1].Position(),
			Length:    length,
			Triangles: triangles,
		})

		switch {
		case triangles < 2:
			result.BoundaryEdges++
		case triangles > 2:
			result.NonManifoldEdges++
		}

		totalLength += length
		if length < minLength {
			minLength = length
		}
		if length > maxLength {
			maxLength = length
		}
	}

	if result.EdgeCount > 0 {
		result.MinEdgeLength = minLength
		result.MaxEdgeLength = maxLength
		result.AvgEdgeLength = totalLength / float64(result.EdgeCount)
	}
	result.Watertight = result.EdgeCount > 0 && result.BoundaryEdges == 0 && result.NonManifoldEdges == 0

	return result
}

// FindEdgesByLength finds all edges within a length range
func FindEdgesByLength(result *MeasurementResult, minLength, maxLength float64) []EdgeInfo {
	var edges []EdgeInfo
	for _, edge := range result.AllEdges {
		if edge.Length >= minLength && edge.Length <= maxLength {
			edges = append(edges, edge)
		}
	}
	return edges
}

// FindLongestEdges returns the N longest edges in the solid
func FindLongestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length > b.Length })
}

// FindShortestEdges returns the N shortest edges in the solid
func FindShortestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length < b.Length })
}

func sortedEdges(result *MeasurementResult, count int, less func(a, b EdgeInfo) bool) []EdgeInfo {
	edges := make([]EdgeInfo, len(result.AllEdges))
	copy(edges, result.AllEdges)

	sort.SliceStable(edges, func(i, j int) bool {
		return less(edges[i], edges[j])
	})

	if count < 0 {
		count = 0
	}
	if count > len(edges) {
		count = len(edges)
	}

	return edges[:count]
}

// DistanceBetweenPoints calculates the distance between two arbitrary points
func DistanceBetweenPoints(p1, p2 geometry.Vector3) float64 {
	return p1.Distance(p2)
}

// FindNearestVertex finds the vertex of s nearest to a given point. It
// reports false for a solid without vertices.
func FindNearestVertex(s *mesh.Solid, point geometry.Vector3) (mesh.Vertex, float64, bool) {
	var nearest mesh.Vertex
	minDistance := math.MaxFloat64
	found := false

	for _, vertex := range s.Vertices() {
		distance := point.Distance(vertex.Position())
		if distance < minDistance {
			minDistance = distance
			nearest = vertex
			found = true
		}
	}

	return nearest, minDistance, found
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string, precision int) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.*f %s", precision, value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3, precision int) string {
	return fmt.Sprintf("(%.*f, %.*f, %.*f)", precision, v.X, precision, v.Y, precision, v.Z)
}
