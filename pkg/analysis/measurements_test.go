package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gosolid/pkg/geometry"
	"github.com/philipparndt/gosolid/pkg/mesh"
)

func TestAnalyzeCube(t *testing.T) {
	cube := mesh.Cube(2)
	cube.Orient()

	result := AnalyzeSolid(cube)

	assert.Equal(t, 8, result.VertexCount)
	assert.Equal(t, 18, result.EdgeCount)
	assert.Equal(t, 12, result.TriangleCount)
	assert.Equal(t, 2, result.Euler)
	assert.True(t, result.Watertight)
	assert.Zero(t, result.BoundaryEdges)
	assert.Zero(t, result.NonManifoldEdges)

	assert.Equal(t, geometry.NewVector3(2, 2, 2), result.Dimensions)
	assert.InDelta(t, 8, result.Volume, 1e-9)
	assert.InDelta(t, 24, result.SurfaceArea, 1e-9)
	assert.InDelta(t, 2, result.MinEdgeLength, 1e-12)
	assert.InDelta(t, 2*math.Sqrt2, result.MaxEdgeLength, 1e-12)
	assert.InDelta(t, (12*2+6*2*math.Sqrt2)/18, result.AvgEdgeLength, 1e-12)
	assert.Len(t, result.AllEdges, 18)
}

func TestAnalyzeOpenSurface(t *testing.T) {
	s := mesh.NewSolid()
	a := s.AddVertex(geometry.NewVector3(0, 0, 0))
	b := s.AddVertex(geometry.NewVector3(1, 0, 0))
	c := s.AddVertex(geometry.NewVector3(0, 1, 0))
	_, err := s.AddTriangleFromVertices(a, b, c)
	require.NoError(t, err)

	result := AnalyzeSolid(s)
	assert.False(t, result.Watertight)
	assert.Equal(t, 3, result.BoundaryEdges)
	assert.Equal(t, 1, result.Euler)
}

func TestAnalyzeEmpty(t *testing.T) {
	result := AnalyzeSolid(mesh.NewSolid())
	assert.False(t, result.Watertight)
	assert.Zero(t, result.MinEdgeLength)
	assert.Zero(t, result.AvgEdgeLength)
}

func TestEdgeQueries(t *testing.T) {
	result := AnalyzeSolid(mesh.Cube(1))

	longest := FindLongestEdges(result, 3)
	require.Len(t, longest, 3)
	for _, e := range longest {
		assert.InDelta(t, math.Sqrt2, e.Length, 1e-12)
		assert.Equal(t, 2, e.Triangles)
	}

	shortest := FindShortestEdges(result, 100)
	assert.Len(t, shortest, 18)
	assert.InDelta(t, 1, shortest[0].Length, 1e-12)

	assert.Empty(t, FindShortestEdges(result, -1))
	assert.Len(t, FindEdgesByLength(result, 1.1, 2), 6)
	assert.Len(t, FindEdgesByLength(result, 0, 1), 12)
}

func TestFindNearestVertex(t *testing.T) {
	cube := mesh.Cube(1)

	v, distance, ok := FindNearestVertex(cube, geometry.NewVector3(1.1, 1.2, -0.1))
	require.True(t, ok)
	assert.Equal(t, geometry.NewVector3(1, 1, 0), v.Position())
	assert.InDelta(t, math.Sqrt(0.01+0.04+0.01), distance, 1e-12)

	_, _, ok = FindNearestVertex(mesh.NewSolid(), geometry.Vector3{})
	assert.False(t, ok)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "1.500 mm", FormatMeasurement(1.5, "mm", 3))
	assert.Equal(t, "2.00 units", FormatMeasurement(2, "", 2))
	assert.Equal(t, "(1.0, -2.0, 0.5)", FormatVector(geometry.NewVector3(1, -2, 0.5), 1))
	assert.InDelta(t, 5, DistanceBetweenPoints(geometry.Vector3{}, geometry.NewVector3(3, 4, 0)), 1e-12)
}
