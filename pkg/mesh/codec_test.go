package mesh

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRead(t *testing.T) {
	cube := Cube(1)
	cube.Orient()

	var buf bytes.Buffer
	n, err := cube.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	text := buf.String()
	assert.True(t, strings.HasPrefix(text, "# Vertices\nv 0 0 0\n"), text)
	assert.Contains(t, text, "\n\n# Triangles\nt 0 ")
	assert.Equal(t, 8, strings.Count(text, "\nv "))
	assert.Equal(t, 12, strings.Count(text, "\nt "))

	read, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, 8, read.NumVertices())
	assert.Equal(t, 18, read.NumEdges())
	assert.Equal(t, 12, read.NumTriangles())

	// Orientation survives the round trip.
	solid := FromMesh(read)
	assert.InDelta(t, 1, solid.Volume(), 1e-12)
	assert.Equal(t, 0, solid.Orient())
}

func TestWriteReadKeepsFlippedTriangles(t *testing.T) {
	cube := Cube(1)
	cube.Orient()
	for _, tri := range cube.Triangles() {
		tri.ChangeOrientation()
	}

	var buf bytes.Buffer
	_, err := cube.WriteTo(&buf)
	require.NoError(t, err)
	read, err := Read(&buf)
	require.NoError(t, err)

	assert.InDelta(t, -1, FromMesh(read).Volume(), 1e-12)
}

func TestWriteSkipsDanglingEntities(t *testing.T) {
	cube := Cube(1)
	a := cube.AddVertex(vec(5, 5, 5))
	b := cube.AddVertex(vec(6, 5, 5))
	_, err := cube.AddEdge(a, b)
	require.NoError(t, err)
	cube.AddVertex(vec(7, 7, 7))

	var buf bytes.Buffer
	_, err = cube.WriteTo(&buf)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "v 5 5 5")

	read, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, 8, read.NumVertices())
	assert.Equal(t, 18, read.NumEdges())
}

func TestWritePreservesCoordinates(t *testing.T) {
	m := New()
	a := m.AddVertex(vec(0.1, -2.5e-7, 1e10))
	b := m.AddVertex(vec(1.0/3, 2, 0))
	c := m.AddVertex(vec(0, 0, -0.7))
	_, err := m.AddTriangleFromVertices(a, b, c)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	read, err := Read(&buf)
	require.NoError(t, err)

	var positions []string
	for _, v := range read.Vertices() {
		positions = append(positions, v.Position().String())
	}
	assert.ElementsMatch(t, []string{
		a.Position().String(), b.Position().String(), c.Position().String(),
	}, positions)
	assert.Equal(t, a.Position(), read.Vertices()[0].Position())
}

func TestReadEmpty(t *testing.T) {
	m, err := Read(strings.NewReader("# Vertices\n\n# Triangles\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, m.NumVertices())
}

func TestReadMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"short vertex", "v 1 2\n"},
		{"bad coordinate", "v a 1 2\n"},
		{"unknown record", "f 0 1 2\n"},
		{"index out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nt 0 1 3\n"},
		{"negative index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nt -1 1 2\n"},
		{"bad index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nt 0 1 x\n"},
		{"short triangle", "v 0 0 0\nv 1 0 0\nt 0 1\n"},
		{"repeated corner", "v 0 0 0\nv 1 0 0\nv 0 1 0\nt 0 1 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, ErrMalformedInput)
		})
	}
}

func TestReadReportsLine(t *testing.T) {
	_, err := Read(strings.NewReader("# Vertices\nv 0 0 0\nv 0 0\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestReadDegenerateCornerKeepsCause(t *testing.T) {
	_, err := Read(strings.NewReader("v 0 0 0\nv 1 0 0\nt 0 1 1\n"))
	assert.ErrorIs(t, err, ErrMalformedInput)
	assert.ErrorIs(t, err, ErrDegenerateTriangle)
}
