package mesh

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCone(t *testing.T) {
	for _, segments := range []int{3, 4, 8, 16, 32} {
		cone, err := Cone(1, 2, segments)
		require.NoError(t, err)

		assert.Equal(t, segments+2, cone.NumVertices())
		assert.Equal(t, 3*segments, cone.NumEdges())
		assert.Equal(t, 2*segments, cone.NumTriangles())
		for _, e := range cone.Edges() {
			assert.Len(t, e.Triangles(), 2)
		}

		cone.Orient()
		assertOutward(t, cone, cone.Center())

		n := float64(segments)
		base := n / 2 * math.Sin(2*math.Pi/n)
		assert.InDelta(t, base*2/3, cone.Volume(), 1e-9, "segments=%d", segments)
	}
}

func TestConeInvalid(t *testing.T) {
	tests := []struct {
		name           string
		radius, height float64
		segments       int
	}{
		{"too few segments", 1, 1, 2},
		{"zero radius", 0, 1, 8},
		{"negative height", 1, -1, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Cone(tt.radius, tt.height, tt.segments)
			assert.ErrorIs(t, err, ErrInvalidShape)
		})
	}
}

func TestBoxBounds(t *testing.T) {
	box := Box(vec(2, 3, 4))
	bbox := box.BoundingBox()
	assert.Equal(t, vec(0, 0, 0), bbox.Min)
	assert.Equal(t, vec(2, 3, 4), bbox.Max)
}
