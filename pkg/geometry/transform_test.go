package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransformIdentity(t *testing.T) {
	p := NewVector3(1, 2, 3)
	assert.Equal(t, p, NewTransform().Apply(p))
}

func TestTransformScale(t *testing.T) {
	tr := NewTransform().Scale(2)
	assert.True(t, tr.Apply(NewVector3(1, 2, 3)).ApproxEqual(NewVector3(2, 4, 6), 1e-12))
	assert.InDelta(t, 8, tr.Determinant(), 1e-12)

	tr = NewTransform().ScaleAxes(NewVector3(2, 3, 4))
	assert.True(t, tr.Apply(NewVector3(1, 1, 1)).ApproxEqual(NewVector3(2, 3, 4), 1e-12))
	assert.InDelta(t, 24, tr.Determinant(), 1e-12)
}

func TestTransformTranslate(t *testing.T) {
	tr := NewTransform().Translate(NewVector3(1, -1, 2))
	assert.True(t, tr.Apply(NewVector3(0, 0, 0)).ApproxEqual(NewVector3(1, -1, 2), 1e-12))
	assert.InDelta(t, 1, tr.Determinant(), 1e-12)
}

func TestTransformRotate(t *testing.T) {
	tr := NewTransform().Rotate(Pi/2, NewVector3(0, 0, 1))
	assert.True(t, tr.Apply(NewVector3(1, 0, 0)).ApproxEqual(NewVector3(0, 1, 0), 1e-12))
	assert.InDelta(t, 1, tr.Determinant(), 1e-12)
}

func TestTransformCompositionOrder(t *testing.T) {
	// The last added operation is applied first: scale, then translate.
	tr := NewTransform().Translate(NewVector3(1, 0, 0)).Scale(2)
	assert.True(t, tr.Apply(NewVector3(1, 0, 0)).ApproxEqual(NewVector3(3, 0, 0), 1e-12))
}

func TestTransformClear(t *testing.T) {
	tr := NewTransform().Scale(3).Translate(NewVector3(1, 1, 1))
	tr.Clear()
	p := NewVector3(4, 5, 6)
	assert.Equal(t, p, tr.Apply(p))
}
