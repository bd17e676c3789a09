package mesh

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertBounds(t *testing.T, m *Mesh, lo, hi [3]float32) {
	t.Helper()
	gotLo, gotHi := m.Bounds()
	for k := range 3 {
		assert.InDelta(t, lo[k], gotLo[k], 1e-5, "min[%d]", k)
		assert.InDelta(t, hi[k], gotHi[k], 1e-5, "max[%d]", k)
	}
}

func TestBoxAngles(t *testing.T) {
	angles, radius := BoxAngles(2, 2)
	require.Len(t, angles, 5)
	assert.InDelta(t, math.Sqrt2, radius, 1e-12)
	for i, want := range []float64{-1, 1, 3, 5, 7} {
		assert.InDelta(t, want*math.Pi/4, angles[i], 1e-12)
	}
}

// TestBoxBounds verifies a box fills exactly its size around each center
func TestBoxBounds(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	node := &fakeNode{}
	box := NewBox(node)
	require.True(t, box.HasMesh())
	assertBounds(t, box.Mesh(), [3]float32{-0.5, -0.5, -0.5}, [3]float32{0.5, 0.5, 0.5})

	require.NoError(t, box.SetData([][3]float32{{5, -3, 1}}, [3]float64{2, 2, 2}, White))
	assertBounds(t, box.Mesh(), [3]float32{4, -4, 0}, [3]float32{6, -2, 2})
	assert.Equal(t, 4*VerticesPerSector, box.Mesh().Len())
	require.Len(t, node.children, 1)
	assert.Same(t, box.Mesh(), node.children[0])

	require.NoError(t, box.SetData([][3]float32{{0, 0, 0}}, [3]float64{4, 2, 1}, White))
	assertBounds(t, box.Mesh(), [3]float32{-2, -1, -0.5}, [3]float32{2, 1, 0.5})
	assert.Equal(t, [3]float64{4, 2, 1}, box.Size())
}

func TestBoxInvalidSizeKeepsGeometry(t *testing.T) {
	box := NewBox(nil)
	previous := box.Mesh()

	err := box.SetData([][3]float32{{1, 1, 1}}, [3]float64{0, 1, 1}, White)
	assert.True(t, errors.Is(err, ErrInvalidRange))
	assert.Same(t, previous, box.Mesh())
	assert.Equal(t, [3]float64{1, 1, 1}, box.Size())
	assert.Equal(t, [][3]float32{{0, 0, 0}}, box.Position())
}

func TestBoxEmptyPositions(t *testing.T) {
	node := &fakeNode{}
	box := NewBox(node)

	require.NoError(t, box.SetData(nil, [3]float64{1, 1, 1}, White))
	assert.False(t, box.HasMesh())
	assert.Nil(t, box.Mesh())
	assert.Empty(t, node.children)
	assert.Equal(t, 2, node.calls)
}

func TestCylinder(t *testing.T) {
	c := NewCylinder(nil)
	assert.Equal(t, DefaultCylinderFaces, c.Faces())
	assert.Equal(t, DefaultCylinderFaces*VerticesPerSector, c.Mesh().Len())

	color := [4]float32{1, 0, 0, 1}
	positions := [][3]float32{{0, 0, 0}, {10, 0, 0}, {0, 10, 0}}
	require.NoError(t, c.SetData(positions, 0.5, 3, color, 8))
	assert.Equal(t, 3*8*VerticesPerSector, c.Mesh().Len())
	assert.Equal(t, [][4]float32{color}, c.Mesh().Color)
	assert.Equal(t, 0.5, c.Radius())
	assert.Equal(t, 3.0, c.Height())
	assert.Equal(t, color, c.Color())
	assertBounds(t, c.Mesh(), [3]float32{-0.5, -0.5, -1.5}, [3]float32{10.5, 10.5, 1.5})

	err := c.SetData(positions, 1, 1, color, 0)
	assert.True(t, errors.Is(err, ErrInvalidRange))
	assert.Equal(t, 8, c.Faces())
}

func TestHexagon(t *testing.T) {
	h := NewHexagon(nil)
	assert.Equal(t, 6*VerticesPerSector, h.Mesh().Len())

	require.NoError(t, h.SetData([][3]float32{{0, 0, 0}}, 2, 1, White, 30))
	assert.Equal(t, 30.0, h.Phase())

	// Second vertex of the first sector is the bottom rim corner at 90°
	angles := HexagonAngles(30)
	require.Len(t, angles, 7)
	assert.InDelta(t, math.Pi/6, angles[0], 1e-12)
	assert.InDelta(t, 2*math.Pi+math.Pi/6, angles[6], 1e-12)
	v := h.Mesh().Position[1]
	assert.InDelta(t, 0, v[0], 1e-5)
	assert.InDelta(t, 2, v[1], 1e-5)

	// Corners at ±30° from y give a flat x extent of 2*cos(30°)
	assertBounds(t, h.Mesh(),
		[3]float32{-2 * float32(math.Sqrt(3)) / 2, -2, -0.5},
		[3]float32{2 * float32(math.Sqrt(3)) / 2, 2, 0.5})
}

func TestCylinderAngles(t *testing.T) {
	angles := CylinderAngles(4)
	require.Len(t, angles, 5)
	for i, a := range angles {
		assert.InDelta(t, float64(i)*math.Pi/2, a, 1e-12)
	}
	assert.Len(t, CylinderAngles(0), 1)
}
