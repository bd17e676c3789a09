package mesh

import (
	"fmt"
	"slices"
)

// SceneNode receives the meshes of an item.
// SetChildren replaces all previous children; an empty list clears them.
type SceneNode interface {
	SetChildren(children []*Mesh)
}

// Item is a scene item displaying a single user-provided mesh.
// Items are not safe for concurrent use.
type Item struct {
	node SceneNode
	mesh *Mesh
}

// NewItem creates an empty item attached to node, which may be nil
func NewItem(node SceneNode) *Item {
	return &Item{node: node}
}

// SetData replaces the item geometry.
//
// An empty position buffer removes the mesh. The draw mode is checked
// in both cases. On error the previous geometry is kept.
func (it *Item) SetData(position [][3]float32, color [][4]float32, normal [][3]float32, mode DrawMode, copyData bool) error {
	if !mode.Valid() {
		return fmt.Errorf("draw mode %d: %w", int(mode), ErrUnsupportedDrawMode)
	}
	if len(position) == 0 {
		it.replace(nil)
		return nil
	}
	m, err := NewMesh(position, color, normal, mode, copyData)
	if err != nil {
		return err
	}
	it.replace(m)
	return nil
}

func (it *Item) replace(m *Mesh) {
	it.mesh = m
	if it.node == nil {
		return
	}
	if m == nil {
		it.node.SetChildren(nil)
	} else {
		it.node.SetChildren([]*Mesh{m})
	}
}

// HasMesh reports whether the item holds geometry
func (it *Item) HasMesh() bool { return it.mesh != nil }

// Mesh returns the item geometry, nil when there is none.
// The returned mesh must not be modified.
func (it *Item) Mesh() *Mesh { return it.mesh }

// PositionData returns the vertex positions, an empty slice without mesh.
// With copyData false the item storage is returned; do not modify it.
func (it *Item) PositionData(copyData bool) [][3]float32 {
	if it.mesh == nil {
		return [][3]float32{}
	}
	return maybeClone(it.mesh.Position, copyData)
}

// ColorData returns the vertex colors or a single color, an empty slice
// without mesh.
func (it *Item) ColorData(copyData bool) [][4]float32 {
	if it.mesh == nil {
		return [][4]float32{}
	}
	return maybeClone(it.mesh.Color, copyData)
}

// NormalData returns the vertex normals, nil when there are none
func (it *Item) NormalData(copyData bool) [][3]float32 {
	if it.mesh == nil {
		return nil
	}
	return maybeClone(it.mesh.Normal, copyData)
}

// DrawMode returns the draw mode of the mesh; ok is false without mesh
func (it *Item) DrawMode() (mode DrawMode, ok bool) {
	if it.mesh == nil {
		return 0, false
	}
	return it.mesh.Mode, true
}

// Data returns positions, colors, normals and draw mode
func (it *Item) Data(copyData bool) ([][3]float32, [][4]float32, [][3]float32, DrawMode) {
	mode, _ := it.DrawMode()
	return it.PositionData(copyData), it.ColorData(copyData), it.NormalData(copyData), mode
}

func maybeClone[S ~[]E, E any](s S, copyData bool) S {
	if copyData {
		return slices.Clone(s)
	}
	return s
}
