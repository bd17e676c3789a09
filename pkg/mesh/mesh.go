// Package mesh builds triangulated geometry for 3D scene items: raw
// meshes and solids of revolution (box, cylinder, hexagonal prism)
// replicated at a list of positions.
package mesh

import (
	"errors"
	"fmt"
	"slices"

	"github.com/chewxy/math32"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'mesh'
func tracer() tracing.Trace {
	return tracing.Select("mesh")
}

var (
	// ErrUnsupportedDrawMode indicates a draw mode outside the known set.
	ErrUnsupportedDrawMode = errors.New("unsupported draw mode")
	// ErrInvalidBuffer indicates color or normal buffers not matching the positions.
	ErrInvalidBuffer = errors.New("invalid buffer")
	// ErrInvalidRange indicates shape parameters that cannot produce a solid.
	ErrInvalidRange = errors.New("invalid range")
)

// DrawMode tells how vertices are assembled into primitives
type DrawMode int

const (
	Points DrawMode = iota
	Lines
	LineStrip
	Loop
	Triangles
	TriangleStrip
	Fan
)

var drawModeNames = []string{"points", "lines", "line_strip", "loop", "triangles", "triangle_strip", "fan"}

func (m DrawMode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("DrawMode(%d)", int(m))
	}
	return drawModeNames[m]
}

// Valid reports whether m is one of the supported draw modes
func (m DrawMode) Valid() bool {
	return m >= Points && m <= Fan
}

// ParseDrawMode returns the draw mode named s, e.g. "triangle_strip"
func ParseDrawMode(s string) (DrawMode, error) {
	i := slices.Index(drawModeNames, s)
	if i < 0 {
		return 0, fmt.Errorf("%q: %w", s, ErrUnsupportedDrawMode)
	}
	return DrawMode(i), nil
}

// Mesh holds the vertex buffers of a renderable primitive.
// Color has either one entry, used for all vertices, or one per vertex.
// Normal is nil or has one entry per vertex.
type Mesh struct {
	Position [][3]float32
	Color    [][4]float32
	Normal   [][3]float32
	Mode     DrawMode
}

// NewMesh validates the buffers and wraps them in a Mesh.
// With copyData false the mesh shares the caller's slices.
func NewMesh(position [][3]float32, color [][4]float32, normal [][3]float32, mode DrawMode, copyData bool) (*Mesh, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("draw mode %d: %w", int(mode), ErrUnsupportedDrawMode)
	}
	n := len(position)
	if len(color) != 1 && len(color) != n {
		return nil, fmt.Errorf("%d colors for %d vertices: %w", len(color), n, ErrInvalidBuffer)
	}
	if normal != nil && len(normal) != n {
		return nil, fmt.Errorf("%d normals for %d vertices: %w", len(normal), n, ErrInvalidBuffer)
	}
	m := &Mesh{Position: position, Color: color, Normal: normal, Mode: mode}
	if copyData {
		m = m.Clone()
	}
	return m, nil
}

// Clone returns a deep copy of m
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Position: slices.Clone(m.Position),
		Color:    slices.Clone(m.Color),
		Normal:   slices.Clone(m.Normal),
		Mode:     m.Mode,
	}
}

// Len returns the number of vertices
func (m *Mesh) Len() int {
	return len(m.Position)
}

// Bounds returns the axis-aligned bounding box of the vertices.
// An empty mesh returns +Inf minimums and -Inf maximums.
func (m *Mesh) Bounds() (lo, hi [3]float32) {
	for k := range 3 {
		lo[k], hi[k] = math32.Inf(1), math32.Inf(-1)
	}
	for _, p := range m.Position {
		for k := range 3 {
			lo[k] = math32.Min(lo[k], p[k])
			hi[k] = math32.Max(hi[k], p[k])
		}
	}
	return
}
