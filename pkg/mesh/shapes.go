package mesh

import (
	"fmt"
	"math"
	"slices"
)

// DefaultCylinderFaces is the number of side faces approximating a cylinder
const DefaultCylinderFaces = 20

// White is the default shape color
var White = [4]float32{1, 1, 1, 1}

// BoxAngles returns the sector angles and external radius of a box
// footprint of size sx by sy, rotated so a face is aligned with x.
func BoxAngles(sx, sy float64) (angles []float64, radius float64) {
	diagonal := math.Hypot(sx, sy)
	alpha := 2 * math.Asin(sy/diagonal)
	beta := 2 * math.Asin(sx/diagonal)
	angles = []float64{0, alpha, alpha + beta, alpha + beta + alpha, 2 * math.Pi}
	phase := 0.5 * alpha
	for i := range angles {
		angles[i] -= phase
	}
	return angles, diagonal / 2
}

// CylinderAngles returns nbFaces+1 angles evenly spaced over [0, 2π]
func CylinderAngles(nbFaces int) []float64 {
	return linspace(0, 2*math.Pi, nbFaces+1)
}

// HexagonAngles returns 7 angles evenly spaced over [phase, phase+2π],
// with phase given in degrees
func HexagonAngles(phaseDeg float64) []float64 {
	phase := phaseDeg * math.Pi / 180
	return linspace(phase, 2*math.Pi+phase, 7)
}

func linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

// volume holds the generated geometry shared by the shape items
type volume struct {
	node SceneNode
	mesh *Mesh
}

func (v *volume) set(positions [][3]float32, radius, height float64, angles []float64, color [4]float32, flatFaces bool) error {
	m, err := BuildVolumeOfRevolution(positions, radius, height, angles, color, flatFaces)
	if err != nil {
		return err
	}
	v.mesh = m
	if v.node != nil {
		if m == nil {
			v.node.SetChildren(nil)
		} else {
			v.node.SetChildren([]*Mesh{m})
		}
	}
	return nil
}

// HasMesh reports whether the shape holds geometry
func (v *volume) HasMesh() bool { return v.mesh != nil }

// Mesh returns the generated geometry, nil for an empty position list.
// The returned mesh must not be modified.
func (v *volume) Mesh() *Mesh { return v.mesh }

// Box draws one box, or the same box at several positions.
type Box struct {
	volume
	position [][3]float32
	size     [3]float64
	color    [4]float32
}

// NewBox creates a unit white box at the origin
func NewBox(node SceneNode) *Box {
	b := &Box{volume: volume{node: node}}
	if err := b.SetData([][3]float32{{0, 0, 0}}, [3]float64{1, 1, 1}, White); err != nil {
		tracer().Errorf("default box: %v", err)
	}
	return b
}

// SetData sets the box centers, size (dx, dy, dz) and color
func (b *Box) SetData(position [][3]float32, size [3]float64, color [4]float32) error {
	if !(size[0] > 0) || !(size[1] > 0) || !(size[2] > 0) {
		return fmt.Errorf("box size %v: %w", size, ErrInvalidRange)
	}
	angles, radius := BoxAngles(size[0], size[1])
	if err := b.set(position, radius, size[2], angles, color, true); err != nil {
		return err
	}
	b.position, b.size, b.color = slices.Clone(position), size, color
	return nil
}

// Position returns the box centers
func (b *Box) Position() [][3]float32 { return b.position }

// Size returns the box size (dx, dy, dz)
func (b *Box) Size() [3]float64 { return b.size }

// Color returns the box color
func (b *Box) Color() [4]float32 { return b.color }

// Cylinder draws one cylinder, or the same cylinder at several positions.
type Cylinder struct {
	volume
	position [][3]float32
	radius   float64
	height   float64
	color    [4]float32
	nbFaces  int
}

// NewCylinder creates a white cylinder of radius 1 and height 1 at the origin
func NewCylinder(node SceneNode) *Cylinder {
	c := &Cylinder{volume: volume{node: node}}
	if err := c.SetData([][3]float32{{0, 0, 0}}, 1, 1, White, DefaultCylinderFaces); err != nil {
		tracer().Errorf("default cylinder: %v", err)
	}
	return c
}

// SetData sets the cylinder centers, radius, height, color and the
// number of side faces approximating the round wall
func (c *Cylinder) SetData(position [][3]float32, radius, height float64, color [4]float32, nbFaces int) error {
	if nbFaces < 1 {
		return fmt.Errorf("%d cylinder faces: %w", nbFaces, ErrInvalidRange)
	}
	if err := c.set(position, radius, height, CylinderAngles(nbFaces), color, false); err != nil {
		return err
	}
	c.position, c.radius, c.height, c.color, c.nbFaces = slices.Clone(position), radius, height, color, nbFaces
	return nil
}

func (c *Cylinder) Position() [][3]float32 { return c.position }
func (c *Cylinder) Radius() float64        { return c.radius }
func (c *Cylinder) Height() float64        { return c.height }
func (c *Cylinder) Color() [4]float32      { return c.color }
func (c *Cylinder) Faces() int             { return c.nbFaces }

// Hexagon draws a uniform hexagonal prism, or the same prism at several
// positions.
type Hexagon struct {
	volume
	position [][3]float32
	radius   float64
	height   float64
	color    [4]float32
	phase    float64
}

// NewHexagon creates a white prism of radius 1 and height 1 at the origin
func NewHexagon(node SceneNode) *Hexagon {
	h := &Hexagon{volume: volume{node: node}}
	if err := h.SetData([][3]float32{{0, 0, 0}}, 1, 1, White, 0); err != nil {
		tracer().Errorf("default hexagon: %v", err)
	}
	return h
}

// SetData sets the prism centers, external radius, height, color and
// rotation in degrees. With phase 0 a corner lies on the x axis.
func (h *Hexagon) SetData(position [][3]float32, radius, height float64, color [4]float32, phaseDeg float64) error {
	if err := h.set(position, radius, height, HexagonAngles(phaseDeg), color, true); err != nil {
		return err
	}
	h.position, h.radius, h.height, h.color, h.phase = slices.Clone(position), radius, height, color, phaseDeg
	return nil
}

func (h *Hexagon) Position() [][3]float32 { return h.position }
func (h *Hexagon) Radius() float64        { return h.radius }
func (h *Hexagon) Height() float64        { return h.height }
func (h *Hexagon) Color() [4]float32      { return h.color }

// Phase returns the prism rotation in degrees
func (h *Hexagon) Phase() float64 { return h.phase }
