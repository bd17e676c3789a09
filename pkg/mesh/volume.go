package mesh

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// VerticesPerSector is the number of vertices generated for each angular
// sector of a solid of revolution: 4 triangles.
const VerticesPerSector = 12

// BuildVolumeOfRevolution generates a solid with rotational symmetry
// along z, replicated at each of positions.
//
// The cross-section is the polygon whose corners lie at radius from the
// axis at the given angles; angles[len-1] usually equals angles[0]+2π.
// Each sector is closed by a bottom cap at -height/2 and a top cap at
// +height/2, both fanning out from the axis:
//
//	       c6
//	       /\
//	      /  \
//	  c4 |----| c5
//	     | \  |
//	     |  \ |
//	  c2 |----| c3
//	      \  /
//	       \/
//	       c1
//
// With flatFaces every vertex gets the (unnormalized) normal of its
// triangle. Otherwise the side walls get radial normals so the surface
// is shaded smooth.
//
// Empty positions return a nil mesh.
func BuildVolumeOfRevolution(positions [][3]float32, radius, height float64, angles []float64, color [4]float32, flatFaces bool) (*Mesh, error) {
	if len(positions) == 0 {
		return nil, nil
	}
	if len(angles) < 2 {
		return nil, fmt.Errorf("%d angles, need at least 2: %w", len(angles), ErrInvalidRange)
	}
	if !(radius > 0) || !(height > 0) {
		return nil, fmt.Errorf("radius %g, height %g: %w", radius, height, ErrInvalidRange)
	}

	nSectors := len(angles) - 1
	volume := make([]r3.Vec, 0, nSectors*VerticesPerSector)
	normal := make([]r3.Vec, 0, nSectors*VerticesPerSector)

	hh := height / 2
	rim := func(angle, z float64) r3.Vec {
		return r3.Vec{X: radius * math.Cos(angle), Y: radius * math.Sin(angle), Z: z}
	}
	for i := range nSectors {
		c1 := r3.Vec{Z: -hh}
		c2 := rim(angles[i], -hh)
		c3 := rim(angles[i+1], -hh)
		c4 := rim(angles[i], hh)
		c5 := rim(angles[i+1], hh)
		c6 := r3.Vec{Z: hh}

		volume = append(volume,
			c1, c3, c2,
			c2, c3, c4,
			c3, c5, c4,
			c4, c5, c6)

		bottom := faceNormal(c1, c3, c2)
		top := faceNormal(c4, c5, c6)
		if flatFaces {
			s1 := faceNormal(c2, c3, c4)
			s2 := faceNormal(c3, c5, c4)
			normal = append(normal,
				bottom, bottom, bottom,
				s1, s1, s1,
				s2, s2, s2,
				top, top, top)
		} else {
			normal = append(normal,
				bottom, bottom, bottom,
				r3.Sub(c2, c1), r3.Sub(c3, c1), r3.Sub(c4, c6),
				r3.Sub(c3, c1), r3.Sub(c5, c6), r3.Sub(c4, c6),
				top, top, top)
		}
	}

	n := len(positions) * len(volume)
	vertices := make([][3]float32, 0, n)
	normals := make([][3]float32, 0, n)
	for _, p := range positions {
		for k, v := range volume {
			vertices = append(vertices, [3]float32{
				float32(v.X) + p[0],
				float32(v.Y) + p[1],
				float32(v.Z) + p[2],
			})
			normals = append(normals, toF32(normal[k]))
		}
	}
	tracer().Debugf("volume of revolution: %d sectors x %d instances, flat=%v", nSectors, len(positions), flatFaces)

	return NewMesh(vertices, [][4]float32{color}, normals, Triangles, false)
}

// faceNormal is the normal of triangle (a, b, c), with the length of
// twice its area
func faceNormal(a, b, c r3.Vec) r3.Vec {
	return r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
}

func toF32(v r3.Vec) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}
