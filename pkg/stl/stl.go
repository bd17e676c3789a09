// Package stl writes triangle meshes to STL files.
package stl

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chewxy/math32"
	"github.com/npillmayer/schuko/tracing"

	"plotgeom/pkg/mesh"
)

// tracer writes to trace with key 'stl'
func tracer() tracing.Trace {
	return tracing.Select("stl")
}

// ErrNotTriangles indicates a mesh whose draw mode does not describe triangles.
var ErrNotTriangles = errors.New("mesh is not made of triangles")

// Triangle is one STL facet
type Triangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
}

// FromMesh converts a triangles, triangle strip or fan mesh to facets.
//
// Facet normals are the mean of the vertex normals when the mesh has
// normals, the face normal otherwise; both are normalized.
// A nil mesh yields no facets.
func FromMesh(m *mesh.Mesh) ([]Triangle, error) {
	if m == nil {
		return nil, nil
	}
	var idx [][3]int
	n := m.Len()
	switch m.Mode {
	case mesh.Triangles:
		for i := 0; i+2 < n; i += 3 {
			idx = append(idx, [3]int{i, i + 1, i + 2})
		}
	case mesh.TriangleStrip:
		for i := 0; i+2 < n; i++ {
			if i%2 == 0 {
				idx = append(idx, [3]int{i, i + 1, i + 2})
			} else {
				idx = append(idx, [3]int{i + 1, i, i + 2})
			}
		}
	case mesh.Fan:
		for i := 1; i+1 < n; i++ {
			idx = append(idx, [3]int{0, i, i + 1})
		}
	default:
		return nil, fmt.Errorf("draw mode %s: %w", m.Mode, ErrNotTriangles)
	}

	triangles := make([]Triangle, len(idx))
	for k, t := range idx {
		tri := Triangle{
			Vertex1: m.Position[t[0]],
			Vertex2: m.Position[t[1]],
			Vertex3: m.Position[t[2]],
		}
		if m.Normal != nil {
			for _, i := range t {
				for c := range 3 {
					tri.Normal[c] += m.Normal[i][c]
				}
			}
		} else {
			tri.Normal = cross(sub(tri.Vertex2, tri.Vertex1), sub(tri.Vertex3, tri.Vertex1))
		}
		tri.Normal = normalize(tri.Normal)
		triangles[k] = tri
	}
	return triangles, nil
}

// SaveToSTL writes triangles to a binary STL file
func SaveToSTL(filename string, triangles []Triangle) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating STL file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := WriteBinary(w, triangles); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("error writing STL file: %w", err)
	}
	tracer().Infof("wrote %d triangles to %s", len(triangles), filename)
	return nil
}

// WriteBinary writes triangles in binary STL format:
// an 80 byte header, the facet count, then 50 bytes per facet.
func WriteBinary(w io.Writer, triangles []Triangle) error {
	var header [80]byte
	copy(header[:], "plotgeom binary STL")
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("error writing STL header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(triangles))); err != nil {
		return fmt.Errorf("error writing STL facet count: %w", err)
	}
	for _, t := range triangles {
		facet := struct {
			Triangle
			Attribute uint16
		}{Triangle: t}
		if err := binary.Write(w, binary.LittleEndian, &facet); err != nil {
			return fmt.Errorf("error writing STL facet: %w", err)
		}
	}
	return nil
}

// WriteASCII writes triangles in ASCII STL format as solid name
func WriteASCII(w io.Writer, name string, triangles []Triangle) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "solid %s\n", name)
	for _, t := range triangles {
		fmt.Fprintf(bw, "  facet normal %g %g %g\n", t.Normal[0], t.Normal[1], t.Normal[2])
		fmt.Fprintf(bw, "    outer loop\n")
		for _, v := range [3][3]float32{t.Vertex1, t.Vertex2, t.Vertex3} {
			fmt.Fprintf(bw, "      vertex %g %g %g\n", v[0], v[1], v[2])
		}
		fmt.Fprintf(bw, "    endloop\n")
		fmt.Fprintf(bw, "  endfacet\n")
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)
	return bw.Flush()
}

func sub(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func normalize(v [3]float32) [3]float32 {
	l := math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if l == 0 {
		return v
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}
