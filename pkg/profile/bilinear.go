package profile

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Bilinear samples an image with bilinear interpolation.
// Integer coordinates (row, col) are pixel centers.
type Bilinear struct {
	data          mat.Matrix
	height, width int
}

// NewBilinear creates a bilinear sampler over m
func NewBilinear(m mat.Matrix) *Bilinear {
	h, w := m.Dims()
	return &Bilinear{data: m, height: h, width: w}
}

// Contains reports whether (row, col) lies on a pixel of the image
func (b *Bilinear) Contains(row, col float64) bool {
	if b.height == 0 || b.width == 0 {
		return false
	}
	return row >= -0.5 && row <= float64(b.height)-0.5 &&
		col >= -0.5 && col <= float64(b.width)-0.5
}

// At returns the interpolated value at (row, col).
// Positions beyond the outermost pixel centers take the edge value.
func (b *Bilinear) At(row, col float64) float64 {
	row = math.Min(math.Max(row, 0), float64(b.height-1))
	col = math.Min(math.Max(col, 0), float64(b.width-1))

	r0, c0 := int(row), int(col)
	r1, c1 := min(r0+1, b.height-1), min(c0+1, b.width-1)
	fr, fc := row-float64(r0), col-float64(c0)

	top := b.data.At(r0, c0)*(1-fc) + b.data.At(r0, c1)*fc
	bottom := b.data.At(r1, c0)*(1-fc) + b.data.At(r1, c1)*fc
	return top*(1-fr) + bottom*fr
}

// ProfileLine samples the segment from src to dst, both (row, col).
//
// The profile has ceil(length) samples starting at src with a step of at
// most one pixel. Each sample is the mean of width values spread across
// the line, one pixel apart. Values falling outside the image are
// ignored; a sample without any value is 0.
func (b *Bilinear) ProfileLine(src, dst [2]float64, width int) []float32 {
	dRow, dCol := dst[0]-src[0], dst[1]-src[1]
	dist := math.Hypot(dRow, dCol)
	if dist == 0 {
		if b.Contains(src[0], src[1]) {
			return []float32{float32(b.At(src[0], src[1]))}
		}
		return []float32{0}
	}
	width = max(1, width)

	length := int(math.Ceil(dist))
	rowStep, colStep := dRow/float64(length), dCol/float64(length)

	// unit vector orthogonal to the line
	perpRow, perpCol := -dCol/dist, dRow/dist
	half := 0.5 * float64(width-1)

	profile := make([]float32, length)
	for i := range length {
		row := src[0] + float64(i)*rowStep
		col := src[1] + float64(i)*colStep

		var sum float64
		var count int
		for j := range width {
			off := float64(j) - half
			r, c := row+off*perpRow, col+off*perpCol
			if !b.Contains(r, c) {
				continue
			}
			sum += b.At(r, c)
			count++
		}
		if count > 0 {
			profile[i] = float32(sum / float64(count))
		}
	}
	return profile
}
