package models

import (
	"gonum.org/v1/gonum/mat"
)

// Point is a position in plot (data) coordinates
type Point struct {
	X, Y float64
}

// Axis selects the direction of an aligned profile
type Axis int

const (
	// Horizontal profiles run along the image columns, one band of rows wide
	Horizontal Axis = iota
	// Vertical profiles run along the image rows, one band of columns wide
	Vertical
)

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Image represents a 2D dataset displayed in a plot
type Image struct {
	// Data holds the samples, rows x columns
	Data mat.Matrix

	// Origin is the plot position (ox, oy) of the first pixel corner
	Origin [2]float64

	// Scale is the plot size (sx, sy) of a pixel; a zero component means 1
	Scale [2]float64
}

// NewImage wraps a matrix with origin (0, 0) and unit scale
func NewImage(data mat.Matrix) *Image {
	return &Image{
		Data:  data,
		Scale: [2]float64{1, 1},
	}
}

// NewImageFromRows builds an image from a row-major sample slice
func NewImageFromRows(rows, cols int, samples []float64) *Image {
	return NewImage(mat.NewDense(rows, cols, samples))
}

// Dims returns the number of rows and columns of the image
func (img *Image) Dims() (rows, cols int) {
	return img.Data.Dims()
}

// EffectiveScale is Scale with a zero component read as 1
func (img *Image) EffectiveScale() [2]float64 {
	s := img.Scale
	for i := range s {
		if s[i] == 0 {
			s[i] = 1
		}
	}
	return s
}

// ToImage converts a plot position to fractional (row, col) image coordinates
func (img *Image) ToImage(p Point) (row, col float64) {
	s := img.EffectiveScale()
	row = (p.Y - img.Origin[1]) / s[1]
	col = (p.X - img.Origin[0]) / s[0]
	return
}

// ToPlot converts fractional (row, col) image coordinates to a plot position
func (img *Image) ToPlot(row, col float64) Point {
	s := img.EffectiveScale()
	return Point{
		X: col*s[0] + img.Origin[0],
		Y: row*s[1] + img.Origin[1],
	}
}
