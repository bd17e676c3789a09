package models

// ROI is a region of interest selected on an image.
// It is either an AxisAligned or a FreeLine value.
type ROI interface {
	roi()
}

// AxisAligned is a full-image band orthogonal to Axis.
type AxisAligned struct {
	// Axis is the direction of the profile
	Axis Axis

	// Position is the plot coordinate of the line on the axis
	// orthogonal to the profile direction
	Position float64

	// Width is the band width in image pixels
	Width int
}

// FreeLine is a segment between two plot positions with a width.
type FreeLine struct {
	Start, End Point

	// Width is the band width in image pixels
	Width int
}

func (AxisAligned) roi() {}
func (FreeLine) roi()    {}

// Polygon is an ordered list of plot-space corners
type Polygon []Point

// XS returns the x coordinates of the corners
func (p Polygon) XS() []float64 {
	xs := make([]float64, len(p))
	for i, pt := range p {
		xs[i] = pt.X
	}
	return xs
}

// YS returns the y coordinates of the corners
func (p Polygon) YS() []float64 {
	ys := make([]float64, len(p))
	for i, pt := range p {
		ys[i] = pt.Y
	}
	return ys
}
