package profile

import (
	polyclip "github.com/akavel/polyclip-go"

	"plotgeom/internal/models"
)

// ImageBounds returns the outline of img in plot coordinates
func ImageBounds(img *models.Image) models.Polygon {
	rows, cols := img.Dims()
	return models.Polygon{
		img.ToPlot(0, 0),
		img.ToPlot(0, float64(cols)),
		img.ToPlot(float64(rows), float64(cols)),
		img.ToPlot(float64(rows), 0),
	}
}

// ClipToImage intersects an ROI polygon with the image outline.
// It returns nil when the ROI does not overlap the image.
func ClipToImage(roi models.Polygon, img *models.Image) models.Polygon {
	if len(roi) < 3 {
		return nil
	}
	clipped := toPolyclip(roi).Construct(polyclip.INTERSECTION, toPolyclip(ImageBounds(img)))

	// both operands are convex, at most one contour remains
	if len(clipped) == 0 || len(clipped[0]) < 3 {
		return nil
	}
	out := make(models.Polygon, len(clipped[0]))
	for i, pt := range clipped[0] {
		out[i] = models.Point{X: pt.X, Y: pt.Y}
	}
	return out
}

func toPolyclip(p models.Polygon) polyclip.Polygon {
	contour := make(polyclip.Contour, len(p))
	for i, pt := range p {
		contour[i] = polyclip.Point{X: pt.X, Y: pt.Y}
	}
	return polyclip.Polygon{contour}
}
