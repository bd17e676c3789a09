package profile

import (
	"fmt"
	"slices"

	"plotgeom/internal/models"
)

// Compute extracts the profile of img over roi
func Compute(img *models.Image, roi models.ROI) (Result, error) {
	if img == nil || img.Data == nil {
		return Result{}, ErrNoImage
	}
	switch r := roi.(type) {
	case models.AxisAligned:
		return axisAlignedResult(img, r), nil
	case models.FreeLine:
		return FreeLineProfile(img, r.Start, r.End, r.Width)
	default:
		return Result{}, fmt.Errorf("unsupported ROI type %T", roi)
	}
}

func axisAlignedResult(img *models.Image, roi models.AxisAligned) Result {
	width := max(1, roi.Width)
	samples, area := AlignedFullProfile(img, roi.Position, width, roi.Axis)

	res := Result{Samples: samples, ROI: area}
	if roi.Axis == models.Horizontal {
		ys := area.YS()
		res.Label = bandLabel("Y", slices.Min(ys), slices.Max(ys)-1, width)
		res.XLabel = "Columns"
	} else {
		xs := area.XS()
		res.Label = bandLabel("X", slices.Min(xs), slices.Max(xs)-1, width)
		res.XLabel = "Rows"
	}
	return res
}

func bandLabel(name string, lo, hi float64, width int) string {
	if width <= 1 {
		return fmt.Sprintf("%s = %.6g", name, lo)
	}
	return fmt.Sprintf("%s = [%.6g, %.6g]", name, lo, hi)
}
