package profile

import (
	"fmt"
	"math"

	"plotgeom/internal/models"
)

// FreeLineProfile computes the profile of a line of the given width
// between two plot positions.
//
// Lines falling on a single image row or column are averaged directly
// from the pixels. Other lines are sampled with bilinear interpolation
// at pixel centers, which matches the image only when it is displayed
// without smoothing. Endpoints are ordered by column then row, so the
// profile direction does not depend on the drag direction.
func FreeLineProfile(img *models.Image, start, end models.Point, width int) (Result, error) {
	if img == nil || img.Data == nil {
		return Result{}, ErrNoImage
	}
	if start == end {
		return Result{}, fmt.Errorf("line from (%g, %g) to itself: %w", start.X, start.Y, ErrInvalidRange)
	}
	width = max(1, width)

	r0, c0 := img.ToImage(start)
	r1, c1 := img.ToImage(end)

	if int(r0) == int(r1) || int(c0) == int(c1) {
		return alignedLineProfile(img, [2]int{int(r0), int(c0)}, [2]int{int(r1), int(c1)}, width)
	}

	if c0 > c1 || (c0 == c1 && r0 > r1) {
		r0, c0, r1, c1 = r1, c1, r0, c0
	}

	// Offset by half a pixel to sample pixel centers
	samples := NewBilinear(img.Data).ProfileLine(
		[2]float64{r0 - 0.5, c0 - 0.5},
		[2]float64{r1 - 0.5, c1 - 0.5},
		width)

	length := math.Hypot(r1-r0, c1-c0)
	dRow, dCol := (r1-r0)/length, (c1-c0)/length

	// Extend the ROI by half a pixel on each end
	r0, c0 = r0-0.5*dRow, c0-0.5*dCol
	r1, c1 = r1+0.5*dRow, c1+0.5*dCol

	// Rotate by 90 degrees to apply the width
	dRow, dCol = dCol, -dRow
	hw := 0.5 * float64(width)

	area := models.Polygon{
		img.ToPlot(r0-hw*dRow, c0-hw*dCol),
		img.ToPlot(r0+hw*dRow, c0+hw*dCol),
		img.ToPlot(r1+hw*dRow, c1+hw*dCol),
		img.ToPlot(r1-hw*dRow, c1-hw*dCol),
	}

	return Result{
		Samples: samples,
		ROI:     area,
		Label:   lineLabel(c0, r0, c1, r1, width),
		XLabel:  "Distance",
	}, nil
}

// alignedLineProfile handles lines on a single row or column, with
// start and end given as integer (row, col).
func alignedLineProfile(img *models.Image, start, end [2]int, width int) (Result, error) {
	if start[0] > end[0] || start[1] > end[1] {
		start, end = end, start
	}

	var rowRange, colRange [2]int
	var samples []float32
	var err error
	if start[0] == end[0] {
		rowRange = [2]int{
			int(float64(start[0]) + 0.5 - 0.5*float64(width)),
			int(float64(start[0]) + 0.5 + 0.5*float64(width)),
		}
		colRange = [2]int{start[1], end[1] + 1}
		samples, err = AlignedPartialProfile(img.Data, rowRange, colRange, models.Horizontal)
	} else {
		rowRange = [2]int{start[0], end[0] + 1}
		colRange = [2]int{
			int(float64(start[1]) + 0.5 - 0.5*float64(width)),
			int(float64(start[1]) + 0.5 + 0.5*float64(width)),
		}
		samples, err = AlignedPartialProfile(img.Data, rowRange, colRange, models.Vertical)
	}
	if err != nil {
		return Result{}, err
	}

	area := models.Polygon{
		img.ToPlot(float64(rowRange[0]), float64(colRange[0])),
		img.ToPlot(float64(rowRange[0]), float64(colRange[1])),
		img.ToPlot(float64(rowRange[1]), float64(colRange[1])),
		img.ToPlot(float64(rowRange[1]), float64(colRange[0])),
	}

	return Result{
		Samples: samples,
		ROI:     area,
		Label: lineLabel(float64(start[1]), float64(start[0]),
			float64(end[1]), float64(end[0]), width),
		XLabel: "Distance",
	}, nil
}

// lineLabel names a line from its endpoints in image (x=col, y=row) coordinates.
func lineLabel(x0, y0, x1, y1 float64, width int) string {
	if x1 == x0 || y1 == y0 {
		return fmt.Sprintf("From (%.6g, %.6g) to (%.6g, %.6g)", x0, y0, x1, y1)
	}
	m := (y1 - y0) / (x1 - x0)
	b := y0 - m*x0
	return fmt.Sprintf("y = %.6g * x %+.6g ; width=%d", m, b, width)
}
