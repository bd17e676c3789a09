// Package profile extracts 1D intensity profiles from 2D images along
// user-selected lines and bands, and reports the effective region of
// interest as a polygon in plot coordinates.
package profile

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/mat"

	"plotgeom/internal/models"
)

// tracer writes to trace with key 'profile'
func tracer() tracing.Trace {
	return tracing.Select("profile")
}

var (
	// ErrInvalidRange indicates an empty or inverted row/column range,
	// or a zero-length line.
	ErrInvalidRange = errors.New("invalid range")
	// ErrNoImage indicates a profile was requested without image data.
	ErrNoImage = errors.New("no image")
)

// Result holds a computed profile and the area it was taken from
type Result struct {
	// Samples is the profile curve, one value per pixel step
	Samples []float32

	// ROI is the effective region of interest in plot coordinates
	ROI models.Polygon

	// Label describes the profile line
	Label string

	// XLabel is the label of the profile abscissa
	XLabel string
}

// AlignedFullProfile computes a profile along one axis over the whole image.
//
// position is the plot coordinate of the profile line on the axis orthogonal
// to the profile direction, width is the band width in image pixels.
// The band is centered on the line and kept inside the image, so the
// returned profile always has one sample per column (horizontal) or per row
// (vertical). The returned polygon bounds the band actually used.
func AlignedFullProfile(img *models.Image, position float64, width int, axis models.Axis) ([]float32, models.Polygon) {
	o := 1 - int(axis)
	imgPos := int((position - img.Origin[o]) / img.EffectiveScale()[o])

	data := img.Data
	if axis == models.Vertical {
		// Always reduce along rows
		data = data.T()
	}
	height, length := data.Dims()

	width = max(1, min(height, width))

	// [start, end[ of the band in the image
	start := int(float64(imgPos) + 0.5 - float64(width)/2.)
	start = min(max(0, start), height-width)
	end := start + width

	var samples []float32
	if start < height && end > 0 {
		samples = meanRows(data, max(0, start), min(end, height), 0, length)
	} else {
		samples = make([]float32, length)
	}

	var area models.Polygon
	if axis == models.Horizontal {
		area = models.Polygon{
			img.ToPlot(float64(start), 0),
			img.ToPlot(float64(start), float64(length)),
			img.ToPlot(float64(end), float64(length)),
			img.ToPlot(float64(end), 0),
		}
	} else {
		area = models.Polygon{
			img.ToPlot(0, float64(start)),
			img.ToPlot(float64(length), float64(start)),
			img.ToPlot(float64(length), float64(end)),
			img.ToPlot(0, float64(end)),
		}
	}
	tracer().Debugf("aligned %s profile: band [%d, %d[ of %d", axis, start, end, height)
	return samples, area
}

// AlignedPartialProfile is the mean of a rectangular ROI of an image along
// the given axis. Ranges are half-open [min, max[ in image coordinates.
//
// Horizontal averages rows and yields one sample per column of colRange,
// Vertical averages columns and yields one sample per row of rowRange.
// The result always has the length of the requested range; the part of
// the ROI outside the image is zero-filled.
func AlignedPartialProfile(data mat.Matrix, rowRange, colRange [2]int, axis models.Axis) ([]float32, error) {
	if rowRange[0] >= rowRange[1] {
		return nil, fmt.Errorf("row range [%d, %d[: %w", rowRange[0], rowRange[1], ErrInvalidRange)
	}
	if colRange[0] >= colRange[1] {
		return nil, fmt.Errorf("column range [%d, %d[: %w", colRange[0], colRange[1], ErrInvalidRange)
	}
	height, width := data.Dims()

	profileRange := colRange
	if axis == models.Vertical {
		profileRange = rowRange
	}
	profile := make([]float32, profileRange[1]-profileRange[0])

	// Intersection of ROI and image
	rowStart := min(max(0, rowRange[0]), height)
	rowEnd := min(max(0, rowRange[1]), height)
	colStart := min(max(0, colRange[0]), width)
	colEnd := min(max(0, colRange[1]), width)
	if rowStart >= rowEnd || colStart >= colEnd {
		return profile, nil
	}

	var imgProfile []float32
	if axis == models.Horizontal {
		imgProfile = meanRows(data, rowStart, rowEnd, colStart, colEnd)
	} else {
		imgProfile = meanRows(data.T(), colStart, colEnd, rowStart, rowEnd)
	}

	offset := -min(0, profileRange[0])
	copy(profile[offset:], imgProfile)
	return profile, nil
}

// meanRows averages rows [r0, r1[ of m for each column in [c0, c1[.
func meanRows(m mat.Matrix, r0, r1, c0, c1 int) []float32 {
	out := make([]float32, c1-c0)
	n := float32(r1 - r0)
	for c := c0; c < c1; c++ {
		var sum float32
		for r := r0; r < r1; r++ {
			sum += float32(m.At(r, c))
		}
		out[c-c0] = sum / n
	}
	return out
}
