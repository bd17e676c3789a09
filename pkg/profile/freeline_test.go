package profile

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plotgeom/internal/models"
)

func constantImage(rows, cols int, v float64) *models.Image {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = v
	}
	return models.NewImageFromRows(rows, cols, data)
}

func dist(a, b models.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func TestFreeLineHorizontalFastPath(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	img := rampImage(5, 5)

	res, err := FreeLineProfile(img, models.Point{X: 0.5, Y: 2.5}, models.Point{X: 4.5, Y: 2.5}, 1)
	require.NoError(t, err)
	assert.Equal(t, []float32{20, 21, 22, 23, 24}, res.Samples)
	assert.Equal(t, "From (0, 2) to (4, 2)", res.Label)
	assert.Equal(t, "Distance", res.XLabel)
	assert.Equal(t, models.Polygon{{X: 0, Y: 2}, {X: 5, Y: 2}, {X: 5, Y: 3}, {X: 0, Y: 3}}, res.ROI)

	// Dragging the other way yields the same profile
	rev, err := FreeLineProfile(img, models.Point{X: 4.5, Y: 2.5}, models.Point{X: 0.5, Y: 2.5}, 1)
	require.NoError(t, err)
	assert.Equal(t, res, rev)
}

func TestFreeLineVerticalFastPath(t *testing.T) {
	img := rampImage(6, 4)

	res, err := FreeLineProfile(img, models.Point{X: 1.2, Y: 4.9}, models.Point{X: 1.7, Y: 1.1}, 1)
	require.NoError(t, err)
	assert.Equal(t, []float32{11, 21, 31, 41}, res.Samples)
	assert.Equal(t, "From (1, 1) to (1, 4)", res.Label)
}

// TestFreeLineFastPathOutside checks a line beyond the image still yields a full-length profile
func TestFreeLineFastPathOutside(t *testing.T) {
	img := rampImage(4, 4)

	res, err := FreeLineProfile(img, models.Point{X: 0.5, Y: 9.5}, models.Point{X: 3.5, Y: 9.5}, 1)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 0, 0}, res.Samples)
}

func TestFreeLineZeroLength(t *testing.T) {
	img := rampImage(4, 4)

	_, err := FreeLineProfile(img, models.Point{X: 1, Y: 1}, models.Point{X: 1, Y: 1}, 1)
	assert.True(t, errors.Is(err, ErrInvalidRange))

	_, err = FreeLineProfile(nil, models.Point{}, models.Point{X: 1}, 1)
	assert.True(t, errors.Is(err, ErrNoImage))
}

func TestFreeLineDiagonal(t *testing.T) {
	img := constantImage(6, 6, 7)

	start, end := models.Point{X: 0.5, Y: 0.5}, models.Point{X: 3.5, Y: 3.5}
	res, err := FreeLineProfile(img, start, end, 1)
	require.NoError(t, err)

	// ceil(3*sqrt(2)) samples
	require.Len(t, res.Samples, 5)
	for _, v := range res.Samples {
		assert.InDelta(t, 7, v, 1e-5)
	}
	assert.Equal(t, "y = 1 * x +0 ; width=1", res.Label)

	rev, err := FreeLineProfile(img, end, start, 1)
	require.NoError(t, err)
	assert.Equal(t, res.Samples, rev.Samples)
}

// TestFreeLineDiagonalROI verifies the ROI polygon width and its half pixel extension
func TestFreeLineDiagonalROI(t *testing.T) {
	img := constantImage(8, 8, 1)

	start, end := models.Point{X: 1.5, Y: 1.5}, models.Point{X: 5.5, Y: 4.5}
	res, err := FreeLineProfile(img, start, end, 3)
	require.NoError(t, err)
	require.Len(t, res.ROI, 4)

	assert.InDelta(t, 3.0, dist(res.ROI[0], res.ROI[1]), 1e-9)
	assert.InDelta(t, 3.0, dist(res.ROI[2], res.ROI[3]), 1e-9)
	assert.InDelta(t, dist(start, end)+1, dist(res.ROI[1], res.ROI[2]), 1e-9)
	assert.Len(t, res.Samples, 5)
}

// TestFreeLineScaledImage checks plot to image conversion for the bilinear path
func TestFreeLineScaledImage(t *testing.T) {
	img := constantImage(10, 10, 2)
	img.Origin = [2]float64{-5, 100}
	img.Scale = [2]float64{0.5, 2}

	res, err := FreeLineProfile(img, models.Point{X: -4.75, Y: 101}, models.Point{X: -2.75, Y: 117}, 1)
	require.NoError(t, err)
	// (row, col) from (0.5, 0.5) to (8.5, 4.5)
	assert.Len(t, res.Samples, int(math.Ceil(math.Hypot(8, 4))))
	for _, pt := range res.ROI {
		assert.True(t, pt.X > -6 && pt.X < 0, "x %g out of image", pt.X)
		assert.True(t, pt.Y > 99 && pt.Y < 120, "y %g out of image", pt.Y)
	}
}

// TestBilinearMatchesAlignedPath compares both sampling paths on the same pixels
func TestBilinearMatchesAlignedPath(t *testing.T) {
	img := rampImage(6, 6)
	b := NewBilinear(img.Data)

	aligned, err := AlignedPartialProfile(img.Data, [2]int{2, 3}, [2]int{1, 5}, models.Horizontal)
	require.NoError(t, err)
	interpolated := b.ProfileLine([2]float64{2, 1}, [2]float64{2, 5}, 1)
	assert.InDeltaSlice(t, aligned, interpolated, 1e-5)

	aligned, err = AlignedPartialProfile(img.Data, [2]int{0, 6}, [2]int{3, 4}, models.Vertical)
	require.NoError(t, err)
	interpolated = b.ProfileLine([2]float64{0, 3}, [2]float64{6, 3}, 1)
	assert.InDeltaSlice(t, aligned, interpolated, 1e-5)

	// A 3 pixel band centered on row 2 averages to row 2
	wide := b.ProfileLine([2]float64{2, 1}, [2]float64{2, 5}, 3)
	assert.InDeltaSlice(t, []float32{21, 22, 23, 24}, wide, 1e-5)
}

func TestBilinearAt(t *testing.T) {
	img := rampImage(3, 3)
	b := NewBilinear(img.Data)

	assert.InDelta(t, 11.0, b.At(1, 1), 1e-12)
	assert.InDelta(t, 5.5, b.At(0.5, 0.5), 1e-12)
	assert.InDelta(t, 22.0, b.At(2.4, 2.4), 1e-12)
	assert.True(t, b.Contains(-0.5, 2.5))
	assert.False(t, b.Contains(-0.6, 0))
}
