// Package imagedata converts between image files and plot images.
package imagedata

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	_ "image/png"
	"os"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"plotgeom/internal/models"
)

// Load decodes a JPEG or PNG file into a gray image with values in [0, 1]
func Load(path string) (*models.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	return FromImage(img), nil
}

// FromImage converts img to gray levels in [0, 1], one row per image line
func FromImage(img image.Image) *models.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	data := mat.NewDense(height, width, nil)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g := color.Gray16Model.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray16)
			data.Set(y, x, float64(g.Y)/65535.0)
		}
	}
	return models.NewImage(data)
}

// ToGray16 renders an image as 16-bit gray levels, stretching its value
// range to the full scale
func ToGray16(m *models.Image) *image.Gray16 {
	rows, cols := m.Dims()
	out := image.NewGray16(image.Rect(0, 0, cols, rows))

	values := make([]float64, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			values = append(values, m.Data.At(r, c))
		}
	}
	if len(values) == 0 {
		return out
	}
	lo, hi := floats.Min(values), floats.Max(values)
	span := hi - lo
	if span == 0 {
		span = 1
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := (values[r*cols+c] - lo) / span
			out.SetGray16(c, r, color.Gray16{Y: uint16(v * 65535)})
		}
	}
	return out
}

// SaveJPEG writes img as a JPEG file
func SaveJPEG(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return jpeg.Encode(file, img, &jpeg.Options{Quality: 90})
}
