// Package readout converts the mouse position over a plot into displayed
// values, one field per converter.
package readout

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/floats"

	"plotgeom/internal/hostref"
)

// tracer writes to trace with key 'readout'
func tracer() tracing.Trace {
	return tracing.Select("readout")
}

// ErrConversion indicates a converter failed on a position.
var ErrConversion = errors.New("conversion error")

const (
	// Placeholder is displayed before the first mouse move
	Placeholder = "------"
	// ErrorText is displayed by a field whose converter failed
	ErrorText = "Error"
	// SnapDistance is the largest pixel distance snapped to a curve point
	SnapDistance = 5
)

// Value is a converted coordinate: either a number or a text
type Value struct {
	text    string
	number  float64
	numeric bool
}

// Numeric wraps a number
func Numeric(v float64) Value { return Value{number: v, numeric: true} }

// Text wraps a string
func Text(s string) Value { return Value{text: s} }

// IsNumeric reports whether v holds a number
func (v Value) IsNumeric() bool { return v.numeric }

// Float returns the number held by v, NaN for text
func (v Value) Float() float64 {
	if !v.numeric {
		return math.NaN()
	}
	return v.number
}

// String formats numbers with 7 significant digits and text verbatim
func (v Value) String() string {
	if v.numeric {
		return fmt.Sprintf("%.7g", v.number)
	}
	return v.text
}

// Converter maps a position in data coordinates to a displayed value.
// It may fail by returning an error or by panicking.
type Converter func(x, y float64) (Value, error)

// NumericFunc adapts a numeric function to a Converter
func NumericFunc(f func(x, y float64) float64) Converter {
	return func(x, y float64) (Value, error) {
		return Numeric(f(x, y)), nil
	}
}

// NamedConverter is a converter with the name shown in front of its value
type NamedConverter struct {
	Name    string
	Convert Converter
}

// DefaultConverters display the X and Y data coordinates
func DefaultConverters() []NamedConverter {
	return []NamedConverter{
		{Name: "X", Convert: NumericFunc(func(x, y float64) float64 { return x })},
		{Name: "Y", Convert: NumericFunc(func(x, y float64) float64 { return y })},
	}
}

// Curve is the active curve of a plot
type Curve struct {
	X, Y []float64
	// Symbol is the marker used for points, empty for none
	Symbol string
	// YAxis is the name of the y axis the curve is attached to
	YAxis string
}

// Plot is the host of a PositionInfo
type Plot interface {
	// GraphCursor reports whether the crosshair cursor is shown
	GraphCursor() bool
	ActiveCurve() (Curve, bool)
	DataToPixel(x, y float64, yAxis string) (px, py float64, ok bool)
}

// Field is one displayed value
type Field struct {
	Name string
	Text string
	// Err is the last conversion error, nil after a success
	Err error

	convert Converter
}

func (f *Field) update(x, y float64) {
	v, err := safeConvert(f.convert, x, y)
	if err != nil {
		f.Text, f.Err = ErrorText, err
		tracer().Errorf("Error while converting coordinates (%f, %f) with converter '%s': %v", x, y, f.Name, err)
		return
	}
	f.Text, f.Err = v.String(), nil
}

func safeConvert(convert Converter, x, y float64) (v Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrConversion, r)
		}
	}()
	v, err = convert(x, y)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrConversion, err)
	}
	return v, err
}

// PlotPtr is a pointer to a plot implementation
type PlotPtr[P any] interface {
	*P
	Plot
}

// PositionInfo displays data coordinates of the mouse converted by a list
// of converters. It keeps a weak reference to its plot.
type PositionInfo[P any, PP PlotPtr[P]] struct {
	plot   hostref.Ref[P]
	fields []*Field
	far    bool

	// AutoSnapToActiveCurve uses the closest point of the active curve,
	// when it has symbols and lies within SnapDistance pixels of the mouse.
	// Positions far from the curve are flagged with FarFromCurve.
	AutoSnapToActiveCurve bool
}

// NewPositionInfo creates a readout for plot. Without converters it
// displays X and Y.
func NewPositionInfo[P any, PP PlotPtr[P]](plot PP, converters ...NamedConverter) *PositionInfo[P, PP] {
	if len(converters) == 0 {
		converters = DefaultConverters()
	}
	pi := &PositionInfo[P, PP]{plot: hostref.Make((*P)(plot))}
	for _, c := range converters {
		pi.fields = append(pi.fields, &Field{Name: c.Name, Text: Placeholder, convert: c.Convert})
	}
	return pi
}

// Plot returns the plot this readout is attached to, nil if it is gone
func (pi *PositionInfo[P, PP]) Plot() PP {
	return PP(pi.plot.Get())
}

// Converters returns the converters with their names
func (pi *PositionInfo[P, PP]) Converters() []NamedConverter {
	out := make([]NamedConverter, len(pi.fields))
	for i, f := range pi.fields {
		out[i] = NamedConverter{Name: f.Name, Convert: f.convert}
	}
	return out
}

// Fields returns a snapshot of the displayed fields
func (pi *PositionInfo[P, PP]) Fields() []Field {
	out := make([]Field, len(pi.fields))
	for i, f := range pi.fields {
		out[i] = *f
	}
	return out
}

// FarFromCurve reports whether the last position could not be snapped
// to the active curve
func (pi *PositionInfo[P, PP]) FarFromCurve() bool { return pi.far }

// MouseMoved updates all fields for the mouse at (x, y) in data
// coordinates and (xPixel, yPixel) in pixels. A failing converter only
// affects its own field.
func (pi *PositionInfo[P, PP]) MouseMoved(x, y, xPixel, yPixel float64) {
	pi.far = false
	if pi.AutoSnapToActiveCurve {
		x, y = pi.snap(x, y, xPixel, yPixel)
	}
	for _, f := range pi.fields {
		f.update(x, y)
	}
}

func (pi *PositionInfo[P, PP]) snap(x, y, xPixel, yPixel float64) (float64, float64) {
	plot := pi.Plot()
	if plot == nil || !plot.GraphCursor() {
		return x, y
	}
	pi.far = true

	curve, ok := plot.ActiveCurve()
	if !ok || curve.Symbol == "" || len(curve.X) == 0 || len(curve.X) != len(curve.Y) {
		return x, y
	}

	dist := make([]float64, len(curve.X))
	for i := range dist {
		dx, dy := curve.X[i]-x, curve.Y[i]-y
		dist[i] = dx*dx + dy*dy
	}
	closest := floats.MinIdx(dist)
	cx, cy := curve.X[closest], curve.Y[closest]

	px, py, ok := plot.DataToPixel(cx, cy, curve.YAxis)
	if ok && math.Abs(px-xPixel) < SnapDistance && math.Abs(py-yPixel) < SnapDistance {
		pi.far = false
		return cx, cy
	}
	return x, y
}
