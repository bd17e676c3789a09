package main

import (
	"plotgeom/internal/models"
	"plotgeom/pkg/legend"
	"plotgeom/pkg/readout"
)

type consoleCurve struct {
	x, y   []float32
	legend string
	xLabel string
	color  string
}

type consolePolygon struct {
	xs, ys []float64
	color  string
}

// consolePlot collects what the profile tool publishes so it can be printed.
// It hosts the legend list and the position readout.
type consolePlot struct {
	image    *models.Image
	title    string
	xLabel   string
	yLabel   string
	curves   []consoleCurve
	polygons map[string]consolePolygon
	legends  *legend.Legends[consolePlot, *consolePlot]
}

func newConsolePlot(img *models.Image) *consolePlot {
	return &consolePlot{image: img, polygons: make(map[string]consolePolygon)}
}

func (p *consolePlot) ActiveImage() (*models.Image, bool) {
	return p.image, p.image != nil
}

func (p *consolePlot) Clear() {
	old := p.curves
	p.curves = nil
	if p.legends == nil {
		return
	}
	for _, c := range old {
		p.legends.ContentChanged(legend.Remove, legend.CurveKind, c.legend)
	}
}

func (p *consolePlot) SetTitle(title string) { p.title = title }

func (p *consolePlot) SetAxisLabels(x, y string) { p.xLabel, p.yLabel = x, y }

func (p *consolePlot) AddCurve(x, y []float32, name, xLabel, color string) {
	p.curves = append(p.curves, consoleCurve{x: x, y: y, legend: name, xLabel: xLabel, color: color})
	if p.legends != nil {
		p.legends.ContentChanged(legend.Add, legend.CurveKind, name)
	}
}

func (p *consolePlot) AddPolygon(xs, ys []float64, name, color string) {
	p.polygons[name] = consolePolygon{xs: xs, ys: ys, color: color}
}

func (p *consolePlot) Remove(name string) { delete(p.polygons, name) }

// Curves and Curve serve the legend list

func (p *consolePlot) Curves() []string {
	out := make([]string, len(p.curves))
	for i, c := range p.curves {
		out[i] = c.legend
	}
	return out
}

func (p *consolePlot) Curve(name string) (legend.CurveState, bool) {
	for _, c := range p.curves {
		if c.legend == name {
			return legend.CurveState{Visible: true}, true
		}
	}
	return legend.CurveState{}, false
}

// The console has no pixels: data and pixel coordinates coincide.

func (p *consolePlot) GraphCursor() bool { return true }

func (p *consolePlot) ActiveCurve() (readout.Curve, bool) {
	if len(p.curves) == 0 {
		return readout.Curve{}, false
	}
	c := p.curves[len(p.curves)-1]
	curve := readout.Curve{
		X:      make([]float64, len(c.x)),
		Y:      make([]float64, len(c.y)),
		Symbol: "o",
		YAxis:  "left",
	}
	for i := range c.x {
		curve.X[i], curve.Y[i] = float64(c.x[i]), float64(c.y[i])
	}
	return curve, true
}

func (p *consolePlot) DataToPixel(x, y float64, yAxis string) (float64, float64, bool) {
	return x, y, true
}
