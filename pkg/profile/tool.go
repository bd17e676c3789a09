package profile

import (
	"plotgeom/internal/models"
)

// PolygonLegend is the overlay legend under which the ROI area is published
const PolygonLegend = "profile-roi-polygon"

// MaxLineWidth is the largest line width accepted by a Tool
const MaxLineWidth = 1000

// Mode is the interaction mode of a profile Tool
type Mode int

const (
	// Browse ignores drawing events
	Browse Mode = iota
	// HLine profiles full image rows
	HLine
	// VLine profiles full image columns
	VLine
	// Line profiles a free segment
	Line
)

func (m Mode) String() string {
	switch m {
	case HLine:
		return "hline"
	case VLine:
		return "vline"
	case Line:
		return "line"
	default:
		return "browse"
	}
}

// EventKind tells how far a drawing interaction has progressed
type EventKind int

const (
	// OtherEvent is any plot event the tool does not handle
	OtherEvent EventKind = iota
	// DrawingProgress is sent while the selection is dragged
	DrawingProgress
	// DrawingFinished is sent when the selection is released
	DrawingFinished
)

// Event is a selection event emitted by the plot
type Event struct {
	Kind   EventKind
	Points [2]models.Point
}

// ImageProvider supplies the currently active image of a plot
type ImageProvider interface {
	ActiveImage() (*models.Image, bool)
}

// CurveSink displays profile curves
type CurveSink interface {
	Clear()
	SetTitle(title string)
	SetAxisLabels(x, y string)
	AddCurve(x, y []float32, legend, xLabel, color string)
}

// OverlaySink displays ROI polygons over the image.
// Adding a polygon under an existing legend replaces it.
type OverlaySink interface {
	AddPolygon(xs, ys []float64, legend, color string)
	Remove(legend string)
}

type roiInfo struct {
	start, end models.Point
	mode       Mode
}

// Tool keeps the profile selection state of a plot and publishes the
// profile curve and its ROI each time the selection changes.
// A Tool is not safe for concurrent use.
type Tool struct {
	images  ImageProvider
	overlay OverlaySink
	curves  CurveSink

	mode      Mode
	roi       *roiInfo
	lineWidth int
	color     string

	// ClipOverlay restricts the published ROI polygon to the image
	ClipOverlay bool
}

// NewTool creates a profile tool in Browse mode with a line width of 1
func NewTool(images ImageProvider, overlay OverlaySink, curves CurveSink) *Tool {
	return &Tool{
		images:    images,
		overlay:   overlay,
		curves:    curves,
		lineWidth: 1,
		color:     "red",
	}
}

// Mode returns the current interaction mode
func (t *Tool) Mode() Mode { return t.mode }

// SetMode switches the interaction mode. The current ROI is kept.
func (t *Tool) SetMode(m Mode) {
	tracer().Debugf("profile tool mode: %s -> %s", t.mode, m)
	t.mode = m
}

// LineWidth returns the configured line width
func (t *Tool) LineWidth() int { return t.lineWidth }

// SetLineWidth sets the ROI width in pixels, clamped to [0, MaxLineWidth],
// and refreshes the profile. A width of 0 is used as 1.
func (t *Tool) SetLineWidth(w int) error {
	t.lineWidth = min(max(0, w), MaxLineWidth)
	return t.Update()
}

// OverlayColor returns the color of the curve and ROI overlay
func (t *Tool) OverlayColor() string { return t.color }

// SetOverlayColor sets the color of the curve and ROI and refreshes them
func (t *Tool) SetOverlayColor(color string) error {
	t.color = color
	return t.Update()
}

// HandleEvent records the selection carried by a drawing event and
// refreshes the profile. Other events, and events received in Browse
// mode, are ignored. A selection that cannot be profiled is dropped and
// the previous profile stays displayed.
func (t *Tool) HandleEvent(ev Event) error {
	if ev.Kind != DrawingProgress && ev.Kind != DrawingFinished {
		return nil
	}
	if t.mode == Browse {
		return nil
	}
	prev := t.roi
	t.roi = &roiInfo{start: ev.Points[0], end: ev.Points[1], mode: t.mode}
	if err := t.Update(); err != nil {
		t.roi = prev
		return err
	}
	return nil
}

// Clear removes the profile curve and ROI
func (t *Tool) Clear() error {
	t.roi = nil
	return t.Update()
}

// Update recomputes the profile from the active image and the current
// ROI. Without ROI or active image only the previous output is removed.
// If the profile cannot be computed the previous output is kept.
func (t *Tool) Update() error {
	img, ok := t.images.ActiveImage()
	if t.roi == nil || !ok || img == nil {
		t.reset()
		return nil
	}

	width := max(1, t.lineWidth)
	var roi models.ROI
	switch t.roi.mode {
	case HLine:
		roi = models.AxisAligned{Axis: models.Horizontal, Position: t.roi.start.Y, Width: width}
	case VLine:
		roi = models.AxisAligned{Axis: models.Vertical, Position: t.roi.start.X, Width: width}
	default:
		roi = models.FreeLine{Start: t.roi.start, End: t.roi.end, Width: width}
	}

	res, err := Compute(img, roi)
	if err != nil {
		tracer().Errorf("profile update failed: %v", err)
		return err
	}

	t.reset()
	coords := make([]float32, len(res.Samples))
	for i := range coords {
		coords[i] = float32(i)
	}
	t.curves.SetTitle(res.Label)
	t.curves.AddCurve(coords, res.Samples, res.Label, res.XLabel, t.color)

	area := res.ROI
	if t.ClipOverlay {
		area = ClipToImage(area, img)
	}
	if len(area) > 0 {
		t.overlay.AddPolygon(area.XS(), area.YS(), PolygonLegend, t.color)
	}
	return nil
}

func (t *Tool) reset() {
	t.overlay.Remove(PolygonLegend)
	t.curves.Clear()
	t.curves.SetTitle("")
	t.curves.SetAxisLabels("X", "Y")
}
