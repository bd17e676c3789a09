package legend

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlot struct {
	order  []string
	curves map[string]CurveState
}

func newFakePlot(legends ...string) *fakePlot {
	p := &fakePlot{curves: make(map[string]CurveState)}
	for _, l := range legends {
		p.order = append(p.order, l)
		p.curves[l] = CurveState{Visible: true}
	}
	return p
}

func (p *fakePlot) Curves() []string { return p.order }

func (p *fakePlot) Curve(legend string) (CurveState, bool) {
	s, ok := p.curves[legend]
	return s, ok
}

func legendsOf(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Legend
	}
	return out
}

func TestSetPlot(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	l := New[fakePlot]()
	assert.Nil(t, l.Plot())
	assert.Equal(t, 0, l.Len())

	first := newFakePlot("a", "b")
	l.SetPlot(first)
	require.Same(t, first, l.Plot())
	assert.Equal(t, []string{"a", "b"}, legendsOf(l.Entries()))
	e, ok := l.Entry("a")
	require.True(t, ok)
	assert.True(t, e.Visible)

	second := newFakePlot("c")
	l.SetPlot(second)
	assert.Equal(t, []string{"c"}, legendsOf(l.Entries()))

	l.SetPlot(nil)
	assert.Nil(t, l.Plot())
	assert.Equal(t, 0, l.Len())
}

func TestContentChanged(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	plot := newFakePlot("a")
	l := New[fakePlot]()

	// detached: ignored
	l.ContentChanged(Add, CurveKind, "a")
	assert.Equal(t, 0, l.Len())

	l.SetPlot(plot)
	plot.order = append(plot.order, "b")
	plot.curves["b"] = CurveState{Visible: false, Highlighted: true}

	l.ContentChanged(Add, CurveKind, "b")
	l.ContentChanged(Add, CurveKind, "b")
	l.ContentChanged(Add, "image", "img")
	assert.Equal(t, []string{"a", "b"}, legendsOf(l.Entries()))
	e, _ := l.Entry("b")
	assert.False(t, e.Visible)
	assert.True(t, e.Highlighted)

	l.ContentChanged(Remove, CurveKind, "a")
	l.ContentChanged(Remove, CurveKind, "unknown")
	assert.Equal(t, []string{"b"}, legendsOf(l.Entries()))
	_, ok := l.Entry("a")
	assert.False(t, ok)
}

func TestCurveChanged(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	plot := newFakePlot("a")
	l := New[fakePlot]()
	l.SetPlot(plot)

	plot.curves["a"] = CurveState{Visible: false}
	l.CurveChanged("a", OtherChange)
	e, _ := l.Entry("a")
	assert.True(t, e.Visible)

	l.CurveChanged("a", VisibilityChanged)
	e, _ = l.Entry("a")
	assert.False(t, e.Visible)

	plot.curves["a"] = CurveState{Visible: true, Highlighted: true}
	l.CurveChanged("a", HighlightChanged)
	e, _ = l.Entry("a")
	assert.True(t, e.Visible)
	assert.True(t, e.Highlighted)

	// curve vanished from the plot without a remove notification
	delete(plot.curves, "a")
	l.CurveChanged("a", VisibilityChanged)
	e, _ = l.Entry("a")
	assert.False(t, e.Visible)
	assert.False(t, e.Highlighted)
}
