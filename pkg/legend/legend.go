// Package legend keeps one legend entry per curve of a plot in sync with
// the plot content.
package legend

import (
	"github.com/npillmayer/schuko/tracing"

	"plotgeom/internal/hostref"
)

// tracer writes to trace with key 'legend'
func tracer() tracing.Trace {
	return tracing.Select("legend")
}

// Action is a change of plot content
type Action string

// Content changes reported by a plot
const (
	Add    Action = "add"
	Remove Action = "remove"
)

// CurveKind is the item kind handled by Legends. Other kinds are ignored.
const CurveKind = "curve"

// ItemChange is a change of a curve property
type ItemChange int

// Curve property changes that affect a legend entry
const (
	VisibilityChanged ItemChange = iota
	HighlightChanged
	OtherChange
)

// CurveState is what a legend displays of a curve
type CurveState struct {
	Visible     bool
	Highlighted bool
}

// Plot is the host of a Legends
type Plot interface {
	// Curves lists the legends of all curves in display order
	Curves() []string
	Curve(legend string) (CurveState, bool)
}

// PlotPtr is a pointer to a plot implementation
type PlotPtr[P any] interface {
	*P
	Plot
}

// Entry is the legend of one curve
type Entry struct {
	Legend      string
	Visible     bool
	Highlighted bool
}

// Legends displays the legends of all curves of a plot. It holds a weak
// reference to the plot and is notified of changes through
// ContentChanged and CurveChanged.
type Legends[P any, PP PlotPtr[P]] struct {
	plot    hostref.Ref[P]
	entries map[string]*Entry
	order   []string
}

// New creates an empty legend list, attached to no plot
func New[P any, PP PlotPtr[P]]() *Legends[P, PP] {
	return &Legends[P, PP]{entries: make(map[string]*Entry)}
}

// Plot returns the attached plot, nil if none or gone
func (l *Legends[P, PP]) Plot() PP {
	return PP(l.plot.Get())
}

// SetPlot attaches to plot, dropping the entries of the previous plot and
// adding one entry per curve of the new one. A nil plot detaches.
func (l *Legends[P, PP]) SetPlot(plot PP) {
	l.clear()
	l.plot = hostref.Make((*P)(plot))
	if plot == nil {
		return
	}
	for _, legend := range plot.Curves() {
		l.add(legend)
	}
}

// ContentChanged handles an item added to or removed from the plot
func (l *Legends[P, PP]) ContentChanged(action Action, kind, legend string) {
	if kind != CurveKind {
		return
	}
	if l.Plot() == nil {
		tracer().Errorf("No plot attached, ignoring %s of curve %q", action, legend)
		return
	}
	switch action {
	case Add:
		l.add(legend)
	case Remove:
		l.remove(legend)
	default:
		tracer().Errorf("Unknown content change %q for curve %q", action, legend)
	}
}

// CurveChanged refreshes the entry of a curve whose visibility or
// highlight changed
func (l *Legends[P, PP]) CurveChanged(legend string, change ItemChange) {
	if change != VisibilityChanged && change != HighlightChanged {
		return
	}
	if e, ok := l.entries[legend]; ok {
		l.update(e)
	}
}

// Entries returns the entries in the order curves were added
func (l *Legends[P, PP]) Entries() []Entry {
	out := make([]Entry, 0, len(l.order))
	for _, legend := range l.order {
		out = append(out, *l.entries[legend])
	}
	return out
}

// Entry returns the entry of a curve
func (l *Legends[P, PP]) Entry(legend string) (Entry, bool) {
	e, ok := l.entries[legend]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Len is the number of entries
func (l *Legends[P, PP]) Len() int { return len(l.order) }

func (l *Legends[P, PP]) add(legend string) {
	if _, ok := l.entries[legend]; ok {
		return
	}
	e := &Entry{Legend: legend}
	l.entries[legend] = e
	l.order = append(l.order, legend)
	l.update(e)
}

func (l *Legends[P, PP]) remove(legend string) {
	if _, ok := l.entries[legend]; !ok {
		tracer().Infof("Cannot remove legend %q: no such entry", legend)
		return
	}
	delete(l.entries, legend)
	for i, name := range l.order {
		if name == legend {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

func (l *Legends[P, PP]) clear() {
	l.entries = make(map[string]*Entry)
	l.order = nil
}

func (l *Legends[P, PP]) update(e *Entry) {
	plot := l.Plot()
	if plot == nil {
		return
	}
	state, ok := plot.Curve(e.Legend)
	if !ok {
		tracer().Errorf("Curve %q no longer exists", e.Legend)
		e.Visible, e.Highlighted = false, false
		return
	}
	e.Visible, e.Highlighted = state.Visible, state.Highlighted
}
