// Package hostref provides non-owning references from a tool to the plot
// hosting it.
package hostref

import "weak"

// Ref is a weak reference to a host of type T. The zero Ref refers to
// nothing.
type Ref[T any] struct {
	p weak.Pointer[T]
}

// Make returns a reference to host; a nil host gives the zero Ref
func Make[T any](host *T) Ref[T] {
	if host == nil {
		return Ref[T]{}
	}
	return Ref[T]{p: weak.Make(host)}
}

// Get returns the host, or nil when unset or already collected
func (r Ref[T]) Get() *T {
	return r.p.Value()
}
