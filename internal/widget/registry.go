package widget

import (
	"github.com/muurk/notebook/internal/dom"
)

// Identified is anything that can be looked up by element id.
type Identified interface {
	ID() string
	Element() *dom.Element
}

// Registry maps ids to live widget instances. It is the resolution helper
// used to turn loose references (an id, an element, or the instance itself)
// into a live instance.
type Registry[T Identified] struct {
	byID map[string]T
}

// NewRegistry creates an empty registry.
func NewRegistry[T Identified]() *Registry[T] {
	return &Registry[T]{byID: make(map[string]T)}
}

// Register adds item under its id, replacing any previous entry.
func (r *Registry[T]) Register(item T) {
	r.byID[item.ID()] = item
}

// Unregister drops item if it is the registered instance for its id.
func (r *Registry[T]) Unregister(item T) {
	if cur, ok := r.byID[item.ID()]; ok && cur.Element() == item.Element() {
		delete(r.byID, item.ID())
	}
}

// Lookup returns the instance registered under id.
func (r *Registry[T]) Lookup(id string) (T, bool) {
	item, ok := r.byID[id]
	return item, ok
}

// Len returns the number of registered instances.
func (r *Registry[T]) Len() int { return len(r.byID) }

// Resolve accepts a string id, a *dom.Element, or a T and returns the live
// registered instance. Anything that does not resolve yields ok=false.
func (r *Registry[T]) Resolve(ref any) (T, bool) {
	var zero T
	switch v := ref.(type) {
	case nil:
		return zero, false
	case string:
		return r.Lookup(v)
	case *dom.Element:
		if v == nil {
			return zero, false
		}
		item, ok := r.byID[v.ID()]
		if !ok || item.Element() != v {
			return zero, false
		}
		return item, true
	case T:
		if v.Element() == nil {
			return zero, false
		}
		item, ok := r.byID[v.ID()]
		if !ok || item.Element() != v.Element() {
			return zero, false
		}
		return item, true
	}
	return zero, false
}
