package widget

import (
	"github.com/muurk/notebook/internal/dom"
	"github.com/muurk/notebook/internal/logging"
)

// Event names understood by Fire.
const (
	EventClick = "click"
)

// SignalHandler receives the payload passed to EmitSignal.
type SignalHandler func(payload any)

// connection is one Connect registration. Its handler is cleared on
// disconnect so an emission already in progress skips it.
type connection struct {
	handler SignalHandler
}

// Widget is the capability set shared by every notebook component: DOM event
// binding, signal emission, class-name helpers and tree navigation. Concrete
// widgets embed a *Widget and add their own behaviour.
//
// Handlers run synchronously in registration order. A handler registered
// while an emission is in progress is not called for that emission; one
// disconnected during it is skipped.
type Widget struct {
	element *dom.Element
	events  map[string][]func()
	signals map[string][]*connection
}

// New wraps an element.
func New(element *dom.Element) *Widget {
	return &Widget{
		element: element,
		events:  make(map[string][]func()),
		signals: make(map[string][]*connection),
	}
}

// Element returns the wrapped element.
func (w *Widget) Element() *dom.Element { return w.element }

// ID returns the element id.
func (w *Widget) ID() string { return w.element.ID() }

// Observe binds handler to a DOM-level event such as EventClick.
func (w *Widget) Observe(event string, handler func()) {
	w.events[event] = append(w.events[event], handler)
}

// Fire dispatches a DOM-level event to its observers.
func (w *Widget) Fire(event string) {
	for _, h := range w.events[event] {
		h()
	}
}

// Connect registers handler for a signal and returns a function that
// disconnects it.
func (w *Widget) Connect(signal string, handler SignalHandler) func() {
	c := &connection{handler: handler}
	w.signals[signal] = append(w.signals[signal], c)
	return func() {
		if c.handler == nil {
			return
		}
		c.handler = nil
		w.drop(signal, c)
	}
}

// drop removes c from the handlers of signal. The list is copied, never
// edited in place, because EmitSignal may be ranging over the old one.
func (w *Widget) drop(signal string, c *connection) {
	old := w.signals[signal]
	kept := make([]*connection, 0, len(old))
	for _, other := range old {
		if other != c {
			kept = append(kept, other)
		}
	}
	if len(kept) == 0 {
		delete(w.signals, signal)
		return
	}
	w.signals[signal] = kept
}

// Connections returns the number of handlers connected to signal.
func (w *Widget) Connections(signal string) int {
	return len(w.signals[signal])
}

// EmitSignal notifies every handler connected to signal.
func (w *Widget) EmitSignal(signal string, payload any) {
	handlers := w.signals[signal]
	logging.LogSignal(w.element.ID(), signal, len(handlers))
	for _, c := range handlers {
		if h := c.handler; h != nil {
			h(payload)
		}
	}
}

// ClassNames returns the element's class list.
func (w *Widget) ClassNames() []string { return w.element.ClassNames() }

// HasClassName reports whether the element carries name.
func (w *Widget) HasClassName(name string) bool { return w.element.HasClassName(name) }

// AddClassName adds name to the element.
func (w *Widget) AddClassName(name string) { w.element.AddClassName(name) }

// RemoveClassName removes name from the element.
func (w *Widget) RemoveClassName(name string) { w.element.RemoveClassName(name) }

// Down returns the n-th child element.
func (w *Widget) Down(n int) *dom.Element { return w.element.Down(n) }

// Next returns the n-th following sibling element.
func (w *Widget) Next(n int) *dom.Element { return w.element.Next(n) }

// Parent returns the parent element.
func (w *Widget) Parent() *dom.Element { return w.element.Parent() }

// ChildElements returns the element's children.
func (w *Widget) ChildElements() []*dom.Element { return w.element.ChildElements() }
