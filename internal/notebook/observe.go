package notebook

// Event is one signal seen by an Observer.
type Event struct {
	Signal string
	Tab    *Tab
	// TabID and Label are captured when the signal fires, so they stay
	// meaningful after the tab is removed or renamed.
	TabID string
	Label string
}

// Observer forwards every signal of a notebook and of all its tabs, present
// and future, to a single callback.
type Observer struct {
	nb     *Notebook
	fn     func(Event)
	off    func()
	tabs   map[*Tab][]func()
	closed bool
}

// Observe starts forwarding signals of nb to fn.
func Observe(nb *Notebook, fn func(Event)) *Observer {
	o := &Observer{nb: nb, fn: fn, tabs: make(map[*Tab][]func())}
	o.off = nb.Connect(SignalCurrentTabChange, o.handler(SignalCurrentTabChange))
	for _, tab := range nb.tabs {
		o.watch(tab)
	}
	nb.observers = append(nb.observers, o)
	return o
}

// Close stops forwarding. It is safe to call more than once.
func (o *Observer) Close() {
	if o.closed {
		return
	}
	o.closed = true
	o.off()
	for tab := range o.tabs {
		o.unwatch(tab)
	}
	for i, other := range o.nb.observers {
		if other == o {
			o.nb.observers = append(o.nb.observers[:i], o.nb.observers[i+1:]...)
			break
		}
	}
}

// Watching returns the number of tabs whose signals are being forwarded.
func (o *Observer) Watching() int { return len(o.tabs) }

func (o *Observer) watch(tab *Tab) {
	if _, ok := o.tabs[tab]; ok {
		return
	}
	offs := make([]func(), 0, 3)
	for _, sig := range []string{SignalUnselect, SignalSelect} {
		offs = append(offs, tab.Connect(sig, o.handler(sig)))
	}
	forward := o.handler(SignalRemove)
	offs = append(offs, tab.Connect(SignalRemove, func(payload any) {
		forward(payload)
		// A removed tab never signals again.
		o.unwatch(tab)
	}))
	o.tabs[tab] = offs
}

func (o *Observer) unwatch(tab *Tab) {
	for _, off := range o.tabs[tab] {
		off()
	}
	delete(o.tabs, tab)
}

func (o *Observer) handler(signal string) func(any) {
	return func(payload any) {
		tab, _ := payload.(*Tab)
		ev := Event{Signal: signal, Tab: tab}
		if tab != nil {
			ev.TabID = tab.ID()
			ev.Label = tab.Label()
		}
		o.fn(ev)
	}
}

// String renders the event as "signal label".
func (e Event) String() string {
	if e.Label == "" {
		return e.Signal
	}
	return e.Signal + " " + e.Label
}
