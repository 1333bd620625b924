package notebook

import (
	"reflect"
	"testing"
)

func TestObserverSeesFutureTabs(t *testing.T) {
	nb := New("obs", "")
	nb.AppendTab("One", "", false)

	var got []string
	o := Observe(nb, func(e Event) { got = append(got, e.String()) })

	two := nb.AppendTab("Two", "", true)
	two.Remove()

	want := []string{
		"unselect One", "select Two", "current_tab_change Two",
		"unselect Two", "select One", "current_tab_change One",
		"remove Two",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected events %v, got %v", want, got)
	}

	o.Close()
	o.Close()
	got = nil
	nb.AppendTab("Three", "", true)
	if len(got) != 0 {
		t.Errorf("closed observer still received %v", got)
	}
	if len(nb.observers) != 0 {
		t.Errorf("Expected observers 0, got %d", len(nb.observers))
	}
}

func TestObserverFirstTabAutoSelect(t *testing.T) {
	nb := New("obs", "")
	var got []Event
	Observe(nb, func(e Event) { got = append(got, e) })

	tab := nb.AppendTab("Only", "", false)

	if len(got) != 2 {
		t.Fatalf("Expected events select and current_tab_change, got %v", got)
	}
	if got[0].Signal != SignalSelect || got[0].Tab != tab || got[0].TabID != "obs_tab_0" {
		t.Errorf("first event = %+v", got[0])
	}
	if got[1].Signal != SignalCurrentTabChange {
		t.Errorf("second event = %+v", got[1])
	}
}

func TestEventString(t *testing.T) {
	if s := (Event{Signal: SignalRemove}).String(); s != "remove" {
		t.Errorf("String() = %q", s)
	}
}

func TestObserverReleasesRemovedTabs(t *testing.T) {
	nb := New("obs", "")
	keep := nb.AppendTab("Keep", "", true)
	o := Observe(nb, func(Event) {})

	var removed []*Tab
	for i := 0; i < 5; i++ {
		tab := nb.AppendTab("Temp", "", true)
		tab.Remove()
		removed = append(removed, tab)
	}

	if n := o.Watching(); n != 1 {
		t.Errorf("Expected 1 watched tab, got %d", n)
	}
	for _, tab := range removed {
		for _, sig := range []string{SignalSelect, SignalUnselect, SignalRemove} {
			if n := tab.Connections(sig); n != 0 {
				t.Errorf("Expected removed tab to have no %s handlers, got %d", sig, n)
			}
		}
	}
	if n := keep.Connections(SignalSelect); n != 1 {
		t.Errorf("Expected 1 select handler on the kept tab, got %d", n)
	}

	o.Close()
	if n := keep.Connections(SignalSelect); n != 0 {
		t.Errorf("Expected Close to disconnect the kept tab, got %d handlers", n)
	}
	if n := nb.Connections(SignalCurrentTabChange); n != 0 {
		t.Errorf("Expected Close to disconnect the notebook, got %d handlers", n)
	}
}
