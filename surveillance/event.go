package surveillance

import (
	"sort"
	"time"
)

type EventKind int

const (
	EventKindLoad EventKind = iota + 1
	EventKindExtract
)

func (k EventKind) String() string {
	switch k {
	case EventKindLoad:
		return "load"
	case EventKindExtract:
		return "extract"
	}
	return "unknown"
}

// Event is either a Load or an Extract. Exactly one of the pointers is set,
// matching Kind.
type Event struct {
	Kind    EventKind
	Load    *Load
	Extract *Extract
}

func LoadEvent(l Load) Event {
	return Event{Kind: EventKindLoad, Load: &l}
}

func ExtractEvent(e Extract) Event {
	return Event{Kind: EventKindExtract, Extract: &e}
}

func (e Event) Date() time.Time {
	if e.Kind == EventKindLoad {
		return e.Load.Date
	}
	return e.Extract.Date
}

func (e Event) ContainerSystemID() int {
	if e.Kind == EventKindLoad {
		return e.Load.ContainerSystemID
	}
	return e.Extract.ContainerSystemID
}

func (e Event) factID() int {
	if e.Kind == EventKindLoad {
		return e.Load.ID
	}
	return e.Extract.ID
}

// mergeEvents tags every fact of the snapshot and returns them in timeline order.
func mergeEvents(loads []Load, extracts []Extract) []Event {
	events := make([]Event, 0, len(loads)+len(extracts))
	for _, l := range loads {
		events = append(events, LoadEvent(l))
	}
	for _, x := range extracts {
		events = append(events, ExtractEvent(x))
	}
	SortEvents(events)
	return events
}

// SortEvents orders events by day, then by container system id. Remaining
// ties put a load before an extract and then fall back to the fact id, so the
// result never depends on the input order.
func SortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		da, db := truncateDay(a.Date()), truncateDay(b.Date())
		if !da.Equal(db) {
			return da.Before(db)
		}
		if a.ContainerSystemID() != b.ContainerSystemID() {
			return a.ContainerSystemID() < b.ContainerSystemID()
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.factID() < b.factID()
	})
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
