package surveillance

import "testing"

func TestSortEvents_TieBreaks(t *testing.T) {
	events := []Event{
		LoadEvent(Load{ID: 3, Date: day("2020-01-01"), ContainerSystemID: 9}),
		ExtractEvent(Extract{ID: 4, Date: day("2020-01-01"), ContainerSystemID: 2}),
		LoadEvent(Load{ID: 1, Date: day("2020-01-01"), ContainerSystemID: 2}),
		LoadEvent(Load{ID: 2, Date: day("2019-12-31"), ContainerSystemID: 50}),
	}
	SortEvents(events)

	want := []struct {
		kind EventKind
		id   int
	}{
		{EventKindLoad, 2},
		{EventKindLoad, 1},
		{EventKindExtract, 4},
		{EventKindLoad, 3},
	}
	for i, w := range want {
		if events[i].Kind != w.kind || events[i].factID() != w.id {
			t.Fatalf("position %d: expected %v %d, got %v %d", i, w.kind, w.id, events[i].Kind, events[i].factID())
		}
	}
}
