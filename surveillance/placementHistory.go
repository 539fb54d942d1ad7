package surveillance

// Period is one stay of a container system in a placement. ExtractDate is nil
// while the system is still irradiating.
type Period struct {
	ContainerSystemName string  `json:"container_system_name"`
	LoadDate            string  `json:"load_date"`
	ExtractDate         *string `json:"extract_date"`
}

type PlacementHistory struct {
	Periods           []Period
	Occupied          bool
	CurrentSystemName *string
}

// BuildPlacementHistory pairs every load of a placement with the extract that
// follows it for the same container system. Events must come from a
// validated Timeline.
func BuildPlacementHistory(events []Event, systemName func(id int) string) PlacementHistory {
	h := PlacementHistory{Periods: make([]Period, 0, len(events))}
	open := make(map[int]int)
	for _, ev := range events {
		switch ev.Kind {
		case EventKindLoad:
			open[ev.Load.ContainerSystemID] = len(h.Periods)
			h.Periods = append(h.Periods, Period{
				ContainerSystemName: systemName(ev.Load.ContainerSystemID),
				LoadDate:            formatDate(ev.Load.Date),
			})
		case EventKindExtract:
			i, ok := open[ev.Extract.ContainerSystemID]
			if !ok {
				continue
			}
			d := formatDate(ev.Extract.Date)
			h.Periods[i].ExtractDate = &d
			delete(open, ev.Extract.ContainerSystemID)
		}
	}
	if n := len(h.Periods); n > 0 && h.Periods[n-1].ExtractDate == nil {
		name := h.Periods[n-1].ContainerSystemName
		h.Occupied = true
		h.CurrentSystemName = &name
	}
	return h
}
