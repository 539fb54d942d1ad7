package surveillance

type ExtractStatus struct {
	ExtractID   int    `json:"extract_id"`
	ExtractDate string `json:"extract_date"`
}

// LoadStatus is the single load/extract cycle of a container system.
type LoadStatus struct {
	LoadID        int            `json:"load_id"`
	LoadDate      string         `json:"load_date"`
	PlacementName string         `json:"placement_name"`
	Extract       *ExtractStatus `json:"extract"`
}

// BuildLoadStatus returns nil for a container system that was never loaded.
// A validated timeline holds at most one load and one extract per system.
func BuildLoadStatus(events []Event, placementName func(id int) string) *LoadStatus {
	var status *LoadStatus
	for _, ev := range events {
		switch ev.Kind {
		case EventKindLoad:
			if status != nil {
				continue
			}
			status = &LoadStatus{
				LoadID:        ev.Load.ID,
				LoadDate:      formatDate(ev.Load.Date),
				PlacementName: placementName(ev.Load.PlacementID),
			}
		case EventKindExtract:
			if status == nil || status.Extract != nil {
				continue
			}
			status.Extract = &ExtractStatus{
				ExtractID:   ev.Extract.ID,
				ExtractDate: formatDate(ev.Extract.Date),
			}
		}
	}
	return status
}
