package surveillance

import (
	"sort"
	"strings"
)

// Tree is the nested vessel view handed to the delivery layer.
type Tree struct {
	Vessel VesselView `json:"vessel"`
}

type VesselView struct {
	Sectors   []SectorView   `json:"sectors"`
	Complects []ComplectView `json:"complects"`
}

type SectorView struct {
	SectorNumber int             `json:"sector_number"`
	Placements   []PlacementView `json:"placements"`
}

type PlacementView struct {
	Name              string           `json:"name"`
	NumInSector       int              `json:"num_in_sector"`
	Coords            *Point           `json:"coords"`
	TextCoords        *Point           `json:"text_coords"`
	Occupied          bool             `json:"occupied"`
	CurrentSystemName *string          `json:"current_system_name"`
	History           []Period         `json:"history"`
	Events            []PlacementEvent `json:"events"`
}

// PlacementEvent is one raw fact of a placement's validated event list.
type PlacementEvent struct {
	Type                string `json:"type"`
	ContainerSystemName string `json:"container_system_name"`
	Date                string `json:"date"`
}

type ComplectView struct {
	Name             string                `json:"name"`
	ComplectNumber   int                   `json:"complect_number"`
	IsAdditional     bool                  `json:"is_additional"`
	ContainerSystems []ContainerSystemView `json:"container_systems"`
}

type ContainerSystemView struct {
	Name       string      `json:"name"`
	LoadStatus *LoadStatus `json:"load_status"`
}

// Reconstruct validates the snapshot and assembles its tree.
func Reconstruct(s Snapshot, g *Geometry) (Tree, error) {
	t, err := BuildTimeline(s)
	if err != nil {
		return Tree{}, err
	}
	return Assemble(s.Vessel, t, g), nil
}

// Assemble orders the vessel hierarchy and attaches histories and geometry.
// It performs no validation of its own.
func Assemble(v Vessel, t *Timeline, g *Geometry) Tree {
	placementName := func(id int) string {
		name, _ := t.PlacementName(id)
		return name
	}

	sectors := append([]Sector(nil), v.Sectors...)
	sort.SliceStable(sectors, func(i, j int) bool {
		if sectors[i].SectorNumber != sectors[j].SectorNumber {
			return sectors[i].SectorNumber < sectors[j].SectorNumber
		}
		return sectors[i].ID < sectors[j].ID
	})
	sectorViews := make([]SectorView, 0, len(sectors))
	for _, s := range sectors {
		placements := append([]Placement(nil), s.Placements...)
		sort.SliceStable(placements, func(i, j int) bool {
			if placements[i].NumInSector != placements[j].NumInSector {
				return placements[i].NumInSector < placements[j].NumInSector
			}
			return placements[i].ID < placements[j].ID
		})
		views := make([]PlacementView, 0, len(placements))
		for _, p := range placements {
			events := t.PlacementEvents(p.ID)
			h := BuildPlacementHistory(events, t.containerSystemName)
			coords, textCoords := g.Lookup(s.SectorNumber, p.NumInSector)
			views = append(views, PlacementView{
				Name:              p.Name,
				NumInSector:       p.NumInSector,
				Coords:            coords,
				TextCoords:        textCoords,
				Occupied:          h.Occupied,
				CurrentSystemName: h.CurrentSystemName,
				History:           h.Periods,
				Events:            rawEvents(events, t.containerSystemName),
			})
		}
		sectorViews = append(sectorViews, SectorView{SectorNumber: s.SectorNumber, Placements: views})
	}

	complects := append([]Complect(nil), v.Complects...)
	sort.SliceStable(complects, func(i, j int) bool {
		ni, nj := complectNumber(complects[i]), complectNumber(complects[j])
		if ni != nj {
			return ni < nj
		}
		if complects[i].Name != complects[j].Name {
			return complects[i].Name < complects[j].Name
		}
		return complects[i].ID < complects[j].ID
	})
	complectViews := make([]ComplectView, 0, len(complects))
	for _, c := range complects {
		systems := append([]ContainerSystem(nil), c.ContainerSystems...)
		sort.SliceStable(systems, func(i, j int) bool {
			if order := strings.Compare(systems[i].Name, systems[j].Name); order != 0 {
				return order < 0
			}
			return systems[i].ID < systems[j].ID
		})
		views := make([]ContainerSystemView, 0, len(systems))
		for _, cs := range systems {
			views = append(views, ContainerSystemView{
				Name:       cs.Name,
				LoadStatus: BuildLoadStatus(t.ContainerSystemEvents(cs.ID), placementName),
			})
		}
		complectViews = append(complectViews, ComplectView{
			Name:             c.Name,
			ComplectNumber:   complectNumber(c),
			IsAdditional:     c.IsAdditional,
			ContainerSystems: views,
		})
	}

	return Tree{Vessel: VesselView{Sectors: sectorViews, Complects: complectViews}}
}

func complectNumber(c Complect) int {
	if c.ComplectNumber == nil {
		return 0
	}
	return *c.ComplectNumber
}

func rawEvents(events []Event, systemName func(id int) string) []PlacementEvent {
	out := make([]PlacementEvent, 0, len(events))
	for _, ev := range events {
		out = append(out, PlacementEvent{
			Type:                ev.Kind.String(),
			ContainerSystemName: systemName(ev.ContainerSystemID()),
			Date:                formatDate(ev.Date()),
		})
	}
	return out
}
