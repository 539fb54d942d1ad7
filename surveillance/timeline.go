package surveillance

import "fmt"

type systemState int

const (
	stateEmpty systemState = iota
	stateLoaded
	stateExtracted
)

type placementSlot struct {
	placement Placement
	foreign   bool
	occupied  bool
	occupant  int
	events    []Event
}

type systemSlot struct {
	system       ContainerSystem
	foreign      bool
	state        systemState
	load         Load
	placementIdx int
	events       []Event
}

// Timeline is the validated result of scanning one snapshot. Every placement
// and container system of the vessel owns a slot, even when no fact touches it.
type Timeline struct {
	vesselID       int
	events         []Event
	placements     []placementSlot
	placementIndex map[int]int
	systems        []systemSlot
	systemIndex    map[int]int
}

// BuildTimeline orders the snapshot's facts and replays them against the
// physical state of every slot, failing on the first violation.
func BuildTimeline(s Snapshot) (*Timeline, error) {
	t := newTimeline(s.Vessel)
	t.events = mergeEvents(s.Loads, s.Extracts)
	for _, ev := range t.events {
		var err error
		switch ev.Kind {
		case EventKindLoad:
			err = t.applyLoad(ev)
		case EventKindExtract:
			err = t.applyExtract(ev)
		default:
			err = fmt.Errorf("surveillance: unknown event kind %d", ev.Kind)
		}
		if err != nil {
			return nil, err
		}
	}
	return t, nil
}

func newTimeline(v Vessel) *Timeline {
	t := &Timeline{
		vesselID:       v.ID,
		placementIndex: make(map[int]int),
		systemIndex:    make(map[int]int),
	}
	for _, sector := range v.Sectors {
		foreign := sector.VesselID != 0 && sector.VesselID != v.ID
		for _, p := range sector.Placements {
			if _, dup := t.placementIndex[p.ID]; dup {
				continue
			}
			t.placementIndex[p.ID] = len(t.placements)
			t.placements = append(t.placements, placementSlot{placement: p, foreign: foreign})
		}
	}
	for _, c := range v.Complects {
		foreign := c.VesselID != 0 && c.VesselID != v.ID
		for _, cs := range c.ContainerSystems {
			if _, dup := t.systemIndex[cs.ID]; dup {
				continue
			}
			t.systemIndex[cs.ID] = len(t.systems)
			t.systems = append(t.systems, systemSlot{system: cs, foreign: foreign, placementIdx: -1})
		}
	}
	return t
}

func (t *Timeline) applyLoad(ev Event) error {
	l := *ev.Load
	si, sok := t.systemIndex[l.ContainerSystemID]
	if !sok || t.systems[si].foreign {
		return crossVessel(l.ContainerSystemID, l.PlacementID, l.ID,
			fmt.Sprintf("container system does not belong to vessel %d", t.vesselID))
	}
	pi, pok := t.placementIndex[l.PlacementID]
	if !pok || t.placements[pi].foreign {
		return crossVessel(l.ContainerSystemID, l.PlacementID, l.ID,
			fmt.Sprintf("placement does not belong to vessel %d", t.vesselID))
	}

	p := &t.placements[pi]
	if p.occupied {
		return doubleOccupancy(l.PlacementID, l.ContainerSystemID, p.occupant, l.ID)
	}
	s := &t.systems[si]
	if s.state != stateEmpty {
		return doubleLoad(l.ContainerSystemID, l.PlacementID, s.load.ID, l.ID)
	}

	p.occupied = true
	p.occupant = l.ID
	s.state = stateLoaded
	s.load = l
	s.placementIdx = pi
	p.events = append(p.events, ev)
	s.events = append(s.events, ev)
	return nil
}

func (t *Timeline) applyExtract(ev Event) error {
	x := *ev.Extract
	si, ok := t.systemIndex[x.ContainerSystemID]
	if !ok {
		return unloadedExtract(x.ContainerSystemID, x.ID,
			fmt.Sprintf("container system does not belong to vessel %d", t.vesselID))
	}
	s := &t.systems[si]
	switch s.state {
	case stateExtracted:
		return doubleExtract(x.ContainerSystemID, t.placements[s.placementIdx].placement.ID, x.ID)
	case stateEmpty:
		return unloadedExtract(x.ContainerSystemID, x.ID, "no prior load")
	}
	if x.LoadID != nil && *x.LoadID != s.load.ID {
		return unloadedExtract(x.ContainerSystemID, x.ID,
			fmt.Sprintf("extract references load %d but the active load is %d", *x.LoadID, s.load.ID))
	}

	p := &t.placements[s.placementIdx]
	p.occupied = false
	p.occupant = 0
	s.state = stateExtracted
	p.events = append(p.events, ev)
	s.events = append(s.events, ev)
	return nil
}

// Events returns every fact in timeline order.
func (t *Timeline) Events() []Event {
	return t.events
}

// PlacementEvents returns the ordered events of one placement, or nil when
// the placement is not part of the vessel.
func (t *Timeline) PlacementEvents(placementID int) []Event {
	i, ok := t.placementIndex[placementID]
	if !ok {
		return nil
	}
	return t.placements[i].events
}

func (t *Timeline) ContainerSystemEvents(systemID int) []Event {
	i, ok := t.systemIndex[systemID]
	if !ok {
		return nil
	}
	return t.systems[i].events
}

// PlacementName resolves a placement of the vessel by id.
func (t *Timeline) PlacementName(placementID int) (string, bool) {
	i, ok := t.placementIndex[placementID]
	if !ok {
		return "", false
	}
	return t.placements[i].placement.Name, true
}

func (t *Timeline) containerSystemName(systemID int) string {
	if i, ok := t.systemIndex[systemID]; ok {
		return t.systems[i].system.Name
	}
	return ""
}
