package surveillance

import "time"

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func intPtr(v int) *int { return &v }

// testVessel has two sectors with three placements and two complects with
// four container systems. Slices are deliberately out of display order.
func testVessel() Vessel {
	return Vessel{
		ID: 1,
		Sectors: []Sector{
			{ID: 20, VesselID: 1, SectorNumber: 2, Placements: []Placement{
				{ID: 201, SectorID: 20, NumInSector: 1, Name: "2-1"},
			}},
			{ID: 10, VesselID: 1, SectorNumber: 1, Placements: []Placement{
				{ID: 102, SectorID: 10, NumInSector: 2, Name: "1-2"},
				{ID: 101, SectorID: 10, NumInSector: 1, Name: "1-1"},
			}},
		},
		Complects: []Complect{
			{ID: 2, VesselID: 1, Name: "K2", ComplectNumber: intPtr(2), ContainerSystems: []ContainerSystem{
				{ID: 4, ComplectID: 2, Name: "D"},
				{ID: 3, ComplectID: 2, Name: "C"},
			}},
			{ID: 1, VesselID: 1, Name: "K1", IsAdditional: true, ContainerSystems: []ContainerSystem{
				{ID: 2, ComplectID: 1, Name: "B"},
				{ID: 1, ComplectID: 1, Name: "A"},
			}},
		},
	}
}
