package surveillance

import "time"

// DateLayout is used for every date rendered into a tree.
const DateLayout = "2006-01-02"

// Vessel is a reactor pressure vessel with its sectors and coupon complects
// already resolved by the entity store.
type Vessel struct {
	ID        int
	Sectors   []Sector
	Complects []Complect
}

type Sector struct {
	ID           int
	VesselID     int
	SectorNumber int
	Placements   []Placement
}

// Placement is a physical slot inside a sector.
type Placement struct {
	ID          int
	SectorID    int
	NumInSector int
	Name        string
}

type Complect struct {
	ID       int
	VesselID int
	Name     string
	// ComplectNumber orders complects; nil sorts as 0.
	ComplectNumber   *int
	IsAdditional     bool
	ContainerSystems []ContainerSystem
}

// ContainerSystem is the assembly that gets inserted into a placement.
type ContainerSystem struct {
	ID         int
	ComplectID int
	Name       string
}

// Load records the insertion of a container system into a placement.
type Load struct {
	ID                int
	Date              time.Time
	ContainerSystemID int
	PlacementID       int
}

// Extract records the removal of a container system. LoadID, when set,
// names the load it closes.
type Extract struct {
	ID                int
	Date              time.Time
	ContainerSystemID int
	LoadID            *int
}

// Snapshot is one consistent read of a vessel and the facts scoped to it.
type Snapshot struct {
	Vessel   Vessel
	Loads    []Load
	Extracts []Extract
}

func formatDate(t time.Time) string {
	return t.Format(DateLayout)
}
