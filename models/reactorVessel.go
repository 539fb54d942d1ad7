package models

import "bitbucket.org/ksar/surveillance_backend/surveillance"

type ReactorVessel struct {
	ID        int                   `gorm:"primary_key" json:"vessel_id"`
	UnitId    int                   `gorm:"uniqueIndex;not null" json:"unit_id"`
	Sectors   []ReactorVesselSector `gorm:"foreignKey:VesselId" json:"sectors,omitempty"`
	Complects []CouponComplect      `gorm:"foreignKey:VesselId" json:"complects,omitempty"`
}

type ReactorVesselSector struct {
	ID           int         `gorm:"primary_key" json:"rpv_sector_id"`
	VesselId     int         `gorm:"index;not null" json:"vessel_id"`
	SectorNumber int         `gorm:"not null" json:"sector_number"`
	Placements   []Placement `gorm:"foreignKey:SectorId" json:"placements,omitempty"`
}

type Placement struct {
	ID          int    `gorm:"primary_key" json:"placement_id"`
	SectorId    int    `gorm:"index;not null" json:"sector_id"`
	NumInSector int    `gorm:"not null" json:"num_in_sector"`
	Name        string `gorm:"size:3;not null" json:"name"`
}

type CouponComplect struct {
	ID               int               `gorm:"primary_key" json:"coupon_complect_id"`
	VesselId         int               `gorm:"index;not null" json:"vessel_id"`
	Name             string            `gorm:"size:3;not null" json:"name"`
	ComplectNumber   *int              `json:"complect_number"`
	IsAdditional     bool              `gorm:"not null;default:false" json:"is_additional"`
	ContainerSystems []ContainerSystem `gorm:"foreignKey:ComplectId" json:"container_systems,omitempty"`
}

type ContainerSystem struct {
	ID         int    `gorm:"primary_key" json:"container_sys_id"`
	ComplectId int    `gorm:"index;not null" json:"coupon_complect_id"`
	Name       string `gorm:"size:3;not null" json:"name"`
}

func (v ReactorVessel) toSurveillance() surveillance.Vessel {
	out := surveillance.Vessel{
		ID:        v.ID,
		Sectors:   make([]surveillance.Sector, 0, len(v.Sectors)),
		Complects: make([]surveillance.Complect, 0, len(v.Complects)),
	}
	for _, s := range v.Sectors {
		sector := surveillance.Sector{
			ID:           s.ID,
			VesselID:     s.VesselId,
			SectorNumber: s.SectorNumber,
			Placements:   make([]surveillance.Placement, 0, len(s.Placements)),
		}
		for _, p := range s.Placements {
			sector.Placements = append(sector.Placements, surveillance.Placement{
				ID:          p.ID,
				SectorID:    p.SectorId,
				NumInSector: p.NumInSector,
				Name:        p.Name,
			})
		}
		out.Sectors = append(out.Sectors, sector)
	}
	for _, c := range v.Complects {
		complect := surveillance.Complect{
			ID:               c.ID,
			VesselID:         c.VesselId,
			Name:             c.Name,
			ComplectNumber:   c.ComplectNumber,
			IsAdditional:     c.IsAdditional,
			ContainerSystems: make([]surveillance.ContainerSystem, 0, len(c.ContainerSystems)),
		}
		for _, cs := range c.ContainerSystems {
			complect.ContainerSystems = append(complect.ContainerSystems, surveillance.ContainerSystem{
				ID:         cs.ID,
				ComplectID: cs.ComplectId,
				Name:       cs.Name,
			})
		}
		out.Complects = append(out.Complects, complect)
	}
	return out
}

func (v ReactorVessel) placementIds() []int {
	var ids []int
	for _, s := range v.Sectors {
		for _, p := range s.Placements {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

func (v ReactorVessel) containerSystemIds() []int {
	var ids []int
	for _, c := range v.Complects {
		for _, cs := range c.ContainerSystems {
			ids = append(ids, cs.ID)
		}
	}
	return ids
}
