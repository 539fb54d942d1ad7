package models

import (
	"context"

	"bitbucket.org/ksar/surveillance_backend/config"
)

type PlantSearchResult struct {
	PlantId   int    `json:"plant_id"`
	Name      string `json:"name"`
	ShName    string `json:"sh_name"`
	NameEng   string `json:"name_eng"`
	ShNameEng string `json:"sh_name_eng"`
}

type UnitSearchResult struct {
	UnitInfo
	PlantName      string `json:"plant_name"`
	PlantShName    string `json:"plant_sh_name"`
	PlantNameEng   string `json:"plant_name_eng"`
	PlantShNameEng string `json:"plant_sh_name_eng"`
}

type PlacementSearchResult struct {
	PlacementId  int     `json:"placement_id"`
	SectorNumber int     `json:"sector"`
	NumInSector  int     `json:"sector_num"`
	Name         string  `json:"name"`
	UnitName     *string `json:"unit_name"`
	UnitNameEng  *string `json:"unit_name_eng"`
}

func SearchPlants(ctx context.Context) ([]*PlantSearchResult, error) {
	db := config.GetDB()
	var plants []Plant
	if err := db.WithContext(ctx).Order("id").Find(&plants).Error; err != nil {
		return nil, err
	}
	results := make([]*PlantSearchResult, 0, len(plants))
	for _, p := range plants {
		results = append(results, &PlantSearchResult{
			PlantId:   p.ID,
			Name:      p.Name,
			ShName:    p.ShName,
			NameEng:   p.NameEng,
			ShNameEng: p.ShNameEng,
		})
	}
	return results, nil
}

func SearchUnits(ctx context.Context) ([]*UnitSearchResult, error) {
	db := config.GetDB()
	var units []Unit
	if err := db.WithContext(ctx).Joins("Plant").Order("units.plant_id, units.num").Find(&units).Error; err != nil {
		return nil, err
	}
	results := make([]*UnitSearchResult, 0, len(units))
	for _, u := range units {
		r := &UnitSearchResult{UnitInfo: u.Info()}
		if u.Plant != nil {
			r.PlantName = u.Plant.Name
			r.PlantShName = u.Plant.ShName
			r.PlantNameEng = u.Plant.NameEng
			r.PlantShNameEng = u.Plant.ShNameEng
		}
		results = append(results, r)
	}
	return results, nil
}

// SearchPlacements lists placements by name with the unit they belong to.
// Placements whose sector has no vessel come back without unit names.
func SearchPlacements(ctx context.Context) ([]*PlacementSearchResult, error) {
	db := config.GetDB()
	type row struct {
		PlacementId  int
		SectorNumber int
		NumInSector  int
		Name         string
		UnitName     *string
		UnitNameEng  *string
	}
	var rows []row
	err := db.WithContext(ctx).Table("placements").
		Select("placements.id AS placement_id, reactor_vessel_sectors.sector_number, placements.num_in_sector, placements.name, units.name AS unit_name, units.name_eng AS unit_name_eng").
		Joins("LEFT JOIN reactor_vessel_sectors ON reactor_vessel_sectors.id = placements.sector_id").
		Joins("LEFT JOIN reactor_vessels ON reactor_vessels.id = reactor_vessel_sectors.vessel_id").
		Joins("LEFT JOIN units ON units.id = reactor_vessels.unit_id").
		Order("placements.name, units.name_eng, placements.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	results := make([]*PlacementSearchResult, 0, len(rows))
	for _, r := range rows {
		results = append(results, &PlacementSearchResult{
			PlacementId:  r.PlacementId,
			SectorNumber: r.SectorNumber,
			NumInSector:  r.NumInSector,
			Name:         r.Name,
			UnitName:     r.UnitName,
			UnitNameEng:  r.UnitNameEng,
		})
	}
	return results, nil
}
