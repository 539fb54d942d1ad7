package models

import (
	"context"

	"bitbucket.org/ksar/surveillance_backend/config"
	"gorm.io/gorm"
)

type Plant struct {
	ID        int     `gorm:"primary_key" json:"plant_id"`
	Num       int     `gorm:"not null;default:0" json:"num"`
	ShName    string  `gorm:"size:10;not null" json:"sh_name"`
	Name      string  `gorm:"size:50;not null" json:"name"`
	Descr     *string `gorm:"size:2000" json:"descr"`
	ShNameEng string  `gorm:"size:10;not null" json:"sh_name_eng"`
	NameEng   string  `gorm:"size:50;not null" json:"name_eng"`
	Units     []Unit  `gorm:"foreignKey:PlantId" json:"units,omitempty"`
}

type PlantWithUnits struct {
	Name      string     `json:"name"`
	ShName    string     `json:"sh_name"`
	NameEng   string     `json:"name_eng"`
	ShNameEng string     `json:"sh_name_eng"`
	Units     []UnitInfo `json:"units"`
}

// GetPlantsUnits lists every plant with its units ordered by unit number.
func GetPlantsUnits(ctx context.Context) ([]*PlantWithUnits, error) {
	db := config.GetDB()
	var plants []Plant
	err := db.WithContext(ctx).
		Preload("Units", func(tx *gorm.DB) *gorm.DB { return tx.Order("num, id") }).
		Order("id").
		Find(&plants).Error
	if err != nil {
		return nil, err
	}

	results := make([]*PlantWithUnits, 0, len(plants))
	for _, p := range plants {
		units := make([]UnitInfo, 0, len(p.Units))
		for _, u := range p.Units {
			units = append(units, u.Info())
		}
		results = append(results, &PlantWithUnits{
			Name:      p.Name,
			ShName:    p.ShName,
			NameEng:   p.NameEng,
			ShNameEng: p.ShNameEng,
			Units:     units,
		})
	}
	return results, nil
}
