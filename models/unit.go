package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/ksar/surveillance_backend/config"
	"bitbucket.org/ksar/surveillance_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Unit struct {
	ID        int             `gorm:"primary_key" json:"unit_id"`
	PlantId   int             `gorm:"index;not null" json:"plant_id"`
	Num       int             `gorm:"not null" json:"num"`
	Name      string          `gorm:"size:30;not null" json:"name"`
	NameEng   string          `gorm:"size:30;not null;uniqueIndex" json:"name_eng"`
	Design    string          `gorm:"size:30;not null" json:"design"`
	Stage     *string         `gorm:"size:50" json:"stage"`
	Power     decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"power"`
	StartDate *time.Time      `gorm:"type:date" json:"start_date"`
	Plant     *Plant          `gorm:"foreignKey:PlantId" json:"plant,omitempty"`
}

// UnitInfo is the public shape of a unit; power is in MW.
type UnitInfo struct {
	UnitId    int             `json:"unit_id"`
	PlantId   int             `json:"plant_id"`
	Num       int             `json:"num"`
	Name      string          `json:"name"`
	NameEng   string          `json:"name_eng"`
	Design    string          `json:"design"`
	Stage     *string         `json:"stage"`
	Power     decimal.Decimal `json:"power"`
	StartDate *string         `json:"start_date"`
}

func (u Unit) Info() UnitInfo {
	return UnitInfo{
		UnitId:    u.ID,
		PlantId:   u.PlantId,
		Num:       u.Num,
		Name:      u.Name,
		NameEng:   u.NameEng,
		Design:    u.Design,
		Stage:     u.Stage,
		Power:     u.Power,
		StartDate: utils.FormatDatePtr(u.StartDate),
	}
}

func GetUnitByNameEng(ctx context.Context, nameEng string) (*Unit, error) {
	db := config.GetDB()
	var unit Unit
	err := db.WithContext(ctx).Where("name_eng = ?", nameEng).Take(&unit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &unit, nil
}
