package models

import (
	"context"
	"errors"

	"bitbucket.org/ksar/surveillance_backend/surveillance"
	"bitbucket.org/ksar/surveillance_backend/utils"
	"gorm.io/gorm"
)

// LoadVesselSnapshot resolves the vessel graph and the facts scoped to it:
// loads touching one of its placements or container systems, and extracts of
// its container systems. Pass a transaction to get a consistent read.
func LoadVesselSnapshot(ctx context.Context, db *gorm.DB, vesselId int) (surveillance.Snapshot, error) {
	_, snapshot, err := loadVesselSnapshot(ctx, db, vesselId)
	return snapshot, err
}

func loadVesselSnapshot(ctx context.Context, db *gorm.DB, vesselId int) (*ReactorVessel, surveillance.Snapshot, error) {
	var vessel ReactorVessel
	err := db.WithContext(ctx).
		Preload("Sectors").
		Preload("Sectors.Placements").
		Preload("Complects").
		Preload("Complects.ContainerSystems").
		Take(&vessel, vesselId).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, surveillance.Snapshot{}, utils.ErrorRecordNotFound
		}
		return nil, surveillance.Snapshot{}, err
	}

	placementIds := vessel.placementIds()
	systemIds := vessel.containerSystemIds()

	var loads []CouponLoad
	if len(placementIds) > 0 || len(systemIds) > 0 {
		q := db.WithContext(ctx).Model(&CouponLoad{})
		switch {
		case len(placementIds) > 0 && len(systemIds) > 0:
			q = q.Where("placement_id IN ? OR container_system_id IN ?", placementIds, systemIds)
		case len(placementIds) > 0:
			q = q.Where("placement_id IN ?", placementIds)
		default:
			q = q.Where("container_system_id IN ?", systemIds)
		}
		if err := q.Order("id").Find(&loads).Error; err != nil {
			return nil, surveillance.Snapshot{}, err
		}
	}

	var extracts []CouponExtract
	if len(systemIds) > 0 {
		if err := db.WithContext(ctx).Model(&CouponExtract{}).
			Where("container_system_id IN ?", systemIds).
			Order("id").
			Find(&extracts).Error; err != nil {
			return nil, surveillance.Snapshot{}, err
		}
	}

	snapshot := surveillance.Snapshot{
		Vessel:   vessel.toSurveillance(),
		Loads:    make([]surveillance.Load, 0, len(loads)),
		Extracts: make([]surveillance.Extract, 0, len(extracts)),
	}
	for _, l := range loads {
		snapshot.Loads = append(snapshot.Loads, l.toSurveillance())
	}
	for _, e := range extracts {
		snapshot.Extracts = append(snapshot.Extracts, e.toSurveillance())
	}
	return &vessel, snapshot, nil
}

// GetVesselIdByUnit returns 0 when the unit has no vessel on record.
func GetVesselIdByUnit(ctx context.Context, db *gorm.DB, unitId int) (int, error) {
	var vessel ReactorVessel
	err := db.WithContext(ctx).Select("id").Where("unit_id = ?", unitId).Take(&vessel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return vessel.ID, nil
}
