package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitbucket.org/ksar/surveillance_backend/config"
	"bitbucket.org/ksar/surveillance_backend/surveillance"
	"bitbucket.org/ksar/surveillance_backend/utils"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// ErrFactRejected wraps the integrity violation a new fact would introduce.
var ErrFactRejected = errors.New("fact rejected")

// ErrStoreInconsistent wraps a violation already present before the new fact.
var ErrStoreInconsistent = errors.New("surveillance record is inconsistent")

const vesselFactsLockTTL = 30 * time.Second

// Loads and extracts are append-only; see config.FactGuardPlugin.
type CouponLoad struct {
	ID                int       `gorm:"primary_key" json:"load_id"`
	LoadDate          time.Time `gorm:"type:date;not null" json:"load_date"`
	ContainerSystemId int       `gorm:"index;not null" json:"container_system_id"`
	PlacementId       int       `gorm:"index;not null" json:"placement_id"`
	CreatedBy         string    `gorm:"size:100" json:"created_by"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type CouponExtract struct {
	ID                int       `gorm:"primary_key" json:"extract_id"`
	ExtractDate       time.Time `gorm:"type:date;not null" json:"extract_date"`
	ContainerSystemId int       `gorm:"index;not null" json:"container_system_id"`
	LoadId            *int      `gorm:"index" json:"load_id"`
	CreatedBy         string    `gorm:"size:100" json:"created_by"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type NewCouponLoad struct {
	LoadDate          string `json:"load_date" validate:"required"`
	ContainerSystemId int    `json:"container_system_id" validate:"required,gt=0"`
	PlacementId       int    `json:"placement_id" validate:"required,gt=0"`
}

type NewCouponExtract struct {
	ExtractDate       string `json:"extract_date" validate:"required"`
	ContainerSystemId int    `json:"container_system_id" validate:"required,gt=0"`
	LoadId            *int   `json:"load_id" validate:"omitempty,gt=0"`
}

func (l CouponLoad) toSurveillance() surveillance.Load {
	return surveillance.Load{
		ID:                l.ID,
		Date:              l.LoadDate,
		ContainerSystemID: l.ContainerSystemId,
		PlacementID:       l.PlacementId,
	}
}

func (e CouponExtract) toSurveillance() surveillance.Extract {
	return surveillance.Extract{
		ID:                e.ID,
		Date:              e.ExtractDate,
		ContainerSystemID: e.ContainerSystemId,
		LoadID:            e.LoadId,
	}
}

func RecordLoad(ctx context.Context, input *NewCouponLoad) (*CouponLoad, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	loadDate, err := utils.ParseDate(input.LoadDate)
	if err != nil {
		return nil, fmt.Errorf("%w: load_date: %v", utils.ErrorInvalidInput, err)
	}
	if err := utils.ValidateResourceId[Placement](ctx, input.PlacementId); err != nil {
		return nil, err
	}

	load := CouponLoad{
		LoadDate:          loadDate,
		ContainerSystemId: input.ContainerSystemId,
		PlacementId:       input.PlacementId,
		CreatedBy:         usernameFromContext(ctx),
	}
	err = appendFact(ctx, "RecordLoad", input.ContainerSystemId, func(tx *gorm.DB) error {
		return tx.Create(&load).Error
	})
	if err != nil {
		return nil, err
	}
	return &load, nil
}

func RecordExtract(ctx context.Context, input *NewCouponExtract) (*CouponExtract, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	extractDate, err := utils.ParseDate(input.ExtractDate)
	if err != nil {
		return nil, fmt.Errorf("%w: extract_date: %v", utils.ErrorInvalidInput, err)
	}

	extract := CouponExtract{
		ExtractDate:       extractDate,
		ContainerSystemId: input.ContainerSystemId,
		LoadId:            input.LoadId,
		CreatedBy:         usernameFromContext(ctx),
	}
	err = appendFact(ctx, "RecordExtract", input.ContainerSystemId, func(tx *gorm.DB) error {
		return tx.Create(&extract).Error
	})
	if err != nil {
		return nil, err
	}
	return &extract, nil
}

// appendFact serialises writers of one vessel, then inserts the fact and
// replays the vessel's timeline inside the same transaction. Any violation
// rolls the insert back.
func appendFact(ctx context.Context, funcName string, containerSystemId int, insert func(tx *gorm.DB) error) (err error) {
	ctx, span := tracer.Start(ctx, funcName, trace.WithAttributes(attribute.Int("container_system.id", containerSystemId)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	db := config.GetDB()

	vesselId, err := vesselIdOfContainerSystem(ctx, db, containerSystemId)
	if err != nil {
		return err
	}

	lock, err := utils.ObtainLock(ctx, "VesselFacts", vesselId, vesselFactsLockTTL, "models", funcName)
	if err != nil {
		return err
	}
	defer func() {
		_ = lock.Release(context.Background())
	}()

	var unitId int
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		vessel, before, err := loadVesselSnapshot(ctx, tx, vesselId)
		if err != nil {
			return err
		}
		unitId = vessel.UnitId
		if _, err := surveillance.BuildTimeline(before); err != nil {
			logIntegrityViolation(funcName, "existing facts", vesselId, err)
			return fmt.Errorf("%w: %w", ErrStoreInconsistent, err)
		}

		if err := insert(tx); err != nil {
			return err
		}

		_, after, err := loadVesselSnapshot(ctx, tx, vesselId)
		if err != nil {
			return err
		}
		if _, err := surveillance.BuildTimeline(after); err != nil {
			logIntegrityViolation(funcName, "candidate fact", vesselId, err)
			return fmt.Errorf("%w: %w", ErrFactRejected, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := RemoveUnitTreeCache(unitId); err != nil {
		config.LogError(config.GetLogger(), "models", funcName, "invalidate unit tree cache", unitId, err)
	}
	return nil
}

func vesselIdOfContainerSystem(ctx context.Context, db *gorm.DB, containerSystemId int) (int, error) {
	var vesselIds []int
	err := db.WithContext(ctx).Model(&ContainerSystem{}).
		Joins("JOIN coupon_complects ON coupon_complects.id = container_systems.complect_id").
		Where("container_systems.id = ?", containerSystemId).
		Pluck("coupon_complects.vessel_id", &vesselIds).Error
	if err != nil {
		return 0, err
	}
	if len(vesselIds) == 0 {
		return 0, utils.ErrorRecordNotFound
	}
	return vesselIds[0], nil
}

func usernameFromContext(ctx context.Context) string {
	username, _ := utils.GetUsernameFromContext(ctx)
	return username
}
