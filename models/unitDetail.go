package models

import (
	"context"
	"database/sql"
	"fmt"

	"bitbucket.org/ksar/surveillance_backend/config"
	"bitbucket.org/ksar/surveillance_backend/surveillance"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

var tracer = otel.Tracer("surveillance-backend/models")

type UnitDetail struct {
	Unit UnitInfo `json:"unit"`
	surveillance.Tree
}

// GetUnitDetail returns the unit and its reconstructed vessel tree. Trees
// are cached per unit until a new fact lands on the vessel.
func GetUnitDetail(ctx context.Context, nameEng string) (*UnitDetail, error) {
	ctx, span := tracer.Start(ctx, "GetUnitDetail", trace.WithAttributes(attribute.String("unit.name_eng", nameEng)))
	defer span.End()

	unit, err := GetUnitByNameEng(ctx, nameEng)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	tree, err := GetUnitTree(ctx, unit.ID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return &UnitDetail{Unit: unit.Info(), Tree: tree}, nil
}

func GetUnitTree(ctx context.Context, unitId int) (surveillance.Tree, error) {
	logger := config.GetLogger()
	ttl := config.UnitTreeCacheTTL()

	// the generation is read before any fact so a concurrent write retires this key
	generation, err := config.GetRedisCounter(unitTreeGenKey(unitId))
	if err != nil {
		config.LogError(logger, "models", "GetUnitTree", "read cache generation", unitId, err)
		ttl = 0
	}
	key := unitTreeCacheKey(unitId, generation)

	var tree surveillance.Tree
	if ttl > 0 {
		exists, err := config.GetRedisObject(key, &tree)
		if err != nil {
			config.LogError(logger, "models", "GetUnitTree", "read cache", key, err)
		}
		if exists {
			return tree, nil
		}
	}

	tree, err = reconstructUnitTree(ctx, config.GetDB(), unitId)
	if err != nil {
		return tree, err
	}

	if ttl > 0 {
		if unitTreeCacheWriteHook != nil {
			unitTreeCacheWriteHook()
		}
		if err := config.SetRedisObject(key, &tree, ttl); err != nil {
			config.LogError(logger, "models", "GetUnitTree", "write cache", key, err)
		}
	}
	return tree, nil
}

func reconstructUnitTree(ctx context.Context, db *gorm.DB, unitId int) (surveillance.Tree, error) {
	ctx, span := tracer.Start(ctx, "reconstructUnitTree")
	defer span.End()
	span.SetAttributes(attribute.Int("unit.id", unitId))

	vesselId, err := GetVesselIdByUnit(ctx, db, unitId)
	if err != nil {
		return surveillance.Tree{}, err
	}
	if vesselId == 0 {
		return surveillance.Reconstruct(surveillance.Snapshot{}, config.GetGeometry())
	}

	snapshot, err := readVesselSnapshot(ctx, db, vesselId)
	if err != nil {
		return surveillance.Tree{}, err
	}
	span.SetAttributes(
		attribute.Int("vessel.id", vesselId),
		attribute.Int("facts.loads", len(snapshot.Loads)),
		attribute.Int("facts.extracts", len(snapshot.Extracts)),
	)

	tree, err := surveillance.Reconstruct(snapshot, config.GetGeometry())
	if err != nil {
		logIntegrityViolation("reconstructUnitTree", fmt.Sprintf("unit %d", unitId), vesselId, err)
		return surveillance.Tree{}, fmt.Errorf("%w: %w", ErrStoreInconsistent, err)
	}
	return tree, nil
}

type VesselCheck struct {
	VesselId int
	UnitId   int
	Loads    int
	Extracts int
	Err      error
}

// CheckAllVessels replays every vessel's timeline. Store errors abort; integrity
// violations are reported per vessel.
func CheckAllVessels(ctx context.Context, db *gorm.DB) ([]VesselCheck, error) {
	var vessels []ReactorVessel
	if err := db.WithContext(ctx).Select("id", "unit_id").Order("id").Find(&vessels).Error; err != nil {
		return nil, err
	}

	results := make([]VesselCheck, 0, len(vessels))
	for _, v := range vessels {
		snapshot, err := readVesselSnapshot(ctx, db, v.ID)
		if err != nil {
			return results, fmt.Errorf("load vessel %d: %w", v.ID, err)
		}
		_, err = surveillance.BuildTimeline(snapshot)
		results = append(results, VesselCheck{
			VesselId: v.ID,
			UnitId:   v.UnitId,
			Loads:    len(snapshot.Loads),
			Extracts: len(snapshot.Extracts),
			Err:      err,
		})
	}
	return results, nil
}

// readVesselSnapshot reads the graph and facts of one vessel in a single
// read-only transaction, so loads and extracts come from the same state.
func readVesselSnapshot(ctx context.Context, db *gorm.DB, vesselId int) (surveillance.Snapshot, error) {
	var snapshot surveillance.Snapshot
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		snapshot, err = LoadVesselSnapshot(ctx, tx, vesselId)
		return err
	}, &sql.TxOptions{ReadOnly: true})
	return snapshot, err
}
