package config

import (
	"errors"
	"testing"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type guardedLoad struct {
	ID int
}

func (guardedLoad) TableName() string { return "coupon_loads" }

type unguardedPlant struct {
	ID   int
	Name string
}

func (unguardedPlant) TableName() string { return "plants" }

// dryRunDB never touches a server; statements are built and discarded.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "user:pass@tcp(127.0.0.1:1)/none?parseTime=true",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	if err := db.Use(NewFactGuardPlugin()); err != nil {
		t.Fatalf("install plugin: %v", err)
	}
	return db
}

func TestFactGuard_RejectsDeleteOnLoads(t *testing.T) {
	db := dryRunDB(t)
	err := db.Delete(&guardedLoad{ID: 1}).Error
	if !errors.Is(err, ErrAppendOnlyFact) {
		t.Fatalf("expected ErrAppendOnlyFact, got %v", err)
	}
}

func TestFactGuard_RejectsUpdateOnExtractsTable(t *testing.T) {
	db := dryRunDB(t)
	err := db.Table("coupon_extracts").Where("id = ?", 1).Update("date", "2020-01-01").Error
	if !errors.Is(err, ErrAppendOnlyFact) {
		t.Fatalf("expected ErrAppendOnlyFact, got %v", err)
	}
}

func TestFactGuard_AllowsOtherTables(t *testing.T) {
	db := dryRunDB(t)
	if err := db.Model(&unguardedPlant{ID: 1}).Update("name", "x").Error; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := db.Delete(&unguardedPlant{ID: 1}).Error; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
