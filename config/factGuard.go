package config

import (
	"errors"

	"gorm.io/gorm"
)

// ErrAppendOnlyFact is returned when an update or delete targets a load/extract table.
var ErrAppendOnlyFact = errors.New("load and extract facts are append-only")

var appendOnlyTables = map[string]bool{
	"coupon_loads":    true,
	"coupon_extracts": true,
}

// FactGuardPlugin rejects UPDATE and DELETE statements against the load and
// extract fact tables. Corrections are new facts, never edits.
//
// NOTE:
// - Raw/Exec SQL bypasses gorm callbacks and is not covered.
type FactGuardPlugin struct{}

func NewFactGuardPlugin() *FactGuardPlugin { return &FactGuardPlugin{} }

func (p *FactGuardPlugin) Name() string { return "fact_guard" }

func (p *FactGuardPlugin) Initialize(db *gorm.DB) error {
	// Update
	if err := db.Callback().Update().Before("gorm:update").Register("fact_guard:update", factGuardCallback); err != nil {
		return err
	}
	// Delete
	if err := db.Callback().Delete().Before("gorm:delete").Register("fact_guard:delete", factGuardCallback); err != nil {
		return err
	}
	return nil
}

func factGuardCallback(db *gorm.DB) {
	if db == nil || db.Statement == nil {
		return
	}
	table := db.Statement.Table
	if table == "" && db.Statement.Schema != nil {
		table = db.Statement.Schema.Table
	}
	if appendOnlyTables[table] {
		db.AddError(ErrAppendOnlyFact)
	}
}
