package reports

import (
	"testing"
	"time"

	"bitbucket.org/ksar/surveillance_backend/models"
	"bitbucket.org/ksar/surveillance_backend/surveillance"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func strPtr(s string) *string { return &s }

func sampleDetail(t *testing.T) *models.UnitDetail {
	t.Helper()
	day := func(s string) time.Time {
		d, err := time.Parse(surveillance.DateLayout, s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		return d
	}
	snapshot := surveillance.Snapshot{
		Vessel: surveillance.Vessel{
			ID: 1,
			Sectors: []surveillance.Sector{{ID: 1, VesselID: 1, SectorNumber: 1, Placements: []surveillance.Placement{
				{ID: 11, SectorID: 1, NumInSector: 1, Name: "1-1"},
				{ID: 12, SectorID: 1, NumInSector: 2, Name: "1-2"},
			}}},
			Complects: []surveillance.Complect{{ID: 1, VesselID: 1, Name: "K1", ContainerSystems: []surveillance.ContainerSystem{
				{ID: 1, ComplectID: 1, Name: "A"},
				{ID: 2, ComplectID: 1, Name: "B"},
				{ID: 3, ComplectID: 1, Name: "C"},
			}}},
		},
		Loads: []surveillance.Load{
			{ID: 1, Date: day("2010-01-01"), ContainerSystemID: 1, PlacementID: 11},
			{ID: 2, Date: day("2012-01-01"), ContainerSystemID: 2, PlacementID: 11},
			{ID: 3, Date: day("2009-06-01"), ContainerSystemID: 3, PlacementID: 12},
		},
		Extracts: []surveillance.Extract{
			{ID: 1, Date: day("2011-01-01"), ContainerSystemID: 1},
		},
	}
	tree, err := surveillance.Reconstruct(snapshot, surveillance.DefaultGeometry())
	if err != nil {
		t.Fatalf("reconstruct: %v", err)
	}
	return &models.UnitDetail{
		Unit: models.UnitInfo{
			Num:       1,
			Name:      "ЗАЕС-1",
			NameEng:   "zap1",
			Design:    "V-320",
			Power:     decimal.RequireFromString("1000.40"),
			StartDate: strPtr("1985-12-22"),
		},
		Tree: tree,
	}
}

func TestExportUnit(t *testing.T) {
	f, err := ExportUnit(sampleDetail(t))
	if err != nil {
		t.Fatalf("ExportUnit: %v", err)
	}
	defer f.Close()

	if diff := cmp.Diff([]string{"Unit info", "Placement history", "Complect K1"}, f.GetSheetList()); diff != "" {
		t.Fatalf("sheets (-want +got):\n%s", diff)
	}

	info, err := f.GetRows("Unit info")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	wantInfo := [][]string{
		{"Parameter", "Value"},
		{"Unit number", "1"},
		{"Unit name", "ЗАЕС-1"},
		{"Unit name (eng)", "zap1"},
		{"Design", "V-320"},
		{"Stage", "-"},
		{"Installed power, MW", "1000"},
		{"Commissioning date", "22.12.1985"},
	}
	if diff := cmp.Diff(wantInfo, info); diff != "" {
		t.Fatalf("unit info (-want +got):\n%s", diff)
	}

	history, err := f.GetRows("Placement history")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	wantHistory := [][]string{
		{"Placement", "Assembly", "Loaded", "Extracted"},
		{"1-1", "A", "2010-01-01", "2011-01-01"},
		{"1-1", "B", "2012-01-01", "irradiating"},
		{"1-2", "C", "2009-06-01", "irradiating"},
	}
	if diff := cmp.Diff(wantHistory, history); diff != "" {
		t.Fatalf("placement history (-want +got):\n%s", diff)
	}

	complect, err := f.GetRows("Complect K1")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	wantComplect := [][]string{
		{"Assembly", "Loaded", "Placement", "Extracted"},
		{"C", "2009-06-01", "1-2", "irradiating"},
		{"A", "2010-01-01", "1-1", "2011-01-01"},
		{"B", "2012-01-01", "1-1", "irradiating"},
	}
	if diff := cmp.Diff(wantComplect, complect); diff != "" {
		t.Fatalf("complect (-want +got):\n%s", diff)
	}

	style, err := f.GetCellStyle("Placement history", "A1")
	if err != nil || style == 0 {
		t.Fatalf("expected styled header, got style %d err %v", style, err)
	}
	if w, err := f.GetColWidth("Unit info", "A"); err != nil || w != float64(len("Installed power, MW")+2) {
		t.Fatalf("unexpected width %v err %v", w, err)
	}
}

func TestExportUnitFileName(t *testing.T) {
	got := ExportUnitFileName("zap1", time.Date(2024, 3, 5, 7, 8, 9, 0, time.UTC))
	if got != "unit_zap1_20240305_070809.xlsx" {
		t.Fatalf("got %q", got)
	}
}
