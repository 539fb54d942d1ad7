package models

import (
	"encoding/json"
	"testing"
	"time"

	"bitbucket.org/ksar/surveillance_backend/surveillance"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func TestUnitInfo(t *testing.T) {
	start := time.Date(1985, 12, 22, 0, 0, 0, 0, time.UTC)
	u := Unit{ID: 4, PlantId: 1, Num: 1, Name: "ZNPP-1", NameEng: "zap1", Design: "V-320", Power: decimal.RequireFromString("1000.00"), StartDate: &start}
	info := u.Info()
	if info.StartDate == nil || *info.StartDate != "1985-12-22" {
		t.Fatalf("unexpected start date %v", info.StartDate)
	}
	b, err := json.Marshal(info)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["power"] != "1000" || got["stage"] != nil {
		t.Fatalf("unexpected json %s", b)
	}
}

func TestUnitDetail_JSONShape(t *testing.T) {
	tree, err := surveillance.Reconstruct(surveillance.Snapshot{}, surveillance.DefaultGeometry())
	if err != nil {
		t.Fatalf("reconstruct: %v", err)
	}
	detail := UnitDetail{Unit: UnitInfo{UnitId: 1, Name: "U", NameEng: "u", Power: decimal.Zero}, Tree: tree}
	b, err := json.Marshal(detail)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]json.RawMessage
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(got["vessel"]) != `{"sectors":[],"complects":[]}` {
		t.Fatalf("unexpected vessel %s", got["vessel"])
	}
	if _, ok := got["unit"]; !ok {
		t.Fatalf("missing unit in %s", b)
	}
}

func TestReactorVesselToSurveillance(t *testing.T) {
	num := 1
	v := ReactorVessel{
		ID:     9,
		UnitId: 2,
		Sectors: []ReactorVesselSector{
			{ID: 1, VesselId: 9, SectorNumber: 1, Placements: []Placement{{ID: 11, SectorId: 1, NumInSector: 2, Name: "1-2"}}},
		},
		Complects: []CouponComplect{
			{ID: 5, VesselId: 9, Name: "K1", ComplectNumber: &num, ContainerSystems: []ContainerSystem{{ID: 51, ComplectId: 5, Name: "A"}}},
		},
	}
	want := surveillance.Vessel{
		ID: 9,
		Sectors: []surveillance.Sector{
			{ID: 1, VesselID: 9, SectorNumber: 1, Placements: []surveillance.Placement{{ID: 11, SectorID: 1, NumInSector: 2, Name: "1-2"}}},
		},
		Complects: []surveillance.Complect{
			{ID: 5, VesselID: 9, Name: "K1", ComplectNumber: &num, ContainerSystems: []surveillance.ContainerSystem{{ID: 51, ComplectID: 5, Name: "A"}}},
		},
	}
	if diff := cmp.Diff(want, v.toSurveillance()); diff != "" {
		t.Fatalf("vessel mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{11}, v.placementIds()); diff != "" {
		t.Fatalf("placement ids (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{51}, v.containerSystemIds()); diff != "" {
		t.Fatalf("system ids (-want +got):\n%s", diff)
	}
}
