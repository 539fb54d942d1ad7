package surveillance

import (
	"strings"
	"testing"
)

func TestDefaultGeometry(t *testing.T) {
	g := DefaultGeometry()
	if g.Len() != 30 {
		t.Fatalf("expected 30 slots, got %d", g.Len())
	}
	cases := []struct {
		sector, slot int
		coords, text Point
	}{
		{1, 1, Point{5377, 2432}, Point{5712, 2376}},
		{3, 5, Point{623, 2432}, Point{337, 2376}},
		{6, 5, Point{5377, 3566}, Point{5712, 3623}},
	}
	for _, tc := range cases {
		c, txt := g.Lookup(tc.sector, tc.slot)
		if c == nil || *c != tc.coords {
			t.Fatalf("sector %d slot %d: expected %v, got %v", tc.sector, tc.slot, tc.coords, c)
		}
		if txt == nil || *txt != tc.text {
			t.Fatalf("sector %d slot %d: expected label %v, got %v", tc.sector, tc.slot, tc.text, txt)
		}
	}
	if c, txt := g.Lookup(0, 1); c != nil || txt != nil {
		t.Fatalf("expected unknown slot to have no coordinates")
	}
}

func TestLoadGeometry(t *testing.T) {
	g, err := LoadGeometry(strings.NewReader(`{
		"coords": {"1": {"1": [10, 20], "2": [30, 40]}},
		"text_coords": {"1": {"1": [11, 21], "2": [31, 41]}}
	}`))
	if err != nil {
		t.Fatalf("LoadGeometry: %v", err)
	}
	c, txt := g.Lookup(1, 2)
	if c == nil || *c != (Point{30, 40}) || txt == nil || *txt != (Point{31, 41}) {
		t.Fatalf("unexpected lookup result %v %v", c, txt)
	}

	_, err = LoadGeometry(strings.NewReader(`{"coords": {"1": {"1": [10, 20]}}, "text_coords": {}}`))
	if err == nil {
		t.Fatalf("expected error for missing label coordinates")
	}
	_, err = LoadGeometry(strings.NewReader(`{"coords": {"x": {"1": [10, 20]}}}`))
	if err == nil {
		t.Fatalf("expected error for invalid sector key")
	}
}
