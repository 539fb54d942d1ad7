package surveillance

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Point is an [x, y] position on the vessel diagram.
type Point [2]int

type slotKey struct {
	sector int
	slot   int
}

// Geometry maps (sector number, number in sector) to the diagram position of
// a placement and to the position of its label. It is never modified after
// construction and is safe to share between goroutines.
type Geometry struct {
	coords     map[slotKey]Point
	textCoords map[slotKey]Point
}

// Lookup returns nil points for slots the table does not know.
func (g *Geometry) Lookup(sectorNumber, numInSector int) (coords, textCoords *Point) {
	if g == nil {
		return nil, nil
	}
	k := slotKey{sectorNumber, numInSector}
	if p, ok := g.coords[k]; ok {
		coords = &p
	}
	if p, ok := g.textCoords[k]; ok {
		textCoords = &p
	}
	return coords, textCoords
}

// Len reports how many slots carry diagram coordinates.
func (g *Geometry) Len() int {
	if g == nil {
		return 0
	}
	return len(g.coords)
}

var defaultCoords = [6][5]Point{
	{{5377, 2432}, {5313, 2194}, {5120, 1775}, {4853, 1399}, {4678, 1225}},
	{{3696, 658}, {3459, 595}, {2999, 552}, {2539, 595}, {2303, 658}},
	{{1320, 1225}, {1146, 1399}, {879, 1775}, {687, 2194}, {623, 2432}},
	{{623, 3566}, {687, 3805}, {879, 4223}, {1146, 4599}, {1320, 4773}},
	{{2303, 5341}, {2539, 5404}, {2999, 5448}, {3459, 5404}, {3696, 5341}},
	{{4678, 4773}, {4853, 4599}, {5120, 4223}, {5313, 3805}, {5377, 3566}},
}

var defaultTextCoords = [6][5]Point{
	{{5712, 2376}, {5642, 2114}, {5431, 1653}, {5137, 1240}, {4946, 1048}},
	{{3810, 425}, {3470, 355}, {3015, 317}, {2540, 355}, {2210, 425}},
	{{1103, 1048}, {912, 1240}, {618, 1653}, {407, 2114}, {337, 2376}},
	{{337, 3623}, {407, 3885}, {618, 4346}, {912, 4759}, {1103, 4951}},
	{{2210, 5574}, {2540, 5646}, {3015, 5693}, {3470, 5645}, {3810, 5574}},
	{{4946, 4951}, {5137, 4759}, {5431, 4346}, {5642, 3885}, {5712, 3623}},
}

// DefaultGeometry returns the 6 sector x 5 slot layout of the vessel diagram.
func DefaultGeometry() *Geometry {
	g := &Geometry{
		coords:     make(map[slotKey]Point, 30),
		textCoords: make(map[slotKey]Point, 30),
	}
	for s := range defaultCoords {
		for n := range defaultCoords[s] {
			k := slotKey{s + 1, n + 1}
			g.coords[k] = defaultCoords[s][n]
			g.textCoords[k] = defaultTextCoords[s][n]
		}
	}
	return g
}

type geometryFile struct {
	Coords     map[string]map[string]Point `json:"coords"`
	TextCoords map[string]map[string]Point `json:"text_coords"`
}

// LoadGeometry reads a table shaped like
//
//	{"coords": {"1": {"1": [5377, 2432], ...}}, "text_coords": {...}}
//
// Every slot with diagram coordinates must also have label coordinates.
func LoadGeometry(r io.Reader) (*Geometry, error) {
	var f geometryFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode geometry: %w", err)
	}
	coords, err := flattenGeometry(f.Coords)
	if err != nil {
		return nil, err
	}
	textCoords, err := flattenGeometry(f.TextCoords)
	if err != nil {
		return nil, err
	}
	if len(coords) == 0 {
		return nil, fmt.Errorf("geometry: no coordinates")
	}
	for k := range coords {
		if _, ok := textCoords[k]; !ok {
			return nil, fmt.Errorf("geometry: sector %d slot %d has no label coordinates", k.sector, k.slot)
		}
	}
	return &Geometry{coords: coords, textCoords: textCoords}, nil
}

func flattenGeometry(in map[string]map[string]Point) (map[slotKey]Point, error) {
	out := make(map[slotKey]Point)
	for sectorKey, slots := range in {
		sector, err := strconv.Atoi(sectorKey)
		if err != nil {
			return nil, fmt.Errorf("geometry: invalid sector %q", sectorKey)
		}
		for slotKeyStr, p := range slots {
			slot, err := strconv.Atoi(slotKeyStr)
			if err != nil {
				return nil, fmt.Errorf("geometry: invalid slot %q in sector %d", slotKeyStr, sector)
			}
			out[slotKey{sector, slot}] = p
		}
	}
	return out, nil
}
