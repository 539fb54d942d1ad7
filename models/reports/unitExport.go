package reports

import (
	"fmt"
	"sort"
	"time"
	"unicode/utf8"

	"bitbucket.org/ksar/surveillance_backend/models"
	"bitbucket.org/ksar/surveillance_backend/surveillance"
	"github.com/xuri/excelize/v2"
)

const (
	ExcelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	unitInfoSheet         = "Unit info"
	placementHistorySheet = "Placement history"
	irradiating           = "irradiating"
	missing               = "-"
)

// sheet is rows buffered in memory; widths are fitted once all rows are known.
type sheet struct {
	name     string
	header   []string
	rows     [][]interface{}
	maxWidth float64
}

// ExportUnitFileName is unit_<name_eng>_<YYYYMMDD_HHMMSS>.xlsx.
func ExportUnitFileName(nameEng string, now time.Time) string {
	return fmt.Sprintf("unit_%s_%s.xlsx", nameEng, now.Format("20060102_150405"))
}

// ExportUnit renders a unit and its reconstructed vessel into a workbook:
// unit info, the history of every placement, and one sheet per complect.
func ExportUnit(detail *models.UnitDetail) (*excelize.File, error) {
	sheets := []sheet{
		unitInfo(detail.Unit),
		placementHistory(detail.Vessel),
	}
	for _, c := range detail.Vessel.Complects {
		sheets = append(sheets, complectHistory(c))
	}

	f := excelize.NewFile()
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"366092"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				f.Close()
				return nil, err
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			f.Close()
			return nil, err
		}
		if err := writeSheet(f, s, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("sheet %q: %w", s.name, err)
		}
	}
	return f, nil
}

func writeSheet(f *excelize.File, s sheet, headerStyle int) error {
	header := make([]interface{}, len(s.header))
	for i, h := range s.header {
		header[i] = h
	}
	if err := f.SetSheetRow(s.name, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(s.header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(s.name, "A1", last, headerStyle); err != nil {
		return err
	}

	widths := make([]int, len(s.header))
	for i, h := range s.header {
		widths[i] = utf8.RuneCountInString(h)
	}
	for r, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return err
		}
		for i, v := range row {
			if n := utf8.RuneCountInString(fmt.Sprint(v)); i < len(widths) && n > widths[i] {
				widths[i] = n
			}
		}
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(s.name, col, col, fitWidth(w, s.maxWidth)); err != nil {
			return err
		}
	}
	return nil
}

func fitWidth(chars int, max float64) float64 {
	w := float64(chars + 2)
	if w > max {
		return max
	}
	return w
}

func unitInfo(u models.UnitInfo) sheet {
	startDate := missing
	if u.StartDate != nil {
		if t, err := time.Parse(surveillance.DateLayout, *u.StartDate); err == nil {
			startDate = t.Format("02.01.2006")
		}
	}
	stage := missing
	if u.Stage != nil && *u.Stage != "" {
		stage = *u.Stage
	}
	var power interface{} = missing
	if !u.Power.IsZero() {
		power = u.Power.Round(0).IntPart()
	}
	return sheet{
		name:     unitInfoSheet,
		header:   []string{"Parameter", "Value"},
		maxWidth: 50,
		rows: [][]interface{}{
			{"Unit number", u.Num},
			{"Unit name", orMissing(u.Name)},
			{"Unit name (eng)", orMissing(u.NameEng)},
			{"Design", orMissing(u.Design)},
			{"Stage", stage},
			{"Installed power, MW", power},
			{"Commissioning date", startDate},
		},
	}
}

func placementHistory(v surveillance.VesselView) sheet {
	s := sheet{
		name:     placementHistorySheet,
		header:   []string{"Placement", "Assembly", "Loaded", "Extracted"},
		maxWidth: 30,
	}
	for _, sector := range v.Sectors {
		for _, p := range sector.Placements {
			periods := append([]surveillance.Period(nil), p.History...)
			sort.SliceStable(periods, func(i, j int) bool {
				return periods[i].LoadDate < periods[j].LoadDate
			})
			for _, period := range periods {
				s.rows = append(s.rows, []interface{}{
					p.Name,
					period.ContainerSystemName,
					period.LoadDate,
					extractedOrIrradiating(period.ExtractDate),
				})
			}
		}
	}
	return s
}

func complectHistory(c surveillance.ComplectView) sheet {
	s := sheet{
		name:     "Complect " + c.Name,
		header:   []string{"Assembly", "Loaded", "Placement", "Extracted"},
		maxWidth: 25,
	}
	type loaded struct {
		system string
		status *surveillance.LoadStatus
	}
	var rows []loaded
	for _, cs := range c.ContainerSystems {
		if cs.LoadStatus != nil {
			rows = append(rows, loaded{system: cs.Name, status: cs.LoadStatus})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].status.LoadDate != rows[j].status.LoadDate {
			return rows[i].status.LoadDate < rows[j].status.LoadDate
		}
		return rows[i].status.PlacementName < rows[j].status.PlacementName
	})
	for _, r := range rows {
		var extractDate *string
		if r.status.Extract != nil {
			extractDate = &r.status.Extract.ExtractDate
		}
		s.rows = append(s.rows, []interface{}{
			r.system,
			r.status.LoadDate,
			r.status.PlacementName,
			extractedOrIrradiating(extractDate),
		})
	}
	return s
}

func extractedOrIrradiating(date *string) string {
	if date == nil {
		return irradiating
	}
	return *date
}

func orMissing(s string) string {
	if s == "" {
		return missing
	}
	return s
}
