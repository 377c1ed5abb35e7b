package export

import (
	"fmt"

	"github.com/piwi3910/PlankLay/internal/model"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the cut list workbook.
const (
	SheetCutList = "Cut List"
	SheetOffcuts = "Offcuts"
	SheetSummary = "Summary"
)

// ExportCutList writes an Excel workbook listing every placed board in
// laying order, the offcuts left over, and per-region totals.
func ExportCutList(path string, plan model.Plan, result model.PlanResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetCutList); err != nil {
		return err
	}
	for _, name := range []string{SheetOffcuts, SheetSummary} {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Region", "Row", "Index", "Board", "Length (mm)", "Width (mm)", "X (mm)", "Y (mm)", "Sawn edges"},
	}
	for _, l := range result.Layouts {
		for _, p := range l.Placements {
			if p.Board == nil {
				continue
			}
			rows = append(rows, []interface{}{
				l.Region, p.Row, p.Index,
				fmt.Sprintf("%d.%d", p.Board.Serial, p.Board.Generation),
				p.Board.Length, p.Board.Width, p.Rect.X, p.Rect.Y,
				model.EdgeFlags(*p.Board),
			})
		}
	}
	if err := writeRows(f, SheetCutList, rows, header); err != nil {
		return err
	}

	rows = [][]interface{}{
		{"Kind", "Region", "Board", "Length (mm)", "Width (mm)", "Area (m²)", "Usable"},
	}
	for _, o := range model.CollectOffcuts(result) {
		rows = append(rows, []interface{}{
			string(o.Kind), o.Region,
			fmt.Sprintf("%d.%d", o.Board.Serial, o.Board.Generation),
			o.Board.Length, o.Board.Width, o.Area() / 1e6, o.Usable(),
		})
	}
	if err := writeRows(f, SheetOffcuts, rows, header); err != nil {
		return err
	}

	rows = [][]interface{}{
		{"Region", "Orientation", "Rows", "Boards", "Covered (m²)", "Discarded strips", "Exhausted"},
	}
	for _, l := range result.Layouts {
		rows = append(rows, []interface{}{
			l.Region, string(l.Orientation), l.Rows, len(l.Placements),
			l.CoveredArea() / 1e6, len(l.Discarded), l.Exhausted,
		})
	}
	rows = append(rows,
		[]interface{}{},
		[]interface{}{"Plan", plan.Name},
		[]interface{}{"Profile", plan.Profile.Name},
		[]interface{}{"Fresh boards used", result.FreshUsed},
		[]interface{}{"Offcuts reused", result.Reused},
		[]interface{}{"Fresh boards left", result.Remaining},
	)
	if err := writeRows(f, SheetSummary, rows, header); err != nil {
		return err
	}

	return f.SaveAs(path)
}

// writeRows fills a sheet from A1 and styles the first row as a header.
func writeRows(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return err
		}
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return err
		}
	}
	return nil
}
