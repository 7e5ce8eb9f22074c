package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/GiftPack/internal/model"
)

// Workbook sheet names.
const (
	SummarySheet    = "Summary"
	PlacementsSheet = "Placements"
	LayoutsSheet    = "Layouts"
)

// ExportExcel writes a workbook with a per-region summary, a row for every
// placement, and the packed grids drawn one cell per spreadsheet cell.
func ExportExcel(path string, result model.SolveResult) error {
	if len(result.Regions) == 0 {
		return ErrNothingToExport
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SummarySheet); err != nil {
		return err
	}
	for _, name := range []string{PlacementsSheet, LayoutsSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	if err := writeSummarySheet(f, result, header); err != nil {
		return fmt.Errorf("summary sheet: %w", err)
	}
	if err := writePlacementsSheet(f, result, header); err != nil {
		return fmt.Errorf("placements sheet: %w", err)
	}
	if err := writeLayoutsSheet(f, result, header); err != nil {
		return fmt.Errorf("layouts sheet: %w", err)
	}

	f.SetActiveSheet(0)
	return f.SaveAs(path)
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func styleRow(f *excelize.File, sheet string, row, cols, style int) error {
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(cols, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, last, style)
}

func writeSummarySheet(f *excelize.File, result model.SolveResult, header int) error {
	headers := []interface{}{"Region", "Label", "Width", "Height", "Presents", "Required Cells", "Packed", "Coverage %", "Nodes", "Time (ms)"}
	if err := writeRow(f, SummarySheet, 1, headers); err != nil {
		return err
	}
	if err := styleRow(f, SummarySheet, 1, len(headers), header); err != nil {
		return err
	}

	for i, rr := range result.Regions {
		packed := "No"
		if rr.Solved {
			packed = "Yes"
		}
		row := []interface{}{
			i + 1,
			rr.Region.Label,
			rr.Region.Width,
			rr.Region.Height,
			rr.Region.TotalPresents(),
			rr.RequiredCells,
			packed,
			fmt.Sprintf("%.1f", rr.Efficiency()),
			rr.Nodes,
			rr.Elapsed.Milliseconds(),
		}
		if err := writeRow(f, SummarySheet, i+2, row); err != nil {
			return err
		}
	}

	total := len(result.Regions) + 3
	if err := writeRow(f, SummarySheet, total, []interface{}{"Packed regions", result.SolvedCount()}); err != nil {
		return err
	}
	if err := writeRow(f, SummarySheet, total+1, []interface{}{"Run", result.RunID}); err != nil {
		return err
	}
	return f.SetColWidth(SummarySheet, "B", "B", 20)
}

func writePlacementsSheet(f *excelize.File, result model.SolveResult, header int) error {
	headers := []interface{}{"Region", "Letter", "Present", "Index", "Orientation", "X", "Y", "Width", "Height", "Cells"}
	if err := writeRow(f, PlacementsSheet, 1, headers); err != nil {
		return err
	}
	if err := styleRow(f, PlacementsSheet, 1, len(headers), header); err != nil {
		return err
	}

	row := 2
	for _, rr := range result.Regions {
		for i, p := range rr.Placements {
			values := []interface{}{
				rr.Region.Label,
				string(model.PlacementLetter(i)),
				placementName(p),
				p.PresentIndex,
				p.Orientation.String(),
				p.Offset.X,
				p.Offset.Y,
				p.Width,
				p.Height,
				len(p.Cells),
			}
			if err := writeRow(f, PlacementsSheet, row, values); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

// writeLayoutsSheet draws each region below the previous one, one
// spreadsheet cell per grid cell, colored by placement.
func writeLayoutsSheet(f *excelize.File, result model.SolveResult, header int) error {
	fills := make([]int, len(presentColors))
	for i, c := range presentColors {
		style, err := f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		})
		if err != nil {
			return err
		}
		fills[i] = style
	}

	maxWidth := 1
	row := 1
	for n, rr := range result.Regions {
		title := fmt.Sprintf("Region %d: %s", n+1, rr.Region.Label)
		if !rr.Solved {
			title += " (does not fit)"
		}
		if err := writeRow(f, LayoutsSheet, row, []interface{}{title}); err != nil {
			return err
		}
		if err := styleRow(f, LayoutsSheet, row, 1, header); err != nil {
			return err
		}
		row++

		for i, p := range rr.Placements {
			letter := string(model.PlacementLetter(i))
			for _, xy := range p.Cells {
				cell, err := excelize.CoordinatesToCellName(xy.X+1, row+xy.Y)
				if err != nil {
					return err
				}
				if err := f.SetCellValue(LayoutsSheet, cell, letter); err != nil {
					return err
				}
				if err := f.SetCellStyle(LayoutsSheet, cell, cell, fills[i%len(fills)]); err != nil {
					return err
				}
			}
		}

		maxWidth = max(maxWidth, rr.Region.Width)
		row += rr.Region.Height + 1
	}

	last, err := excelize.ColumnNumberToName(maxWidth)
	if err != nil {
		return err
	}
	return f.SetColWidth(LayoutsSheet, "A", last, 3)
}
