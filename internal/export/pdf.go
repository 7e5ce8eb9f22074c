// Package export writes solve results to PDF, label sheets, Excel workbooks
// and DXF drawings.
package export

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/GiftPack/internal/grid"
	"github.com/piwi3910/GiftPack/internal/model"
)

// ErrNothingToExport is returned when a result holds no regions.
var ErrNothingToExport = errors.New("no regions to export")

// presentColor represents an RGB color for a placed present.
type presentColor struct {
	R, G, B int
}

// presentColors mirrors the color scheme used in the UI region canvas widget.
var presentColors = []presentColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF writes one page per region showing the packed grid, followed by
// a summary page. Regions without a packing are drawn empty and marked.
func ExportPDF(path string, result model.SolveResult) error {
	if len(result.Regions) == 0 {
		return ErrNothingToExport
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, rr := range result.Regions {
		pdf.AddPage()
		renderRegionPage(pdf, rr, i+1)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result)

	return pdf.OutputFileAndClose(path)
}

// renderRegionPage draws a single region result on the current PDF page.
func renderRegionPage(pdf *fpdf.Fpdf, rr model.RegionResult, regionNum int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Region %d: %s (%d x %d)", regionNum, rr.Region.Label, rr.Region.Width, rr.Region.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Presents: %d | Cells used: %d of %d | Coverage: %.1f%% | Search nodes: %d",
		rr.Region.TotalPresents(), rr.FilledCells(), rr.Region.Area(), rr.Efficiency(), rr.Nodes)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	if rr.Region.Width == 0 || rr.Region.Height == 0 {
		return
	}

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight
	cell := math.Min(drawWidth/float64(rr.Region.Width), drawHeight/float64(rr.Region.Height))

	canvasW := float64(rr.Region.Width) * cell
	canvasH := float64(rr.Region.Height) * cell
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Empty region with a light cell lattice
	pdf.SetFillColor(245, 240, 230)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	for y := 0; y < rr.Region.Height; y++ {
		for x := 0; x < rr.Region.Width; x++ {
			pdf.Rect(offsetX+float64(x)*cell, offsetY+float64(y)*cell, cell, cell, "FD")
		}
	}

	owner := placementOwners(rr)
	for i, p := range rr.Placements {
		col := presentColors[i%len(presentColors)]
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(col.R, col.G, col.B)
		for _, xy := range p.Cells {
			pdf.Rect(offsetX+float64(xy.X)*cell, offsetY+float64(xy.Y)*cell, cell, cell, "F")
		}

		if cell > 5 {
			letter := string(model.PlacementLetter(i))
			pdf.SetFont("Helvetica", "B", labelFontSize(cell))
			pdf.SetTextColor(0, 0, 0)
			for _, xy := range p.Cells {
				pdf.SetXY(offsetX+float64(xy.X)*cell, offsetY+float64(xy.Y)*cell)
				pdf.CellFormat(cell, cell, letter, "", 0, "C", false, 0, "")
			}
		}
	}

	// Present outlines: an edge is drawn wherever the neighbor belongs to a
	// different placement or lies outside the region.
	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(0.4)
	for i, p := range rr.Placements {
		for _, xy := range p.Cells {
			x0 := offsetX + float64(xy.X)*cell
			y0 := offsetY + float64(xy.Y)*cell
			if !sameOwner(owner, xy, i, 0, -1) {
				pdf.Line(x0, y0, x0+cell, y0)
			}
			if !sameOwner(owner, xy, i, 0, 1) {
				pdf.Line(x0, y0+cell, x0+cell, y0+cell)
			}
			if !sameOwner(owner, xy, i, -1, 0) {
				pdf.Line(x0, y0, x0, y0+cell)
			}
			if !sameOwner(owner, xy, i, 1, 0) {
				pdf.Line(x0+cell, y0, x0+cell, y0+cell)
			}
		}
	}

	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.6)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "D")

	if !rr.Solved {
		pdf.SetFont("Helvetica", "B", 28)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(offsetX, offsetY+canvasH/2-8)
		pdf.CellFormat(canvasW, 16, "DOES NOT FIT", "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}

	drawPlacementLegend(pdf, rr, offsetY+canvasH+5)
}

// placementOwners maps each covered cell to the index of its placement.
func placementOwners(rr model.RegionResult) map[grid.XY]int {
	owner := make(map[grid.XY]int, rr.FilledCells())
	for i, p := range rr.Placements {
		for _, xy := range p.Cells {
			owner[xy] = i
		}
	}
	return owner
}

func sameOwner(owner map[grid.XY]int, xy grid.XY, idx, dx, dy int) bool {
	n := grid.NewXY(xy.X+dx, xy.Y+dy)
	o, ok := owner[n]
	return ok && o == idx
}

// drawPlacementLegend renders a compact legend of placed presents at the bottom of the region page.
func drawPlacementLegend(pdf *fpdf.Fpdf, rr model.RegionResult, startY float64) {
	if len(rr.Placements) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Presents placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, p := range rr.Placements {
		col := presentColors[i%len(presentColors)]
		label := fmt.Sprintf("%c: %s @ %s", model.PlacementLetter(i), placementName(p), p.Offset)
		if p.Orientation != model.Identity {
			label += " (" + p.Orientation.String() + ")"
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.SolveResult) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Present Packing Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Regions", fmt.Sprintf("%d", len(result.Regions))},
		{"Regions Packed", fmt.Sprintf("%d", result.SolvedCount())},
		{"Coverage of Packed Regions", fmt.Sprintf("%.1f%%", result.TotalEfficiency())},
		{"Search Nodes", fmt.Sprintf("%d", result.TotalNodes())},
		{"Solve Time", result.Elapsed.String()},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Region Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 60, 40, 30, 35, 35, 40}
	headers := []string{"Region", "Label", "Size", "Presents", "Result", "Coverage", "Nodes"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, rr := range result.Regions {
		// Continue the table on a new page once this one is full
		if y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
		}

		outcome := "Packed"
		if !rr.Solved {
			outcome = "Does not fit"
		}
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			rr.Region.Label,
			fmt.Sprintf("%d x %d", rr.Region.Width, rr.Region.Height),
			fmt.Sprintf("%d", rr.Region.TotalPresents()),
			outcome,
			fmt.Sprintf("%.1f%%", rr.Efficiency()),
			fmt.Sprintf("%d", rr.Nodes),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, fmt.Sprintf("Generated by GiftPack - run %s", result.RunID), "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// labelFontSize returns an appropriate font size for a cell of the given size in mm.
func labelFontSize(cell float64) float64 {
	switch {
	case cell > 20:
		return 14
	case cell > 10:
		return 10
	default:
		return 6
	}
}

// placementName is the display name of the present behind a placement.
func placementName(p model.Placement) string {
	if p.Label != "" {
		return p.Label
	}
	return fmt.Sprintf("Present %d", p.PresentIndex)
}
