package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/GiftPack/internal/model"
)

// LabelInfo holds the data encoded into each present label's QR code.
type LabelInfo struct {
	PresentLabel string `json:"label"`
	PresentIndex int    `json:"present"`
	RegionIndex  int    `json:"region"`
	RegionLabel  string `json:"region_label"`
	Letter       string `json:"letter"`
	Orientation  string `json:"orientation"`
	X            int    `json:"x"`
	Y            int    `json:"y"`
	Cells        int    `json:"cells"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
const (
	labelPageWidth  = 215.9 // US Letter width in mm
	labelPageHeight = 279.4 // US Letter height in mm
	labelMarginTop  = 12.7
	labelMarginLeft = 4.8
	labelWidth      = 66.7
	labelHeight     = 25.4
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0
	labelPadding    = 2.0
)

// ExportLabels generates a PDF of QR-coded labels, one for every present
// placed in a packed region, so each wrapped present can be matched to its
// spot. Labels are laid out on a standard label sheet format (Avery 5160 /
// 3 columns x 10 rows on US Letter).
func ExportLabels(path string, result model.SolveResult) error {
	if len(result.Regions) == 0 {
		return ErrNothingToExport
	}

	labels := CollectLabelInfos(result)
	if len(labels) == 0 {
		return fmt.Errorf("no presents placed to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, fmt.Sprintf("qr_%d", i), label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.PresentLabel, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, imgName string, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	title := fmt.Sprintf("%s  %s", info.Letter, info.PresentLabel)
	if pdf.GetStringWidth(title) > textW {
		for len(title) > 0 && pdf.GetStringWidth(title+"...") > textW {
			title = title[:len(title)-1]
		}
		title += "..."
	}
	pdf.CellFormat(textW, 4.5, title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("%d cells, %s", info.Cells, info.Orientation), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	where := fmt.Sprintf("Region %d (%s) @ %d,%d", info.RegionIndex, info.RegionLabel, info.X, info.Y)
	pdf.CellFormat(textW, 3, where, "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)

	return nil
}

// CollectLabelInfos extracts label information for every placement of every
// packed region, in region order.
func CollectLabelInfos(result model.SolveResult) []LabelInfo {
	var labels []LabelInfo
	for regionIdx, rr := range result.Regions {
		if !rr.Solved {
			continue
		}
		for i, p := range rr.Placements {
			labels = append(labels, LabelInfo{
				PresentLabel: placementName(p),
				PresentIndex: p.PresentIndex,
				RegionIndex:  regionIdx + 1,
				RegionLabel:  rr.Region.Label,
				Letter:       string(model.PlacementLetter(i)),
				Orientation:  p.Orientation.String(),
				X:            p.Offset.X,
				Y:            p.Offset.Y,
				Cells:        len(p.Cells),
			})
		}
	}
	return labels
}
