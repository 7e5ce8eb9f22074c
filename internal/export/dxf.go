package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/GiftPack/internal/model"
)

// regionGap is the horizontal space between regions, in cells.
const regionGap = 2

var dxfColors = []color.ColorNumber{color.Red, color.Yellow, color.Green, color.Cyan, color.Blue, color.Magenta}

// ExportDXF draws every region side by side for CAD or laser-cutting use.
// Each region outline sits on layer "R<n>" and the i-th placed present on
// layer "R<n>_<i>", drawn as one closed square polyline per cell of size
// cellSize. DXF's y axis points up, so row 0 of a region is drawn on top.
func ExportDXF(path string, result model.SolveResult, cellSize float64) error {
	if len(result.Regions) == 0 {
		return ErrNothingToExport
	}
	if cellSize <= 0 {
		return fmt.Errorf("invalid cell size %.3f", cellSize)
	}

	d := dxf.NewDrawing()
	originX := 0.0
	for n, rr := range result.Regions {
		if err := drawRegionDXF(d, rr, n+1, originX, cellSize); err != nil {
			return fmt.Errorf("region %d (%s): %w", n+1, rr.Region.Label, err)
		}
		originX += float64(rr.Region.Width+regionGap) * cellSize
	}

	return d.SaveAs(path)
}

func drawRegionDXF(d *drawing.Drawing, rr model.RegionResult, num int, originX, cellSize float64) error {
	layer := fmt.Sprintf("R%d", num)
	if _, err := d.AddLayer(layer, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return err
	}

	w := float64(rr.Region.Width) * cellSize
	h := float64(rr.Region.Height) * cellSize
	corners := [][2]float64{{originX, 0}, {originX + w, 0}, {originX + w, h}, {originX, h}}
	for i, c := range corners {
		next := corners[(i+1)%len(corners)]
		if _, err := d.Line(c[0], c[1], 0, next[0], next[1], 0); err != nil {
			return err
		}
	}

	for i, p := range rr.Placements {
		name := fmt.Sprintf("%s_%d", layer, i+1)
		if _, err := d.AddLayer(name, dxfColors[i%len(dxfColors)], dxf.DefaultLineType, true); err != nil {
			return err
		}
		for _, xy := range p.Cells {
			x0 := originX + float64(xy.X)*cellSize
			y0 := float64(rr.Region.Height-1-xy.Y) * cellSize
			_, err := d.LwPolyline(true,
				[]float64{x0, y0},
				[]float64{x0 + cellSize, y0},
				[]float64{x0 + cellSize, y0 + cellSize},
				[]float64{x0, y0 + cellSize},
			)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
