package importer

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/GiftPack/internal/grid"
	"github.com/piwi3910/GiftPack/internal/model"
)

// cellRect is an axis-aligned block of whole cells in DXF orientation
// (row numbers grow upward).
type cellRect struct {
	col0, row0, col1, row1 int
}

// ImportPresentsDXF reads present shapes drawn in a DXF file. Every layer is
// one present; each LWPOLYLINE on it covers the whole cells inside its
// bounding box, measured in units of cellSize. Layers are returned in the
// order they first appear.
func ImportPresentsDXF(path string, cellSize float64) ImportResult {
	result := ImportResult{}

	if cellSize <= 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid cell size %.3f", cellSize))
		return result
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var order []string
	rects := make(map[string][]cellRect)
	skipped := 0

	for _, ent := range entities {
		lw, ok := ent.(*entity.LwPolyline)
		if !ok || len(lw.Vertices) < 4 {
			skipped++
			continue
		}

		r, ok := polylineCells(lw, cellSize)
		if !ok {
			result.Warnings = append(result.Warnings, "Skipped polyline smaller than one cell")
			continue
		}

		layer := "0"
		if l := lw.Layer(); l != nil {
			layer = l.Name()
		}
		if _, seen := rects[layer]; !seen {
			order = append(order, layer)
		}
		rects[layer] = append(rects[layer], r)
	}

	if skipped > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Skipped %d entities that are not polylines", skipped))
	}

	for _, layer := range order {
		p := presentFromRects(rects[layer])
		p.Index = len(result.Presents)
		p.Label = layer
		result.Presents = append(result.Presents, p)
	}

	if len(result.Presents) == 0 {
		result.Errors = append(result.Errors, "No present shapes found in DXF file")
	}

	return result
}

// polylineCells snaps the bounding box of a polyline to the cell lattice.
func polylineCells(lw *entity.LwPolyline, cellSize float64) (cellRect, bool) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, v := range lw.Vertices {
		minX = math.Min(minX, v[0])
		maxX = math.Max(maxX, v[0])
		minY = math.Min(minY, v[1])
		maxY = math.Max(maxY, v[1])
	}

	r := cellRect{
		col0: int(math.Round(minX / cellSize)),
		row0: int(math.Round(minY / cellSize)),
		col1: int(math.Round(maxX / cellSize)),
		row1: int(math.Round(maxY / cellSize)),
	}
	return r, r.col1 > r.col0 && r.row1 > r.row0
}

// presentFromRects builds the smallest grid holding all covered cells. DXF
// rows grow upward, so the topmost row becomes row 0 of the grid.
func presentFromRects(rects []cellRect) model.Present {
	minCol, minRow := math.MaxInt, math.MaxInt
	maxCol, maxRow := math.MinInt, math.MinInt
	for _, r := range rects {
		minCol = min(minCol, r.col0)
		minRow = min(minRow, r.row0)
		maxCol = max(maxCol, r.col1)
		maxRow = max(maxRow, r.row1)
	}

	g := grid.New(maxCol-minCol, maxRow-minRow, model.Empty)
	for _, r := range rects {
		for c := r.col0; c < r.col1; c++ {
			for row := r.row0; row < r.row1; row++ {
				g.Set(grid.NewXY(c-minCol, maxRow-1-row), model.Filled)
			}
		}
	}
	return model.NewPresent(g)
}
