package engine

import (
	"fmt"

	"github.com/piwi3910/GiftPack/internal/grid"
	"github.com/piwi3910/GiftPack/internal/model"
)

// OrientedPresent is a present already transformed into one orientation.
type OrientedPresent struct {
	Orientation model.Orientation
	Present     model.Present
}

// Orientations returns the six rigid transforms of p in the fixed order
// identity, rotate 90, rotate 180, rotate 270, flip horizontal, flip vertical.
// With dedup set, orientations whose bounding grid equals an earlier one are
// dropped, keeping the first occurrence. Padded shapes whose rotations cover
// the same cells in a differently sized box are all kept.
func Orientations(p model.Present, dedup bool) []OrientedPresent {
	out := make([]OrientedPresent, 0, len(model.AllOrientations))
	seen := make(map[string]bool, len(model.AllOrientations))
	for _, o := range model.AllOrientations {
		op := o.Apply(p)
		if dedup {
			key := op.String()
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		out = append(out, OrientedPresent{Orientation: o, Present: op})
	}
	return out
}

// Offsets enumerates every top-left position at which a pw x ph bounding box
// lies fully inside a gw x gh grid, x-major. A box larger than the grid in
// either dimension has no offsets.
func Offsets(gw, gh, pw, ph int) []grid.XY {
	if pw > gw || ph > gh {
		return nil
	}
	out := make([]grid.XY, 0, (gw-pw+1)*(gh-ph+1))
	for x := 0; x <= gw-pw; x++ {
		for y := 0; y <= gh-ph; y++ {
			out = append(out, grid.NewXY(x, y))
		}
	}
	return out
}

// CanPlacePresent reports whether every occupied cell of p, shifted by
// offset, lands on an empty in-bounds cell of g.
func CanPlacePresent(g *grid.Grid[model.Cell], p model.Present, offset grid.XY) bool {
	for _, xy := range p.OccupiedCells() {
		v, ok := g.At(xy.Add(offset))
		if !ok || v != model.Empty {
			return false
		}
	}
	return true
}

// PlacePresent marks the occupied cells of p, shifted by offset, as filled and
// returns the absolute positions written. Callers must have checked the
// placement with CanPlacePresent; writing outside g panics.
func PlacePresent(g *grid.Grid[model.Cell], p model.Present, offset grid.XY) []grid.XY {
	cells := make([]grid.XY, 0, p.CellCount())
	for _, xy := range p.OccupiedCells() {
		pos := xy.Add(offset)
		if !g.Set(pos, model.Filled) {
			panic(fmt.Sprintf("place present: cell %s outside %dx%d grid", pos, g.Width(), g.Height()))
		}
		cells = append(cells, pos)
	}
	return cells
}
