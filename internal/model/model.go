package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/piwi3910/GiftPack/internal/grid"
)

// Cell is a single square of a present shape or a region.
type Cell int

const (
	Empty  Cell = iota // Background, nothing placed
	Filled             // Covered by a present
)

func (c Cell) String() string {
	if c == Filled {
		return "#"
	}
	return "."
}

// ParseCell converts a '.' or '#' character into a Cell.
func ParseCell(r rune) (Cell, error) {
	switch r {
	case '.':
		return Empty, nil
	case '#':
		return Filled, nil
	default:
		return Empty, fmt.Errorf("invalid cell %q", r)
	}
}

// Present is a polyomino shape drawn on its bounding grid. The list of filled
// positions is derived once from the grid and re-derived by every transform,
// so it always matches the grid it is paired with.
type Present struct {
	Index int    `json:"index"`
	Label string `json:"label"`

	grid     *grid.Grid[Cell]
	occupied []grid.XY
}

// NewPresent wraps a shape grid, scanning it row-major for filled cells.
func NewPresent(g *grid.Grid[Cell]) Present {
	var occupied []grid.XY
	for _, c := range g.Cells() {
		if c.Value() == Filled {
			occupied = append(occupied, c.XY())
		}
	}
	return Present{grid: g, occupied: occupied}
}

// ParsePresent builds a present from rows of '.' and '#'.
func ParsePresent(rows ...string) (Present, error) {
	g, err := grid.FromLines(rows, ParseCell)
	if err != nil {
		return Present{}, err
	}
	return NewPresent(g), nil
}

// MustParsePresent is ParsePresent for literals known to be valid.
func MustParsePresent(rows ...string) Present {
	p, err := ParsePresent(rows...)
	if err != nil {
		panic(err)
	}
	return p
}

// OccupiedCells returns the filled positions in row-major order. The slice is
// shared and must not be modified.
func (p Present) OccupiedCells() []grid.XY {
	return p.occupied
}

// CellCount returns the number of filled cells.
func (p Present) CellCount() int {
	return len(p.occupied)
}

// Width returns the width of the bounding grid.
func (p Present) Width() int {
	if p.grid == nil {
		return 0
	}
	return p.grid.Width()
}

// Height returns the height of the bounding grid.
func (p Present) Height() int {
	if p.grid == nil {
		return 0
	}
	return p.grid.Height()
}

// Grid returns a copy of the bounding grid.
func (p Present) Grid() *grid.Grid[Cell] {
	if p.grid == nil {
		return grid.New(0, 0, Empty)
	}
	return p.grid.Clone()
}

// Rows renders the bounding grid as '.'/'#' lines.
func (p Present) Rows() []string {
	if p.grid == nil || p.grid.Height() == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(p.grid.String(), "\n"), "\n")
}

func (p Present) String() string {
	return strings.Join(p.Rows(), "\n")
}

func (p Present) rewrap(g *grid.Grid[Cell]) Present {
	np := NewPresent(g)
	np.Index = p.Index
	np.Label = p.Label
	return np
}

// Rotate90 returns the present rotated 90 degrees clockwise.
func (p Present) Rotate90() Present { return p.rewrap(p.Grid().Rotate90()) }

// Rotate180 returns the present rotated 180 degrees.
func (p Present) Rotate180() Present { return p.rewrap(p.Grid().Rotate180()) }

// Rotate270 returns the present rotated 90 degrees counter-clockwise.
func (p Present) Rotate270() Present { return p.rewrap(p.Grid().Rotate270()) }

// FlipHorizontal returns the present mirrored left to right.
func (p Present) FlipHorizontal() Present { return p.rewrap(p.Grid().FlipHorizontal()) }

// FlipVertical returns the present mirrored top to bottom.
func (p Present) FlipVertical() Present { return p.rewrap(p.Grid().FlipVertical()) }

// Equal compares two presents by their occupied cells only. Shapes whose
// bounding grids differ only by trailing empty rows or columns compare equal.
func (p Present) Equal(o Present) bool {
	if len(p.occupied) != len(o.occupied) {
		return false
	}
	for i, xy := range p.occupied {
		if o.occupied[i] != xy {
			return false
		}
	}
	return true
}

// Key is a hashable form of the occupied cells, consistent with Equal.
func (p Present) Key() string {
	var sb strings.Builder
	for i, xy := range p.occupied {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(xy.String())
	}
	return sb.String()
}

type presentJSON struct {
	Index int      `json:"index"`
	Label string   `json:"label,omitempty"`
	Rows  []string `json:"rows"`
}

// MarshalJSON stores the shape as its '.'/'#' rows.
func (p Present) MarshalJSON() ([]byte, error) {
	return json.Marshal(presentJSON{Index: p.Index, Label: p.Label, Rows: p.Rows()})
}

// UnmarshalJSON rebuilds the shape and its occupied cells from rows.
func (p *Present) UnmarshalJSON(data []byte) error {
	var raw presentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParsePresent(raw.Rows...)
	if err != nil {
		return fmt.Errorf("present %d: %w", raw.Index, err)
	}
	parsed.Index = raw.Index
	parsed.Label = raw.Label
	*p = parsed
	return nil
}

// Orientation is one of the rigid transforms a present can be placed in.
type Orientation int

const (
	Identity Orientation = iota
	Rotate90
	Rotate180
	Rotate270
	FlipHorizontal
	FlipVertical
)

// AllOrientations lists every orientation in the order the solver tries them.
var AllOrientations = []Orientation{Identity, Rotate90, Rotate180, Rotate270, FlipHorizontal, FlipVertical}

func (o Orientation) String() string {
	switch o {
	case Rotate90:
		return "Rotate 90"
	case Rotate180:
		return "Rotate 180"
	case Rotate270:
		return "Rotate 270"
	case FlipHorizontal:
		return "Flip horizontal"
	case FlipVertical:
		return "Flip vertical"
	default:
		return "Identity"
	}
}

// Apply returns p transformed into this orientation.
func (o Orientation) Apply(p Present) Present {
	switch o {
	case Rotate90:
		return p.Rotate90()
	case Rotate180:
		return p.Rotate180()
	case Rotate270:
		return p.Rotate270()
	case FlipHorizontal:
		return p.FlipHorizontal()
	case FlipVertical:
		return p.FlipVertical()
	default:
		return p
	}
}
