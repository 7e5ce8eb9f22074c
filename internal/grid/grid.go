package grid

import (
	"fmt"
	"strings"
)

// Grid is a rectangular two-dimensional array of cells stored row-major.
// Every row has the same length. A grid with no rows has width 0.
type Grid[T any] struct {
	cells [][]T
}

// New creates a width x height grid with every cell set to fill.
func New[T any](width, height int, fill T) *Grid[T] {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	cells := make([][]T, height)
	for y := range cells {
		row := make([]T, width)
		for x := range row {
			row[x] = fill
		}
		cells[y] = row
	}
	return &Grid[T]{cells: cells}
}

// FromRows builds a grid from a slice of rows. The rows are copied.
// All rows must have the same length.
func FromRows[T any](rows [][]T) (*Grid[T], error) {
	cells := make([][]T, len(rows))
	for y, row := range rows {
		if len(row) != len(rows[0]) {
			return nil, fmt.Errorf("row %d has width %d, expected %d", y, len(row), len(rows[0]))
		}
		cells[y] = append([]T(nil), row...)
	}
	return &Grid[T]{cells: cells}, nil
}

// FromLines parses each character of each line into a cell using parse.
func FromLines[T any](lines []string, parse func(r rune) (T, error)) (*Grid[T], error) {
	rows := make([][]T, 0, len(lines))
	for y, line := range lines {
		row := make([]T, 0, len(line))
		for x, r := range []rune(line) {
			v, err := parse(r)
			if err != nil {
				return nil, fmt.Errorf("cell %d,%d: %w", x, y, err)
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	return FromRows(rows)
}

// Width returns the number of columns.
func (g *Grid[T]) Width() int {
	if len(g.cells) == 0 {
		return 0
	}
	return len(g.cells[0])
}

// Height returns the number of rows.
func (g *Grid[T]) Height() int {
	return len(g.cells)
}

// InBounds reports whether p lies inside the grid.
func (g *Grid[T]) InBounds(p XY) bool {
	return p.X >= 0 && p.Y >= 0 && p.Y < len(g.cells) && p.X < len(g.cells[p.Y])
}

// Get returns a view of the cell at p, or false if p is outside the grid.
func (g *Grid[T]) Get(p XY) (CellInGrid[T], bool) {
	if !g.InBounds(p) {
		return CellInGrid[T]{}, false
	}
	return CellInGrid[T]{value: g.cells[p.Y][p.X], xy: p, grid: g}, true
}

// At returns the value at p, or the zero value and false outside the grid.
func (g *Grid[T]) At(p XY) (T, bool) {
	if !g.InBounds(p) {
		var zero T
		return zero, false
	}
	return g.cells[p.Y][p.X], true
}

// Ptr returns a pointer to the cell at p for in-place mutation, or nil if p is
// outside the grid.
func (g *Grid[T]) Ptr(p XY) *T {
	if !g.InBounds(p) {
		return nil
	}
	return &g.cells[p.Y][p.X]
}

// Set stores v at p. It reports false and does nothing if p is outside the grid.
func (g *Grid[T]) Set(p XY, v T) bool {
	ptr := g.Ptr(p)
	if ptr == nil {
		return false
	}
	*ptr = v
	return true
}

// Rows returns a copy of the cell rows.
func (g *Grid[T]) Rows() [][]T {
	return g.Clone().cells
}

// Cells returns a view of every cell in row-major order.
func (g *Grid[T]) Cells() []CellInGrid[T] {
	out := make([]CellInGrid[T], 0, g.Width()*g.Height())
	for y, row := range g.cells {
		for x, v := range row {
			out = append(out, CellInGrid[T]{value: v, xy: XY{X: x, Y: y}, grid: g})
		}
	}
	return out
}

// Clone returns a deep copy of the grid.
func (g *Grid[T]) Clone() *Grid[T] {
	cells := make([][]T, len(g.cells))
	for y, row := range g.cells {
		cells[y] = append([]T(nil), row...)
	}
	return &Grid[T]{cells: cells}
}

// Rotate90 rotates the grid 90 degrees clockwise. The cell at (x, y) moves to
// (height-1-y, x) and the dimensions swap.
func (g *Grid[T]) Rotate90() *Grid[T] {
	w, h := g.Width(), g.Height()
	cells := make([][]T, w)
	for x := 0; x < w; x++ {
		row := make([]T, h)
		for y := 0; y < h; y++ {
			row[h-1-y] = g.cells[y][x]
		}
		cells[x] = row
	}
	return &Grid[T]{cells: cells}
}

// Rotate180 rotates the grid by 180 degrees.
func (g *Grid[T]) Rotate180() *Grid[T] {
	w, h := g.Width(), g.Height()
	cells := make([][]T, h)
	for y := 0; y < h; y++ {
		row := make([]T, w)
		for x := 0; x < w; x++ {
			row[w-1-x] = g.cells[y][x]
		}
		cells[h-1-y] = row
	}
	return &Grid[T]{cells: cells}
}

// Rotate270 rotates the grid 90 degrees counter-clockwise, undoing Rotate90.
func (g *Grid[T]) Rotate270() *Grid[T] {
	w, h := g.Width(), g.Height()
	cells := make([][]T, w)
	for x := 0; x < w; x++ {
		row := make([]T, h)
		for y := 0; y < h; y++ {
			row[y] = g.cells[y][x]
		}
		cells[w-1-x] = row
	}
	return &Grid[T]{cells: cells}
}

// FlipHorizontal mirrors every row left to right.
func (g *Grid[T]) FlipHorizontal() *Grid[T] {
	cells := make([][]T, len(g.cells))
	for y, row := range g.cells {
		flipped := make([]T, len(row))
		for x, v := range row {
			flipped[len(row)-1-x] = v
		}
		cells[y] = flipped
	}
	return &Grid[T]{cells: cells}
}

// FlipVertical reverses the order of the rows.
func (g *Grid[T]) FlipVertical() *Grid[T] {
	h := len(g.cells)
	cells := make([][]T, h)
	for y, row := range g.cells {
		cells[h-1-y] = append([]T(nil), row...)
	}
	return &Grid[T]{cells: cells}
}

// Equal reports whether two grids have the same dimensions and cell values.
func Equal[T comparable](a, b *Grid[T]) bool {
	if a.Width() != b.Width() || a.Height() != b.Height() {
		return false
	}
	for y, row := range a.cells {
		for x, v := range row {
			if b.cells[y][x] != v {
				return false
			}
		}
	}
	return true
}

// Render draws the grid one line per row using format for each cell.
func Render[T any](g *Grid[T], format func(T) string) string {
	var sb strings.Builder
	for _, row := range g.cells {
		for _, v := range row {
			sb.WriteString(format(v))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// String renders grids whose cells implement fmt.Stringer; other cell types
// fall back to fmt's default formatting.
func (g *Grid[T]) String() string {
	return Render(g, func(v T) string {
		if s, ok := any(v).(fmt.Stringer); ok {
			return s.String()
		}
		return fmt.Sprint(v)
	})
}

// CellInGrid binds a copy of a cell's value to its position and the grid it
// came from, so neighborhood lookups can be expressed from the cell itself.
type CellInGrid[T any] struct {
	value T
	xy    XY
	grid  *Grid[T]
}

// XY returns the cell's position.
func (c CellInGrid[T]) XY() XY { return c.xy }

// Value returns the cell's value at the time the view was taken.
func (c CellInGrid[T]) Value() T { return c.value }

func (c CellInGrid[T]) lookup(p XY, ok bool) (CellInGrid[T], bool) {
	if !ok || c.grid == nil {
		return CellInGrid[T]{}, false
	}
	return c.grid.Get(p)
}

// Up returns the cell above, if any.
func (c CellInGrid[T]) Up() (CellInGrid[T], bool) { return c.lookup(c.xy.Up()) }

// Down returns the cell below, if any.
func (c CellInGrid[T]) Down() (CellInGrid[T], bool) { return c.lookup(c.xy.Down()) }

// Left returns the cell to the left, if any.
func (c CellInGrid[T]) Left() (CellInGrid[T], bool) { return c.lookup(c.xy.Left()) }

// Right returns the cell to the right, if any.
func (c CellInGrid[T]) Right() (CellInGrid[T], bool) { return c.lookup(c.xy.Right()) }

// LeftRight returns the cells on both sides; missing ones are nil.
func (c CellInGrid[T]) LeftRight() [2]*CellInGrid[T] {
	var out [2]*CellInGrid[T]
	if l, ok := c.Left(); ok {
		out[0] = &l
	}
	if r, ok := c.Right(); ok {
		out[1] = &r
	}
	return out
}

// CardinalNeighbors returns the adjacent cells in the four cardinal directions
// that lie inside the grid.
func (c CellInGrid[T]) CardinalNeighbors() []CellInGrid[T] {
	return c.collect(c.xy.CardinalNeighbors())
}

// Neighbors returns all adjacent cells, diagonals included, that lie inside
// the grid.
func (c CellInGrid[T]) Neighbors() []CellInGrid[T] {
	return c.collect(c.xy.Neighbors())
}

func (c CellInGrid[T]) collect(positions []XY) []CellInGrid[T] {
	out := make([]CellInGrid[T], 0, len(positions))
	if c.grid == nil {
		return out
	}
	for _, p := range positions {
		if n, ok := c.grid.Get(p); ok {
			out = append(out, n)
		}
	}
	return out
}
