// Package grid provides a generic two-dimensional cell grid with
// position-indexed access, neighbor queries and rigid transforms.
package grid

import (
	"fmt"
	"strconv"
	"strings"
)

// XY is a position in a grid. Both coordinates are non-negative; operations
// that would step below zero report no result instead of wrapping.
type XY struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NewXY creates a position with the given coordinates.
func NewXY(x, y int) XY {
	return XY{X: x, Y: y}
}

// ParseXY parses a position written as "x,y".
func ParseXY(s string) (XY, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return XY{}, fmt.Errorf("invalid position %q: missing comma", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return XY{}, fmt.Errorf("invalid position %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return XY{}, fmt.Errorf("invalid position %q: %w", s, err)
	}
	if x < 0 || y < 0 {
		return XY{}, fmt.Errorf("invalid position %q: negative coordinate", s)
	}
	return XY{X: x, Y: y}, nil
}

func (p XY) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// Add returns the component-wise sum of two positions.
func (p XY) Add(o XY) XY {
	return XY{X: p.X + o.X, Y: p.Y + o.Y}
}

// step returns p moved by (dx, dy), or false if either coordinate
// would become negative.
func (p XY) step(dx, dy int) (XY, bool) {
	x, y := p.X+dx, p.Y+dy
	if x < 0 || y < 0 {
		return XY{}, false
	}
	return XY{X: x, Y: y}, true
}

// Up returns the position one row above.
func (p XY) Up() (XY, bool) { return p.step(0, -1) }

// Down returns the position one row below.
func (p XY) Down() (XY, bool) { return p.step(0, 1) }

// Left returns the position one column to the left.
func (p XY) Left() (XY, bool) { return p.step(-1, 0) }

// Right returns the position one column to the right.
func (p XY) Right() (XY, bool) { return p.step(1, 0) }

var cardinalDirections = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

var allDirections = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// CardinalNeighbors returns the up, right, down and left neighbors that have
// non-negative coordinates.
func (p XY) CardinalNeighbors() []XY {
	out := make([]XY, 0, len(cardinalDirections))
	for _, d := range cardinalDirections {
		if n, ok := p.step(d[0], d[1]); ok {
			out = append(out, n)
		}
	}
	return out
}

// Neighbors returns all eight surrounding positions, including diagonals,
// that have non-negative coordinates.
func (p XY) Neighbors() []XY {
	out := make([]XY, 0, len(allDirections))
	for _, d := range allDirections {
		if n, ok := p.step(d[0], d[1]); ok {
			out = append(out, n)
		}
	}
	return out
}
