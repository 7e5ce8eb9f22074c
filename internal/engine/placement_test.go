package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/GiftPack/internal/grid"
	"github.com/piwi3910/GiftPack/internal/model"
)

func TestOrientations_Dedup(t *testing.T) {
	tests := []struct {
		name    string
		present model.Present
		want    int
	}{
		{"square", square(), 1},
		{"bar", bar(), 2},
		{"ell", ell(), 4},
		{"tall", tall(), 2},
		{"s-tetromino", model.MustParsePresent(".##", "##."), 3},
		{"f-pentomino", model.MustParsePresent(".##", "##.", ".#."), 6},
		{"padded domino", model.MustParsePresent("#."), 4},
		{"padded corner", model.MustParsePresent("#.", ".."), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, Orientations(tt.present, true), tt.want)
			assert.Len(t, Orientations(tt.present, false), 6)
		})
	}
}

func TestOrientations_DedupKeepsDifferentBoxes(t *testing.T) {
	ops := Orientations(model.MustParsePresent("#."), true)
	var boxes []string
	for _, op := range ops {
		boxes = append(boxes, fmt.Sprintf("%s %dx%d", op.Orientation, op.Present.Width(), op.Present.Height()))
	}
	require.Len(t, ops, 4, "kept: %v", boxes)
	assert.Equal(t, model.Identity, ops[0].Orientation)
	assert.Equal(t, model.Rotate90, ops[1].Orientation)
	assert.Equal(t, 1, ops[1].Present.Width())
	assert.Equal(t, 2, ops[1].Present.Height())
}

func TestOrientations_FixedOrderFirstOccurrenceWins(t *testing.T) {
	ops := Orientations(bar(), true)
	require.Len(t, ops, 2)
	assert.Equal(t, model.Identity, ops[0].Orientation)
	assert.Equal(t, model.Rotate90, ops[1].Orientation)

	all := Orientations(ell(), false)
	for i, o := range model.AllOrientations {
		assert.Equal(t, o, all[i].Orientation)
	}
}

func TestOrientations_PreserveCellCount(t *testing.T) {
	shapes := []model.Present{
		square(), bar(), ell(), tall(),
		model.MustParsePresent("###", "#..", "#.."),
		model.MustParsePresent("#..", "...", "..#"),
	}
	for _, p := range shapes {
		for _, op := range Orientations(p, false) {
			assert.Equal(t, p.CellCount(), op.Present.CellCount(), "%s of\n%s", op.Orientation, p)
		}
	}
}

func TestOffsets(t *testing.T) {
	assert.Equal(t, []grid.XY{{0, 0}, {0, 1}, {1, 0}, {1, 1}}, Offsets(3, 2, 2, 1))
	assert.Equal(t, []grid.XY{{0, 0}}, Offsets(2, 2, 2, 2))
	assert.Empty(t, Offsets(2, 2, 3, 1))
	assert.Empty(t, Offsets(2, 2, 1, 3))
	assert.Len(t, Offsets(5, 4, 2, 3), 4*2)
}

func TestCanPlacePresent_MatchesCellState(t *testing.T) {
	g := grid.New(4, 3, model.Empty)
	g.Set(grid.NewXY(1, 1), model.Filled)
	g.Set(grid.NewXY(3, 0), model.Filled)

	for _, op := range Orientations(ell(), false) {
		p := op.Present
		for _, off := range Offsets(g.Width(), g.Height(), p.Width(), p.Height()) {
			want := true
			for _, xy := range p.OccupiedCells() {
				v, _ := g.At(xy.Add(off))
				if v != model.Empty {
					want = false
				}
			}
			assert.Equal(t, want, CanPlacePresent(g, p, off), "%s at %s", op.Orientation, off)
		}
	}
}

func TestCanPlacePresent_OutOfBoundsIsRejected(t *testing.T) {
	g := grid.New(2, 2, model.Empty)
	assert.False(t, CanPlacePresent(g, square(), grid.NewXY(1, 0)))
	assert.True(t, CanPlacePresent(g, square(), grid.NewXY(0, 0)))
}

func TestPlacePresent(t *testing.T) {
	g := grid.New(3, 3, model.Empty)
	cells := PlacePresent(g, ell(), grid.NewXY(1, 1))

	assert.Equal(t, []grid.XY{{1, 1}, {1, 2}, {2, 2}}, cells)
	assert.Equal(t, "...\n.#.\n.##\n", g.String())
	assert.False(t, CanPlacePresent(g, square(), grid.NewXY(1, 1)))
}

func TestPlacePresent_OutOfBoundsPanics(t *testing.T) {
	g := grid.New(2, 2, model.Empty)
	assert.Panics(t, func() {
		PlacePresent(g, bar(), grid.NewXY(0, 0))
	})
}
