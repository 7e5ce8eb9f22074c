package model

import (
	"testing"

	"github.com/piwi3910/GiftPack/internal/grid"
	"github.com/stretchr/testify/assert"
)

func twoSquaresResult() RegionResult {
	return RegionResult{
		Region: NewRegion(4, 2, []int{2}),
		Solved: true,
		Placements: []Placement{
			{PresentIndex: 0, Offset: grid.NewXY(0, 0), Width: 2, Height: 2,
				Cells: []grid.XY{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}},
			{PresentIndex: 0, Offset: grid.NewXY(2, 0), Width: 2, Height: 2,
				Cells: []grid.XY{{X: 2, Y: 0}, {X: 3, Y: 0}, {X: 2, Y: 1}}},
		},
	}
}

func TestRegionResult_Render(t *testing.T) {
	rr := twoSquaresResult()
	assert.Equal(t, "AABB\nAAB.\n", rr.Render())
	assert.Equal(t, "####\n###.\n", rr.Grid().String())
}

func TestRegionResult_Efficiency(t *testing.T) {
	rr := twoSquaresResult()
	assert.Equal(t, 7, rr.FilledCells())
	assert.InDelta(t, 87.5, rr.Efficiency(), 0.001)
	assert.Contains(t, rr.Summary(), "packed 2 presents")

	empty := RegionResult{Region: NewRegion(0, 0, nil)}
	assert.Equal(t, 0.0, empty.Efficiency())
	assert.Contains(t, empty.Summary(), "no placement")
}

func TestSolveResult_Counts(t *testing.T) {
	solved := twoSquaresResult()
	solved.Nodes = 5
	failed := RegionResult{Region: NewRegion(2, 2, []int{2}), Nodes: 3}

	sr := SolveResult{Regions: []RegionResult{solved, failed}}
	assert.Equal(t, 1, sr.SolvedCount())
	assert.Len(t, sr.Solved(), 1)
	assert.Equal(t, int64(8), sr.TotalNodes())
	assert.InDelta(t, 87.5, sr.TotalEfficiency(), 0.001)
	assert.Equal(t, 0.0, SolveResult{}.TotalEfficiency())
}

func TestPlacementLetter_Cycles(t *testing.T) {
	assert.Equal(t, byte('A'), PlacementLetter(0))
	assert.Equal(t, byte('a'), PlacementLetter(26))
	assert.Equal(t, byte('A'), PlacementLetter(52))
}
