package engine

import (
	"bytes"
	"context"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/GiftPack/internal/grid"
	"github.com/piwi3910/GiftPack/internal/model"
)

func testSettings() model.SolverSettings {
	s := model.DefaultSettings()
	s.Workers = 2
	return s
}

func square() model.Present {
	return model.MustParsePresent("##", "##")
}

func tall() model.Present {
	return model.MustParsePresent("##", "##", "##")
}

func ell() model.Present {
	return model.MustParsePresent("#.", "##")
}

func column() model.Present {
	return model.MustParsePresent("#", "#", "#")
}

func bar() model.Present {
	return model.MustParsePresent("###")
}

// assertValidPacking checks that a solved region covers exactly the required
// cells, all in bounds, with no cell used twice.
func assertValidPacking(t *testing.T, rr model.RegionResult) {
	t.Helper()
	require.True(t, rr.Solved)
	assert.Len(t, rr.Placements, rr.Region.TotalPresents())

	seen := make(map[grid.XY]bool)
	for _, p := range rr.Placements {
		for _, xy := range p.Cells {
			assert.True(t, xy.X < rr.Region.Width && xy.Y < rr.Region.Height, "cell %s outside region", xy)
			assert.False(t, seen[xy], "cell %s covered twice", xy)
			seen[xy] = true
		}
	}
	assert.Equal(t, rr.RequiredCells, len(seen))
}

func TestSolve_TwoSquaresFillFourByFour(t *testing.T) {
	s := New(testSettings())
	rr := s.Solve(model.NewRegion(4, 4, []int{2}), []model.Present{square()})

	assertValidPacking(t, rr)
	assert.Equal(t, 8, rr.RequiredCells)
	assert.InDelta(t, 50.0, rr.Efficiency(), 0.01)
}

func TestSolve_TallPresentFitsThreeByThree(t *testing.T) {
	s := New(testSettings())
	rr := s.Solve(model.NewRegion(3, 3, []int{1}), []model.Present{tall()})

	assertValidPacking(t, rr)
	assert.Equal(t, model.Identity, rr.Placements[0].Orientation)
	assert.Equal(t, grid.NewXY(0, 0), rr.Placements[0].Offset)
}

func TestSolve_TwoSquaresDoNotFitTwoByTwo(t *testing.T) {
	catalog := []model.Present{square()}
	region := model.NewRegion(2, 2, []int{2})

	rr := New(testSettings()).Solve(region, catalog)
	assert.False(t, rr.Solved)
	assert.Empty(t, rr.Placements)
	assert.Zero(t, rr.Nodes, "area precheck should reject before searching")

	settings := testSettings()
	settings.AreaPrecheck = false
	rr = New(settings).Solve(region, catalog)
	assert.False(t, rr.Solved)
	assert.Empty(t, rr.Placements)
	assert.Greater(t, rr.Nodes, int64(1))
}

func TestSolve_AreaFitsButShapesDoNot(t *testing.T) {
	s := New(testSettings())

	rr := s.Solve(model.NewRegion(3, 3, []int{2}), []model.Present{square()})
	assert.False(t, rr.Solved)

	rr = s.Solve(model.NewRegion(2, 2, []int{1}), []model.Present{bar()})
	assert.False(t, rr.Solved)
	assert.Equal(t, int64(1), rr.Nodes)
}

func TestSolve_NeedsRotation(t *testing.T) {
	s := New(testSettings())
	rr := s.Solve(model.NewRegion(3, 2, []int{2}), []model.Present{ell()})

	assertValidPacking(t, rr)
	assert.InDelta(t, 100.0, rr.Efficiency(), 0.01)
	assert.NotEqual(t, rr.Placements[0].Orientation, rr.Placements[1].Orientation)
}

func TestSolve_VerticalBarInNarrowRegion(t *testing.T) {
	s := New(testSettings())
	rr := s.Solve(model.NewRegion(1, 3, []int{1}), []model.Present{bar()})

	assertValidPacking(t, rr)
	assert.Equal(t, model.Rotate90, rr.Placements[0].Orientation)
	assert.Equal(t, 1, rr.Placements[0].Width)
	assert.Equal(t, 3, rr.Placements[0].Height)
}

func TestSolve_NoPresentsIsSolved(t *testing.T) {
	s := New(testSettings())
	rr := s.Solve(model.NewRegion(3, 3, []int{0, 0}), []model.Present{square(), bar()})

	assert.True(t, rr.Solved)
	assert.Empty(t, rr.Placements)
	assert.Equal(t, int64(1), rr.Nodes)
}

func TestSolve_PlacementsFollowCatalogCounts(t *testing.T) {
	catalog := []model.Present{square(), bar(), ell()}
	for i := range catalog {
		catalog[i].Index = i
	}
	s := New(testSettings())
	rr := s.Solve(model.NewRegion(5, 5, []int{1, 2, 1}), catalog)

	assertValidPacking(t, rr)
	counts := make(map[int]int)
	for _, p := range rr.Placements {
		counts[p.PresentIndex]++
	}
	assert.Equal(t, map[int]int{0: 1, 1: 2, 2: 1}, counts)
	// Catalog order places presents in the order they were listed.
	assert.Equal(t, []int{0, 1, 1, 2}, []int{
		rr.Placements[0].PresentIndex,
		rr.Placements[1].PresentIndex,
		rr.Placements[2].PresentIndex,
		rr.Placements[3].PresentIndex,
	})
}

func TestSolve_LargestFirstOrder(t *testing.T) {
	catalog := []model.Present{bar(), square()}
	catalog[0].Index = 0
	catalog[1].Index = 1

	settings := testSettings()
	settings.QueueOrder = model.QueueLargestFirst
	rr := New(settings).Solve(model.NewRegion(4, 4, []int{1, 1}), catalog)

	assertValidPacking(t, rr)
	assert.Equal(t, 1, rr.Placements[0].PresentIndex)
	assert.Equal(t, 0, rr.Placements[1].PresentIndex)
}

func TestSolve_Deterministic(t *testing.T) {
	catalog := []model.Present{ell(), bar()}
	region := model.NewRegion(4, 3, []int{2, 2})
	s := New(testSettings())

	first := s.Solve(region, catalog)
	second := s.Solve(region, catalog)

	assertValidPacking(t, first)
	assert.Equal(t, first.Placements, second.Placements)
	assert.Equal(t, first.Nodes, second.Nodes)
}

func TestSolve_HeuristicsKeepVerdict(t *testing.T) {
	catalog := []model.Present{
		square(), ell(), bar(),
		model.MustParsePresent("#."),
		model.MustParsePresent("##.", "...", "..."),
	}
	regions := []model.Region{
		model.NewRegion(4, 4, []int{2, 1, 1, 0, 0}),
		model.NewRegion(3, 3, []int{2, 0, 0, 0, 0}),
		model.NewRegion(3, 2, []int{0, 2, 0, 0, 0}),
		model.NewRegion(2, 2, []int{0, 0, 1, 0, 0}),
		// Only the 1x2 rotations of the padded domino fit a 1x2 region.
		model.NewRegion(1, 2, []int{0, 0, 0, 2, 0}),
		model.NewRegion(2, 1, []int{0, 0, 0, 2, 0}),
		// The padded 3x3 box never fits a 2-row region in any orientation.
		model.NewRegion(4, 2, []int{0, 0, 0, 0, 1}),
		model.NewRegion(3, 3, []int{0, 0, 0, 2, 1}),
	}
	want := []bool{true, false, true, false, true, true, false, true}

	var verdicts [][]bool
	for _, scenario := range BuildDefaultScenarios(testSettings()) {
		s := New(scenario.Settings)
		var v []bool
		for _, r := range regions {
			v = append(v, s.Solve(r, catalog).Solved)
		}
		verdicts = append(verdicts, v)
	}
	require.NotEmpty(t, verdicts)
	for _, v := range verdicts {
		assert.Equal(t, want, v)
	}
}

func TestSolve_PaddedShapeNeedsRotatedBox(t *testing.T) {
	domino := model.MustParsePresent("#.")
	for _, dedup := range []bool{true, false} {
		settings := testSettings()
		settings.DedupOrientations = dedup
		rr := New(settings).Solve(model.NewRegion(1, 2, []int{2}), []model.Present{domino})
		assertValidPacking(t, rr)
	}
}

func TestSolve_OffsetsFollowOrientedBox(t *testing.T) {
	// A 1x3 box fits a 3x1 region only once rotated.
	rr := New(testSettings()).Solve(model.NewRegion(3, 1, []int{1}), []model.Present{column()})
	assertValidPacking(t, rr)
	assert.Equal(t, 3, rr.Placements[0].Width)
	assert.Equal(t, 1, rr.Placements[0].Height)
}

func TestSolveGrid_RespectsPrefilledCells(t *testing.T) {
	g := grid.New(2, 2, model.Empty)
	g.Set(grid.NewXY(1, 0), model.Filled)
	s := New(testSettings())

	placements, packed, ok := s.SolveGrid(g, []model.Present{ell()})
	require.True(t, ok)
	require.Len(t, placements, 1)
	for _, c := range packed.Cells() {
		assert.Equal(t, model.Filled, c.Value(), "cell %s", c.XY())
	}

	// The starting grid is left untouched.
	v, _ := g.At(grid.NewXY(0, 0))
	assert.Equal(t, model.Empty, v)

	_, _, ok = s.SolveGrid(g, []model.Present{square()})
	assert.False(t, ok)
}

func TestSolveProblem_ResultsInRegionOrder(t *testing.T) {
	catalog := []model.Present{square()}
	problem, err := model.NewProblem(catalog, []model.Region{
		model.NewRegion(4, 4, []int{2}),
		model.NewRegion(2, 2, []int{2}),
		model.NewRegion(3, 3, []int{1}),
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	s := New(testSettings())
	s.Logger = log.New(&buf, "", 0)

	result, err := s.SolveProblem(context.Background(), problem)
	require.NoError(t, err)
	require.Len(t, result.Regions, 3)
	assert.NotEmpty(t, result.RunID)

	assert.True(t, result.Regions[0].Solved)
	assert.False(t, result.Regions[1].Solved)
	assert.True(t, result.Regions[2].Solved)
	assert.Equal(t, 2, result.SolvedCount())
	for i, r := range result.Regions {
		assert.Equal(t, problem.Regions[i].ID, r.Region.ID)
	}

	out := buf.String()
	assert.Contains(t, out, "Solving region 4x4")
	assert.Contains(t, out, "3/3")
}

func TestSolveProblem_CancelledContext(t *testing.T) {
	problem, err := model.NewProblem([]model.Present{square()}, []model.Region{
		model.NewRegion(4, 4, []int{2}),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = New(testSettings()).SolveProblem(ctx, problem)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolveProblem_InvalidSettings(t *testing.T) {
	settings := testSettings()
	settings.Workers = 0

	_, err := New(settings).SolveProblem(context.Background(), model.Problem{})
	assert.Error(t, err)
}

func TestSolveProblem_EmptyProblem(t *testing.T) {
	result, err := New(testSettings()).SolveProblem(context.Background(), model.Problem{})
	require.NoError(t, err)
	assert.Empty(t, result.Regions)
	assert.Equal(t, 0, result.SolvedCount())
}
