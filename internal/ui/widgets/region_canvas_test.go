package widgets

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/piwi3910/GiftPack/internal/model"
)

func TestBuildRegionSizeBreakdown(t *testing.T) {
	result := &model.SolveResult{
		Regions: []model.RegionResult{
			{Region: model.NewRegion(4, 4, nil), Solved: true},
			{Region: model.NewRegion(2, 2, nil)},
			{Region: model.NewRegion(4, 4, nil)},
		},
	}

	assert.Equal(t, []string{
		"  4 x 4: 2 region(s), 1 packed",
		"  2 x 2: 1 region(s), 0 packed",
	}, BuildRegionSizeBreakdown(result))
}

func TestBuildRegionSizeBreakdown_Empty(t *testing.T) {
	assert.Nil(t, BuildRegionSizeBreakdown(nil))
	assert.Nil(t, BuildRegionSizeBreakdown(&model.SolveResult{}))
}

func TestRegionCanvas_CellSize(t *testing.T) {
	rc := &RegionCanvas{region: model.RegionResult{Region: model.NewRegion(10, 5, nil)}, maxWidth: 600, maxHeight: 400}
	assert.Equal(t, float32(60), rc.cellSize())

	tall := &RegionCanvas{region: model.RegionResult{Region: model.NewRegion(2, 20, nil)}, maxWidth: 600, maxHeight: 400}
	assert.Equal(t, float32(20), tall.cellSize())

	empty := &RegionCanvas{region: model.RegionResult{Region: model.NewRegion(0, 3, nil)}, maxWidth: 600, maxHeight: 400}
	assert.Equal(t, float32(0), empty.cellSize())
}

func TestPresentColor_Cycles(t *testing.T) {
	assert.Equal(t, PresentColor(0), PresentColor(len(presentColors)))
	assert.NotEqual(t, PresentColor(0), PresentColor(1))
}
