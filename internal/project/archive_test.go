package project

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/GiftPack/internal/grid"
	"github.com/piwi3910/GiftPack/internal/model"
)

func testArchiveInputs(t *testing.T) (model.Problem, model.SolveResult) {
	t.Helper()
	presents := []model.Present{model.MustParsePresent("##", "##")}
	problem, err := model.NewProblem(presents, []model.Region{
		model.NewRegion(2, 2, []int{1}),
		model.NewRegion(1, 1, []int{1}),
	})
	require.NoError(t, err)

	result := model.SolveResult{
		RunID: "run-1",
		Regions: []model.RegionResult{
			{
				Region: problem.Regions[0],
				Solved: true,
				Placements: []model.Placement{{
					PresentIndex: 0,
					Orientation:  model.Identity,
					Width:        2,
					Height:       2,
					Cells:        []grid.XY{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
				}},
				RequiredCells: 4,
				Nodes:         2,
				Elapsed:       time.Millisecond,
			},
			{Region: problem.Regions[1], RequiredCells: 4},
		},
	}
	return problem, result
}

func TestSaveAndLoadResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs", "result.json")
	problem, result := testArchiveInputs(t)
	settings := model.DefaultSettings()
	settings.Workers = 2

	require.NoError(t, SaveResult(path, "day12.txt", problem, settings, result))

	archive, err := LoadResult(path)
	require.NoError(t, err)

	assert.Equal(t, ArchiveVersion, archive.Version)
	assert.NotEmpty(t, archive.CreatedAt)
	assert.Equal(t, "day12.txt", archive.Input)
	assert.Equal(t, settings, archive.Settings)
	require.Len(t, archive.Presents, 1)
	assert.True(t, archive.Presents[0].Equal(problem.Presents[0]))

	assert.Equal(t, "run-1", archive.Result.RunID)
	assert.Equal(t, 1, archive.Result.SolvedCount())
	require.Len(t, archive.Result.Regions, 2)
	assert.Equal(t, result.Regions[0].Render(), archive.Result.Regions[0].Render())
	assert.Equal(t, time.Millisecond, archive.Result.Regions[0].Elapsed)
}

func TestLoadResult_Invalid(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadResult(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json}"), 0644))
	_, err = LoadResult(bad)
	assert.Error(t, err)

	noVersion := filepath.Join(dir, "noversion.json")
	require.NoError(t, os.WriteFile(noVersion, []byte(`{"result":{"regions":[]}}`), 0644))
	_, err = LoadResult(noVersion)
	assert.ErrorIs(t, err, ErrMissingVersion)
}

func TestExportAndImportAllData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.Theme = "dark"
	cfg.DefaultWorkers = 6
	catalogs := model.NewCatalogStore()
	catalogs.Add(testCatalog("Tetris"))

	require.NoError(t, ExportAllData(path, cfg, catalogs))

	backup, err := ImportAllData(path)
	require.NoError(t, err)
	assert.Equal(t, ArchiveVersion, backup.Version)
	assert.NotEmpty(t, backup.CreatedAt)
	assert.Equal(t, "dark", backup.Config.Theme)
	assert.Equal(t, 6, backup.Config.DefaultWorkers)
	assert.Equal(t, []string{"Tetris"}, backup.Catalogs.Names())
}

func TestImportAllData_Invalid(t *testing.T) {
	dir := t.TempDir()

	_, err := ImportAllData(filepath.Join(dir, "nope.json"))
	assert.Error(t, err)

	noVersion := filepath.Join(dir, "noversion.json")
	require.NoError(t, os.WriteFile(noVersion, []byte(`{"config":{"theme":"dark"}}`), 0644))
	_, err = ImportAllData(noVersion)
	assert.ErrorIs(t, err, ErrMissingVersion)
}

func TestImportAllData_NormalizesLists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"1.0.0","config":{"theme":"light"}}`), 0644))

	backup, err := ImportAllData(path)
	require.NoError(t, err)
	assert.NotNil(t, backup.Config.RecentInputs)
	assert.NotNil(t, backup.Config.ExportFormats)
	assert.NotNil(t, backup.Catalogs.Catalogs)
}
