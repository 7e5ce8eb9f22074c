package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/GiftPack/internal/engine"
	"github.com/piwi3910/GiftPack/internal/model"
)

// buildTestResult solves a small problem with one region that fits and one
// that does not.
func buildTestResult(t *testing.T) model.SolveResult {
	t.Helper()
	catalog := []model.Present{
		model.MustParsePresent("##", "##"),
		model.MustParsePresent("#.", "##"),
	}
	catalog[0].Index, catalog[0].Label = 0, "Box"
	catalog[1].Index, catalog[1].Label = 1, "Ell"

	problem, err := model.NewProblem(catalog, []model.Region{
		model.NewRegion(4, 4, []int{2, 2}),
		model.NewRegion(2, 2, []int{2, 0}),
	})
	if err != nil {
		t.Fatalf("NewProblem returned error: %v", err)
	}

	settings := model.DefaultSettings()
	settings.Workers = 1
	result, err := engine.New(settings).SolveProblem(context.Background(), problem)
	if err != nil {
		t.Fatalf("SolveProblem returned error: %v", err)
	}
	if !result.Regions[0].Solved || result.Regions[1].Solved {
		t.Fatalf("unexpected verdicts: %v, %v", result.Regions[0].Solved, result.Regions[1].Solved)
	}
	return result
}

func TestExportPDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test_output.pdf")

	if err := ExportPDF(path, buildTestResult(t)); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	// Three pages: two regions and the summary
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportPDF_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	err := ExportPDF(path, model.SolveResult{})
	if !errors.Is(err, ErrNothingToExport) {
		t.Fatalf("expected ErrNothingToExport, got %v", err)
	}
}

func TestExportPDF_ZeroSizedRegion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zero.pdf")
	result := model.SolveResult{
		Regions: []model.RegionResult{{Region: model.NewRegion(0, 3, nil), Solved: true}},
	}

	if err := ExportPDF(path, result); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
}

func TestExportPDF_ManyRegions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "many.pdf")

	base := buildTestResult(t)
	var result model.SolveResult
	for i := 0; i < 40; i++ {
		result.Regions = append(result.Regions, base.Regions[i%2])
	}

	if err := ExportPDF(path, result); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
}

func TestPlacementOwners(t *testing.T) {
	rr := buildTestResult(t).Regions[0]
	owner := placementOwners(rr)

	if len(owner) != rr.FilledCells() {
		t.Fatalf("expected %d owned cells, got %d", rr.FilledCells(), len(owner))
	}
	for i, p := range rr.Placements {
		for _, xy := range p.Cells {
			if owner[xy] != i {
				t.Errorf("cell %s owned by %d, want %d", xy, owner[xy], i)
			}
		}
	}
}
