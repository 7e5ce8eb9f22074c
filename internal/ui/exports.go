package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/piwi3910/GiftPack/internal/export"
	"github.com/piwi3910/GiftPack/internal/model"
	"github.com/piwi3910/GiftPack/internal/project"
)

// dxfCellSize is the side of one grid cell in DXF drawing units.
const dxfCellSize = 10.0

// ExportFormats lists the formats that can be written after every solve.
var ExportFormats = []string{"pdf", "labels", "xlsx", "dxf", "json"}

// exportTarget returns where format is written for the given input file.
// An empty dir places the export next to the input.
func exportTarget(dir, input, format string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if base == "" || base == "." {
		base = "giftpack"
	}
	if dir == "" {
		dir = filepath.Dir(input)
	}

	var name string
	switch format {
	case "labels":
		name = base + "-labels.pdf"
	default:
		name = base + "." + format
	}
	return filepath.Join(dir, name)
}

// solvedRun bundles everything an export may need.
type solvedRun struct {
	input    string
	problem  model.Problem
	settings model.SolverSettings
	result   model.SolveResult
}

// writeExport writes one export format to path.
func writeExport(format, path string, run solvedRun) error {
	switch format {
	case "pdf":
		return export.ExportPDF(path, run.result)
	case "labels":
		return export.ExportLabels(path, run.result)
	case "xlsx":
		return export.ExportExcel(path, run.result)
	case "dxf":
		return export.ExportDXF(path, run.result, dxfCellSize)
	case "json":
		return project.SaveResult(path, run.input, run.problem, run.settings, run.result)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// autoExport writes every configured format and returns the written paths.
// It stops at the first failure.
func autoExport(cfg model.AppConfig, run solvedRun) ([]string, error) {
	var written []string
	for _, format := range cfg.ExportFormats {
		path := exportTarget(cfg.ExportDir, run.input, format)
		if err := writeExport(format, path, run); err != nil {
			return written, fmt.Errorf("export %s: %w", format, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// resizeCounts adapts region count lists to a catalog of n presents,
// padding with zeros or dropping trailing counts.
func resizeCounts(regions []model.Region, n int) []model.Region {
	out := copyRegions(regions)
	for i := range out {
		counts := make([]int, n)
		copy(counts, out[i].PresentCount)
		out[i].PresentCount = counts
	}
	return out
}
