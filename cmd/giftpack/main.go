// GiftPack: present packing solver
//
// Reads a puzzle input of polyomino presents and rectangular regions,
// decides for every region whether its presents can all be placed without
// overlap, and prints how many regions can be packed.
//
// Usage:
//   giftpack [flags] input.txt
//   giftpack -print -pdf layouts.pdf input.txt
//   giftpack -regions-csv regions.csv -xlsx result.xlsx input.txt
//
// Build:
//   go build -o giftpack ./cmd/giftpack

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/piwi3910/GiftPack/internal/engine"
	"github.com/piwi3910/GiftPack/internal/export"
	"github.com/piwi3910/GiftPack/internal/importer"
	"github.com/piwi3910/GiftPack/internal/model"
	"github.com/piwi3910/GiftPack/internal/project"
)

type options struct {
	input       string
	configPath  string
	workers     int
	order       string
	print       bool
	verbose     bool
	compare     bool
	pdf         string
	labels      string
	xlsx        string
	dxf         string
	dxfCell     float64
	json        string
	regionsCSV  string
	regionsXLSX string
	catalog     string
	saveCatalog string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("giftpack", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", project.DefaultConfigPath(), "application config file")
	fs.IntVar(&o.workers, "workers", 0, "regions solved in parallel (0 uses the config default)")
	fs.StringVar(&o.order, "order", "", "placement order: catalog or largest-first (empty uses the config default)")
	fs.BoolVar(&o.print, "print", false, "print the packed grid of every solved region")
	fs.BoolVar(&o.verbose, "v", false, "log solver progress to stderr")
	fs.BoolVar(&o.compare, "compare", false, "compare solver strategies on the input")
	fs.StringVar(&o.pdf, "pdf", "", "write region layouts to this PDF")
	fs.StringVar(&o.labels, "labels", "", "write QR placement labels to this PDF")
	fs.StringVar(&o.xlsx, "xlsx", "", "write the result workbook to this file")
	fs.StringVar(&o.dxf, "dxf", "", "write packed regions to this DXF drawing")
	fs.Float64Var(&o.dxfCell, "dxf-cell", 10, "DXF drawing units per grid cell")
	fs.StringVar(&o.json, "json", "", "write a result archive to this file")
	fs.StringVar(&o.regionsCSV, "regions-csv", "", "replace the input regions with those in this CSV file")
	fs.StringVar(&o.regionsXLSX, "regions-xlsx", "", "replace the input regions with those in this Excel file")
	fs.StringVar(&o.catalog, "catalog", "", "use the presents of this saved catalog instead of the input's")
	fs.StringVar(&o.saveCatalog, "save-catalog", "", "save the input presents as a catalog with this name")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: giftpack [flags] input.txt\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return o, errors.New("expected exactly one input file")
	}
	o.input = fs.Arg(0)
	return o, nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "giftpack: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := project.LoadAppConfig(o.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	settings := model.DefaultSettings()
	cfg.ApplyToSettings(&settings)
	if o.workers > 0 {
		settings.Workers = o.workers
	}
	if o.order != "" {
		settings.QueueOrder = model.QueueOrder(o.order)
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	problem, err := loadProblem(o, stderr)
	if err != nil {
		return err
	}

	var logger *log.Logger
	if o.verbose {
		logger = log.New(stderr, "", log.LstdFlags)
	}

	if o.compare {
		return compare(stdout, settings, problem)
	}

	solver := engine.New(settings)
	solver.Logger = logger
	result, err := solver.SolveProblem(context.Background(), problem)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Part 1: %d\n", result.SolvedCount())
	fmt.Fprintf(stdout, "Part 2: %d\n", 0)

	if o.print {
		for i, rr := range result.Regions {
			if !rr.Solved {
				continue
			}
			fmt.Fprintf(stdout, "\nRegion %d (%s):\n%s\n", i+1, rr.Region.Label, rr.Render())
		}
	}

	if err := writeExports(o, problem, settings, result); err != nil {
		return err
	}

	cfg.AddRecentInput(o.input)
	if err := project.SaveAppConfig(o.configPath, cfg); err != nil && logger != nil {
		logger.Printf("Failed to save config: %v", err)
	}
	return nil
}

// loadProblem parses the input and applies region and catalog overrides.
func loadProblem(o options, stderr io.Writer) (model.Problem, error) {
	parsed, err := importer.ParseProblemFile(o.input)
	if err != nil {
		return model.Problem{}, err
	}
	report(stderr, parsed.Errors, parsed.Warnings)

	presents := parsed.Problem.Presents
	regions := parsed.Problem.Regions
	catalogPath := project.DefaultCatalogPath()

	if o.saveCatalog != "" {
		if err := project.SaveCatalog(catalogPath, model.NewCatalog(o.saveCatalog, o.input, presents)); err != nil {
			return model.Problem{}, fmt.Errorf("save catalog: %w", err)
		}
	}
	if o.catalog != "" {
		c, ok, err := project.LoadCatalog(catalogPath, o.catalog)
		if err != nil {
			return model.Problem{}, fmt.Errorf("load catalog: %w", err)
		}
		if !ok {
			return model.Problem{}, fmt.Errorf("no catalog named %q", o.catalog)
		}
		presents = c.Presents
	}

	var imported *importer.ImportResult
	switch {
	case o.regionsCSV != "":
		r := importer.ImportRegionsCSV(o.regionsCSV, len(presents))
		imported = &r
	case o.regionsXLSX != "":
		r := importer.ImportRegionsExcel(o.regionsXLSX, len(presents))
		imported = &r
	}
	if imported != nil {
		report(stderr, imported.Errors, imported.Warnings)
		if len(imported.Regions) == 0 {
			return model.Problem{}, errors.New("no regions imported")
		}
		regions = imported.Regions
	}

	return model.NewProblem(presents, regions)
}

func report(w io.Writer, errs, warnings []string) {
	for _, e := range errs {
		fmt.Fprintf(w, "error: %s\n", e)
	}
	for _, m := range warnings {
		fmt.Fprintf(w, "warning: %s\n", m)
	}
}

func writeExports(o options, problem model.Problem, settings model.SolverSettings, result model.SolveResult) error {
	exports := []struct {
		path  string
		write func(string) error
	}{
		{o.pdf, func(p string) error { return export.ExportPDF(p, result) }},
		{o.labels, func(p string) error { return export.ExportLabels(p, result) }},
		{o.xlsx, func(p string) error { return export.ExportExcel(p, result) }},
		{o.dxf, func(p string) error { return export.ExportDXF(p, result, o.dxfCell) }},
		{o.json, func(p string) error { return project.SaveResult(p, o.input, problem, settings, result) }},
	}
	for _, e := range exports {
		if e.path == "" {
			continue
		}
		if err := e.write(e.path); err != nil {
			return fmt.Errorf("write %s: %w", e.path, err)
		}
	}
	return nil
}

func compare(w io.Writer, settings model.SolverSettings, problem model.Problem) error {
	results, err := engine.CompareStrategies(context.Background(), engine.BuildDefaultScenarios(settings), problem)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%-24s %8s %14s %12s\n", "Strategy", "Packed", "Nodes", "Time")
	for _, r := range results {
		fmt.Fprintf(w, "%-24s %4d/%-3d %14d %12s\n",
			r.Scenario.Name, r.SolvedCount, len(r.Result.Regions), r.Nodes, r.Elapsed.Round(time.Microsecond))
	}
	return nil
}
