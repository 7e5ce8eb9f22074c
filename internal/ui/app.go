package ui

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/GiftPack/internal/engine"
	"github.com/piwi3910/GiftPack/internal/importer"
	"github.com/piwi3910/GiftPack/internal/model"
	"github.com/piwi3910/GiftPack/internal/project"
	"github.com/piwi3910/GiftPack/internal/ui/widgets"
)

// App holds all application state and UI references.
type App struct {
	app     fyne.App
	window  fyne.Window
	config  model.AppConfig
	theme   *GiftPackTheme
	history *History
	tabs    *container.AppTabs

	inputPath string
	presents  []model.Present
	regions   []model.Region
	settings  model.SolverSettings
	result    *model.SolveResult
	solving   bool

	// UI references for dynamic updates
	presentsContainer *fyne.Container
	regionsContainer  *fyne.Container
	resultContainer   *fyne.Container
	status            *widget.Label
}

// NewApp loads the saved configuration and applies its theme.
func NewApp(application fyne.App, window fyne.Window) *App {
	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		log.Printf("Failed to load config, using defaults: %v", err)
		cfg = model.DefaultAppConfig()
	}

	settings := model.DefaultSettings()
	cfg.ApplyToSettings(&settings)

	a := &App{
		app:      application,
		window:   window,
		config:   cfg,
		theme:    NewGiftPackTheme(cfg.Theme),
		history:  NewHistory(),
		settings: settings,
	}
	application.Settings().SetTheme(a.theme)
	return a
}

// SetupMenus creates the native menu bar. It is called again whenever the
// recent inputs change.
func (a *App) SetupMenus() {
	recentItems := make([]*fyne.MenuItem, 0, len(a.config.RecentInputs))
	for _, path := range a.config.RecentInputs {
		recentItems = append(recentItems, fyne.NewMenuItem(path, func() {
			a.OpenInput(path)
		}))
	}
	recent := fyne.NewMenuItem("Open Recent", nil)
	recent.ChildMenu = fyne.NewMenu("", recentItems...)
	recent.Disabled = len(recentItems) == 0

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Input...", a.showOpenInput),
		recent,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Regions from CSV...", func() {
			a.importRegions(importer.ImportRegionsCSV, ".csv", ".txt")
		}),
		fyne.NewMenuItem("Import Regions from Excel...", func() {
			a.importRegions(importer.ImportRegionsExcel, ".xlsx", ".xls")
		}),
		fyne.NewMenuItem("Import Presents from DXF...", a.importPresentsDXF),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Open Result Archive...", a.openArchive),
		fyne.NewMenuItem("Save Result Archive...", func() { a.exportAs("json") }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PDF...", func() { a.exportAs("pdf") }),
		fyne.NewMenuItem("Export Labels...", func() { a.exportAs("labels") }),
		fyne.NewMenuItem("Export Excel...", func() { a.exportAs("xlsx") }),
		fyne.NewMenuItem("Export DXF...", func() { a.exportAs("dxf") }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", a.undo),
		fyne.NewMenuItem("Redo", a.redo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear All Regions", func() {
			a.pushHistory("Clear Regions")
			a.regions = nil
			a.refreshRegionsList()
		}),
	)

	catalogMenu := fyne.NewMenu("Catalog",
		fyne.NewMenuItem("Save Presents as Catalog...", a.showSaveCatalogDialog),
		fyne.NewMenuItem("Load Catalog...", a.showLoadCatalogDialog),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Solve", a.runSolve),
		fyne.NewMenuItem("Compare Strategies", a.runCompare),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings...", a.showSettingsDialog),
		fyne.NewMenuItem("Import / Export Data...", a.showImportExportDialog),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, catalogMenu, toolsMenu, helpMenu))
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About GiftPack",
		"GiftPack - Present Packing Solver\n\n"+
			"Decides whether every region can hold its list of\n"+
			"polyomino presents and draws the packing it finds.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.tabs = container.NewAppTabs(
		container.NewTabItem("Presents", a.buildPresentsPanel()),
		container.NewTabItem("Regions", a.buildRegionsPanel()),
		container.NewTabItem("Settings", a.buildSettingsPanel()),
		container.NewTabItem("Results", a.buildResultsPanel()),
	)
	a.tabs.SetTabLocation(container.TabLocationTop)

	a.status = widget.NewLabel("Open an input file to begin.")
	solveBtn := widget.NewButtonWithIcon("Solve", theme.MediaPlayIcon(), a.runSolve)
	solveBtn.Importance = widget.HighImportance

	return container.NewBorder(nil,
		container.NewHBox(a.status, layout.NewSpacer(), solveBtn),
		nil, nil, a.tabs)
}

func (a *App) setStatus(format string, args ...any) {
	a.status.SetText(fmt.Sprintf(format, args...))
}

// ─── History ───────────────────────────────────────────────

func (a *App) pushHistory(label string) {
	a.history.Push(MakeSnapshot(a.presents, a.regions, label))
}

func (a *App) restore(s Snapshot) {
	a.presents = s.Presents
	a.regions = s.Regions
	a.refreshPresentsList()
	a.refreshRegionsList()
}

func (a *App) undo() {
	if s, ok := a.history.Undo(MakeSnapshot(a.presents, a.regions, "")); ok {
		a.restore(s)
		a.setStatus("Undid %s", s.Label)
	}
}

func (a *App) redo() {
	if s, ok := a.history.Redo(MakeSnapshot(a.presents, a.regions, "")); ok {
		a.restore(s)
	}
}

// ─── Presents Panel ────────────────────────────────────────

func (a *App) buildPresentsPanel() fyne.CanvasObject {
	a.presentsContainer = container.NewGridWrap(fyne.NewSize(140, 140))
	a.refreshPresentsList()

	return container.NewBorder(
		widget.NewLabelWithStyle("Present Catalog", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		nil, nil, nil,
		container.NewVScroll(a.presentsContainer),
	)
}

func (a *App) refreshPresentsList() {
	a.presentsContainer.RemoveAll()

	if len(a.presents) == 0 {
		a.presentsContainer.Add(widget.NewLabel("No presents loaded."))
		return
	}

	for i, p := range a.presents {
		shape := widget.NewLabelWithStyle(p.String(), fyne.TextAlignCenter, fyne.TextStyle{Monospace: true})
		title := p.Label
		if title == "" {
			title = fmt.Sprintf("Present %d", i)
		}
		a.presentsContainer.Add(widget.NewCard(title, fmt.Sprintf("%d cells", p.CellCount()), shape))
	}
}

// ─── Regions Panel ─────────────────────────────────────────

func (a *App) buildRegionsPanel() fyne.CanvasObject {
	a.regionsContainer = container.NewVBox()
	a.refreshRegionsList()

	addBtn := widget.NewButtonWithIcon("Add Region", theme.ContentAddIcon(), func() {
		a.showRegionDialog(-1)
	})

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Regions", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			addBtn,
		),
		nil, nil, nil,
		container.NewVScroll(a.regionsContainer),
	)
}

func (a *App) refreshRegionsList() {
	a.regionsContainer.RemoveAll()

	if len(a.regions) == 0 {
		a.regionsContainer.Add(widget.NewLabel("No regions defined. Open an input file or click 'Add Region'."))
		return
	}

	bold := fyne.TextStyle{Bold: true}
	a.regionsContainer.Add(container.NewGridWithColumns(5,
		widget.NewLabelWithStyle("Size", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Counts", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Presents", fyne.TextAlignLeading, bold),
		widget.NewLabel(""),
		widget.NewLabel(""),
	))
	a.regionsContainer.Add(widget.NewSeparator())

	for i := range a.regions {
		idx := i
		r := a.regions[idx]
		a.regionsContainer.Add(container.NewGridWithColumns(5,
			widget.NewLabel(r.Label),
			widget.NewLabel(formatCounts(r.PresentCount)),
			widget.NewLabel(strconv.Itoa(r.TotalPresents())),
			widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
				a.showRegionDialog(idx)
			}),
			widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
				a.pushHistory("Delete Region")
				a.regions = append(a.regions[:idx], a.regions[idx+1:]...)
				a.refreshRegionsList()
			}),
		))
	}
}

func formatCounts(counts []int) string {
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, " ")
}

// showRegionDialog adds a region when idx is negative, otherwise edits
// region idx.
func (a *App) showRegionDialog(idx int) {
	sizeEntry := widget.NewEntry()
	sizeEntry.SetPlaceHolder("WxH, e.g. 12x5")
	countsEntry := widget.NewEntry()
	countsEntry.SetPlaceHolder("One count per present")

	title, confirm := "Add Region", "Add"
	if idx >= 0 {
		r := a.regions[idx]
		title, confirm = "Edit Region", "Save"
		sizeEntry.SetText(fmt.Sprintf("%dx%d", r.Width, r.Height))
		countsEntry.SetText(formatCounts(r.PresentCount))
	} else {
		countsEntry.SetText(formatCounts(make([]int, len(a.presents))))
	}

	form := dialog.NewForm(title, confirm, "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Size", sizeEntry),
			widget.NewFormItem("Counts", countsEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			region, err := importer.ParseRegion(sizeEntry.Text+": "+countsEntry.Text, len(a.presents))
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.pushHistory(title)
			if idx >= 0 {
				region.ID = a.regions[idx].ID
				a.regions[idx] = region
			} else {
				a.regions = append(a.regions, region)
			}
			a.refreshRegionsList()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 220))
	form.Show()
}

// ─── Settings Panel ────────────────────────────────────────

func (a *App) buildSettingsPanel() fyne.CanvasObject {
	s := &a.settings

	workersEntry := widget.NewEntry()
	workersEntry.SetText(strconv.Itoa(s.Workers))
	workersEntry.OnChanged = func(text string) {
		if v, err := strconv.Atoi(text); err == nil && v > 0 {
			s.Workers = v
		}
	}

	orderSelect := widget.NewSelect([]string{string(model.QueueCatalog), string(model.QueueLargestFirst)}, func(selected string) {
		s.QueueOrder = model.QueueOrder(selected)
	})
	orderSelect.SetSelected(string(s.QueueOrder))

	precheck := widget.NewCheck("", func(b bool) { s.AreaPrecheck = b })
	precheck.SetChecked(s.AreaPrecheck)
	dedup := widget.NewCheck("", func(b bool) { s.DedupOrientations = b })
	dedup.SetChecked(s.DedupOrientations)

	solverSection := widget.NewCard("Solver", "Every option keeps the packed / not packed verdict",
		container.NewGridWithColumns(2,
			widget.NewLabel("Parallel Regions"), workersEntry,
			widget.NewLabel("Placement Order"), orderSelect,
			widget.NewLabel("Reject Regions Smaller Than Their Presents"), precheck,
			widget.NewLabel("Skip Symmetric Orientations"), dedup,
		))

	return container.NewVScroll(container.NewVBox(solverSection))
}

// ─── Results Panel ─────────────────────────────────────────

func (a *App) buildResultsPanel() fyne.CanvasObject {
	a.resultContainer = container.NewStack(widgets.RenderRegionResults(nil))
	return a.resultContainer
}

func (a *App) refreshResults() {
	a.resultContainer.RemoveAll()
	a.resultContainer.Add(widgets.RenderRegionResults(a.result))
	a.resultContainer.Refresh()
}

// ─── Actions ───────────────────────────────────────────────

func (a *App) showOpenInput() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.OpenInput(reader.URI().Path())
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".txt", ".in"}))
	d.Show()
}

// OpenInput parses the puzzle file at path and shows its presents and
// regions. The file is added to the recent inputs.
func (a *App) OpenInput(path string) {
	parsed, err := importer.ParseProblemFile(path)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	if len(parsed.Errors) > 0 {
		dialog.ShowError(fmt.Errorf("%d region lines were skipped:\n\n%s",
			len(parsed.Errors), strings.Join(parsed.Errors, "\n")), a.window)
	}
	for _, w := range parsed.Warnings {
		log.Printf("Input warning: %s", w)
	}

	a.pushHistory("Open Input")
	a.inputPath = path
	a.presents = parsed.Problem.Presents
	a.regions = parsed.Problem.Regions
	a.result = nil
	a.refreshPresentsList()
	a.refreshRegionsList()
	a.refreshResults()
	a.setStatus("Loaded %d presents and %d regions from %s", len(a.presents), len(a.regions), path)

	a.config.AddRecentInput(path)
	if err := a.saveConfig(); err != nil {
		log.Printf("Failed to save recent inputs: %v", err)
	}
	a.SetupMenus()
}

func (a *App) problem() (model.Problem, error) {
	if len(a.presents) == 0 {
		return model.Problem{}, fmt.Errorf("no presents loaded")
	}
	return model.NewProblem(copyPresents(a.presents), copyRegions(a.regions))
}

// runSolve solves every region off the UI goroutine and shows the result.
func (a *App) runSolve() {
	if a.solving {
		return
	}
	problem, err := a.problem()
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	a.solving = true
	a.setStatus("Solving %d regions...", len(problem.Regions))
	settings := a.settings
	input := a.inputPath

	go func() {
		result, err := engine.New(settings).SolveProblem(context.Background(), problem)
		fyne.Do(func() {
			a.solving = false
			if err != nil {
				dialog.ShowError(err, a.window)
				a.setStatus("Solve failed")
				return
			}
			a.result = &result
			a.refreshResults()
			a.tabs.SelectIndex(3)
			a.setStatus("Packed %d of %d regions in %s", result.SolvedCount(), len(result.Regions), result.Elapsed)

			written, err := autoExport(a.config, solvedRun{input: input, problem: problem, settings: settings, result: result})
			if err != nil {
				dialog.ShowError(err, a.window)
			}
			if len(written) > 0 {
				log.Printf("Exported %s", strings.Join(written, ", "))
			}
		})
	}()
}

func (a *App) runCompare() {
	problem, err := a.problem()
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.setStatus("Comparing strategies...")
	scenarios := engine.BuildDefaultScenarios(a.settings)

	go func() {
		results, err := engine.CompareStrategies(context.Background(), scenarios, problem)
		fyne.Do(func() {
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.setStatus("Compared %d strategies", len(results))
			a.showComparison(results)
		})
	}()
}

func (a *App) showComparison(results []engine.ComparisonResult) {
	bold := fyne.TextStyle{Bold: true}
	grid := container.NewGridWithColumns(4,
		widget.NewLabelWithStyle("Strategy", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Packed", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Search Nodes", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Time", fyne.TextAlignLeading, bold),
	)
	for _, r := range results {
		grid.Add(widget.NewLabel(r.Scenario.Name))
		grid.Add(widget.NewLabel(fmt.Sprintf("%d/%d", r.SolvedCount, len(r.Result.Regions))))
		grid.Add(widget.NewLabel(strconv.FormatInt(r.Nodes, 10)))
		grid.Add(widget.NewLabel(r.Elapsed.String()))
	}

	d := dialog.NewCustom("Strategy Comparison", "Close", grid, a.window)
	d.Resize(fyne.NewSize(600, 300))
	d.Show()
}

// ─── Import Functions ──────────────────────────────────────

func (a *App) importRegions(load func(path string, presents int) importer.ImportResult, exts ...string) {
	if len(a.presents) == 0 {
		dialog.ShowInformation("No presents", "Open an input file or load a catalog first.", a.window)
		return
	}
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		result := load(reader.URI().Path(), len(a.presents))
		if !a.reportImport(result) || len(result.Regions) == 0 {
			return
		}
		a.pushHistory("Import Regions")
		a.regions = result.Regions
		a.refreshRegionsList()
		dialog.ShowInformation("Import Complete",
			fmt.Sprintf("Imported %d regions.", len(result.Regions)), a.window)
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter(exts))
	d.Show()
}

func (a *App) importPresentsDXF() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		result := importer.ImportPresentsDXF(reader.URI().Path(), dxfCellSize)
		if !a.reportImport(result) || len(result.Presents) == 0 {
			return
		}
		a.pushHistory("Import Presents")
		a.presents = result.Presents
		a.regions = resizeCounts(a.regions, len(a.presents))
		a.result = nil
		a.refreshPresentsList()
		a.refreshRegionsList()
		a.refreshResults()
		dialog.ShowInformation("Import Complete",
			fmt.Sprintf("Imported %d presents.", len(result.Presents)), a.window)
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".dxf"}))
	d.Show()
}

// reportImport shows import errors and logs warnings. It returns false when
// nothing usable was imported.
func (a *App) reportImport(result importer.ImportResult) bool {
	for _, w := range result.Warnings {
		log.Printf("Import warning: %s", w)
	}
	if len(result.Errors) > 0 {
		dialog.ShowError(fmt.Errorf("errors encountered during import:\n\n%s",
			strings.Join(result.Errors, "\n")), a.window)
	}
	return len(result.Regions) > 0 || len(result.Presents) > 0
}

// ─── Archives and Exports ──────────────────────────────────

func (a *App) openArchive() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		archive, err := project.LoadResult(reader.URI().Path())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.pushHistory("Open Archive")
		a.inputPath = archive.Input
		a.presents = archive.Presents
		a.regions = make([]model.Region, len(archive.Result.Regions))
		for i, rr := range archive.Result.Regions {
			a.regions[i] = rr.Region
		}
		a.result = &archive.Result
		a.refreshPresentsList()
		a.refreshRegionsList()
		a.refreshResults()
		a.tabs.SelectIndex(3)
		a.setStatus("Loaded run %s from %s", archive.Result.RunID, archive.CreatedAt)
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	d.Show()
}

// exportAs asks for a destination and writes the current result in format.
func (a *App) exportAs(format string) {
	if a.result == nil || len(a.result.Regions) == 0 {
		dialog.ShowInformation("No results", "Solve the problem before exporting.", a.window)
		return
	}
	problem, err := a.problem()
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	run := solvedRun{input: a.inputPath, problem: problem, settings: a.settings, result: *a.result}

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if err := writeExport(format, path, run); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Saved to %s", path), a.window)
	}, a.window)
	d.SetFileName(filepath.Base(exportTarget("", a.inputPath, format)))
	d.Show()
}
