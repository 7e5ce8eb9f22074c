package ui

import (
	"fmt"
	"slices"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/GiftPack/internal/model"
	"github.com/piwi3910/GiftPack/internal/project"
)

// showSettingsDialog displays the application settings editor.
func (a *App) showSettingsDialog() {
	cfg := a.config
	cfg.ExportFormats = slices.Clone(cfg.ExportFormats)

	workersEntry := widget.NewEntry()
	workersEntry.SetText(strconv.Itoa(cfg.DefaultWorkers))
	workersEntry.OnChanged = func(text string) {
		if v, err := strconv.Atoi(text); err == nil {
			cfg.DefaultWorkers = v
		}
	}

	orderSelect := widget.NewSelect([]string{string(model.QueueCatalog), string(model.QueueLargestFirst)}, func(selected string) {
		cfg.DefaultQueueOrder = model.QueueOrder(selected)
	})
	orderSelect.SetSelected(string(cfg.DefaultQueueOrder))

	precheck := widget.NewCheck("", func(b bool) { cfg.DefaultAreaPrecheck = b })
	precheck.SetChecked(cfg.DefaultAreaPrecheck)
	dedup := widget.NewCheck("", func(b bool) { cfg.DefaultDedupOrientations = b })
	dedup.SetChecked(cfg.DefaultDedupOrientations)

	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	exportDir := widget.NewEntry()
	exportDir.SetPlaceHolder("Next to the input file")
	exportDir.SetText(cfg.ExportDir)
	exportDir.OnChanged = func(text string) { cfg.ExportDir = text }

	formats := widget.NewCheckGroup(ExportFormats, func(selected []string) {
		cfg.ExportFormats = selected
	})
	formats.Horizontal = true
	formats.SetSelected(cfg.ExportFormats)

	formItems := []*widget.FormItem{
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Default Parallel Regions", workersEntry),
		widget.NewFormItem("Default Placement Order", orderSelect),
		widget.NewFormItem("Default Area Precheck", precheck),
		widget.NewFormItem("Default Skip Symmetric Orientations", dedup),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Export After Solve", formats),
		widget.NewFormItem("Export Directory", exportDir),
	}

	d := dialog.NewForm("Settings", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			if cfg.DefaultWorkers < 1 {
				dialog.ShowError(fmt.Errorf("parallel regions must be at least 1"), a.window)
				return
			}
			a.applyConfig(cfg)
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
			} else {
				dialog.ShowInformation("Settings Saved", "Application settings have been saved.", a.window)
			}
		},
		a.window,
	)
	d.Resize(fyne.NewSize(560, 480))
	d.Show()
}

// applyConfig makes cfg current: its theme, and its solver defaults for the
// next run.
func (a *App) applyConfig(cfg model.AppConfig) {
	a.config = cfg
	a.theme.SetVariantName(cfg.Theme)
	a.app.Settings().SetTheme(a.theme)
	cfg.ApplyToSettings(&a.settings)
	a.SetupMenus()
}

// showImportExportDialog displays the import/export data dialog.
func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		catalogs, err := project.LoadCatalogs(project.DefaultCatalogPath())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			writer.Close()
			path := writer.URI().Path()
			if err := project.ExportAllData(path, a.config, catalogs); err != nil {
				dialog.ShowError(err, a.window)
			} else {
				dialog.ShowInformation("Export Complete",
					fmt.Sprintf("Settings and %d catalogs exported to:\n%s", len(catalogs.Catalogs), path), a.window)
			}
		}, a.window)
		d.SetFileName("giftpack-backup.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import All Data...", func() {
		dialog.ShowConfirm("Import Data",
			"Importing data will replace your settings and saved catalogs.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					defer reader.Close()
					backup, err := project.ImportAllData(reader.URI().Path())
					if err != nil {
						dialog.ShowError(err, a.window)
						return
					}
					a.applyConfig(backup.Config)
					if err := a.saveConfig(); err != nil {
						dialog.ShowError(fmt.Errorf("failed to save imported settings: %w", err), a.window)
						return
					}
					if err := project.SaveCatalogs(project.DefaultCatalogPath(), backup.Catalogs); err != nil {
						dialog.ShowError(fmt.Errorf("failed to save imported catalogs: %w", err), a.window)
						return
					}
					dialog.ShowInformation("Import Complete",
						fmt.Sprintf("Data imported successfully from backup created at %s.", backup.CreatedAt), a.window)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export settings and saved catalogs to a backup file,\nor import from a previously exported backup."),
		widget.NewSeparator(),
		exportBtn,
		widget.NewSeparator(),
		importBtn,
	)

	d := dialog.NewCustom("Import / Export Data", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 250))
	d.Show()
}

// saveConfig persists the current app config to disk.
func (a *App) saveConfig() error {
	return project.SaveAppConfig(project.DefaultConfigPath(), a.config)
}
