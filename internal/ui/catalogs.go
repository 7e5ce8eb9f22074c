package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/GiftPack/internal/model"
	"github.com/piwi3910/GiftPack/internal/project"
)

// showSaveCatalogDialog stores the current presents under a name.
func (a *App) showSaveCatalogDialog() {
	if len(a.presents) == 0 {
		dialog.ShowInformation("No presents", "Open an input file or import presents first.", a.window)
		return
	}

	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Catalog name")
	descEntry := widget.NewEntry()
	descEntry.SetPlaceHolder("Optional description")

	form := dialog.NewForm("Save Catalog", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Description", descEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			if nameEntry.Text == "" {
				dialog.ShowError(fmt.Errorf("catalog name is required"), a.window)
				return
			}
			c := model.NewCatalog(nameEntry.Text, descEntry.Text, a.presents)
			if err := project.SaveCatalog(project.DefaultCatalogPath(), c); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.setStatus("Saved catalog %q with %d presents", c.Name, len(c.Presents))
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 200))
	form.Show()
}

// showLoadCatalogDialog replaces the presents with a saved catalog. Region
// counts are padded or trimmed to the new catalog length.
func (a *App) showLoadCatalogDialog() {
	store, err := project.LoadCatalogs(project.DefaultCatalogPath())
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	if len(store.Catalogs) == 0 {
		dialog.ShowInformation("No catalogs", "No catalogs have been saved yet.", a.window)
		return
	}

	names := store.Names()
	selector := widget.NewSelect(names, nil)
	selector.SetSelected(names[0])

	form := dialog.NewForm("Load Catalog", "Load", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Catalog", selector)},
		func(ok bool) {
			if !ok {
				return
			}
			c := store.FindByName(selector.Selected)
			if c == nil {
				return
			}
			a.pushHistory("Load Catalog")
			a.presents = c.Presents
			a.regions = resizeCounts(a.regions, len(a.presents))
			a.result = nil
			a.refreshPresentsList()
			a.refreshRegionsList()
			a.refreshResults()
			a.setStatus("Loaded catalog %q", c.Name)
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 160))
	form.Show()
}
