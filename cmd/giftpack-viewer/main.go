// GiftPack Viewer: desktop front end for the present packing solver
//
// Opens a puzzle input, solves every region in the background and draws
// the packing found for each one.
//
// Build:
//   go build -o giftpack-viewer ./cmd/giftpack-viewer
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/piwi3910/GiftPack/internal/ui"
)

func main() {
	application := app.NewWithID("com.piwi3910.giftpack")
	window := application.NewWindow("GiftPack — Present Packing Solver")

	appUI := ui.NewApp(application, window)
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1200, 800))
	window.CenterOnScreen()

	if len(os.Args) > 1 {
		appUI.OpenInput(os.Args[1])
	}

	window.ShowAndRun()
}
