package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/GiftPack/internal/model"
)

// Present colors, cycled by placement.
var presentColors = []color.NRGBA{
	{R: 76, G: 175, B: 80, A: 220},  // green
	{R: 33, G: 150, B: 243, A: 220}, // blue
	{R: 255, G: 152, B: 0, A: 220},  // orange
	{R: 156, G: 39, B: 176, A: 220}, // purple
	{R: 0, G: 188, B: 212, A: 220},  // cyan
	{R: 244, G: 67, B: 54, A: 220},  // red
	{R: 255, G: 235, B: 59, A: 220}, // yellow
	{R: 121, G: 85, B: 72, A: 220},  // brown
}

// PresentColor returns the fill used for the i-th placement of a region.
func PresentColor(i int) color.NRGBA {
	return presentColors[i%len(presentColors)]
}

// RegionCanvas draws a packed region cell by cell.
type RegionCanvas struct {
	widget.BaseWidget
	region    model.RegionResult
	maxWidth  float32
	maxHeight float32
}

// NewRegionCanvas creates a canvas for one region result, scaled to fit
// within maxW x maxH.
func NewRegionCanvas(region model.RegionResult, maxW, maxH float32) *RegionCanvas {
	rc := &RegionCanvas{
		region:    region,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	rc.ExtendBaseWidget(rc)
	return rc
}

func (rc *RegionCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newRegionCanvasRenderer(rc)
}

// cellSize returns the side of one grid cell in canvas units.
func (rc *RegionCanvas) cellSize() float32 {
	w, h := rc.region.Region.Width, rc.region.Region.Height
	if w <= 0 || h <= 0 {
		return 0
	}
	return min(rc.maxWidth/float32(w), rc.maxHeight/float32(h))
}

type regionCanvasRenderer struct {
	rc      *RegionCanvas
	objects []fyne.CanvasObject
}

func newRegionCanvasRenderer(rc *RegionCanvas) *regionCanvasRenderer {
	r := &regionCanvasRenderer{rc: rc}
	r.rebuild()
	return r
}

func (r *regionCanvasRenderer) rebuild() {
	r.objects = nil

	rr := r.rc.region
	cell := r.rc.cellSize()
	if cell == 0 {
		return
	}
	canvasW := float32(rr.Region.Width) * cell
	canvasH := float32(rr.Region.Height) * cell

	bg := canvas.NewRectangle(color.NRGBA{R: 245, G: 240, B: 230, A: 255})
	bg.Resize(fyne.NewSize(canvasW, canvasH))
	r.objects = append(r.objects, bg)

	// Cell lattice
	lattice := color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	for x := 1; x < rr.Region.Width; x++ {
		line := canvas.NewLine(lattice)
		line.Position1 = fyne.NewPos(float32(x)*cell, 0)
		line.Position2 = fyne.NewPos(float32(x)*cell, canvasH)
		r.objects = append(r.objects, line)
	}
	for y := 1; y < rr.Region.Height; y++ {
		line := canvas.NewLine(lattice)
		line.Position1 = fyne.NewPos(0, float32(y)*cell)
		line.Position2 = fyne.NewPos(canvasW, float32(y)*cell)
		r.objects = append(r.objects, line)
	}

	for i, p := range rr.Placements {
		col := PresentColor(i)
		letter := string(model.PlacementLetter(i))
		for _, xy := range p.Cells {
			rect := canvas.NewRectangle(col)
			rect.StrokeColor = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
			rect.StrokeWidth = 1
			rect.Resize(fyne.NewSize(cell, cell))
			rect.Move(fyne.NewPos(float32(xy.X)*cell, float32(xy.Y)*cell))
			r.objects = append(r.objects, rect)

			if cell >= 14 {
				label := canvas.NewText(letter, color.Black)
				label.TextSize = cell * 0.6
				label.Alignment = fyne.TextAlignCenter
				label.Resize(fyne.NewSize(cell, cell))
				label.Move(fyne.NewPos(float32(xy.X)*cell, float32(xy.Y)*cell))
				r.objects = append(r.objects, label)
			}
		}
	}

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	border.StrokeWidth = 2
	border.Resize(fyne.NewSize(canvasW, canvasH))
	r.objects = append(r.objects, border)

	if !rr.Solved {
		banner := canvas.NewText("DOES NOT FIT", color.NRGBA{R: 200, G: 0, B: 0, A: 255})
		banner.TextStyle = fyne.TextStyle{Bold: true}
		banner.TextSize = 14
		banner.Move(fyne.NewPos(4, 2))
		r.objects = append(r.objects, banner)
	}
}

func (r *regionCanvasRenderer) Layout(size fyne.Size)        {}
func (r *regionCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *regionCanvasRenderer) Destroy()                     {}
func (r *regionCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *regionCanvasRenderer) MinSize() fyne.Size {
	cell := r.rc.cellSize()
	return fyne.NewSize(float32(r.rc.region.Region.Width)*cell, float32(r.rc.region.Region.Height)*cell)
}

// RenderRegionResults creates a scrollable container of all region results.
func RenderRegionResults(result *model.SolveResult) fyne.CanvasObject {
	if result == nil || len(result.Regions) == 0 {
		return widget.NewLabel("No results yet. Open an input file, then click Solve.")
	}

	var items []fyne.CanvasObject

	for i, rr := range result.Regions {
		header := widget.NewLabel(fmt.Sprintf("Region %d: %s", i+1, rr.Summary()))
		header.TextStyle = fyne.TextStyle{Bold: true}
		if !rr.Solved {
			header.Importance = widget.DangerImportance
		}
		items = append(items, header, NewRegionCanvas(rr, 600, 400), widget.NewSeparator())
	}

	breakdown := BuildRegionSizeBreakdown(result)
	if len(breakdown) > 1 {
		breakdownHeader := widget.NewLabel("Region Size Breakdown:")
		breakdownHeader.TextStyle = fyne.TextStyle{Bold: true}
		items = append(items, breakdownHeader)
		for _, line := range breakdown {
			items = append(items, widget.NewLabel(line))
		}
		items = append(items, widget.NewSeparator())
	}

	summary := widget.NewLabel(fmt.Sprintf(
		"Total: %d of %d regions packed, %.1f%% coverage, %d search nodes",
		result.SolvedCount(), len(result.Regions), result.TotalEfficiency(), result.TotalNodes(),
	))
	summary.TextStyle = fyne.TextStyle{Bold: true}
	items = append(items, summary)

	return container.NewVScroll(container.NewVBox(items...))
}

// BuildRegionSizeBreakdown groups regions by their dimensions, in order of
// first appearance, and reports how many of each were packed.
func BuildRegionSizeBreakdown(result *model.SolveResult) []string {
	if result == nil || len(result.Regions) == 0 {
		return nil
	}

	type sizeKey struct {
		w, h int
	}
	type sizeStats struct {
		count  int
		solved int
	}

	var order []sizeKey
	stats := make(map[sizeKey]*sizeStats)

	for _, rr := range result.Regions {
		key := sizeKey{rr.Region.Width, rr.Region.Height}
		s, ok := stats[key]
		if !ok {
			order = append(order, key)
			s = &sizeStats{}
			stats[key] = s
		}
		s.count++
		if rr.Solved {
			s.solved++
		}
	}

	lines := make([]string, 0, len(order))
	for _, key := range order {
		s := stats[key]
		lines = append(lines, fmt.Sprintf("  %d x %d: %d region(s), %d packed", key.w, key.h, s.count, s.solved))
	}
	return lines
}
