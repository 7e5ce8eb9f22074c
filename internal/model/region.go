package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrPresentCountMismatch is returned when a region lists a different number
// of present counts than there are presents in the catalog.
var ErrPresentCountMismatch = errors.New("present count length does not match catalog length")

// Region is a target rectangle and the number of copies of each catalog
// present that must fit inside it. PresentCount[i] refers to the i-th present
// of the catalog.
type Region struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	PresentCount []int  `json:"present_count"`
}

// NewRegion creates a region with a short unique ID and a "WxH" label. The
// counts slice is copied.
func NewRegion(w, h int, counts []int) Region {
	return Region{
		ID:           uuid.New().String()[:8],
		Label:        fmt.Sprintf("%dx%d", w, h),
		Width:        w,
		Height:       h,
		PresentCount: append([]int(nil), counts...),
	}
}

// Area returns the number of cells in the region.
func (r Region) Area() int {
	return r.Width * r.Height
}

// TotalPresents returns how many present instances the region requires.
func (r Region) TotalPresents() int {
	total := 0
	for _, c := range r.PresentCount {
		total += c
	}
	return total
}

// Presents expands the counts into a flat queue: catalog[i] repeated
// PresentCount[i] times, in catalog order. It panics if a count refers to a
// present outside the catalog; NewProblem rules that out.
func (r Region) Presents(catalog []Present) []Present {
	queue := make([]Present, 0, r.TotalPresents())
	for i, count := range r.PresentCount {
		if count <= 0 {
			continue
		}
		if i >= len(catalog) {
			panic(fmt.Sprintf("region %s: present index %d out of bounds (catalog has %d)", r.Label, i, len(catalog)))
		}
		for n := 0; n < count; n++ {
			queue = append(queue, catalog[i])
		}
	}
	return queue
}

// RequiredCells returns the total number of cells the region's presents cover.
func (r Region) RequiredCells(catalog []Present) int {
	total := 0
	for _, p := range r.Presents(catalog) {
		total += p.CellCount()
	}
	return total
}

// Problem is a present catalog together with the regions to pack.
type Problem struct {
	Presents []Present `json:"presents"`
	Regions  []Region  `json:"regions"`
}

// NewProblem validates that every region lists exactly one count per catalog
// present.
func NewProblem(presents []Present, regions []Region) (Problem, error) {
	for i, r := range regions {
		if len(r.PresentCount) != len(presents) {
			return Problem{}, fmt.Errorf("region %d (%s) has %d counts for %d presents: %w",
				i+1, r.Label, len(r.PresentCount), len(presents), ErrPresentCountMismatch)
		}
	}
	return Problem{Presents: presents, Regions: regions}, nil
}
