package model

import (
	"fmt"
	"time"

	"github.com/piwi3910/GiftPack/internal/grid"
)

// Placement records one present instance placed into a region.
type Placement struct {
	PresentIndex int         `json:"present_index"`
	Label        string      `json:"label,omitempty"`
	Orientation  Orientation `json:"orientation"`
	Offset       grid.XY     `json:"offset"` // Top-left of the oriented bounding box
	Width        int         `json:"width"`  // Oriented bounding box width
	Height       int         `json:"height"` // Oriented bounding box height
	Cells        []grid.XY   `json:"cells"`  // Absolute region positions covered
}

// RegionResult is the outcome of packing a single region.
type RegionResult struct {
	Region        Region        `json:"region"`
	Solved        bool          `json:"solved"`
	Placements    []Placement   `json:"placements,omitempty"`
	RequiredCells int           `json:"required_cells"`
	Nodes         int64         `json:"nodes"` // Search states visited
	Elapsed       time.Duration `json:"elapsed"`
}

// FilledCells returns the number of cells covered by placements.
func (rr RegionResult) FilledCells() int {
	total := 0
	for _, p := range rr.Placements {
		total += len(p.Cells)
	}
	return total
}

// Efficiency returns the covered percentage of the region.
func (rr RegionResult) Efficiency() float64 {
	area := rr.Region.Area()
	if area == 0 {
		return 0
	}
	return float64(rr.FilledCells()) / float64(area) * 100.0
}

// Grid rebuilds the packed region as Empty/Filled cells.
func (rr RegionResult) Grid() *grid.Grid[Cell] {
	g := grid.New(rr.Region.Width, rr.Region.Height, Empty)
	for _, p := range rr.Placements {
		for _, xy := range p.Cells {
			g.Set(xy, Filled)
		}
	}
	return g
}

const placementLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// PlacementLetter returns the letter used to draw the i-th placement.
func PlacementLetter(i int) byte {
	return placementLetters[i%len(placementLetters)]
}

// Render draws the packed region with one letter per placed present and '.'
// for uncovered cells.
func (rr RegionResult) Render() string {
	g := grid.New(rr.Region.Width, rr.Region.Height, byte('.'))
	for i, p := range rr.Placements {
		for _, xy := range p.Cells {
			g.Set(xy, PlacementLetter(i))
		}
	}
	return grid.Render(g, func(b byte) string { return string(b) })
}

// SolveResult holds the outcome for every region of a problem.
type SolveResult struct {
	RunID   string         `json:"run_id"`
	Regions []RegionResult `json:"regions"`
	Elapsed time.Duration  `json:"elapsed"`
}

// SolvedCount returns how many regions could be packed.
func (sr SolveResult) SolvedCount() int {
	n := 0
	for _, r := range sr.Regions {
		if r.Solved {
			n++
		}
	}
	return n
}

// Solved returns only the regions that were packed.
func (sr SolveResult) Solved() []RegionResult {
	var out []RegionResult
	for _, r := range sr.Regions {
		if r.Solved {
			out = append(out, r)
		}
	}
	return out
}

// TotalNodes returns the number of search states visited across all regions.
func (sr SolveResult) TotalNodes() int64 {
	var n int64
	for _, r := range sr.Regions {
		n += r.Nodes
	}
	return n
}

// TotalEfficiency returns the covered percentage across all packed regions.
func (sr SolveResult) TotalEfficiency() float64 {
	var used, total int
	for _, r := range sr.Regions {
		if !r.Solved {
			continue
		}
		used += r.FilledCells()
		total += r.Region.Area()
	}
	if total == 0 {
		return 0
	}
	return float64(used) / float64(total) * 100.0
}

// Summary is a one-line description of a region result.
func (rr RegionResult) Summary() string {
	if rr.Solved {
		return fmt.Sprintf("%s: packed %d presents, %.1f%% covered", rr.Region.Label, len(rr.Placements), rr.Efficiency())
	}
	return fmt.Sprintf("%s: no placement for %d presents", rr.Region.Label, rr.Region.TotalPresents())
}
