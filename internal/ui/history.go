package ui

import "github.com/piwi3910/GiftPack/internal/model"

const defaultMaxDepth = 50

// Snapshot captures the presents and regions being edited at a point in time.
type Snapshot struct {
	Presents []model.Present
	Regions  []model.Region
	Label    string // Human-readable description (e.g. "Edit Region")
}

// History manages undo/redo stacks of problem snapshots.
type History struct {
	undoStack []Snapshot
	redoStack []Snapshot
	maxDepth  int
}

// NewHistory creates a History with the default max depth of 50.
func NewHistory() *History {
	return &History{
		maxDepth: defaultMaxDepth,
	}
}

// Push saves a snapshot onto the undo stack and clears the redo stack.
// Call it before the modification is applied.
func (h *History) Push(s Snapshot) {
	h.undoStack = append(h.undoStack, s)
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = h.undoStack[len(h.undoStack)-h.maxDepth:]
	}
	h.redoStack = nil
}

// Undo pops the most recent snapshot and pushes current onto the redo stack.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	if len(h.undoStack) == 0 {
		return Snapshot{}, false
	}
	last := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, current)
	return last, true
}

// Redo pops the most recent undone snapshot and pushes current onto the
// undo stack.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	if len(h.redoStack) == 0 {
		return Snapshot{}, false
	}
	last := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, current)
	return last, true
}

func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// Clear removes all undo and redo history.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}

func copyPresents(presents []model.Present) []model.Present {
	if presents == nil {
		return nil
	}
	cp := make([]model.Present, len(presents))
	copy(cp, presents)
	return cp
}

// copyRegions returns a deep copy, including each region's count slice.
func copyRegions(regions []model.Region) []model.Region {
	if regions == nil {
		return nil
	}
	cp := make([]model.Region, len(regions))
	for i, r := range regions {
		cp[i] = r
		if r.PresentCount != nil {
			cp[i].PresentCount = append([]int(nil), r.PresentCount...)
		}
	}
	return cp
}

// MakeSnapshot creates a snapshot of the given problem state.
func MakeSnapshot(presents []model.Present, regions []model.Region, label string) Snapshot {
	return Snapshot{
		Presents: copyPresents(presents),
		Regions:  copyRegions(regions),
		Label:    label,
	}
}
