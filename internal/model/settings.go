package model

import (
	"fmt"
	"runtime"
)

// QueueOrder controls the order in which a region's presents are placed.
// Any order yields the same verdict; it only changes how quickly the search
// gets there.
type QueueOrder string

const (
	QueueCatalog      QueueOrder = "catalog"       // Catalog order, as listed in the input
	QueueLargestFirst QueueOrder = "largest-first" // Presents with the most cells first
)

// SolverSettings holds the packing search configuration.
type SolverSettings struct {
	Workers           int        `json:"workers"`            // Regions solved in parallel
	QueueOrder        QueueOrder `json:"queue_order"`        // Placement order of presents
	AreaPrecheck      bool       `json:"area_precheck"`      // Reject regions too small for their presents without searching
	DedupOrientations bool       `json:"dedup_orientations"` // Skip orientations identical to an earlier one
}

// DefaultSettings returns solver settings with one worker per CPU, catalog
// queue order and both heuristics enabled.
func DefaultSettings() SolverSettings {
	return SolverSettings{
		Workers:           runtime.NumCPU(),
		QueueOrder:        QueueCatalog,
		AreaPrecheck:      true,
		DedupOrientations: true,
	}
}

// Validate reports settings that cannot be used.
func (s SolverSettings) Validate() error {
	if s.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", s.Workers)
	}
	switch s.QueueOrder {
	case QueueCatalog, QueueLargestFirst:
	default:
		return fmt.Errorf("unknown queue order %q", s.QueueOrder)
	}
	return nil
}
