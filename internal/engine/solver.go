package engine

import (
	"context"
	"log"
	"slices"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/GiftPack/internal/grid"
	"github.com/piwi3910/GiftPack/internal/model"
)

// Solver decides whether each region of a problem can hold its presents.
type Solver struct {
	Settings model.SolverSettings
	Logger   *log.Logger // Progress output; nil disables it
}

// New creates a Solver for the given settings. Logging stays off until
// Logger is set.
func New(settings model.SolverSettings) *Solver {
	return &Solver{Settings: settings}
}

func (s *Solver) logf(format string, args ...any) {
	if s.Logger != nil {
		s.Logger.Printf(format, args...)
	}
}

// SolveProblem packs every region of the problem, running up to
// Settings.Workers regions at once. Regions are independent and each one is
// searched on a single goroutine. Cancelling ctx stops regions that have not
// started yet; a region already being searched runs to completion.
func (s *Solver) SolveProblem(ctx context.Context, problem model.Problem) (model.SolveResult, error) {
	if err := s.Settings.Validate(); err != nil {
		return model.SolveResult{}, err
	}

	start := time.Now()
	results := make([]model.RegionResult, len(problem.Regions))
	total := len(problem.Regions)
	var done atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Settings.Workers)
	for i, region := range problem.Regions {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s.logf("Solving region %s", region.Label)
			results[i] = s.Solve(region, problem.Presents)
			s.logf("Solved region %s. %d/%d", region.Label, done.Add(1), total)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.SolveResult{}, err
	}

	return model.SolveResult{
		RunID:   uuid.New().String(),
		Regions: results,
		Elapsed: time.Since(start),
	}, nil
}

// Solve searches for a placement of all the region's presents. A region that
// cannot be packed is a normal result with Solved set to false.
func (s *Solver) Solve(region model.Region, catalog []model.Present) model.RegionResult {
	start := time.Now()
	queue := s.queue(region.Presents(catalog))

	result := model.RegionResult{Region: region}
	for _, p := range queue {
		result.RequiredCells += p.CellCount()
	}

	if s.Settings.AreaPrecheck && result.RequiredCells > region.Area() {
		result.Elapsed = time.Since(start)
		return result
	}

	sr := newSearch(s.Settings.DedupOrientations)
	placements, _, ok := sr.run(grid.New(region.Width, region.Height, model.Empty), queue, nil)
	result.Solved = ok
	result.Placements = placements
	result.Nodes = sr.nodes
	result.Elapsed = time.Since(start)
	return result
}

// SolveGrid runs the backtracking search over an explicit starting grid and
// queue, placing presents in queue order. It returns the placements and the
// packed grid on success. g itself is never modified.
func (s *Solver) SolveGrid(g *grid.Grid[model.Cell], queue []model.Present) ([]model.Placement, *grid.Grid[model.Cell], bool) {
	sr := newSearch(s.Settings.DedupOrientations)
	return sr.run(g, queue, nil)
}

// queue orders the expanded presents according to Settings.QueueOrder.
func (s *Solver) queue(presents []model.Present) []model.Present {
	if s.Settings.QueueOrder == model.QueueLargestFirst {
		slices.SortStableFunc(presents, func(a, b model.Present) int {
			return b.CellCount() - a.CellCount()
		})
	}
	return presents
}

// search holds the state of a single region's backtracking run.
type search struct {
	dedup        bool
	nodes        int64
	orientations map[string][]OrientedPresent
}

func newSearch(dedup bool) *search {
	return &search{dedup: dedup, orientations: make(map[string][]OrientedPresent)}
}

// orientationsOf caches the orientation list per distinct shape, since a
// region usually holds many copies of the same present.
func (sr *search) orientationsOf(p model.Present) []OrientedPresent {
	key := p.String()
	if ops, ok := sr.orientations[key]; ok {
		return ops
	}
	ops := Orientations(p, sr.dedup)
	sr.orientations[key] = ops
	return ops
}

// run places queue[0] in every orientation and every feasible offset, each on
// its own copy of g, and recurses on the rest of the queue. The first complete
// placement wins.
func (sr *search) run(g *grid.Grid[model.Cell], queue []model.Present, placed []model.Placement) ([]model.Placement, *grid.Grid[model.Cell], bool) {
	sr.nodes++
	if len(queue) == 0 {
		return slices.Clone(placed), g, true
	}

	present := queue[0]
	for _, op := range sr.orientationsOf(present) {
		for _, offset := range Offsets(g.Width(), g.Height(), op.Present.Width(), op.Present.Height()) {
			if !CanPlacePresent(g, op.Present, offset) {
				continue
			}
			next := g.Clone()
			cells := PlacePresent(next, op.Present, offset)
			p := model.Placement{
				PresentIndex: present.Index,
				Label:        present.Label,
				Orientation:  op.Orientation,
				Offset:       offset,
				Width:        op.Present.Width(),
				Height:       op.Present.Height(),
				Cells:        cells,
			}
			if out, solved, ok := sr.run(next, queue[1:], append(placed, p)); ok {
				return out, solved, true
			}
		}
	}
	return nil, nil, false
}
