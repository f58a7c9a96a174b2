package scheduler

import (
	"time"

	"github.com/fabric-sim/fabric-sim/sim/env"
	"github.com/fabric-sim/fabric-sim/sim/geometry"
	"github.com/fabric-sim/fabric-sim/sim/job"
	"github.com/fabric-sim/fabric-sim/sim/program"
)

// GreedyConfig tunes the GreedyScheduler's batching and wall-clock to
// simulated-cycle conversion.
type GreedyConfig struct {
	MicroSecPerCycle uint64
	BatchSize        int // 0 means "take the whole queue every Run"
}

// GreedyScheduler places jobs one at a time at the best of a small set of
// corner candidates seeded from already-running programs, searching all
// four xy rotations per candidate and picking the lexicographically
// smallest (z, x+y) feasible placement.
type GreedyScheduler struct {
	jobQueue []job.Job
	config   GreedyConfig

	scheduleCyclesSum uint64
	scheduleCount     uint64
}

// NewGreedyScheduler builds an empty GreedyScheduler.
func NewGreedyScheduler(config GreedyConfig) *GreedyScheduler {
	return &GreedyScheduler{config: config}
}

func (g *GreedyScheduler) AddJob(j job.Job) {
	g.jobQueue = append(g.jobQueue, j)
}

func (g *GreedyScheduler) takeBatch() []job.Job {
	n := len(g.jobQueue)
	if g.config.BatchSize > 0 && g.config.BatchSize < n {
		n = g.config.BatchSize
	}
	taken := g.jobQueue[:n]
	g.jobQueue = g.jobQueue[n:]
	return taken
}

// locationCandidates returns the 4 corner points of p's bounding box: the 3
// corners opposite the origin on each axis, plus (0, 0, max_z_exclusive).
func locationCandidates(p program.Program) []geometry.Coordinate {
	minX, maxXExcl, minY, maxYExcl, minZ, maxZExcl := p.Bounds()
	return []geometry.Coordinate{
		geometry.NewCoordinate(maxXExcl, minY, minZ),
		geometry.NewCoordinate(minX, maxYExcl, minZ),
		geometry.NewCoordinate(minX, minY, maxZExcl),
		geometry.NewCoordinate(0, 0, maxZExcl),
	}
}

func lessSchedule(a, b program.Schedule) bool {
	if a.Dz != b.Dz {
		return a.Dz < b.Dz
	}
	return a.Dx+a.Dy < b.Dx+b.Dy
}

// overlapsMoveArea treats a recorded defrag move region as a flat obstacle
// at its z plane: p conflicts with it if p's xy footprint intersects the
// region's and the plane falls strictly inside p's z-extent.
func overlapsMoveArea(p program.Program, m env.MoveArea) bool {
	minX, maxXExcl, minY, maxYExcl, minZ, maxZExcl := p.Bounds()
	xOverlap := !(int64(maxXExcl) <= m.X1 || m.X2 <= int64(minX))
	yOverlap := !(int64(maxYExcl) <= m.Y1 || m.Y2 <= int64(minY))
	if !xOverlap || !yOverlap {
		return false
	}
	return int64(minZ) < m.Z && m.Z < int64(maxZExcl)
}

func (g *GreedyScheduler) Run(view EnvView) ([]Placement, error) {
	est := uint64(0)
	if g.scheduleCount > 0 {
		est = g.scheduleCyclesSum / g.scheduleCount
	}
	start := time.Now()

	scheduledPoint := view.PC() + int64(est)

	alreadyUsed := make(map[geometry.Coordinate]bool)
	for _, p := range view.Running() {
		minX, _, minY, _, minZ, _ := p.Bounds()
		alreadyUsed[geometry.NewCoordinate(minX, minY, minZ)] = true
	}

	var candidates []geometry.Coordinate
	for _, p := range view.Running() {
		minX, maxXExcl, minY, maxYExcl, minZ, maxZExcl := p.Bounds()
		if int64(maxZExcl) <= scheduledPoint {
			continue
		}
		z1 := minZ
		if int64(z1) < scheduledPoint {
			z1 = int32(scheduledPoint)
		}
		for _, cand := range []geometry.Coordinate{
			geometry.NewCoordinate(maxXExcl, minY, z1),
			geometry.NewCoordinate(minX, maxYExcl, z1),
			geometry.NewCoordinate(minX, minY, maxZExcl),
			geometry.NewCoordinate(0, 0, maxZExcl),
		} {
			if !alreadyUsed[cand] {
				candidates = append(candidates, cand)
			}
		}
	}
	if len(candidates) == 0 {
		candidates = append(candidates, geometry.NewCoordinate(0, 0, int32(scheduledPoint)))
	}

	moveAreas := view.MoveAreas()

	var placements []Placement
	var scheduledPrograms []program.Program
	batch := g.takeBatch()

	for _, j := range batch {
		var best *program.Schedule
		bestIdx := -1

		for i, candidate := range candidates {
			for rot := int32(0); rot < 4; rot++ {
				sched := program.Schedule{Dx: candidate.X, Dy: candidate.Y, Dz: candidate.Z, Rot: rot, Flip: false}
				placed, err := program.ApplySchedule(j.Program, sched)
				if err != nil {
					continue
				}

				overlapsBatch := false
				for _, sp := range scheduledPrograms {
					if placed.Overlaps(sp) {
						overlapsBatch = true
						break
					}
				}
				if overlapsBatch {
					continue
				}

				overlapsMoves := false
				for _, m := range moveAreas {
					if overlapsMoveArea(placed, m) {
						overlapsMoves = true
						break
					}
				}
				if overlapsMoves {
					continue
				}

				if !view.CanIssue(placed) {
					continue
				}

				if best == nil || lessSchedule(sched, *best) {
					s := sched
					best = &s
					bestIdx = i
				}
			}
		}

		if best == nil {
			return nil, ErrNoFeasiblePlacement
		}

		placedProgram, _ := program.ApplySchedule(j.Program, *best)
		candidates = append(candidates[:bestIdx], candidates[bestIdx+1:]...)
		candidates = append(candidates, locationCandidates(placedProgram)...)
		scheduledPrograms = append(scheduledPrograms, placedProgram)
		placements = append(placements, Placement{JobID: j.ID, Schedule: *best})
	}

	elapsedMicros := uint64(time.Since(start).Microseconds())
	elapsedCycles := uint64(0)
	if g.config.MicroSecPerCycle > 0 {
		elapsedCycles = (elapsedMicros + g.config.MicroSecPerCycle - 1) / g.config.MicroSecPerCycle
	}
	g.scheduleCyclesSum += elapsedCycles
	g.scheduleCount++

	return placements, nil
}
