// Package ilp implements the MILP-based packing scheduler: it formulates
// placement of a batch of jobs as a mixed-integer program (polycube
// candidate-selection, or cuboid big-M disjunctive non-overlap) and hands
// it to the in-package solver, which branch-and-bounds a simplex
// relaxation built on gonum.
package ilp

import (
	"context"
	"errors"
	"time"

	"github.com/fabric-sim/fabric-sim/sim/geometry"
	"github.com/fabric-sim/fabric-sim/sim/ilp/solver"
	"github.com/fabric-sim/fabric-sim/sim/job"
	"github.com/fabric-sim/fabric-sim/sim/program"
	"github.com/fabric-sim/fabric-sim/sim/scheduler"
)

// ErrMixedBatch is returned when a single batch mixes Polycube and Cuboid
// format programs; the two packing formulations are not interchangeable.
var ErrMixedBatch = errors.New("ilp: batch mixes polycube and cuboid format programs")

// Config tunes the ILPScheduler's fabric bounds, batching and per-Run
// solver time budget.
type Config struct {
	SizeX, SizeY int64
	BatchSize    int
	TimeLimit    time.Duration // 0 means "let the solver run to completion"
}

// ILPScheduler places a batch at a time by solving a mixed-integer packing
// problem over the batch, clipped against the environment's running
// programs and recorded defrag move areas as fixed obstacles.
type ILPScheduler struct {
	jobQueue []job.Job
	config   Config

	scheduleCyclesSum uint64
	scheduleCount     uint64
}

// NewILPScheduler builds an empty ILPScheduler.
func NewILPScheduler(config Config) *ILPScheduler {
	return &ILPScheduler{config: config}
}

func (s *ILPScheduler) AddJob(j job.Job) {
	s.jobQueue = append(s.jobQueue, j)
}

func (s *ILPScheduler) takeBatch() []job.Job {
	n := len(s.jobQueue)
	if s.config.BatchSize > 0 && s.config.BatchSize < n {
		n = s.config.BatchSize
	}
	taken := s.jobQueue[:n]
	s.jobQueue = s.jobQueue[n:]
	return taken
}

func (s *ILPScheduler) Run(view scheduler.EnvView) ([]scheduler.Placement, error) {
	batch := s.takeBatch()
	if len(batch) == 0 {
		return nil, nil
	}

	allPoly, allCuboid := true, true
	for _, j := range batch {
		if j.Program.IsPolycube() {
			allCuboid = false
		} else {
			allPoly = false
		}
	}
	if !allPoly && !allCuboid {
		return nil, ErrMixedBatch
	}

	est := int64(0)
	if s.scheduleCount > 0 {
		est = int64(s.scheduleCyclesSum / s.scheduleCount)
	}
	schedulePoint := view.PC() + est

	var zsum int64
	for _, j := range batch {
		zsum += int64(j.Program.BurstTime())
	}
	if zsum < 1 {
		zsum = 1
	}
	maxZ := zsum
	if endPC := view.EndPC(); endPC > schedulePoint {
		maxZ += endPC - schedulePoint
	}

	start := time.Now()
	ctx := context.Background()
	if s.config.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.TimeLimit)
		defer cancel()
	}

	var placements []scheduler.Placement
	var err error
	if allPoly {
		placements, err = s.runPolycube(ctx, view, batch, schedulePoint, maxZ)
	} else {
		placements, err = s.runCuboid(ctx, view, batch, schedulePoint, maxZ)
	}
	if err != nil {
		return nil, err
	}

	elapsedMicros := uint64(time.Since(start).Microseconds())
	s.scheduleCyclesSum += elapsedMicros
	s.scheduleCount++

	return placements, nil
}

func (s *ILPScheduler) runPolycube(ctx context.Context, view scheduler.EnvView, batch []job.Job, schedulePoint, maxZ int64) ([]scheduler.Placement, error) {
	cfg := PackingConfig{
		SizeX: int32(s.config.SizeX),
		SizeY: int32(s.config.SizeY),
		MinZ:  int32(schedulePoint),
		MaxZ:  int32(schedulePoint + maxZ),
	}

	var obstacles []geometry.Cuboid
	for _, c := range fixedObstacleCuboids(view) {
		if clipped, ok := clipAbove(c, schedulePoint); ok {
			obstacles = append(obstacles, clipped)
		}
	}

	programs := make([]program.Program, len(batch))
	for i, j := range batch {
		programs[i] = j.Program
	}

	problem := NewPolycubePackingProblem(cfg, programs, obstacles)
	model, cands := problem.Build()
	for _, c := range cands {
		if len(c) == 0 {
			return nil, ErrNoPlacement
		}
	}
	sol, err := solver.Solve(ctx, model)
	if err != nil {
		return nil, err
	}
	schedules := problem.Solution(sol, cands)

	placements := make([]scheduler.Placement, len(batch))
	for i, j := range batch {
		placements[i] = scheduler.Placement{JobID: j.ID, Schedule: schedules[i]}
	}
	return placements, nil
}

// shrinkRatioFor returns ceil(maxZ / 100_000), the z-axis compression
// factor runCuboid applies before solving: an exact multiple of 100,000
// must not be over-shrunk by one extra step.
func shrinkRatioFor(maxZ int64) int64 {
	return (maxZ + 100_000 - 1) / 100_000
}

func (s *ILPScheduler) runCuboid(ctx context.Context, view scheduler.EnvView, batch []job.Job, schedulePoint, maxZ int64) ([]scheduler.Placement, error) {
	shrinkRatio := shrinkRatioFor(maxZ)

	jobCuboids := make([][]geometry.Cuboid, len(batch))
	for i, j := range batch {
		cuboids, _ := j.Program.Cuboids()
		shrunk := make([]geometry.Cuboid, len(cuboids))
		for k, c := range cuboids {
			sc, ok := shrinkCuboid(c, 0, shrinkRatio)
			if !ok {
				sc = c
			}
			shrunk[k] = sc
		}
		jobCuboids[i] = shrunk
	}

	var obstacles []geometry.Cuboid
	for _, c := range fixedObstacleCuboids(view) {
		if sc, ok := shrinkCuboid(c, schedulePoint, shrinkRatio); ok {
			obstacles = append(obstacles, sc)
		}
	}
	for _, m := range view.MoveAreas() {
		plane := geometry.NewCuboid(
			geometry.NewCoordinate(int32(m.X1), int32(m.Y1), int32(m.Z)),
			int32(m.X2-m.X1), int32(m.Y2-m.Y1), 1,
		)
		if sc, ok := shrinkCuboid(plane, schedulePoint, shrinkRatio); ok {
			obstacles = append(obstacles, sc)
		}
	}

	cfg := PackingConfig{
		SizeX: int32(s.config.SizeX),
		SizeY: int32(s.config.SizeY),
		MinZ:  0,
		MaxZ:  int32((maxZ + shrinkRatio - 1) / shrinkRatio),
	}

	problem := NewCuboidPackingProblem(cfg, jobCuboids, obstacles)
	model, anchors := problem.Build()
	sol, err := solver.Solve(ctx, model)
	if err != nil {
		return nil, err
	}

	placements := make([]scheduler.Placement, len(batch))
	for i, j := range batch {
		av := anchors[i]
		dz := int64(sol.Values[av.z])*shrinkRatio + schedulePoint
		placements[i] = scheduler.Placement{
			JobID: j.ID,
			Schedule: program.Schedule{
				Dx: int32(sol.Values[av.x]),
				Dy: int32(sol.Values[av.y]),
				Dz: int32(dz),
			},
		}
	}
	return placements, nil
}

// fixedObstacleCuboids flattens every running program's geometry into
// Cuboids, approximating any Polycube-format running program with its
// bounding box.
func fixedObstacleCuboids(view scheduler.EnvView) []geometry.Cuboid {
	var out []geometry.Cuboid
	for _, p := range view.Running() {
		if cuboids, ok := p.Cuboids(); ok {
			out = append(out, cuboids...)
			continue
		}
		if poly, ok := p.Polycube(); ok {
			out = append(out, geometry.CuboidFromPolycube(poly))
		}
	}
	return out
}

// clipAbove returns the part of c at or above z (dropping it entirely if
// c lies fully below z), used to keep the polycube packing problem's fixed
// obstacles from extending below the batch's own placement window.
func clipAbove(c geometry.Cuboid, z int64) (geometry.Cuboid, bool) {
	if int64(c.Z2()) <= z {
		return geometry.Cuboid{}, false
	}
	if int64(c.Z1()) >= z {
		return c, true
	}
	_, above, ok := c.CutAtZ(int32(z))
	if !ok {
		return c, true
	}
	return above, true
}

// shrinkCuboid re-expresses c in a z-compressed frame whose origin is
// offset and whose unit is ratio: it shifts c down by offset, drops it
// entirely if that leaves it below zero, and divides the remaining z
// extent by ratio (rounding the far face up so the shrunk cuboid never
// loses volume it actually occupies).
func shrinkCuboid(c geometry.Cuboid, offset, ratio int64) (geometry.Cuboid, bool) {
	z1 := int64(c.Z1()) - offset
	z2 := int64(c.Z2()) - offset
	if z2 <= 0 {
		return geometry.Cuboid{}, false
	}
	if z1 < 0 {
		z1 = 0
	}
	sz1 := z1 / ratio
	sz2 := (z2 + ratio - 1) / ratio
	if sz2 <= sz1 {
		sz2 = sz1 + 1
	}
	return geometry.NewCuboid(geometry.NewCoordinate(c.X1(), c.Y1(), int32(sz1)), c.SizeX, c.SizeY, int32(sz2-sz1)), true
}
