package ilp

import (
	"errors"

	"github.com/fabric-sim/fabric-sim/sim/geometry"
	"github.com/fabric-sim/fabric-sim/sim/ilp/solver"
	"github.com/fabric-sim/fabric-sim/sim/program"
)

// ErrNoPlacement is returned when some job in a polycube batch has no
// candidate placement that fits within the packing config and avoids the
// fixed obstacles.
var ErrNoPlacement = errors.New("ilp: no feasible placement found for batch")

// PackingConfig bounds the region a packing problem may place programs
// into. Z coordinates here are already shrink-ratio scaled by the caller.
type PackingConfig struct {
	SizeX, SizeY int32
	MinZ, MaxZ   int32
}

// fits reports whether a program's bounds lie fully inside cfg.
func (cfg PackingConfig) fits(minX, maxXExcl, minY, maxYExcl, minZ, maxZExcl int32) bool {
	return minX >= 0 && maxXExcl <= cfg.SizeX &&
		minY >= 0 && maxYExcl <= cfg.SizeY &&
		minZ >= cfg.MinZ && maxZExcl <= cfg.MaxZ
}

// candidate is one enumerated (schedule, resulting placement) pair for a
// single polycube job.
type candidate struct {
	schedule program.Schedule
	placed   program.Program
	maxZ     int32
}

// PolycubePackingProblem formulates placement of a batch of same-shaped-kind
// (Polycube) programs as a set-selection ILP: every job picks exactly one
// of its enumerated candidate schedules, no two chosen placements (across
// jobs, or against fixedObstacles) share a unit cell, and the objective
// minimizes the tallest z extent touched by any chosen placement.
type PolycubePackingProblem struct {
	cfg              PackingConfig
	jobPrograms      []program.Program
	fixedObstacles   []geometry.Cuboid
}

// NewPolycubePackingProblem stores the batch and its obstacles. Build later
// enumerates, for each program in jobPrograms, the candidates formed from
// every (rotation, flip, x, y, z) combination whose bounding box fits inside
// cfg and that overlaps no fixed obstacle.
func NewPolycubePackingProblem(cfg PackingConfig, jobPrograms []program.Program, fixedObstacles []geometry.Cuboid) *PolycubePackingProblem {
	return &PolycubePackingProblem{cfg: cfg, jobPrograms: jobPrograms, fixedObstacles: fixedObstacles}
}

func (p *PolycubePackingProblem) candidatesFor(prog program.Program) []candidate {
	var out []candidate
	for rot := int32(0); rot < 4; rot++ {
		for _, flip := range []bool{false, true} {
			for z := p.cfg.MinZ; z < p.cfg.MaxZ; z++ {
				for y := int32(0); y < p.cfg.SizeY; y++ {
					for x := int32(0); x < p.cfg.SizeX; x++ {
						sched := program.Schedule{Dx: x, Dy: y, Dz: z, Rot: rot, Flip: flip}
						placed, err := program.ApplySchedule(prog, sched)
						if err != nil {
							continue
						}
						minX, maxX, minY, maxY, minZ, maxZ := placed.Bounds()
						if !p.cfg.fits(minX, maxX, minY, maxY, minZ, maxZ) {
							continue
						}
						if obstructed(placed, p.fixedObstacles) {
							continue
						}
						out = append(out, candidate{schedule: sched, placed: placed, maxZ: maxZ})
					}
				}
			}
		}
	}
	return out
}

func obstructed(p program.Program, obstacles []geometry.Cuboid) bool {
	for _, o := range obstacles {
		if p.Overlaps(program.NewCuboidProgram([]geometry.Cuboid{o})) {
			return true
		}
	}
	return false
}

// Build compiles the problem into a solver.Model plus the per-job candidate
// lists needed to translate a solution back into schedules.
func (p *PolycubePackingProblem) Build() (*solver.Model, [][]candidate) {
	m := solver.NewModel()
	cands := make([][]candidate, len(p.jobPrograms))
	varIdx := make([][]int, len(p.jobPrograms))

	cellOwners := make(map[geometry.Coordinate][]int) // cell -> var indices of candidates occupying it

	for i, prog := range p.jobPrograms {
		cands[i] = p.candidatesFor(prog)
		varIdx[i] = make([]int, len(cands[i]))
		for c, cand := range cands[i] {
			v := m.AddVar(solver.Binary, 0, 1)
			varIdx[i][c] = v
			for _, cell := range occupiedCells(cand.placed) {
				cellOwners[cell] = append(cellOwners[cell], v)
			}
		}
		// Exactly one candidate chosen per job.
		coeffs := make(map[int]float64, len(varIdx[i]))
		for _, v := range varIdx[i] {
			coeffs[v] = 1
		}
		if len(coeffs) > 0 {
			m.AddConstraint(coeffs, solver.EQ, 1)
		}
	}

	for _, vars := range cellOwners {
		if len(vars) < 2 {
			continue
		}
		coeffs := make(map[int]float64, len(vars))
		for _, v := range vars {
			coeffs[v] = 1
		}
		m.AddConstraint(coeffs, solver.LE, 1)
	}

	tVar := m.AddVar(solver.Continuous, 0, solver.Unbounded)
	for i := range cands {
		for c, cand := range cands[i] {
			m.AddConstraint(map[int]float64{tVar: 1, varIdx[i][c]: -float64(cand.maxZ)}, solver.GE, 0)
		}
	}
	m.SetObjective(tVar, 1)

	return m, cands
}

// occupiedCells returns the unit cells a placed program covers, used to
// build the ILP's cell-disjointness constraints.
func occupiedCells(p program.Program) []geometry.Coordinate {
	if poly, ok := p.Polycube(); ok {
		return poly.Blocks()
	}
	cuboids, _ := p.Cuboids()
	var cells []geometry.Coordinate
	for _, c := range cuboids {
		for x := c.X1(); x < c.X2(); x++ {
			for y := c.Y1(); y < c.Y2(); y++ {
				for z := c.Z1(); z < c.Z2(); z++ {
					cells = append(cells, geometry.NewCoordinate(x, y, z))
				}
			}
		}
	}
	return cells
}

// Solution maps each job index to its chosen schedule.
func (p *PolycubePackingProblem) Solution(sol solver.Solution, cands [][]candidate) []program.Schedule {
	out := make([]program.Schedule, len(cands))
	offset := 0
	for i := range cands {
		for c := range cands[i] {
			if sol.Values[offset+c] > 0.5 {
				out[i] = cands[i][c].schedule
			}
		}
		offset += len(cands[i])
	}
	return out
}
