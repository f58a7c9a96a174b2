package ilp

import (
	"github.com/fabric-sim/fabric-sim/sim/geometry"
	"github.com/fabric-sim/fabric-sim/sim/ilp/solver"
)

// cuboidGroup is one job's cuboids (as produced by a preprocessor), with
// each member's offset relative to the group's anchor, the minimum corner
// of the group's bounding box. The anchor alone gets free x/y/z variables;
// every member is rigidly tied to it.
type cuboidGroup struct {
	sizes []geometry.Cuboid // size-only; Pos holds the offset from anchor
}

// CuboidPackingProblem formulates placement of a batch of cuboid-format
// programs (each possibly split into several cuboids by a k-cuboid
// preprocessor, rigidly linked) as a big-M disjunctive non-overlap ILP:
// one (x, y, z) variable triple per job anchor, ordering binaries for
// every pair of movable cuboids from different jobs and every
// movable-vs-fixed-obstacle pair,
// minimizing the tallest z extent touched.
type CuboidPackingProblem struct {
	cfg       PackingConfig
	groups    []cuboidGroup
	obstacles []geometry.Cuboid
}

// NewCuboidPackingProblem builds a problem from jobCuboids (one slice of
// rigidly-linked cuboids per job, anchored at the slice's bounding-box
// minimum corner) and a set of already-placed obstacle cuboids the batch
// must avoid.
func NewCuboidPackingProblem(cfg PackingConfig, jobCuboids [][]geometry.Cuboid, obstacles []geometry.Cuboid) *CuboidPackingProblem {
	groups := make([]cuboidGroup, len(jobCuboids))
	for i, cs := range jobCuboids {
		// The anchor is the group's bounding-box minimum corner, not
		// necessarily cs[0]'s own corner, so the solved anchor coordinate
		// is directly usable as a Schedule's translation target.
		anchor := cs[0].Pos
		for _, c := range cs[1:] {
			if c.Pos.X < anchor.X {
				anchor.X = c.Pos.X
			}
			if c.Pos.Y < anchor.Y {
				anchor.Y = c.Pos.Y
			}
			if c.Pos.Z < anchor.Z {
				anchor.Z = c.Pos.Z
			}
		}
		offsets := make([]geometry.Cuboid, len(cs))
		for j, c := range cs {
			offsets[j] = geometry.NewCuboid(
				geometry.NewCoordinate(c.Pos.X-anchor.X, c.Pos.Y-anchor.Y, c.Pos.Z-anchor.Z),
				c.SizeX, c.SizeY, c.SizeZ,
			)
		}
		groups[i] = cuboidGroup{sizes: offsets}
	}
	return &CuboidPackingProblem{cfg: cfg, groups: groups, obstacles: obstacles}
}

type anchorVars struct {
	x, y, z int
}

// Build compiles the disjunctive ILP. It returns the model plus the anchor
// variable indices needed to translate a solution back into per-job
// translations.
func (p *CuboidPackingProblem) Build() (*solver.Model, []anchorVars) {
	m := solver.NewModel()
	anchors := make([]anchorVars, len(p.groups))

	type placedMember struct {
		groupIdx int
		offset   geometry.Cuboid
	}
	var movable []placedMember

	for gi, g := range p.groups {
		xUp := float64(p.cfg.SizeX - groupExtentX(g))
		yUp := float64(p.cfg.SizeY - groupExtentY(g))
		zUp := float64(p.cfg.MaxZ - groupExtentZ(g))
		anchors[gi] = anchorVars{
			x: m.AddVar(solver.Integer, 0, maxf(xUp, 0)),
			y: m.AddVar(solver.Integer, 0, maxf(yUp, 0)),
			z: m.AddVar(solver.Integer, float64(p.cfg.MinZ), maxf(zUp, float64(p.cfg.MinZ))),
		}
		for _, off := range g.sizes {
			movable = append(movable, placedMember{groupIdx: gi, offset: off})
		}
	}

	posExpr := func(pm placedMember, axis int) map[int]float64 {
		av := anchors[pm.groupIdx]
		switch axis {
		case 0:
			return map[int]float64{av.x: 1}
		case 1:
			return map[int]float64{av.y: 1}
		default:
			return map[int]float64{av.z: 1}
		}
	}
	posOffset := func(pm placedMember, axis int) float64 {
		switch axis {
		case 0:
			return float64(pm.offset.Pos.X)
		case 1:
			return float64(pm.offset.Pos.Y)
		default:
			return float64(pm.offset.Pos.Z)
		}
	}
	size := func(pm placedMember, axis int) float64 {
		switch axis {
		case 0:
			return float64(pm.offset.SizeX)
		case 1:
			return float64(pm.offset.SizeY)
		default:
			return float64(pm.offset.SizeZ)
		}
	}

	// axisM is the big-M coefficient for axis (0=x, 1=y, 2=z): the box size
	// on that axis, per the spec's "big-M with X, Y, Z the box sizes" — large
	// enough that the relaxed disjunct never binds, but no larger, so it
	// doesn't silently depend on an unstated coordinate magnitude bound.
	axisM := func(axis int) float64 {
		switch axis {
		case 0:
			return float64(p.cfg.SizeX)
		case 1:
			return float64(p.cfg.SizeY)
		default:
			return float64(p.cfg.MaxZ - p.cfg.MinZ)
		}
	}

	addOrderingPair := func(lo, hi map[int]float64, loOff, hiOff, loSize, axisBigM float64, indicator int) {
		// lo + loOff + loSize <= hi + hiOff + M*(1-indicator)
		coeffs := make(map[int]float64)
		for idx, c := range lo {
			coeffs[idx] += c
		}
		for idx, c := range hi {
			coeffs[idx] -= c
		}
		coeffs[indicator] += axisBigM
		rhs := axisBigM - loOff - loSize + hiOff
		m.AddConstraint(coeffs, solver.LE, rhs)
	}

	nonOverlap := func(a, b placedMember) {
		bins := make([]int, 6)
		for k := range bins {
			bins[k] = m.AddVar(solver.Binary, 0, 1)
		}
		// axis order: x(a<b), x(b<a), y(a<b), y(b<a), z(a<b), z(b<a)
		for axis := 0; axis < 3; axis++ {
			M := axisM(axis)
			addOrderingPair(posExpr(a, axis), posExpr(b, axis), posOffset(a, axis), posOffset(b, axis), size(a, axis), M, bins[2*axis])
			addOrderingPair(posExpr(b, axis), posExpr(a, axis), posOffset(b, axis), posOffset(a, axis), size(b, axis), M, bins[2*axis+1])
		}
		sum := make(map[int]float64, 6)
		for _, b := range bins {
			sum[b] = 1
		}
		m.AddConstraint(sum, solver.GE, 1)
	}

	for i := 0; i < len(movable); i++ {
		for j := i + 1; j < len(movable); j++ {
			if movable[i].groupIdx == movable[j].groupIdx {
				continue // rigidly linked members of the same job never need separation
			}
			nonOverlap(movable[i], movable[j])
		}
	}

	for _, mv := range movable {
		for _, obstacle := range p.obstacles {
			obstacleConst := func(axis int) map[int]float64 { return map[int]float64{} }
			obstacleOffset := func(axis int) float64 {
				switch axis {
				case 0:
					return float64(obstacle.Pos.X)
				case 1:
					return float64(obstacle.Pos.Y)
				default:
					return float64(obstacle.Pos.Z)
				}
			}
			obstacleSize := func(axis int) float64 {
				switch axis {
				case 0:
					return float64(obstacle.SizeX)
				case 1:
					return float64(obstacle.SizeY)
				default:
					return float64(obstacle.SizeZ)
				}
			}

			bins := make([]int, 6)
			for k := range bins {
				bins[k] = m.AddVar(solver.Binary, 0, 1)
			}
			for axis := 0; axis < 3; axis++ {
				M := axisM(axis)
				// movable below obstacle
				addOrderingPair(posExpr(mv, axis), obstacleConst(axis), posOffset(mv, axis), obstacleOffset(axis), size(mv, axis), M, bins[2*axis])
				// obstacle below movable
				addOrderingPair(obstacleConst(axis), posExpr(mv, axis), obstacleOffset(axis), posOffset(mv, axis), obstacleSize(axis), M, bins[2*axis+1])
			}
			sum := make(map[int]float64, 6)
			for _, b := range bins {
				sum[b] = 1
			}
			m.AddConstraint(sum, solver.GE, 1)
		}
	}

	v := m.AddVar(solver.Continuous, 0, solver.Unbounded)
	for _, mv := range movable {
		coeffs := posExpr(mv, 2)
		coeffs[v] = -1
		m.AddConstraint(coeffs, solver.LE, -posOffset(mv, 2)-size(mv, 2))
	}
	m.SetObjective(v, 1)

	return m, anchors
}

func groupExtentX(g cuboidGroup) int32 { return groupExtent(g, 0) }
func groupExtentY(g cuboidGroup) int32 { return groupExtent(g, 1) }
func groupExtentZ(g cuboidGroup) int32 { return groupExtent(g, 2) }

func groupExtent(g cuboidGroup, axis int) int32 {
	var maxExtent int32
	for _, c := range g.sizes {
		var extent int32
		switch axis {
		case 0:
			extent = c.Pos.X + c.SizeX
		case 1:
			extent = c.Pos.Y + c.SizeY
		default:
			extent = c.Pos.Z + c.SizeZ
		}
		if extent > maxExtent {
			maxExtent = extent
		}
	}
	return maxExtent
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
