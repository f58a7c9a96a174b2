package env

import (
	"fmt"
	"sort"

	"github.com/fabric-sim/fabric-sim/sim/geometry"
	"github.com/fabric-sim/fabric-sim/sim/program"
)

// defragSize is the candidate-set size threshold above which Defrag starts
// popping and acting on candidates: max(2, 4*batch_size).
func (e *Environment) defragSize() int {
	size := 4 * e.config.BatchSize
	if size < 2 {
		size = 2
	}
	return size
}

// Defrag discards stale defrag candidates (at or below pc or the last
// defrag point) and, while the remaining candidate count exceeds
// defragSize, pops the smallest candidate z0 and calls DefragAt(z0) if the
// next-smallest candidate z1 is at least DefragInterval away.
func (e *Environment) Defrag() error {
	for z := range e.defragCandidates {
		if z <= e.pc || z <= e.lastDefragPoint {
			delete(e.defragCandidates, z)
		}
	}

	for len(e.defragCandidates) > e.defragSize() {
		keys := make([]int64, 0, len(e.defragCandidates))
		for z := range e.defragCandidates {
			keys = append(keys, z)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

		z0 := keys[0]
		delete(e.defragCandidates, z0)

		if len(keys) > 1 {
			z1 := keys[1]
			if z1-z0 >= e.config.DefragInterval {
				if err := e.DefragAt(z0); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// DefragAt cuts every issued program at plane z, keeping the part fully
// below z in place and gravity-dropping the part at or above z in y then
// x, before rebuilding issued and running from the result. Precondition:
// pc <= z.
func (e *Environment) DefragAt(z int64) error {
	if z < e.pc {
		return fmt.Errorf("env: defrag_at(%d): precondition pc(%d) <= z violated", z, e.pc)
	}

	var below, above []geometry.Cuboid
	for _, p := range e.issued {
		cuboids, ok := p.Cuboids()
		if !ok {
			return ErrUnsupportedFormat
		}
		for _, c := range cuboids {
			switch {
			case int64(c.Z2()) <= z:
				below = append(below, c)
			case int64(c.Z1()) >= z:
				above = append(above, c)
			default:
				lo, hi, ok := c.CutAtZ(int32(z))
				if !ok {
					below = append(below, c)
					continue
				}
				below = append(below, lo)
				above = append(above, hi)
			}
		}
	}

	dropped, xCost, yCost, moves := dropPrograms(above, z)
	e.defragCostSum += xCost + yCost
	e.defragMoveAreas = append(e.defragMoveAreas, moves...)

	newIssued := make([]program.Program, 0, len(below)+len(dropped))
	for _, c := range below {
		newIssued = append(newIssued, program.NewCuboidProgram([]geometry.Cuboid{c}))
	}
	for _, c := range dropped {
		newIssued = append(newIssued, program.NewCuboidProgram([]geometry.Cuboid{c}))
	}
	e.issued = newIssued
	e.lastDefragPoint = z
	e.rebuildRunning()
	return nil
}

// dropPrograms gravity-drops cuboids cut loose at plane z: a y-pass
// (sorted by y1, each cuboid settling onto the max y2 of already-settled
// cuboids whose x and z ranges overlap it), followed by an x-pass over the
// y-dropped result (settling onto x2 using y and z overlap). Returns the
// final cuboids, the cost charged to each pass, and the move-area slabs
// recorded for the scheduler.
//
// Cost accounting is heuristic: each pass charges the largest size (SizeY
// for the y pass, SizeX for the x pass) among cuboids that begin exactly at
// z, i.e. those about to start executing right after the cut.
func dropPrograms(above []geometry.Cuboid, z int64) (dropped []geometry.Cuboid, xCost, yCost int64, moves []MoveArea) {
	if len(above) == 0 {
		return nil, 0, 0, nil
	}

	yDropped := make([]geometry.Cuboid, len(above))
	copy(yDropped, above)
	sort.Slice(yDropped, func(i, j int) bool { return yDropped[i].Y1() < yDropped[j].Y1() })

	placed := make([]geometry.Cuboid, 0, len(yDropped))
	for _, c := range yDropped {
		newY1 := int32(0)
		for _, o := range placed {
			if xOverlap(c, o) && zOverlap(c, o) && o.Y2() > newY1 {
				newY1 = o.Y2()
			}
		}
		oldY2 := c.Y2()
		if newY1 != c.Y1() {
			moves = append(moves, MoveArea{
				X1: int64(c.X1()), X2: int64(c.X2()),
				Y1: int64(newY1), Y2: int64(oldY2),
				Z: z,
			})
		}
		c = geometry.NewCuboid(geometry.NewCoordinate(c.X1(), newY1, c.Z1()), c.SizeX, c.SizeY, c.SizeZ)
		placed = append(placed, c)
	}

	xSorted := make([]geometry.Cuboid, len(placed))
	copy(xSorted, placed)
	sort.Slice(xSorted, func(i, j int) bool { return xSorted[i].X1() < xSorted[j].X1() })

	final := make([]geometry.Cuboid, 0, len(xSorted))
	for _, c := range xSorted {
		newX1 := int32(0)
		for _, o := range final {
			if yOverlap(c, o) && zOverlap(c, o) && o.X2() > newX1 {
				newX1 = o.X2()
			}
		}
		oldX2 := c.X2()
		if newX1 != c.X1() {
			moves = append(moves, MoveArea{
				X1: int64(newX1), X2: int64(oldX2),
				Y1: int64(c.Y1()), Y2: int64(c.Y2()),
				Z: z,
			})
		}
		c = geometry.NewCuboid(geometry.NewCoordinate(newX1, c.Y1(), c.Z1()), c.SizeX, c.SizeY, c.SizeZ)
		final = append(final, c)
	}

	for _, c := range above {
		if int64(c.Z1()) != z {
			continue
		}
		if int64(c.SizeY) > yCost {
			yCost = int64(c.SizeY)
		}
		if int64(c.SizeX) > xCost {
			xCost = int64(c.SizeX)
		}
	}

	return final, xCost, yCost, moves
}

func xOverlap(a, b geometry.Cuboid) bool {
	return a.X1() < b.X2() && b.X1() < a.X2()
}

func yOverlap(a, b geometry.Cuboid) bool {
	return a.Y1() < b.Y2() && b.Y1() < a.Y2()
}

func zOverlap(a, b geometry.Cuboid) bool {
	return a.Z1() < b.Z2() && b.Z1() < a.Z2()
}
