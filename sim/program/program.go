// Package program defines the tagged Program variant (Polycube or list of
// Cuboids) that Jobs carry, the Schedule transform, and the geometry
// glue (burst time, z-extent, overlap) the Environment and schedulers
// operate on.
package program

import (
	"fmt"
	"math"

	"github.com/fabric-sim/fabric-sim/sim/geometry"
)

// Kind distinguishes the two Program representations.
type Kind int

const (
	// KindPolycube holds an arbitrary set of unit cells.
	KindPolycube Kind = iota
	// KindCuboid holds one or more axis-aligned cuboids describing the
	// same program; cuboids within one Program need not be disjoint.
	KindCuboid
)

func (k Kind) String() string {
	switch k {
	case KindPolycube:
		return "polycube"
	case KindCuboid:
		return "cuboid"
	default:
		return "unknown"
	}
}

// Program is a tagged variant over a Polycube or a non-empty list of Cuboids.
type Program struct {
	kind    Kind
	poly    *geometry.Polycube
	cuboids []geometry.Cuboid
}

// NewPolycubeProgram wraps p as a Polycube-format Program.
func NewPolycubeProgram(p *geometry.Polycube) Program {
	return Program{kind: KindPolycube, poly: p}
}

// NewCuboidProgram wraps cuboids as a Cuboid-format Program.
// Panics if cuboids is empty: a Cuboid Program must name at least one cuboid.
func NewCuboidProgram(cuboids []geometry.Cuboid) Program {
	if len(cuboids) == 0 {
		panic("program: cuboid program must have at least one cuboid")
	}
	cs := make([]geometry.Cuboid, len(cuboids))
	copy(cs, cuboids)
	return Program{kind: KindCuboid, cuboids: cs}
}

func (p Program) Kind() Kind { return p.kind }
func (p Program) IsPolycube() bool { return p.kind == KindPolycube }
func (p Program) IsCuboid() bool   { return p.kind == KindCuboid }

// Polycube returns the underlying Polycube and true, iff p is Polycube-format.
func (p Program) Polycube() (*geometry.Polycube, bool) {
	if p.kind != KindPolycube {
		return nil, false
	}
	return p.poly, true
}

// Cuboids returns the underlying cuboid list and true, iff p is Cuboid-format.
func (p Program) Cuboids() ([]geometry.Cuboid, bool) {
	if p.kind != KindCuboid {
		return nil, false
	}
	cs := make([]geometry.Cuboid, len(p.cuboids))
	copy(cs, p.cuboids)
	return cs, true
}

// Bounds returns the axis-aligned bounding box of p: (minX, maxX exclusive,
// minY, maxY exclusive, minZ, maxZ exclusive).
func (p Program) Bounds() (minX, maxXExcl, minY, maxYExcl, minZ, maxZExcl int32) {
	switch p.kind {
	case KindPolycube:
		return p.poly.MinX(), p.poly.MaxX() + 1, p.poly.MinY(), p.poly.MaxY() + 1, p.poly.MinZ(), p.poly.MaxZ() + 1
	case KindCuboid:
		minX, minY, minZ = math.MaxInt32, math.MaxInt32, math.MaxInt32
		maxXExcl, maxYExcl, maxZExcl = math.MinInt32, math.MinInt32, math.MinInt32
		for _, c := range p.cuboids {
			if c.X1() < minX {
				minX = c.X1()
			}
			if c.X2() > maxXExcl {
				maxXExcl = c.X2()
			}
			if c.Y1() < minY {
				minY = c.Y1()
			}
			if c.Y2() > maxYExcl {
				maxYExcl = c.Y2()
			}
			if c.Z1() < minZ {
				minZ = c.Z1()
			}
			if c.Z2() > maxZExcl {
				maxZExcl = c.Z2()
			}
		}
		return
	default:
		panic(fmt.Sprintf("program: unhandled kind %v", p.kind))
	}
}

// ZExtent returns [minZ, maxZExclusive).
func (p Program) ZExtent() (minZ, maxZExcl int32) {
	_, _, _, _, minZ, maxZExcl = p.Bounds()
	return
}

// BurstTime is the number of cycles spanned along z: max_z - min_z for
// Cuboid-format programs, max_z - min_z + 1 for Polycube-format programs
// (which count individual cells rather than a half-open extent).
func (p Program) BurstTime() int32 {
	minZ, maxZExcl := p.ZExtent()
	switch p.kind {
	case KindCuboid:
		return maxZExcl - minZ
	case KindPolycube:
		return p.poly.MaxZ() - p.poly.MinZ() + 1
	default:
		panic(fmt.Sprintf("program: unhandled kind %v", p.kind))
	}
}

// Overlaps reports whether p and other share any spacetime cell.
func (p Program) Overlaps(other Program) bool {
	switch {
	case p.kind == KindCuboid && other.kind == KindCuboid:
		for _, a := range p.cuboids {
			for _, b := range other.cuboids {
				if a.Overlaps(b) {
					return true
				}
			}
		}
		return false
	case p.kind == KindPolycube && other.kind == KindPolycube:
		return polycubesOverlap(p.poly, other.poly)
	case p.kind == KindPolycube && other.kind == KindCuboid:
		return polycubeOverlapsCuboids(p.poly, other.cuboids)
	default: // cuboid vs polycube
		return polycubeOverlapsCuboids(other.poly, p.cuboids)
	}
}

func polycubesOverlap(a, b *geometry.Polycube) bool {
	set := make(map[geometry.Coordinate]struct{}, a.Size())
	for _, blk := range a.Blocks() {
		set[blk] = struct{}{}
	}
	for _, blk := range b.Blocks() {
		if _, ok := set[blk]; ok {
			return true
		}
	}
	return false
}

func polycubeOverlapsCuboids(p *geometry.Polycube, cuboids []geometry.Cuboid) bool {
	for _, blk := range p.Blocks() {
		for _, c := range cuboids {
			if blk.X >= c.X1() && blk.X < c.X2() &&
				blk.Y >= c.Y1() && blk.Y < c.Y2() &&
				blk.Z >= c.Z1() && blk.Z < c.Z2() {
				return true
			}
		}
	}
	return false
}

// Clone returns a deep copy of p.
func (p Program) Clone() Program {
	switch p.kind {
	case KindPolycube:
		return NewPolycubeProgram(p.poly.Clone())
	case KindCuboid:
		return NewCuboidProgram(p.cuboids)
	default:
		panic(fmt.Sprintf("program: unhandled kind %v", p.kind))
	}
}
