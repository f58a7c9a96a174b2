package preprocess

import (
	"sort"

	"github.com/fabric-sim/fabric-sim/sim/geometry"
	"github.com/fabric-sim/fabric-sim/sim/program"
)

// ConvertToKCuboid replaces a Polycube-format Program with one bounding
// Cuboid per non-empty bin of a K-way equal-width partition of its z-range.
// This generalizes ConvertToCuboid (K == 1 is equivalent to it) to trade
// tighter bounding boxes for a larger fixed-obstacle count in the packing
// problems that consume the result.
type ConvertToKCuboid struct {
	K int
}

func (c ConvertToKCuboid) Process(p program.Program) program.Program {
	poly, ok := p.Polycube()
	if !ok {
		return p
	}
	k := c.K
	if k < 1 {
		k = 1
	}

	minZ, maxZ := poly.MinZ(), poly.MaxZ()
	zRange := maxZ - minZ + 1
	binWidth := (zRange + int32(k) - 1) / int32(k)
	if binWidth < 1 {
		binWidth = 1
	}

	bins := make(map[int32][]geometry.Coordinate)
	for _, blk := range poly.Blocks() {
		idx := (blk.Z - minZ) / binWidth
		bins[idx] = append(bins[idx], blk)
	}

	indices := make([]int32, 0, len(bins))
	for idx := range bins {
		indices = append(indices, idx)
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })

	cuboids := make([]geometry.Cuboid, 0, len(bins))
	for _, idx := range indices {
		binPoly := geometry.NewPolycube(bins[idx])
		cuboids = append(cuboids, geometry.CuboidFromPolycube(binPoly))
	}
	return program.NewCuboidProgram(cuboids)
}
