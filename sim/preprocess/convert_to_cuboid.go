package preprocess

import (
	"github.com/fabric-sim/fabric-sim/sim/geometry"
	"github.com/fabric-sim/fabric-sim/sim/program"
)

// ConvertToCuboid replaces a Polycube-format Program with the single
// minimal bounding Cuboid of its blocks, retaining the source Polycube so a
// later Schedule with a non-zero rotation can still be applied.
type ConvertToCuboid struct{}

func (ConvertToCuboid) Process(p program.Program) program.Program {
	poly, ok := p.Polycube()
	if !ok {
		return p
	}
	cuboid := geometry.CuboidFromPolycube(poly)
	return program.NewCuboidProgram([]geometry.Cuboid{cuboid})
}
