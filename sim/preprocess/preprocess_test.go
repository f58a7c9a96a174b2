package preprocess

import (
	"testing"

	"github.com/fabric-sim/fabric-sim/sim/geometry"
	"github.com/fabric-sim/fabric-sim/sim/program"
)

// GIVEN a Polycube-format program
// WHEN ConvertToCuboid processes it
// THEN the result is a single Cuboid bounding all of the polycube's blocks
func TestConvertToCuboid_Polycube(t *testing.T) {
	poly := geometry.NewPolycube([]geometry.Coordinate{
		geometry.NewCoordinate(0, 0, 0),
		geometry.NewCoordinate(2, 3, 1),
	})
	out := ConvertToCuboid{}.Process(program.NewPolycubeProgram(poly))

	cuboids, ok := out.Cuboids()
	if !ok {
		t.Fatalf("expected output to be cuboid-format")
	}
	if len(cuboids) != 1 {
		t.Fatalf("expected exactly one cuboid, got %d", len(cuboids))
	}
	c := cuboids[0]
	if c.X1() != 0 || c.X2() != 3 || c.Y1() != 0 || c.Y2() != 4 || c.Z1() != 0 || c.Z2() != 2 {
		t.Errorf("unexpected bounding box: %+v", c)
	}
}

// GIVEN a Cuboid-format program
// WHEN ConvertToCuboid processes it
// THEN it passes through unchanged
func TestConvertToCuboid_CuboidPassthrough(t *testing.T) {
	cuboid := geometry.NewCuboid(geometry.NewCoordinate(1, 2, 3), 2, 2, 2)
	in := program.NewCuboidProgram([]geometry.Cuboid{cuboid})
	out := ConvertToCuboid{}.Process(in)

	cs, _ := out.Cuboids()
	if len(cs) != 1 || cs[0] != cuboid {
		t.Errorf("expected unchanged passthrough, got %+v", cs)
	}
}

// GIVEN a polycube spanning z in [0,3] split evenly across 2 bins
// WHEN ConvertToKCuboid processes it with K=2
// THEN two cuboids are produced, one per non-empty bin
func TestConvertToKCuboid_SplitsByZ(t *testing.T) {
	poly := geometry.NewPolycube([]geometry.Coordinate{
		geometry.NewCoordinate(0, 0, 0),
		geometry.NewCoordinate(0, 0, 1),
		geometry.NewCoordinate(0, 0, 2),
		geometry.NewCoordinate(0, 0, 3),
	})
	out := ConvertToKCuboid{K: 2}.Process(program.NewPolycubeProgram(poly))

	cuboids, ok := out.Cuboids()
	if !ok {
		t.Fatalf("expected cuboid-format output")
	}
	if len(cuboids) != 2 {
		t.Fatalf("expected 2 bins, got %d", len(cuboids))
	}
	if cuboids[0].Z1() != 0 || cuboids[0].Z2() != 2 {
		t.Errorf("bin 0: got z [%d,%d), want [0,2)", cuboids[0].Z1(), cuboids[0].Z2())
	}
	if cuboids[1].Z1() != 2 || cuboids[1].Z2() != 4 {
		t.Errorf("bin 1: got z [%d,%d), want [2,4)", cuboids[1].Z1(), cuboids[1].Z2())
	}
}

// GIVEN a K larger than the polycube's z-extent
// WHEN ConvertToKCuboid processes it
// THEN one cuboid is produced per occupied z-layer, never more bins than layers
func TestConvertToKCuboid_KExceedsExtent(t *testing.T) {
	poly := geometry.NewPolycube([]geometry.Coordinate{
		geometry.NewCoordinate(0, 0, 0),
		geometry.NewCoordinate(0, 0, 1),
	})
	out := ConvertToKCuboid{K: 10}.Process(program.NewPolycubeProgram(poly))

	cuboids, _ := out.Cuboids()
	if len(cuboids) != 2 {
		t.Fatalf("expected 2 bins (one per z layer), got %d", len(cuboids))
	}
}
