package program

import (
	"testing"

	"github.com/fabric-sim/fabric-sim/sim/geometry"
)

func singleCellPolycube(x, y, z int32) *geometry.Polycube {
	return geometry.NewPolycube([]geometry.Coordinate{geometry.NewCoordinate(x, y, z)})
}

// GIVEN a Polycube-format program spanning z in [1,3]
// WHEN BurstTime is computed
// THEN it counts cells inclusively (max_z - min_z + 1)
func TestProgram_BurstTime_Polycube(t *testing.T) {
	p := geometry.NewPolycube([]geometry.Coordinate{
		geometry.NewCoordinate(0, 0, 1),
		geometry.NewCoordinate(0, 0, 3),
	})
	prog := NewPolycubeProgram(p)
	if got := prog.BurstTime(); got != 3 {
		t.Errorf("BurstTime: got %d, want 3", got)
	}
}

// GIVEN a Cuboid-format program with SizeZ=4
// WHEN BurstTime is computed
// THEN it equals the half-open z extent (max_z - min_z)
func TestProgram_BurstTime_Cuboid(t *testing.T) {
	c := geometry.NewCuboid(geometry.NewCoordinate(0, 0, 0), 2, 2, 4)
	prog := NewCuboidProgram([]geometry.Cuboid{c})
	if got := prog.BurstTime(); got != 4 {
		t.Errorf("BurstTime: got %d, want 4", got)
	}
}

func TestProgram_Overlaps_PolycubePolycube(t *testing.T) {
	a := NewPolycubeProgram(singleCellPolycube(0, 0, 0))
	b := NewPolycubeProgram(singleCellPolycube(0, 0, 0))
	c := NewPolycubeProgram(singleCellPolycube(1, 0, 0))

	if !a.Overlaps(b) {
		t.Errorf("expected a and b to overlap (same cell)")
	}
	if a.Overlaps(c) {
		t.Errorf("expected a and c not to overlap")
	}
}

func TestProgram_Overlaps_CuboidCuboid(t *testing.T) {
	a := NewCuboidProgram([]geometry.Cuboid{geometry.NewCuboid(geometry.NewCoordinate(0, 0, 0), 2, 2, 2)})
	b := NewCuboidProgram([]geometry.Cuboid{geometry.NewCuboid(geometry.NewCoordinate(1, 1, 1), 2, 2, 2)})
	c := NewCuboidProgram([]geometry.Cuboid{geometry.NewCuboid(geometry.NewCoordinate(5, 5, 5), 2, 2, 2)})

	if !a.Overlaps(b) {
		t.Errorf("expected a and b to overlap")
	}
	if a.Overlaps(c) {
		t.Errorf("expected a and c not to overlap")
	}
}

func TestProgram_Overlaps_Mixed(t *testing.T) {
	poly := NewPolycubeProgram(singleCellPolycube(0, 0, 0))
	cub := NewCuboidProgram([]geometry.Cuboid{geometry.NewCuboid(geometry.NewCoordinate(0, 0, 0), 1, 1, 1)})
	far := NewCuboidProgram([]geometry.Cuboid{geometry.NewCuboid(geometry.NewCoordinate(10, 10, 10), 1, 1, 1)})

	if !poly.Overlaps(cub) {
		t.Errorf("expected poly and cub to overlap at the shared cell")
	}
	if poly.Overlaps(far) {
		t.Errorf("expected poly and far not to overlap")
	}
}

// GIVEN a Polycube program not anchored at the origin
// WHEN ApplySchedule translates it with Rot=0
// THEN every block shifts so the bounding-box minimum lands at (Dx, Dy, Dz)
func TestApplySchedule_Polycube_TranslateOnly(t *testing.T) {
	p := NewPolycubeProgram(geometry.NewPolycube([]geometry.Coordinate{
		geometry.NewCoordinate(5, 5, 5),
		geometry.NewCoordinate(6, 5, 5),
	}))

	out, err := ApplySchedule(p, Schedule{Dx: 10, Dy: 20, Dz: 30})
	if err != nil {
		t.Fatalf("ApplySchedule: unexpected error %v", err)
	}
	poly, _ := out.Polycube()
	if poly.MinX() != 10 || poly.MinY() != 20 || poly.MinZ() != 30 {
		t.Errorf("got min (%d,%d,%d), want (10,20,30)", poly.MinX(), poly.MinY(), poly.MinZ())
	}
}

// GIVEN a Cuboid program
// WHEN ApplySchedule is called with a non-zero rotation and no retained source
// THEN it reports ErrUnsupportedRotation
func TestApplySchedule_Cuboid_RotationUnsupported(t *testing.T) {
	p := NewCuboidProgram([]geometry.Cuboid{geometry.NewCuboid(geometry.NewCoordinate(0, 0, 0), 2, 3, 4)})

	_, err := ApplySchedule(p, Schedule{Rot: 1})
	if err != ErrUnsupportedRotation {
		t.Fatalf("got err %v, want ErrUnsupportedRotation", err)
	}
}

// GIVEN a Cuboid program derived from a Polycube via CuboidFromPolycube
// WHEN ApplySchedule rotates it
// THEN the rotation is replayed against the retained source and the cuboid rebuilt
func TestApplySchedule_Cuboid_RotationWithSource(t *testing.T) {
	poly := geometry.NewPolycube([]geometry.Coordinate{
		geometry.NewCoordinate(0, 0, 0),
		geometry.NewCoordinate(1, 0, 0),
	})
	cuboid := geometry.CuboidFromPolycube(poly)
	p := NewCuboidProgram([]geometry.Cuboid{cuboid})

	out, err := ApplySchedule(p, Schedule{Rot: 1})
	if err != nil {
		t.Fatalf("ApplySchedule: unexpected error %v", err)
	}
	cs, _ := out.Cuboids()
	if len(cs) != 1 {
		t.Fatalf("expected a single rebuilt cuboid, got %d", len(cs))
	}
	// a 2-cell x-run rotated 90 degrees becomes a 2-cell y-run
	if cs[0].SizeX != 1 || cs[0].SizeY != 2 {
		t.Errorf("got size (%d,%d), want (1,2)", cs[0].SizeX, cs[0].SizeY)
	}
}
