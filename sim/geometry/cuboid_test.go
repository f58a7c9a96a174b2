package geometry

import "testing"

// GIVEN a 1x1x5 cuboid at the origin
// WHEN it is cut at z=3
// THEN the lower half spans z in [0,3) and the upper half spans z in [3,5)
func TestCuboid_CutAtZ(t *testing.T) {
	c := NewCuboid(NewCoordinate(0, 0, 0), 1, 1, 5)

	below, above, ok := c.CutAtZ(3)

	if !ok {
		t.Fatalf("CutAtZ: expected ok=true")
	}
	wantBelow := NewCuboid(NewCoordinate(0, 0, 0), 1, 1, 3)
	wantAbove := NewCuboid(NewCoordinate(0, 0, 3), 1, 1, 2)
	if below != wantBelow {
		t.Errorf("below: got %+v, want %+v", below, wantBelow)
	}
	if above != wantAbove {
		t.Errorf("above: got %+v, want %+v", above, wantAbove)
	}
}

func TestCuboid_CutAtZ_OutOfRange(t *testing.T) {
	c := NewCuboid(NewCoordinate(0, 0, 0), 1, 1, 5)

	if _, _, ok := c.CutAtZ(0); ok {
		t.Errorf("CutAtZ(z1): expected ok=false")
	}
	if _, _, ok := c.CutAtZ(5); ok {
		t.Errorf("CutAtZ(z2): expected ok=false")
	}
}

func TestCuboid_Overlaps(t *testing.T) {
	a := NewCuboid(NewCoordinate(0, 0, 0), 2, 2, 2)
	b := NewCuboid(NewCoordinate(1, 1, 1), 2, 2, 2)
	c := NewCuboid(NewCoordinate(2, 0, 0), 2, 2, 2)

	if !a.Overlaps(b) {
		t.Errorf("expected a and b to overlap")
	}
	if a.Overlaps(c) {
		t.Errorf("expected a and c not to overlap (touching faces only)")
	}
}
