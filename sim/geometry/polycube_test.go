package geometry

import "testing"

func TestPolycube_Bounds(t *testing.T) {
	p := NewPolycube([]Coordinate{
		NewCoordinate(1, 2, 3),
		NewCoordinate(2, 0, 1),
	})

	if p.MinX() != 1 || p.MaxX() != 2 {
		t.Errorf("x bounds: got [%d,%d], want [1,2]", p.MinX(), p.MaxX())
	}
	if p.MinY() != 0 || p.MaxY() != 2 {
		t.Errorf("y bounds: got [%d,%d], want [0,2]", p.MinY(), p.MaxY())
	}
	if p.MinZ() != 1 || p.MaxZ() != 3 {
		t.Errorf("z bounds: got [%d,%d], want [1,3]", p.MinZ(), p.MaxZ())
	}
}

// GIVEN two polycubes with the same blocks in different order
// WHEN compared with Equal
// THEN they are equal, since block order carries no meaning
func TestPolycube_Equal_IgnoresOrder(t *testing.T) {
	a := NewPolycube([]Coordinate{NewCoordinate(0, 0, 0), NewCoordinate(0, 1, 0)})
	b := NewPolycube([]Coordinate{NewCoordinate(0, 1, 0), NewCoordinate(0, 0, 0)})

	if !a.Equal(b) {
		t.Errorf("expected a and b to be equal regardless of block order")
	}
}

func TestPolycube_Equal_Duplicate(t *testing.T) {
	a := NewPolycube([]Coordinate{NewCoordinate(0, 0, 0)})
	b := NewPolycube([]Coordinate{NewCoordinate(0, 0, 0), NewCoordinate(1, 0, 0)})

	if a.Equal(b) {
		t.Errorf("expected differently-sized polycubes to be unequal")
	}
}

func TestPolycube_New_DedupesBlocks(t *testing.T) {
	p := NewPolycube([]Coordinate{NewCoordinate(0, 0, 0), NewCoordinate(0, 0, 0)})
	if p.Size() != 1 {
		t.Errorf("expected duplicate blocks to be deduplicated, got size %d", p.Size())
	}
}
