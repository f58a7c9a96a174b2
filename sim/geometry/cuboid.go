package geometry

// Cuboid occupies [x, x+sx) x [y, y+sy) x [z, z+sz) for a non-negative
// integer size triple. It may carry a read-only snapshot of the source
// Polycube it was approximated from, used only to reverse-apply a
// rotation onto an approximated cuboid; this is a value, never a cycle.
type Cuboid struct {
	Pos                Coordinate
	SizeX, SizeY, SizeZ int32

	source *Polycube
}

// NewCuboid builds a Cuboid with no source polycube.
func NewCuboid(pos Coordinate, sx, sy, sz int32) Cuboid {
	return Cuboid{Pos: pos, SizeX: sx, SizeY: sy, SizeZ: sz}
}

// CuboidFromPolycube returns the minimal bounding Cuboid of p, retaining
// p as the cuboid's source for later rotation recovery.
func CuboidFromPolycube(p *Polycube) Cuboid {
	return Cuboid{
		Pos:    NewCoordinate(p.MinX(), p.MinY(), p.MinZ()),
		SizeX:  p.MaxX() - p.MinX() + 1,
		SizeY:  p.MaxY() - p.MinY() + 1,
		SizeZ:  p.MaxZ() - p.MinZ() + 1,
		source: p,
	}
}

// Source returns the polycube this cuboid was approximated from, or nil.
func (c Cuboid) Source() *Polycube { return c.source }

// WithSource returns a copy of c carrying src as its source snapshot.
func (c Cuboid) WithSource(src *Polycube) Cuboid {
	c.source = src
	return c
}

func (c Cuboid) X1() int32 { return c.Pos.X }
func (c Cuboid) Y1() int32 { return c.Pos.Y }
func (c Cuboid) Z1() int32 { return c.Pos.Z }
func (c Cuboid) X2() int32 { return c.Pos.X + c.SizeX }
func (c Cuboid) Y2() int32 { return c.Pos.Y + c.SizeY }
func (c Cuboid) Z2() int32 { return c.Pos.Z + c.SizeZ }

// Overlaps reports whether c and other share any unit cell.
func (c Cuboid) Overlaps(other Cuboid) bool {
	if c.X2() <= other.X1() || other.X2() <= c.X1() {
		return false
	}
	if c.Y2() <= other.Y1() || other.Y2() <= c.Y1() {
		return false
	}
	if c.Z2() <= other.Z1() || other.Z2() <= c.Z1() {
		return false
	}
	return true
}

// OverlapsXY reports overlap ignoring the z extent entirely.
func (c Cuboid) OverlapsXY(other Cuboid) bool {
	if c.X2() <= other.X1() || other.X2() <= c.X1() {
		return false
	}
	if c.Y2() <= other.Y1() || other.Y2() <= c.Y1() {
		return false
	}
	return true
}

// CutAtZ splits c at the plane z into the part fully below z and the
// part at/above z. ok is false if z does not strictly divide c's z-extent
// (z <= z1 or z >= z2), in which case below/above are zero-valued.
func (c Cuboid) CutAtZ(z int32) (below, above Cuboid, ok bool) {
	if z <= c.Z1() || z >= c.Z2() {
		return Cuboid{}, Cuboid{}, false
	}
	below = NewCuboid(c.Pos, c.SizeX, c.SizeY, z-c.Z1())
	above = NewCuboid(NewCoordinate(c.X1(), c.Y1(), z), c.SizeX, c.SizeY, c.Z2()-z)
	return below, above, true
}
