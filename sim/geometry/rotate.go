package geometry

// RotateXY rotates (x, y) by rot * 90 degrees counter-clockwise around
// the z axis. rot is taken mod 4; z is untouched.
func RotateXY(c Coordinate, rot int32) Coordinate {
	x, y := c.X, c.Y
	switch ((rot % 4) + 4) % 4 {
	case 0:
		return Coordinate{X: x, Y: y, Z: c.Z}
	case 1:
		return Coordinate{X: -y, Y: x, Z: c.Z}
	case 2:
		return Coordinate{X: -x, Y: -y, Z: c.Z}
	default: // 3
		return Coordinate{X: y, Y: -x, Z: c.Z}
	}
}

// FlipX mirrors (x, y, z) across the x=0 plane: x becomes -x.
func FlipX(c Coordinate) Coordinate {
	return Coordinate{X: -c.X, Y: c.Y, Z: c.Z}
}

// TransformPolycube applies, in order, a flip across x=0 (if flip) then a
// rot*90-degree rotation in the xy plane to every block of p, returning a
// new unnormalized Polycube (blocks are not shifted to the origin).
func TransformPolycube(p *Polycube, rot int32, flip bool) *Polycube {
	blocks := make([]Coordinate, len(p.Blocks()))
	for i, b := range p.Blocks() {
		if flip {
			b = FlipX(b)
		}
		blocks[i] = RotateXY(b, rot)
	}
	return NewPolycube(blocks)
}
