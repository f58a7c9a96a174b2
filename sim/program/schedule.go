package program

import (
	"errors"

	"github.com/fabric-sim/fabric-sim/sim/geometry"
)

// ErrUnsupportedRotation is returned by ApplySchedule when a non-zero
// rotation or flip is requested against a Cuboid-format program that does
// not carry enough information (an originating Polycube) to re-derive a
// rotated bounding box.
var ErrUnsupportedRotation = errors.New("program: rotation not supported for this cuboid program")

// Schedule is the placement a scheduler assigns to a Program: a translation
// (Dx, Dy, Dz) plus an orientation (Rot quarter-turns about z, and an
// optional flip across the x=0 plane, x becoming -x, applied before rotation).
type Schedule struct {
	Dx, Dy, Dz int32
	Rot        int32
	Flip       bool
}

// ApplySchedule returns the Program p would become once placed according to
// s: flip, then rotate, then translate so its bounding-box minimum lands at
// (Dx, Dy, Dz).
//
// Cuboid-format programs only support translation (Rot == 0, Flip == false)
// unless the program is a single cuboid that retains the Polycube it was
// derived from, in which case the rotation is replayed against that source
// and the cuboid is rebuilt from the rotated bounding box. A program of
// several cuboids is refused a rotation or flip even if each cuboid has a
// source.
func ApplySchedule(p Program, s Schedule) (Program, error) {
	switch p.kind {
	case KindPolycube:
		return applyToPolycube(p, s), nil
	case KindCuboid:
		return applyToCuboids(p, s)
	default:
		return Program{}, errors.New("program: unhandled kind in ApplySchedule")
	}
}

func applyToPolycube(p Program, s Schedule) Program {
	transformed := geometry.TransformPolycube(p.poly, s.Rot, s.Flip)
	blocks := transformed.Blocks()
	shifted := make([]geometry.Coordinate, len(blocks))
	minX, minY, minZ := transformed.MinX(), transformed.MinY(), transformed.MinZ()
	for i, b := range blocks {
		shifted[i] = geometry.NewCoordinate(
			b.X-minX+s.Dx,
			b.Y-minY+s.Dy,
			b.Z-minZ+s.Dz,
		)
	}
	return NewPolycubeProgram(geometry.NewPolycube(shifted))
}

func applyToCuboids(p Program, s Schedule) (Program, error) {
	if s.Rot == 0 && !s.Flip {
		minX, _, minY, _, minZ, _ := p.Bounds()
		out := make([]geometry.Cuboid, len(p.cuboids))
		for i, c := range p.cuboids {
			pos := geometry.NewCoordinate(
				c.X1()-minX+s.Dx,
				c.Y1()-minY+s.Dy,
				c.Z1()-minZ+s.Dz,
			)
			out[i] = geometry.NewCuboid(pos, c.X2()-c.X1(), c.Y2()-c.Y1(), c.Z2()-c.Z1())
		}
		return NewCuboidProgram(out), nil
	}

	// Rotation/flip requested: only representable for a single cuboid that
	// retains the polycube it was bounding-boxed from (the case produced by
	// ConvertToCuboid).
	if len(p.cuboids) != 1 || p.cuboids[0].Source() == nil {
		return Program{}, ErrUnsupportedRotation
	}
	rotated := applyToPolycube(NewPolycubeProgram(p.cuboids[0].Source()), s)
	poly, _ := rotated.Polycube()
	cuboid := geometry.CuboidFromPolycube(poly)
	return NewCuboidProgram([]geometry.Cuboid{cuboid}), nil
}
