// Package geometry provides the spacetime primitives the scheduler packs:
// Coordinate, Polycube, and Cuboid, plus overlap, cut, and rotate/flip
// operations over them.
package geometry

import "fmt"

// Coordinate is a signed integer triple (x, y, z); z indexes a cycle.
type Coordinate struct {
	X, Y, Z int32
}

// NewCoordinate builds a Coordinate from its components.
func NewCoordinate(x, y, z int32) Coordinate {
	return Coordinate{X: x, Y: y, Z: z}
}

// Add returns the componentwise sum of c and other.
func (c Coordinate) Add(other Coordinate) Coordinate {
	return Coordinate{X: c.X + other.X, Y: c.Y + other.Y, Z: c.Z + other.Z}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.X, c.Y, c.Z)
}
