package env

import "errors"

// ErrUnsupportedFormat is returned by DefragAt when the issued set contains
// a Polycube-format program; defragmentation only understands the Cuboid
// representation.
var ErrUnsupportedFormat = errors.New("env: defrag only supports cuboid-format programs")
