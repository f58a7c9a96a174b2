// Package preprocess converts Polycube-format programs into one or more
// bounding Cuboids before they are handed to a Scheduler, trading exact
// shape for the cheaper box-overlap tests the schedulers rely on.
package preprocess

import "github.com/fabric-sim/fabric-sim/sim/program"

// Preprocessor transforms a Program before scheduling. Cuboid-format
// programs pass through unchanged; only Polycube-format programs are
// actually converted.
type Preprocessor interface {
	Process(p program.Program) program.Program
}

// Kind names a Preprocessor for config-driven selection.
type Kind string

const (
	KindConvertToCuboid  Kind = "convert-to-cuboid"
	KindConvertToKCuboid Kind = "convert-to-k-cuboid"
)

// New builds the Preprocessor named by kind. numCuboids is only consulted
// for KindConvertToKCuboid, and must be >= 1.
func New(kind Kind, numCuboids int) Preprocessor {
	switch kind {
	case KindConvertToKCuboid:
		return ConvertToKCuboid{K: numCuboids}
	default:
		return ConvertToCuboid{}
	}
}
