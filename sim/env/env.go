// Package env implements the fabric's spacetime occupancy model: the
// issued/running program sets, the global program counter and clock, the
// suspension map, and on-line defragmentation.
package env

import (
	"github.com/fabric-sim/fabric-sim/sim/program"
)

// Config holds the fabric dimensions and defrag tuning the Environment
// needs. It is a narrow projection of the simulation's full configuration,
// kept free of any dependency on the config-loading package.
type Config struct {
	SizeX, SizeY   int64
	DefragInterval int64 // minimum z gap between consecutive defrag points; 0 disables spacing
	BatchSize      int   // feeds defrag_size = max(2, 4*BatchSize)
}

// Environment owns the fabric's spacetime state for the lifetime of one
// simulation run. It is exclusively mutated by the Simulator; schedulers
// observe it through a narrow read-only view.
type Environment struct {
	config Config

	issued  []program.Program
	running []program.Program

	endPC       int64
	currentTime int64
	pc          int64

	suspendUntil map[int64]int64

	defragCandidates map[int64]struct{}
	lastDefragPoint  int64
	defragCostSum    int64
	defragMoveAreas  []MoveArea
}

// MoveArea is a thin z-slab recorded when defragmentation physically
// relocates a cuboid; schedulers must treat it as a flat obstacle at its z
// plane.
type MoveArea struct {
	X1, X2, Y1, Y2 int64
	Z              int64
}

// New builds an empty Environment for the given fabric config.
func New(cfg Config) *Environment {
	return &Environment{
		config:           cfg,
		suspendUntil:     make(map[int64]int64),
		defragCandidates: make(map[int64]struct{}),
	}
}

// SizeX and SizeY return the fabric's xy extent.
func (e *Environment) SizeX() int64 { return e.config.SizeX }
func (e *Environment) SizeY() int64 { return e.config.SizeY }

// PC returns the current program counter.
func (e *Environment) PC() int64 { return e.pc }

// CurrentTime returns the simulator's absolute clock.
func (e *Environment) CurrentTime() int64 { return e.currentTime }

// EndPC returns the maximum max_z_exclusive over all issued programs, or 0
// if none are issued.
func (e *Environment) EndPC() int64 { return e.endPC }

// Running returns the programs whose max_z_exclusive exceeds pc.
func (e *Environment) Running() []program.Program {
	out := make([]program.Program, len(e.running))
	copy(out, e.running)
	return out
}

// Issued returns every program successfully issued, in issue order. After
// DefragAt the set is rebuilt from the cut and compacted pieces, one
// single-cuboid program per piece.
func (e *Environment) Issued() []program.Program {
	out := make([]program.Program, len(e.issued))
	copy(out, e.issued)
	return out
}

// MoveAreas returns the move regions recorded by defragmentation so far.
func (e *Environment) MoveAreas() []MoveArea {
	out := make([]MoveArea, len(e.defragMoveAreas))
	copy(out, e.defragMoveAreas)
	return out
}

// DefragCostSum returns the accumulated defragmentation cost, in cycles.
func (e *Environment) DefragCostSum() int64 { return e.defragCostSum }

// CanIssue reports whether p lies inside [0,SizeX) x [0,SizeY) x [0,inf)
// and does not overlap any currently running program.
func (e *Environment) CanIssue(p program.Program) bool {
	minX, maxXExcl, minY, maxYExcl, minZ, _ := p.Bounds()
	if minX < 0 || int64(maxXExcl) > e.config.SizeX {
		return false
	}
	if minY < 0 || int64(maxYExcl) > e.config.SizeY {
		return false
	}
	if minZ < 0 {
		return false
	}
	for _, r := range e.running {
		if p.Overlaps(r) {
			return false
		}
	}
	return true
}

// IssueProgram appends p to both issued and running if CanIssue(p), raises
// endPC to cover it, and registers its max_z_exclusive as a defrag
// candidate. Returns whether the program was issued.
func (e *Environment) IssueProgram(p program.Program) bool {
	if !e.CanIssue(p) {
		return false
	}
	e.issued = append(e.issued, p)
	e.running = append(e.running, p)

	_, maxZExcl := p.ZExtent()
	if int64(maxZExcl) > e.endPC {
		e.endPC = int64(maxZExcl)
	}
	if int64(maxZExcl) > e.lastDefragPoint {
		e.defragCandidates[int64(maxZExcl)] = struct{}{}
	}
	return true
}

// pruneRunning drops from running any program whose max_z_exclusive has
// fallen at or below pc.
func (e *Environment) pruneRunning() {
	kept := e.running[:0]
	for _, p := range e.running {
		_, maxZExcl := p.ZExtent()
		if int64(maxZExcl) > e.pc {
			kept = append(kept, p)
		}
	}
	e.running = kept
}

// rebuildRunning recomputes running from scratch against issued, used after
// defragmentation rewrites issued wholesale.
func (e *Environment) rebuildRunning() {
	running := make([]program.Program, 0, len(e.issued))
	for _, p := range e.issued {
		_, maxZExcl := p.ZExtent()
		if int64(maxZExcl) > e.pc {
			running = append(running, p)
		}
	}
	e.running = running
}
