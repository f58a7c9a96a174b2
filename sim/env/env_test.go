package env

import (
	"testing"

	"github.com/fabric-sim/fabric-sim/sim/geometry"
	"github.com/fabric-sim/fabric-sim/sim/program"
)

func cuboidProg(x, y, z, sx, sy, sz int32) program.Program {
	return program.NewCuboidProgram([]geometry.Cuboid{geometry.NewCuboid(geometry.NewCoordinate(x, y, z), sx, sy, sz)})
}

// GIVEN a 2x2 fabric
// WHEN a program overlapping a running program is issued
// THEN IssueProgram fails and the overlapping program is not in issued
func TestIssueProgram_RejectsOverlap(t *testing.T) {
	e := New(Config{SizeX: 2, SizeY: 2})
	if !e.IssueProgram(cuboidProg(0, 0, 0, 1, 1, 1)) {
		t.Fatalf("expected first issue to succeed")
	}
	if e.IssueProgram(cuboidProg(0, 0, 0, 1, 1, 1)) {
		t.Errorf("expected second overlapping issue to fail")
	}
	if len(e.Issued()) != 1 {
		t.Errorf("expected 1 issued program, got %d", len(e.Issued()))
	}
}

// GIVEN a fabric of size 1x1
// WHEN a program outside the xy range is issued
// THEN CanIssue reports false
func TestCanIssue_RejectsOutOfRange(t *testing.T) {
	e := New(Config{SizeX: 1, SizeY: 1})
	if e.CanIssue(cuboidProg(1, 0, 0, 1, 1, 1)) {
		t.Errorf("expected out-of-range program to be rejected")
	}
}

// GIVEN a program issued at z in [0,3)
// WHEN pc advances past 3
// THEN the program is pruned from running but remains in issued
func TestIssueProgram_RunningPrunedAfterPC(t *testing.T) {
	e := New(Config{SizeX: 2, SizeY: 2})
	e.IssueProgram(cuboidProg(0, 0, 0, 1, 1, 3))

	e.AdvanceBy(3)

	if len(e.Running()) != 0 {
		t.Errorf("expected running to be empty after pc passes max_z_exclusive, got %d", len(e.Running()))
	}
	if len(e.Issued()) != 1 {
		t.Errorf("expected issued to retain the program, got %d", len(e.Issued()))
	}
}

// GIVEN a suspension registered at z=0 for t=5
// WHEN AdvanceBy(10) is called
// THEN pc reaches the suspension point, current_time reaches at least t,
// the suspension is dropped, and pc advances only by the budget left after
// the 5-cycle wait
func TestAdvanceBy_DrainsSuspension(t *testing.T) {
	e := New(Config{SizeX: 2, SizeY: 2})
	e.SuspendAt(0, 5)

	e.AdvanceBy(10)

	if e.PC() != 5 {
		t.Errorf("PC: got %d, want 5 (5 of the 10 budget cycles spent waiting)", e.PC())
	}
	if e.CurrentTime() != 10 {
		t.Errorf("CurrentTime: got %d, want 10 (wait fully absorbed by budget)", e.CurrentTime())
	}
}

// GIVEN a suspension that exceeds the available budget
// WHEN AdvanceBy is called with a small budget
// THEN the suspension re-inserts itself and pc stalls at the suspension point
func TestAdvanceBy_PartialWait(t *testing.T) {
	e := New(Config{SizeX: 2, SizeY: 2})
	e.SuspendAt(0, 100)

	e.AdvanceBy(1)

	if e.PC() != 0 {
		t.Errorf("PC: got %d, want 0 (suspension still pending)", e.PC())
	}
	if e.CurrentTime() != 1 {
		t.Errorf("CurrentTime: got %d, want 1", e.CurrentTime())
	}
}

// GIVEN an issued program ending at end_pc=5 and a recorded defrag cost
// WHEN RemainingCycles is computed with no pending suspensions
// THEN it equals (end_pc - pc) + defrag_cost_sum
func TestRemainingCycles_NoSuspensions(t *testing.T) {
	e := New(Config{SizeX: 2, SizeY: 2})
	e.IssueProgram(cuboidProg(0, 0, 0, 1, 1, 5))
	e.defragCostSum = 2

	if got := e.RemainingCycles(); got != 7 {
		t.Errorf("RemainingCycles: got %d, want 7", got)
	}
}
