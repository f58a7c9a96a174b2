// Package scheduler defines the Scheduler interface the Simulator drives,
// the narrow read-only EnvView it exposes to implementations, and the
// greedy corner-point placement engine.
package scheduler

import (
	"github.com/fabric-sim/fabric-sim/sim/env"
	"github.com/fabric-sim/fabric-sim/sim/job"
	"github.com/fabric-sim/fabric-sim/sim/program"
)

// EnvView is the read-only slice of Environment a Scheduler may observe.
// It never exposes any mutating method: schedulers propose placements, the
// Simulator is the only writer of fabric state.
type EnvView interface {
	PC() int64
	EndPC() int64
	Running() []program.Program
	CanIssue(p program.Program) bool
	MoveAreas() []env.MoveArea
}

// Placement is one job's proposed landing spot, returned by Run.
type Placement struct {
	JobID    job.ID
	Schedule program.Schedule
}

// Scheduler accumulates submitted jobs and, on Run, proposes placements for
// as many of them as it can within one invocation.
type Scheduler interface {
	AddJob(j job.Job)
	Run(view EnvView) ([]Placement, error)
}
