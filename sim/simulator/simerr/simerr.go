// Package simerr defines the typed failures the Simulator's event loop can
// raise while reconciling scheduler placements against the Environment.
package simerr

import (
	"fmt"

	"github.com/fabric-sim/fabric-sim/sim/job"
	"github.com/fabric-sim/fabric-sim/sim/program"
)

// InvalidJobID is returned when a placement names a job that does not
// exist or is no longer Waiting.
type InvalidJobID struct {
	JobID job.ID
}

func (e *InvalidJobID) Error() string {
	return fmt.Sprintf("simulator: invalid job id %d in placement", e.JobID)
}

// InvalidSchedule is returned when applying a schedule and issuing the
// resulting program into the environment fails (out of range or overlap).
type InvalidSchedule struct {
	JobID    job.ID
	Schedule program.Schedule
}

func (e *InvalidSchedule) Error() string {
	return fmt.Sprintf("simulator: invalid schedule %+v for job %d", e.Schedule, e.JobID)
}

// ViolateTimingConstraint is returned when a placement's z lies before the
// environment's current program counter.
type ViolateTimingConstraint struct {
	JobID job.ID
	Z     int64
	PC    int64
}

func (e *ViolateTimingConstraint) Error() string {
	return fmt.Sprintf("simulator: job %d scheduled at z=%d violates pc=%d", e.JobID, e.Z, e.PC)
}
