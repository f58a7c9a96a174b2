// Package job defines the Job type carried through the scheduler and
// simulator: an identity, the cycle it was requested at, and the program
// it asks to run.
package job

import "github.com/fabric-sim/fabric-sim/sim/program"

// ID identifies a Job for the lifetime of one simulation run.
type ID uint32

// Status tracks a Job's position in its lifecycle. Running and Finished are
// informational only: the Environment derives them from pc versus a Job's
// scheduled z-extent rather than storing them directly.
type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusScheduled Status = "scheduled"
	StatusRunning   Status = "running"
	StatusFinished  Status = "finished"
)

// Job is a request to place Program somewhere in the fabric, submitted at
// RequestedTime (simulation cycles).
type Job struct {
	ID            ID
	RequestedTime uint64
	Program       program.Program
	Status        Status
}

// New constructs a Job in StatusWaiting.
func New(id ID, requestedTime uint64, p program.Program) Job {
	return Job{ID: id, RequestedTime: requestedTime, Program: p, Status: StatusWaiting}
}
