// Package simulator drives the discrete-event loop that couples job
// arrivals, scheduler invocations, and fabric execution suspensions.
package simulator

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fabric-sim/fabric-sim/sim/env"
	"github.com/fabric-sim/fabric-sim/sim/eventqueue"
	"github.com/fabric-sim/fabric-sim/sim/job"
	"github.com/fabric-sim/fabric-sim/sim/preprocess"
	"github.com/fabric-sim/fabric-sim/sim/program"
	"github.com/fabric-sim/fabric-sim/sim/scheduler"
	"github.com/fabric-sim/fabric-sim/sim/simulator/simerr"
)

// Config tunes the Simulator's own loop behavior, distinct from the
// Environment's fabric geometry and the Scheduler's placement tuning.
type Config struct {
	MicroSecPerCycle uint64
	EnableDefrag     bool
	NoOutputProgram  bool
}

// IssuedJob records one placed job's outcome for the final Result.
type IssuedJob struct {
	JobID          job.ID
	Program        *program.Program // nil when Config.NoOutputProgram is set
	Schedule       program.Schedule
	RequestedTime  uint64
	WaitingTime    uint64
	TurnaroundTime uint64
}

// Simulator owns the Environment, scheduler and job table for one run.
type Simulator struct {
	config    Config
	env       *env.Environment
	scheduler scheduler.Scheduler
	queue     *eventqueue.Queue

	jobs map[job.ID]*job.Job

	simulationTime uint64
	issued         []IssuedJob
	eventLog       []eventqueue.Event
}

// New builds a Simulator over an already-configured Environment and
// Scheduler. Call AddJob for every job in the dataset before Run.
func New(config Config, environment *env.Environment, sched scheduler.Scheduler) *Simulator {
	s := &Simulator{
		config:    config,
		env:       environment,
		scheduler: sched,
		queue:     eventqueue.New(),
		jobs:      make(map[job.ID]*job.Job),
	}
	s.queue.PushEvent(eventqueue.NewStartScheduling(0))
	return s
}

// AddJob registers j (after any preprocessing has already been applied to
// its Program) and enqueues its RequestJob event at RequestedTime.
func (s *Simulator) AddJob(j job.Job) {
	jobCopy := j
	s.jobs[j.ID] = &jobCopy
	s.queue.PushEvent(eventqueue.NewRequestJob(j.RequestedTime, j.ID))
}

// AddJobWithPreprocessor applies p to j.Program before registering it,
// mirroring the initialization step that runs every dataset program
// through its configured preprocessor chain before jobs ever reach the
// scheduler.
func (s *Simulator) AddJobWithPreprocessor(j job.Job, p preprocess.Preprocessor) {
	if p != nil {
		j.Program = p.Process(j.Program)
	}
	s.AddJob(j)
}

func (s *Simulator) allJobsNotWaiting() bool {
	for _, j := range s.jobs {
		if j.Status == job.StatusWaiting {
			return false
		}
	}
	return len(s.jobs) > 0
}

// Run drives the event loop to completion. env.Validate (called in the
// deferred finally step) panics on any detected invariant violation; that
// is intentional and matches the Environment's contract as a defensive
// postcondition, not a recoverable error.
func (s *Simulator) Run() error {
	defer func() {
		s.env.Validate()
		s.simulationTime += uint64(s.env.RemainingCycles())
	}()

	for !s.queue.IsEmpty() {
		if s.allJobsNotWaiting() {
			break
		}
		ev, _ := s.queue.PopNext()
		s.env.AdvanceBy(int64(ev.Time) - int64(s.simulationTime))
		s.simulationTime = ev.Time
		s.eventLog = append(s.eventLog, ev)
		logrus.Infof("simulator: popped %s event at t=%d", ev.Kind, ev.Time)

		switch ev.Kind {
		case eventqueue.KindRequestJob:
			j := s.jobs[ev.JobID]
			j.Status = job.StatusWaiting
			s.scheduler.AddJob(*j)
		case eventqueue.KindStartScheduling:
			if err := s.runScheduling(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Simulator) runScheduling() error {
	if s.config.EnableDefrag {
		if err := s.env.Defrag(); err != nil {
			return err
		}
		logrus.Debugf("simulator: defrag pass complete at pc=%d", s.env.PC())
	}

	start := time.Now()
	placements, err := s.scheduler.Run(s.env)
	elapsedMicros := uint64(time.Since(start).Microseconds())
	elapsed := uint64(0)
	if s.config.MicroSecPerCycle > 0 {
		elapsed = (elapsedMicros + s.config.MicroSecPerCycle - 1) / s.config.MicroSecPerCycle
	}
	if err != nil {
		return err
	}

	if len(placements) == 0 {
		logrus.Warnf("simulator: scheduling pass at t=%d produced no placements", s.simulationTime)
		if t, ok := s.queue.NextTime(); ok {
			s.queue.PushEvent(eventqueue.NewStartScheduling(t))
		}
		return nil
	}

	sp := int64(placements[0].Schedule.Dz)
	for _, pl := range placements[1:] {
		if int64(pl.Schedule.Dz) < sp {
			sp = int64(pl.Schedule.Dz)
		}
	}

	for _, pl := range placements {
		if int64(pl.Schedule.Dz) < s.env.PC() {
			return &simerr.ViolateTimingConstraint{JobID: pl.JobID, Z: int64(pl.Schedule.Dz), PC: s.env.PC()}
		}
		j, ok := s.jobs[pl.JobID]
		if !ok || j.Status != job.StatusWaiting {
			return &simerr.InvalidJobID{JobID: pl.JobID}
		}

		placed, applyErr := program.ApplySchedule(j.Program, pl.Schedule)
		if applyErr != nil || !s.env.IssueProgram(placed) {
			return &simerr.InvalidSchedule{JobID: pl.JobID, Schedule: pl.Schedule}
		}

		waiting := s.simulationTime - j.RequestedTime
		record := IssuedJob{
			JobID:          j.ID,
			Schedule:       pl.Schedule,
			RequestedTime:  j.RequestedTime,
			WaitingTime:    waiting,
			TurnaroundTime: waiting + uint64(placed.BurstTime()),
		}
		if !s.config.NoOutputProgram {
			p := placed
			record.Program = &p
		}
		s.issued = append(s.issued, record)
		j.Status = job.StatusScheduled
	}

	s.env.SuspendAt(sp, int64(s.simulationTime+elapsed))
	if !s.allJobsNotWaiting() {
		s.queue.PushEvent(eventqueue.NewStartScheduling(s.simulationTime + elapsed))
	}
	return nil
}

// SimulationTime returns the total cycles elapsed, including the final
// remaining-cycles drain computed once Run returns.
func (s *Simulator) SimulationTime() uint64 { return s.simulationTime }

// Jobs returns every issued job's outcome in issuance order.
func (s *Simulator) Jobs() []IssuedJob { return s.issued }

// EventLog returns every event popped during the run, in pop order.
func (s *Simulator) EventLog() []eventqueue.Event { return s.eventLog }
