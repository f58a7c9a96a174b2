package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fabric-sim/fabric-sim/sim/env"
	"github.com/fabric-sim/fabric-sim/sim/geometry"
	"github.com/fabric-sim/fabric-sim/sim/job"
	"github.com/fabric-sim/fabric-sim/sim/program"
	"github.com/fabric-sim/fabric-sim/sim/scheduler"
)

// GIVEN a single triomino polycube requested at t=0 on a 3x3 fabric
// WHEN the simulation runs to completion
// THEN it is issued at the origin with waiting_time=0, turnaround_time=1,
// and total_cycle=1
func TestSimulator_SinglePolycube(t *testing.T) {
	e := env.New(env.Config{SizeX: 3, SizeY: 3})
	g := scheduler.NewGreedyScheduler(scheduler.GreedyConfig{})
	s := New(Config{}, e, g)

	poly := geometry.NewPolycube([]geometry.Coordinate{
		geometry.NewCoordinate(0, 0, 0),
		geometry.NewCoordinate(0, 1, 0),
		geometry.NewCoordinate(1, 0, 0),
	})
	s.AddJob(job.New(1, 0, program.NewPolycubeProgram(poly)))

	err := s.Run()
	assert.NoError(t, err)
	assert.Equal(t, uint64(1), s.SimulationTime())

	jobs := s.Jobs()
	if assert.Len(t, jobs, 1) {
		assert.Equal(t, uint64(0), jobs[0].WaitingTime)
		assert.Equal(t, uint64(1), jobs[0].TurnaroundTime)
		assert.Equal(t, int32(0), jobs[0].Schedule.Dz)
	}
}

// GIVEN two disjoint unit cubes requested at t=0 on a 2x2 fabric
// WHEN the simulation runs
// THEN both land at z=0 and total_cycle=1
func TestSimulator_TwoDisjointCubes(t *testing.T) {
	e := env.New(env.Config{SizeX: 2, SizeY: 2})
	g := scheduler.NewGreedyScheduler(scheduler.GreedyConfig{})
	s := New(Config{}, e, g)

	cuboidProg := func() program.Program {
		return program.NewCuboidProgram([]geometry.Cuboid{geometry.NewCuboid(geometry.NewCoordinate(0, 0, 0), 1, 1, 1)})
	}
	s.AddJob(job.New(1, 0, cuboidProg()))
	s.AddJob(job.New(2, 0, cuboidProg()))

	err := s.Run()
	assert.NoError(t, err)
	assert.Equal(t, uint64(1), s.SimulationTime())
	assert.Len(t, s.Jobs(), 2)
}

// GIVEN three unit cubes on a 1x1 fabric, all requested at t=0
// WHEN the simulation runs
// THEN they stack along z and total_cycle=3
func TestSimulator_OverflowStacksAlongZ(t *testing.T) {
	e := env.New(env.Config{SizeX: 1, SizeY: 1})
	g := scheduler.NewGreedyScheduler(scheduler.GreedyConfig{})
	s := New(Config{}, e, g)

	cuboidProg := func() program.Program {
		return program.NewCuboidProgram([]geometry.Cuboid{geometry.NewCuboid(geometry.NewCoordinate(0, 0, 0), 1, 1, 1)})
	}
	for i := job.ID(1); i <= 3; i++ {
		s.AddJob(job.New(i, 0, cuboidProg()))
	}

	err := s.Run()
	assert.NoError(t, err)
	assert.Equal(t, uint64(3), s.SimulationTime())
	assert.Len(t, s.Jobs(), 3)
}

// GIVEN Config.NoOutputProgram is set
// WHEN a job is issued
// THEN its IssuedJob carries no Program geometry
func TestSimulator_NoOutputProgramOmitsGeometry(t *testing.T) {
	e := env.New(env.Config{SizeX: 2, SizeY: 2})
	g := scheduler.NewGreedyScheduler(scheduler.GreedyConfig{})
	s := New(Config{NoOutputProgram: true}, e, g)

	cuboidProg := program.NewCuboidProgram([]geometry.Cuboid{geometry.NewCuboid(geometry.NewCoordinate(0, 0, 0), 1, 1, 1)})
	s.AddJob(job.New(1, 0, cuboidProg))

	err := s.Run()
	assert.NoError(t, err)
	if assert.Len(t, s.Jobs(), 1) {
		assert.Nil(t, s.Jobs()[0].Program)
	}
}
