package result

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fabric-sim/fabric-sim/sim/env"
	"github.com/fabric-sim/fabric-sim/sim/geometry"
	"github.com/fabric-sim/fabric-sim/sim/job"
	"github.com/fabric-sim/fabric-sim/sim/program"
	"github.com/fabric-sim/fabric-sim/sim/scheduler"
	"github.com/fabric-sim/fabric-sim/sim/simulator"
)

func runOneJob(t *testing.T, noOutput bool) *simulator.Simulator {
	t.Helper()
	e := env.New(env.Config{SizeX: 2, SizeY: 2})
	g := scheduler.NewGreedyScheduler(scheduler.GreedyConfig{})
	s := simulator.New(simulator.Config{NoOutputProgram: noOutput}, e, g)
	cuboid := program.NewCuboidProgram([]geometry.Cuboid{geometry.NewCuboid(geometry.NewCoordinate(0, 0, 0), 1, 1, 1)})
	s.AddJob(job.New(1, 0, cuboid))
	if err := s.Run(); err != nil {
		t.Fatalf("Run: unexpected error %v", err)
	}
	return s
}

// GIVEN a finished Simulator run with program output enabled
// WHEN FromSimulator projects it
// THEN the result carries the issued job's geometry and cycle count
func TestFromSimulator_IncludesProgramGeometry(t *testing.T) {
	s := runOneJob(t, false)
	r := FromSimulator(s)

	assert.Equal(t, uint64(1), r.TotalCycle)
	if assert.Len(t, r.Jobs, 1) {
		assert.NotNil(t, r.Jobs[0].Program)
		assert.Equal(t, "cuboid", r.Jobs[0].Program.Kind)
	}
	assert.NotEmpty(t, r.EventLog)
}

// GIVEN NoOutputProgram was set on the Simulator
// WHEN FromSimulator projects it
// THEN the issued job carries no program geometry
func TestFromSimulator_OmitsProgramWhenConfigured(t *testing.T) {
	s := runOneJob(t, true)
	r := FromSimulator(s)

	if assert.Len(t, r.Jobs, 1) {
		assert.Nil(t, r.Jobs[0].Program)
	}
}

// GIVEN a Result
// WHEN Write runs
// THEN the file on disk round-trips through JSON
func TestWrite_RoundTrips(t *testing.T) {
	s := runOneJob(t, false)
	r := FromSimulator(s)

	dir := t.TempDir()
	path := filepath.Join(dir, "result.json")
	assert.NoError(t, Write(path, r))

	data, err := os.ReadFile(path)
	assert.NoError(t, err)

	var roundTripped Result
	assert.NoError(t, json.Unmarshal(data, &roundTripped))
	assert.Equal(t, r.TotalCycle, roundTripped.TotalCycle)
}
