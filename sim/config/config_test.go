package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// GIVEN a SimulationConfig with valid fields
// WHEN Validate runs
// THEN it reports no error
func TestSimulationConfig_Validate_Accepts(t *testing.T) {
	cfg := SimulationConfig{
		SizeX: 4, SizeY: 4,
		Scheduler: SchedulerConfig{Kind: "greedy"},
	}
	assert.NoError(t, cfg.Validate())
}

// GIVEN a SimulationConfig with a non-positive fabric extent
// WHEN Validate runs
// THEN it rejects the config
func TestSimulationConfig_Validate_RejectsBadSize(t *testing.T) {
	cfg := SimulationConfig{SizeX: 0, SizeY: 4}
	assert.Error(t, cfg.Validate())
}

// GIVEN a SimulationConfig naming an unknown scheduler kind
// WHEN Validate runs
// THEN it reports which names are valid
func TestSimulationConfig_Validate_RejectsUnknownScheduler(t *testing.T) {
	cfg := SimulationConfig{
		SizeX: 4, SizeY: 4,
		Scheduler: SchedulerConfig{Kind: "bogus"},
	}
	err := cfg.Validate()
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "greedy")
		assert.Contains(t, err.Error(), "lp")
	}
}

// GIVEN a SimulationConfig naming an unknown preprocessor process
// WHEN Validate runs
// THEN it rejects the config
func TestSimulationConfig_Validate_RejectsUnknownProcess(t *testing.T) {
	cfg := SimulationConfig{
		SizeX: 4, SizeY: 4,
		Preprocessor: PreprocessorConfig{Processes: []string{"convert-to-hexagon"}},
	}
	assert.Error(t, cfg.Validate())
}

// GIVEN Load pointed at a file that does not exist
// WHEN it runs
// THEN the error wraps the path
func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/does-not-exist.toml")
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "does-not-exist.toml")
	}
}
