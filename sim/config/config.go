// Package config loads and validates the TOML simulation configuration
// that wires together fabric size, defrag policy, preprocessing and
// scheduler choice for one run.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// PreprocessorConfig selects the preprocessor chain applied to every
// dataset program before it reaches the scheduler.
type PreprocessorConfig struct {
	Processes  []string `toml:"processes"`
	NumCuboids int      `toml:"num_cuboids"`
}

// SchedulerConfig selects and tunes one of the two Scheduler
// implementations.
type SchedulerConfig struct {
	Kind      string `toml:"kind"`
	TimeLimit int    `toml:"time_limit"` // seconds, 0 means unbounded
	BatchSize int    `toml:"batch_size"`
}

// SimulationConfig is the top-level TOML document accepted by
// --config-path.
type SimulationConfig struct {
	SizeX            int64              `toml:"size_x"`
	SizeY            int64              `toml:"size_y"`
	MicroSecPerCycle uint64             `toml:"micro_sec_per_cycle"`
	NoOutputProgram  bool               `toml:"no_output_program"`
	EnableDefrag     bool               `toml:"enable_defrag"`
	DefragInterval   int64              `toml:"defrag_interval"`
	Preprocessor     PreprocessorConfig `toml:"preprocessor"`
	Scheduler        SchedulerConfig    `toml:"scheduler"`
}

var (
	validProcesses  = map[string]bool{"convert-to-cuboid": true, "convert-to-k-cuboid": true}
	validSchedulers = map[string]bool{"": true, "greedy": true, "lp": true}
)

// Load reads and decodes the TOML config at path, then validates it.
func Load(path string) (*SimulationConfig, error) {
	var cfg SimulationConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("reading simulation config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating simulation config %q: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks cross-field constraints that TOML decoding alone cannot
// express: BurntSushi/toml has no KnownFields-style strict mode, so typos
// in scheduler.kind or preprocessor.processes must be caught here instead.
func (c *SimulationConfig) Validate() error {
	if c.SizeX <= 0 || c.SizeY <= 0 {
		return fmt.Errorf("size_x and size_y must be positive, got %d x %d", c.SizeX, c.SizeY)
	}
	if c.DefragInterval < 0 {
		return fmt.Errorf("defrag_interval must be non-negative, got %d", c.DefragInterval)
	}
	if !validSchedulers[c.Scheduler.Kind] {
		return fmt.Errorf("unknown scheduler kind %q; valid options: %s", c.Scheduler.Kind, validNames(validSchedulers))
	}
	if c.Scheduler.TimeLimit < 0 {
		return fmt.Errorf("scheduler.time_limit must be non-negative, got %d", c.Scheduler.TimeLimit)
	}
	if c.Scheduler.BatchSize < 0 {
		return fmt.Errorf("scheduler.batch_size must be non-negative, got %d", c.Scheduler.BatchSize)
	}
	for _, p := range c.Preprocessor.Processes {
		if !validProcesses[p] {
			return fmt.Errorf("unknown preprocessor process %q; valid options: %s", p, validNames(validProcesses))
		}
	}
	if c.Preprocessor.NumCuboids < 0 {
		return fmt.Errorf("preprocessor.num_cuboids must be non-negative, got %d", c.Preprocessor.NumCuboids)
	}
	return nil
}

func validNames(m map[string]bool) string {
	names := make([]string, 0, len(m))
	for k := range m {
		if k != "" {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
