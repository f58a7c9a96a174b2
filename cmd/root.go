// cmd/root.go
package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fabric-sim/fabric-sim/sim/config"
	"github.com/fabric-sim/fabric-sim/sim/dataset"
	"github.com/fabric-sim/fabric-sim/sim/env"
	"github.com/fabric-sim/fabric-sim/sim/ilp"
	"github.com/fabric-sim/fabric-sim/sim/job"
	"github.com/fabric-sim/fabric-sim/sim/preprocess"
	"github.com/fabric-sim/fabric-sim/sim/result"
	"github.com/fabric-sim/fabric-sim/sim/scheduler"
	"github.com/fabric-sim/fabric-sim/sim/simulator"
)

var (
	configPath  string
	datasetFile string
	outputFile  string
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:   "fabric-sim",
	Short: "Discrete-event simulator for space-time fabric packing",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation from a config and dataset file",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		ds, err := dataset.Load(datasetFile)
		if err != nil {
			return err
		}
		programs, err := ds.DecodePrograms()
		if err != nil {
			return err
		}

		logrus.Infof("fabric-sim: fabric %dx%d, %d programs, %d job requests",
			cfg.SizeX, cfg.SizeY, len(programs), len(ds.JobRequests))

		environment := env.New(env.Config{
			SizeX:          cfg.SizeX,
			SizeY:          cfg.SizeY,
			DefragInterval: cfg.DefragInterval,
			BatchSize:      cfg.Scheduler.BatchSize,
		})

		sched := buildScheduler(cfg)
		sim := simulator.New(simulator.Config{
			MicroSecPerCycle: cfg.MicroSecPerCycle,
			EnableDefrag:     cfg.EnableDefrag,
			NoOutputProgram:  cfg.NoOutputProgram,
		}, environment, sched)

		var pre preprocess.Preprocessor
		if len(cfg.Preprocessor.Processes) > 0 {
			pre = preprocess.New(preprocess.Kind(cfg.Preprocessor.Processes[0]), cfg.Preprocessor.NumCuboids)
		}

		for i, req := range ds.JobRequests {
			j := job.New(job.ID(i), req.RequestedTime, programs[req.ProgramIndex])
			sim.AddJobWithPreprocessor(j, pre)
		}

		if err := sim.Run(); err != nil {
			return err
		}

		r := result.FromSimulator(sim)
		if err := result.Write(outputFile, r); err != nil {
			return err
		}
		logrus.Infof("fabric-sim: wrote %d issued jobs, total_cycle=%d to %s", len(r.Jobs), r.TotalCycle, outputFile)
		return nil
	},
}

func buildScheduler(cfg *config.SimulationConfig) scheduler.Scheduler {
	if cfg.Scheduler.Kind == "lp" {
		return ilp.NewILPScheduler(ilp.Config{
			SizeX:     cfg.SizeX,
			SizeY:     cfg.SizeY,
			BatchSize: cfg.Scheduler.BatchSize,
			TimeLimit: secondsToDuration(cfg.Scheduler.TimeLimit),
		})
	}
	return scheduler.NewGreedyScheduler(scheduler.GreedyConfig{
		MicroSecPerCycle: cfg.MicroSecPerCycle,
		BatchSize:        cfg.Scheduler.BatchSize,
	})
}

func secondsToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	runCmd.Flags().StringVar(&configPath, "config-path", "", "Path to the TOML simulation config (required)")
	runCmd.Flags().StringVar(&datasetFile, "dataset-file", "", "Path to the JSON dataset file (required)")
	runCmd.Flags().StringVar(&outputFile, "output-file", "result.json", "Path to write the JSON result")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (debug, info, warn, error)")
	runCmd.MarkFlagRequired("config-path")
	runCmd.MarkFlagRequired("dataset-file")

	rootCmd.AddCommand(runCmd)
}
