package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inventory-sim/inventory-sim/sim"
)

var (
	// CLI flags for the simulation run
	seed         int64   // Seed for random demand generation
	logLevel     string  // Log verbosity level
	reorderPoint float64 // Reorder point s
	orderUpTo    float64 // Order-up-to level S
	demandP      float64 // Geometric demand success probability
	initialLevel float64 // Inventory on hand at period 0
	numPaths     int     // Number of paths in the ensemble
	simLength    int     // Periods per path, including period 0
	chunks       int     // Parallel chunks
	scenarioPath string  // YAML scenario file (overrides the flags above)
	outputPath   string  // CSV file to write the ensemble to
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "invsim",
	Short: "Ensemble simulator for (s, S) reorder-point inventory paths",
}

// runCmd executes the simulation using parameters from CLI flags or a scenario file
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate an ensemble of inventory paths",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := sim.Config{
			Policy:       sim.Policy{ReorderPoint: reorderPoint, OrderUpTo: orderUpTo},
			DemandP:      demandP,
			InitialLevel: initialLevel,
			NumPaths:     numPaths,
			SimLength:    simLength,
			ChunkCount:   chunks,
			Seed:         seed,
		}
		if scenarioPath != "" {
			sc, err := sim.LoadScenario(scenarioPath)
			if err != nil {
				logrus.Fatalf("unable to read scenario; %v", err)
			}
			cfg = sc.Config()
		}
		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("invalid configuration; %v", err)
		}

		// Log configuration
		logrus.Infof("Starting simulation with %d paths, %d periods, %d chunks, s=%v, S=%v, p=%v, seed=%d",
			cfg.NumPaths, cfg.SimLength, cfg.ChunkCount,
			cfg.Policy.ReorderPoint, cfg.Policy.OrderUpTo, cfg.DemandP, cfg.Seed)

		startTime := time.Now() // Get current time (start)

		ens, err := sim.SimulateParallel(cfg)
		if err != nil {
			logrus.Fatalf("simulation failed; %v", err)
		}

		logrus.Infof("Simulated %d paths x %d periods in %v",
			ens.NumPaths(), ens.SimLength(), time.Since(startTime))

		if outputPath != "" {
			if err := writeEnsembleCSV(outputPath, ens); err != nil {
				logrus.Fatalf("unable to write output; %v", err)
			}
			logrus.Infof("Wrote ensemble to %s", outputPath)
		}

		logrus.Info("Simulation complete.")
	},
}

// writeEnsembleCSV dumps the ensemble one row per path, with a
// path,t0,t1,... header, for downstream statistics/plotting tools.
func writeEnsembleCSV(path string, ens *sim.Ensemble) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	header := make([]string, ens.SimLength()+1)
	header[0] = "path"
	for t := 0; t < ens.SimLength(); t++ {
		header[t+1] = "t" + strconv.Itoa(t)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	record := make([]string, ens.SimLength()+1)
	for p := 0; p < ens.NumPaths(); p++ {
		record[0] = strconv.Itoa(p)
		for t, v := range ens.Row(p) {
			record[t+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for random demand generation")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// policy and demand parameters
	runCmd.Flags().Float64Var(&reorderPoint, "reorder-point", 10, "Reorder point s; restock when the level falls to or below it")
	runCmd.Flags().Float64Var(&orderUpTo, "order-up-to", 100, "Order-up-to level S; must exceed the reorder point")
	runCmd.Flags().Float64Var(&demandP, "demand-p", 0.4, "Geometric demand success probability, in (0, 1]")
	runCmd.Flags().Float64Var(&initialLevel, "initial-level", 50, "Inventory on hand at period 0")

	// sizing parameters
	runCmd.Flags().IntVar(&numPaths, "paths", 100000, "Number of independent paths in the ensemble")
	runCmd.Flags().IntVar(&simLength, "periods", 1000, "Periods per path, including period 0")
	runCmd.Flags().IntVar(&chunks, "chunks", runtime.NumCPU(), "Parallel chunks; each simulates a contiguous block of paths")

	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "YAML scenario file; overrides the policy and sizing flags")
	runCmd.Flags().StringVar(&outputPath, "output", "", "CSV file to write the ensemble to")

	rootCmd.AddCommand(runCmd)
}
