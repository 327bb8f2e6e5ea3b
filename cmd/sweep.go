package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/assembly-sim/sim/sweep"
)

var numSeeds int // Number of replicas, seeded --seed, --seed+1, ...

// sweepCmd replicates the run across consecutive seeds
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run the simulation across many seeds and summarize the spread",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		if numSeeds <= 0 {
			logrus.Fatalf("--seeds must be positive, got %d", numSeeds)
		}
		if cfg.Source.Kind == "sequence" {
			logrus.Warnf("sequence source ignores the seed; all %d replicas will be identical", numSeeds)
		}

		reps, err := sweep.Run(cfg, sweep.Seeds(cfg.Seed, numSeeds))
		if err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}
		sweep.Summarize(reps).Print(os.Stdout)
	},
}

func init() {
	registerSimFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&numSeeds, "seeds", 20, "Number of replicas; seeds start at --seed")

	rootCmd.AddCommand(sweepCmd)
}
