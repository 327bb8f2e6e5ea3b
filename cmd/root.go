package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/assembly-sim/sim"
	"github.com/inference-sim/assembly-sim/sim/trace"
)

var (
	// CLI flags for the belt and its run
	seed         int64    // Seed for entry content draws and random arbitration
	beltLength   int      // Number of belt slots (one worker pair per slot)
	steps        int      // Number of ticks to simulate
	logLevel     string   // Log verbosity level
	arbitration  string   // Which side of a slot tries first
	sourceKind   string   // Entry content source kind
	sequence     []string // Fixed entry sequence for the "sequence" source
	weightA      float64  // Relative weight of A for the "weighted" source
	weightB      float64  // Relative weight of B for the "weighted" source
	weightEmpty  float64  // Relative weight of EMPTY for the "weighted" source
	categories   []string // Exit categories reported even when zero
	scenarioPath string   // YAML scenario file

	// Outputs
	traceLevel  string // Trace verbosity
	traceOut    string // Trace JSONL path (.zst compresses)
	resultsPath string // JSON results path
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "assembly-sim",
	Short: "Discrete-time simulator for a conveyor belt assembly line",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the belt simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Unknown trace level %q; valid: none, steps, actions", traceLevel)
		}
		var tr *trace.SimulationTrace
		if traceLevel != "" && trace.TraceLevel(traceLevel) != trace.TraceLevelNone {
			tr = trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevel(traceLevel)})
		}

		logrus.Infof("Starting simulation with belt=%d steps=%d seed=%d arbitration=%q source=%q",
			cfg.BeltLength, cfg.Steps, cfg.Seed, cfg.Arbitration, cfg.Source.Kind)
		startTime := time.Now()

		s, err := sim.NewSimulatorFromConfig(cfg, tr)
		if err != nil {
			logrus.Fatalf("Failed to build simulator: %v", err)
		}
		s.Run()
		s.Metrics.Print(os.Stdout)
		fmt.Printf("Result               : %s\n", formatResult(s.Metrics.Result()))
		logrus.Infof("Simulation took %s", time.Since(startTime))

		if tr != nil {
			summary := trace.Summarize(tr)
			logrus.Infof("Trace: %d steps, %d actions, left=%d right=%d, busiest slot=%d",
				summary.TotalSteps, summary.TotalActions, summary.SideCounts[sim.SideLeft.String()],
				summary.SideCounts[sim.SideRight.String()], summary.BusiestSlot)
			if traceOut != "" {
				if err := trace.WriteJSONL(traceOut, tr); err != nil {
					logrus.Fatalf("Failed to write trace: %v", err)
				}
			}
		}
		if resultsPath != "" {
			if err := saveResults(resultsPath, s.Metrics); err != nil {
				logrus.Fatalf("Failed to write results: %v", err)
			}
		}

		logrus.Info("Simulation complete.")
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// resolveConfig builds the simulation config. Precedence, lowest first:
// flag defaults, the scenario file, then flags set explicitly on the command line.
func resolveConfig(cmd *cobra.Command) (sim.SimConfig, error) {
	cfg := sim.SimConfig{
		BeltConfig:  sim.NewBeltConfig(beltLength, steps),
		Arbitration: arbitration,
		Seed:        seed,
	}
	flags := cmd.Flags()
	if err := applySourceFlags(&cfg, flags.Changed, true); err != nil {
		return cfg, err
	}

	if scenarioPath != "" {
		sc, err := sim.LoadScenario(scenarioPath)
		if err != nil {
			return cfg, err
		}
		if err := sc.Validate(); err != nil {
			return cfg, fmt.Errorf("scenario %s: %w", scenarioPath, err)
		}
		sc.Apply(&cfg)

		// Explicit flags win over the scenario.
		if flags.Changed("belt-length") {
			cfg.BeltLength = beltLength
		}
		if flags.Changed("steps") {
			cfg.Steps = steps
		}
		if flags.Changed("seed") {
			cfg.Seed = seed
		}
		if flags.Changed("arbitration") {
			cfg.Arbitration = arbitration
		}
		if err := applySourceFlags(&cfg, flags.Changed, false); err != nil {
			return cfg, err
		}
	}

	if cfg.BeltLength < 0 {
		return cfg, fmt.Errorf("belt length must be non-negative, got %d", cfg.BeltLength)
	}
	if !sim.ValidArbitrationPolicies[cfg.Arbitration] {
		return cfg, fmt.Errorf("unknown arbitration policy %q", cfg.Arbitration)
	}
	if !sim.ValidSourceKinds[cfg.Source.Kind] {
		return cfg, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
	}
	if cfg.Source.Kind == "sequence" && len(cfg.Source.Sequence) == 0 {
		return cfg, fmt.Errorf("--source sequence requires --sequence or a scenario sequence")
	}
	return cfg, nil
}

// applySourceFlags copies source and category flags into cfg. With all set
// every flag is applied; otherwise only flags reported changed.
func applySourceFlags(cfg *sim.SimConfig, changed func(string) bool, all bool) error {
	set := func(name string) bool { return all || changed(name) }

	if set("source") {
		cfg.Source.Kind = sourceKind
	}
	if set("weight-a") || set("weight-b") || set("weight-empty") {
		cfg.Source.Weights = sim.SourceWeights{A: weightA, B: weightB, Empty: weightEmpty}
	}
	if set("sequence") && len(sequence) > 0 {
		seq, err := sim.ParseContents(sequence)
		if err != nil {
			return fmt.Errorf("--sequence: %w", err)
		}
		for i, c := range seq {
			if c == sim.Product {
				return fmt.Errorf("--sequence entry %d: PRODUCT cannot be injected", i)
			}
		}
		cfg.Source.Sequence = seq
		if !changed("source") {
			cfg.Source.Kind = "sequence"
		}
	}
	if set("categories") && len(categories) > 0 {
		cats, err := sim.ParseContents(categories)
		if err != nil {
			return fmt.Errorf("--categories: %w", err)
		}
		cfg.Categories = cats
	}
	return nil
}

// formatResult renders the result map in reporting order.
func formatResult(result map[sim.Content]int) string {
	out := "{"
	first := true
	for _, c := range sim.AllContents {
		n, ok := result[c]
		if !ok {
			continue
		}
		if !first {
			out += " "
		}
		out += fmt.Sprintf("%s:%d", c, n)
		first = false
	}
	return out + "}"
}

// resultsFile is the JSON document written by --results-path.
type resultsFile struct {
	Steps        int            `json:"steps"`
	Result       map[string]int `json:"result"`
	Injected     map[string]int `json:"injected"`
	Destroyed    int            `json:"overwritten_products"`
	Actions      map[string]int `json:"actions"`
	LeftActions  int            `json:"left_actions"`
	RightActions int            `json:"right_actions"`
}

func saveResults(path string, m *sim.Metrics) error {
	rf := resultsFile{
		Steps:        m.StepsRun,
		Result:       make(map[string]int),
		Injected:     make(map[string]int),
		Destroyed:    m.Destroyed,
		Actions:      make(map[string]int),
		LeftActions:  m.SideActions[sim.SideLeft],
		RightActions: m.SideActions[sim.SideRight],
	}
	for c, n := range m.Result() {
		rf.Result[c.String()] = n
	}
	for c, n := range m.Injected {
		rf.Injected[c.String()] = n
	}
	for a, n := range m.Actions {
		rf.Actions[a.String()] = n
	}
	data, err := json.MarshalIndent(rf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	return nil
}

// registerSimFlags attaches the belt and source flags shared by run and sweep.
func registerSimFlags(c *cobra.Command) {
	c.Flags().Int64Var(&seed, "seed", 42, "Seed for entry content draws")
	c.Flags().IntVar(&beltLength, "belt-length", 3, "Number of belt slots (one worker pair per slot)")
	c.Flags().IntVar(&steps, "steps", 100, "Number of ticks to simulate")
	c.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	c.Flags().StringVar(&arbitration, "arbitration", "fixed", "Which worker of a pair tries first (fixed, alternating, random)")
	c.Flags().StringVar(&sourceKind, "source", "uniform", "Entry content source (uniform, weighted, sequence)")
	c.Flags().StringSliceVar(&sequence, "sequence", nil, "Comma-separated entry sequence, e.g. A,B,EMPTY (implies --source sequence)")
	c.Flags().Float64Var(&weightA, "weight-a", 1, "Relative weight of A for the weighted source")
	c.Flags().Float64Var(&weightB, "weight-b", 1, "Relative weight of B for the weighted source")
	c.Flags().Float64Var(&weightEmpty, "weight-empty", 1, "Relative weight of EMPTY for the weighted source")
	c.Flags().StringSliceVar(&categories, "categories", nil, "Exit categories to report even when zero (default A,B,EMPTY,PRODUCT)")
	c.Flags().StringVar(&scenarioPath, "scenario", "", "YAML scenario file; explicit flags override its values")
}

// init sets up CLI flags and subcommands
func init() {
	registerSimFlags(runCmd)
	runCmd.Flags().StringVar(&traceLevel, "trace-level", "none", "Trace verbosity (none, steps, actions)")
	runCmd.Flags().StringVar(&traceOut, "trace-out", "", "Write the trace as JSONL to this path (.zst compresses)")
	runCmd.Flags().StringVar(&resultsPath, "results-path", "", "Write results as JSON to this path")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
