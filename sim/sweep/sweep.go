// Package sweep replicates a belt simulation across seeds and summarizes
// the spread of its results.
package sweep

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/inference-sim/assembly-sim/sim"
)

// Replica is the outcome of one seeded run.
type Replica struct {
	Seed      int64
	Result    map[sim.Content]int
	Destroyed int
}

// Seeds returns n consecutive seeds starting at start.
func Seeds(start int64, n int) []int64 {
	if n < 0 {
		n = 0
	}
	out := make([]int64, n)
	for i := range out {
		out[i] = start + int64(i)
	}
	return out
}

// Run executes one independent simulation per seed. cfg.Seed is ignored.
// Runs are sequential; each owns its own RNG, so results depend only on the seed.
func Run(cfg sim.SimConfig, seeds []int64) ([]Replica, error) {
	out := make([]Replica, 0, len(seeds))
	for _, seed := range seeds {
		c := cfg
		c.Seed = seed
		s, err := sim.NewSimulatorFromConfig(c, nil)
		if err != nil {
			return nil, fmt.Errorf("replica seed=%d: %w", seed, err)
		}
		s.Run()
		logrus.Debugf("replica seed=%d produced=%d", seed, s.Metrics.Produced())
		out = append(out, Replica{Seed: seed, Result: s.Metrics.Result(), Destroyed: s.Metrics.Destroyed})
	}
	return out, nil
}

// CategoryStats summarizes one category's exit counts across replicas.
type CategoryStats struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summary aggregates replicas per category.
type Summary struct {
	Replicas   int
	ByCategory map[sim.Content]CategoryStats
}

// Summarize computes mean, sample standard deviation, min and max of the
// exit count of every category seen in any replica. A category missing from
// a replica counts as zero there. Safe for an empty slice.
func Summarize(reps []Replica) *Summary {
	summary := &Summary{
		Replicas:   len(reps),
		ByCategory: make(map[sim.Content]CategoryStats),
	}
	if len(reps) == 0 {
		return summary
	}

	seen := make(map[sim.Content]bool)
	for _, r := range reps {
		for c := range r.Result {
			seen[c] = true
		}
	}
	for c := range seen {
		xs := make([]float64, len(reps))
		for i, r := range reps {
			xs[i] = float64(r.Result[c])
		}
		mean, std := stat.MeanStdDev(xs, nil)
		if len(xs) < 2 {
			std = 0
		}
		summary.ByCategory[c] = CategoryStats{
			Mean:   mean,
			StdDev: std,
			Min:    floats.Min(xs),
			Max:    floats.Max(xs),
		}
	}
	return summary
}

// Print writes the summary in reporting order.
func (s *Summary) Print(w io.Writer) {
	fmt.Fprintf(w, "=== Sweep Summary (%d replicas) ===\n", s.Replicas)
	for _, c := range sim.AllContents {
		st, ok := s.ByCategory[c]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%-8s mean=%.2f stddev=%.2f min=%.0f max=%.0f\n", c, st.Mean, st.StdDev, st.Min, st.Max)
	}
}
