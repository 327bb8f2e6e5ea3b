package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/inference-sim/assembly-sim/sim"
)

// newTestCmd returns a command with the shared sim flags registered and
// parsed from args. Registration resets the package-level flag variables.
func newTestCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	registerSimFlags(c)
	require.NoError(t, c.Flags().Parse(args))
	return c
}

func TestResolveConfig_Defaults(t *testing.T) {
	// GIVEN no flags
	c := newTestCmd(t)

	// WHEN resolved
	cfg, err := resolveConfig(c)
	require.NoError(t, err)

	// THEN the three-pair, 100-step uniform line is configured
	assert.Equal(t, 3, cfg.BeltLength)
	assert.Equal(t, 100, cfg.Steps)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, "fixed", cfg.Arbitration)
	assert.Equal(t, "uniform", cfg.Source.Kind)
	assert.Nil(t, cfg.Categories)
}

func TestResolveConfig_SequenceImpliesSequenceSource(t *testing.T) {
	c := newTestCmd(t, "--sequence", "A,B,EMPTY")

	cfg, err := resolveConfig(c)
	require.NoError(t, err)

	assert.Equal(t, "sequence", cfg.Source.Kind)
	assert.Equal(t, []sim.Content{sim.ComponentA, sim.ComponentB, sim.Empty}, cfg.Source.Sequence)
}

func TestResolveConfig_SequenceRejectsProduct(t *testing.T) {
	c := newTestCmd(t, "--sequence", "A,P")
	_, err := resolveConfig(c)
	assert.Error(t, err)
}

func TestResolveConfig_ExplicitFlagsOverrideScenario(t *testing.T) {
	// GIVEN a scenario setting belt length, steps and seed
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte("belt_length: 6\nsteps: 40\nseed: 9\narbitration: alternating\n"), 0o644))

	// WHEN --steps is also given explicitly
	c := newTestCmd(t, "--scenario", path, "--steps", "15")
	cfg, err := resolveConfig(c)
	require.NoError(t, err)

	// THEN the flag wins for steps and the scenario wins elsewhere
	assert.Equal(t, 15, cfg.Steps)
	assert.Equal(t, 6, cfg.BeltLength)
	assert.Equal(t, int64(9), cfg.Seed)
	assert.Equal(t, "alternating", cfg.Arbitration)
}

func TestResolveConfig_SequenceSourceWithoutSequence(t *testing.T) {
	// GIVEN --source sequence with no entries to replay
	c := newTestCmd(t, "--source", "sequence")

	// WHEN resolved
	_, err := resolveConfig(c)

	// THEN it is rejected rather than running an all-EMPTY feed
	assert.ErrorContains(t, err, "requires --sequence")
}

func TestResolveConfig_ScenarioBareSequence(t *testing.T) {
	// GIVEN a scenario with a sequence but no source kind
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source:\n  sequence: [A, B]\n"), 0o644))

	// WHEN resolved with the default --source uniform
	cfg, err := resolveConfig(newTestCmd(t, "--scenario", path))
	require.NoError(t, err)

	// THEN the scenario's sequence drives the run
	assert.Equal(t, "sequence", cfg.Source.Kind)
	assert.Equal(t, []sim.Content{sim.ComponentA, sim.ComponentB}, cfg.Source.Sequence)
}

func TestResolveConfig_InvalidScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte("arbitration: coinflip\n"), 0o644))

	c := newTestCmd(t, "--scenario", path)
	_, err := resolveConfig(c)
	assert.Error(t, err)
}

func TestResolveConfig_InvalidFlags(t *testing.T) {
	for _, args := range [][]string{
		{"--belt-length", "-1"},
		{"--arbitration", "round-robin"},
		{"--source", "bursty"},
		{"--categories", "A,Q"},
	} {
		c := newTestCmd(t, args...)
		_, err := resolveConfig(c)
		assert.Error(t, err, "args %v", args)
	}
}

func TestSaveResults_WritesJSON(t *testing.T) {
	// GIVEN metrics from a one-slot run producing one product
	cfg := sim.SimConfig{BeltConfig: sim.NewBeltConfig(1, 7)}
	s := sim.NewSimulator(cfg, sim.NewSequenceSource([]sim.Content{sim.ComponentA, sim.ComponentB}), nil, nil)
	s.Run()

	// WHEN saved
	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, saveResults(path, s.Metrics))

	// THEN the JSON carries the result without EMPTY
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var rf resultsFile
	require.NoError(t, json.Unmarshal(data, &rf))
	assert.Equal(t, map[string]int{"A": 0, "B": 0, "PRODUCT": 1}, rf.Result)
	assert.Equal(t, 7, rf.Steps)
	assert.Equal(t, 1, rf.Actions["deposit"])
	assert.Equal(t, 3, rf.LeftActions)
}

func TestFormatResult_ReportingOrder(t *testing.T) {
	got := formatResult(map[sim.Content]int{sim.Product: 2, sim.ComponentB: 1, sim.ComponentA: 0})
	assert.Equal(t, "{A:0 B:1 PRODUCT:2}", got)
}
