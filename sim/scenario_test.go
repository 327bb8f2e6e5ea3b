package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_ValidYAML(t *testing.T) {
	path := writeTempYAML(t, `
belt_length: 5
steps: 250
seed: 7
arbitration: alternating
categories: [A, B, EMPTY, PRODUCT]
source:
  kind: weighted
  weights:
    A: 2
    B: 1
    EMPTY: 1
`)
	sc, err := LoadScenario(path)
	require.NoError(t, err)
	require.NoError(t, sc.Validate())

	cfg := SimConfig{BeltConfig: NewBeltConfig(3, 100)}
	sc.Apply(&cfg)

	assert.Equal(t, 5, cfg.BeltLength)
	assert.Equal(t, 250, cfg.Steps)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, "alternating", cfg.Arbitration)
	assert.Equal(t, AllContents, cfg.Categories)
	assert.Equal(t, "weighted", cfg.Source.Kind)
	assert.Equal(t, SourceWeights{A: 2, B: 1, Empty: 1}, cfg.Source.Weights)
}

func TestLoadScenario_UnsetFieldsKeepDefaults(t *testing.T) {
	path := writeTempYAML(t, "steps: 0\n")
	sc, err := LoadScenario(path)
	require.NoError(t, err)

	cfg := SimConfig{BeltConfig: NewBeltConfig(3, 100), Seed: 42}
	sc.Apply(&cfg)

	// Zero is distinct from unset.
	assert.Equal(t, 0, cfg.Steps)
	assert.Equal(t, 3, cfg.BeltLength)
	assert.Equal(t, int64(42), cfg.Seed)
}

func TestLoadScenario_UnknownField_Rejected(t *testing.T) {
	path := writeTempYAML(t, "belt_lenght: 3\n")
	_, err := LoadScenario(path)
	assert.Error(t, err)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "reading scenario")
}

func TestScenario_Sequence(t *testing.T) {
	path := writeTempYAML(t, `
source:
  kind: sequence
  sequence: [A, B, "", E]
`)
	sc, err := LoadScenario(path)
	require.NoError(t, err)
	require.NoError(t, sc.Validate())

	var cfg SimConfig
	sc.Apply(&cfg)
	assert.Equal(t, []Content{ComponentA, ComponentB, Empty, Empty}, cfg.Source.Sequence)
}

func TestScenario_BareSequence_SelectsSequenceSource(t *testing.T) {
	// GIVEN a scenario listing a sequence without naming the source kind
	path := writeTempYAML(t, `
belt_length: 1
steps: 7
source:
  sequence: [A, B, E, E, E, E, E]
`)
	sc, err := LoadScenario(path)
	require.NoError(t, err)
	require.NoError(t, sc.Validate())

	// WHEN applied over a config that already defaults to uniform draws
	cfg := SimConfig{Source: SourceConfig{Kind: "uniform"}}
	sc.Apply(&cfg)

	// THEN the sequence is replayed and the single slot assembles one product
	assert.Equal(t, "sequence", cfg.Source.Kind)
	s, err := NewSimulatorFromConfig(cfg, nil)
	require.NoError(t, err)
	s.Run()
	assert.Equal(t, map[Content]int{Empty: 5, ComponentA: 1, ComponentB: 1}, s.Metrics.Injected)
	assert.Equal(t, map[Content]int{ComponentA: 0, ComponentB: 0, Product: 1}, s.Metrics.Result())
}

func TestScenario_ExplicitKindKeptOverSequence(t *testing.T) {
	sc := Scenario{Source: SourceScenario{Kind: "sequence", Sequence: []string{"B"}}}
	cfg := SimConfig{Source: SourceConfig{Kind: "uniform"}}
	sc.Apply(&cfg)
	assert.Equal(t, "sequence", cfg.Source.Kind)
	assert.Equal(t, []Content{ComponentB}, cfg.Source.Sequence)
}

func TestScenario_Validate_Errors(t *testing.T) {
	neg := -1
	tests := []struct {
		name string
		sc   Scenario
	}{
		{"negative belt", Scenario{BeltLength: &neg}},
		{"unknown arbitration", Scenario{Arbitration: "fair"}},
		{"bad category", Scenario{Categories: []string{"Z"}}},
		{"unknown source", Scenario{Source: SourceScenario{Kind: "bursty"}}},
		{"weighted without weights", Scenario{Source: SourceScenario{Kind: "weighted"}}},
		{"negative weight", Scenario{Source: SourceScenario{Kind: "weighted", Weights: &SourceWeights{A: -1, B: 1}}}},
		{"empty sequence", Scenario{Source: SourceScenario{Kind: "sequence"}}},
		{"product injected", Scenario{Source: SourceScenario{Kind: "sequence", Sequence: []string{"A", "P"}}}},
		{"sequence under uniform", Scenario{Source: SourceScenario{Kind: "uniform", Sequence: []string{"A"}}}},
		{"sequence under weighted", Scenario{Source: SourceScenario{Kind: "weighted", Weights: &UniformWeights, Sequence: []string{"A"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.sc.Validate())
		})
	}
}

func TestNewBeltConfig_FieldEquivalence(t *testing.T) {
	assert.Equal(t, BeltConfig{BeltLength: 3, Steps: 100}, NewBeltConfig(3, 100))
}
