package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a simulation configuration loadable from a YAML file.
// Nil pointer fields mean "not set in YAML" so CLI defaults still apply.
type Scenario struct {
	BeltLength  *int           `yaml:"belt_length"`
	Steps       *int           `yaml:"steps"`
	Seed        *int64         `yaml:"seed"`
	Arbitration string         `yaml:"arbitration"`
	Categories  []string       `yaml:"categories"`
	Source      SourceScenario `yaml:"source"`
}

// SourceScenario is the YAML form of SourceConfig.
type SourceScenario struct {
	Kind     string         `yaml:"kind"`
	Weights  *SourceWeights `yaml:"weights"`
	Sequence []string       `yaml:"sequence"`
}

// LoadScenario reads and parses a YAML scenario file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &sc, nil
}

// Validate checks names and value ranges in the scenario.
// Degenerate geometry (zero belt length, zero steps) is allowed.
func (s *Scenario) Validate() error {
	if s.BeltLength != nil && *s.BeltLength < 0 {
		return fmt.Errorf("belt_length must be non-negative, got %d", *s.BeltLength)
	}
	if !ValidArbitrationPolicies[s.Arbitration] {
		return fmt.Errorf("unknown arbitration policy %q", s.Arbitration)
	}
	if _, err := ParseContents(s.Categories); err != nil {
		return fmt.Errorf("categories: %w", err)
	}
	return s.Source.validate()
}

func (s *SourceScenario) validate() error {
	if !ValidSourceKinds[s.Kind] {
		return fmt.Errorf("unknown source kind %q", s.Kind)
	}
	if s.Kind == "weighted" {
		if s.Weights == nil {
			return fmt.Errorf("source kind \"weighted\" requires weights")
		}
		if err := s.Weights.Validate(); err != nil {
			return err
		}
	}
	if s.Kind == "sequence" && len(s.Sequence) == 0 {
		return fmt.Errorf("source kind \"sequence\" requires a non-empty sequence")
	}
	if s.Kind != "" && s.Kind != "sequence" && len(s.Sequence) > 0 {
		return fmt.Errorf("source sequence given with source kind %q; use kind \"sequence\" or drop the sequence", s.Kind)
	}
	seq, err := ParseContents(s.Sequence)
	if err != nil {
		return fmt.Errorf("source sequence: %w", err)
	}
	for i, c := range seq {
		if c == Product {
			return fmt.Errorf("source sequence entry %d: PRODUCT cannot be injected", i)
		}
	}
	return nil
}

// Apply overlays the fields set in the scenario onto cfg.
// The scenario must have passed Validate.
func (s *Scenario) Apply(cfg *SimConfig) {
	if s.BeltLength != nil {
		cfg.BeltLength = *s.BeltLength
	}
	if s.Steps != nil {
		cfg.Steps = *s.Steps
	}
	if s.Seed != nil {
		cfg.Seed = *s.Seed
	}
	if s.Arbitration != "" {
		cfg.Arbitration = s.Arbitration
	}
	if len(s.Categories) > 0 {
		cfg.Categories, _ = ParseContents(s.Categories)
	}
	if s.Source.Kind != "" {
		cfg.Source.Kind = s.Source.Kind
	}
	if s.Source.Weights != nil {
		cfg.Source.Weights = *s.Source.Weights
	}
	if len(s.Source.Sequence) > 0 {
		cfg.Source.Sequence, _ = ParseContents(s.Source.Sequence)
		// A bare sequence implies the sequence source.
		if s.Source.Kind == "" {
			cfg.Source.Kind = "sequence"
		}
	}
}
