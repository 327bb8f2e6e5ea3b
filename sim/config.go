package sim

import (
	"fmt"
	"math/rand"
)

// BeltConfig groups belt geometry and run length.
type BeltConfig struct {
	BeltLength int // number of slots, and number of worker pairs
	Steps      int // ticks to run; non-positive runs nothing
}

// SourceConfig selects the entry content source.
type SourceConfig struct {
	Kind     string        // "uniform" (default), "weighted" or "sequence"
	Weights  SourceWeights // used by "weighted"
	Sequence []Content     // used by "sequence"
}

// SimConfig groups every construction parameter of a Simulator.
type SimConfig struct {
	BeltConfig
	Source      SourceConfig
	Arbitration string    // "fixed" (default), "alternating" or "random"
	Categories  []Content // exit counters initialized to zero; nil means AllContents
	Seed        int64
}

// NewBeltConfig creates a BeltConfig with all fields explicitly set.
func NewBeltConfig(beltLength, steps int) BeltConfig {
	return BeltConfig{BeltLength: beltLength, Steps: steps}
}

// ValidSourceKinds is the set of recognized source kinds.
var ValidSourceKinds = map[string]bool{"": true, "uniform": true, "weighted": true, "sequence": true}

// NewSource builds the configured entry source. Random kinds draw from rng.
func NewSource(cfg SourceConfig, rng *rand.Rand) (Source, error) {
	switch cfg.Kind {
	case "", "uniform":
		return NewUniformSource(rng), nil
	case "weighted":
		if err := cfg.Weights.Validate(); err != nil {
			return nil, err
		}
		return NewWeightedSource(rng, cfg.Weights), nil
	case "sequence":
		if len(cfg.Sequence) == 0 {
			return nil, fmt.Errorf("source kind \"sequence\" requires a non-empty sequence")
		}
		return NewSequenceSource(cfg.Sequence), nil
	}
	return nil, fmt.Errorf("unknown source kind %q; valid: uniform, weighted, sequence", cfg.Kind)
}

// categories returns the configured exit categories, defaulting to AllContents.
func (c SimConfig) categories() []Content {
	if c.Categories == nil {
		return AllContents
	}
	return c.Categories
}
