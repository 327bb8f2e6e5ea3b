package sim

import (
	"fmt"
	"math/rand"
)

// Source supplies the content placed at the belt entry on each step.
type Source interface {
	Next(step int) Content
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func(step int) Content

// Next implements Source.
func (f SourceFunc) Next(step int) Content { return f(step) }

// SourceWeights gives relative draw weights for each injectable category.
// PRODUCT is never injected; products only come from worker deposits.
type SourceWeights struct {
	A     float64 `yaml:"A"`
	B     float64 `yaml:"B"`
	Empty float64 `yaml:"EMPTY"`
}

// UniformWeights gives EMPTY, A and B an equal chance.
var UniformWeights = SourceWeights{A: 1, B: 1, Empty: 1}

// Validate rejects negative weights and an all-zero mix.
func (w SourceWeights) Validate() error {
	if w.A < 0 || w.B < 0 || w.Empty < 0 {
		return fmt.Errorf("source weights must be non-negative, got A=%v B=%v EMPTY=%v", w.A, w.B, w.Empty)
	}
	if w.A+w.B+w.Empty == 0 {
		return fmt.Errorf("source weights must not all be zero")
	}
	return nil
}

// WeightedSource draws A, B or EMPTY with fixed relative weights.
type WeightedSource struct {
	rng     *rand.Rand
	weights SourceWeights
}

// NewWeightedSource creates a weighted source. Weights must pass Validate.
func NewWeightedSource(rng *rand.Rand, weights SourceWeights) *WeightedSource {
	return &WeightedSource{rng: rng, weights: weights}
}

// NewUniformSource draws uniformly from {EMPTY, A, B}.
func NewUniformSource(rng *rand.Rand) *WeightedSource {
	return NewWeightedSource(rng, UniformWeights)
}

// Next implements Source. Exactly one RNG draw is consumed per call.
func (s *WeightedSource) Next(_ int) Content {
	total := s.weights.A + s.weights.B + s.weights.Empty
	x := s.rng.Float64() * total
	switch {
	case x < s.weights.Empty:
		return Empty
	case x < s.weights.Empty+s.weights.A:
		return ComponentA
	default:
		return ComponentB
	}
}

// SequenceSource replays a fixed list of contents indexed by step.
// Steps past the end of the list yield EMPTY.
type SequenceSource struct {
	seq []Content
}

// NewSequenceSource creates a replaying source. The slice is copied.
func NewSequenceSource(seq []Content) *SequenceSource {
	cp := make([]Content, len(seq))
	copy(cp, seq)
	return &SequenceSource{seq: cp}
}

// Next implements Source.
func (s *SequenceSource) Next(step int) Content {
	if step < 0 || step >= len(s.seq) {
		return Empty
	}
	return s.seq[step]
}
