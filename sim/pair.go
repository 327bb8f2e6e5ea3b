package sim

import (
	"fmt"
	"math/rand"
)

// Side identifies one of the two workers bound to a slot.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// Other returns the opposing side.
func (s Side) Other() Side { return 1 - s }

// WorkerPair binds two opposing workers to one belt position.
type WorkerPair struct {
	Slot    int
	Workers [2]WorkerState
}

// Resolution records which worker, if any, touched the slot in one step.
type Resolution struct {
	Side    Side
	Outcome Outcome
}

// Acted reports whether some worker touched the slot.
func (r Resolution) Acted() bool { return r.Outcome.Action.Acted() }

// Resolve lets at most one worker of the pair act on slot at step.
// The first side in order tries first; the second side only tries when the
// first side did not act. A busy worker is skipped entirely.
func (p *WorkerPair) Resolve(slot Content, step int, order [2]Side) (Content, Resolution) {
	for _, side := range order {
		w := p.Workers[side]
		if w.Busy(step) {
			continue
		}
		next, content, out := Transition(w, slot, step)
		if out.Action.Acted() {
			p.Workers[side] = next
			return content, Resolution{Side: side, Outcome: out}
		}
	}
	return slot, Resolution{Side: order[0]}
}

// ArbitrationPolicy decides which side of a slot tries first at a step.
type ArbitrationPolicy interface {
	Order(slot int, step int) [2]Side
}

// FixedPriority always lets the left worker try first.
type FixedPriority struct{}

// Order implements ArbitrationPolicy.
func (FixedPriority) Order(_ int, _ int) [2]Side {
	return [2]Side{SideLeft, SideRight}
}

// Alternating flips the first side with the parity of slot+step, so neither
// side wins every contention on a slot.
type Alternating struct{}

// Order implements ArbitrationPolicy.
func (Alternating) Order(slot int, step int) [2]Side {
	if (slot+step)%2 == 0 {
		return [2]Side{SideLeft, SideRight}
	}
	return [2]Side{SideRight, SideLeft}
}

// RandomPriority picks the first side with a coin flip per slot and step.
// Draws come from the arbitration RNG subsystem so runs stay reproducible.
type RandomPriority struct {
	rng *rand.Rand
}

// Order implements ArbitrationPolicy.
func (r *RandomPriority) Order(_ int, _ int) [2]Side {
	if r.rng.Intn(2) == 0 {
		return [2]Side{SideLeft, SideRight}
	}
	return [2]Side{SideRight, SideLeft}
}

// ValidArbitrationPolicies is the set of recognized arbitration policy names.
// Shared by Scenario.Validate() and NewArbitrationPolicy().
var ValidArbitrationPolicies = map[string]bool{"": true, "fixed": true, "alternating": true, "random": true}

// NewArbitrationPolicy creates an arbitration policy by name.
// The empty name selects "fixed". rng is only used by "random" and must be
// non-nil for it.
func NewArbitrationPolicy(name string, rng *rand.Rand) (ArbitrationPolicy, error) {
	switch name {
	case "", "fixed":
		return FixedPriority{}, nil
	case "alternating":
		return Alternating{}, nil
	case "random":
		if rng == nil {
			return nil, fmt.Errorf("arbitration policy %q requires an RNG", name)
		}
		return &RandomPriority{rng: rng}, nil
	}
	return nil, fmt.Errorf("unknown arbitration policy %q; valid: fixed, alternating, random", name)
}
