// sim/simulator.go
package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/assembly-sim/sim/trace"
)

// Simulator is the core object that holds simulation time, belt and worker
// state, and the stepping loop. It is single-threaded: one goroutine owns it.
type Simulator struct {
	Clock  int
	Config SimConfig
	Belt   *Belt
	// Pairs[i] is bound to belt position i.
	Pairs   []*WorkerPair
	Metrics *Metrics

	source Source
	policy ArbitrationPolicy
	trace  *trace.SimulationTrace
}

// NewSimulator wires a simulator from already-built collaborators.
// A nil policy selects FixedPriority; a nil trace disables tracing.
func NewSimulator(cfg SimConfig, src Source, policy ArbitrationPolicy, tr *trace.SimulationTrace) *Simulator {
	if policy == nil {
		policy = FixedPriority{}
	}
	belt := NewBelt(cfg.BeltLength)
	pairs := make([]*WorkerPair, belt.Capacity())
	for i := range pairs {
		pairs[i] = &WorkerPair{Slot: i}
	}
	return &Simulator{
		Config:  cfg,
		Belt:    belt,
		Pairs:   pairs,
		Metrics: NewMetrics(cfg.categories()),
		source:  src,
		policy:  policy,
		trace:   tr,
	}
}

// NewSimulatorFromConfig builds the source and arbitration policy named in
// cfg, seeding both from cfg.Seed.
func NewSimulatorFromConfig(cfg SimConfig, tr *trace.SimulationTrace) (*Simulator, error) {
	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))
	src, err := NewSource(cfg.Source, rng.ForSubsystem(SubsystemSource))
	if err != nil {
		return nil, err
	}
	policy, err := NewArbitrationPolicy(cfg.Arbitration, rng.ForSubsystem(SubsystemArbitration))
	if err != nil {
		return nil, err
	}
	return NewSimulator(cfg, src, policy, tr), nil
}

// Run steps the simulation from the current clock until Config.Steps.
func (sim *Simulator) Run() {
	logrus.Infof("Starting simulation: belt=%d steps=%d", sim.Config.BeltLength, sim.Config.Steps)
	for sim.Clock < sim.Config.Steps {
		sim.Step()
	}
	logrus.Infof("[tick %07d] Simulation ended", sim.Clock)
}

// Step advances time by one tick:
//  1. draw the entry content
//  2. advance the belt and classify any eviction
//  3. let every worker pair try to act on its slot, entry first
//
// Workers only ever see the post-shift layout.
func (sim *Simulator) Step() {
	now := sim.Clock

	in := sim.source.Next(now)
	sim.Metrics.RecordInjection(in)
	evicted, ok := sim.Belt.Advance(in)
	if ok {
		sim.Metrics.RecordEviction(evicted)
		if evicted != Empty {
			logrus.Debugf("[tick %07d] %s left the belt", now, evicted)
		}
	}

	for i := 0; i < sim.Belt.Len(); i++ {
		before := sim.Belt.At(i)
		after, res := sim.Pairs[i].Resolve(before, now, sim.policy.Order(i, now))
		sim.Belt.Set(i, after)
		sim.Metrics.RecordResolution(res)
		if !res.Acted() {
			continue
		}
		logrus.Debugf("[tick %07d] slot %d: %s worker %s (%s -> %s)", now, i, res.Side, res.Outcome.Action, before, after)
		if res.Outcome.Overwrote {
			logrus.Warnf("[tick %07d] slot %d: deposit overwrote a finished product", now, i)
		}
		if sim.trace.RecordsActions() {
			sim.trace.RecordAction(trace.ActionRecord{
				Step:      now,
				Slot:      i,
				Side:      res.Side.String(),
				Action:    res.Outcome.Action.String(),
				Before:    before.String(),
				After:     after.String(),
				Overwrote: res.Outcome.Overwrote,
			})
		}
	}

	if sim.trace.RecordsSteps() {
		rec := trace.StepRecord{Step: now, Injected: in.String(), Belt: labels(sim.Belt.Slots())}
		if ok {
			rec.Evicted = evicted.String()
		}
		sim.trace.RecordStep(rec)
	}
	logrus.Tracef("[tick %07d] belt %s", now, sim.Belt)

	sim.Clock++
	sim.Metrics.StepsRun++
}

// Workers returns a copy of every worker's state, indexed by slot then side.
func (sim *Simulator) Workers() [][2]WorkerState {
	out := make([][2]WorkerState, len(sim.Pairs))
	for i, p := range sim.Pairs {
		out[i] = p.Workers
	}
	return out
}

// Inventory counts units still inside the system.
type Inventory struct {
	ComponentsOnBelt int
	ProductsOnBelt   int
	HeldUnits        int // components in workers' hands, including those mid-assembly
}

// Inventory reports what is currently on the belt and in workers' hands.
func (sim *Simulator) Inventory() Inventory {
	var inv Inventory
	for _, c := range sim.Belt.Slots() {
		switch {
		case c.IsComponent():
			inv.ComponentsOnBelt++
		case c == Product:
			inv.ProductsOnBelt++
		}
	}
	for _, p := range sim.Pairs {
		for _, w := range p.Workers {
			inv.HeldUnits += w.HeldUnits()
		}
	}
	return inv
}

// Conservation returns the number of component units that entered the belt
// and the number accounted for: lost at the exit, held, still on the belt,
// or bound into a product (two units per product, whether it exited, was
// overwritten, or is still on the belt). The two are always equal.
func (sim *Simulator) Conservation() (entered, accounted int) {
	m := sim.Metrics
	inv := sim.Inventory()
	entered = m.Injected[ComponentA] + m.Injected[ComponentB]
	accounted = m.Lost(ComponentA) + m.Lost(ComponentB) +
		2*(m.Produced()+m.Destroyed+inv.ProductsOnBelt) +
		inv.ComponentsOnBelt + inv.HeldUnits
	return entered, accounted
}

func labels(cs []Content) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.String()
	}
	return out
}
