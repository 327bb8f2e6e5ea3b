package sim

import (
	"hash/fnv"
	"math/rand"
)

// SimulationKey identifies a reproducible run. The same key and SimConfig
// always yield the same injections, arbitration draws and result.
type SimulationKey int64

// NewSimulationKey wraps a seed.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// RNG subsystems. Each draws from its own stream so adding random
// arbitration never shifts the injected sequence for a given seed.
const (
	// SubsystemSource feeds entry content draws. It uses the seed unchanged,
	// so --seed alone pins what enters the belt.
	SubsystemSource = "source"
	// SubsystemArbitration feeds the random tie-break policy.
	SubsystemArbitration = "arbitration"
)

// PartitionedRNG hands out one *rand.Rand per subsystem, all derived from a
// single key. The source stream is seeded with the key itself; every other
// stream with key XOR fnv1a64(name). Not safe for concurrent use.
type PartitionedRNG struct {
	key     SimulationKey
	streams map[string]*rand.Rand
}

// NewPartitionedRNG creates an RNG partition for key.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{key: key, streams: make(map[string]*rand.Rand)}
}

// ForSubsystem returns the stream for name, creating it on first use.
// Repeated calls return the same instance, so draws continue rather than restart.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if r, ok := p.streams[name]; ok {
		return r
	}
	seed := int64(p.key)
	if name != SubsystemSource {
		seed ^= fnv1a64(name)
	}
	r := rand.New(rand.NewSource(seed))
	p.streams[name] = r
	return r
}

// Key returns the key the partition was built from.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64())
}
