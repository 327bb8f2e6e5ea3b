// Package sim provides the discrete-time engine for a conveyor belt
// assembly line: a belt of fixed length, one pair of workers per slot, and
// a source feeding components A and B (or nothing) at the entry end.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - content.go: the four things a slot can hold
//   - worker.go: the worker state machine (idle, holding one, assembling, ready)
//   - pair.go: how the two workers at a slot share it, and arbitration policies
//   - simulator.go: the stepping loop (inject, shift, then resolve every pair)
//
// # Architecture
//
// One step is: draw the entry content, shift the belt (classifying whatever
// falls off the exit), then visit each slot from entry to exit and let at
// most one of its two workers act. Workers always see the post-shift layout.
//
// Sub-packages:
//   - sim/trace/: per-step and per-action trace recording, JSONL export
//   - sim/sweep/: seed replication and summary statistics
//
// # Key Interfaces
//
//   - Source: what enters the belt at each step (uniform, weighted, sequence)
//   - ArbitrationPolicy: which worker of a pair tries first (fixed, alternating, random)
//
// Randomness comes from PartitionedRNG so the source and arbitration draw
// from independent streams derived from one seed.
package sim
