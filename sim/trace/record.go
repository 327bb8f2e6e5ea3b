// Package trace provides step-trace recording for belt simulations.
// This package has no dependencies on sim/; it stores plain data types.
package trace

// StepRecord captures the belt-level events of a single step.
// Contents are recorded by label ("A", "B", "PRODUCT", "EMPTY").
type StepRecord struct {
	Step     int      `json:"step"`
	Injected string   `json:"injected"`
	Evicted  string   `json:"evicted,omitempty"` // empty when nothing left the belt
	Belt     []string `json:"belt"`              // layout after all workers acted, entry first
}

// ActionRecord captures one worker touching one slot.
type ActionRecord struct {
	Step      int    `json:"step"`
	Slot      int    `json:"slot"`
	Side      string `json:"side"`
	Action    string `json:"action"`
	Before    string `json:"before"`
	After     string `json:"after"`
	Overwrote bool   `json:"overwrote,omitempty"`
}
