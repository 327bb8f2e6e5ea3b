// Tracks what left the belt, what entered it, and what the workers did.

package sim

import (
	"fmt"
	"io"
)

// Metrics aggregates statistics about the simulation for final reporting.
type Metrics struct {
	// Exited counts items evicted at the exit end, by category.
	// Keys for every configured category exist from the start.
	Exited map[Content]int
	// Injected counts items placed at the entry end, by category.
	Injected map[Content]int
	// Destroyed counts products replaced by a deposit before reaching the exit.
	Destroyed int
	// Actions counts worker actions by kind.
	Actions map[Action]int
	// SideActions counts actions taken by each side across all slots.
	SideActions [2]int
	StepsRun    int
}

// NewMetrics creates metrics whose exit counters start at zero for each category.
func NewMetrics(categories []Content) *Metrics {
	m := &Metrics{
		Exited:   make(map[Content]int, len(categories)),
		Injected: make(map[Content]int),
		Actions:  make(map[Action]int),
	}
	for _, c := range categories {
		m.Exited[c] = 0
	}
	return m
}

// RecordEviction classifies an item that left the belt.
func (m *Metrics) RecordEviction(c Content) {
	m.Exited[c]++
}

// RecordInjection counts an item placed on the belt entry.
func (m *Metrics) RecordInjection(c Content) {
	m.Injected[c]++
}

// RecordResolution counts a pair's action for one step.
func (m *Metrics) RecordResolution(r Resolution) {
	if !r.Acted() {
		return
	}
	m.Actions[r.Outcome.Action]++
	m.SideActions[r.Side]++
	if r.Outcome.Overwrote {
		m.Destroyed++
	}
}

// Result maps every non-empty category to the number of items of that
// category that exited the belt. EMPTY is dropped.
func (m *Metrics) Result() map[Content]int {
	out := make(map[Content]int, len(m.Exited))
	for c, n := range m.Exited {
		if c == Empty {
			continue
		}
		out[c] = n
	}
	return out
}

// Produced is the number of finished products that came off the line.
func (m *Metrics) Produced() int { return m.Exited[Product] }

// Lost is the number of components of category c that passed every worker.
func (m *Metrics) Lost(c Content) int {
	if !c.IsComponent() {
		return 0
	}
	return m.Exited[c]
}

// Print writes the aggregated metrics.
func (m *Metrics) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Steps Run            : %d\n", m.StepsRun)
	fmt.Fprintf(w, "Finished Products    : %d\n", m.Produced())
	fmt.Fprintf(w, "Lost Components A    : %d\n", m.Lost(ComponentA))
	fmt.Fprintf(w, "Lost Components B    : %d\n", m.Lost(ComponentB))
	fmt.Fprintf(w, "Injected A / B       : %d / %d\n", m.Injected[ComponentA], m.Injected[ComponentB])
	if m.Destroyed > 0 {
		fmt.Fprintf(w, "Overwritten Products : %d\n", m.Destroyed)
	}
	fmt.Fprintf(w, "Actions (left/right) : %d / %d\n", m.SideActions[SideLeft], m.SideActions[SideRight])
}
