package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalSteps     int
	TotalActions   int
	Evictions      map[string]int // content label → number of evictions
	ActionCounts   map[string]int // action name → count
	SideCounts     map[string]int // worker side → actions taken
	Overwrites     int
	BusiestSlot    int // slot with the most actions; -1 when no actions
	BusiestActions int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		Evictions:    make(map[string]int),
		ActionCounts: make(map[string]int),
		SideCounts:   make(map[string]int),
		BusiestSlot:  -1,
	}
	if st == nil {
		return summary
	}

	summary.TotalSteps = len(st.Steps)
	for _, s := range st.Steps {
		if s.Evicted != "" {
			summary.Evictions[s.Evicted]++
		}
	}

	summary.TotalActions = len(st.Actions)
	perSlot := make(map[int]int)
	for _, a := range st.Actions {
		summary.ActionCounts[a.Action]++
		summary.SideCounts[a.Side]++
		if a.Overwrote {
			summary.Overwrites++
		}
		perSlot[a.Slot]++
	}
	for slot, n := range perSlot {
		if n > summary.BusiestActions || (n == summary.BusiestActions && slot < summary.BusiestSlot) {
			summary.BusiestSlot = slot
			summary.BusiestActions = n
		}
	}

	return summary
}
