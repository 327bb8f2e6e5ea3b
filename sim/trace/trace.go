package trace

// TraceLevel controls the verbosity of step tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelSteps captures one record per step: injection, eviction and belt layout.
	TraceLevelSteps TraceLevel = "steps"
	// TraceLevelActions captures step records plus every worker action.
	TraceLevelActions TraceLevel = "actions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:    true,
	TraceLevelSteps:   true,
	TraceLevelActions: true,
	"":                true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects step and action records during a simulation.
type SimulationTrace struct {
	Config  TraceConfig
	Steps   []StepRecord
	Actions []ActionRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:  config,
		Steps:   make([]StepRecord, 0),
		Actions: make([]ActionRecord, 0),
	}
}

// RecordsSteps reports whether step records should be collected.
// Safe on a nil trace.
func (st *SimulationTrace) RecordsSteps() bool {
	return st != nil && (st.Config.Level == TraceLevelSteps || st.Config.Level == TraceLevelActions)
}

// RecordsActions reports whether action records should be collected.
// Safe on a nil trace.
func (st *SimulationTrace) RecordsActions() bool {
	return st != nil && st.Config.Level == TraceLevelActions
}

// RecordStep appends a step record.
func (st *SimulationTrace) RecordStep(record StepRecord) {
	st.Steps = append(st.Steps, record)
}

// RecordAction appends a worker action record.
func (st *SimulationTrace) RecordAction(record ActionRecord) {
	st.Actions = append(st.Actions, record)
}
