package sim

import "fmt"

// AssemblyDuration is the number of steps a worker spends assembling,
// counting the step on which assembly starts. A worker that starts at
// step s is busy for s..s+3 and can deposit from s+4 onwards.
const AssemblyDuration = 4

// WorkerPhase is the derived state of a worker at a given step.
type WorkerPhase int

const (
	PhaseIdle WorkerPhase = iota
	PhaseHoldingOne
	PhaseAssembling
	PhaseReady
)

func (p WorkerPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseHoldingOne:
		return "holding-one"
	case PhaseAssembling:
		return "assembling"
	case PhaseReady:
		return "ready"
	default:
		return fmt.Sprintf("WorkerPhase(%d)", int(p))
	}
}

// WorkerState is the per-worker state. The zero value is an idle worker.
//
// Held is the first component picked up. The second component is consumed
// into assembly immediately, so a worker never stores more than one
// component; while Assembling, Held still names the first component.
type WorkerState struct {
	Held       Content
	Assembling bool
	StartStep  int
}

// Phase derives the worker's state machine phase at step.
func (w WorkerState) Phase(step int) WorkerPhase {
	switch {
	case w.Assembling && step-w.StartStep >= AssemblyDuration:
		return PhaseReady
	case w.Assembling:
		return PhaseAssembling
	case w.Held.IsComponent():
		return PhaseHoldingOne
	default:
		return PhaseIdle
	}
}

// Busy reports whether the worker is mid-assembly and may not touch the belt.
func (w WorkerState) Busy(step int) bool {
	return w.Phase(step) == PhaseAssembling
}

// HeldUnits is the number of component units the worker currently has in hand,
// including both components committed to an unfinished product.
func (w WorkerState) HeldUnits() int {
	switch {
	case w.Assembling:
		return 2
	case w.Held.IsComponent():
		return 1
	default:
		return 0
	}
}

func (w WorkerState) String() string {
	switch {
	case w.Assembling:
		return fmt.Sprintf("assembling(start=%d)", w.StartStep)
	case w.Held.IsComponent():
		return fmt.Sprintf("holding(%s)", w.Held)
	default:
		return "idle"
	}
}

// Action is what a worker did to its slot during one step.
type Action int

const (
	ActionNone Action = iota
	ActionPickup
	ActionStartAssembly
	ActionDeposit
	ActionDepositAndPickup
)

// Acted reports whether the action touched the slot.
func (a Action) Acted() bool { return a != ActionNone }

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionPickup:
		return "pickup"
	case ActionStartAssembly:
		return "start-assembly"
	case ActionDeposit:
		return "deposit"
	case ActionDepositAndPickup:
		return "deposit-and-pickup"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Outcome describes a single transition's effect beyond the new state and slot.
type Outcome struct {
	Action Action
	// Overwrote is set when a deposit replaced a PRODUCT already on the slot.
	// That product never reaches the exit.
	Overwrote bool
}

// Transition applies one step of the worker state machine to a slot.
// It returns the new worker state, the new slot content and what happened.
// Callers must not invoke it for a worker that is Busy at step.
//
// Rules, in priority order:
//  1. A ready worker always deposits PRODUCT. If the slot held a component
//     the worker picks it up as part of the same action.
//  2. An idle worker takes any component.
//  3. A worker holding X takes the complement of X and starts assembly.
//  4. Otherwise nothing happens.
func Transition(w WorkerState, slot Content, step int) (WorkerState, Content, Outcome) {
	switch w.Phase(step) {
	case PhaseReady:
		next := WorkerState{}
		out := Outcome{Action: ActionDeposit, Overwrote: slot == Product}
		if slot.IsComponent() {
			next.Held = slot
			out.Action = ActionDepositAndPickup
		}
		return next, Product, out
	case PhaseIdle:
		if slot.IsComponent() {
			return WorkerState{Held: slot}, Empty, Outcome{Action: ActionPickup}
		}
	case PhaseHoldingOne:
		if slot == w.Held.Complement() {
			return WorkerState{Held: w.Held, Assembling: true, StartStep: step}, Empty, Outcome{Action: ActionStartAssembly}
		}
	}
	return w, slot, Outcome{Action: ActionNone}
}
