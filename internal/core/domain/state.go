package domain

import "go.trai.ch/zerr"

// BuildState is a state of the portable case build state machine.
type BuildState string

const (
	// StateIdle is the state before a build starts.
	StateIdle BuildState = "idle"
	// StateValidating checks the selection and settings before any I/O.
	StateValidating BuildState = "validating"
	// StateResolving computes the dependency graph.
	StateResolving BuildState = "resolving"
	// StateCopying streams an object's payload into the content area.
	StateCopying BuildState = "copying"
	// StateWriting writes an object's record into the schema store.
	StateWriting BuildState = "writing"
	// StateFinalizing closes, verifies and publishes the case.
	StateFinalizing BuildState = "finalizing"
	// StateCompleted is terminal: every object was written.
	StateCompleted BuildState = "completed"
	// StatePartiallyCompleted is terminal: the case is sound but some objects were skipped.
	StatePartiallyCompleted BuildState = "partially_completed"
	// StateFailed is terminal: no case was produced.
	StateFailed BuildState = "failed"
)

// IsTerminal checks if a state is a terminal state.
func (s BuildState) IsTerminal() bool {
	switch s {
	case StateCompleted, StatePartiallyCompleted, StateFailed:
		return true
	default:
		return false
	}
}

// Status maps a terminal state to the BuildStatus reported to callers.
func (s BuildState) Status() BuildStatus {
	switch s {
	case StateCompleted:
		return BuildCompleted
	case StatePartiallyCompleted:
		return BuildPartiallyCompleted
	default:
		return BuildFailed
	}
}

// CanTransition reports whether from -> to is an edge of the state machine.
// Any non-terminal state may fail. Copying and Writing alternate per object,
// and a copy that fails can be the last thing attempted before Finalizing.
func CanTransition(from, to BuildState) bool {
	if to == StateFailed {
		return !from.IsTerminal()
	}
	switch from {
	case StateIdle:
		return to == StateValidating
	case StateValidating:
		return to == StateResolving
	case StateResolving:
		return to == StateCopying || to == StateWriting || to == StateFinalizing
	case StateCopying, StateWriting:
		return to == StateCopying || to == StateWriting || to == StateFinalizing
	case StateFinalizing:
		return to == StateCompleted || to == StatePartiallyCompleted
	default:
		return false
	}
}

// StateMachine tracks the current build state and rejects illegal transitions.
type StateMachine struct {
	current BuildState
	history []BuildState
}

// NewStateMachine creates a state machine in StateIdle.
func NewStateMachine() *StateMachine {
	return &StateMachine{current: StateIdle, history: []BuildState{StateIdle}}
}

// Current returns the current state.
func (m *StateMachine) Current() BuildState {
	return m.current
}

// History returns every state entered so far, consecutive repeats collapsed.
func (m *StateMachine) History() []BuildState {
	return m.history
}

// Transition moves to the next state.
func (m *StateMachine) Transition(to BuildState) error {
	if !CanTransition(m.current, to) {
		return zerr.With(Annotate(ErrInvalidTransition, "from", string(m.current)), "to", string(to))
	}
	if m.current != to {
		m.history = append(m.history, to)
	}
	m.current = to
	return nil
}
